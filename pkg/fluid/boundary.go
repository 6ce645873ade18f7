package fluid

// BoundaryCode selects how a field behaves at the domain walls. Velocity
// components reflect on the axis they penetrate (no-penetration), everything
// else is copied unsigned (free slip for the tangential component, plain
// continuation for scalars like density and pressure).
type BoundaryCode int

const (
	// BoundScalar copies all four borders from the adjacent interior cells.
	BoundScalar BoundaryCode = iota
	// BoundReflectX negates the left/right border columns. Used for the
	// horizontal velocity component.
	BoundReflectX
	// BoundReflectY negates the top/bottom border rows. Used for the
	// vertical velocity component.
	BoundReflectY
)

// setBounds rewrites the border cells of g from its interior according to
// code. It must run after every relaxation sweep and after every transport
// step; the solver's convergence behavior depends on it.
func setBounds(code BoundaryCode, g *grid) {
	n := g.size

	for i := 1; i < n-1; i++ {
		top, bottom := g.at(i, 1), g.at(i, n-2)
		if code == BoundReflectY {
			top, bottom = -top, -bottom
		}
		g.set(i, 0, top)
		g.set(i, n-1, bottom)

		left, right := g.at(1, i), g.at(n-2, i)
		if code == BoundReflectX {
			left, right = -left, -right
		}
		g.set(0, i, left)
		g.set(n-1, i, right)
	}

	// Corners take the average of their two edge neighbors.
	g.set(0, 0, 0.5*(g.at(1, 0)+g.at(0, 1)))
	g.set(n-1, 0, 0.5*(g.at(n-2, 0)+g.at(n-1, 1)))
	g.set(0, n-1, 0.5*(g.at(1, n-1)+g.at(0, n-2)))
	g.set(n-1, n-1, 0.5*(g.at(n-2, n-1)+g.at(n-1, n-2)))
}
