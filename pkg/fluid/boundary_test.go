package fluid

import "testing"

// fillPattern writes a distinct nonzero value into every cell.
func fillPattern(g *grid) {
	for i := range g.cells {
		g.cells[i] = float64(i%13) + 1
	}
}

func TestBoundaryReflection(t *testing.T) {
	cases := []struct {
		name string
		code BoundaryCode
		// sign applied to the copied neighbor at each wall
		left, right, top, bottom float64
	}{
		{"scalar", BoundScalar, 1, 1, 1, 1},
		{"reflectX", BoundReflectX, -1, -1, 1, 1},
		{"reflectY", BoundReflectY, 1, 1, -1, -1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := newGrid(8)
			fillPattern(g)
			setBounds(tc.code, g)

			n := g.size
			for i := 1; i < n-1; i++ {
				if got := g.at(0, i); got != tc.left*g.at(1, i) {
					t.Errorf("left border at y=%d: got %v, want %v", i, got, tc.left*g.at(1, i))
				}
				if got := g.at(n-1, i); got != tc.right*g.at(n-2, i) {
					t.Errorf("right border at y=%d: got %v, want %v", i, got, tc.right*g.at(n-2, i))
				}
				if got := g.at(i, 0); got != tc.top*g.at(i, 1) {
					t.Errorf("top border at x=%d: got %v, want %v", i, got, tc.top*g.at(i, 1))
				}
				if got := g.at(i, n-1); got != tc.bottom*g.at(i, n-2) {
					t.Errorf("bottom border at x=%d: got %v, want %v", i, got, tc.bottom*g.at(i, n-2))
				}
			}
		})
	}
}

func TestBoundaryCornerAveraging(t *testing.T) {
	for _, code := range []BoundaryCode{BoundScalar, BoundReflectX, BoundReflectY} {
		g := newGrid(8)
		fillPattern(g)
		setBounds(code, g)

		n := g.size
		corners := []struct {
			x, y  int
			a, b  float64
			where string
		}{
			{0, 0, g.at(1, 0), g.at(0, 1), "top-left"},
			{n - 1, 0, g.at(n-2, 0), g.at(n-1, 1), "top-right"},
			{0, n - 1, g.at(1, n-1), g.at(0, n-2), "bottom-left"},
			{n - 1, n - 1, g.at(n-2, n-1), g.at(n-1, n-2), "bottom-right"},
		}
		for _, c := range corners {
			if got, want := g.at(c.x, c.y), 0.5*(c.a+c.b); got != want {
				t.Errorf("code %d %s corner: got %v, want %v", code, c.where, got, want)
			}
		}
	}
}

func TestBoundaryLeavesInteriorUntouched(t *testing.T) {
	g := newGrid(8)
	fillPattern(g)
	want := append([]float64(nil), g.cells...)

	setBounds(BoundReflectX, g)

	n := g.size
	for y := 1; y < n-1; y++ {
		for x := 1; x < n-1; x++ {
			if g.at(x, y) != want[y*n+x] {
				t.Fatalf("interior cell (%d,%d) changed", x, y)
			}
		}
	}
}
