package fluid

// project removes the divergent part of the velocity field via a discrete
// Helmholtz-Hodge split: compute the divergence, solve the Poisson equation
// for a pressure potential, then subtract its gradient. The result is
// divergence-free only up to the residual of the fixed relaxation budget.
func (f *Fluid) project(velX, velY *grid) {
	n := f.size
	div, p := f.ws.div, f.ws.pressure

	parallelRange(1, n-1, func(y int) {
		for x := 1; x < n-1; x++ {
			d := (velX.at(x+1, y) - velX.at(x-1, y)) + (velY.at(x, y+1) - velY.at(x, y-1))
			div.set(x, y, -0.5*d/f.scale)
		}
	})
	p.fill(0)
	setBounds(BoundScalar, div)

	f.linSolve(BoundScalar, p, div, 1, 4)

	parallelRange(1, n-1, func(y int) {
		for x := 1; x < n-1; x++ {
			velX.add(x, y, -0.5*(p.at(x+1, y)-p.at(x-1, y))*f.scale)
			velY.add(x, y, -0.5*(p.at(x, y+1)-p.at(x, y-1))*f.scale)
		}
	})
	setBounds(BoundReflectX, velX)
	setBounds(BoundReflectY, velY)
}
