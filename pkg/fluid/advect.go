package fluid

import "math"

// advect transports src along (velX, velY) for one timestep and writes the
// result into dst. Each destination cell traces its origin backward along
// the local velocity and samples src there bilinearly, which keeps the
// scheme stable for any timestep. Destination cells are independent, so the
// loop is split across rows; results are identical for any worker count.
func (f *Fluid) advect(code BoundaryCode, dst, src, velX, velY *grid) {
	n := f.size
	dt0 := f.dt * f.scale

	// Clamping the backtraced position here guarantees that all four
	// sampling neighbors stay inside the grid.
	lo, hi := 0.5, float64(n)-1.5

	parallelRange(1, n-1, func(y int) {
		for x := 1; x < n-1; x++ {
			px := min(max(float64(x)-dt0*velX.at(x, y), lo), hi)
			py := min(max(float64(y)-dt0*velY.at(x, y), lo), hi)

			x0 := int(math.Floor(px))
			y0 := int(math.Floor(py))
			x1, y1 := x0+1, y0+1

			s1 := px - float64(x0)
			s0 := 1 - s1
			t1 := py - float64(y0)
			t0 := 1 - t1

			dst.set(x, y,
				s0*(t0*src.at(x0, y0)+t1*src.at(x0, y1))+
					s1*(t0*src.at(x1, y0)+t1*src.at(x1, y1)))
		}
	})
	setBounds(code, dst)
}
