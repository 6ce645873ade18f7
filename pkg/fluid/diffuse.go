package fluid

// diffuse spreads src into dst with coefficient coeff (viscosity for the
// velocity components, diffusivity for density) over one timestep, solved
// implicitly. The rate a scales with the square of the interior span, so a
// zero coefficient makes this an exact identity pass.
func (f *Fluid) diffuse(code BoundaryCode, dst, src *grid, coeff float64) {
	a := f.dt * coeff * float64(f.interior) * float64(f.interior)
	f.linSolve(code, dst, src, a, 1+4*a)
}
