package fluid

// DefaultSolverIterations is the fixed sweep budget of the relaxation
// solver. There is no convergence check and no early exit: per-frame cost
// stays bounded at the price of an approximate solve.
const DefaultSolverIterations = 20

// linSolve relaxes the implicit system (I - a*Laplacian)x = x0 with
// Gauss-Seidel sweeps over the interior, updating cells in place with the
// latest neighbor values. The boundary policy is reapplied to x after each
// sweep. Callers guarantee c >= 1, so the division is always defined.
func (f *Fluid) linSolve(code BoundaryCode, x, x0 *grid, a, c float64) {
	n := f.size
	for k := 0; k < f.iters; k++ {
		for y := 1; y < n-1; y++ {
			row := y * n
			for i := row + 1; i < row+n-1; i++ {
				x.cells[i] = (x0.cells[i] + a*(x.cells[i-1]+x.cells[i+1]+x.cells[i-n]+x.cells[i+n])) / c
			}
		}
		setBounds(code, x)
	}
}
