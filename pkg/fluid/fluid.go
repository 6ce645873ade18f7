// Package fluid implements a 2D incompressible fluid solver on a fixed
// square grid using the semi-implicit stable-fluids scheme: implicit
// diffusion, pressure projection against divergence, and semi-Lagrangian
// advection. All state is in memory; the package renders nothing and
// persists nothing, external drivers consume snapshots instead.
package fluid

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Layout selects the grid storage convention.
type Layout int

const (
	// LayoutPadded stores n interior cells per axis plus an explicit ghost
	// border, (n+2)x(n+2) cells in total. This is the canonical layout.
	LayoutPadded Layout = iota
	// LayoutUnpadded stores n cells per axis in total, folding the boundary
	// into the edge rows and columns and leaving n-2 interior cells. Same
	// indexing as the padded layout, with the smaller interior.
	LayoutUnpadded
)

// Options carries the construction knobs that have sensible zero values.
type Options struct {
	Layout Layout
	// SolverIterations overrides the relaxation sweep budget.
	// Zero means DefaultSolverIterations.
	SolverIterations int
}

// workspace names the scratch fields used inside a step. Every buffer has
// exactly one role; diffusion sources are never reused for pressure or
// divergence storage.
type workspace struct {
	velX0    *grid // diffused x-velocity, then advection source
	velY0    *grid // diffused y-velocity, then advection source
	density0 *grid // diffused density, advection source
	pressure *grid
	div      *grid
}

// Fluid is the simulator. It is not safe for concurrent use: callers must
// serialize injections and snapshots with Step.
type Fluid struct {
	size     int // cells per axis, border included
	interior int // physical cells per axis

	diff  float64
	visc  float64
	dt    float64
	iters int

	// scale is the span that multiplies dt in the advection backtrace and
	// the projection stencils. It equals the construction size n under both
	// layouts, matching each convention's own formulas.
	scale float64

	velX, velY, density *grid
	ws                  workspace
}

// New constructs a simulator with n interior cells per axis under the
// padded layout. All fields start zero-filled.
func New(n int, diffusion, viscosity, dt float64) (*Fluid, error) {
	return NewWithOptions(n, diffusion, viscosity, dt, Options{})
}

// NewWithOptions is New with an explicit layout and solver budget.
func NewWithOptions(n int, diffusion, viscosity, dt float64, opts Options) (*Fluid, error) {
	if n <= 2 {
		return nil, fmt.Errorf("fluid: grid size must exceed 2, got %d", n)
	}
	if dt <= 0 {
		return nil, fmt.Errorf("fluid: timestep must be positive, got %v", dt)
	}
	iters := opts.SolverIterations
	if iters == 0 {
		iters = DefaultSolverIterations
	}
	if iters < 0 {
		return nil, fmt.Errorf("fluid: solver iterations must be positive, got %d", iters)
	}

	size, interior := n+2, n
	if opts.Layout == LayoutUnpadded {
		size, interior = n, n-2
	}

	f := &Fluid{
		size:     size,
		interior: interior,
		diff:     diffusion,
		visc:     viscosity,
		dt:       dt,
		iters:    iters,
		scale:    float64(n),
		velX:     newGrid(size),
		velY:     newGrid(size),
		density:  newGrid(size),
		ws: workspace{
			velX0:    newGrid(size),
			velY0:    newGrid(size),
			density0: newGrid(size),
			pressure: newGrid(size),
			div:      newGrid(size),
		},
	}
	return f, nil
}

// Step advances the simulation by one timestep. The phase order is fixed
// by the scheme's stability properties: diffuse the velocity components,
// project, self-advect the velocity, project again (advection reintroduces
// divergence), then diffuse and advect density with the final velocity.
func (f *Fluid) Step() {
	f.diffuse(BoundReflectX, f.ws.velX0, f.velX, f.visc)
	f.diffuse(BoundReflectY, f.ws.velY0, f.velY, f.visc)

	f.project(f.ws.velX0, f.ws.velY0)

	f.advect(BoundReflectX, f.velX, f.ws.velX0, f.ws.velX0, f.ws.velY0)
	f.advect(BoundReflectY, f.velY, f.ws.velY0, f.ws.velX0, f.ws.velY0)

	f.project(f.velX, f.velY)

	f.diffuse(BoundScalar, f.ws.density0, f.density, f.diff)
	f.advect(BoundScalar, f.density, f.ws.density0, f.velX, f.velY)
}

func (f *Fluid) inInterior(x, y int) bool {
	return x >= 1 && x <= f.interior && y >= 1 && y <= f.interior
}

// AddDensity deposits amount at interior cell (x, y). Coordinates outside
// the interior are ignored, not rejected, so externally driven input can be
// forwarded without a validation round-trip.
func (f *Fluid) AddDensity(x, y int, amount float64) {
	if !f.inInterior(x, y) {
		return
	}
	f.density.add(x, y, amount)
}

// AddVelocity adds the impulse (dx, dy) at interior cell (x, y), with the
// same out-of-range tolerance as AddDensity.
func (f *Fluid) AddVelocity(x, y int, dx, dy float64) {
	if !f.inInterior(x, y) {
		return
	}
	f.velX.add(x, y, dx)
	f.velY.add(x, y, dy)
}

// SetDiffusion, SetViscosity and SetTimeStep change the solver parameters
// for subsequent Step calls. External sliders drive these at any rate;
// values extreme enough to blow up the fields are the caller's problem, the
// core does not detect or recover non-finite state.
func (f *Fluid) SetDiffusion(v float64) { f.diff = v }
func (f *Fluid) SetViscosity(v float64) { f.visc = v }
func (f *Fluid) SetTimeStep(dt float64) { f.dt = dt }

func (f *Fluid) Diffusion() float64 { return f.diff }
func (f *Fluid) Viscosity() float64 { return f.visc }
func (f *Fluid) TimeStep() float64  { return f.dt }

// Size returns the cells per axis including the border; Interior the
// physical cells per axis. Interior cell indices span [1, Interior()].
func (f *Fluid) Size() int     { return f.size }
func (f *Fluid) Interior() int { return f.interior }

// Reset zero-fills every field in place, including the workspace, without
// reallocating.
func (f *Fluid) Reset() {
	f.velX.fill(0)
	f.velY.fill(0)
	f.density.fill(0)
	f.ws.velX0.fill(0)
	f.ws.velY0.fill(0)
	f.ws.density0.fill(0)
	f.ws.pressure.fill(0)
	f.ws.div.fill(0)
}

// Density, VelocityX and VelocityY return detached full-grid snapshots for
// external renderers. Row r of the matrix is grid row y=r.
func (f *Fluid) Density() *mat.Dense   { return f.density.dense() }
func (f *Fluid) VelocityX() *mat.Dense { return f.velX.dense() }
func (f *Fluid) VelocityY() *mat.Dense { return f.velY.dense() }

// DensityAt reads a single density cell with bounds checking.
func (f *Fluid) DensityAt(x, y int) (float64, error) {
	return f.density.value(x, y)
}

// VelocityAt reads both velocity components of a cell with bounds checking.
func (f *Fluid) VelocityAt(x, y int) (float64, float64, error) {
	u, err := f.velX.value(x, y)
	if err != nil {
		return 0, 0, err
	}
	v, err := f.velY.value(x, y)
	if err != nil {
		return 0, 0, err
	}
	return u, v, nil
}
