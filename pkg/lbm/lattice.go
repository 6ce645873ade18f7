// Package lbm implements the alternative fluid engine: a D2Q9 lattice
// Boltzmann model with BGK collision, streaming, and bounce-back obstacles.
// Unlike the grid solver in pkg/fluid it carries its own guard against
// non-finite state, re-equilibrating cells that blow up instead of leaving
// recovery to the caller.
package lbm

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// D2Q9 direction set: rest, the four axis neighbors, then the diagonals.
// opposite[i] is the direction bounced back at solid cells.
var (
	dirX     = [9]int{0, 1, 0, -1, 0, 1, -1, -1, 1}
	dirY     = [9]int{0, 0, 1, 0, -1, 1, 1, -1, -1}
	weights  = [9]float64{4.0 / 9, 1.0 / 9, 1.0 / 9, 1.0 / 9, 1.0 / 9, 1.0 / 36, 1.0 / 36, 1.0 / 36, 1.0 / 36}
	opposite = [9]int{0, 3, 4, 1, 2, 7, 8, 5, 6}
)

const (
	restDensity = 1.0
	// maxSpeed clips the recovered macroscopic velocity; lattice units above
	// ~0.3 are far outside the model's low-Mach validity anyway.
	maxSpeed   = 0.3
	minDensity = 1e-8
)

// Lattice is the D2Q9 state: nine distribution planes plus the recovered
// macroscopic fields. Not safe for concurrent use.
type Lattice struct {
	nx, ny int
	tau    float64 // BGK relaxation time, > 0.5
	inlet  float64 // forced x-velocity along the west wall

	f, buf [9][]float64
	rho    []float64
	ux, uy []float64
	solid  []bool

	recoveries int
}

// New constructs a lattice of nx by ny cells with relaxation time tau and a
// west-inlet velocity. tau must exceed 0.5 for a positive viscosity.
func New(nx, ny int, tau, inlet float64) (*Lattice, error) {
	if nx < 3 || ny < 3 {
		return nil, fmt.Errorf("lbm: lattice %dx%d too small, need at least 3 cells per axis", nx, ny)
	}
	if tau <= 0.5 {
		return nil, fmt.Errorf("lbm: relaxation time must exceed 0.5, got %v", tau)
	}
	l := &Lattice{
		nx:    nx,
		ny:    ny,
		tau:   tau,
		inlet: inlet,
		rho:   make([]float64, nx*ny),
		ux:    make([]float64, nx*ny),
		uy:    make([]float64, nx*ny),
		solid: make([]bool, nx*ny),
	}
	for i := 0; i < 9; i++ {
		l.f[i] = make([]float64, nx*ny)
		l.buf[i] = make([]float64, nx*ny)
	}
	l.Reset()
	return l, nil
}

func (l *Lattice) idx(x, y int) int { return y*l.nx + x }

// Viscosity returns the kinematic viscosity implied by the relaxation time.
func (l *Lattice) Viscosity() float64 { return (l.tau - 0.5) / 3 }

// Reset restores the uniform equilibrium inflow state in place. Obstacles
// are kept.
func (l *Lattice) Reset() {
	for c := range l.rho {
		l.rho[c] = restDensity
		l.ux[c] = l.inlet
		l.uy[c] = 0
		for i := 0; i < 9; i++ {
			l.f[i][c] = equilibrium(i, restDensity, l.inlet, 0)
		}
	}
	l.recoveries = 0
}

// equilibrium evaluates the second-order Maxwell-Boltzmann expansion for
// direction i at the given macroscopic state.
func equilibrium(i int, rho, ux, uy float64) float64 {
	cu := 3 * (float64(dirX[i])*ux + float64(dirY[i])*uy)
	usq := 1.5 * (ux*ux + uy*uy)
	return weights[i] * rho * (1 + cu + 0.5*cu*cu - usq)
}

// SetObstacleCircle marks all cells within radius of (cx, cy) as solid.
// Cells outside the lattice are skipped.
func (l *Lattice) SetObstacleCircle(cx, cy, radius int) {
	r2 := radius * radius
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			if x < 0 || x >= l.nx || y < 0 || y >= l.ny {
				continue
			}
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r2 {
				l.solid[l.idx(x, y)] = true
			}
		}
	}
}

// ClearObstacles makes every cell fluid again.
func (l *Lattice) ClearObstacles() {
	for i := range l.solid {
		l.solid[i] = false
	}
}

// Step advances the lattice one tick: BGK collision, streaming, bounce-back
// at solid cells, macroscopic recovery, wall forcing, and the finite-state
// guard.
func (l *Lattice) Step() {
	l.collide()
	l.stream()
	l.bounceBack()
	l.macros()
	l.forceWalls()
	l.guard()
}

func (l *Lattice) collide() {
	for c := range l.rho {
		if l.solid[c] {
			continue
		}
		rho, ux, uy := l.rho[c], l.ux[c], l.uy[c]
		for i := 0; i < 9; i++ {
			feq := equilibrium(i, rho, ux, uy)
			v := l.f[i][c] - (l.f[i][c]-feq)/l.tau
			if math.IsNaN(v) || math.IsInf(v, 0) {
				v = feq
			}
			l.f[i][c] = v
		}
	}
}

// stream shifts each distribution plane one cell along its direction, with
// periodic wrap. The wrapped cells on the west/east walls are rewritten by
// forceWalls afterwards.
func (l *Lattice) stream() {
	for i := 0; i < 9; i++ {
		for y := 0; y < l.ny; y++ {
			sy := ((y-dirY[i])%l.ny + l.ny) % l.ny
			for x := 0; x < l.nx; x++ {
				sx := ((x-dirX[i])%l.nx + l.nx) % l.nx
				l.buf[i][l.idx(x, y)] = l.f[i][l.idx(sx, sy)]
			}
		}
	}
	l.f, l.buf = l.buf, l.f
}

// bounceBack reflects distributions that streamed into solid cells back
// along their incoming direction.
func (l *Lattice) bounceBack() {
	var tmp [9]float64
	for c, s := range l.solid {
		if !s {
			continue
		}
		for i := 0; i < 9; i++ {
			tmp[i] = l.f[i][c]
		}
		for i := 0; i < 9; i++ {
			l.f[i][c] = tmp[opposite[i]]
		}
	}
}

// macros recovers density and velocity from the distributions, flooring
// degenerate densities and clipping runaway velocities.
func (l *Lattice) macros() {
	for c := range l.rho {
		var rho, ux, uy float64
		for i := 0; i < 9; i++ {
			v := l.f[i][c]
			rho += v
			ux += float64(dirX[i]) * v
			uy += float64(dirY[i]) * v
		}
		if rho < minDensity {
			rho = restDensity
		}
		ux /= rho
		uy /= rho
		l.rho[c] = rho
		l.ux[c] = min(max(ux, -maxSpeed), maxSpeed)
		l.uy[c] = min(max(uy, -maxSpeed), maxSpeed)
		if l.solid[c] {
			l.ux[c] = 0
			l.uy[c] = 0
		}
	}
}

// forceWalls pins the west column to the inlet equilibrium and lets the
// east column pass through by copying its upstream neighbor, overriding the
// periodic wrap of stream.
func (l *Lattice) forceWalls() {
	for y := 0; y < l.ny; y++ {
		w := l.idx(0, y)
		if !l.solid[w] {
			l.rho[w] = restDensity
			l.ux[w] = l.inlet
			l.uy[w] = 0
			for i := 0; i < 9; i++ {
				l.f[i][w] = equilibrium(i, restDensity, l.inlet, 0)
			}
		}
		e, up := l.idx(l.nx-1, y), l.idx(l.nx-2, y)
		if !l.solid[e] {
			l.rho[e] = l.rho[up]
			l.ux[e] = l.ux[up]
			l.uy[e] = l.uy[up]
			for i := 0; i < 9; i++ {
				l.f[i][e] = l.f[i][up]
			}
		}
	}
}

// guard re-equilibrates any cell whose distributions went non-finite. This
// is the recovery layer the grid solver deliberately lacks.
func (l *Lattice) guard() {
	for c := range l.rho {
		bad := !isFinite(l.rho[c]) || !isFinite(l.ux[c]) || !isFinite(l.uy[c])
		if !bad {
			for i := 0; i < 9; i++ {
				if !isFinite(l.f[i][c]) {
					bad = true
					break
				}
			}
		}
		if !bad {
			continue
		}
		l.rho[c] = restDensity
		l.ux[c] = l.inlet
		l.uy[c] = 0
		for i := 0; i < 9; i++ {
			l.f[i][c] = equilibrium(i, restDensity, l.inlet, 0)
		}
		l.recoveries++
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Recoveries counts cells the guard has re-equilibrated since the last
// Reset.
func (l *Lattice) Recoveries() int { return l.recoveries }

// Density, VelocityX and VelocityY return detached ny-by-nx snapshots, row
// r being lattice row y=r.
func (l *Lattice) Density() *mat.Dense {
	return mat.NewDense(l.ny, l.nx, append([]float64(nil), l.rho...))
}

func (l *Lattice) VelocityX() *mat.Dense {
	return mat.NewDense(l.ny, l.nx, append([]float64(nil), l.ux...))
}

func (l *Lattice) VelocityY() *mat.Dense {
	return mat.NewDense(l.ny, l.nx, append([]float64(nil), l.uy...))
}
