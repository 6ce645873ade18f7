package fluid

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// divergence evaluates the discrete divergence of the live velocity field
// over the interior, in row-major interior order.
func (f *Fluid) divergence() []float64 {
	vals := make([]float64, 0, f.interior*f.interior)
	for y := 1; y <= f.interior; y++ {
		for x := 1; x <= f.interior; x++ {
			d := (f.velX.at(x+1, y) - f.velX.at(x-1, y)) + (f.velY.at(x, y+1) - f.velY.at(x, y-1))
			vals = append(vals, -0.5*d/f.scale)
		}
	}
	return vals
}

// MeanAbsDivergence reports how incompressible the current velocity field
// is: the mean absolute discrete divergence over interior cells. After a
// projection it should be near zero, bounded by the residual of the fixed
// relaxation budget.
func (f *Fluid) MeanAbsDivergence() float64 {
	vals := f.divergence()
	return floats.Norm(vals, 1) / float64(len(vals))
}

// MaxDivergence returns the largest absolute interior divergence.
func (f *Fluid) MaxDivergence() float64 {
	var m float64
	for _, v := range f.divergence() {
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	return m
}
