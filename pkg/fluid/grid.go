package fluid

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// grid is one square scalar field, border cells included, stored row-major
// so that cell (x, y) lives at y*size+x. All fields of a simulator share the
// same size and never resize after construction.
type grid struct {
	size  int
	cells []float64
}

func newGrid(size int) *grid {
	return &grid{
		size:  size,
		cells: make([]float64, size*size),
	}
}

func (g *grid) at(x, y int) float64 {
	return g.cells[y*g.size+x]
}

func (g *grid) set(x, y int, v float64) {
	g.cells[y*g.size+x] = v
}

func (g *grid) add(x, y int, v float64) {
	g.cells[y*g.size+x] += v
}

func (g *grid) fill(v float64) {
	for i := range g.cells {
		g.cells[i] = v
	}
}

// value is the bounds-checked read used by external consumers.
func (g *grid) value(x, y int) (float64, error) {
	if x < 0 || x >= g.size {
		return 0, fmt.Errorf("x index out of range, must be between 0 and %d", g.size-1)
	}
	if y < 0 || y >= g.size {
		return 0, fmt.Errorf("y index out of range, must be between 0 and %d", g.size-1)
	}
	return g.at(x, y), nil
}

// dense returns a detached copy of the field for renderers and other
// external consumers. Row r of the matrix is grid row y=r.
func (g *grid) dense() *mat.Dense {
	return mat.NewDense(g.size, g.size, append([]float64(nil), g.cells...))
}
