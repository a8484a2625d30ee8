// Package grid holds the 2D temperature field and the in-memory snapshot
// sequence produced by a simulation run. The field is a flat row-major
// slice rather than a slice of slices, for locality during the stepping
// traversal.
package grid

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Grid is a fixed-size Nz x Nx scalar field. Row index i runs along the
// z direction, column index j along the x direction.
type Grid struct {
	nz, nx int
	cells  []float64
}

func New(nz, nx int) (*Grid, error) {
	if nz < 1 || nx < 1 {
		return nil, fmt.Errorf("grid dimensions must be positive, got %dx%d", nz, nx)
	}
	return &Grid{
		nz:    nz,
		nx:    nx,
		cells: make([]float64, nz*nx),
	}, nil
}

// NewUniform builds a grid with every cell set to v.
func NewUniform(nz, nx int, v float64) (*Grid, error) {
	g, err := New(nz, nx)
	if err != nil {
		return nil, err
	}
	g.Fill(v)
	return g, nil
}

func (g *Grid) Nz() int { return g.nz }
func (g *Grid) Nx() int { return g.nx }

func (g *Grid) At(i, j int) float64 {
	return g.cells[i*g.nx+j]
}

func (g *Grid) Set(i, j int, v float64) {
	g.cells[i*g.nx+j] = v
}

// Row returns the backing slice of row i. Writes through it are visible
// in the grid.
func (g *Grid) Row(i int) []float64 {
	return g.cells[i*g.nx : (i+1)*g.nx]
}

// Cells returns the full row-major backing slice.
func (g *Grid) Cells() []float64 {
	return g.cells
}

func (g *Grid) Fill(v float64) {
	for i := range g.cells {
		g.cells[i] = v
	}
}

func (g *Grid) Clone() *Grid {
	c := &Grid{
		nz:    g.nz,
		nx:    g.nx,
		cells: make([]float64, len(g.cells)),
	}
	copy(c.cells, g.cells)
	return c
}

// CopyFrom copies o's cells into g. Dimensions must match.
func (g *Grid) CopyFrom(o *Grid) error {
	if g.nz != o.nz || g.nx != o.nx {
		return fmt.Errorf("dimension mismatch: %dx%d vs %dx%d", g.nz, g.nx, o.nz, o.nx)
	}
	copy(g.cells, o.cells)
	return nil
}

// MinMax returns the smallest and largest cell values.
func (g *Grid) MinMax() (min, max float64) {
	return floats.Min(g.cells), floats.Max(g.cells)
}

// Equal reports whether both grids have the same shape and cell values
// within tol.
func (g *Grid) Equal(o *Grid, tol float64) bool {
	if g.nz != o.nz || g.nx != o.nx {
		return false
	}
	return floats.EqualApprox(g.cells, o.cells, tol)
}
