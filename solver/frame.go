package solver

import (
	"github.com/bening-gawitsa/heatsim/grid"
	"github.com/bening-gawitsa/heatsim/model"
)

// BuildFrame packages one completed step as push data for the
// frontend. The cell payload is copied, so the frame stays valid after
// the stepping loop reuses its buffer.
func BuildFrame(step int, t float64, g *grid.Grid) model.Frame {
	min, max := g.MinMax()
	cells := make([]float64, len(g.Cells()))
	copy(cells, g.Cells())
	return model.Frame{
		Step:  step,
		Time:  t,
		Nx:    g.Nx(),
		Nz:    g.Nz(),
		Min:   min,
		Max:   max,
		Cells: cells,
	}
}
