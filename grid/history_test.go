package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot(t *testing.T, v float64) *Grid {
	t.Helper()
	g, err := NewUniform(2, 2, v)
	require.NoError(t, err)
	return g
}

func TestHistoryAppendOrder(t *testing.T) {
	h := NewHistory(0)
	for n := 1; n <= 3; n++ {
		h.Append(n, snapshot(t, float64(n)))
	}
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 3, h.Total())

	var steps []int
	var vals []float64
	h.Traverse(func(step int, g *Grid) {
		steps = append(steps, step)
		vals = append(vals, g.At(0, 0))
	})
	assert.Equal(t, []int{1, 2, 3}, steps)
	assert.Equal(t, []float64{1, 2, 3}, vals)

	step, last := h.Last()
	assert.Equal(t, 3, step)
	assert.Equal(t, 3.0, last.At(1, 1))
}

func TestHistoryCopiesSnapshots(t *testing.T) {
	h := NewHistory(0)
	g := snapshot(t, 5)
	h.Append(1, g)
	g.Set(0, 0, -100)

	_, stored := h.At(0)
	assert.Equal(t, 5.0, stored.At(0, 0))
}

func TestHistoryRetentionWindow(t *testing.T) {
	h := NewHistory(2)
	for n := 1; n <= 4; n++ {
		h.Append(n, snapshot(t, float64(n)))
	}
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, 4, h.Total())

	step, g := h.At(0)
	assert.Equal(t, 3, step)
	assert.Equal(t, 3.0, g.At(0, 0))
	step, g = h.At(1)
	assert.Equal(t, 4, step)
	assert.Equal(t, 4.0, g.At(0, 0))
}

func BenchmarkHistoryAppendBounded(b *testing.B) {
	g, _ := NewUniform(64, 64, 1)
	h := NewHistory(16)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.Append(i, g)
	}
}
