package grid

// History is the ordered snapshot sequence of a run, one grid per
// completed time step. With capacity 0 it grows without bound, which is
// the eager mode the visualization consumer wants for random access.
// A positive capacity keeps a sliding window of the most recent
// snapshots and recycles the evicted grid's backing storage, so long
// streaming runs do not accumulate memory.
type History struct {
	capacity int
	total    int
	steps    []int
	snaps    []*Grid
}

func NewHistory(capacity int) *History {
	if capacity < 0 {
		capacity = 0
	}
	return &History{capacity: capacity}
}

// Append records a copy of g as the snapshot for the given step. The
// caller keeps ownership of g.
func (h *History) Append(step int, g *Grid) {
	h.total++
	if h.capacity > 0 && len(h.snaps) == h.capacity {
		// Recycle the oldest snapshot's storage.
		oldest := h.snaps[0]
		h.snaps = h.snaps[1:]
		h.steps = h.steps[1:]
		oldest.CopyFrom(g) // same run, dimensions always match
		h.snaps = append(h.snaps, oldest)
		h.steps = append(h.steps, step)
		return
	}
	h.snaps = append(h.snaps, g.Clone())
	h.steps = append(h.steps, step)
}

// Len is the number of retained snapshots.
func (h *History) Len() int { return len(h.snaps) }

// Total is the number of snapshots appended over the run, including any
// evicted by the retention window.
func (h *History) Total() int { return h.total }

// At returns the k-th retained snapshot and its step number.
func (h *History) At(k int) (step int, g *Grid) {
	return h.steps[k], h.snaps[k]
}

func (h *History) Last() (step int, g *Grid) {
	k := len(h.snaps) - 1
	return h.steps[k], h.snaps[k]
}

// Traverse visits the retained snapshots in step order.
func (h *History) Traverse(f func(step int, g *Grid)) {
	for k, s := range h.snaps {
		f(h.steps[k], s)
	}
}
