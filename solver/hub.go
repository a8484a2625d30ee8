package solver

import (
	"context"
	"sync"

	"github.com/bening-gawitsa/heatsim/model"
)

// Hub carries the signalling between one stepping run and its pusher:
// frames flow out, Finished reports the run's terminal error, and
// StopSignal cancels the run. One Hub serves one run.
type Hub struct {
	Frames   chan model.Frame
	Finished chan error

	stop     chan struct{}
	stopOnce sync.Once
	cancel   context.CancelFunc
}

func NewHub() *Hub {
	return &Hub{
		Frames:   make(chan model.Frame, 8),
		Finished: make(chan error, 1),
		stop:     make(chan struct{}),
	}
}

// StartSignal derives the run context whose cancellation StopSignal
// triggers.
func (h *Hub) StartSignal(parent context.Context) context.Context {
	ctx, cancel := context.WithCancel(parent)
	h.cancel = cancel
	return ctx
}

// StopSignal cancels the run. Safe to call more than once.
func (h *Hub) StopSignal() {
	h.stopOnce.Do(func() {
		if h.cancel != nil {
			h.cancel()
		}
		close(h.stop)
	})
}

// Stopped is closed once StopSignal has fired.
func (h *Hub) Stopped() <-chan struct{} { return h.stop }

// PushFrame queues f for the pusher. It reports false when the run was
// stopped and nobody drains Frames anymore.
func (h *Hub) PushFrame(f model.Frame) bool {
	select {
	case h.Frames <- f:
		return true
	case <-h.stop:
		return false
	}
}

// FinishSignal hands the run's terminal error (nil on completion) to
// the pusher.
func (h *Hub) FinishSignal(err error) {
	h.Finished <- err
}
