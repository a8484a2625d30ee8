package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/bening-gawitsa/heatsim/casefile"
	"github.com/bening-gawitsa/heatsim/config"
	"github.com/bening-gawitsa/heatsim/grid"
	"github.com/bening-gawitsa/heatsim/model"
	"github.com/bening-gawitsa/heatsim/solver"
)

// Hub owns one connection's requests and responses. Replies and frames
// go through the out channel so a single goroutine writes to the
// connection.
type Hub struct {
	conn *websocket.Conn
	cfg  config.Config

	msg chan model.Msg
	out chan model.Msg

	done     chan struct{}
	doneOnce sync.Once

	mu      sync.Mutex
	params  solver.Params
	hasCase bool
	run     *solver.Hub
}

func newHub(conn *websocket.Conn, cfg config.Config) *Hub {
	return &Hub{
		conn: conn,
		cfg:  cfg,
		msg:  make(chan model.Msg, 10),
		out:  make(chan model.Msg, 64),
		done: make(chan struct{}),
	}
}

func (h *Hub) close() {
	h.doneOnce.Do(func() {
		h.mu.Lock()
		if h.run != nil {
			h.run.StopSignal()
		}
		h.mu.Unlock()
		close(h.done)
	})
}

func (h *Hub) handleRequest() {
	for {
		select {
		case <-h.done:
			return
		case msg := <-h.msg:
			switch msg.Type {
			case "case":
				h.handleCase(msg.Content)
			case "start":
				h.handleStart()
			case "stop":
				h.handleStop()
			default:
				log.WithField("type", msg.Type).Warn("no such message type")
				h.send("error", "no such message type: "+msg.Type)
			}
		}
	}
}

func (h *Hub) handleResponse() {
	for {
		select {
		case <-h.done:
			return
		case reply := <-h.out:
			if err := h.conn.WriteJSON(&reply); err != nil {
				log.WithError(err).Error("write failed")
			}
		}
	}
}

func (h *Hub) send(msgType, content string) {
	select {
	case h.out <- model.Msg{Type: msgType, Content: content}:
	case <-h.done:
	}
}

func (h *Hub) handleCase(content string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.run != nil {
		h.send("error", "run in progress")
		return
	}
	p, err := casefile.Parse([]byte(content))
	if err != nil {
		h.send("error", err.Error())
		return
	}
	h.params = p
	h.hasCase = true
	log.WithFields(log.Fields{
		"nx":   p.Nx,
		"nz":   p.Nz,
		"tmax": p.Tmax,
		"dt":   p.TimeStep(),
	}).Info("case set")
	h.send("caseSet", "case is set")
}

func (h *Hub) handleStart() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.run != nil {
		h.send("error", "run in progress")
		return
	}
	if !h.hasCase {
		p, err := casefile.Default().Params()
		if err != nil {
			h.send("error", err.Error())
			return
		}
		h.params = p
	}
	stepper, err := solver.NewStepper(h.params, solver.WithWorkers(h.cfg.Workers))
	if err != nil {
		h.send("error", err.Error())
		return
	}

	info, err := json.Marshal(stepper.Info())
	if err != nil {
		h.send("error", err.Error())
		return
	}
	run := solver.NewHub()
	ctx := run.StartSignal(context.Background())
	h.run = run
	h.send("started", string(info))
	log.WithFields(log.Fields{
		"steps": stepper.Info().Steps,
		"dt":    stepper.Dt(),
	}).Info("run started")

	go h.runLoop(ctx, stepper, run)
	go h.pushLoop(run)
}

func (h *Hub) handleStop() {
	h.mu.Lock()
	run := h.run
	h.mu.Unlock()
	if run == nil {
		h.send("error", "no run in progress")
		return
	}
	run.StopSignal()
}

// runLoop steps the field, handing every stride-th frame and the final
// one to the run hub.
func (h *Hub) runLoop(ctx context.Context, stepper *solver.Stepper, run *solver.Hub) {
	stride := h.cfg.PushStride
	if stride < 1 {
		stride = 1
	}
	steps := stepper.Info().Steps
	err := stepper.Stream(ctx, func(step int, t float64, g *grid.Grid) error {
		if step%stride != 0 && step != steps {
			return nil
		}
		if !run.PushFrame(solver.BuildFrame(step, t, g)) {
			return context.Canceled
		}
		return nil
	})
	run.FinishSignal(err)
}

// pushLoop forwards frames to the writer until the run finishes, then
// reports the outcome and releases the run slot.
func (h *Hub) pushLoop(run *solver.Hub) {
	defer func() {
		h.mu.Lock()
		h.run = nil
		h.mu.Unlock()
	}()
	for {
		select {
		case <-h.done:
			run.StopSignal()
			return
		case f := <-run.Frames:
			h.sendFrame(f)
		case err := <-run.Finished:
			h.drainFrames(run)
			switch {
			case err == nil:
				h.send("finished", "run complete")
				log.Info("run finished")
			case errors.Is(err, context.Canceled):
				h.send("stopped", "run stopped")
				log.Info("run stopped")
			default:
				h.send("error", err.Error())
				log.WithError(err).Error("run failed")
			}
			return
		}
	}
}

func (h *Hub) drainFrames(run *solver.Hub) {
	for {
		select {
		case f := <-run.Frames:
			h.sendFrame(f)
		default:
			return
		}
	}
}

func (h *Hub) sendFrame(f model.Frame) {
	data, err := json.Marshal(f)
	if err != nil {
		log.WithError(err).Error("marshal frame")
		return
	}
	h.send("frame", string(data))
}
