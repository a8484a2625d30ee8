// Package solver advances a 2D temperature field in time with the
// explicit forward-time central-space scheme for the heat conduction
// equation with Dirichlet boundaries and a uniform volumetric source.
package solver

import (
	"context"
	"runtime"

	log "github.com/sirupsen/logrus"

	"github.com/bening-gawitsa/heatsim/grid"
	"github.com/bening-gawitsa/heatsim/model"
)

// Stepper owns one run's configuration and derived coefficients. It is
// safe for repeated runs; every Stream call starts again from the
// initial field.
type Stepper struct {
	p  Params
	dt float64

	alpha  float64
	invDx2 float64
	invDz2 float64
	source float64 // H/(rho*cp)

	workers   int
	retention int
}

type Option func(*Stepper)

// WithWorkers sets the number of goroutines the interior update is
// split across. The split is by row ranges with disjoint writes, so the
// result is identical to the serial traversal.
func WithWorkers(n int) Option {
	return func(s *Stepper) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithRetention bounds how many snapshots Run keeps; zero keeps all.
func WithRetention(n int) Option {
	return func(s *Stepper) { s.retention = n }
}

func NewStepper(p Params, opts ...Option) (*Stepper, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	dx2 := p.Dx() * p.Dx()
	dz2 := p.Dz() * p.Dz()
	s := &Stepper{
		p:       p,
		dt:      p.TimeStep(),
		alpha:   p.Alpha(),
		invDx2:  1 / dx2,
		invDz2:  1 / dz2,
		source:  p.Source / (p.Rho * p.Cp),
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.dt > p.MaxStableDt() {
		log.WithFields(log.Fields{
			"dt":    s.dt,
			"dtMax": p.MaxStableDt(),
		}).Warn("time step exceeds the explicit stability bound, expect divergence")
	}
	return s, nil
}

func (s *Stepper) Params() Params { return s.p }
func (s *Stepper) Dt() float64    { return s.dt }

// Info describes the run for the frontend.
func (s *Stepper) Info() model.RunInfo {
	return model.RunInfo{
		Nx:    s.p.Nx,
		Nz:    s.p.Nz,
		Dx:    s.p.Dx(),
		Dz:    s.p.Dz(),
		Dt:    s.dt,
		Steps: s.p.StepCount(),
		Alpha: s.alpha,
	}
}

// ApplyBoundary overwrites the four edge rows/columns of g with the
// configured Dirichlet values. Top and bottom rows first, then the left
// and right columns, so the corner cells take the column values.
func (s *Stepper) ApplyBoundary(g *grid.Grid) {
	nz, nx := g.Nz(), g.Nx()
	top := g.Row(0)
	bottom := g.Row(nz - 1)
	for j := 0; j < nx; j++ {
		top[j] = s.p.Boundary.Top
		bottom[j] = s.p.Boundary.Bottom
	}
	for i := 0; i < nz; i++ {
		g.Set(i, 0, s.p.Boundary.Left)
		g.Set(i, nx-1, s.p.Boundary.Right)
	}
}

// Step advances src by one time step into dst. Boundaries are imposed
// on src first, src is copied as the base of dst, and every interior
// cell of dst is recomputed from the fully-imposed src. The interior
// loop never writes a boundary index, so dst's edges keep the Dirichlet
// values. With fewer than three rows or columns the whole grid is
// boundary and the interior update is a no-op.
func (s *Stepper) Step(dst, src *grid.Grid) {
	s.ApplyBoundary(src)
	dst.CopyFrom(src)
	nz, nx := src.Nz(), src.Nx()
	if nz < 3 || nx < 3 {
		return
	}
	parallelRows(s.workers, 1, nz-1, func(i int) {
		up := src.Row(i - 1)
		mid := src.Row(i)
		down := src.Row(i + 1)
		out := dst.Row(i)
		for j := 1; j < nx-1; j++ {
			d2Tdx2 := (mid[j+1] - 2*mid[j] + mid[j-1]) * s.invDx2
			d2Tdz2 := (down[j] - 2*mid[j] + up[j]) * s.invDz2
			out[j] = mid[j] + s.dt*(s.alpha*(d2Tdx2+d2Tdz2)+s.source)
		}
	})
}

// Stream runs the full step loop from the initial field and hands every
// completed step to fn. The grid passed to fn is the live buffer; fn
// must copy it if it retains it. Stream restarts from the initial state
// on every call, and stops early when ctx is cancelled or fn returns an
// error.
func (s *Stepper) Stream(ctx context.Context, fn func(step int, t float64, g *grid.Grid) error) error {
	cur, err := grid.NewUniform(s.p.Nz, s.p.Nx, s.p.Initial)
	if err != nil {
		return err
	}
	next, err := grid.New(s.p.Nz, s.p.Nx)
	if err != nil {
		return err
	}
	steps := s.p.StepCount()
	for n := 1; n <= steps; n++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		s.Step(next, cur)
		cur, next = next, cur
		if fn != nil {
			if err := fn(n, float64(n)*s.dt, cur); err != nil {
				return err
			}
		}
	}
	return nil
}

// Run materializes the whole snapshot sequence eagerly: StepCount
// snapshots, one per completed step, the initial state not included.
func (s *Stepper) Run(ctx context.Context) (*grid.History, error) {
	h := grid.NewHistory(s.retention)
	err := s.Stream(ctx, func(step int, _ float64, g *grid.Grid) error {
		h.Append(step, g)
		return nil
	})
	if err != nil {
		return h, err
	}
	return h, nil
}
