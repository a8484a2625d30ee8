package solver

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfiguration is wrapped by every parameter validation
// failure. All such conditions are configuration-time and never
// retried.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// DefaultSafetyFactor is applied to the maximum stable explicit time
// step when no explicit dt is configured.
const DefaultSafetyFactor = 0.8

// Boundary holds the fixed Dirichlet temperatures of the four domain
// edges. They are re-applied at the start of every time step: top row
// first, then bottom row, then left and right columns, so the corners
// belong to the columns.
type Boundary struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
}

// Params is the immutable configuration of one simulation run. Material
// properties are scalar constants over the whole domain and the whole
// run.
type Params struct {
	// Physical domain size, metres.
	Lx float64
	Lz float64

	// Grid resolution. Row index runs along z, column index along x.
	Nx int
	Nz int

	// Material constants: density, specific heat, thermal conductivity.
	Rho   float64
	Cp    float64
	Kappa float64

	// Source is the uniform volumetric heating rate H.
	Source float64

	// Initial interior temperature.
	Initial float64

	Boundary Boundary

	// Total simulated time.
	Tmax float64

	// SafetyFactor scales the maximum stable time step; zero means
	// DefaultSafetyFactor.
	SafetyFactor float64

	// Dt overrides the derived stable time step when positive. An
	// unstable choice is not rejected, only warned about: the scheme
	// then diverges instead of erroring.
	Dt float64
}

// Dx is the x grid spacing, Lx/(Nx-1).
func (p Params) Dx() float64 { return p.Lx / float64(p.Nx-1) }

// Dz is the z grid spacing, Lz/(Nz-1).
func (p Params) Dz() float64 { return p.Lz / float64(p.Nz-1) }

// Alpha is the thermal diffusivity kappa/(rho*cp).
func (p Params) Alpha() float64 { return p.Kappa / (p.Rho * p.Cp) }

// MaxStableDt is the largest time step for which the explicit FTCS
// update stays bounded: 0.5*dx^2*dz^2 / (alpha*(dx^2+dz^2)).
func (p Params) MaxStableDt() float64 {
	dx2 := p.Dx() * p.Dx()
	dz2 := p.Dz() * p.Dz()
	return 0.5 * dx2 * dz2 / (p.Alpha() * (dx2 + dz2))
}

// TimeStep is the step size the run will use: the explicit Dt when set,
// otherwise the safety factor times MaxStableDt.
func (p Params) TimeStep() float64 {
	if p.Dt > 0 {
		return p.Dt
	}
	f := p.SafetyFactor
	if f == 0 {
		f = DefaultSafetyFactor
	}
	return f * p.MaxStableDt()
}

// StepCount is floor(Tmax/dt), the number of completed steps a run
// produces.
func (p Params) StepCount() int {
	return int(math.Floor(p.Tmax / p.TimeStep()))
}

func (p Params) Validate() error {
	if p.Nx < 3 {
		return fmt.Errorf("%w: Nx must be at least 3, got %d", ErrInvalidConfiguration, p.Nx)
	}
	if p.Nz < 3 {
		return fmt.Errorf("%w: Nz must be at least 3, got %d", ErrInvalidConfiguration, p.Nz)
	}
	if p.Lx <= 0 || p.Lz <= 0 {
		return fmt.Errorf("%w: domain size must be positive, got %gx%g", ErrInvalidConfiguration, p.Lx, p.Lz)
	}
	if p.Rho <= 0 {
		return fmt.Errorf("%w: density must be positive, got %g", ErrInvalidConfiguration, p.Rho)
	}
	if p.Cp <= 0 {
		return fmt.Errorf("%w: specific heat must be positive, got %g", ErrInvalidConfiguration, p.Cp)
	}
	if p.Kappa <= 0 {
		return fmt.Errorf("%w: thermal conductivity must be positive, got %g", ErrInvalidConfiguration, p.Kappa)
	}
	if p.SafetyFactor < 0 || p.SafetyFactor > 1 {
		return fmt.Errorf("%w: safety factor must be in (0,1], got %g", ErrInvalidConfiguration, p.SafetyFactor)
	}
	if p.Tmax < 0 {
		return fmt.Errorf("%w: Tmax must not be negative, got %g", ErrInvalidConfiguration, p.Tmax)
	}
	if p.Dt < 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidConfiguration, p.Dt)
	}
	if dt := p.TimeStep(); dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return fmt.Errorf("%w: derived time step %g is unusable", ErrInvalidConfiguration, dt)
	}
	return nil
}
