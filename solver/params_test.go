package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plateParams() Params {
	return Params{
		Lx:    4.0,
		Lz:    4.0,
		Nx:    5,
		Nz:    5,
		Rho:   1.0,
		Cp:    1.0,
		Kappa: 1.0,
		Tmax:  10.0,
		Dt:    0.2,
		Boundary: Boundary{
			Top:    100,
			Bottom: 0,
			Left:   100,
			Right:  0,
		},
	}
}

func TestDerivedQuantities(t *testing.T) {
	p := plateParams()
	assert.Equal(t, 1.0, p.Dx())
	assert.Equal(t, 1.0, p.Dz())
	assert.Equal(t, 1.0, p.Alpha())
	// 0.5*dx^2*dz^2 / (alpha*(dx^2+dz^2))
	assert.Equal(t, 0.25, p.MaxStableDt())
	assert.Equal(t, 0.2, p.TimeStep())
	assert.Equal(t, 50, p.StepCount())
}

func TestTimeStepDefaultsToSafetyFactor(t *testing.T) {
	p := plateParams()
	p.Dt = 0
	// 0.8 * 0.25
	assert.InDelta(t, 0.2, p.TimeStep(), 1e-15)

	p.SafetyFactor = 0.5
	assert.InDelta(t, 0.125, p.TimeStep(), 1e-15)
}

func TestValidate(t *testing.T) {
	require.NoError(t, plateParams().Validate())

	cases := []struct {
		name   string
		mutate func(*Params)
	}{
		{"nx too small", func(p *Params) { p.Nx = 2 }},
		{"nz too small", func(p *Params) { p.Nz = 2 }},
		{"zero lx", func(p *Params) { p.Lx = 0 }},
		{"zero rho", func(p *Params) { p.Rho = 0 }},
		{"zero cp", func(p *Params) { p.Cp = 0 }},
		{"zero kappa", func(p *Params) { p.Kappa = 0 }},
		{"negative dt", func(p *Params) { p.Dt = -0.1 }},
		{"negative tmax", func(p *Params) { p.Tmax = -1 }},
		{"safety factor above one", func(p *Params) { p.SafetyFactor = 1.5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := plateParams()
			tc.mutate(&p)
			err := p.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
		})
	}
}
