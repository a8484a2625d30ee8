// Package casefile reads a simulation case definition from YAML and
// turns it into solver parameters.
package casefile

import (
	"fmt"
	"os"

	"github.com/ghodss/yaml"

	"github.com/bening-gawitsa/heatsim/solver"
)

// Case mirrors solver.Params for the YAML document. ghodss/yaml routes
// through encoding/json, so the tags are json tags. Omitted keys keep
// the defaults of the reference plate case.
type Case struct {
	Title        string   `json:"title"`
	Lx           float64  `json:"lx"`
	Lz           float64  `json:"lz"`
	Nx           int      `json:"nx"`
	Nz           int      `json:"nz"`
	Rho          float64  `json:"rho"`
	Cp           float64  `json:"cp"`
	Kappa        float64  `json:"kappa"`
	Source       float64  `json:"source"`
	Initial      float64  `json:"initial"`
	Tmax         float64  `json:"tmax"`
	SafetyFactor float64  `json:"safety_factor"`
	Dt           float64  `json:"dt"`
	Boundary     Boundary `json:"boundary"`
}

type Boundary struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
}

// Default is the aluminium plate case the study notebook uses: hot top
// and left edges, cold bottom and right edges, no internal source.
func Default() Case {
	return Case{
		Title:        "aluminium plate",
		Lx:           1.0,
		Lz:           1.0,
		Nx:           51,
		Nz:           51,
		Rho:          2700,
		Cp:           900,
		Kappa:        237,
		Source:       0,
		Initial:      0,
		Tmax:         60,
		SafetyFactor: solver.DefaultSafetyFactor,
		Boundary: Boundary{
			Top:    100,
			Bottom: 0,
			Left:   100,
			Right:  0,
		},
	}
}

// Parse unmarshals data over the defaults and validates the result.
func Parse(data []byte) (solver.Params, error) {
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return solver.Params{}, fmt.Errorf("parse case: %w", err)
	}
	return c.Params()
}

func Load(path string) (solver.Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return solver.Params{}, fmt.Errorf("read case file: %w", err)
	}
	return Parse(data)
}

// Params converts the case to validated solver parameters.
func (c Case) Params() (solver.Params, error) {
	p := solver.Params{
		Lx:           c.Lx,
		Lz:           c.Lz,
		Nx:           c.Nx,
		Nz:           c.Nz,
		Rho:          c.Rho,
		Cp:           c.Cp,
		Kappa:        c.Kappa,
		Source:       c.Source,
		Initial:      c.Initial,
		Tmax:         c.Tmax,
		SafetyFactor: c.SafetyFactor,
		Dt:           c.Dt,
		Boundary: solver.Boundary{
			Top:    c.Boundary.Top,
			Bottom: c.Boundary.Bottom,
			Left:   c.Boundary.Left,
			Right:  c.Boundary.Right,
		},
	}
	if err := p.Validate(); err != nil {
		return solver.Params{}, err
	}
	return p, nil
}
