package casefile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bening-gawitsa/heatsim/solver"
)

func TestDefaultCaseIsValid(t *testing.T) {
	p, err := Default().Params()
	require.NoError(t, err)
	assert.Equal(t, 51, p.Nx)
	assert.Equal(t, 100.0, p.Boundary.Top)
	assert.Equal(t, solver.DefaultSafetyFactor, p.SafetyFactor)
}

func TestParseOverlaysDefaults(t *testing.T) {
	doc := `
nx: 5
nz: 5
lx: 4.0
lz: 4.0
rho: 1.0
cp: 1.0
kappa: 1.0
tmax: 10.0
dt: 0.2
boundary:
  bottom: 10
`
	p, err := Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, 5, p.Nx)
	assert.Equal(t, 0.2, p.Dt)
	assert.Equal(t, 10.0, p.Boundary.Bottom)
	// untouched keys keep the defaults
	assert.Equal(t, 100.0, p.Boundary.Top)
	assert.Equal(t, 0.0, p.Source)
}

func TestParseRejectsInvalidCase(t *testing.T) {
	_, err := Parse([]byte("nx: 2"))
	require.Error(t, err)
	assert.ErrorIs(t, err, solver.ErrInvalidConfiguration)
}

func TestParseRejectsBadYAML(t *testing.T) {
	_, err := Parse([]byte("nx: [not a number"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "case.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tmax: 5\n"), 0644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5.0, p.Tmax)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
