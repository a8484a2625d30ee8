package server

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bening-gawitsa/heatsim/config"
	"github.com/bening-gawitsa/heatsim/model"
)

const testCase = `
nx: 5
nz: 5
lx: 4.0
lz: 4.0
rho: 1.0
cp: 1.0
kappa: 1.0
tmax: 10.0
dt: 0.2
`

func recv(t *testing.T, h *Hub) model.Msg {
	t.Helper()
	select {
	case m := <-h.out:
		return m
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a reply")
		return model.Msg{}
	}
}

func TestHandleCase(t *testing.T) {
	h := newHub(nil, config.Default())
	h.handleCase(testCase)
	reply := recv(t, h)
	assert.Equal(t, "caseSet", reply.Type)
	assert.Equal(t, 5, h.params.Nx)
	assert.Equal(t, 0.2, h.params.Dt)

	h.handleCase("nx: 2")
	reply = recv(t, h)
	assert.Equal(t, "error", reply.Type)
}

func TestStopWithoutRun(t *testing.T) {
	h := newHub(nil, config.Default())
	h.handleStop()
	assert.Equal(t, "error", recv(t, h).Type)
}

func TestRunLifecycle(t *testing.T) {
	cfg := config.Default()
	cfg.PushStride = 10
	h := newHub(nil, cfg)

	h.handleCase(testCase)
	require.Equal(t, "caseSet", recv(t, h).Type)

	h.handleStart()
	started := recv(t, h)
	require.Equal(t, "started", started.Type)
	var info model.RunInfo
	require.NoError(t, json.Unmarshal([]byte(started.Content), &info))
	assert.Equal(t, 50, info.Steps)
	assert.Equal(t, 0.2, info.Dt)

	var steps []int
	for {
		m := recv(t, h)
		if m.Type == "finished" {
			break
		}
		require.Equal(t, "frame", m.Type)
		var f model.Frame
		require.NoError(t, json.Unmarshal([]byte(m.Content), &f))
		require.Equal(t, 5, f.Nx)
		require.Len(t, f.Cells, 25)
		steps = append(steps, f.Step)
	}
	// every 10th step plus the final one
	assert.Equal(t, []int{10, 20, 30, 40, 50}, steps)
}

func TestStopCancelsRun(t *testing.T) {
	cfg := config.Default()
	cfg.PushStride = 100
	h := newHub(nil, cfg)

	// A case long enough that the run is still going when we stop it.
	longCase := `
nx: 5
nz: 5
lx: 4.0
lz: 4.0
rho: 1.0
cp: 1.0
kappa: 1.0
tmax: 1000000.0
dt: 0.2
`
	h.handleCase(longCase)
	require.Equal(t, "caseSet", recv(t, h).Type)

	h.handleStart()
	require.Equal(t, "started", recv(t, h).Type)
	h.handleStop()

	for {
		m := recv(t, h)
		if m.Type == "frame" {
			continue
		}
		assert.Equal(t, "stopped", m.Type)
		return
	}
}
