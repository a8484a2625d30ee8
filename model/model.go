// Package model holds the types shared between the solver and the
// websocket frontend protocol.
package model

// Msg is the JSON envelope exchanged with the frontend over the
// websocket connection.
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// RunInfo is sent with the "started" reply so the frontend can size its
// canvas and progress bar before frames arrive.
type RunInfo struct {
	Nx    int     `json:"nx"`
	Nz    int     `json:"nz"`
	Dx    float64 `json:"dx"`
	Dz    float64 `json:"dz"`
	Dt    float64 `json:"dt"`
	Steps int     `json:"steps"`
	Alpha float64 `json:"alpha"`
}

// Frame is one pushed snapshot. Cells are row-major, Nz rows of Nx
// columns; Min and Max feed the frontend colour scale.
type Frame struct {
	Step  int       `json:"step"`
	Time  float64   `json:"time"`
	Nx    int       `json:"nx"`
	Nz    int       `json:"nz"`
	Min   float64   `json:"min"`
	Max   float64   `json:"max"`
	Cells []float64 `json:"cells"`
}
