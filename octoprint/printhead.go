// Package octoprint - printhead.go implements print head movement commands.
package octoprint

import (
	"context"
	"net/http"
)

// Axis names a movement axis of the print head.
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
	AxisZ Axis = "z"
)

// Home homes the print head on the given axes. The server queues the
// necessary moves and answers before they complete; a 409 means the printer
// is not operational or currently printing.
func (c *Client) Home(ctx context.Context, axes ...Axis) error {
	req := map[string]interface{}{
		"command": "home",
		"axes":    axes,
	}
	return c.doRequest(ctx, http.MethodPost, "/api/printer/printhead", nil, req, nil)
}

// JogDelta holds relative print head moves in millimeters. Zero axes are
// omitted from the request, so repeated calls accumulate: Jog x=10 followed
// by Jog x=10 moves 20mm in total.
type JogDelta struct {
	X float64
	Y float64
	Z float64
}

// Jog moves the print head by the given deltas. No client-side bounds
// checking is done; the printer's firmware enforces its limits.
func (c *Client) Jog(ctx context.Context, delta JogDelta) error {
	req := map[string]interface{}{
		"command": "jog",
	}
	if delta.X != 0 {
		req["x"] = delta.X
	}
	if delta.Y != 0 {
		req["y"] = delta.Y
	}
	if delta.Z != 0 {
		req["z"] = delta.Z
	}
	return c.doRequest(ctx, http.MethodPost, "/api/printer/printhead", nil, req, nil)
}
