// Package octoprint - command.go implements the arbitrary G-code escape
// hatch.
package octoprint

import (
	"context"
	"net/http"
)

// SendCommands sends one or more raw G-code commands to the printer in
// order. The commands are passed through uninterpreted; whether they make
// sense is between the caller and the firmware.
func (c *Client) SendCommands(ctx context.Context, commands ...string) error {
	var req map[string]interface{}
	if len(commands) == 1 {
		req = map[string]interface{}{"command": commands[0]}
	} else {
		req = map[string]interface{}{"commands": commands}
	}
	return c.doRequest(ctx, http.MethodPost, "/api/printer/command", nil, req, nil)
}
