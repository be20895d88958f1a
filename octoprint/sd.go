// Package octoprint - sd.go implements SD card management commands.
package octoprint

import (
	"context"
	"net/http"
)

// SDState reports whether the printer's SD card is initialized.
type SDState struct {
	Ready bool `json:"ready"`
}

// SD queries the SD card state.
func (c *Client) SD(ctx context.Context) (*SDState, error) {
	var resp SDState
	if err := c.doRequest(ctx, http.MethodGet, "/api/printer/sd", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) sdCommand(ctx context.Context, command string) error {
	req := map[string]interface{}{"command": command}
	return c.doRequest(ctx, http.MethodPost, "/api/printer/sd", nil, req, nil)
}

// InitSD initializes the printer's SD card, making it available for file
// listings and printing.
func (c *Client) InitSD(ctx context.Context) error {
	return c.sdCommand(ctx, "init")
}

// RefreshSD rereads the list of files on the SD card. Requires an
// initialized card.
func (c *Client) RefreshSD(ctx context.Context) error {
	return c.sdCommand(ctx, "refresh")
}

// ReleaseSD releases the SD card so it can be used from the printer's own
// controls again.
func (c *Client) ReleaseSD(ctx context.Context) error {
	return c.sdCommand(ctx, "release")
}
