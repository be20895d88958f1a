// Package octoprint - bed.go implements heated bed operations.
package octoprint

import (
	"context"
	"net/http"
	"net/url"
)

// SetBedTemperature sets the target temperature of the heated bed in
// degrees Celsius. A target of 0 switches the heater off.
func (c *Client) SetBedTemperature(ctx context.Context, target float64) error {
	req := map[string]interface{}{
		"command": "target",
		"target":  target,
	}
	return c.doRequest(ctx, http.MethodPost, "/api/printer/bed", nil, req, nil)
}

// BedTemperature reads the current and target temperature of the heated
// bed. A response without a bed reading yields a *ServiceError; printers
// without a heated bed answer 409 instead.
func (c *Client) BedTemperature(ctx context.Context) (*Temperature, error) {
	query := url.Values{}
	query.Set("history", "false")

	var data TemperatureData
	if err := c.doRequest(ctx, http.MethodGet, "/api/printer/bed", query, nil, &data); err != nil {
		return nil, err
	}

	t, ok := data.Current["bed"]
	if !ok {
		return nil, &ServiceError{
			Op:     "bed temperature",
			Reason: `response has no "bed" reading`,
		}
	}
	return &t, nil
}
