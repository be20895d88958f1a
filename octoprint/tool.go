// Package octoprint - tool.go implements hotend (tool) operations:
// temperature control, tool selection and extrusion.
package octoprint

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// toolKey formats the wire name of an extruder, e.g. "tool0".
func toolKey(tool int) string {
	return fmt.Sprintf("tool%d", tool)
}

// SetToolTemperature sets the target temperature of the given extruder in
// degrees Celsius. A target of 0 switches the heater off.
func (c *Client) SetToolTemperature(ctx context.Context, tool int, target float64) error {
	req := map[string]interface{}{
		"command": "target",
		"targets": map[string]float64{toolKey(tool): target},
	}
	return c.doRequest(ctx, http.MethodPost, "/api/printer/tool", nil, req, nil)
}

// ToolTemperature reads the current and target temperature of the given
// extruder. A response without a reading for that extruder yields a
// *ServiceError.
func (c *Client) ToolTemperature(ctx context.Context, tool int) (*Temperature, error) {
	query := url.Values{}
	query.Set("history", "false")

	var data TemperatureData
	if err := c.doRequest(ctx, http.MethodGet, "/api/printer/tool", query, nil, &data); err != nil {
		return nil, err
	}

	key := toolKey(tool)
	t, ok := data.Current[key]
	if !ok {
		return nil, &ServiceError{
			Op:     "tool temperature",
			Reason: fmt.Sprintf("response has no %q reading", key),
		}
	}
	return &t, nil
}

// SelectTool makes the given extruder the active one for subsequent
// extrude commands.
func (c *Client) SelectTool(ctx context.Context, tool int) error {
	req := map[string]interface{}{
		"command": "select",
		"tool":    toolKey(tool),
	}
	return c.doRequest(ctx, http.MethodPost, "/api/printer/tool", nil, req, nil)
}

// Extrude extrudes the given amount of filament in millimeters on the
// currently selected extruder. Negative amounts retract.
func (c *Client) Extrude(ctx context.Context, amount float64) error {
	req := map[string]interface{}{
		"command": "extrude",
		"amount":  amount,
	}
	return c.doRequest(ctx, http.MethodPost, "/api/printer/tool", nil, req, nil)
}
