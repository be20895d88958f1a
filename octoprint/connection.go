// Package octoprint - connection.go implements the serial connection
// between the OctoPrint server and the printer it controls.
package octoprint

import (
	"context"
	"net/http"
)

// ConnectionProfile identifies a printer profile known to the server.
type ConnectionProfile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CurrentConnection describes the active (or last attempted) connection.
type CurrentConnection struct {
	State          string `json:"state"`
	Port           string `json:"port"`
	Baudrate       int    `json:"baudrate"`
	PrinterProfile string `json:"printerProfile"`
}

// ConnectionOptions lists what the server offers for new connections.
type ConnectionOptions struct {
	Ports                    []string            `json:"ports"`
	Baudrates                []int               `json:"baudrates"`
	PrinterProfiles          []ConnectionProfile `json:"printerProfiles"`
	PortPreference           string              `json:"portPreference"`
	BaudratePreference       int                 `json:"baudratePreference"`
	PrinterProfilePreference string              `json:"printerProfilePreference"`
	Autoconnect              bool                `json:"autoconnect"`
}

// ConnectionState is the server's answer to a connection query.
type ConnectionState struct {
	Current CurrentConnection `json:"current"`
	Options ConnectionOptions `json:"options"`
}

// Connection queries the state of the connection between server and
// printer, including the options available for connecting. A response
// without a connection state yields a *ServiceError.
func (c *Client) Connection(ctx context.Context) (*ConnectionState, error) {
	var resp ConnectionState
	if err := c.doRequest(ctx, http.MethodGet, "/api/connection", nil, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Current.State == "" {
		return nil, &ServiceError{
			Op:     "connection info",
			Reason: "response carries no connection state",
		}
	}
	return &resp, nil
}

// ConnectOptions configure a connection attempt. Zero-valued fields are
// omitted and the server falls back to its saved preferences.
type ConnectOptions struct {
	Port           string
	Baudrate       int
	PrinterProfile string
	// Save makes the supplied port and baudrate the new preference.
	Save bool
	// Autoconnect makes the server connect on its next startup.
	Autoconnect bool
}

// Connect instructs the server to connect to the printer.
func (c *Client) Connect(ctx context.Context, opts ConnectOptions) error {
	req := map[string]interface{}{"command": "connect"}
	if opts.Port != "" {
		req["port"] = opts.Port
	}
	if opts.Baudrate != 0 {
		req["baudrate"] = opts.Baudrate
	}
	if opts.PrinterProfile != "" {
		req["printerProfile"] = opts.PrinterProfile
	}
	if opts.Save {
		req["save"] = true
	}
	if opts.Autoconnect {
		req["autoconnect"] = true
	}
	return c.doRequest(ctx, http.MethodPost, "/api/connection", nil, req, nil)
}

// Disconnect instructs the server to close its connection to the printer.
func (c *Client) Disconnect(ctx context.Context) error {
	req := map[string]interface{}{"command": "disconnect"}
	return c.doRequest(ctx, http.MethodPost, "/api/connection", nil, req, nil)
}
