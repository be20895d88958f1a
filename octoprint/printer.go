// Package octoprint - printer.go implements the printer state query and the
// shared temperature types.
package octoprint

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Temperature is a single sensor reading as reported by the server.
// Values are degrees Celsius, passed through unmodified.
type Temperature struct {
	Actual float64 `json:"actual"`
	Target float64 `json:"target"`
	Offset float64 `json:"offset"`
}

// StateFlags mirror OctoPrint's printer state flags.
type StateFlags struct {
	Operational   bool `json:"operational"`
	Paused        bool `json:"paused"`
	Printing      bool `json:"printing"`
	Cancelling    bool `json:"cancelling"`
	Pausing       bool `json:"pausing"`
	SDReady       bool `json:"sdReady"`
	Error         bool `json:"error"`
	Ready         bool `json:"ready"`
	ClosedOrError bool `json:"closedOrError"`
}

// PrinterState is the state block of a printer status response.
type PrinterState struct {
	Text  string     `json:"text"`
	Flags StateFlags `json:"flags"`
}

// State is a printer state derived from the server's state flags.
type State string

const (
	StateUnknown     State = "Unknown"
	StateOffline     State = "Offline"
	StateOperational State = "Operational"
	StatePrinting    State = "Printing"
	StatePausing     State = "Pausing"
	StatePaused      State = "Paused"
	StateCancelling  State = "Cancelling"
	StateError       State = "Error"
)

// Derived condenses the state flags into a single State value. The server's
// free-form state text stays available in Text for display.
func (s PrinterState) Derived() State {
	switch {
	case s.Flags.ClosedOrError && !s.Flags.Error:
		return StateOffline
	case s.Flags.Error:
		return StateError
	case s.Flags.Cancelling:
		return StateCancelling
	case s.Flags.Pausing:
		return StatePausing
	case s.Flags.Paused:
		return StatePaused
	case s.Flags.Printing:
		return StatePrinting
	case s.Flags.Operational:
		return StateOperational
	}
	return StateUnknown
}

// TemperatureHistoryEntry is one point of recorded temperature history.
type TemperatureHistoryEntry struct {
	// Time is the Unix timestamp of the datapoint.
	Time int64

	// Readings maps sensor names ("tool0", "bed", ...) to their reading
	// at that point.
	Readings map[string]Temperature
}

// UnmarshalJSON splits the timestamp off from the per-sensor readings,
// which share one JSON object in the wire format.
func (e *TemperatureHistoryEntry) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Readings = map[string]Temperature{}
	for key, value := range raw {
		if key == "time" {
			if err := json.Unmarshal(value, &e.Time); err != nil {
				return err
			}
			continue
		}
		var t Temperature
		if err := json.Unmarshal(value, &t); err != nil {
			return err
		}
		e.Readings[key] = t
	}
	return nil
}

// TemperatureData is the temperature block of a status response. On the
// wire the current readings and the optional history share one object, with
// sensor names ("tool0", "tool1", "bed", ...) next to a "history" key.
type TemperatureData struct {
	// Current maps sensor names to their latest reading.
	Current map[string]Temperature

	// History holds recorded datapoints, newest last. Only populated when
	// the query asked for history.
	History []TemperatureHistoryEntry
}

func (d *TemperatureData) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.Current = map[string]Temperature{}
	for key, value := range raw {
		if key == "history" {
			if err := json.Unmarshal(value, &d.History); err != nil {
				return err
			}
			continue
		}
		var t Temperature
		if err := json.Unmarshal(value, &t); err != nil {
			return err
		}
		d.Current[key] = t
	}
	return nil
}

// SDInfo is the SD card block of a status response.
type SDInfo struct {
	Ready bool `json:"ready"`
}

// StatusResponse is the full printer status as returned by the server.
type StatusResponse struct {
	State       PrinterState    `json:"state"`
	Temperature TemperatureData `json:"temperature"`
	SD          SDInfo          `json:"sd"`
}

// StatusOptions control a printer status query.
type StatusOptions struct {
	// History requests recorded temperature datapoints in addition to the
	// current readings.
	History bool

	// Limit caps the number of history datapoints. Only meaningful
	// together with History.
	Limit int

	// Exclude names status blocks ("sd", "temperature", "state") to leave
	// out of the response.
	Exclude []string
}

// Status queries the current printer state: state text and flags, the
// temperature readings of all reported sensors and SD card readiness.
//
// A response that carries neither state nor temperature data is treated as
// inconsistent and returned as a *ServiceError, unless those blocks were
// explicitly excluded.
func (c *Client) Status(ctx context.Context, opts StatusOptions) (*StatusResponse, error) {
	query := url.Values{}
	if opts.History {
		query.Set("history", "true")
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if len(opts.Exclude) > 0 {
		query.Set("exclude", strings.Join(opts.Exclude, ","))
	}

	var resp StatusResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/printer", query, nil, &resp); err != nil {
		return nil, err
	}

	if len(opts.Exclude) == 0 && resp.State.Text == "" && len(resp.Temperature.Current) == 0 {
		return nil, &ServiceError{
			Op:     "printer status",
			Reason: "response carries neither state nor temperature data",
		}
	}
	return &resp, nil
}
