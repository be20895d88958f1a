// Package octoprint - job.go implements print job queries and control.
package octoprint

import (
	"context"
	"net/http"
)

// JobFile describes the file a job refers to.
type JobFile struct {
	Name   string `json:"name"`
	Origin string `json:"origin"`
	Size   int64  `json:"size"`
	Date   int64  `json:"date"`
}

// FilamentUse is the estimated filament consumption for one extruder.
type FilamentUse struct {
	// Length in millimeters.
	Length float64 `json:"length"`
	// Volume in cubic centimeters.
	Volume float64 `json:"volume"`
}

// JobDetails describes the currently selected job.
type JobDetails struct {
	File               JobFile                `json:"file"`
	EstimatedPrintTime float64                `json:"estimatedPrintTime"`
	Filament           map[string]FilamentUse `json:"filament"`
}

// JobProgress is the progress block of a job response. Fields the server
// reports as null stay at their zero value.
type JobProgress struct {
	// Completion in percent.
	Completion float64 `json:"completion"`
	// FilePos is the byte position within the printed file.
	FilePos int64 `json:"filepos"`
	// PrintTime is the elapsed print time in seconds.
	PrintTime float64 `json:"printTime"`
	// PrintTimeLeft is the estimated remaining print time in seconds.
	PrintTimeLeft float64 `json:"printTimeLeft"`
}

// JobResponse is the server's view of the current job.
type JobResponse struct {
	Job      JobDetails  `json:"job"`
	Progress JobProgress `json:"progress"`
	State    string      `json:"state"`
}

// Job queries information about the current print job: the selected file,
// progress and the job state text. A response without a state is treated
// as inconsistent and returned as a *ServiceError.
func (c *Client) Job(ctx context.Context) (*JobResponse, error) {
	var resp JobResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/job", nil, nil, &resp); err != nil {
		return nil, err
	}
	if resp.State == "" {
		return nil, &ServiceError{
			Op:     "job info",
			Reason: "response carries no job state",
		}
	}
	return &resp, nil
}

func (c *Client) jobCommand(ctx context.Context, req map[string]interface{}) error {
	return c.doRequest(ctx, http.MethodPost, "/api/job", nil, req, nil)
}

// StartJob starts printing the currently selected file. The server answers
// 409 when no file is selected or a print is already active.
func (c *Client) StartJob(ctx context.Context) error {
	return c.jobCommand(ctx, map[string]interface{}{"command": "start"})
}

// PauseJob pauses the running job.
func (c *Client) PauseJob(ctx context.Context) error {
	return c.jobCommand(ctx, map[string]interface{}{"command": "pause", "action": "pause"})
}

// ResumeJob resumes a paused job.
func (c *Client) ResumeJob(ctx context.Context) error {
	return c.jobCommand(ctx, map[string]interface{}{"command": "pause", "action": "resume"})
}

// RestartJob restarts the current job from the beginning. Only valid for a
// paused job.
func (c *Client) RestartJob(ctx context.Context) error {
	return c.jobCommand(ctx, map[string]interface{}{"command": "restart"})
}

// CancelJob cancels the running or paused job.
func (c *Client) CancelJob(ctx context.Context) error {
	return c.jobCommand(ctx, map[string]interface{}{"command": "cancel"})
}
