// Package octoprint - version.go implements the server version query.
package octoprint

import (
	"context"
	"net/http"
)

// VersionInformation reports the API and server versions.
type VersionInformation struct {
	API    string `json:"api"`
	Server string `json:"server"`
	Text   string `json:"text"`
}

// Version queries the server's version information. A response without a
// server version yields a *ServiceError.
func (c *Client) Version(ctx context.Context) (*VersionInformation, error) {
	var resp VersionInformation
	if err := c.doRequest(ctx, http.MethodGet, "/api/version", nil, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Server == "" && resp.API == "" {
		return nil, &ServiceError{
			Op:     "server version",
			Reason: "response carries no version fields",
		}
	}
	return &resp, nil
}
