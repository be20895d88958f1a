// Package octoprint provides an HTTP client for the OctoPrint REST API.
//
// This package implements a thin binding to an OctoPrint server, enabling
// CLI tools and other applications to query printer state and issue control
// commands over HTTP. It provides:
//   - One method per printer operation (status, temperatures, print head
//     movement, job control, file selection, connection management)
//   - Automatic request/response JSON serialization
//   - A two-kind error model separating HTTP failures from semantic ones
//
// The client performs exactly one HTTP round trip per call and keeps no
// state between calls beyond its configuration.
//
// Example usage:
//
//	client := octoprint.NewClient(octoprint.Config{
//	    BaseURL: "http://octopi.local",
//	    APIKey:  "A6TESTKEY",
//	})
//	status, err := client.Status(ctx, octoprint.StatusOptions{})
//	if err != nil {
//	    log.Fatalf("Failed to query printer: %v", err)
//	}
package octoprint

import (
	"net/http"
	"time"
)

// defaultTimeout bounds a single request/response cycle. Individual calls
// can be bounded tighter through their context.
const defaultTimeout = 30 * time.Second

// Config holds the connection settings for an OctoPrint server.
type Config struct {
	// BaseURL is the root URL of the OctoPrint server, including scheme
	// and port if not the default, e.g. "http://octopi.local" or
	// "http://192.168.1.50:5000". A path prefix is preserved.
	BaseURL string

	// APIKey is the OctoPrint API key sent with every request in the
	// X-Api-Key header. Leave empty if the server does not require one.
	APIKey string

	// HTTPClient optionally overrides the HTTP client used for requests.
	// When nil, a client with a 30-second timeout is used.
	HTTPClient *http.Client
}

// Client is the HTTP client for communicating with an OctoPrint server.
//
// The Client provides a high-level interface for all supported printer
// operations. Each method performs a single synchronous request and blocks
// until the server replies or the transport gives up. The configuration is
// an immutable snapshot; use WithConfig to derive a client pointed at a
// different server or credential.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a new client for the server described by cfg.
//
// No connection is made and no validation is performed at construction
// time; a bad URL or key surfaces as an error on the first call.
func NewClient(cfg Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{cfg: cfg, httpClient: hc}
}

// WithConfig returns a new Client using cfg in place of the receiver's
// configuration. The underlying HTTP client is shared unless cfg supplies
// its own, so derived clients reuse connections where the transport allows.
func (c *Client) WithConfig(cfg Config) *Client {
	next := &Client{cfg: cfg, httpClient: c.httpClient}
	if cfg.HTTPClient != nil {
		next.httpClient = cfg.HTTPClient
	}
	return next
}

// Config returns the configuration snapshot the client was built with.
func (c *Client) Config() Config {
	return c.cfg
}
