// Package octoprint - request.go implements the low-level HTTP request
// handling shared by all API methods: request serialization, response
// parsing and the mapping of failures onto the two error kinds.
package octoprint

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// doRequest performs a single HTTP request against the configured server.
//
// It resolves path against the configured base URL (preserving any path
// prefix the base carries), attaches the API key header, serializes reqBody
// to JSON when non-nil and decodes a 2xx response into respBody when
// non-nil.
//
// Failure mapping:
//   - anything that prevents a response, and any non-2xx status, returns a
//     *TransportError
//   - a 2xx response whose body cannot be decoded into respBody returns a
//     *ServiceError
//
// Exactly one attempt is made per call; there is no retry.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, reqBody, respBody interface{}) error {
	base, err := url.Parse(strings.TrimSpace(c.cfg.BaseURL))
	if err != nil {
		return &TransportError{Err: fmt.Errorf("parse base URL %q: %w", c.cfg.BaseURL, err)}
	}

	reqURL := *base
	reqURL.Path = strings.TrimRight(base.Path, "/") + path
	reqURL.RawQuery = query.Encode()

	var body io.Reader
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return &TransportError{Err: fmt.Errorf("create request: %w", err)}
	}

	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.APIKey != "" {
		req.Header.Set("X-Api-Key", c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &TransportError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(data)),
		}
	}

	if respBody != nil {
		if err := json.Unmarshal(data, respBody); err != nil {
			return &ServiceError{
				Op:     method + " " + path,
				Reason: fmt.Sprintf("undecodable response body: %v", err),
			}
		}
	}

	return nil
}
