package octoprint

import (
	"fmt"
	"net/http"
)

// TransportError reports a failure in the HTTP exchange itself: the request
// never produced a response (connection refused, DNS failure, bad URL,
// timeout), or the server answered with a non-success status code.
//
// The two cases are distinguished by StatusCode: zero means the exchange
// never completed and Err carries the underlying cause; non-zero means the
// server replied with that status and Body carries its response.
type TransportError struct {
	// StatusCode is the HTTP status code, or 0 when the exchange never
	// produced a response.
	StatusCode int

	// Status is the full status line, e.g. "409 Conflict".
	Status string

	// Body is the raw response body, kept for diagnostics.
	Body string

	// Err is the underlying error for failures below the HTTP layer.
	Err error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("octoprint: request failed: %v", e.Err)
	}
	if e.Body != "" {
		return fmt.Sprintf("octoprint: server returned %s: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("octoprint: server returned %s", e.Status)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Unauthorized reports whether the server rejected the API key.
func (e *TransportError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// Conflict reports whether the server refused the command because the
// printer cannot accept it right now. OctoPrint answers 409 when an
// operation needs an operational or idle printer and it is offline, busy
// or printing.
func (e *TransportError) Conflict() bool {
	return e.StatusCode == http.StatusConflict
}

// ServiceError reports a semantic failure: the HTTP exchange completed with
// a success status, but the payload cannot be turned into a consistent
// result. Typical causes are an undecodable body or a response missing the
// fields an operation requires. No partial result is ever returned
// alongside a ServiceError.
type ServiceError struct {
	// Op names the operation whose response was unusable.
	Op string

	// Reason describes the inconsistency.
	Reason string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("octoprint: %s: %s", e.Op, e.Reason)
}
