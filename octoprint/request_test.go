package octoprint

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient builds a client against a httptest server answering every
// request through handler.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(Config{
		BaseURL: server.URL,
		APIKey:  "A6TESTKEY",
	})
}

func TestDoRequest_SetsHeaders(t *testing.T) {
	var gotAPIKey, gotAccept, gotContentType string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAPIKey = r.Header.Get("X-Api-Key")
		gotAccept = r.Header.Get("Accept")
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusNoContent)
	})

	err := client.SendCommands(context.Background(), "M115")
	require.NoError(t, err)

	assert.Equal(t, "A6TESTKEY", gotAPIKey)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "application/json", gotContentType)
}

func TestDoRequest_NoAPIKeyHeaderWhenUnset(t *testing.T) {
	var sawHeader bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawHeader = r.Header["X-Api-Key"]
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(server.Close)

	client := NewClient(Config{BaseURL: server.URL})
	require.NoError(t, client.SendCommands(context.Background(), "M115"))
	assert.False(t, sawHeader, "X-Api-Key must be absent when no key is configured")
}

func TestDoRequest_PreservesBasePathPrefix(t *testing.T) {
	var gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(VersionInformation{Server: "1.9.3", API: "0.1"})
	}))
	t.Cleanup(server.Close)

	client := NewClient(Config{BaseURL: server.URL + "/octoprint/"})
	_, err := client.Version(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/octoprint/api/version", gotPath)
}

func TestDoRequest_NonSuccessStatusIsTransportError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Printer is not operational", http.StatusConflict)
	})

	err := client.StartJob(context.Background())
	require.Error(t, err)

	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, http.StatusConflict, terr.StatusCode)
	assert.True(t, terr.Conflict())
	assert.Contains(t, terr.Error(), "409")
	assert.Contains(t, terr.Body, "not operational")

	var serr *ServiceError
	assert.False(t, errors.As(err, &serr), "a non-2xx status must never surface as a service error")
}

func TestDoRequest_UnauthorizedStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Invalid API key", http.StatusUnauthorized)
	})

	_, err := client.Version(context.Background())
	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.True(t, terr.Unauthorized())
}

func TestDoRequest_ConnectionFailureIsTransportError(t *testing.T) {
	// Port reserved and released again, so nothing listens on it.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(Config{BaseURL: url})
	_, err := client.Version(context.Background())

	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.Zero(t, terr.StatusCode)
	assert.Error(t, terr.Err)
}

func TestDoRequest_UndecodableBodyIsServiceError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	})

	_, err := client.Version(context.Background())

	var serr *ServiceError
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, serr.Error(), "undecodable")
}

func TestWithConfig_ReplacesConfiguration(t *testing.T) {
	var gotKeys []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKeys = append(gotKeys, r.Header.Get("X-Api-Key"))
		_ = json.NewEncoder(w).Encode(VersionInformation{Server: "1.9.3"})
	}))
	t.Cleanup(server.Close)

	first := NewClient(Config{BaseURL: server.URL, APIKey: "key-one"})
	_, err := first.Version(context.Background())
	require.NoError(t, err)

	second := first.WithConfig(Config{BaseURL: server.URL, APIKey: "key-two"})
	_, err = second.Version(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"key-one", "key-two"}, gotKeys)
	assert.Equal(t, "key-one", first.Config().APIKey, "original client keeps its configuration")
}
