package octoprint

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolTemperature_ReturnsRequestedTool(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/printer/tool", r.URL.Path)
		require.Equal(t, "false", r.URL.Query().Get("history"))
		_, _ = w.Write([]byte(`{
			"tool0": {"actual": 200.0, "target": 210.0, "offset": 0},
			"tool1": {"actual": 25.3, "target": 0.0, "offset": 0}
		}`))
	})

	temp, err := client.ToolTemperature(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 25.3, temp.Actual)
	assert.Zero(t, temp.Target)
}

func TestToolTemperature_MissingToolIsServiceError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"tool0": {"actual": 200.0, "target": 210.0}}`))
	})

	_, err := client.ToolTemperature(context.Background(), 3)

	var serr *ServiceError
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, serr.Reason, `"tool3"`)
}

func TestSetToolTemperature_RequestBody(t *testing.T) {
	var got map[string]interface{}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.SetToolTemperature(context.Background(), 0, 215))

	assert.Equal(t, "target", got["command"])
	targets, ok := got["targets"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 215.0, targets["tool0"])
}

func TestSelectToolAndExtrude(t *testing.T) {
	var bodies []map[string]interface{}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var got map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		bodies = append(bodies, got)
		w.WriteHeader(http.StatusNoContent)
	})

	ctx := context.Background()
	require.NoError(t, client.SelectTool(ctx, 1))
	require.NoError(t, client.Extrude(ctx, -5))

	require.Len(t, bodies, 2)
	assert.Equal(t, "select", bodies[0]["command"])
	assert.Equal(t, "tool1", bodies[0]["tool"])
	assert.Equal(t, "extrude", bodies[1]["command"])
	assert.Equal(t, -5.0, bodies[1]["amount"])
}

func TestBedTemperature_ReadAndSet(t *testing.T) {
	var setBody map[string]interface{}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/printer/bed", r.URL.Path)
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(`{"bed": {"actual": 59.8, "target": 60.0, "offset": 0}}`))
			return
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&setBody))
		w.WriteHeader(http.StatusNoContent)
	})

	ctx := context.Background()

	temp, err := client.BedTemperature(ctx)
	require.NoError(t, err)
	assert.Equal(t, 59.8, temp.Actual)
	assert.Equal(t, 60.0, temp.Target)

	require.NoError(t, client.SetBedTemperature(ctx, 0))
	assert.Equal(t, "target", setBody["command"])
	assert.Equal(t, 0.0, setBody["target"])
}

func TestBedTemperature_MissingBedIsServiceError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := client.BedTemperature(context.Background())

	var serr *ServiceError
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, serr.Reason, "bed")
}

func TestSetToolTemperature_ConflictIsTransportError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Printer is not operational", http.StatusConflict)
	})

	err := client.SetToolTemperature(context.Background(), 0, 200)

	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.True(t, terr.Conflict())
}
