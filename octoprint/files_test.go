package octoprint

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiles_ListsAllLocations(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/files", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"files": [
				{"name": "benchy.gcode", "path": "benchy.gcode", "type": "machinecode", "origin": "local", "size": 1468987},
				{"name": "cases", "path": "cases", "type": "folder", "origin": "local", "children": [
					{"name": "lid.gcode", "path": "cases/lid.gcode", "type": "machinecode", "origin": "local", "size": 339820}
				]},
				{"name": "WHISTLE.GCO", "path": "WHISTLE.GCO", "type": "machinecode", "origin": "sdcard", "size": 58783}
			],
			"free": 3672615068
		}`))
	})

	listing, err := client.Files(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, listing.Files, 3)
	assert.Equal(t, int64(3672615068), listing.Free)
	assert.False(t, listing.Files[0].IsFolder())
	assert.True(t, listing.Files[1].IsFolder())
	require.Len(t, listing.Files[1].Children, 1)
	assert.Equal(t, "cases/lid.gcode", listing.Files[1].Children[0].Path)
}

func TestFiles_LocationScopesPath(t *testing.T) {
	var gotPaths []string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, r.URL.Path)
		_, _ = w.Write([]byte(`{"files": []}`))
	})

	ctx := context.Background()
	_, err := client.Files(ctx, LocationLocal)
	require.NoError(t, err)
	_, err = client.Files(ctx, LocationSD)
	require.NoError(t, err)

	assert.Equal(t, []string{"/api/files/local", "/api/files/sdcard"}, gotPaths)
}

func TestFiles_EmptyListingIsNotAnError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"files": [], "free": 123}`))
	})

	listing, err := client.Files(context.Background(), LocationLocal)
	require.NoError(t, err)
	assert.Empty(t, listing.Files)
}

func TestFiles_MissingFilesBlockIsServiceError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"free": 123}`))
	})

	_, err := client.Files(context.Background(), LocationLocal)

	var serr *ServiceError
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, serr.Reason, "files")
}

func TestSelectFile_PathAndBody(t *testing.T) {
	var gotPath string
	var got map[string]interface{}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	})

	err := client.SelectFile(context.Background(), LocationLocal, "cases/lid.gcode", true)
	require.NoError(t, err)

	assert.Equal(t, "/api/files/local/cases/lid.gcode", gotPath)
	assert.Equal(t, "select", got["command"])
	assert.Equal(t, true, got["print"])
}

func TestSelectFile_ConflictWhilePrinting(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Trying to select a file while printing", http.StatusConflict)
	})

	err := client.SelectFile(context.Background(), LocationLocal, "benchy.gcode", false)

	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.True(t, terr.Conflict())
}
