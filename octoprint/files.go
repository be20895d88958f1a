// Package octoprint - files.go implements file listing and selection.
package octoprint

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// Storage locations known to the server.
const (
	LocationLocal = "local"
	LocationSD    = "sdcard"
)

// FileInfo describes one file or folder known to the server. Folders carry
// their contents in Children.
type FileInfo struct {
	Name     string     `json:"name"`
	Display  string     `json:"display"`
	Path     string     `json:"path"`
	Type     string     `json:"type"`
	Origin   string     `json:"origin"`
	Size     int64      `json:"size"`
	Date     int64      `json:"date"`
	Children []FileInfo `json:"children"`
}

// IsFolder reports whether the entry is a folder.
func (f FileInfo) IsFolder() bool {
	return f.Type == "folder"
}

// FileListing is the server's answer to a file listing request.
type FileListing struct {
	Files []FileInfo `json:"files"`
	// Free is the remaining storage space in bytes. Zero when the server
	// does not report it for the queried location.
	Free int64 `json:"free"`
}

// Files lists the files the server knows about. Pass LocationLocal or
// LocationSD to restrict the listing to one storage location, or the empty
// string for all of them.
//
// A 2xx response without a files block (an empty listing still has one)
// yields a *ServiceError.
func (c *Client) Files(ctx context.Context, location string) (*FileListing, error) {
	path := "/api/files"
	if location == LocationLocal || location == LocationSD {
		path += "/" + location
	}

	var resp FileListing
	if err := c.doRequest(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Files == nil {
		return nil, &ServiceError{
			Op:     "file listing",
			Reason: "response carries no files block",
		}
	}
	return &resp, nil
}

// SelectFile selects the named file for printing. location must be
// LocationLocal or LocationSD and path is the file's path within that
// location. When print is true the job starts as soon as the file is
// loaded.
func (c *Client) SelectFile(ctx context.Context, location, path string, print bool) error {
	req := map[string]interface{}{
		"command": "select",
		"print":   print,
	}
	target := fmt.Sprintf("/api/files/%s/%s", location, strings.TrimLeft(path, "/"))
	return c.doRequest(ctx, http.MethodPost, target, nil, req, nil)
}
