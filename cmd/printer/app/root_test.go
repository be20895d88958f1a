package app

import (
	"bytes"
	"errors"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printcli/printer/internal/simulator"
	"github.com/printcli/printer/octoprint"
)

// newSimServer starts a simulated print server and returns its URL.
func newSimServer(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(simulator.New("").Handler())
	t.Cleanup(srv.Close)
	return srv.URL
}

// execute runs the CLI with the given arguments against url and returns
// the combined output. The config flag points at a nonexistent file so
// the developer's own config never leaks into tests.
func execute(t *testing.T, url string, args ...string) (string, error) {
	t.Helper()

	full := []string{"--config", filepath.Join(t.TempDir(), "config.toml")}
	if url != "" {
		full = append(full, "--url", url)
	}
	full = append(full, args...)

	cmd := NewPrinterCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(full)
	err := cmd.Execute()
	return buf.String(), err
}

func TestHelp_NoServerNeeded(t *testing.T) {
	out, err := execute(t, "", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "status")
	assert.Contains(t, out, "job")
	assert.Contains(t, out, "--api-key")
}

func TestMissingURL(t *testing.T) {
	_, err := execute(t, "", "status")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no printer URL configured")
}

func TestURLFromConfigFile(t *testing.T) {
	url := newSimServer(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("url = %q\n", url)), 0o644))

	cmd := NewPrinterCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--config", path, "status"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Printer status: Operational")
}

func TestStatusCommand(t *testing.T) {
	url := newSimServer(t)

	out, err := execute(t, url, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Printer status: Operational")
	assert.Contains(t, out, "tool0")
	assert.Contains(t, out, "bed")
	assert.Contains(t, out, "SD card: ready")
}

func TestToolCommands(t *testing.T) {
	url := newSimServer(t)

	out, err := execute(t, url, "tool", "temp", "210")
	require.NoError(t, err)
	assert.Contains(t, out, "Heating tool0 to 210.0 C.")

	out, err = execute(t, url, "tool", "get")
	require.NoError(t, err)
	assert.Contains(t, out, "tool0")
	assert.Contains(t, out, "210.0")

	out, err = execute(t, url, "tool", "select", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Selected tool1.")
}

func TestBedCommands(t *testing.T) {
	url := newSimServer(t)

	out, err := execute(t, url, "bed", "temp", "60")
	require.NoError(t, err)
	assert.Contains(t, out, "Heating bed to 60.0 C.")

	out, err = execute(t, url, "bed", "get")
	require.NoError(t, err)
	assert.Contains(t, out, "60.0")

	out, err = execute(t, url, "bed", "temp", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Bed heater off.")
}

func TestGcodeCommand(t *testing.T) {
	url := newSimServer(t)

	out, err := execute(t, url, "gcode", "M18")
	require.NoError(t, err)
	assert.Contains(t, out, "Sent 1 command.")

	out, err = execute(t, url, "gcode", "G28 X", "G1 X10 F3000")
	require.NoError(t, err)
	assert.Contains(t, out, "Sent 2 commands.")
}

func TestFilesCommands(t *testing.T) {
	url := newSimServer(t)

	out, err := execute(t, url, "files", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "benchy.gcode")
	assert.Contains(t, out, "calibration/cube.gcode")
	assert.Contains(t, out, "WHISTLE.GCO")

	out, err = execute(t, url, "files", "list", "--location", "sdcard")
	require.NoError(t, err)
	assert.Contains(t, out, "WHISTLE.GCO")
	assert.NotContains(t, out, "benchy.gcode")

	_, err = execute(t, url, "files", "list", "--location", "usb")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown location")

	out, err = execute(t, url, "files", "select", "benchy.gcode")
	require.NoError(t, err)
	assert.Contains(t, out, "Selected benchy.gcode.")
}

func TestJobLifecycle(t *testing.T) {
	url := newSimServer(t)

	// A start without a selected file is a server-side conflict.
	_, err := execute(t, url, "job", "start")
	require.Error(t, err)
	var terr *octoprint.TransportError
	require.ErrorAs(t, err, &terr)
	assert.True(t, terr.Conflict())

	_, err = execute(t, url, "files", "select", "benchy.gcode")
	require.NoError(t, err)

	out, err := execute(t, url, "job", "start")
	require.NoError(t, err)
	assert.Contains(t, out, "Job start requested.")

	out, err = execute(t, url, "job", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Job state: Printing")
	assert.Contains(t, out, "benchy.gcode")

	out, err = execute(t, url, "job", "cancel")
	require.NoError(t, err)
	assert.Contains(t, out, "Job cancel requested.")
}

func TestMovementCommands(t *testing.T) {
	url := newSimServer(t)

	out, err := execute(t, url, "home", "xy")
	require.NoError(t, err)
	assert.Contains(t, out, "Homing")

	_, err = execute(t, url, "home", "xq")
	require.Error(t, err)

	out, err = execute(t, url, "jog", "-x", "10", "-z", "0.2")
	require.NoError(t, err)
	assert.Contains(t, out, "Jog queued.")

	_, err = execute(t, url, "jog")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to move")
}

func TestSDCommands(t *testing.T) {
	url := newSimServer(t)

	out, err := execute(t, url, "sd", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "SD card: ready")

	out, err = execute(t, url, "sd", "release")
	require.NoError(t, err)
	assert.Contains(t, out, "SD release requested.")

	out, err = execute(t, url, "sd", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "SD card: not ready")

	out, err = execute(t, url, "sd", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "SD init requested.")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 2, ExitCode(&octoprint.TransportError{StatusCode: 409}))
	assert.Equal(t, 2, ExitCode(fmt.Errorf("status: %w", &octoprint.TransportError{})))
	assert.Equal(t, 1, ExitCode(&octoprint.ServiceError{Op: "job info", Reason: "no state"}))
	assert.Equal(t, 1, ExitCode(errors.New("usage")))
}
