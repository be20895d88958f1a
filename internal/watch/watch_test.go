package watch

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printcli/printer/octoprint"
)

func printingSnapshot() snapshotMsg {
	return snapshotMsg{
		status: &octoprint.StatusResponse{
			State: octoprint.PrinterState{
				Text:  "Printing",
				Flags: octoprint.StateFlags{Operational: true, Printing: true},
			},
			Temperature: octoprint.TemperatureData{
				Current: map[string]octoprint.Temperature{
					"tool0": {Actual: 200.0, Target: 210.0},
					"bed":   {Actual: 59.8, Target: 60.0},
				},
			},
		},
		job: &octoprint.JobResponse{
			Job:      octoprint.JobDetails{File: octoprint.JobFile{Name: "benchy.gcode"}},
			Progress: octoprint.JobProgress{Completion: 22.3, PrintTimeLeft: 7635},
			State:    "Printing",
		},
	}
}

func TestView_RendersSnapshot(t *testing.T) {
	m := New(nil, time.Second)
	updated, _ := m.Update(printingSnapshot())
	view := updated.View()

	assert.Contains(t, view, "Printing")
	assert.Contains(t, view, "tool0")
	assert.Contains(t, view, "200.0")
	assert.Contains(t, view, "benchy.gcode")
	assert.Contains(t, view, "22.3%")
}

func TestView_BeforeFirstSnapshot(t *testing.T) {
	m := New(nil, time.Second)
	assert.Contains(t, m.View(), "connecting")
}

func TestUpdate_PollErrorKeepsLastSnapshot(t *testing.T) {
	m := New(nil, time.Second)
	model, _ := m.Update(printingSnapshot())

	model, _ = model.(Model).Update(snapshotMsg{err: &octoprint.TransportError{StatusCode: 502, Status: "502 Bad Gateway"}})
	view := model.View()

	assert.Contains(t, view, "poll failed")
	assert.Contains(t, view, "tool0", "stale data stays visible while the printer is unreachable")
}

func TestUpdate_QuitKeys(t *testing.T) {
	m := New(nil, time.Second)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd, "q must quit")

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd, "ctrl+c must quit")
}

func TestProgressBar_Bounds(t *testing.T) {
	assert.Equal(t, 30, strings.Count(progressBar(0, 30), "░"))
	assert.Equal(t, 30, strings.Count(progressBar(150, 30), "█"))
	assert.Equal(t, 15, strings.Count(progressBar(50, 30), "█"))
}

func TestTemperatureLines_BedLast(t *testing.T) {
	lines := temperatureLines(map[string]octoprint.Temperature{
		"bed":   {Actual: 60},
		"tool1": {Actual: 25},
		"tool0": {Actual: 200},
	})

	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "tool0")
	assert.Contains(t, lines[1], "tool1")
	assert.Contains(t, lines[2], "bed")
}
