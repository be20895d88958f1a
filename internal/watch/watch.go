// Package watch provides the live printer status view.
//
// It refreshes the printer's state and job progress on a fixed cadence and
// renders both full-screen until the user quits. Poll errors are shown
// inline and the next tick tries again; the view never dies because the
// printer went away for a moment.
package watch

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/printcli/printer/internal/output"
	"github.com/printcli/printer/octoprint"
)

const fetchTimeout = 10 * time.Second

type tickMsg time.Time

// snapshotMsg carries one poll result. err may accompany a partial
// snapshot when the job query failed after the status query succeeded.
type snapshotMsg struct {
	status *octoprint.StatusResponse
	job    *octoprint.JobResponse
	err    error
}

// Model is the Bubble Tea model for the watch view.
type Model struct {
	client   *octoprint.Client
	interval time.Duration

	status      *octoprint.StatusResponse
	job         *octoprint.JobResponse
	err         error
	lastUpdated time.Time
	width       int
}

// New builds the watch model. interval must be positive.
func New(client *octoprint.Client, interval time.Duration) Model {
	return Model{client: client, interval: interval}
}

// Run starts the full-screen program and blocks until the user quits.
func Run(client *octoprint.Client, interval time.Duration) error {
	program := tea.NewProgram(New(client, interval), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(fetch(m.client), tick(m.interval))
}

func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetch(client *octoprint.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		status, err := client.Status(ctx, octoprint.StatusOptions{})
		if err != nil {
			return snapshotMsg{err: err}
		}
		job, err := client.Job(ctx)
		if err != nil {
			return snapshotMsg{status: status, err: err}
		}
		return snapshotMsg{status: status, job: job}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tickMsg:
		return m, tea.Batch(fetch(m.client), tick(m.interval))

	case snapshotMsg:
		m.err = msg.err
		if msg.status != nil {
			m.status = msg.status
			m.lastUpdated = time.Now()
		}
		if msg.job != nil {
			m.job = msg.job
		}
	}

	return m, nil
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("25")).Padding(0, 1)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(12)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	faintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	stateStyles = map[octoprint.State]lipgloss.Style{
		octoprint.StateOperational: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		octoprint.StatePrinting:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		octoprint.StatePausing:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		octoprint.StatePaused:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		octoprint.StateCancelling:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		octoprint.StateError:       lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		octoprint.StateOffline:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Bold(true),
	}
)

func stateStyle(state octoprint.State) lipgloss.Style {
	if style, ok := stateStyles[state]; ok {
		return style
	}
	return lipgloss.NewStyle().Bold(true)
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("printer watch"))
	b.WriteString("\n\n")

	if m.status == nil {
		if m.err != nil {
			b.WriteString(errStyle.Render(fmt.Sprintf("poll failed: %v", m.err)))
		} else {
			b.WriteString(faintStyle.Render("connecting..."))
		}
		b.WriteString("\n\n")
		b.WriteString(faintStyle.Render("q to quit"))
		return b.String()
	}

	state := m.status.State.Derived()
	b.WriteString(labelStyle.Render("State"))
	b.WriteString(stateStyle(state).Render(m.status.State.Text))
	b.WriteString("\n")

	for _, line := range temperatureLines(m.status.Temperature.Current) {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.job != nil && m.job.Job.File.Name != "" {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("File"))
		b.WriteString(m.job.Job.File.Name)
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Progress"))
		b.WriteString(progressBar(m.job.Progress.Completion, 30))
		b.WriteString(fmt.Sprintf(" %5.1f%%", m.job.Progress.Completion))
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Remaining"))
		b.WriteString(output.FormatDuration(m.job.Progress.PrintTimeLeft))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errStyle.Render(fmt.Sprintf("poll failed: %v", m.err)))
		b.WriteString("\n")
	}
	b.WriteString(faintStyle.Render(fmt.Sprintf("updated %s · q to quit", m.lastUpdated.Format("15:04:05"))))

	return b.String()
}

// temperatureLines renders one line per sensor, tools first, bed last.
func temperatureLines(current map[string]octoprint.Temperature) []string {
	sensors := make([]string, 0, len(current))
	for sensor := range current {
		sensors = append(sensors, sensor)
	}
	sort.Strings(sensors)

	var lines []string
	appendLine := func(sensor string) {
		t := current[sensor]
		lines = append(lines, labelStyle.Render(sensor)+fmt.Sprintf("%6.1f°C → %5.1f°C", t.Actual, t.Target))
	}
	for _, sensor := range sensors {
		if sensor != "bed" {
			appendLine(sensor)
		}
	}
	if _, ok := current["bed"]; ok {
		appendLine("bed")
	}
	return lines
}

func progressBar(percent float64, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100 * float64(width))
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}
