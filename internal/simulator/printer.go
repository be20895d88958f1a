// Package simulator - printer.go holds the simulated printer state.
package simulator

import (
	"math"
	"sync"
	"time"

	"github.com/printcli/printer/octoprint"
)

const (
	ambientTemp = 21.3
	// heaterRate is how fast a heater approaches its target, degrees
	// Celsius per second.
	heaterRate = 2.0
	// defaultJobSeconds is the simulated duration of a full print.
	defaultJobSeconds = 90.0
	historyLimit      = 100
)

type heater struct {
	actual float64
	target float64
}

func (h *heater) advance(seconds float64) {
	goal := h.target
	if goal <= 0 {
		goal = ambientTemp
	}
	step := heaterRate * seconds
	diff := goal - h.actual
	if math.Abs(diff) <= step {
		h.actual = goal
		return
	}
	if diff > 0 {
		h.actual += step
	} else {
		h.actual -= step
	}
}

type historyEntry struct {
	time  int64
	tools []heater
	bed   heater
}

// printer is the simulated machine. All access goes through the mutex; the
// sim clock advances lazily whenever state is read or changed.
type printer struct {
	mu       sync.Mutex
	lastTick time.Time

	connected bool
	port      string
	baudrate  int
	profile   string

	tools        []heater
	bed          heater
	selectedTool int
	sdReady      bool

	posX, posY, posZ float64

	selected  *octoprint.FileInfo
	printing  bool
	paused    bool
	completed float64 // seconds of print time accumulated

	localFiles []octoprint.FileInfo
	sdFiles    []octoprint.FileInfo

	history []historyEntry
}

func newPrinter() *printer {
	return &printer{
		lastTick:  time.Now(),
		connected: true,
		port:      "VIRTUAL",
		baudrate:  250000,
		profile:   "_default",
		tools:     []heater{{actual: ambientTemp}, {actual: ambientTemp}},
		bed:       heater{actual: ambientTemp},
		sdReady:   true,
		localFiles: []octoprint.FileInfo{
			{Name: "benchy.gcode", Display: "benchy.gcode", Path: "benchy.gcode", Type: "machinecode", Origin: "local", Size: 1468987, Date: 1700000000},
			{Name: "calibration", Display: "calibration", Path: "calibration", Type: "folder", Origin: "local", Children: []octoprint.FileInfo{
				{Name: "cube.gcode", Display: "cube.gcode", Path: "calibration/cube.gcode", Type: "machinecode", Origin: "local", Size: 339820, Date: 1700000100},
			}},
		},
		sdFiles: []octoprint.FileInfo{
			{Name: "WHISTLE.GCO", Display: "WHISTLE.GCO", Path: "WHISTLE.GCO", Type: "machinecode", Origin: "sdcard", Size: 58783},
		},
	}
}

// advance moves the simulation clock forward. Callers must hold the mutex.
func (p *printer) advance() {
	now := time.Now()
	seconds := now.Sub(p.lastTick).Seconds()
	p.lastTick = now
	if seconds <= 0 {
		return
	}

	for i := range p.tools {
		p.tools[i].advance(seconds)
	}
	p.bed.advance(seconds)

	if p.printing && !p.paused {
		p.completed += seconds
		if p.completed >= defaultJobSeconds {
			p.printing = false
			p.paused = false
			p.completed = defaultJobSeconds
		}
	}

	p.history = append(p.history, historyEntry{
		time:  now.Unix(),
		tools: append([]heater(nil), p.tools...),
		bed:   p.bed,
	})
	if len(p.history) > historyLimit {
		p.history = p.history[len(p.history)-historyLimit:]
	}
}

func (p *printer) flags() octoprint.StateFlags {
	operational := p.connected
	return octoprint.StateFlags{
		Operational:   operational,
		Printing:      p.printing && !p.paused,
		Paused:        p.paused,
		SDReady:       p.sdReady,
		Ready:         operational && !p.printing && !p.paused,
		ClosedOrError: !p.connected,
	}
}

func (p *printer) stateText() string {
	switch {
	case !p.connected:
		return "Offline"
	case p.paused:
		return "Paused"
	case p.printing:
		return "Printing"
	}
	return "Operational"
}

// idle reports whether the printer can accept commands that need an
// operational, non-printing machine.
func (p *printer) idle() bool {
	return p.connected && !p.printing && !p.paused
}

func (p *printer) findFile(location, path string) *octoprint.FileInfo {
	var files []octoprint.FileInfo
	switch location {
	case octoprint.LocationLocal:
		files = p.localFiles
	case octoprint.LocationSD:
		files = p.sdFiles
	default:
		return nil
	}
	return findIn(files, path)
}

func findIn(files []octoprint.FileInfo, path string) *octoprint.FileInfo {
	for i := range files {
		if files[i].Path == path && !files[i].IsFolder() {
			return &files[i]
		}
		if files[i].IsFolder() {
			if f := findIn(files[i].Children, path); f != nil {
				return f
			}
		}
	}
	return nil
}
