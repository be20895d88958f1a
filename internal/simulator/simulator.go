// Package simulator provides an in-memory stand-in for an OctoPrint server.
//
// It answers the subset of the OctoPrint REST API the printer CLI talks to,
// backed by a simulated machine whose heaters drift toward their targets
// and whose print jobs make progress in wall-clock time. It exists for
// development and testing against a printer that cannot catch fire:
//
//	printer simulate --addr 127.0.0.1:5000
//	printer --url http://127.0.0.1:5000 status
//
// Semantics follow the real server where the CLI depends on them: 401 on a
// bad API key, 409 for commands the printer state does not permit, 204 for
// accepted commands.
package simulator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/printcli/printer/octoprint"
)

// Server simulates an OctoPrint server.
type Server struct {
	apiKey  string
	printer *printer
}

// New creates a simulator. When apiKey is non-empty every request must
// carry it in the X-Api-Key header.
func New(apiKey string) *Server {
	return &Server{
		apiKey:  apiKey,
		printer: newPrinter(),
	}
}

// Handler returns the HTTP handler serving the simulated API. It is safe
// for concurrent use.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/connection", s.handleConnection)
	mux.HandleFunc("/api/printer", s.handlePrinter)
	mux.HandleFunc("/api/printer/printhead", s.handlePrinthead)
	mux.HandleFunc("/api/printer/tool", s.handleTool)
	mux.HandleFunc("/api/printer/bed", s.handleBed)
	mux.HandleFunc("/api/printer/sd", s.handleSD)
	mux.HandleFunc("/api/printer/command", s.handleCommand)
	mux.HandleFunc("/api/job", s.handleJob)
	mux.HandleFunc("/api/files", s.handleFiles)
	mux.HandleFunc("/api/files/", s.handleFiles)

	return s.authMiddleware(mux)
}

// ListenAndServe serves the simulated API on addr until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey != "" && r.Header.Get("X-Api-Key") != s.apiKey {
			http.Error(w, "Invalid API key", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func readCommand(w http.ResponseWriter, r *http.Request) (map[string]interface{}, bool) {
	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Malformed request body", http.StatusBadRequest)
		return nil, false
	}
	return body, true
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, octoprint.VersionInformation{
		API:    "0.1",
		Server: "1.9.3",
		Text:   "OctoPrint 1.9.3 (virtual)",
	})
}

func (s *Server) handleConnection(w http.ResponseWriter, r *http.Request) {
	p := s.printer
	p.mu.Lock()
	defer p.mu.Unlock()
	p.advance()

	switch r.Method {
	case http.MethodGet:
		state := "Closed"
		port, baudrate, profile := "", 0, ""
		if p.connected {
			state = p.stateText()
			port, baudrate, profile = p.port, p.baudrate, p.profile
		}
		writeJSON(w, octoprint.ConnectionState{
			Current: octoprint.CurrentConnection{
				State:          state,
				Port:           port,
				Baudrate:       baudrate,
				PrinterProfile: profile,
			},
			Options: octoprint.ConnectionOptions{
				Ports:                    []string{"VIRTUAL"},
				Baudrates:                []int{250000, 115200},
				PrinterProfiles:          []octoprint.ConnectionProfile{{ID: "_default", Name: "Default"}},
				PortPreference:           "VIRTUAL",
				BaudratePreference:       250000,
				PrinterProfilePreference: "_default",
			},
		})

	case http.MethodPost:
		body, ok := readCommand(w, r)
		if !ok {
			return
		}
		switch body["command"] {
		case "connect":
			p.connected = true
			if port, ok := body["port"].(string); ok && port != "" {
				p.port = port
			}
			if baud, ok := body["baudrate"].(float64); ok && baud > 0 {
				p.baudrate = int(baud)
			}
			if profile, ok := body["printerProfile"].(string); ok && profile != "" {
				p.profile = profile
			}
			w.WriteHeader(http.StatusNoContent)
		case "disconnect":
			p.connected = false
			p.printing = false
			p.paused = false
			w.WriteHeader(http.StatusNoContent)
		default:
			http.Error(w, "Unknown command", http.StatusBadRequest)
		}

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func temperatureJSON(h heater) map[string]float64 {
	return map[string]float64{
		"actual": round1(h.actual),
		"target": h.target,
		"offset": 0,
	}
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}

func (s *Server) handlePrinter(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	p := s.printer
	p.mu.Lock()
	defer p.mu.Unlock()
	p.advance()

	if !p.connected {
		http.Error(w, "Printer is not operational", http.StatusConflict)
		return
	}

	exclude := map[string]bool{}
	for _, block := range strings.Split(r.URL.Query().Get("exclude"), ",") {
		if block != "" {
			exclude[block] = true
		}
	}

	resp := map[string]interface{}{}
	if !exclude["state"] {
		resp["state"] = map[string]interface{}{
			"text":  p.stateText(),
			"flags": p.flags(),
		}
	}
	if !exclude["temperature"] {
		temps := map[string]interface{}{}
		for i, tool := range p.tools {
			temps[fmt.Sprintf("tool%d", i)] = temperatureJSON(tool)
		}
		temps["bed"] = temperatureJSON(p.bed)

		if r.URL.Query().Get("history") == "true" {
			limit := len(p.history)
			if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v < limit {
				limit = v
			}
			var history []map[string]interface{}
			for _, entry := range p.history[len(p.history)-limit:] {
				point := map[string]interface{}{"time": entry.time}
				for i, tool := range entry.tools {
					point[fmt.Sprintf("tool%d", i)] = temperatureJSON(tool)
				}
				point["bed"] = temperatureJSON(entry.bed)
				history = append(history, point)
			}
			temps["history"] = history
		}
		resp["temperature"] = temps
	}
	if !exclude["sd"] {
		resp["sd"] = map[string]bool{"ready": p.sdReady}
	}

	writeJSON(w, resp)
}

func (s *Server) handlePrinthead(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	p := s.printer
	p.mu.Lock()
	defer p.mu.Unlock()
	p.advance()

	if !p.idle() {
		http.Error(w, "Printer is not operational or currently printing", http.StatusConflict)
		return
	}

	body, ok := readCommand(w, r)
	if !ok {
		return
	}

	switch body["command"] {
	case "home":
		axes, _ := body["axes"].([]interface{})
		for _, axis := range axes {
			switch axis {
			case "x":
				p.posX = 0
			case "y":
				p.posY = 0
			case "z":
				p.posZ = 0
			}
		}
		w.WriteHeader(http.StatusNoContent)
	case "jog":
		if x, ok := body["x"].(float64); ok {
			p.posX += x
		}
		if y, ok := body["y"].(float64); ok {
			p.posY += y
		}
		if z, ok := body["z"].(float64); ok {
			p.posZ += z
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "Unknown command", http.StatusBadRequest)
	}
}

func (s *Server) handleTool(w http.ResponseWriter, r *http.Request) {
	p := s.printer
	p.mu.Lock()
	defer p.mu.Unlock()
	p.advance()

	switch r.Method {
	case http.MethodGet:
		resp := map[string]interface{}{}
		for i, tool := range p.tools {
			resp[fmt.Sprintf("tool%d", i)] = temperatureJSON(tool)
		}
		writeJSON(w, resp)

	case http.MethodPost:
		if !p.connected {
			http.Error(w, "Printer is not operational", http.StatusConflict)
			return
		}
		body, ok := readCommand(w, r)
		if !ok {
			return
		}
		switch body["command"] {
		case "target":
			targets, _ := body["targets"].(map[string]interface{})
			for key, value := range targets {
				index, err := strconv.Atoi(strings.TrimPrefix(key, "tool"))
				target, isNum := value.(float64)
				if err != nil || !isNum || index < 0 || index >= len(p.tools) {
					http.Error(w, "Unknown tool "+key, http.StatusBadRequest)
					return
				}
				p.tools[index].target = target
			}
			w.WriteHeader(http.StatusNoContent)
		case "select":
			key, _ := body["tool"].(string)
			index, err := strconv.Atoi(strings.TrimPrefix(key, "tool"))
			if err != nil || index < 0 || index >= len(p.tools) {
				http.Error(w, "Unknown tool "+key, http.StatusBadRequest)
				return
			}
			p.selectedTool = index
			w.WriteHeader(http.StatusNoContent)
		case "extrude":
			if !p.idle() {
				http.Error(w, "Printer is currently printing", http.StatusConflict)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			http.Error(w, "Unknown command", http.StatusBadRequest)
		}

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleBed(w http.ResponseWriter, r *http.Request) {
	p := s.printer
	p.mu.Lock()
	defer p.mu.Unlock()
	p.advance()

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, map[string]interface{}{"bed": temperatureJSON(p.bed)})

	case http.MethodPost:
		if !p.connected {
			http.Error(w, "Printer is not operational", http.StatusConflict)
			return
		}
		body, ok := readCommand(w, r)
		if !ok {
			return
		}
		if body["command"] != "target" {
			http.Error(w, "Unknown command", http.StatusBadRequest)
			return
		}
		target, isNum := body["target"].(float64)
		if !isNum {
			http.Error(w, "Missing target", http.StatusBadRequest)
			return
		}
		p.bed.target = target
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleSD(w http.ResponseWriter, r *http.Request) {
	p := s.printer
	p.mu.Lock()
	defer p.mu.Unlock()
	p.advance()

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, octoprint.SDState{Ready: p.sdReady})

	case http.MethodPost:
		body, ok := readCommand(w, r)
		if !ok {
			return
		}
		switch body["command"] {
		case "init":
			p.sdReady = true
		case "refresh":
			if !p.sdReady {
				http.Error(w, "SD card is not initialized", http.StatusConflict)
				return
			}
		case "release":
			p.sdReady = false
		default:
			http.Error(w, "Unknown command", http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	p := s.printer
	p.mu.Lock()
	defer p.mu.Unlock()
	p.advance()

	if !p.connected {
		http.Error(w, "Printer is not operational", http.StatusConflict)
		return
	}

	body, ok := readCommand(w, r)
	if !ok {
		return
	}
	_, single := body["command"].(string)
	_, multiple := body["commands"].([]interface{})
	if !single && !multiple {
		http.Error(w, "Neither command nor commands given", http.StatusBadRequest)
		return
	}
	// Commands are accepted and dropped; the virtual firmware is write-only.
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleJob(w http.ResponseWriter, r *http.Request) {
	p := s.printer
	p.mu.Lock()
	defer p.mu.Unlock()
	p.advance()

	switch r.Method {
	case http.MethodGet:
		file := map[string]interface{}{"name": nil, "origin": nil, "size": nil, "date": nil}
		progress := map[string]interface{}{"completion": nil, "filepos": nil, "printTime": nil, "printTimeLeft": nil}
		if p.selected != nil {
			file = map[string]interface{}{
				"name":   p.selected.Name,
				"origin": p.selected.Origin,
				"size":   p.selected.Size,
				"date":   p.selected.Date,
			}
			completion := p.completed / defaultJobSeconds * 100
			progress = map[string]interface{}{
				"completion":    completion,
				"filepos":       int64(float64(p.selected.Size) * completion / 100),
				"printTime":     p.completed,
				"printTimeLeft": defaultJobSeconds - p.completed,
			}
		}
		writeJSON(w, map[string]interface{}{
			"job": map[string]interface{}{
				"file":               file,
				"estimatedPrintTime": defaultJobSeconds,
			},
			"progress": progress,
			"state":    p.stateText(),
		})

	case http.MethodPost:
		body, ok := readCommand(w, r)
		if !ok {
			return
		}
		switch body["command"] {
		case "start":
			if p.selected == nil || p.printing || p.paused || !p.connected {
				http.Error(w, "Cannot start: no file selected or job already active", http.StatusConflict)
				return
			}
			p.printing = true
			p.completed = 0
		case "pause":
			switch body["action"] {
			case "pause", nil:
				if !p.printing || p.paused {
					http.Error(w, "No print job to pause", http.StatusConflict)
					return
				}
				p.paused = true
			case "resume":
				if !p.paused {
					http.Error(w, "No paused print job", http.StatusConflict)
					return
				}
				p.paused = false
			case "toggle":
				if !p.printing && !p.paused {
					http.Error(w, "No print job to toggle", http.StatusConflict)
					return
				}
				p.paused = !p.paused
			default:
				http.Error(w, "Unknown pause action", http.StatusBadRequest)
				return
			}
		case "restart":
			if !p.paused {
				http.Error(w, "Restart requires a paused job", http.StatusConflict)
				return
			}
			p.completed = 0
			p.paused = false
			p.printing = true
		case "cancel":
			if !p.printing && !p.paused {
				http.Error(w, "No print job to cancel", http.StatusConflict)
				return
			}
			p.printing = false
			p.paused = false
			p.completed = 0
		default:
			http.Error(w, "Unknown command", http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	p := s.printer
	p.mu.Lock()
	defer p.mu.Unlock()
	p.advance()

	rest := strings.TrimPrefix(r.URL.Path, "/api/files")
	rest = strings.Trim(rest, "/")

	switch r.Method {
	case http.MethodGet:
		switch rest {
		case "":
			writeJSON(w, octoprint.FileListing{
				Files: append(append([]octoprint.FileInfo{}, p.localFiles...), p.sdFiles...),
				Free:  3672615068,
			})
		case octoprint.LocationLocal:
			writeJSON(w, octoprint.FileListing{Files: p.localFiles, Free: 3672615068})
		case octoprint.LocationSD:
			if !p.sdReady {
				http.Error(w, "SD card is not initialized", http.StatusConflict)
				return
			}
			writeJSON(w, octoprint.FileListing{Files: p.sdFiles})
		default:
			http.Error(w, "Unknown location", http.StatusNotFound)
		}

	case http.MethodPost:
		location, path, found := strings.Cut(rest, "/")
		if !found {
			http.Error(w, "Missing file path", http.StatusNotFound)
			return
		}
		file := p.findFile(location, path)
		if file == nil {
			http.Error(w, "File not found", http.StatusNotFound)
			return
		}
		body, ok := readCommand(w, r)
		if !ok {
			return
		}
		if body["command"] != "select" {
			http.Error(w, "Unknown command", http.StatusBadRequest)
			return
		}
		if p.printing || p.paused {
			http.Error(w, "Trying to select a file while printing", http.StatusConflict)
			return
		}
		p.selected = file
		p.completed = 0
		if doPrint, _ := body["print"].(bool); doPrint {
			p.printing = true
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
