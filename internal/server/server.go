// Package server provides the local HTTP server for the GestureSlide
// presentation controller.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gestureslide/gestureslide/internal/app"
	"github.com/gestureslide/gestureslide/internal/capture"
	"github.com/gestureslide/gestureslide/internal/server/api"
	"github.com/gestureslide/gestureslide/internal/store"
)

// Tracker exposes the read-only tracking state the server displays.
// *app.App satisfies it.
type Tracker interface {
	TrackingSnapshot() app.TrackingSnapshot
	RecentEvents(n int) []app.SwipeEvent
}

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Tracker   Tracker
	Camera    capture.Camera
}

// Server represents the HTTP server for the GestureSlide application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.Store != nil {
		settingsHandler := api.NewSettingsHandler(s.config.Store)
		s.mux.Handle("/api/settings", settingsHandler)
	}

	if s.config.Tracker != nil {
		s.mux.HandleFunc("/api/status", s.handleStatus)
		s.mux.HandleFunc("/api/events", s.handleEvents)
		s.mux.Handle("/api/tracking", NewTrackingHandler(s.config.Tracker))
	}

	// The MJPEG stream draws tracking overlays when a tracker is present.
	if s.config.Camera != nil {
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Camera, s.config.Tracker))
	}

	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	writeJSON(w, map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	})
}

// handleStatus handles GET requests to /api/status, reporting the swipe
// detector's debounce state.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap := s.config.Tracker.TrackingSnapshot()

	writeJSON(w, map[string]interface{}{
		"enabled": snap.Enabled,
		"state":   snap.State,
		"status":  snap.Status,
	})
}

// handleEvents handles GET requests to /api/events, returning this session's
// swipe log, newest first. The log lives in memory only.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	events := s.config.Tracker.RecentEvents(limit)

	writeJSON(w, map[string]interface{}{
		"events": events,
	})
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
