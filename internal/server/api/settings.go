// Package api provides HTTP API handlers for the GestureSlide server.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/gestureslide/gestureslide/internal/store"
)

// Settings defaults returned when a key has never been stored.
const (
	defaultMinDistance = 66
	defaultDebounceMs  = 2000
	defaultCameraID    = 0
	defaultPlugin      = "keyboard"
)

// SettingsHandler handles HTTP requests for the settings resource.
type SettingsHandler struct {
	store *store.Store
}

// NewSettingsHandler creates a new SettingsHandler with the given store.
func NewSettingsHandler(s *store.Store) *SettingsHandler {
	return &SettingsHandler{store: s}
}

type settingsResponse struct {
	MinDistance   int    `json:"min_distance"`
	DebounceMs    int    `json:"debounce_ms"`
	CameraID      int    `json:"camera_id"`
	ControlPlugin string `json:"control_plugin"`
	Enabled       bool   `json:"enabled"`
}

type updateSettingsRequest struct {
	MinDistance   *int    `json:"min_distance"`
	DebounceMs    *int    `json:"debounce_ms"`
	CameraID      *int    `json:"camera_id"`
	ControlPlugin *string `json:"control_plugin"`
	Enabled       *bool   `json:"enabled"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ServeHTTP implements the http.Handler interface.
func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.update(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *SettingsHandler) get(w http.ResponseWriter, r *http.Request) {
	settings := h.store.Settings()

	writeJSON(w, http.StatusOK, settingsResponse{
		MinDistance:   settings.GetInt(store.KeyMinDistance, defaultMinDistance),
		DebounceMs:    settings.GetInt(store.KeyDebounceMs, defaultDebounceMs),
		CameraID:      settings.GetInt(store.KeyCameraID, defaultCameraID),
		ControlPlugin: settings.GetString(store.KeyControlPlugin, defaultPlugin),
		Enabled:       settings.GetBool(store.KeyEnabled, true),
	})
}

// update applies a partial settings update. Unknown fields are ignored;
// present fields are validated before anything is written, so a rejected
// request changes nothing. Updates take effect on the next pipeline start.
func (h *SettingsHandler) update(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	if req.MinDistance != nil && *req.MinDistance <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "min_distance must be positive"})
		return
	}
	if req.DebounceMs != nil && *req.DebounceMs <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "debounce_ms must be positive"})
		return
	}
	if req.CameraID != nil && *req.CameraID < 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "camera_id must not be negative"})
		return
	}
	if req.ControlPlugin != nil && *req.ControlPlugin == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "control_plugin must not be empty"})
		return
	}

	settings := h.store.Settings()

	type write struct {
		key string
		err error
	}
	var writes []write

	if req.MinDistance != nil {
		writes = append(writes, write{store.KeyMinDistance, settings.SetInt(store.KeyMinDistance, *req.MinDistance)})
	}
	if req.DebounceMs != nil {
		writes = append(writes, write{store.KeyDebounceMs, settings.SetInt(store.KeyDebounceMs, *req.DebounceMs)})
	}
	if req.CameraID != nil {
		writes = append(writes, write{store.KeyCameraID, settings.SetInt(store.KeyCameraID, *req.CameraID)})
	}
	if req.ControlPlugin != nil {
		writes = append(writes, write{store.KeyControlPlugin, settings.Set(store.KeyControlPlugin, *req.ControlPlugin)})
	}
	if req.Enabled != nil {
		writes = append(writes, write{store.KeyEnabled, settings.SetBool(store.KeyEnabled, *req.Enabled)})
	}

	for _, wr := range writes {
		if wr.err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to save " + wr.key})
			return
		}
	}

	h.get(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
