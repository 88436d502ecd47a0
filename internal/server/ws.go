package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Local-only server.
	},
}

// TrackingHandler broadcasts the tracking snapshot to WebSocket clients so
// a UI can render the trajectory and cooldown state live.
type TrackingHandler struct {
	tracker Tracker
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

// NewTrackingHandler creates a new TrackingHandler for the given tracker.
func NewTrackingHandler(tracker Tracker) *TrackingHandler {
	h := &TrackingHandler{
		tracker: tracker,
		clients: make(map[*websocket.Conn]bool),
	}
	go h.broadcast()
	return h
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *TrackingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep the connection alive by reading messages until the client leaves.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// broadcast sends the tracking snapshot to all connected clients.
func (h *TrackingHandler) broadcast() {
	ticker := time.NewTicker(66 * time.Millisecond) // ~15 Hz
	defer ticker.Stop()

	for range ticker.C {
		h.mu.RLock()
		idle := len(h.clients) == 0
		h.mu.RUnlock()
		if idle {
			continue
		}

		snap := h.tracker.TrackingSnapshot()
		msg, err := json.Marshal(map[string]interface{}{
			"tracking":  snap,
			"timestamp": time.Now().UnixMilli(),
		})
		if err != nil {
			continue
		}

		h.mu.RLock()
		for conn := range h.clients {
			conn.WriteMessage(websocket.TextMessage, msg)
		}
		h.mu.RUnlock()
	}
}
