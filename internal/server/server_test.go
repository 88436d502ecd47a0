package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gestureslide/gestureslide/internal/app"
	"github.com/gestureslide/gestureslide/internal/swipe"
)

// fakeTracker is a Tracker test double with canned state.
type fakeTracker struct {
	snapshot app.TrackingSnapshot
	events   []app.SwipeEvent
}

func (f *fakeTracker) TrackingSnapshot() app.TrackingSnapshot {
	return f.snapshot
}

func (f *fakeTracker) RecentEvents(n int) []app.SwipeEvent {
	if n > len(f.events) {
		n = len(f.events)
	}
	return f.events[:n]
}

func TestServer_Health(t *testing.T) {
	s := New(Config{})

	t.Run("returns 200 with JSON response", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		rec := httptest.NewRecorder()

		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
		}

		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected Content-Type application/json, got %s", ct)
		}

		var response map[string]interface{}
		if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}

		if response["status"] != "ok" {
			t.Errorf("expected status 'ok', got %v", response["status"])
		}
		if _, exists := response["uptime"]; !exists {
			t.Error("expected 'uptime' field in response")
		}
	})

	t.Run("only allows GET method", func(t *testing.T) {
		for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
			req := httptest.NewRequest(method, "/api/health", nil)
			rec := httptest.NewRecorder()

			s.ServeHTTP(rec, req)

			if rec.Code != http.StatusMethodNotAllowed {
				t.Errorf("method %s: expected status %d, got %d", method, http.StatusMethodNotAllowed, rec.Code)
			}
		}
	})
}

func TestServer_Status(t *testing.T) {
	tracker := &fakeTracker{
		snapshot: app.TrackingSnapshot{
			State:   swipe.StateCooldown,
			Status:  "Ready in 1.2s",
			Enabled: true,
		},
	}
	s := New(Config{Tracker: tracker})

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var response struct {
		Enabled bool   `json:"enabled"`
		State   string `json:"state"`
		Status  string `json:"status"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if !response.Enabled {
		t.Error("enabled = false, want true")
	}
	if response.State != string(swipe.StateCooldown) {
		t.Errorf("state = %q, want %q", response.State, swipe.StateCooldown)
	}
	if response.Status != "Ready in 1.2s" {
		t.Errorf("status = %q, want %q", response.Status, "Ready in 1.2s")
	}
}

func TestServer_Events(t *testing.T) {
	tracker := &fakeTracker{
		events: []app.SwipeEvent{
			{ID: "a", Direction: swipe.DirectionRight, RightHand: true, At: time.Unix(1000, 0)},
			{ID: "b", Direction: swipe.DirectionLeft, RightHand: false, At: time.Unix(990, 0)},
		},
	}
	s := New(Config{Tracker: tracker})

	req := httptest.NewRequest(http.MethodGet, "/api/events?limit=1", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var response struct {
		Events []app.SwipeEvent `json:"events"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(response.Events) != 1 {
		t.Fatalf("got %d events, want 1", len(response.Events))
	}
	if response.Events[0].ID != "a" {
		t.Errorf("event ID = %q, want a", response.Events[0].ID)
	}
}

func TestServer_Events_InvalidLimit(t *testing.T) {
	s := New(Config{Tracker: &fakeTracker{}})

	for _, limit := range []string{"0", "-1", "abc"} {
		req := httptest.NewRequest(http.MethodGet, "/api/events?limit="+limit, nil)
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("limit %q: status = %d, want %d", limit, rec.Code, http.StatusBadRequest)
		}
	}
}

func TestServer_TrackerEndpointsAbsentWithoutTracker(t *testing.T) {
	s := New(Config{})

	for _, path := range []string{"/api/status", "/api/events", "/api/tracking"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("path %s: status = %d, want %d", path, rec.Code, http.StatusNotFound)
		}
	}
}
