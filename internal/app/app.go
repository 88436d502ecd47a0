// Package app provides the main application logic for the GestureSlide
// presentation controller.
package app

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gestureslide/gestureslide/internal/capture"
	"github.com/gestureslide/gestureslide/internal/control"
	"github.com/gestureslide/gestureslide/internal/detector"
	"github.com/gestureslide/gestureslide/internal/plugin"
	"github.com/gestureslide/gestureslide/internal/swipe"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate when no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the frame rate during active tracking.
	ActiveFPS = 15
	// IdleTimeoutMs is the time in milliseconds without motion before
	// switching back to idle mode.
	IdleTimeoutMs = 2000
	// SessionLogSize bounds the in-memory swipe event log. Events are
	// session-scoped only and never persisted.
	SessionLogSize = 100
)

// Config holds configuration options for the application.
type Config struct {
	PluginDir     string
	CameraID      int
	MotionThresh  float64
	Swipe         swipe.Config
	ControlPlugin string
}

// SwipeEvent describes one accepted swipe during this session.
type SwipeEvent struct {
	ID        string          `json:"id"`
	Direction swipe.Direction `json:"direction"`
	RightHand bool            `json:"right_hand"`
	At        time.Time       `json:"at"`
}

// TrackingSnapshot is a read-only view of the detector state for display
// consumers (HTTP tracking feed, overlays, tray).
type TrackingSnapshot struct {
	Trajectory []int           `json:"trajectory"`
	State      swipe.State     `json:"state"`
	Status     string          `json:"status"`
	Enabled    bool            `json:"enabled"`
	LastEvent  *SwipeEvent     `json:"last_event,omitempty"`
	FingerX    int             `json:"finger_x"`
	FingerY    int             `json:"finger_y"`
	HandSeen   bool            `json:"hand_seen"`
}

// App orchestrates capture, hand detection, swipe detection, and command
// dispatch.
type App struct {
	config     Config
	camera     capture.Camera
	motion     *capture.MotionDetector
	detector   detector.Detector
	swiper     *swipe.Detector
	controller control.Controller
	pluginMgr  *plugin.Manager

	enabled   bool
	mu        sync.RWMutex
	stopCh    chan struct{}
	events    []SwipeEvent
	lastSeenX int
	lastSeenY int
	handSeen  bool
	onSwipe   func(SwipeEvent)
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // 1% pixel change
	}

	pluginMgr := plugin.NewManager(config.PluginDir)

	a := &App{
		config:     config,
		camera:     capture.NewCamera(config.CameraID),
		motion:     capture.NewMotionDetector(motionThreshold),
		swiper:     swipe.New(config.Swipe),
		pluginMgr:  pluginMgr,
		controller: control.NewPluginController(pluginMgr, config.ControlPlugin),
		enabled:    false,
		events:     make([]SwipeEvent, 0, SessionLogSize),
	}

	// Prefer the MediaPipe bridge, fall back to the mock detector so the
	// rest of the system stays runnable without the Python helper.
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// SetEnabled enables or disables swipe detection.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether swipe detection is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// SetController sets the slide controller implementation to use.
func (a *App) SetController(c control.Controller) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.controller = c
}

// SetCamera sets the camera implementation to use.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// OnSwipe registers a callback invoked after each accepted swipe.
func (a *App) OnSwipe(fn func(SwipeEvent)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onSwipe = fn
}

// DiscoverPlugins scans the plugin directory and loads available plugins.
func (a *App) DiscoverPlugins() error {
	return a.pluginMgr.Discover()
}

// Start begins the detection pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}

	a.camera.SetFPS(IdleFPS)

	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Tracking pipeline started")
	return nil
}

// Stop halts the detection pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.motion.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Tracking pipeline stopped")
}

// RecentEvents returns up to n session swipe events, newest first.
func (a *App) RecentEvents(n int) []SwipeEvent {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if n <= 0 || n > len(a.events) {
		n = len(a.events)
	}

	out := make([]SwipeEvent, n)
	for i := 0; i < n; i++ {
		out[i] = a.events[len(a.events)-1-i]
	}
	return out
}

// TrackingSnapshot returns a read-only view of the current tracking state.
func (a *App) TrackingSnapshot() TrackingSnapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()

	snap := TrackingSnapshot{
		Trajectory: a.swiper.Trajectory(),
		State:      a.swiper.State(),
		Status:     a.swiper.Status(),
		Enabled:    a.enabled,
		FingerX:    a.lastSeenX,
		FingerY:    a.lastSeenY,
		HandSeen:   a.handSeen,
	}
	if len(a.events) > 0 {
		last := a.events[len(a.events)-1]
		snap.LastEvent = &last
	}
	return snap
}

// Swiper returns the swipe detector.
func (a *App) Swiper() *swipe.Detector {
	return a.swiper
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *capture.MotionDetector {
	return a.motion
}

// PluginManager returns the plugin manager.
func (a *App) PluginManager() *plugin.Manager {
	return a.pluginMgr
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// recordSwipe appends an event to the bounded session log and notifies the
// registered callback.
func (a *App) recordSwipe(dir swipe.Direction, rightHand bool) SwipeEvent {
	event := SwipeEvent{
		ID:        uuid.NewString(),
		Direction: dir,
		RightHand: rightHand,
		At:        time.Now(),
	}

	a.mu.Lock()
	if len(a.events) >= SessionLogSize {
		copy(a.events, a.events[1:])
		a.events = a.events[:SessionLogSize-1]
	}
	a.events = append(a.events, event)
	fn := a.onSwipe
	a.mu.Unlock()

	if fn != nil {
		fn(event)
	}
	return event
}
