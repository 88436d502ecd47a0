// Package swipe turns a stream of per-frame fingertip x-coordinates into
// discrete left/right swipe events, debounced so one physical swipe fires
// exactly one event.
package swipe

import (
	"fmt"
	"sync"
	"time"
)

// Direction represents the outcome of a single detection call.
type Direction string

const (
	// DirectionNone means no swipe was recognized on this frame.
	DirectionNone Direction = ""
	// DirectionLeft represents a leftward swipe (previous slide).
	DirectionLeft Direction = "left"
	// DirectionRight represents a rightward swipe (next slide).
	DirectionRight Direction = "right"
)

// State represents the debounce state of the detector.
type State string

const (
	// StateReady means the detector may trigger on the next qualifying motion.
	StateReady State = "READY"
	// StateCooldown means triggers are suppressed until the debounce interval elapses.
	StateCooldown State = "COOLDOWN"
)

// Config holds detection thresholds. A Detector's config is fixed at
// construction.
type Config struct {
	// MinDistance is the minimum absolute pixel displacement between the
	// first and last buffered samples required to qualify as a swipe.
	MinDistance int

	// Debounce is the minimum interval between two accepted triggers.
	Debounce time.Duration

	// MinSamples is the minimum trajectory length before a swipe is evaluated.
	MinSamples int

	// Capacity is the trajectory ring-buffer size. Oldest samples are
	// evicted first once the buffer is full.
	Capacity int
}

// DefaultConfig returns a Config with the standard thresholds.
func DefaultConfig() Config {
	return Config{
		MinDistance: 66,
		Debounce:    2 * time.Second,
		MinSamples:  5,
		Capacity:    30,
	}
}

// normalized fills zero or negative fields with defaults so a partially
// populated Config still yields a working detector.
func (c Config) normalized() Config {
	def := DefaultConfig()
	if c.MinDistance <= 0 {
		c.MinDistance = def.MinDistance
	}
	if c.Debounce <= 0 {
		c.Debounce = def.Debounce
	}
	if c.MinSamples <= 0 {
		c.MinSamples = def.MinSamples
	}
	if c.Capacity <= 0 {
		c.Capacity = def.Capacity
	}
	return c
}

// Detector is the swipe-detection state machine. It buffers recent fingertip
// x-coordinates, applies a displacement threshold, and suppresses repeat
// triggers with a cooldown timer.
//
// One pipeline goroutine feeds observations via DetectSwipe; status and
// trajectory readers may run concurrently, so all state is mutex-guarded.
type Detector struct {
	config      Config
	trajectory  []int
	state       State
	lastTrigger time.Time
	now         func() time.Time
	mu          sync.Mutex
}

// New creates a Detector with the given config. Zero-valued config fields
// fall back to DefaultConfig values.
func New(config Config) *Detector {
	config = config.normalized()
	return &Detector{
		config:     config,
		trajectory: make([]int, 0, config.Capacity),
		state:      StateReady,
		now:        time.Now,
	}
}

// SetClock replaces the detector's time source. Intended for tests that
// exercise debounce behavior without wall-clock waits.
func (d *Detector) SetClock(now func() time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if now != nil {
		d.now = now
	}
}

// Config returns the detector's configuration.
func (d *Detector) Config() Config {
	return d.config
}

// DetectSwipe records one fingertip observation and reports whether it
// completes a swipe. Callers must invoke it exactly once per frame in which
// a tracked fingertip exists; frames without a hand are not observations.
//
// The returned direction is corrected for handedness: a left hand's
// geometric motion is mirrored so gesture semantics stay consistent
// regardless of which hand the user gestures with.
func (d *Detector) DetectSwipe(x int, rightHand bool) Direction {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.append(x)

	if len(d.trajectory) < d.config.MinSamples {
		return DirectionNone
	}

	delta := d.trajectory[len(d.trajectory)-1] - d.trajectory[0]
	if abs(delta) < d.config.MinDistance {
		return DirectionNone
	}

	// The trajectory is deliberately not cleared on a suppressed attempt:
	// motion accumulated during cooldown may fire the instant cooldown
	// expires. Cooldown is a firing-rate limiter, not a motion reset.
	if !d.canTrigger() {
		return DirectionNone
	}

	d.trigger()
	d.trajectory = d.trajectory[:0]

	dir := DirectionRight
	if delta < 0 {
		dir = DirectionLeft
	}
	if !rightHand {
		dir = dir.invert()
	}
	return dir
}

// Status reports the debounce state for display: "READY", or the time
// remaining until the detector can trigger again, rounded to one decimal.
// It is read-only and has no side effects.
func (d *Detector) Status() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state == StateReady {
		return string(StateReady)
	}

	remain := d.config.Debounce.Seconds() - d.now().Sub(d.lastTrigger).Seconds()
	if remain < 0 {
		remain = 0
	}
	return fmt.Sprintf("Ready in %.1fs", remain)
}

// State returns the current debounce state.
func (d *Detector) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Trajectory returns a copy of the buffered x-coordinates, oldest first.
// Visualization consumers draw from this snapshot; they never see or mutate
// the detector's own buffer.
func (d *Detector) Trajectory() []int {
	d.mu.Lock()
	defer d.mu.Unlock()

	snapshot := make([]int, len(d.trajectory))
	copy(snapshot, d.trajectory)
	return snapshot
}

// Reset clears the trajectory and returns the detector to READY.
func (d *Detector) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.trajectory = d.trajectory[:0]
	d.state = StateReady
	d.lastTrigger = time.Time{}
}

// append inserts a sample, evicting the oldest when at capacity.
func (d *Detector) append(x int) {
	if len(d.trajectory) >= d.config.Capacity {
		copy(d.trajectory, d.trajectory[1:])
		d.trajectory = d.trajectory[:d.config.Capacity-1]
	}
	d.trajectory = append(d.trajectory, x)
}

// canTrigger reports whether the state machine allows a trigger now.
// The COOLDOWN -> READY transition is evaluated lazily here and persisted.
func (d *Detector) canTrigger() bool {
	if d.state == StateReady {
		return true
	}
	if d.now().Sub(d.lastTrigger) > d.config.Debounce {
		d.state = StateReady
		return true
	}
	return false
}

// trigger records an accepted swipe and enters cooldown.
func (d *Detector) trigger() {
	d.state = StateCooldown
	d.lastTrigger = d.now()
}

func (dir Direction) invert() Direction {
	if dir == DirectionRight {
		return DirectionLeft
	}
	return DirectionRight
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
