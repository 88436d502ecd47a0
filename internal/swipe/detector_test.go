package swipe

import (
	"strings"
	"testing"
	"time"
)

// fakeClock is a manually advanced time source for debounce tests.
type fakeClock struct {
	current time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{current: time.Unix(1000, 0)}
}

func (c *fakeClock) Now() time.Time {
	return c.current
}

func (c *fakeClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func newTestDetector(config Config) (*Detector, *fakeClock) {
	d := New(config)
	clock := newFakeClock()
	d.SetClock(clock.Now)
	return d, clock
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.MinDistance != 66 {
		t.Errorf("MinDistance = %d, want 66", config.MinDistance)
	}
	if config.Debounce != 2*time.Second {
		t.Errorf("Debounce = %v, want 2s", config.Debounce)
	}
	if config.MinSamples != 5 {
		t.Errorf("MinSamples = %d, want 5", config.MinSamples)
	}
	if config.Capacity != 30 {
		t.Errorf("Capacity = %d, want 30", config.Capacity)
	}
}

func TestNew_ZeroConfigUsesDefaults(t *testing.T) {
	d := New(Config{})

	if d.Config() != DefaultConfig() {
		t.Errorf("Config() = %+v, want defaults %+v", d.Config(), DefaultConfig())
	}
	if d.State() != StateReady {
		t.Errorf("initial state = %q, want %q", d.State(), StateReady)
	}
}

func TestDetectSwipe_RightHandSwipe(t *testing.T) {
	// Concrete scenario: minDistance=66, minSamples=5, x rises by 100.
	d, _ := newTestDetector(DefaultConfig())

	samples := []int{100, 120, 140, 160, 200}
	for i, x := range samples[:4] {
		if dir := d.DetectSwipe(x, true); dir != DirectionNone {
			t.Fatalf("call %d: direction = %q, want none", i+1, dir)
		}
	}

	if dir := d.DetectSwipe(samples[4], true); dir != DirectionRight {
		t.Errorf("fifth call: direction = %q, want %q", dir, DirectionRight)
	}
}

func TestDetectSwipe_LeftHandInvertsDirection(t *testing.T) {
	// Identical geometric displacement, opposite hands, opposite results.
	right, _ := newTestDetector(DefaultConfig())
	left, _ := newTestDetector(DefaultConfig())

	samples := []int{100, 120, 140, 160, 200}
	var rightDir, leftDir Direction
	for _, x := range samples {
		rightDir = right.DetectSwipe(x, true)
		leftDir = left.DetectSwipe(x, false)
	}

	if rightDir != DirectionRight {
		t.Errorf("right hand direction = %q, want %q", rightDir, DirectionRight)
	}
	if leftDir != DirectionLeft {
		t.Errorf("left hand direction = %q, want %q", leftDir, DirectionLeft)
	}
}

func TestDetectSwipe_LeftwardMotion(t *testing.T) {
	d, _ := newTestDetector(DefaultConfig())

	samples := []int{300, 280, 250, 220, 180}
	var dir Direction
	for _, x := range samples {
		dir = d.DetectSwipe(x, true)
	}

	if dir != DirectionLeft {
		t.Errorf("direction = %q, want %q", dir, DirectionLeft)
	}
}

func TestDetectSwipe_BelowThresholdNeverTriggers(t *testing.T) {
	d, _ := newTestDetector(DefaultConfig())

	// Jittery motion with first-to-last displacement well under 66px.
	samples := []int{100, 110, 95, 120, 105, 130, 115, 140, 125, 150}
	for i, x := range samples {
		if dir := d.DetectSwipe(x, true); dir != DirectionNone {
			t.Fatalf("call %d: direction = %q for sub-threshold motion", i+1, dir)
		}
	}
}

func TestDetectSwipe_MinSamplesGate(t *testing.T) {
	d, _ := newTestDetector(DefaultConfig())

	// Huge displacement, but only four samples since construction.
	samples := []int{0, 200, 400, 600}
	for i, x := range samples {
		if dir := d.DetectSwipe(x, true); dir != DirectionNone {
			t.Fatalf("call %d: direction = %q before min samples reached", i+1, dir)
		}
	}
}

func TestDetectSwipe_TrajectoryClearedOnTrigger(t *testing.T) {
	d, _ := newTestDetector(DefaultConfig())

	for _, x := range []int{100, 120, 140, 160, 200} {
		d.DetectSwipe(x, true)
	}

	if traj := d.Trajectory(); len(traj) != 0 {
		t.Fatalf("trajectory length after trigger = %d, want 0", len(traj))
	}

	// The very next observation starts from an empty baseline.
	if dir := d.DetectSwipe(205, true); dir != DirectionNone {
		t.Errorf("first call after trigger: direction = %q, want none", dir)
	}
	if traj := d.Trajectory(); len(traj) != 1 {
		t.Errorf("trajectory length = %d, want 1", len(traj))
	}
}

func TestDetectSwipe_DebounceSuppressesSecondTrigger(t *testing.T) {
	d, clock := newTestDetector(DefaultConfig())

	for _, x := range []int{100, 120, 140, 160, 200} {
		d.DetectSwipe(x, true)
	}
	if d.State() != StateCooldown {
		t.Fatalf("state after trigger = %q, want %q", d.State(), StateCooldown)
	}

	// A second qualifying sequence inside the debounce window is suppressed.
	clock.Advance(500 * time.Millisecond)
	for i, x := range []int{100, 120, 140, 160, 200} {
		if dir := d.DetectSwipe(x, true); dir != DirectionNone {
			t.Fatalf("cooldown call %d: direction = %q, want none", i+1, dir)
		}
	}

	// After the debounce interval an equivalent sequence triggers again.
	clock.Advance(2 * time.Second)
	d.Reset()
	var dir Direction
	for _, x := range []int{100, 120, 140, 160, 200} {
		dir = d.DetectSwipe(x, true)
	}
	if dir != DirectionRight {
		t.Errorf("post-cooldown direction = %q, want %q", dir, DirectionRight)
	}
}

func TestDetectSwipe_StaleBufferFiresAtCooldownExpiry(t *testing.T) {
	// Motion accumulated during cooldown is not discarded: the instant the
	// debounce interval elapses, the stale displacement may trigger without
	// fresh motion.
	d, clock := newTestDetector(DefaultConfig())

	for _, x := range []int{100, 120, 140, 160, 200} {
		d.DetectSwipe(x, true)
	}

	// Keep moving during cooldown; all suppressed, buffer keeps growing.
	clock.Advance(time.Second)
	for _, x := range []int{100, 140, 180, 220, 260} {
		if dir := d.DetectSwipe(x, true); dir != DirectionNone {
			t.Fatalf("direction = %q during cooldown, want none", dir)
		}
	}

	// One more observation after expiry fires off the buffered displacement.
	clock.Advance(1500 * time.Millisecond)
	if dir := d.DetectSwipe(265, true); dir != DirectionRight {
		t.Errorf("direction at cooldown expiry = %q, want %q", dir, DirectionRight)
	}
}

func TestDetector_RingBufferEviction(t *testing.T) {
	d, _ := newTestDetector(Config{MinDistance: 1000, Capacity: 5})

	for x := 0; x < 8; x++ {
		d.DetectSwipe(x, true)
	}

	traj := d.Trajectory()
	if len(traj) != 5 {
		t.Fatalf("trajectory length = %d, want capacity 5", len(traj))
	}
	for i, want := range []int{3, 4, 5, 6, 7} {
		if traj[i] != want {
			t.Errorf("trajectory[%d] = %d, want %d", i, traj[i], want)
		}
	}
}

func TestDetector_DisplacementUsesCurrentBuffer(t *testing.T) {
	// Displacement is measured across the buffered samples only, so a
	// bounded buffer still reaches the threshold once enough motion fits.
	d, _ := newTestDetector(Config{MinDistance: 66, Capacity: 6, MinSamples: 5})

	// Each step moves 15px; six buffered samples span 75px >= 66.
	var dir Direction
	for x := 0; x <= 90; x += 15 {
		dir = d.DetectSwipe(x, true)
		if dir != DirectionNone {
			break
		}
	}
	if dir != DirectionRight {
		t.Errorf("direction = %q, want %q", dir, DirectionRight)
	}
}

func TestStatus(t *testing.T) {
	d, clock := newTestDetector(DefaultConfig())

	if got := d.Status(); got != "READY" {
		t.Errorf("initial status = %q, want READY", got)
	}

	for _, x := range []int{100, 120, 140, 160, 200} {
		d.DetectSwipe(x, true)
	}

	clock.Advance(500 * time.Millisecond)
	if got := d.Status(); got != "Ready in 1.5s" {
		t.Errorf("status = %q, want %q", got, "Ready in 1.5s")
	}

	// Status never reports a negative remainder.
	clock.Advance(5 * time.Second)
	if got := d.Status(); !strings.HasPrefix(got, "Ready in 0.0") {
		t.Errorf("status after expiry = %q, want zero remainder", got)
	}
}

func TestStatus_IsPure(t *testing.T) {
	d, clock := newTestDetector(DefaultConfig())

	for _, x := range []int{100, 120, 140, 160, 200} {
		d.DetectSwipe(x, true)
	}

	// Querying status after the debounce window must not flip the state;
	// only a trigger check performs the lazy transition.
	clock.Advance(3 * time.Second)
	d.Status()
	if d.State() != StateCooldown {
		t.Errorf("state after Status() = %q, want %q unchanged", d.State(), StateCooldown)
	}
}

func TestTrajectory_SnapshotIsIndependent(t *testing.T) {
	d, _ := newTestDetector(DefaultConfig())

	d.DetectSwipe(100, true)
	d.DetectSwipe(110, true)

	snapshot := d.Trajectory()
	snapshot[0] = -1

	if again := d.Trajectory(); again[0] != 100 {
		t.Errorf("detector buffer mutated through snapshot: got %d, want 100", again[0])
	}
}

func TestReset(t *testing.T) {
	d, _ := newTestDetector(DefaultConfig())

	for _, x := range []int{100, 120, 140, 160, 200} {
		d.DetectSwipe(x, true)
	}
	d.DetectSwipe(300, true)
	d.Reset()

	if d.State() != StateReady {
		t.Errorf("state after Reset = %q, want %q", d.State(), StateReady)
	}
	if len(d.Trajectory()) != 0 {
		t.Errorf("trajectory not empty after Reset")
	}
	if d.Status() != "READY" {
		t.Errorf("status after Reset = %q, want READY", d.Status())
	}
}
