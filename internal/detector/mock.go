package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It returns a scripted sequence of detection results.
type MockDetector struct {
	results [][]HandLandmarks
	index   int
	err     error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets a single result returned by every Detect call.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.results = [][]HandLandmarks{hands}
	m.index = 0
}

// SetSequence sets per-call results. Once the sequence is exhausted,
// Detect reports no hands.
func (m *MockDetector) SetSequence(results [][]HandLandmarks) {
	m.results = results
	m.index = 0
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the next scripted result or the configured error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(m.results) == 0 {
		return nil, nil
	}
	if len(m.results) == 1 {
		return m.results[0], nil
	}
	if m.index >= len(m.results) {
		return nil, nil
	}
	hands := m.results[m.index]
	m.index++
	return hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// PointingHandLandmarks returns a preset HandLandmarks with the index
// fingertip at the given normalized position. The thumb and wrist are
// arranged so IsRightHand reports the requested handedness.
func PointingHandLandmarks(tipX, tipY float64, rightHand bool) HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}
	if !rightHand {
		landmarks.Handedness = "Left"
	}

	// Thumb offset relative to the wrist decides the handedness rule.
	thumbOffset := 0.08
	if !rightHand {
		thumbOffset = -0.08
	}

	wristX := tipX
	wristY := tipY + 0.3

	landmarks.Points[Wrist] = Point3D{X: wristX, Y: wristY}

	landmarks.Points[ThumbCMC] = Point3D{X: wristX + thumbOffset*0.4, Y: wristY - 0.04}
	landmarks.Points[ThumbMCP] = Point3D{X: wristX + thumbOffset*0.6, Y: wristY - 0.09}
	landmarks.Points[ThumbIP] = Point3D{X: wristX + thumbOffset*0.8, Y: wristY - 0.14}
	landmarks.Points[ThumbTip] = Point3D{X: wristX + thumbOffset, Y: wristY - 0.18}

	// Index finger extended toward the tracked tip.
	landmarks.Points[IndexMCP] = Point3D{X: tipX, Y: tipY + 0.22}
	landmarks.Points[IndexPIP] = Point3D{X: tipX, Y: tipY + 0.15}
	landmarks.Points[IndexDIP] = Point3D{X: tipX, Y: tipY + 0.07}
	landmarks.Points[IndexTip] = Point3D{X: tipX, Y: tipY}

	// Remaining fingers loosely curled; their exact positions do not affect
	// fingertip tracking or handedness.
	curl := func(mcp, pip, dip, tip int, offset float64) {
		landmarks.Points[mcp] = Point3D{X: wristX - offset, Y: wristY - 0.12}
		landmarks.Points[pip] = Point3D{X: wristX - offset, Y: wristY - 0.14, Z: -0.04}
		landmarks.Points[dip] = Point3D{X: wristX - offset - 0.02, Y: wristY - 0.12, Z: -0.04}
		landmarks.Points[tip] = Point3D{X: wristX - offset - 0.03, Y: wristY - 0.10, Z: -0.02}
	}
	curl(MiddleMCP, MiddlePIP, MiddleDIP, MiddleTip, 0.02)
	curl(RingMCP, RingPIP, RingDIP, RingTip, 0.05)
	curl(PinkyMCP, PinkyPIP, PinkyDIP, PinkyTip, 0.08)

	return landmarks
}
