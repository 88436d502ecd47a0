// Package detector provides hand detection interfaces and types for the
// GestureSlide tracking pipeline.
package detector

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point3D represents a 3D point with coordinates normalized to the frame
// (x and y in 0-1, origin top-left, x increasing rightward).
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents the 21 hand landmarks detected by MediaPipe.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// IsRightHand classifies the detected hand by comparing the x-coordinates of
// the thumb tip and the wrist: a thumb to the right of the wrist means a
// right hand. The rule assumes the frame was mirrored for selfie view before
// detection.
func (h *HandLandmarks) IsRightHand() bool {
	return h.Points[ThumbTip].X > h.Points[Wrist].X
}

// IndexTipPixel converts the index fingertip landmark to pixel coordinates
// for a frame of the given width and height.
func (h *HandLandmarks) IndexTipPixel(width, height int) (int, int) {
	tip := h.Points[IndexTip]
	return int(tip.X * float64(width)), int(tip.Y * float64(height))
}
