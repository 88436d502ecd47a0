package capture

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Overlay colors (BGR order is irrelevant here; gocv takes RGBA).
var (
	trajectoryColor = color.RGBA{G: 255}
	fingertipColor  = color.RGBA{R: 255, G: 200}
)

// Mirror flips the frame horizontally in place, producing the selfie view
// the rest of the pipeline assumes: a hand moving right in the room moves
// right in the frame.
func Mirror(frame *gocv.Mat) {
	gocv.Flip(*frame, frame, 1)
}

// DrawTrajectory draws the swipe trajectory as a horizontal polyline at the
// given height. The xs slice is a read-only snapshot; it is never modified.
func DrawTrajectory(frame *gocv.Mat, xs []int, y int) {
	if len(xs) < 2 {
		return
	}

	for i := 1; i < len(xs); i++ {
		p1 := image.Point{X: xs[i-1], Y: y}
		p2 := image.Point{X: xs[i], Y: y}
		gocv.Line(frame, p1, p2, trajectoryColor, 2)
	}
}

// DrawFingertip highlights the tracked index fingertip.
func DrawFingertip(frame *gocv.Mat, x, y int) {
	gocv.Circle(frame, image.Point{X: x, Y: y}, 8, fingertipColor, -1)
}
