package server

import (
	"fmt"
	"net/http"
	"time"

	"gocv.io/x/gocv"

	"github.com/gestureslide/gestureslide/internal/capture"
)

// trajectoryOverlayY is the height at which the swipe trajectory is drawn.
const trajectoryOverlayY = 50

// StreamHandler serves MJPEG frames from the camera, annotated with the
// current swipe trajectory and fingertip position when a tracker is present.
type StreamHandler struct {
	camera  capture.Camera
	tracker Tracker
}

// NewStreamHandler creates a new StreamHandler. The tracker may be nil, in
// which case frames are streamed without overlays.
func NewStreamHandler(camera capture.Camera, tracker Tracker) *StreamHandler {
	return &StreamHandler{camera: camera, tracker: tracker}
}

// ServeHTTP streams MJPEG frames to connected clients.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	for {
		select {
		case <-r.Context().Done():
			return
		default:
		}

		frame, err := h.camera.ReadFrame()
		if err != nil {
			time.Sleep(100 * time.Millisecond)
			continue
		}

		h.annotate(frame)

		buf, err := gocv.IMEncode(".jpg", *frame)
		frame.Close()
		if err != nil {
			continue
		}

		fmt.Fprintf(w, "--frame\r\n")
		fmt.Fprintf(w, "Content-Type: image/jpeg\r\n")
		fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", buf.Len())
		w.Write(buf.GetBytes())
		fmt.Fprintf(w, "\r\n")
		buf.Close()

		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}

		time.Sleep(66 * time.Millisecond) // ~15 FPS
	}
}

// annotate draws the trajectory and fingertip from the tracker's read-only
// snapshot onto the frame.
func (h *StreamHandler) annotate(frame *gocv.Mat) {
	if h.tracker == nil {
		return
	}

	snap := h.tracker.TrackingSnapshot()
	capture.DrawTrajectory(frame, snap.Trajectory, trajectoryOverlayY)
	if snap.HandSeen {
		capture.DrawFingertip(frame, snap.FingerX, snap.FingerY)
	}
}
