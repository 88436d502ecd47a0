package app

import (
	"log"
	"time"

	"gocv.io/x/gocv"

	"github.com/gestureslide/gestureslide/internal/capture"
	"github.com/gestureslide/gestureslide/internal/swipe"
)

// runPipeline is the main loop that processes frames from the camera.
// It switches between idle and active frame rates based on motion detection
// so hand detection only runs at full rate while someone is moving.
func (a *App) runPipeline(stopCh <-chan struct{}) {
	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.Camera().ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()

				if !activeMode {
					activeMode = true
					a.Camera().SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.Camera().SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to idle mode")
				}
			}

			if !activeMode {
				frame.Close()
				continue
			}

			a.processFrame(frame)
			frame.Close()
		}
	}
}

// processFrame runs one frame through mirroring, hand detection, and swipe
// detection, dispatching a slide command when a swipe completes. It returns
// the detected direction so tests can drive frames without a camera.
//
// Frames with no detected hand are not observations: the swipe detector is
// not called for them.
func (a *App) processFrame(frame *gocv.Mat) swipe.Direction {
	capture.Mirror(frame)

	hands, err := a.Detector().Detect(frame)
	if err != nil {
		log.Printf("Error detecting hands: %v", err)
		return swipe.DirectionNone
	}

	if len(hands) == 0 {
		a.mu.Lock()
		a.handSeen = false
		a.mu.Unlock()
		return swipe.DirectionNone
	}

	// The pipeline tracks a single hand; extra detections are ignored.
	hand := &hands[0]
	x, y := hand.IndexTipPixel(frame.Cols(), frame.Rows())
	rightHand := hand.IsRightHand()

	a.mu.Lock()
	a.lastSeenX = x
	a.lastSeenY = y
	a.handSeen = true
	a.mu.Unlock()

	dir := a.swiper.DetectSwipe(x, rightHand)
	if dir == swipe.DirectionNone {
		return dir
	}

	a.dispatch(dir)
	event := a.recordSwipe(dir, rightHand)
	log.Printf("Swipe detected: %s (right hand: %v, event %s)", dir, rightHand, event.ID)

	return dir
}

// dispatch maps a corrected swipe direction onto a slide command: rightward
// swipes advance, leftward swipes retreat.
func (a *App) dispatch(dir swipe.Direction) {
	a.mu.RLock()
	controller := a.controller
	a.mu.RUnlock()

	var err error
	switch dir {
	case swipe.DirectionRight:
		err = controller.Advance()
	case swipe.DirectionLeft:
		err = controller.Retreat()
	}
	if err != nil {
		log.Printf("Error dispatching %s: %v", dir, err)
	}
}
