package capture

import (
	"testing"

	"gocv.io/x/gocv"
)

func TestNewMotionDetector(t *testing.T) {
	tests := []struct {
		name      string
		threshold float64
	}{
		{name: "default threshold", threshold: 1.0},
		{name: "high threshold", threshold: 5.0},
		{name: "low threshold", threshold: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md := NewMotionDetector(tt.threshold)
			if md == nil {
				t.Fatal("NewMotionDetector returned nil")
			}
			defer md.Close()

			if md.threshold != tt.threshold {
				t.Errorf("threshold = %f, want %f", md.threshold, tt.threshold)
			}
			if md.initialized {
				t.Error("motion detector should not be initialized initially")
			}
		})
	}
}

func TestMotionDetector_NoMotion(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	md := NewMotionDetector(1.0)
	defer md.Close()

	frame1 := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame1.Close()
	frame2 := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame2.Close()

	// First frame establishes the baseline.
	detected, pct := md.Detect(&frame1)
	if detected {
		t.Error("motion detected on baseline frame")
	}
	if pct != 0 {
		t.Errorf("change percent on baseline = %f, want 0", pct)
	}

	// Identical frame: no motion.
	detected, _ = md.Detect(&frame2)
	if detected {
		t.Error("motion detected between identical frames")
	}
}

func TestMotionDetector_Motion(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	md := NewMotionDetector(1.0)
	defer md.Close()

	dark := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer dark.Close()

	bright := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(200, 200, 200, 0), 480, 640, gocv.MatTypeCV8UC3)
	defer bright.Close()

	md.Detect(&dark)

	detected, pct := md.Detect(&bright)
	if !detected {
		t.Error("motion not detected between dark and bright frames")
	}
	if pct <= 1.0 {
		t.Errorf("change percent = %f, want > 1.0", pct)
	}
}

func TestMotionDetector_Reset(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	md := NewMotionDetector(1.0)
	defer md.Close()

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	md.Detect(&frame)
	if !md.initialized {
		t.Fatal("detector not initialized after first frame")
	}

	md.Reset()
	if md.initialized {
		t.Error("detector still initialized after Reset")
	}

	// After reset the next frame is a baseline again.
	detected, _ := md.Detect(&frame)
	if detected {
		t.Error("motion detected on baseline frame after Reset")
	}
}

func TestMotionDetector_NilFrame(t *testing.T) {
	md := NewMotionDetector(1.0)
	defer md.Close()

	detected, pct := md.Detect(nil)
	if detected || pct != 0 {
		t.Errorf("Detect(nil) = (%v, %f), want (false, 0)", detected, pct)
	}
}
