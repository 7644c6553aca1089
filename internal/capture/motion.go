package capture

import (
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// DefaultMotionThreshold is the percentage of pixels that must change
// between consecutive frames to register as movement.
const DefaultMotionThreshold = 1.0

// Differencing runs on blurred grayscale frames so sensor noise does not
// register as movement.
const (
	motionBlurKernel = 21
	motionDiffFloor  = 25
)

// MotionDetector reports whether anything moved between consecutive
// frames, by thresholded frame differencing. The control loop uses it to
// throttle hand detection while nobody is in front of the camera.
type MotionDetector struct {
	mu        sync.Mutex
	threshold float64
	baseline  gocv.Mat
	primed    bool
}

// NewMotionDetector creates a detector; threshold values <= 0 fall back
// to DefaultMotionThreshold.
func NewMotionDetector(threshold float64) *MotionDetector {
	if threshold <= 0 {
		threshold = DefaultMotionThreshold
	}
	return &MotionDetector{
		threshold: threshold,
		baseline:  gocv.NewMat(),
	}
}

// Detect compares the frame against the previous one and reports whether
// the changed-pixel percentage exceeds the threshold. The first frame
// primes the baseline and never counts as movement.
func (m *MotionDetector) Detect(frame *gocv.Mat) (bool, float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if frame == nil || frame.Empty() {
		return false, 0
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	flatten(frame, &blurred)

	if !m.primed {
		blurred.CopyTo(&m.baseline)
		m.primed = true
		return false, 0
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(blurred, m.baseline, &diff)

	mask := gocv.NewMat()
	defer mask.Close()
	gocv.Threshold(diff, &mask, motionDiffFloor, 255, gocv.ThresholdBinary)

	changed := float64(gocv.CountNonZero(mask)) / float64(mask.Rows()*mask.Cols()) * 100.0

	blurred.CopyTo(&m.baseline)
	return changed > m.threshold, changed
}

// flatten reduces a frame to blurred grayscale for differencing.
func flatten(frame *gocv.Mat, dst *gocv.Mat) {
	gray := gocv.NewMat()
	defer gray.Close()

	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}
	gocv.GaussianBlur(gray, dst, image.Point{X: motionBlurKernel, Y: motionBlurKernel}, 0, 0, gocv.BorderDefault)
}

// Reset discards the baseline so the next frame primes a fresh one, e.g.
// after detection was paused and the scene may have changed.
func (m *MotionDetector) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.baseline.Empty() {
		m.baseline.Close()
		m.baseline = gocv.NewMat()
	}
	m.primed = false
}

// Close releases the baseline frame.
func (m *MotionDetector) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.baseline.Empty() {
		m.baseline.Close()
		m.baseline = gocv.NewMat()
	}
	m.primed = false
}
