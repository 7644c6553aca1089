package capture

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// MockCamera is a test implementation of Camera that serves a synthetic
// frame or a configured error.
type MockCamera struct {
	frame gocv.Mat
	err   error
	reads int
}

// NewMockCamera creates a mock serving a solid gray 640x480 frame.
func NewMockCamera() *MockCamera {
	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	frame.SetTo(gocv.NewScalar(128, 128, 128, 0))
	return &MockCamera{frame: frame}
}

// SetError makes subsequent reads fail with err.
func (m *MockCamera) SetError(err error) {
	m.err = err
}

// Read returns the synthetic frame or the configured error.
func (m *MockCamera) Read() (*gocv.Mat, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.reads++
	return &m.frame, nil
}

// Reads reports how many frames were served.
func (m *MockCamera) Reads() int {
	return m.reads
}

// Close releases the synthetic frame.
func (m *MockCamera) Close() error {
	return m.frame.Close()
}

// TestPattern draws a small marker into the mock frame, giving tests a
// visible frame-to-frame change to detect.
func (m *MockCamera) TestPattern() {
	gocv.Rectangle(&m.frame, image.Rect(10, 10, 60, 60), color.RGBA{R: 255}, -1)
}
