// Package capture acquires video frames from the local webcam.
package capture

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"
)

// ErrNoFrame indicates the device produced no usable frame this cycle.
var ErrNoFrame = errors.New("capture: no frame available")

// Camera produces BGR frames. The returned Mat is owned by the camera and
// is only valid until the next Read.
type Camera interface {
	Read() (*gocv.Mat, error)
	Close() error
}

// Webcam reads from a local device. Each frame is mirrored horizontally so
// the operator sees a selfie view; the gesture handedness conventions
// assume this orientation.
type Webcam struct {
	cap      *gocv.VideoCapture
	frame    gocv.Mat
	mirrored gocv.Mat
}

// OpenWebcam opens the device with the given OpenCV index.
func OpenWebcam(device int) (*Webcam, error) {
	cap, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", device, err)
	}
	return &Webcam{
		cap:      cap,
		frame:    gocv.NewMat(),
		mirrored: gocv.NewMat(),
	}, nil
}

// Read grabs and mirrors the next frame.
func (w *Webcam) Read() (*gocv.Mat, error) {
	if ok := w.cap.Read(&w.frame); !ok || w.frame.Empty() {
		return nil, ErrNoFrame
	}
	gocv.Flip(w.frame, &w.mirrored, 1)
	return &w.mirrored, nil
}

// Close releases the device and frame storage.
func (w *Webcam) Close() error {
	w.frame.Close()
	w.mirrored.Close()
	return w.cap.Close()
}
