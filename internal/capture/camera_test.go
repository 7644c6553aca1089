package capture

import (
	"errors"
	"testing"
)

func TestMockCameraServesFrames(t *testing.T) {
	cam := NewMockCamera()
	defer cam.Close()

	frame, err := cam.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if frame.Empty() {
		t.Fatal("expected a non-empty frame")
	}
	if frame.Cols() != 640 || frame.Rows() != 480 {
		t.Errorf("expected 640x480, got %dx%d", frame.Cols(), frame.Rows())
	}

	cam.Read()
	if cam.Reads() != 2 {
		t.Errorf("expected 2 reads, got %d", cam.Reads())
	}
}

func TestMockCameraError(t *testing.T) {
	cam := NewMockCamera()
	defer cam.Close()

	cam.SetError(ErrNoFrame)
	if _, err := cam.Read(); !errors.Is(err, ErrNoFrame) {
		t.Errorf("expected ErrNoFrame, got %v", err)
	}
}
