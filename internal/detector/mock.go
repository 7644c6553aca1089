package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []Hand
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []Hand) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]Hand, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Preset hand poses for tests. All poses are right hands as seen in the
// mirrored camera view (thumb toward the left edge of the image), with the
// wrist at (0.5, 0.8) and the middle MCP at (0.5, 0.65), so the wrist to
// middle-MCP distance is exactly the 0.15 scale reference.

// OpenPalmHand returns a right hand with all five fingers extended and
// clearly separated fingertips.
func OpenPalmHand() Hand {
	h := Hand{Handedness: RightHand, Score: 0.95}

	h.Points[Wrist] = Point3D{X: 0.50, Y: 0.80}

	// Thumb extended up and outward (left of its MCP for a right hand)
	h.Points[ThumbCMC] = Point3D{X: 0.45, Y: 0.75}
	h.Points[ThumbMCP] = Point3D{X: 0.40, Y: 0.70}
	h.Points[ThumbIP] = Point3D{X: 0.36, Y: 0.66}
	h.Points[ThumbTip] = Point3D{X: 0.32, Y: 0.62}

	h.Points[IndexMCP] = Point3D{X: 0.44, Y: 0.65}
	h.Points[IndexPIP] = Point3D{X: 0.42, Y: 0.55}
	h.Points[IndexDIP] = Point3D{X: 0.41, Y: 0.47}
	h.Points[IndexTip] = Point3D{X: 0.40, Y: 0.40}

	h.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.65}
	h.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.54}
	h.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.45}
	h.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.37}

	h.Points[RingMCP] = Point3D{X: 0.56, Y: 0.66}
	h.Points[RingPIP] = Point3D{X: 0.57, Y: 0.56}
	h.Points[RingDIP] = Point3D{X: 0.58, Y: 0.48}
	h.Points[RingTip] = Point3D{X: 0.59, Y: 0.41}

	h.Points[PinkyMCP] = Point3D{X: 0.62, Y: 0.68}
	h.Points[PinkyPIP] = Point3D{X: 0.64, Y: 0.60}
	h.Points[PinkyDIP] = Point3D{X: 0.65, Y: 0.54}
	h.Points[PinkyTip] = Point3D{X: 0.66, Y: 0.48}

	return h
}

// ThumbsUpHand returns a right hand with the thumb extended upward and the
// other four fingers curled into the palm.
func ThumbsUpHand() Hand {
	h := Hand{Handedness: RightHand, Score: 0.95}

	h.Points[Wrist] = Point3D{X: 0.50, Y: 0.80}

	h.Points[ThumbCMC] = Point3D{X: 0.47, Y: 0.73}
	h.Points[ThumbMCP] = Point3D{X: 0.42, Y: 0.68}
	h.Points[ThumbIP] = Point3D{X: 0.40, Y: 0.61}
	h.Points[ThumbTip] = Point3D{X: 0.38, Y: 0.55}

	// Curled fingers: tip below PIP and at or below MCP
	h.Points[IndexMCP] = Point3D{X: 0.46, Y: 0.65}
	h.Points[IndexPIP] = Point3D{X: 0.45, Y: 0.60}
	h.Points[IndexDIP] = Point3D{X: 0.455, Y: 0.63}
	h.Points[IndexTip] = Point3D{X: 0.46, Y: 0.66}

	h.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.65}
	h.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.59}
	h.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.62}
	h.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.66}

	h.Points[RingMCP] = Point3D{X: 0.54, Y: 0.66}
	h.Points[RingPIP] = Point3D{X: 0.55, Y: 0.60}
	h.Points[RingDIP] = Point3D{X: 0.545, Y: 0.63}
	h.Points[RingTip] = Point3D{X: 0.54, Y: 0.67}

	h.Points[PinkyMCP] = Point3D{X: 0.58, Y: 0.68}
	h.Points[PinkyPIP] = Point3D{X: 0.59, Y: 0.63}
	h.Points[PinkyDIP] = Point3D{X: 0.585, Y: 0.66}
	h.Points[PinkyTip] = Point3D{X: 0.58, Y: 0.69}

	return h
}

// PointUpHand returns a right hand with only the index finger extended.
// The thumb is partially raised but folded inward, so it does not count.
func PointUpHand() Hand {
	h := Hand{Handedness: RightHand, Score: 0.95}

	h.Points[Wrist] = Point3D{X: 0.50, Y: 0.80}

	h.Points[ThumbCMC] = Point3D{X: 0.47, Y: 0.73}
	h.Points[ThumbMCP] = Point3D{X: 0.44, Y: 0.68}
	h.Points[ThumbIP] = Point3D{X: 0.445, Y: 0.66}
	h.Points[ThumbTip] = Point3D{X: 0.45, Y: 0.64}

	h.Points[IndexMCP] = Point3D{X: 0.46, Y: 0.65}
	h.Points[IndexPIP] = Point3D{X: 0.45, Y: 0.55}
	h.Points[IndexDIP] = Point3D{X: 0.45, Y: 0.47}
	h.Points[IndexTip] = Point3D{X: 0.44, Y: 0.38}

	h.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.65}
	h.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.58}
	h.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.63}
	h.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.68}

	h.Points[RingMCP] = Point3D{X: 0.55, Y: 0.66}
	h.Points[RingPIP] = Point3D{X: 0.56, Y: 0.60}
	h.Points[RingDIP] = Point3D{X: 0.555, Y: 0.64}
	h.Points[RingTip] = Point3D{X: 0.55, Y: 0.69}

	h.Points[PinkyMCP] = Point3D{X: 0.60, Y: 0.68}
	h.Points[PinkyPIP] = Point3D{X: 0.61, Y: 0.63}
	h.Points[PinkyDIP] = Point3D{X: 0.605, Y: 0.67}
	h.Points[PinkyTip] = Point3D{X: 0.60, Y: 0.71}

	return h
}

// PeaceHand returns a right hand with index and middle fingers extended and
// ring and pinky curled.
func PeaceHand() Hand {
	h := Hand{Handedness: RightHand, Score: 0.95}

	h.Points[Wrist] = Point3D{X: 0.50, Y: 0.80}

	h.Points[ThumbCMC] = Point3D{X: 0.47, Y: 0.73}
	h.Points[ThumbMCP] = Point3D{X: 0.44, Y: 0.68}
	h.Points[ThumbIP] = Point3D{X: 0.45, Y: 0.67}
	h.Points[ThumbTip] = Point3D{X: 0.46, Y: 0.66}

	h.Points[IndexMCP] = Point3D{X: 0.45, Y: 0.65}
	h.Points[IndexPIP] = Point3D{X: 0.44, Y: 0.54}
	h.Points[IndexDIP] = Point3D{X: 0.43, Y: 0.46}
	h.Points[IndexTip] = Point3D{X: 0.42, Y: 0.38}

	h.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.65}
	h.Points[MiddlePIP] = Point3D{X: 0.51, Y: 0.53}
	h.Points[MiddleDIP] = Point3D{X: 0.515, Y: 0.44}
	h.Points[MiddleTip] = Point3D{X: 0.52, Y: 0.36}

	h.Points[RingMCP] = Point3D{X: 0.55, Y: 0.66}
	h.Points[RingPIP] = Point3D{X: 0.56, Y: 0.60}
	h.Points[RingDIP] = Point3D{X: 0.555, Y: 0.64}
	h.Points[RingTip] = Point3D{X: 0.55, Y: 0.69}

	h.Points[PinkyMCP] = Point3D{X: 0.60, Y: 0.68}
	h.Points[PinkyPIP] = Point3D{X: 0.61, Y: 0.63}
	h.Points[PinkyDIP] = Point3D{X: 0.605, Y: 0.67}
	h.Points[PinkyTip] = Point3D{X: 0.60, Y: 0.71}

	return h
}

// ThreeUpHand returns a right hand with index, middle and ring extended and
// thumb and pinky down. No named gesture matches this pose.
func ThreeUpHand() Hand {
	h := PeaceHand()

	// Extend the ring finger too
	h.Points[RingMCP] = Point3D{X: 0.55, Y: 0.66}
	h.Points[RingPIP] = Point3D{X: 0.56, Y: 0.56}
	h.Points[RingDIP] = Point3D{X: 0.57, Y: 0.48}
	h.Points[RingTip] = Point3D{X: 0.58, Y: 0.41}

	return h
}

// BunchedPalmHand returns a right hand with four fingers raised but the
// fingertips pressed together, so the open-palm spread check fails.
func BunchedPalmHand() Hand {
	h := Hand{Handedness: RightHand, Score: 0.95}

	h.Points[Wrist] = Point3D{X: 0.50, Y: 0.80}

	h.Points[ThumbCMC] = Point3D{X: 0.47, Y: 0.73}
	h.Points[ThumbMCP] = Point3D{X: 0.44, Y: 0.68}
	h.Points[ThumbIP] = Point3D{X: 0.45, Y: 0.67}
	h.Points[ThumbTip] = Point3D{X: 0.46, Y: 0.66}

	h.Points[IndexMCP] = Point3D{X: 0.46, Y: 0.65}
	h.Points[IndexPIP] = Point3D{X: 0.47, Y: 0.55}
	h.Points[IndexDIP] = Point3D{X: 0.48, Y: 0.47}
	h.Points[IndexTip] = Point3D{X: 0.49, Y: 0.40}

	h.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.65}
	h.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.54}
	h.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.45}
	h.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.37}

	h.Points[RingMCP] = Point3D{X: 0.54, Y: 0.66}
	h.Points[RingPIP] = Point3D{X: 0.53, Y: 0.56}
	h.Points[RingDIP] = Point3D{X: 0.52, Y: 0.48}
	h.Points[RingTip] = Point3D{X: 0.51, Y: 0.41}

	h.Points[PinkyMCP] = Point3D{X: 0.58, Y: 0.68}
	h.Points[PinkyPIP] = Point3D{X: 0.57, Y: 0.60}
	h.Points[PinkyDIP] = Point3D{X: 0.565, Y: 0.54}
	h.Points[PinkyTip] = Point3D{X: 0.56, Y: 0.48}

	return h
}
