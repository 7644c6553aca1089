// Package detector provides hand landmark acquisition for gesture control.
package detector

import "math"

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

// Point3D is a single landmark in normalized image coordinates: x and y in
// [0,1] relative to frame width/height, z a relative depth.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Handedness labels which hand a detection belongs to, as reported by the
// landmark model for the mirrored camera view.
type Handedness string

const (
	LeftHand    Handedness = "Left"
	RightHand   Handedness = "Right"
	UnknownHand Handedness = "Unknown"
)

// Hand is one detected hand: 21 landmarks plus handedness and a detection
// confidence score. The landmark array is always fully populated; a frame
// with no hand produces no Hand at all, never a partial one.
type Hand struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness Handedness            `json:"handedness"`
	Score      float64               `json:"score"`
}

// Distance returns the Euclidean distance between two landmarks in 3D.
func Distance(a, b Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Mirror returns a copy of the hand reflected about the vertical axis of the
// image (x -> 1-x) with the handedness label flipped. Useful for deriving
// left-hand poses from right-hand ones.
func (h Hand) Mirror() Hand {
	m := h
	for i := range m.Points {
		m.Points[i].X = 1 - m.Points[i].X
	}
	switch h.Handedness {
	case LeftHand:
		m.Handedness = RightHand
	case RightHand:
		m.Handedness = LeftHand
	}
	return m
}
