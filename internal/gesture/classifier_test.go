package gesture

import (
	"testing"

	"github.com/ayusman/mudra/internal/detector"
)

func TestClassifyNoHand(t *testing.T) {
	c := NewClassifier()
	if got := c.Classify(nil); got != NoHand {
		t.Errorf("expected NO_HAND for nil hand, got %s", got)
	}
}

func TestClassifyPoses(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name string
		hand detector.Hand
		want Symbol
	}{
		{"open palm right", detector.OpenPalmHand(), OpenPalm},
		{"open palm left", detector.OpenPalmHand().Mirror(), OpenPalm},
		{"thumbs up right", detector.ThumbsUpHand(), ThumbUpRight},
		{"thumbs up left", detector.ThumbsUpHand().Mirror(), ThumbUpLeft},
		{"point up right", detector.PointUpHand(), PointUp},
		{"point up left", detector.PointUpHand().Mirror(), PointUp},
		{"peace right", detector.PeaceHand(), Peace},
		{"peace left", detector.PeaceHand().Mirror(), Peace},
		{"three fingers", detector.ThreeUpHand(), Unknown},
		{"bunched palm", detector.BunchedPalmHand(), Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(&tt.hand); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestClassifyIdempotent(t *testing.T) {
	c := NewClassifier()
	hand := detector.PeaceHand()

	first := c.Classify(&hand)
	for i := 0; i < 5; i++ {
		if got := c.Classify(&hand); got != first {
			t.Fatalf("classification changed between calls: %s then %s", first, got)
		}
	}
}

// scaleAbout scales every landmark about the wrist, simulating the same pose
// closer to or farther from the camera.
func scaleAbout(h detector.Hand, k float64) detector.Hand {
	w := h.Points[detector.Wrist]
	for i := range h.Points {
		h.Points[i].X = w.X + k*(h.Points[i].X-w.X)
		h.Points[i].Y = w.Y + k*(h.Points[i].Y-w.Y)
		h.Points[i].Z = w.Z + k*(h.Points[i].Z-w.Z)
	}
	return h
}

func TestClassifyScaleInvariant(t *testing.T) {
	c := NewClassifier()

	poses := []struct {
		name string
		hand detector.Hand
		want Symbol
	}{
		{"open palm", detector.OpenPalmHand(), OpenPalm},
		{"thumbs up", detector.ThumbsUpHand(), ThumbUpRight},
		{"point up", detector.PointUpHand(), PointUp},
		{"peace", detector.PeaceHand(), Peace},
	}

	for _, k := range []float64{0.5, 2.0} {
		for _, p := range poses {
			scaled := scaleAbout(p.hand, k)
			if got := c.Classify(&scaled); got != p.want {
				t.Errorf("%s at scale %.1f: expected %s, got %s", p.name, k, p.want, got)
			}
		}
	}
}

func TestClassifyThumbsUpUnknownHandedness(t *testing.T) {
	c := NewClassifier()
	hand := detector.ThumbsUpHand()
	hand.Handedness = detector.UnknownHand

	if got := c.Classify(&hand); got != ThumbUp {
		t.Errorf("expected plain THUMB_UP for unknown handedness, got %s", got)
	}
}

func TestClassifyFourFingerPalmNeedsSpread(t *testing.T) {
	c := NewClassifier()

	// Tucking the thumb leaves four spread fingers, still an open palm.
	hand := detector.OpenPalmHand()
	hand.Points[detector.ThumbTip] = detector.Point3D{X: 0.45, Y: 0.68}
	hand.Points[detector.ThumbIP] = detector.Point3D{X: 0.43, Y: 0.69}
	if got := c.Classify(&hand); got != OpenPalm {
		t.Errorf("expected OPEN_PALM for four spread fingers, got %s", got)
	}

	// The same finger count with fingertips pressed together is rejected.
	bunched := detector.BunchedPalmHand()
	if got := c.Classify(&bunched); got != Unknown {
		t.Errorf("expected UNKNOWN_GESTURE for bunched fingers, got %s", got)
	}
}

func TestSymbolHelpers(t *testing.T) {
	if !ThumbUpLeft.IsThumbUp() || !ThumbUpRight.IsThumbUp() || !ThumbUp.IsThumbUp() {
		t.Error("thumbs-up variants should report IsThumbUp")
	}
	if OpenPalm.IsThumbUp() {
		t.Error("OPEN_PALM is not a thumbs-up")
	}
	if NoHand.Recognized() || Unknown.Recognized() {
		t.Error("sentinels should not count as recognized")
	}
	if !Peace.Recognized() {
		t.Error("PEACE should count as recognized")
	}
}
