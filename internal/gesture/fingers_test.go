package gesture

import (
	"math"
	"testing"

	"github.com/ayusman/mudra/internal/detector"
)

func TestScaleRef(t *testing.T) {
	th := DefaultThresholds()

	hand := detector.OpenPalmHand()
	ref := scaleRef(&hand, th)
	if math.Abs(ref-0.15) > 1e-9 {
		t.Errorf("expected scale ref 0.15, got %f", ref)
	}

	// A collapsed hand falls back to the calibration size.
	var degenerate detector.Hand
	if ref := scaleRef(&degenerate, th); ref != th.ScaleNorm {
		t.Errorf("expected fallback %f for degenerate hand, got %f", th.ScaleNorm, ref)
	}
}

func TestFingersUp(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		name string
		hand detector.Hand
		want [5]bool
	}{
		{"open palm", detector.OpenPalmHand(), [5]bool{true, true, true, true, true}},
		{"thumbs up", detector.ThumbsUpHand(), [5]bool{true, false, false, false, false}},
		{"point up", detector.PointUpHand(), [5]bool{false, true, false, false, false}},
		{"peace", detector.PeaceHand(), [5]bool{false, true, true, false, false}},
		{"three fingers", detector.ThreeUpHand(), [5]bool{false, true, true, true, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := scaleRef(&tt.hand, th)
			got := fingersUp(&tt.hand, tt.hand.Handedness, ref, th)
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFingersUpUnknownHandednessThumb(t *testing.T) {
	th := DefaultThresholds()
	hand := detector.ThumbsUpHand()

	ref := scaleRef(&hand, th)
	up := fingersUp(&hand, detector.UnknownHand, ref, th)
	if up[thumb] {
		t.Error("thumb should not count as up without a handedness to orient the x check")
	}
}

func TestCountUp(t *testing.T) {
	if n := countUp([5]bool{}); n != 0 {
		t.Errorf("expected 0, got %d", n)
	}
	if n := countUp([5]bool{true, false, true, false, true}); n != 3 {
		t.Errorf("expected 3, got %d", n)
	}
	if n := countUp([5]bool{true, true, true, true, true}); n != 5 {
		t.Errorf("expected 5, got %d", n)
	}
}
