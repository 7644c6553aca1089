package detector

import (
	"errors"
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	a := Point3D{X: 0, Y: 0, Z: 0}
	b := Point3D{X: 3, Y: 4, Z: 0}
	if d := Distance(a, b); math.Abs(d-5) > 1e-9 {
		t.Errorf("expected distance 5, got %f", d)
	}

	c := Point3D{X: 1, Y: 2, Z: 2}
	if d := Distance(a, c); math.Abs(d-3) > 1e-9 {
		t.Errorf("expected distance 3, got %f", d)
	}
}

func TestHandMirror(t *testing.T) {
	h := OpenPalmHand()
	m := h.Mirror()

	if m.Handedness != LeftHand {
		t.Errorf("expected mirrored hand to be Left, got %s", m.Handedness)
	}
	for i := 0; i < NumLandmarks; i++ {
		want := 1.0 - h.Points[i].X
		if math.Abs(m.Points[i].X-want) > 1e-9 {
			t.Errorf("landmark %d: expected x %f, got %f", i, want, m.Points[i].X)
		}
		if m.Points[i].Y != h.Points[i].Y || m.Points[i].Z != h.Points[i].Z {
			t.Errorf("landmark %d: y/z changed by mirror", i)
		}
	}

	back := m.Mirror()
	if back.Handedness != RightHand {
		t.Errorf("expected double mirror to restore handedness, got %s", back.Handedness)
	}
	for i := 0; i < NumLandmarks; i++ {
		if math.Abs(back.Points[i].X-h.Points[i].X) > 1e-9 {
			t.Errorf("landmark %d: double mirror did not restore x", i)
		}
	}
}

func TestHandMirrorUnknownHandedness(t *testing.T) {
	h := OpenPalmHand()
	h.Handedness = UnknownHand
	if got := h.Mirror().Handedness; got != UnknownHand {
		t.Errorf("expected Unknown handedness to survive mirror, got %s", got)
	}
}

func TestJSONHandConversion(t *testing.T) {
	jh := jsonHand{
		Points:     make([]Point3D, NumLandmarks),
		Handedness: "Left",
		Score:      0.87,
	}
	jh.Points[IndexTip] = Point3D{X: 0.25, Y: 0.5, Z: -0.01}

	hand := jh.toHand()
	if hand.Handedness != LeftHand {
		t.Errorf("expected Left, got %s", hand.Handedness)
	}
	if hand.Score != 0.87 {
		t.Errorf("expected score 0.87, got %f", hand.Score)
	}
	if hand.Points[IndexTip].X != 0.25 {
		t.Errorf("expected index tip x 0.25, got %f", hand.Points[IndexTip].X)
	}

	jh.Handedness = "neither"
	if got := jh.toHand().Handedness; got != UnknownHand {
		t.Errorf("expected Unknown for unrecognized label, got %s", got)
	}
}

func TestJSONHandConversionShortPoints(t *testing.T) {
	jh := jsonHand{
		Points:     make([]Point3D, 5),
		Handedness: "Right",
	}
	jh.Points[ThumbTip] = Point3D{X: 0.3, Y: 0.6}

	hand := jh.toHand()
	if hand.Points[ThumbTip].X != 0.3 {
		t.Errorf("expected provided points to be copied")
	}
	if hand.Points[IndexTip] != (Point3D{}) {
		t.Errorf("expected missing points to be zero")
	}
}

func TestMockDetector(t *testing.T) {
	mock := NewMockDetector()

	hands, err := mock.Detect(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hands) != 0 {
		t.Errorf("expected no hands, got %d", len(hands))
	}

	mock.SetHands([]Hand{ThumbsUpHand()})
	hands, err = mock.Detect(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hands) != 1 || hands[0].Handedness != RightHand {
		t.Errorf("expected one right hand")
	}

	wantErr := errors.New("camera offline")
	mock.SetError(wantErr)
	if _, err := mock.Detect(nil); !errors.Is(err, wantErr) {
		t.Errorf("expected configured error, got %v", err)
	}
}
