package gesture

import "testing"

func TestStabilizerConfirmsAfterRun(t *testing.T) {
	s := NewStabilizer(3)

	for i := 0; i < 2; i++ {
		if conf, changed := s.Observe(OpenPalm); changed || conf != NoHand {
			t.Fatalf("frame %d: premature confirmation (conf=%s changed=%v)", i, conf, changed)
		}
	}

	conf, changed := s.Observe(OpenPalm)
	if !changed || conf != OpenPalm {
		t.Fatalf("expected OPEN_PALM confirmed on third frame, got conf=%s changed=%v", conf, changed)
	}

	// Further identical frames keep the symbol without re-announcing it.
	conf, changed = s.Observe(OpenPalm)
	if changed || conf != OpenPalm {
		t.Fatalf("expected silent hold, got conf=%s changed=%v", conf, changed)
	}
}

func TestStabilizerIgnoresFlicker(t *testing.T) {
	s := NewStabilizer(3)

	seq := []Symbol{OpenPalm, OpenPalm, PointUp, OpenPalm, OpenPalm}
	var confirms int
	for _, sym := range seq {
		if _, changed := s.Observe(sym); changed {
			confirms++
		}
	}
	if confirms != 0 {
		t.Errorf("expected no confirmations from a flickering stream, got %d", confirms)
	}
	if s.Confirmed() != NoHand {
		t.Errorf("expected confirmed symbol to stay NO_HAND, got %s", s.Confirmed())
	}
}

func TestStabilizerTransition(t *testing.T) {
	s := NewStabilizer(3)

	seq := []Symbol{PointUp, PointUp, PointUp, Peace, Peace, Peace, Peace}
	var events []Symbol
	for _, sym := range seq {
		if conf, changed := s.Observe(sym); changed {
			events = append(events, conf)
		}
	}

	if len(events) != 2 || events[0] != PointUp || events[1] != Peace {
		t.Fatalf("expected confirmations [POINT_UP PEACE], got %v", events)
	}
	if s.Confirmed() != Peace {
		t.Errorf("expected PEACE confirmed, got %s", s.Confirmed())
	}
}

func TestStabilizerShortRunDoesNotConfirm(t *testing.T) {
	s := NewStabilizer(3)

	seq := []Symbol{OpenPalm, OpenPalm, Peace, Peace, Peace, Peace}
	var events []Symbol
	for _, sym := range seq {
		if conf, changed := s.Observe(sym); changed {
			events = append(events, conf)
		}
	}
	if len(events) != 1 || events[0] != Peace {
		t.Fatalf("expected only PEACE to confirm, got %v", events)
	}
}

func TestStabilizerNoHandStart(t *testing.T) {
	s := NewStabilizer(3)

	// NO_HAND is the initial state, so a stream of it never fires a change.
	for i := 0; i < 5; i++ {
		if _, changed := s.Observe(NoHand); changed {
			t.Fatalf("frame %d: NO_HAND should not confirm as a change", i)
		}
	}
}

func TestStabilizerReset(t *testing.T) {
	s := NewStabilizer(2)

	s.Observe(OpenPalm)
	s.Observe(OpenPalm)
	if s.Confirmed() != OpenPalm {
		t.Fatalf("expected OPEN_PALM confirmed, got %s", s.Confirmed())
	}

	s.Reset()
	if s.Confirmed() != NoHand {
		t.Errorf("expected NO_HAND after reset, got %s", s.Confirmed())
	}

	// A single frame after reset is not enough to reconfirm.
	if _, changed := s.Observe(OpenPalm); changed {
		t.Error("single frame after reset should not confirm")
	}
}

func TestStabilizerDefaultFrames(t *testing.T) {
	s := NewStabilizer(0)
	if s.need != DefaultConfirmFrames {
		t.Errorf("expected default of %d frames, got %d", DefaultConfirmFrames, s.need)
	}
}

func TestStepIsPure(t *testing.T) {
	start := NewStability()

	next, confirmed := Step(start, OpenPalm, 3)
	if confirmed {
		t.Fatal("first frame should not confirm")
	}
	if next.Potential != OpenPalm || next.Run != 1 || next.Confirmed != NoHand {
		t.Errorf("unexpected state %+v", next)
	}

	// The input state is untouched.
	if start.Potential != NoHand || start.Run != 0 {
		t.Errorf("input state mutated: %+v", start)
	}

	// Same input, same output.
	again, _ := Step(start, OpenPalm, 3)
	if again != next {
		t.Errorf("expected deterministic transition, got %+v vs %+v", again, next)
	}
}
