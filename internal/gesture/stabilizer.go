package gesture

// DefaultConfirmFrames is how many identical consecutive classifications it
// takes before a symbol is treated as deliberate rather than flicker.
const DefaultConfirmFrames = 3

// Stability is the cross-frame smoothing state: the symbol currently being
// counted, its run length, and the last symbol confirmed downstream.
type Stability struct {
	Potential Symbol
	Run       int
	Confirmed Symbol
}

// NewStability returns the initial state, everything NO_HAND.
func NewStability() Stability {
	return Stability{Potential: NoHand, Confirmed: NoHand}
}

// Step is the pure transition function. It folds one raw classification
// into the state and reports whether this frame confirmed a new symbol. A
// confirmation fires exactly once per change: repeats of an already
// confirmed symbol stay silent.
func Step(s Stability, raw Symbol, confirmFrames int) (Stability, bool) {
	if confirmFrames < 1 {
		confirmFrames = DefaultConfirmFrames
	}

	if raw == s.Potential {
		if s.Run < confirmFrames {
			s.Run++
		}
	} else {
		s.Potential = raw
		s.Run = 1
	}

	if s.Run >= confirmFrames && s.Potential != s.Confirmed {
		s.Confirmed = s.Potential
		return s, true
	}
	return s, false
}

// Stabilizer is the stateful wrapper the control loop owns. It is not safe
// for concurrent use; the pipeline goroutine is its only caller.
type Stabilizer struct {
	need  int
	state Stability
}

// NewStabilizer creates a stabilizer requiring frames consecutive
// observations. Values below 1 fall back to DefaultConfirmFrames.
func NewStabilizer(frames int) *Stabilizer {
	if frames < 1 {
		frames = DefaultConfirmFrames
	}
	return &Stabilizer{need: frames, state: NewStability()}
}

// Observe feeds one raw classification. It returns the currently confirmed
// symbol and whether this observation changed it.
func (s *Stabilizer) Observe(raw Symbol) (Symbol, bool) {
	next, confirmed := Step(s.state, raw, s.need)
	s.state = next
	return s.state.Confirmed, confirmed
}

// Confirmed returns the current stable symbol.
func (s *Stabilizer) Confirmed() Symbol {
	return s.state.Confirmed
}

// Reset clears all state back to NO_HAND, as after a capture restart.
func (s *Stabilizer) Reset() {
	s.state = NewStability()
}
