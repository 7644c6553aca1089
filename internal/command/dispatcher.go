package command

import (
	"sync"

	"github.com/ayusman/mudra/internal/action"
)

// Source identifies where a command originated.
type Source string

const (
	SourceGesture Source = "gesture"
	SourceVoice   Source = "voice"
)

// Speaker voices feedback for dispatched commands.
type Speaker interface {
	Speak(phrase string)
	Busy() bool
}

// Suppressible is a command source that can be muted, used to keep the
// voice listener from hearing our own speech output.
type Suppressible interface {
	SetSuppress(bool)
}

// Dispatcher is the single serialization point for commands from the
// gesture loop and the voice goroutine. It filters sentinels, rewrites
// NO_ACTION into a stop when the robot is still moving, announces command
// changes through the Speaker, and tracks the command the robot should
// currently be executing.
type Dispatcher struct {
	mu            sync.Mutex
	last          string
	lastAnnounced string
	suppressing   bool

	phrases map[string]string
	speaker Speaker
	voice   Suppressible
}

// NewDispatcher creates a dispatcher starting from the STOP state. Both
// speaker and voice may be nil; phrases maps command strings to spoken
// feedback and may be empty.
func NewDispatcher(phrases map[string]string, speaker Speaker, voice Suppressible) *Dispatcher {
	if phrases == nil {
		phrases = map[string]string{}
	}
	return &Dispatcher{
		last:    action.Stop,
		phrases: phrases,
		speaker: speaker,
		voice:   voice,
	}
}

// Handle processes one incoming command. Repeats from the gesture source
// are ignored; voice commands always re-dispatch so the robot reacts even
// when the spoken command matches the current state.
func (d *Dispatcher) Handle(cmd string, source Source) {
	if cmd == "" || cmd == action.UnknownCommand {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if cmd == d.last && source != SourceVoice {
		return
	}
	if cmd == action.NoAction {
		if d.last == action.Stop {
			return
		}
		cmd = action.Stop
	}

	if d.speaker != nil && (cmd != d.lastAnnounced || source == SourceVoice) {
		if phrase, ok := d.phrases[cmd]; ok {
			if d.voice != nil {
				d.voice.SetSuppress(true)
				d.suppressing = true
			}
			d.speaker.Speak(phrase)
		}
		d.lastAnnounced = cmd
	}
	d.last = cmd
}

// Last returns the command the robot should currently be executing.
func (d *Dispatcher) Last() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last
}

// MaintainSuppression lifts the voice-listener mute once speech output has
// drained. Call it once per control-loop tick.
func (d *Dispatcher) MaintainSuppression() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.suppressing || d.speaker == nil || d.voice == nil {
		return
	}
	if !d.speaker.Busy() {
		d.voice.SetSuppress(false)
		d.suppressing = false
	}
}
