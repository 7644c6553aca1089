// Package app owns the control loop: frames in, commands out. It wires the
// camera, detector, classifier, stabilizer, mapper, and dispatcher, and
// exposes live state to the HTTP server and the tray.
package app

import (
	"context"
	"log"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/action"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/command"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
)

// CommandSink receives the command the robot should currently execute,
// once per frame. The UDP sender's throttle decides what actually goes on
// the wire.
type CommandSink interface {
	Send(cmd string) error
}

// Options collects the app's collaborators. Camera and Detector may be nil
// when the pipeline is driven externally (tests); Store and Notify are
// optional.
type Options struct {
	Camera        capture.Camera
	Detector      detector.Detector
	Mapper        *action.Mapper
	Dispatcher    *command.Dispatcher
	Sink          CommandSink
	Store         *store.Store
	Notify        func(server.Event)
	ConfirmFrames int
	FrameInterval time.Duration
	MotionThresh  float64
}

// Idle throttling: with no movement in front of the camera and no hand
// confirmed, the loop polls slowly instead of feeding every frame to the
// detector subprocess.
const (
	idleInterval = 200 * time.Millisecond
	idleAfter    = 2 * time.Second
)

// App runs the per-frame pipeline on its own goroutine.
type App struct {
	camera     capture.Camera
	det        detector.Detector
	motion     *capture.MotionDetector
	classifier *gesture.Classifier
	stab       *gesture.Stabilizer
	dispatcher *command.Dispatcher
	sink       CommandSink
	st         *store.Store
	notify     func(server.Event)
	interval   time.Duration

	mu            sync.Mutex
	mapper        *action.Mapper
	enabled       bool
	voiceActive   bool
	lastRaw       gesture.Symbol
	lastConfirmed gesture.Symbol

	frameMu sync.Mutex
	preview gocv.Mat
	fresh   bool

	done    chan struct{}
	wg      sync.WaitGroup
	started bool
}

// New assembles the app. Detection starts enabled.
func New(opts Options) *App {
	interval := opts.FrameInterval
	if interval <= 0 {
		interval = 33 * time.Millisecond
	}
	return &App{
		camera:        opts.Camera,
		det:           opts.Detector,
		motion:        capture.NewMotionDetector(opts.MotionThresh),
		classifier:    gesture.NewClassifier(),
		stab:          gesture.NewStabilizer(opts.ConfirmFrames),
		dispatcher:    opts.Dispatcher,
		sink:          opts.Sink,
		st:            opts.Store,
		notify:        opts.Notify,
		interval:      interval,
		mapper:        opts.Mapper,
		enabled:       true,
		lastRaw:       gesture.NoHand,
		lastConfirmed: gesture.NoHand,
		preview:       gocv.NewMat(),
		done:          make(chan struct{}),
	}
}

// Start launches the control loop.
func (a *App) Start() {
	if a.started {
		return
	}
	a.started = true
	a.wg.Add(1)
	go a.run()
}

// Stop ends the loop and releases the preview frame.
func (a *App) Stop() {
	if !a.started {
		return
	}
	close(a.done)
	a.wg.Wait()

	a.motion.Close()
	a.frameMu.Lock()
	a.preview.Close()
	a.frameMu.Unlock()
}

// SetEnabled toggles gesture detection. Disabling brings the robot to a
// stop rather than leaving it running on a stale command.
func (a *App) SetEnabled(on bool) {
	a.mu.Lock()
	was := a.enabled
	a.enabled = on
	a.mu.Unlock()

	if was && !on {
		a.stabReset()
		a.handleCommand(action.NoAction, command.SourceGesture)
	}
	if !was && on {
		// The scene may have changed while paused; start from a fresh
		// motion baseline.
		a.motion.Reset()
	}
	log.Printf("app: detection enabled=%v", on)
}

// Enabled reports whether gesture detection is active.
func (a *App) Enabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.enabled
}

// SetVoiceActive records whether the voice feed is running, for display.
func (a *App) SetVoiceActive(on bool) {
	a.mu.Lock()
	a.voiceActive = on
	a.mu.Unlock()
}

// SetMapper swaps the gesture bindings, e.g. after an edit via the API.
func (a *App) SetMapper(m *action.Mapper) {
	a.mu.Lock()
	a.mapper = m
	a.mu.Unlock()
}

// HandleVoice is the voice processor's callback.
func (a *App) HandleVoice(cmd string) {
	a.handleCommand(cmd, command.SourceVoice)
}

// Snapshot implements server.StateSource.
func (a *App) Snapshot() server.State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return server.State{
		Gesture:     a.lastRaw.String(),
		Confirmed:   a.stabConfirmed().String(),
		Command:     a.dispatcher.Last(),
		Enabled:     a.enabled,
		VoiceActive: a.voiceActive,
	}
}

// Frame implements server.FrameSource: the newest annotated preview, or
// nil when nothing new arrived since the last call.
func (a *App) Frame() *gocv.Mat {
	a.frameMu.Lock()
	defer a.frameMu.Unlock()
	if !a.fresh || a.preview.Empty() {
		return nil
	}
	a.fresh = false
	clone := a.preview.Clone()
	return &clone
}

func (a *App) recordDispatch(cmd string, source command.Source) {
	if a.st != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		if err := a.st.RecordDispatch(ctx, cmd, string(source)); err != nil {
			log.Printf("app: record dispatch: %v", err)
		}
		cancel()
	}
	if a.notify != nil {
		a.notify(server.Event{Type: "dispatched", Command: cmd, Source: string(source)})
	}
}
