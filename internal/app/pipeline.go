package app

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/action"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/command"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/overlay"
	"github.com/ayusman/mudra/internal/server"
)

// motionGate decides between full-rate and throttled polling. The loop
// drops to idle only after idleAfter without movement AND with no hand
// confirmed, so a steadily held gesture keeps driving the robot.
type motionGate struct {
	active     bool
	lastMotion time.Time
}

func newMotionGate(now time.Time) motionGate {
	return motionGate{active: true, lastMotion: now}
}

// observe folds one frame's motion result into the gate and reports the
// current mode plus whether it just flipped.
func (g *motionGate) observe(moved, handHeld bool, now time.Time) (active, changed bool) {
	if moved || handHeld {
		g.lastMotion = now
		if !g.active {
			g.active = true
			return true, true
		}
		return true, false
	}
	if g.active && now.Sub(g.lastMotion) > idleAfter {
		g.active = false
		return false, true
	}
	return g.active, false
}

func (a *App) run() {
	defer a.wg.Done()

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()
	gate := newMotionGate(time.Now())

	for {
		select {
		case <-a.done:
			return
		case <-ticker.C:
		}

		frame, err := a.camera.Read()
		if err != nil {
			if !errors.Is(err, capture.ErrNoFrame) {
				log.Printf("app: camera: %v", err)
			}
			continue
		}

		var hand *detector.Hand
		if a.Enabled() {
			moved, _ := a.motion.Detect(frame)
			active, flipped := gate.observe(moved, a.stabConfirmed() != gesture.NoHand, time.Now())
			if flipped {
				if active {
					ticker.Reset(a.interval)
					log.Println("app: motion, detecting at full rate")
				} else {
					ticker.Reset(idleInterval)
					log.Println("app: no motion, throttling detection")
				}
			}

			if active {
				hands, err := a.det.Detect(frame)
				if err != nil {
					log.Printf("app: detect: %v", err)
				} else if len(hands) > 0 {
					hand = &hands[0]
				}
			}
		}

		a.processFrame(hand)
		a.dispatcher.MaintainSuppression()

		// Continuous re-send; the sender's throttle keeps it sane.
		if a.sink != nil {
			if err := a.sink.Send(a.dispatcher.Last()); err != nil {
				log.Printf("app: send: %v", err)
			}
		}

		a.updatePreview(frame)
	}
}

// processFrame folds one detection result into the pipeline: classify,
// stabilize, and on a fresh confirmation map and dispatch. The stabilizer
// is touched only here.
func (a *App) processFrame(hand *detector.Hand) {
	raw := a.classifier.Classify(hand)

	a.mu.Lock()
	a.lastRaw = raw
	confirmed, changed := a.stab.Observe(raw)
	a.lastConfirmed = confirmed
	mapper := a.mapper
	a.mu.Unlock()

	if !changed {
		return
	}

	cmd := mapper.Command(confirmed.String())
	log.Printf("app: confirmed %s -> %s", confirmed, cmd)
	if a.notify != nil {
		a.notify(server.Event{Type: "confirmed", Gesture: confirmed.String(), Command: cmd})
	}

	a.handleCommand(cmd, command.SourceGesture)
}

// handleCommand routes a command through the dispatcher and records the
// outcome when it changed the robot's state.
func (a *App) handleCommand(cmd string, source command.Source) {
	before := a.dispatcher.Last()
	a.dispatcher.Handle(cmd, source)
	after := a.dispatcher.Last()

	if after != before || source == command.SourceVoice {
		a.recordDispatch(after, source)
	}
}

func (a *App) updatePreview(frame *gocv.Mat) {
	a.mu.Lock()
	caption := fmt.Sprintf("Gesture: %s | Cmd: %s", a.lastRaw, a.dispatcher.Last())
	cmd := a.dispatcher.Last()
	enabled := a.enabled
	a.mu.Unlock()

	if !enabled {
		caption = "Detection paused"
		cmd = action.Stop
	}

	a.frameMu.Lock()
	defer a.frameMu.Unlock()

	frame.CopyTo(&a.preview)
	if err := overlay.Annotate(&a.preview, cmd, caption); err != nil {
		log.Printf("app: overlay: %v", err)
	}
	a.fresh = true
}

func (a *App) stabReset() {
	a.mu.Lock()
	a.stab.Reset()
	a.lastRaw = gesture.NoHand
	a.lastConfirmed = gesture.NoHand
	a.mu.Unlock()
}

func (a *App) stabConfirmed() gesture.Symbol {
	return a.lastConfirmed
}
