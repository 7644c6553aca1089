package voice

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// DefaultCommandThrottle limits how often the same spoken command can fire.
const DefaultCommandThrottle = 750 * time.Millisecond

// Processor consumes a Transcriber in the background and forwards parsed
// commands to a handler. It can be suppressed while speech feedback plays,
// so the robot does not obey its own voice.
type Processor struct {
	tr      Transcriber
	handler func(command string)

	mu          sync.Mutex
	suppress    bool
	lastCmd     string
	lastTrigger time.Time

	throttle time.Duration
	now      func() time.Time
	done     chan struct{}
	wg       sync.WaitGroup
}

// NewProcessor wires a transcriber to a command handler. The handler is
// invoked from the processor's goroutine.
func NewProcessor(tr Transcriber, handler func(command string)) *Processor {
	return &Processor{
		tr:       tr,
		handler:  handler,
		throttle: DefaultCommandThrottle,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Start begins listening. It returns an error if the transcriber fails to
// come up; after that, transcription errors end the loop silently.
func (p *Processor) Start() error {
	transcripts, err := p.tr.Start()
	if err != nil {
		return fmt.Errorf("start transcriber: %w", err)
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		for {
			select {
			case <-p.done:
				return
			case text, ok := <-transcripts:
				if !ok {
					return
				}
				p.consider(text)
			}
		}
	}()

	log.Print("voice: listening")
	return nil
}

// consider parses one transcript fragment and fires the handler when a
// command is found, unless suppressed or throttled. A repeated command
// needs the throttle window to pass; a different command fires at once.
func (p *Processor) consider(text string) {
	cmd := ParseCommand(text)
	if cmd == "" {
		return
	}

	p.mu.Lock()
	if p.suppress {
		p.mu.Unlock()
		return
	}
	now := p.now()
	if cmd == p.lastCmd && now.Sub(p.lastTrigger) <= p.throttle {
		p.mu.Unlock()
		return
	}
	p.lastCmd = cmd
	p.lastTrigger = now
	p.mu.Unlock()

	log.Printf("voice: matched %q from %q", cmd, text)
	p.handler(cmd)
}

// SetSuppress mutes or unmutes command recognition.
func (p *Processor) SetSuppress(on bool) {
	p.mu.Lock()
	p.suppress = on
	p.mu.Unlock()
}

// Stop ends the listen loop and closes the transcriber.
func (p *Processor) Stop() {
	select {
	case <-p.done:
	default:
		close(p.done)
	}
	p.tr.Close()
	p.wg.Wait()
}
