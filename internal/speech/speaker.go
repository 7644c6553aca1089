// Package speech provides spoken feedback through an external synthesis
// command.
package speech

import (
	"log"
	"os/exec"
	"runtime"
	"strconv"
	"sync"
	"time"
)

// DefaultDebounce suppresses re-queuing the same phrase in quick
// succession, which otherwise happens when a command is re-dispatched.
const DefaultDebounce = 1500 * time.Millisecond

// Speaker queues phrases and voices them one at a time through a worker
// goroutine. The synthesis binary is `say` on macOS and `espeak` elsewhere.
type Speaker struct {
	binary string
	voice  string
	rate   int

	mu         sync.Mutex
	lastPhrase string
	lastTime   time.Time
	speaking   bool
	current    *exec.Cmd
	stopped    bool

	queue    chan string
	done     chan struct{}
	wg       sync.WaitGroup
	debounce time.Duration
	now      func() time.Time
}

// NewSpeaker starts the speech worker. voice may be empty for the system
// default; rate is words per minute, 0 for the binary's default.
func NewSpeaker(voice string, rate int) *Speaker {
	binary := "espeak"
	if runtime.GOOS == "darwin" {
		binary = "say"
	}
	return newSpeaker(binary, voice, rate)
}

func newSpeaker(binary, voice string, rate int) *Speaker {
	s := &Speaker{
		binary:   binary,
		voice:    voice,
		rate:     rate,
		queue:    make(chan string, 8),
		done:     make(chan struct{}),
		debounce: DefaultDebounce,
		now:      time.Now,
	}
	s.wg.Add(1)
	go s.run()
	return s
}

func (s *Speaker) run() {
	defer s.wg.Done()
	for {
		select {
		case <-s.done:
			return
		case phrase := <-s.queue:
			s.voicePhrase(phrase)
		}
	}
}

func (s *Speaker) voicePhrase(phrase string) {
	args := []string{}
	if s.voice != "" {
		args = append(args, "-v", s.voice)
	}
	if s.rate > 0 {
		switch s.binary {
		case "say":
			args = append(args, "-r", strconv.Itoa(s.rate))
		default:
			args = append(args, "-s", strconv.Itoa(s.rate))
		}
	}
	args = append(args, phrase)

	cmd := exec.Command(s.binary, args...)

	// Starting under the lock closes the window where Stop snapshots a nil
	// current process just before the utterance launches: once stopped is
	// set, nothing new starts; anything started earlier is visible to Stop.
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	if err := cmd.Start(); err != nil {
		s.mu.Unlock()
		log.Printf("speech: cannot start %s: %v", s.binary, err)
		return
	}
	s.speaking = true
	s.current = cmd
	s.mu.Unlock()

	cmd.Wait()

	s.mu.Lock()
	s.speaking = false
	s.current = nil
	s.mu.Unlock()
}

// Speak queues a phrase. A phrase identical to the previous one is dropped
// while the debounce window is open.
func (s *Speaker) Speak(phrase string) {
	if phrase == "" {
		return
	}

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	now := s.now()
	if phrase == s.lastPhrase && now.Sub(s.lastTime) < s.debounce {
		s.mu.Unlock()
		return
	}
	s.lastPhrase = phrase
	s.lastTime = now
	s.mu.Unlock()

	select {
	case s.queue <- phrase:
	default:
		log.Printf("speech: queue full, dropping %q", phrase)
	}
}

// Busy reports whether anything is queued or currently being voiced.
func (s *Speaker) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speaking || len(s.queue) > 0
}

// Stop kills any in-flight synthesis and shuts the worker down. The
// speaker cannot be reused afterwards.
func (s *Speaker) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	current := s.current
	s.mu.Unlock()

	close(s.done)
	if current != nil && current.Process != nil {
		current.Process.Kill()
	}
	s.wg.Wait()

	// Drain anything still queued.
	for {
		select {
		case <-s.queue:
		default:
			return
		}
	}
}
