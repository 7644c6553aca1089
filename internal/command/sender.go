// Package command carries robot commands from their sources (gesture loop,
// voice feed) to the robot over UDP, serializing multi-source flow through a
// single dispatcher.
package command

import (
	"fmt"
	"log"
	"net"
	"sync"
	"time"

	"github.com/ayusman/mudra/internal/action"
)

// DefaultSendInterval is how long a repeated command is held back before
// being re-sent to keep the link alive without spamming the robot.
const DefaultSendInterval = 300 * time.Millisecond

// Sender pushes command strings to the robot as UDP text datagrams. A
// command goes on the wire when it differs from the previous one, when the
// re-send interval has elapsed, or immediately when it is STOP. The
// NO_ACTION and UNKNOWN_COMMAND sentinels are never transmitted.
type Sender struct {
	conn     net.Conn
	interval time.Duration

	mu       sync.Mutex
	lastCmd  string
	lastSent time.Time
	now      func() time.Time
}

// NewSender opens a UDP link to addr (host:port).
func NewSender(addr string) (*Sender, error) {
	conn, err := net.Dial("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial command link %s: %w", addr, err)
	}
	log.Printf("command: sending to %s", addr)
	return &Sender{
		conn:     conn,
		interval: DefaultSendInterval,
		now:      time.Now,
	}, nil
}

// Send transmits cmd subject to the throttle rules. Errors on the datagram
// write are returned but leave the sender usable.
func (s *Sender) Send(cmd string) error {
	if cmd == "" || cmd == action.NoAction || cmd == action.UnknownCommand {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if cmd == s.lastCmd && now.Sub(s.lastSent) <= s.interval && cmd != action.Stop {
		return nil
	}

	if _, err := s.conn.Write([]byte(cmd)); err != nil {
		return fmt.Errorf("send %q: %w", cmd, err)
	}
	s.lastCmd = cmd
	s.lastSent = now
	return nil
}

// Close shuts the UDP socket.
func (s *Sender) Close() error {
	return s.conn.Close()
}
