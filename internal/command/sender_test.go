package command

import (
	"net"
	"testing"
	"time"

	"github.com/ayusman/mudra/internal/action"
)

// newTestLink starts a UDP listener and a sender pointed at it with a
// controllable clock.
func newTestLink(t *testing.T) (*Sender, net.PacketConn, *time.Time) {
	t.Helper()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { pc.Close() })

	s, err := NewSender(pc.LocalAddr().String())
	if err != nil {
		t.Fatalf("new sender: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	now := time.Now()
	s.now = func() time.Time { return now }
	return s, pc, &now
}

func recvDatagram(t *testing.T, pc net.PacketConn) (string, bool) {
	t.Helper()
	buf := make([]byte, 256)
	pc.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	n, _, err := pc.ReadFrom(buf)
	if err != nil {
		return "", false
	}
	return string(buf[:n]), true
}

func TestSenderSendsNewCommand(t *testing.T) {
	s, pc, _ := newTestLink(t)

	if err := s.Send("GO_FORWARD"); err != nil {
		t.Fatalf("send: %v", err)
	}
	got, ok := recvDatagram(t, pc)
	if !ok || got != "GO_FORWARD" {
		t.Fatalf("expected GO_FORWARD datagram, got %q (ok=%v)", got, ok)
	}
}

func TestSenderThrottlesRepeats(t *testing.T) {
	s, pc, now := newTestLink(t)

	s.Send("TURN_LEFT")
	if _, ok := recvDatagram(t, pc); !ok {
		t.Fatal("expected first datagram")
	}

	// Same command inside the interval is held back.
	*now = now.Add(100 * time.Millisecond)
	s.Send("TURN_LEFT")
	if got, ok := recvDatagram(t, pc); ok {
		t.Fatalf("expected throttled repeat, got %q", got)
	}

	// Once the interval passes the command is refreshed.
	*now = now.Add(DefaultSendInterval)
	s.Send("TURN_LEFT")
	if _, ok := recvDatagram(t, pc); !ok {
		t.Fatal("expected keep-alive resend after interval")
	}
}

func TestSenderStopBypassesThrottle(t *testing.T) {
	s, pc, _ := newTestLink(t)

	s.Send(action.Stop)
	if _, ok := recvDatagram(t, pc); !ok {
		t.Fatal("expected first STOP")
	}
	s.Send(action.Stop)
	if _, ok := recvDatagram(t, pc); !ok {
		t.Fatal("expected immediate STOP repeat")
	}
}

func TestSenderDropsSentinels(t *testing.T) {
	s, pc, _ := newTestLink(t)

	s.Send(action.NoAction)
	s.Send(action.UnknownCommand)
	s.Send("")
	if got, ok := recvDatagram(t, pc); ok {
		t.Fatalf("expected no datagrams for sentinels, got %q", got)
	}
}

func TestSenderCommandChangeBeatsThrottle(t *testing.T) {
	s, pc, _ := newTestLink(t)

	s.Send("GO_FORWARD")
	recvDatagram(t, pc)

	// A different command goes out at once, no interval wait.
	s.Send("TURN_RIGHT")
	got, ok := recvDatagram(t, pc)
	if !ok || got != "TURN_RIGHT" {
		t.Fatalf("expected TURN_RIGHT, got %q (ok=%v)", got, ok)
	}
}
