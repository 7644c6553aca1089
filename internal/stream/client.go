// Package stream receives the robot's point-of-view video feed, sent as one
// JPEG image per UDP datagram.
package stream

import (
	"fmt"
	"log"
	"net"
	"sync"

	"gocv.io/x/gocv"
)

// maxDatagram bounds a single JPEG frame; anything larger is truncated by
// the socket and dropped by the decoder.
const maxDatagram = 65536

// Client listens for frame datagrams in the background and keeps only the
// newest decodable frame. Corrupted packets are dropped silently, which is
// the normal failure mode on a lossy link.
type Client struct {
	conn net.PacketConn

	mu     sync.Mutex
	latest gocv.Mat
	fresh  bool

	done chan struct{}
	wg   sync.WaitGroup
}

// Listen binds the UDP port and starts receiving. addr is host:port; use
// ":12345" to listen on all interfaces.
func Listen(addr string) (*Client, error) {
	conn, err := net.ListenPacket("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("bind video port %s: %w", addr, err)
	}
	log.Printf("stream: listening for robot video on %s", conn.LocalAddr())

	c := &Client{
		conn:   conn,
		latest: gocv.NewMat(),
		done:   make(chan struct{}),
	}
	c.wg.Add(1)
	go c.receiveLoop()
	return c, nil
}

func (c *Client) receiveLoop() {
	defer c.wg.Done()
	buf := make([]byte, maxDatagram)

	for {
		n, _, err := c.conn.ReadFrom(buf)
		if err != nil {
			select {
			case <-c.done:
				return
			default:
				continue
			}
		}

		frame, err := gocv.IMDecode(buf[:n], gocv.IMReadColor)
		if err != nil || frame.Empty() {
			if err == nil {
				frame.Close()
			}
			continue
		}

		c.mu.Lock()
		c.latest.Close()
		c.latest = frame
		c.fresh = true
		c.mu.Unlock()
	}
}

// Frame returns a copy of the newest frame since the previous call, or nil
// when nothing new has arrived. The caller owns the returned Mat.
func (c *Client) Frame() *gocv.Mat {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.fresh {
		return nil
	}
	c.fresh = false
	clone := c.latest.Clone()
	return &clone
}

// Close stops the receive loop and releases the socket.
func (c *Client) Close() error {
	close(c.done)
	err := c.conn.Close()
	c.wg.Wait()

	c.mu.Lock()
	c.latest.Close()
	c.mu.Unlock()
	return err
}
