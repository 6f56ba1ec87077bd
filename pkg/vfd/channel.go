package vfd

import (
	"io"
	"sync"
	"time"

	"github.com/golang/glog"
)

// PacketWriter delivers one 8-byte packet to the device.
type PacketWriter interface {
	WritePacket([]byte) error
}

// WritePacketFunc is func type of PacketWriter.
type WritePacketFunc func([]byte) error

// WritePacket implements PacketWriter.
func (f WritePacketFunc) WritePacket(pkt []byte) error {
	return f(pkt)
}

// DefaultSettle is the time the controller needs to latch a packet.
const DefaultSettle = 24 * time.Millisecond

// Channel sends packets one at a time.
// After each packet it keeps the channel for the Settle interval so the
// controller latches the frame before the next one arrives. This caps the
// throughput at one packet per Settle regardless of the number of callers.
type Channel struct {
	Writer PacketWriter
	Settle time.Duration

	closed bool
	lock   sync.Mutex
}

// NewChannel creates a Channel with the default settle interval.
func NewChannel(w PacketWriter) *Channel {
	return &Channel{Writer: w, Settle: DefaultSettle}
}

// Send sends a single packet.
func (c *Channel) Send(pkt Packet) error {
	return c.SendAll(pkt)
}

// SendAll sends packets in order without interleaving packets from other
// callers. It stops at the first failure.
func (c *Channel) SendAll(pkts ...Packet) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.closed {
		return ErrClosed
	}
	for _, pkt := range pkts {
		if err := c.send(pkt); err != nil {
			return err
		}
	}
	return nil
}

func (c *Channel) send(pkt Packet) error {
	glog.V(4).Infof("SND [%s]", pkt)
	err := c.Writer.WritePacket(pkt.Bytes())
	time.Sleep(c.Settle)
	if err != nil {
		glog.Errorf("send packet failed: %v", err)
		return &TransportError{Packet: pkt, Err: err}
	}
	return nil
}

// Close waits for the packet in flight and releases the writer.
func (c *Channel) Close() error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	if closer, ok := c.Writer.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
