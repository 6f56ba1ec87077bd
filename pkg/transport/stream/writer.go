// Package stream sends packets as raw frames over a byte stream.
package stream

import (
	"fmt"
	"io"
	"net"
)

// Writer implements vfd.PacketWriter.
// Packets have a fixed size, so frames are written without any prefix.
type Writer struct {
	io.Writer
}

// New creates a Writer with io.Writer.
func New(w io.Writer) *Writer {
	return &Writer{w}
}

// Dial connects to a TCP bridge.
func Dial(addr string) (*Writer, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	return New(conn), nil
}

// WritePacket implements vfd.PacketWriter.
func (p *Writer) WritePacket(pkt []byte) error {
	n, err := p.Write(pkt)
	if err == nil && n != len(pkt) {
		err = fmt.Errorf("short write %d/%d", n, len(pkt))
	}
	return err
}

// Close implements io.Closer.
func (p *Writer) Close() error {
	if closer, ok := p.Writer.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
