// Package websocket sends packets as binary websocket messages.
package websocket

import (
	"io"

	"golang.org/x/net/websocket"
)

// Writer implements vfd.PacketWriter.
type Writer websocket.Conn

// New wraps websocket.Conn.
func New(conn *websocket.Conn) *Writer {
	return (*Writer)(conn)
}

// Dial connects to a websocket endpoint.
func Dial(url, origin string) (*Writer, error) {
	conn, err := websocket.Dial(url, "", origin)
	if err != nil {
		return nil, err
	}
	return New(conn), nil
}

// WritePacket implements vfd.PacketWriter.
func (p *Writer) WritePacket(pkt []byte) error {
	return websocket.Message.Send((*websocket.Conn)(p), pkt)
}

// Close implements io.Closer.
func (p *Writer) Close() error {
	return (*websocket.Conn)(p).Close()
}

// PacketHandler receives packets read by Serve.
type PacketHandler interface {
	WritePacket([]byte) error
}

// Serve reads binary messages from conn and hands them to h until the
// connection closes. A rejected packet ends the connection.
func Serve(conn *websocket.Conn, h PacketHandler) error {
	for {
		var pkt []byte
		if err := websocket.Message.Receive(conn, &pkt); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if err := h.WritePacket(pkt); err != nil {
			return err
		}
	}
}

// Handler creates an http.Handler-compatible websocket.Handler serving h.
func Handler(h PacketHandler, onErr func(error)) websocket.Handler {
	return websocket.Handler(func(conn *websocket.Conn) {
		defer conn.Close()
		if err := Serve(conn, h); err != nil && onErr != nil {
			onErr(err)
		}
	})
}
