package vfd

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed indicates the session has been closed.
	ErrClosed = errors.New("device closed")
)

// IndexError reports an icon index outside 0-14.
type IndexError struct {
	Index int
}

// Error implements error.
func (e *IndexError) Error() string {
	return fmt.Sprintf("invalid icon index %d", e.Index)
}

// LevelError reports an indicator level outside 0..Max.
type LevelError struct {
	Level int
	Max   int
}

// Error implements error.
func (e *LevelError) Error() string {
	return fmt.Sprintf("invalid level %d (max %d)", e.Level, e.Max)
}

// TransportError wraps a failure reported by the transport.
type TransportError struct {
	Packet Packet
	Err    error
}

// Error implements error.
func (e *TransportError) Error() string {
	return fmt.Sprintf("send packet [%s] failed: %v", e.Packet, e.Err)
}

// Unwrap returns the transport's error.
func (e *TransportError) Unwrap() error {
	return e.Err
}
