// Package serial opens a serial port bridge to the display.
package serial

import (
	"fmt"

	"github.com/tarm/serial"

	"github.com/robotalks/vfd.go/pkg/transport/stream"
)

// DefaultBaud is used when Config.Baud is zero.
const DefaultBaud = 9600

// Config holds serial port configuration.
type Config struct {
	// Device path (e.g., "/dev/ttyUSB0", "COM3")
	Device string
	Baud   int
}

// Open opens the port and returns a packet writer over it.
func Open(conf Config) (*stream.Writer, error) {
	if conf.Device == "" {
		return nil, fmt.Errorf("serial device not specified")
	}
	baud := conf.Baud
	if baud == 0 {
		baud = DefaultBaud
	}
	port, err := serial.OpenPort(&serial.Config{Name: conf.Device, Baud: baud})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %v", conf.Device, err)
	}
	return stream.New(port), nil
}
