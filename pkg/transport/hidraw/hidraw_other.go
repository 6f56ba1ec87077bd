// +build !linux

package hidraw

import "errors"

var errUnsupported = errors.New("hidraw is only supported on linux")

// Device is an opened hidraw node.
type Device struct{}

// Open is not supported on this platform.
func Open(path string) (*Device, error) {
	return nil, errUnsupported
}

// Detect is not supported on this platform.
func Detect() (*Device, error) {
	return nil, errUnsupported
}

// ID returns vendor and product of the device.
func (d *Device) ID() DeviceID {
	return DeviceID{}
}

// Path returns the device node path.
func (d *Device) Path() string {
	return ""
}

// WritePacket implements vfd.PacketWriter.
func (d *Device) WritePacket(pkt []byte) error {
	return errUnsupported
}

// Close implements io.Closer.
func (d *Device) Close() error {
	return nil
}
