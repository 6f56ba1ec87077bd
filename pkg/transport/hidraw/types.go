// Package hidraw talks to the display through the Linux hidraw interface.
package hidraw

import (
	"strconv"
	"strings"
)

// DeviceID identifies a USB device model.
type DeviceID struct {
	Vendor  uint16
	Product uint16
}

// Shuttle VFD identifiers.
const (
	VendorShuttle uint16 = 0x051c
	// Interface is the USB interface number carrying the display.
	Interface = 1
)

// SupportedDevices lists the displays known to work.
var SupportedDevices = []DeviceID{
	{Vendor: VendorShuttle, Product: 0x0003},
	{Vendor: VendorShuttle, Product: 0x0005},
}

// IsSupported checks id against SupportedDevices.
func IsSupported(id DeviceID) bool {
	for _, dev := range SupportedDevices {
		if dev == id {
			return true
		}
	}
	return false
}

// reportID is prepended to every packet; the display uses report 0.
const reportID byte = 0

func frame(pkt []byte) []byte {
	buf := make([]byte, len(pkt)+1)
	buf[0] = reportID
	copy(buf[1:], pkt)
	return buf
}

// parseInterfaceNumber parses the content of sysfs bInterfaceNumber.
func parseInterfaceNumber(s string) (int, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 16, 8)
	if err != nil {
		return 0, false
	}
	return int(n), true
}
