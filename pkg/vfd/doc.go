// Package vfd drives the Shuttle 20x1 VFD and its icon lamps.
package vfd

// The controller accepts 8-byte packets. The header byte carries the
// command in the high nibble and the payload length in the low nibble,
// followed by up to 7 payload bytes:
//
//   0x1 clear text and icons (len=1)
//   0x3 display clock (len=1)
//   0x7 icons (len=4)
//   0x9 text (len<=7)
//   0xD set clock data (len=7)
//
// The controller needs about 24ms to latch a packet, so packets are sent
// one at a time by Channel.
