// Package sim emulates the display controller.
package sim

import (
	"fmt"
	"sync"

	"github.com/robotalks/vfd.go/pkg/vfd"
)

// Emulator applies packets to a virtual display.
type Emulator struct {
	// OnUpdate is called after each applied packet, outside the lock.
	OnUpdate func(*Emulator)

	screen  [vfd.Width]byte
	cursor  int
	mask    vfd.IconMask
	packets []vfd.Packet
	lock    sync.RWMutex
}

// New creates an Emulator.
func New() *Emulator {
	return &Emulator{}
}

// WritePacket implements vfd.PacketWriter.
func (e *Emulator) WritePacket(b []byte) error {
	pkt, err := vfd.ParsePacket(b)
	if err != nil {
		return err
	}
	e.lock.Lock()
	err = e.apply(pkt)
	e.lock.Unlock()
	if err == nil {
		if fn := e.OnUpdate; fn != nil {
			fn(e)
		}
	}
	return err
}

func (e *Emulator) apply(pkt vfd.Packet) error {
	data := pkt.Payload()
	switch pkt.Command() {
	case vfd.CmdClear:
		if len(data) != 1 {
			return fmt.Errorf("clear: invalid length %d", len(data))
		}
		switch data[0] {
		case 1:
			e.screen, e.mask = [vfd.Width]byte{}, 0
		case 2:
		default:
			return fmt.Errorf("clear: invalid mode %d", data[0])
		}
		e.cursor = 0
	case vfd.CmdSetIcons:
		if len(data) != 4 {
			return fmt.Errorf("icons: invalid length %d", len(data))
		}
		var mask vfd.IconMask
		for _, b := range data {
			mask = mask<<5 | vfd.IconMask(b&0x1f)
		}
		e.mask = mask
	case vfd.CmdSetText:
		for _, b := range data {
			if e.cursor < vfd.Width {
				e.screen[e.cursor] = b
				e.cursor++
			}
		}
	case vfd.CmdSetClock, vfd.CmdDisplayClock:
		// clock is kept by the controller itself.
	default:
		return fmt.Errorf("unknown command 0x%x", byte(pkt.Command()))
	}
	e.packets = append(e.packets, pkt)
	return nil
}

// Screen returns the virtual character cells.
func (e *Emulator) Screen() [vfd.Width]byte {
	e.lock.RLock()
	defer e.lock.RUnlock()
	return e.screen
}

// Cursor returns the column of the next character.
func (e *Emulator) Cursor() int {
	e.lock.RLock()
	defer e.lock.RUnlock()
	return e.cursor
}

// Mask returns the icon mask last received.
func (e *Emulator) Mask() vfd.IconMask {
	e.lock.RLock()
	defer e.lock.RUnlock()
	return e.mask
}

// Packets returns all accepted packets.
func (e *Emulator) Packets() []vfd.Packet {
	e.lock.RLock()
	defer e.lock.RUnlock()
	return append([]vfd.Packet(nil), e.packets...)
}

// String renders the screen and lit icons.
func (e *Emulator) String() string {
	e.lock.RLock()
	screen, mask := e.screen, e.mask
	e.lock.RUnlock()
	text := make([]byte, vfd.Width)
	for n, b := range screen {
		if b < 0x20 || b > 0x7e {
			b = ' '
		}
		text[n] = b
	}
	icons := ""
	for n := 0; n < vfd.NumIcons; n++ {
		if mask.Has(n) {
			icons += " " + vfd.Icon(n).String()
		}
	}
	return fmt.Sprintf("[%s] vol=%d%s", text, mask.Volume(), icons)
}
