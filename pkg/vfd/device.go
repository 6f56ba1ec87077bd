package vfd

import (
	"sync"

	"github.com/golang/glog"
)

// Device is an open display session.
// All state changes and the resulting packets go through one lock, so
// concurrent callers never lose updates or interleave frames.
type Device struct {
	ch     *Channel
	state  State
	icons  [NumIcons]Indicator
	volume Indicator
	closed bool
	lock   sync.Mutex
}

// Open starts a session on ch and blanks the display.
// The channel is closed if the initial clear fails.
func Open(ch *Channel) (*Device, error) {
	d := &Device{ch: ch}
	for n := range d.icons {
		d.icons[n].init(d, Icon(n))
	}
	d.volume.init(d, -1)
	if err := ch.Send(ClearPacket(true)); err != nil {
		ch.Close()
		return nil, err
	}
	glog.V(2).Info("display cleared")
	return d, nil
}

func (d *Device) update(fn func(*State) ([]Packet, error)) error {
	d.lock.Lock()
	defer d.lock.Unlock()
	if d.closed {
		return ErrClosed
	}
	pkts, err := fn(&d.state)
	if err != nil {
		return err
	}
	return d.ch.SendAll(pkts...)
}

// SetText replaces the displayed text.
func (d *Device) SetText(text string) error {
	_, err := d.WriteText([]byte(text))
	return err
}

// WriteText replaces the text buffer with up to Width bytes of b.
// It reports len(b) as written, the way a text attribute does.
func (d *Device) WriteText(b []byte) (int, error) {
	err := d.update(func(s *State) ([]Packet, error) {
		return s.SetText(b), nil
	})
	if err != nil {
		return 0, err
	}
	return len(b), nil
}

// Text returns the current text without trailing NUL or newline bytes.
func (d *Device) Text() []byte {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.state.Text()
}

// ReadText returns the text followed by a single newline.
func (d *Device) ReadText() []byte {
	return append(d.Text(), '\n')
}

// Mask returns the current icon mask.
func (d *Device) Mask() IconMask {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.state.Mask()
}

// Clear blanks text and icons and resets all indicator levels.
func (d *Device) Clear() error {
	return d.update(func(s *State) ([]Packet, error) {
		s.Reset()
		for n := range d.icons {
			d.icons[n].level = 0
		}
		d.volume.level = 0
		return []Packet{ClearPacket(true)}, nil
	})
}

// Icon returns the indicator of an icon.
func (d *Device) Icon(icon Icon) *Indicator {
	if icon < 0 || int(icon) >= NumIcons {
		return nil
	}
	return &d.icons[icon]
}

// Volume returns the volume indicator.
func (d *Device) Volume() *Indicator {
	return &d.volume
}

// Indicator looks up an indicator by name.
func (d *Device) Indicator(name string) (*Indicator, bool) {
	if name == VolumeName {
		return &d.volume, true
	}
	if icon, ok := ParseIcon(name); ok {
		return &d.icons[icon], true
	}
	return nil, false
}

// Indicators lists the icons in bit order followed by volume.
func (d *Device) Indicators() []*Indicator {
	inds := make([]*Indicator, 0, NumIcons+1)
	for n := range d.icons {
		inds = append(inds, &d.icons[n])
	}
	return append(inds, &d.volume)
}

// Close ends the session after the packet in flight completes.
func (d *Device) Close() error {
	d.lock.Lock()
	d.closed = true
	d.lock.Unlock()
	return d.ch.Close()
}
