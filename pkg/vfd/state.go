package vfd

// Width is the number of character cells.
const Width = 20

// IconMask holds the icon bits (0-14) and the volume field (15-19).
type IconMask uint32

// Icon mask layout.
const (
	NumIcons    = 15
	MaxVolume   = 12
	volumeShift = NumIcons

	BaseMask   IconMask = 1<<NumIcons - 1
	VolumeMask IconMask = 0x1f << volumeShift
)

// Base returns the on/off icon bits.
func (m IconMask) Base() IconMask {
	return m & BaseMask
}

// Volume returns the volume level.
func (m IconMask) Volume() int {
	return int((m & VolumeMask) >> volumeShift)
}

// Has checks whether the icon bit at index is set.
func (m IconMask) Has(index int) bool {
	return index >= 0 && index < NumIcons && m&(1<<uint(index)) != 0
}

// State is the in-memory display content: text buffer and icon mask.
// It is not safe for concurrent use; Device serializes access.
type State struct {
	text [Width]byte
	mask IconMask
}

// Reset blanks text and icons.
func (s *State) Reset() {
	*s = State{}
}

// SetText replaces the whole buffer. Short input is zero padded, long input
// truncated. The returned packets home the cursor and rewrite all cells.
func (s *State) SetText(b []byte) []Packet {
	s.text = [Width]byte{}
	copy(s.text[:], b)
	return append([]Packet{ClearPacket(false)}, TextPackets(&s.text)...)
}

// SetBaseBit sets or clears icon bit index.
func (s *State) SetBaseBit(index int, on bool) ([]Packet, error) {
	if index < 0 || index >= NumIcons {
		return nil, &IndexError{Index: index}
	}
	bit := IconMask(1) << uint(index)
	if on {
		s.mask |= bit
	} else {
		s.mask &^= bit
	}
	return []Packet{IconsPacket(s.mask)}, nil
}

// SetVolume loads level (0-12) into the volume field.
func (s *State) SetVolume(level int) ([]Packet, error) {
	if level < 0 || level > MaxVolume {
		return nil, &LevelError{Level: level, Max: MaxVolume}
	}
	s.mask &= BaseMask
	if level != 0 {
		s.mask |= IconMask(level) << volumeShift
	}
	return []Packet{IconsPacket(s.mask)}, nil
}

// Mask returns the combined icon mask.
func (s *State) Mask() IconMask {
	return s.mask
}

// Buffer returns a copy of the full text buffer.
func (s *State) Buffer() [Width]byte {
	return s.text
}

// Text returns the buffer without trailing NUL or newline bytes.
func (s *State) Text() []byte {
	sz := Width
	for sz > 0 && (s.text[sz-1] == 0 || s.text[sz-1] == '\n') {
		sz--
	}
	b := make([]byte, sz)
	copy(b, s.text[:sz])
	return b
}
