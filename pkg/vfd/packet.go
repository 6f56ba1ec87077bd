package vfd

import "fmt"

// Packet geometry.
const (
	PacketSize = 8
	// MaxDataLen is the payload capacity of a packet.
	MaxDataLen = PacketSize - 1
)

// Command is the high nibble of the packet header.
type Command byte

// Commands understood by the display controller.
const (
	CmdClear        Command = 0x1
	CmdDisplayClock Command = 0x3
	CmdSetIcons     Command = 0x7
	CmdSetText      Command = 0x9
	CmdSetClock     Command = 0xd
)

// Payloads of CmdClear.
const (
	clearAll    byte = 1 // text and icons
	resetCursor byte = 2 // cursor only
)

// Packet is a framed 8-byte message.
// Payload bytes beyond the declared length are always zero.
type Packet [PacketSize]byte

// NewPacket frames payload with cmd.
func NewPacket(cmd Command, payload []byte) (pkt Packet, err error) {
	if len(payload) > MaxDataLen {
		return pkt, fmt.Errorf("payload too long: %d", len(payload))
	}
	pkt[0] = byte(cmd&0x0f)<<4 | byte(len(payload))
	copy(pkt[1:], payload)
	return pkt, nil
}

func mustPacket(cmd Command, payload ...byte) Packet {
	pkt, err := NewPacket(cmd, payload)
	if err != nil {
		panic(err)
	}
	return pkt
}

// ParsePacket validates raw bytes as a Packet.
func ParsePacket(b []byte) (pkt Packet, err error) {
	if len(b) != PacketSize {
		return pkt, fmt.Errorf("invalid packet size %d", len(b))
	}
	copy(pkt[:], b)
	if l := pkt.Len(); l > MaxDataLen {
		return pkt, fmt.Errorf("invalid packet length %d", l)
	}
	for _, v := range pkt.trailing() {
		if v != 0 {
			return pkt, fmt.Errorf("non-zero byte after payload in %s", pkt)
		}
	}
	return pkt, nil
}

// Command returns the command nibble.
func (p Packet) Command() Command {
	return Command(p[0] >> 4)
}

// Len returns the declared payload length.
func (p Packet) Len() int {
	return int(p[0] & 0x0f)
}

// Payload returns the meaningful payload bytes.
func (p Packet) Payload() []byte {
	l := p.Len()
	if l > MaxDataLen {
		l = MaxDataLen
	}
	return p[1 : 1+l]
}

func (p Packet) trailing() []byte {
	l := p.Len()
	if l > MaxDataLen {
		return nil
	}
	return p[1+l:]
}

// Bytes returns encoded bytes for sending.
func (p Packet) Bytes() []byte {
	b := make([]byte, PacketSize)
	copy(b, p[:])
	return b
}

// String formats the packet as hex bytes.
func (p Packet) String() string {
	return fmt.Sprintf("% x", p[:])
}

// ClearPacket builds a clear command. With eraseIcons the whole display is
// blanked, otherwise only the text cursor returns to column 0.
func ClearPacket(eraseIcons bool) Packet {
	if eraseIcons {
		return mustPacket(CmdClear, clearAll)
	}
	return mustPacket(CmdClear, resetCursor)
}

// IconsPacket encodes the mask as four 5-bit groups, most significant first.
func IconsPacket(mask IconMask) Packet {
	return mustPacket(CmdSetIcons,
		byte(mask>>15)&0x1f,
		byte(mask>>10)&0x1f,
		byte(mask>>5)&0x1f,
		byte(mask)&0x1f,
	)
}

// TextPackets splits the text buffer into SetText chunks of at most
// MaxDataLen bytes. The number of packets depends only on Width.
func TextPackets(text *[Width]byte) []Packet {
	pkts := make([]Packet, 0, (Width+MaxDataLen-1)/MaxDataLen)
	for off := 0; off < Width; off += MaxDataLen {
		end := off + MaxDataLen
		if end > Width {
			end = Width
		}
		pkts = append(pkts, mustPacket(CmdSetText, text[off:end]...))
	}
	return pkts
}
