package vfd

// Icon identifies one of the on/off icons. The value is its bit index.
type Icon int

// Icons in bit order.
const (
	IconTV Icon = iota
	IconCD
	IconMusic
	IconRadio
	IconClock
	IconPause
	IconPlay
	IconRecord
	IconRewind
	IconCamera
	IconMute
	IconRepeat
	IconReverse
	IconFastForward
	IconStop
)

// VolumeName is the name of the multi-level volume indicator.
const VolumeName = "volume"

var iconNames = [NumIcons]string{
	"tv", "cd", "music", "radio", "clock", "pause", "play", "record",
	"rewind", "camera", "mute", "repeat", "reverse", "fastforward", "stop",
}

// String returns the indicator name of the icon.
func (i Icon) String() string {
	if i < 0 || int(i) >= NumIcons {
		return "invalid"
	}
	return iconNames[i]
}

// ParseIcon looks up an icon by name.
func ParseIcon(name string) (Icon, bool) {
	for n, s := range iconNames {
		if s == name {
			return Icon(n), true
		}
	}
	return -1, false
}

// Indicator is a named lamp on the display: one of the icons (levels 0-1)
// or the volume bar (levels 0-12).
type Indicator struct {
	name  string
	icon  Icon // -1 for volume
	max   int
	level int
	dev   *Device
}

func (i *Indicator) init(dev *Device, icon Icon) {
	i.dev, i.icon = dev, icon
	if icon < 0 {
		i.name, i.max = VolumeName, MaxVolume
	} else {
		i.name, i.max = icon.String(), 1
	}
}

// Name returns the indicator name.
func (i *Indicator) Name() string {
	return i.name
}

// MaxLevel returns the highest accepted level.
func (i *Indicator) MaxLevel() int {
	return i.max
}

// IsVolume indicates this is the volume bar.
func (i *Indicator) IsVolume() bool {
	return i.icon < 0
}

// Level returns the last level successfully applied to the mask.
func (i *Indicator) Level() int {
	i.dev.lock.Lock()
	defer i.dev.lock.Unlock()
	return i.level
}

// Set changes the indicator. For an icon any non-zero level turns it on.
func (i *Indicator) Set(level int) error {
	if level < 0 {
		return &LevelError{Level: level, Max: i.max}
	}
	return i.dev.update(func(s *State) (pkts []Packet, err error) {
		if i.IsVolume() {
			pkts, err = s.SetVolume(level)
		} else {
			pkts, err = s.SetBaseBit(int(i.icon), level != 0)
			if level > 1 {
				level = 1
			}
		}
		if err == nil {
			i.level = level
		}
		return
	})
}
