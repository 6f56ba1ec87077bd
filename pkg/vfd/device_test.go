package vfd

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestDevice(t *testing.T, w *recordWriter) *Device {
	dev, err := Open(newTestChannel(w))
	require.NoError(t, err)
	require.Equal(t, []Packet{{0x11, 1}}, w.sent())
	return dev
}

func TestDeviceText(t *testing.T) {
	w := &recordWriter{}
	dev := openTestDevice(t, w)
	defer dev.Close()

	n, err := dev.WriteText([]byte("HELLO"))
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, []Packet{
		{0x11, 1},
		{0x11, 2},
		{0x97, 'H', 'E', 'L', 'L', 'O'},
		{0x97},
		{0x96},
	}, w.sent())
	require.Equal(t, []byte("HELLO\n"), dev.ReadText())

	n, err = dev.WriteText([]byte("a very long line of text"))
	require.NoError(t, err)
	require.Equal(t, 24, n)
	require.Equal(t, []byte("a very long line of "), dev.Text())
}

func TestDeviceIndicators(t *testing.T) {
	w := &recordWriter{}
	dev := openTestDevice(t, w)
	defer dev.Close()

	inds := dev.Indicators()
	require.Len(t, inds, NumIcons+1)
	for n, name := range []string{
		"tv", "cd", "music", "radio", "clock", "pause", "play", "record",
		"rewind", "camera", "mute", "repeat", "reverse", "fastforward", "stop",
	} {
		ind, ok := dev.Indicator(name)
		require.True(t, ok)
		require.Equal(t, inds[n], ind)
		require.Equal(t, name, ind.Name())
		require.Equal(t, 1, ind.MaxLevel())
		require.Zero(t, ind.Level())
	}
	vol, ok := dev.Indicator("volume")
	require.True(t, ok)
	require.Equal(t, dev.Volume(), vol)
	require.Equal(t, MaxVolume, vol.MaxLevel())
	_, ok = dev.Indicator("eject")
	require.False(t, ok)

	cd := dev.Icon(IconCD)
	require.NoError(t, cd.Set(255))
	require.Equal(t, 1, cd.Level())
	require.Equal(t, IconMask(2), dev.Mask())
	require.Equal(t, Packet{0x74, 0, 0, 0, 2}, w.sent()[1])

	require.NoError(t, vol.Set(5))
	require.Equal(t, 5, vol.Level())
	require.Equal(t, IconMask(5<<15|2), dev.Mask())

	require.NoError(t, cd.Set(0))
	require.Equal(t, IconMask(5<<15), dev.Mask())

	sent := len(w.sent())
	require.IsType(t, &LevelError{}, vol.Set(13))
	require.IsType(t, &LevelError{}, cd.Set(-1))
	require.Len(t, w.sent(), sent)
	require.Equal(t, 5, vol.Level())

	require.NoError(t, dev.Clear())
	require.Zero(t, dev.Mask())
	require.Zero(t, vol.Level())
	require.Equal(t, ClearPacket(true), w.sent()[sent])
}

func TestDeviceConcurrentUpdates(t *testing.T) {
	for i := 0; i < 10; i++ {
		w := &recordWriter{}
		dev := openTestDevice(t, w)
		var wg sync.WaitGroup
		wg.Add(3)
		go func() {
			defer wg.Done()
			require.NoError(t, dev.Icon(IconTV).Set(1))
		}()
		go func() {
			defer wg.Done()
			require.NoError(t, dev.Volume().Set(5))
		}()
		go func() {
			defer wg.Done()
			require.NoError(t, dev.SetText("race"))
		}()
		wg.Wait()
		mask := dev.Mask()
		require.True(t, mask.Has(0))
		require.Equal(t, 5, mask.Volume())
		require.False(t, w.overlap)
		pkts := w.sent()
		require.Len(t, pkts, 7)
		require.Equal(t, IconsPacket(mask), lastIcons(pkts))
		require.NoError(t, dev.Close())
	}
}

func lastIcons(pkts []Packet) (pkt Packet) {
	for n := len(pkts) - 1; n >= 0; n-- {
		if pkts[n].Command() == CmdSetIcons {
			return pkts[n]
		}
	}
	return
}

func TestDeviceTransportFailure(t *testing.T) {
	w := &recordWriter{failAt: 3}
	dev := openTestDevice(t, w)
	defer dev.Close()

	_, err := dev.WriteText([]byte("oops"))
	require.IsType(t, &TransportError{}, err)
	require.Len(t, w.sent(), 3)
	// state already reflects the write
	require.Equal(t, []byte("oops"), dev.Text())

	_, err = dev.WriteText([]byte("again"))
	require.NoError(t, err)
	require.Equal(t, []byte("again\n"), dev.ReadText())
}

func TestDeviceOpenFailure(t *testing.T) {
	w := &recordWriter{failAt: 1}
	dev, err := Open(newTestChannel(w))
	require.Error(t, err)
	require.Nil(t, dev)
	require.True(t, w.closed)
}

func TestDeviceClosed(t *testing.T) {
	w := &recordWriter{}
	dev := openTestDevice(t, w)
	require.NoError(t, dev.Close())
	require.True(t, w.closed)
	require.Equal(t, ErrClosed, dev.SetText("late"))
	require.Equal(t, ErrClosed, dev.Volume().Set(1))
	require.Empty(t, dev.Text())
}
