package vfd

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var errBroken = errors.New("broken pipe")

type recordWriter struct {
	failAt   int // 1-based index of the failing write, 0 never fails
	inFlight int32
	overlap  bool
	closed   bool
	packets  []Packet
	times    []time.Time
	lock     sync.Mutex
}

func (w *recordWriter) WritePacket(b []byte) error {
	if atomic.AddInt32(&w.inFlight, 1) > 1 {
		w.overlap = true
	}
	defer atomic.AddInt32(&w.inFlight, -1)
	time.Sleep(100 * time.Microsecond)
	w.lock.Lock()
	defer w.lock.Unlock()
	if len(b) != PacketSize {
		return errors.New("bad size")
	}
	var pkt Packet
	copy(pkt[:], b)
	w.packets = append(w.packets, pkt)
	w.times = append(w.times, time.Now())
	if w.failAt > 0 && len(w.packets) == w.failAt {
		return errBroken
	}
	return nil
}

func (w *recordWriter) Close() error {
	w.closed = true
	return nil
}

func (w *recordWriter) sent() []Packet {
	w.lock.Lock()
	defer w.lock.Unlock()
	return append([]Packet(nil), w.packets...)
}

func newTestChannel(w PacketWriter) *Channel {
	ch := NewChannel(w)
	ch.Settle = time.Millisecond
	return ch
}

func TestChannelSettle(t *testing.T) {
	w := &recordWriter{}
	ch := NewChannel(w)
	require.Equal(t, DefaultSettle, ch.Settle)
	start := time.Now()
	require.NoError(t, ch.SendAll(ClearPacket(false), ClearPacket(true)))
	require.True(t, time.Since(start) >= 2*DefaultSettle)
	require.Equal(t, []Packet{ClearPacket(false), ClearPacket(true)}, w.sent())
}

func TestChannelSettleConcurrent(t *testing.T) {
	w := &recordWriter{}
	ch := NewChannel(w)
	ch.Settle = 5 * time.Millisecond
	dev, err := Open(ch)
	require.NoError(t, err)
	defer dev.Close()

	var wg sync.WaitGroup
	for _, ind := range dev.Indicators() {
		wg.Add(1)
		go func(ind *Indicator) {
			defer wg.Done()
			require.NoError(t, ind.Set(ind.MaxLevel()))
		}(ind)
	}
	wg.Wait()

	require.Equal(t, IconMask(0x67fff), dev.Mask())
	require.False(t, w.overlap)
	w.lock.Lock()
	times := append([]time.Time(nil), w.times...)
	w.lock.Unlock()
	require.Len(t, times, 1+NumIcons+1)
	for n := 1; n < len(times); n++ {
		gap := times[n].Sub(times[n-1])
		require.Truef(t, gap >= ch.Settle, "gap %v before packet %d", gap, n)
	}
}

func TestChannelSendAllAtomic(t *testing.T) {
	w := &recordWriter{}
	ch := newTestChannel(w)
	var text [Width]byte
	copy(text[:], "ABCDEFGHIJKLMNOPQRST")
	seq := TextPackets(&text)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			require.NoError(t, ch.SendAll(seq...))
		}()
		go func(i int) {
			defer wg.Done()
			require.NoError(t, ch.Send(IconsPacket(IconMask(i))))
		}(i)
	}
	wg.Wait()

	require.False(t, w.overlap)
	pkts := w.sent()
	require.Len(t, pkts, 16)
	for n := 0; n < len(pkts); n++ {
		if pkts[n] == seq[0] {
			require.Equal(t, seq, pkts[n:n+3])
			n += 2
		} else {
			require.Equal(t, CmdSetIcons, pkts[n].Command())
		}
	}
}

func TestChannelFailure(t *testing.T) {
	w := &recordWriter{failAt: 2}
	ch := newTestChannel(w)
	err := ch.SendAll(ClearPacket(false), IconsPacket(1), IconsPacket(2))
	require.Error(t, err)
	require.IsType(t, &TransportError{}, err)
	terr := err.(*TransportError)
	require.Equal(t, errBroken, terr.Err)
	require.Equal(t, IconsPacket(1), terr.Packet)
	require.Len(t, w.sent(), 2)

	// the channel is still usable
	require.NoError(t, ch.Send(IconsPacket(3)))
	require.Len(t, w.sent(), 3)
}

func TestChannelClose(t *testing.T) {
	w := &recordWriter{}
	ch := newTestChannel(w)
	ch.Settle = 20 * time.Millisecond
	done := make(chan error, 1)
	go func() {
		done <- ch.Send(ClearPacket(true))
	}()
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, ch.Close())
	require.NoError(t, <-done)
	require.True(t, w.closed)
	require.Len(t, w.sent(), 1)
	require.Equal(t, ErrClosed, ch.Send(ClearPacket(true)))
	require.NoError(t, ch.Close())
}
