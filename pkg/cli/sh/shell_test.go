package sh

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/vfd.go/pkg/vfd"
	"github.com/robotalks/vfd.go/pkg/vfd/sim"
)

func TestShellStatus(t *testing.T) {
	ch := vfd.NewChannel(sim.New())
	ch.Settle = time.Millisecond
	dev, err := vfd.Open(ch)
	require.NoError(t, err)
	defer dev.Close()

	require.NoError(t, dev.SetText("PLAYING"))
	require.NoError(t, dev.Icon(vfd.IconPlay).Set(1))
	require.NoError(t, dev.Volume().Set(3))

	s := &Shell{Device: dev}
	st := s.Status()
	require.Equal(t, "PLAYING", st.Text)
	require.Equal(t, uint32(3<<15|1<<6), st.Mask)
	require.Len(t, st.Levels, vfd.NumIcons+1)
	require.Equal(t, 1, st.Levels["play"])
	require.Equal(t, 3, st.Levels["volume"])
	require.Equal(t, 0, st.Levels["tv"])
}
