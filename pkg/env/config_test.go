package env

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/vfd.go/pkg/vfd/sim"
)

func TestConfigParse(t *testing.T) {
	conf := Config{Device: "hidraw://auto", Settle: 24 * time.Millisecond, ID: "keep"}
	require.NoError(t, conf.Parse([]byte(`
device: sim://
mqtt: mqtt://localhost:1883/vfd/?codec=proto
text: hello
`)))
	require.Equal(t, "sim://", conf.Device)
	require.Equal(t, "mqtt://localhost:1883/vfd/?codec=proto", conf.MQTTBrokerURL)
	require.Equal(t, "hello", conf.Text)
	require.Equal(t, "keep", conf.ID)
	require.Equal(t, 24*time.Millisecond, conf.Settle)

	require.Error(t, conf.Parse([]byte("device: [")))
}

func TestConfigLoadFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "vfd")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "vfd.yaml")
	require.NoError(t, ioutil.WriteFile(path, []byte("id: den\n"), 0644))

	conf := Config{}
	require.NoError(t, conf.LoadFile(path))
	require.Equal(t, "den", conf.DisplayID())
	require.Error(t, conf.LoadFile(filepath.Join(dir, "missing.yaml")))
}

func TestOpenTransport(t *testing.T) {
	w, err := OpenTransport("sim://")
	require.NoError(t, err)
	require.IsType(t, &sim.Emulator{}, w)

	for _, u := range []string{"usb://1", "serial:///dev/null?baud=fast", ":bad"} {
		_, err = OpenTransport(u)
		require.Errorf(t, err, u)
	}
}

func TestConfigOpen(t *testing.T) {
	conf := Config{Device: "sim://", Settle: time.Millisecond, Text: "hi"}
	dev, err := conf.Open()
	require.NoError(t, err)
	defer dev.Close()
	require.Equal(t, []byte("hi\n"), dev.ReadText())
}
