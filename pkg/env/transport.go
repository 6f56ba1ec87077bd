package env

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/golang/glog"

	"github.com/robotalks/vfd.go/pkg/transport/hidraw"
	"github.com/robotalks/vfd.go/pkg/transport/serial"
	"github.com/robotalks/vfd.go/pkg/transport/stream"
	"github.com/robotalks/vfd.go/pkg/transport/websocket"
	"github.com/robotalks/vfd.go/pkg/vfd"
	"github.com/robotalks/vfd.go/pkg/vfd/sim"
)

// OpenTransport opens a packet writer by URL scheme.
func OpenTransport(deviceURL string) (vfd.PacketWriter, error) {
	u, err := url.Parse(deviceURL)
	if err != nil {
		return nil, fmt.Errorf("invalid device URL: %v", err)
	}
	switch u.Scheme {
	case "hidraw":
		var d *hidraw.Device
		if u.Host == "auto" || (u.Host == "" && u.Path == "") {
			d, err = hidraw.Detect()
		} else {
			d, err = hidraw.Open(u.Path)
		}
		if err != nil {
			return nil, err
		}
		return d, nil
	case "serial":
		conf := serial.Config{Device: u.Path}
		if val := u.Query().Get("baud"); val != "" {
			if conf.Baud, err = strconv.Atoi(val); err != nil {
				return nil, fmt.Errorf("invalid baud %q", val)
			}
		}
		return writerOrErr(serial.Open(conf))
	case "tcp":
		return writerOrErr(stream.Dial(u.Host))
	case "ws", "wss":
		origin := "http://localhost/"
		if val := u.Query().Get("origin"); val != "" {
			origin = val
		}
		w, err := websocket.Dial(deviceURL, origin)
		if err != nil {
			return nil, err
		}
		return w, nil
	case "sim":
		e := sim.New()
		e.OnUpdate = func(e *sim.Emulator) {
			glog.Info(e.String())
		}
		return e, nil
	default:
		return nil, fmt.Errorf("unknown device URL scheme: %q", u.Scheme)
	}
}

func writerOrErr(w *stream.Writer, err error) (vfd.PacketWriter, error) {
	if err != nil {
		return nil, err
	}
	return w, nil
}
