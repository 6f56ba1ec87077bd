package main

import (
	"context"
	"flag"
	"net/http"

	"github.com/golang/glog"

	"github.com/robotalks/vfd.go/pkg/framework"
	"github.com/robotalks/vfd.go/pkg/transport/websocket"
	"github.com/robotalks/vfd.go/pkg/vfd/sim"
)

var listenAddr = ":8008"

func init() {
	flag.StringVar(&listenAddr, "listen", listenAddr, "Address to listen on.")
}

type server struct {
	http.Server
}

func (s *server) Name() string {
	return "websocket"
}

func (s *server) Run(ctx context.Context) error {
	err := framework.RunWithContextCloser(ctx, &s.Server, s.ListenAndServe)
	if err == http.ErrServerClosed {
		err = nil
	}
	return err
}

func main() {
	flag.Parse()
	defer glog.Flush()

	e := sim.New()
	e.OnUpdate = func(e *sim.Emulator) {
		glog.Info(e.String())
	}
	mux := http.NewServeMux()
	mux.Handle("/vfd", websocket.Handler(e, func(err error) {
		glog.Errorf("connection closed: %v", err)
	}))
	srv := &server{Server: http.Server{Addr: listenAddr, Handler: mux}}
	glog.Infof("serving ws://%s/vfd", listenAddr)
	if err := framework.NewRunner().HandleSignals().Go(srv).Wait(); err != nil {
		glog.Errorf("vfdsim: %v", err)
	}
}
