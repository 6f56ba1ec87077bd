package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"log"

	"github.com/golang/glog"

	"github.com/robotalks/vfd.go/pkg/env"
	"github.com/robotalks/vfd.go/pkg/framework"
	"github.com/robotalks/vfd.go/pkg/host/mqtt"
)

func init() {
	env.SetupFlags()
}

func main() {
	flag.Parse()
	defer glog.Flush()

	conf := env.MustNewConfig()
	if conf.MQTTBrokerURL == "" {
		log.Fatalln("MQTT broker URL is required")
	}
	dev := conf.MustOpen()
	defer dev.Close()

	host, err := mqtt.NewHost(conf.MQTTBrokerURL, conf.DisplayID(), dev)
	if err != nil {
		dev.Close()
		log.Fatalln(err)
	}
	runner := framework.NewRunner().HandleSignals()
	if err := runner.Go(host).Wait(); err != nil {
		glog.Errorf("vfdd: %v", err)
	}
}
