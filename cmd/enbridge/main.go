package main

import (
	"context"
	"flag"
	"log"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/glencoe/ElasticNodeBitstreamFlasher/pkg/bridge"
	"github.com/glencoe/ElasticNodeBitstreamFlasher/pkg/run"
	"github.com/glencoe/ElasticNodeBitstreamFlasher/pkg/transport/mqttbridge"
	"github.com/glencoe/ElasticNodeBitstreamFlasher/pkg/transport/serialport"
)

//go-build: CGO_ENABLED=0

var (
	brokerURL = flag.String("broker", "mqtt://localhost:1883/enflash/node-1", "Broker URL with topic prefix.")
	device    = flag.String("device", "/dev/ttyUSB0", "Serial device.")
	baud      = flag.Int("baud", serialport.DefaultBaudRate, "Baud rate.")
)

func main() {
	flag.Parse()
	opts, prefix, err := mqttbridge.ClientOptionsFromURL(*brokerURL)
	if err != nil {
		log.Fatalln(err)
	}
	if prefix == "" {
		log.Fatalln("topic prefix required in broker URL")
	}
	port, err := serialport.Open(*device, serialport.Options{BaudRate: *baud})
	if err != nil {
		log.Fatalln(err)
	}
	client := paho.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalln(token.Error())
	}
	defer client.Disconnect(250)

	agent := &bridge.Agent{Client: client, Prefix: prefix, Port: port}
	runner := run.NewRunner(context.Background()).HandleSignals()
	if err := runner.Go(agent).Wait(); err != nil {
		log.Fatalln(err)
	}
}
