// Package bridge implements the serial bridge agent: it relays raw
// bytes between a local serial port and the MQTT topics driven by
// pkg/transport/mqttbridge, so a flasher elsewhere on the network can
// program the attached board.
package bridge

import (
	"context"
	"io"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"

	"github.com/glencoe/ElasticNodeBitstreamFlasher/pkg/run"
)

// Agent pumps bytes between Port and the <Prefix>/tx, <Prefix>/rx
// topic pair. It relays verbatim and knows nothing about the framing.
type Agent struct {
	Client paho.Client
	Prefix string
	Port   io.ReadWriteCloser
}

// Run implements run.Runnable. It subscribes the tx topic, then pumps
// the serial port into the rx topic until the context is canceled or
// the port fails.
func (a *Agent) Run(ctx context.Context) error {
	txTopic, rxTopic := a.Prefix+"/tx", a.Prefix+"/rx"
	token := a.Client.Subscribe(txTopic, 0, func(_ paho.Client, msg paho.Message) {
		if _, err := a.Port.Write(msg.Payload()); err != nil {
			glog.Errorf("serial write: %v", err)
		}
	})
	if token.Wait() && token.Error() != nil {
		return token.Error()
	}
	defer a.Client.Unsubscribe(txTopic)
	glog.Infof("bridging %q", a.Prefix)

	return run.WithCloser(ctx, a.Port, func() error {
		buf := make([]byte, 256)
		for {
			n, err := a.Port.Read(buf)
			if err != nil {
				return err
			}
			if n == 0 {
				continue
			}
			payload := append([]byte(nil), buf[:n]...)
			t := a.Client.Publish(rxTopic, 0, false, payload)
			if t.Wait() && t.Error() != nil {
				return t.Error()
			}
		}
	})
}
