// Package serialport opens the serial link to an Elastic Node board.
package serialport

import (
	"io"
	"time"

	"github.com/golang/glog"
	"go.bug.st/serial"
)

// DefaultBaudRate is used when no baud rate is configured.
const DefaultBaudRate = 115200

// Options configure the serial link.
type Options struct {
	// BaudRate defaults to DefaultBaudRate.
	BaudRate int
	// ReadTimeout bounds a single blocking read. Zero keeps reads
	// blocking forever, which is the protocol's contract; a timed-out
	// read yields zero bytes and is simply retried by the stream layer.
	ReadTimeout time.Duration
}

// Open opens the serial device as a raw byte stream.
func Open(device string, opts Options) (io.ReadWriteCloser, error) {
	baud := opts.BaudRate
	if baud == 0 {
		baud = DefaultBaudRate
	}
	port, err := serial.Open(device, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, err
	}
	if opts.ReadTimeout > 0 {
		if err = port.SetReadTimeout(opts.ReadTimeout); err != nil {
			port.Close()
			return nil, err
		}
	}
	glog.V(1).Infof("opened %s at %d baud", device, baud)
	return port, nil
}
