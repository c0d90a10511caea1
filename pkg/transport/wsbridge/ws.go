// Package wsbridge flashes a board attached to a remote serial bridge
// agent over a websocket.
package wsbridge

import (
	"io"

	"golang.org/x/net/websocket"
)

// Dial connects the websocket endpoint and returns it as a raw byte
// stream. The bridge agent is expected to relay frames verbatim to its
// local serial port.
func Dial(wsURL, origin string) (io.ReadWriteCloser, error) {
	if origin == "" {
		origin = "http://localhost/"
	}
	conn, err := websocket.Dial(wsURL, "", origin)
	if err != nil {
		return nil, err
	}
	conn.PayloadType = websocket.BinaryFrame
	return conn, nil
}
