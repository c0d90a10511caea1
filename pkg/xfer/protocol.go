package xfer

import (
	"github.com/golang/glog"

	"github.com/glencoe/ElasticNodeBitstreamFlasher/pkg/proto"
)

// Mode records which acknowledgement class the bootloader signalled at
// handshake time.
type Mode int

const (
	// ModeNone means no handshake has completed yet.
	ModeNone Mode = iota
	// ModeCRC means the bootloader answered 'C'.
	ModeCRC
	// ModeChecksum means the bootloader answered NAK.
	ModeChecksum
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case ModeCRC:
		return "crc"
	case ModeChecksum:
		return "checksum"
	}
	return "none"
}

// Protocol drives the control-character handshake and per-packet
// acknowledgement over a Stream. It is strictly sequential: one write,
// then one blocking wait for the reply, never both in flight.
type Protocol struct {
	stream Stream
	mode   Mode
}

// NewProtocol creates a Protocol owning the stream for the session.
func NewProtocol(stream Stream) *Protocol {
	return &Protocol{stream: stream}
}

// Mode gets the mode observed at the last handshake.
func (p *Protocol) Mode() Mode {
	return p.mode
}

// StartTransmission opens a session and blocks until the bootloader
// signals its mode with 'C' or NAK.
func (p *Protocol) StartTransmission() error {
	if _, err := p.stream.Write([]byte{proto.StartTransmission}); err != nil {
		return err
	}
	ch, err := p.waitFor(proto.ModeC, proto.NAK)
	if err != nil {
		return err
	}
	if ch == proto.ModeC {
		p.mode = ModeCRC
	} else {
		p.mode = ModeChecksum
	}
	glog.V(2).Infof("handshake done, mode %v", p.mode)
	return nil
}

// SendPacket writes one packet and blocks until the bootloader answers
// ACK or NAK. It reports false on NAK and does not retry; that decision
// is the caller's.
func (p *Protocol) SendPacket(pkt *proto.Packet) (bool, error) {
	if _, err := pkt.WriteTo(p.stream); err != nil {
		return false, err
	}
	ch, err := p.waitFor(proto.ACK, proto.NAK)
	if err != nil {
		return false, err
	}
	return ch == proto.ACK, nil
}

// StopTransmission terminates the session, discarding everything the
// bootloader sends until the final ACK.
func (p *Protocol) StopTransmission() error {
	if _, err := p.stream.Write([]byte{proto.EOT}); err != nil {
		return err
	}
	return p.stream.ReadUntil(proto.ACK)
}

func (p *Protocol) waitFor(chars ...byte) (byte, error) {
	for {
		b, err := p.stream.ReadByte()
		if err != nil {
			return 0, err
		}
		for _, c := range chars {
			if b == c {
				return b, nil
			}
		}
	}
}
