package xfer

import (
	"context"
	"encoding/binary"

	"github.com/golang/glog"

	"github.com/glencoe/ElasticNodeBitstreamFlasher/pkg/proto"
)

// Transmitter orchestrates one full bitstream upload.
type Transmitter struct {
	// StrictAck aborts the upload when the bootloader rejects a packet.
	// The default keeps streaming regardless of NAKs, matching the
	// legacy flasher.
	StrictAck bool

	protocol *Protocol
}

// NewTransmitter creates a Transmitter over the protocol.
func NewTransmitter(p *Protocol) *Transmitter {
	return &Transmitter{protocol: p}
}

// PacketCount calculates the number of body packets needed to carry
// length bytes of content.
func PacketCount(length int) uint32 {
	count := length / proto.MaxPayloadSize
	if length%proto.MaxPayloadSize != 0 {
		count++
	}
	return uint32(count)
}

// Upload transfers data to the given address on the device: handshake,
// one metadata packet (address and packet count), the content in
// 256-byte chunks, then session termination. The context is only
// checked between packets; a blocked read is unblocked by closing the
// underlying transport.
func (t *Transmitter) Upload(ctx context.Context, data []byte, address uint32) error {
	count := PacketCount(len(data))
	glog.Infof("starting transmission: %d bytes, %d packets, address %#x",
		len(data), count, address)
	if err := t.protocol.StartTransmission(); err != nil {
		return err
	}
	if err := t.sendMetadata(address, count); err != nil {
		return err
	}
	for i := uint32(0); i < count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lo := int(i) * proto.MaxPayloadSize
		hi := lo + proto.MaxPayloadSize
		if hi > len(data) {
			hi = len(data)
		}
		glog.V(1).Infof("sending packet %d of %d", i+1, count)
		acked, err := t.protocol.SendPacket(proto.NewPacket(uint16(i+1), data[lo:hi]))
		if err != nil {
			return err
		}
		if !acked && t.StrictAck {
			return &RejectedError{BlockID: uint16(i + 1)}
		}
	}
	if err := t.protocol.StopTransmission(); err != nil {
		return err
	}
	glog.Info("transmission done")
	return nil
}

func (t *Transmitter) sendMetadata(address, count uint32) error {
	payload := make([]byte, 8)
	binary.BigEndian.PutUint32(payload, address)
	binary.BigEndian.PutUint32(payload[4:], count)
	acked, err := t.protocol.SendPacket(proto.NewPacket(0, payload))
	if err != nil {
		return err
	}
	if !acked && t.StrictAck {
		return &RejectedError{BlockID: 0}
	}
	return nil
}
