package proto

import (
	"encoding/binary"
	"io"
)

// Packet frames one chunk of payload for the wire.
// Block 0 is reserved for transfer metadata, blocks 1..N carry content.
// The block id is write-only: it exists to be encoded, never inspected,
// so the type exposes no accessor for it.
type Packet struct {
	blockID uint16
	payload []byte
}

// NewPacket creates a packet. The payload must not exceed MaxPayloadSize
// bytes; the caller owns that contract, it is not checked here.
func NewPacket(blockID uint16, payload []byte) *Packet {
	return &Packet{blockID: blockID, payload: payload}
}

// Checksum computes the payload checksum: sum of bytes modulo 256.
func Checksum(payload []byte) byte {
	var sum byte
	for _, b := range payload {
		sum += b
	}
	return sum
}

// Bytes returns encoded bytes for sending.
func (p *Packet) Bytes() []byte {
	b := make([]byte, headerSize+len(p.payload)+trailerSize)
	b[0] = SOH
	binary.BigEndian.PutUint16(b[1:], p.blockID)
	binary.BigEndian.PutUint16(b[3:], uint16(len(p.payload)))
	copy(b[headerSize:], p.payload)
	b[len(b)-1] = Checksum(p.payload)
	return b
}

// WriteTo writes encoded bytes.
func (p *Packet) WriteTo(w io.Writer) (n int, err error) {
	head := make([]byte, headerSize)
	head[0] = SOH
	binary.BigEndian.PutUint16(head[1:], p.blockID)
	binary.BigEndian.PutUint16(head[3:], uint16(len(p.payload)))
	if n, err = w.Write(head); err != nil {
		return
	}
	if len(p.payload) > 0 {
		var n1 int
		n1, err = w.Write(p.payload)
		if n += n1; err != nil {
			return
		}
	}
	var n1 int
	n1, err = w.Write([]byte{Checksum(p.payload)})
	n += n1
	return
}

// Decode parses one encoded frame back into block id and payload.
// The returned payload does not alias the input.
func Decode(frame []byte) (blockID uint16, payload []byte, err error) {
	if len(frame) < headerSize+trailerSize {
		return 0, nil, ErrFrameTooShort
	}
	if frame[0] != SOH {
		return 0, nil, ErrBadHeader
	}
	blockID = binary.BigEndian.Uint16(frame[1:3])
	length := int(binary.BigEndian.Uint16(frame[3:5]))
	if len(frame) != headerSize+length+trailerSize {
		return 0, nil, ErrBadLength
	}
	body := frame[headerSize : headerSize+length]
	if Checksum(body) != frame[len(frame)-1] {
		return 0, nil, ErrBadChecksum
	}
	payload = make([]byte, length)
	copy(payload, body)
	return blockID, payload, nil
}
