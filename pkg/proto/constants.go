package proto

// Control characters exchanged with the bootloader.
const (
	// SOH starts every frame header.
	SOH byte = 0x01
	// EOT terminates a transmission session.
	EOT byte = 0x04
	// ACK acknowledges a packet.
	ACK byte = 0x06
	// NAK rejects a packet, or selects checksum mode at handshake.
	NAK byte = 0x15
	// CAN is defined by the bootloader but never sent by the flasher.
	CAN byte = 0x18
	// ModeC selects CRC mode at handshake.
	ModeC byte = 'C'
	// StartTransmission opens a transmission session.
	StartTransmission byte = '1'
)

// MaxPayloadSize is the maximum number of payload bytes per packet.
const MaxPayloadSize = 256

const (
	headerSize  = 5 // SOH + block id + payload length
	trailerSize = 1 // checksum
)
