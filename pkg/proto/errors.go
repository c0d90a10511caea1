package proto

import "errors"

var (
	// ErrFrameTooShort indicates the frame can't hold a header and checksum.
	ErrFrameTooShort = errors.New("frame too short")
	// ErrBadHeader indicates the frame doesn't start with SOH.
	ErrBadHeader = errors.New("bad frame header")
	// ErrBadLength indicates the payload length field disagrees with the
	// frame size.
	ErrBadLength = errors.New("bad payload length")
	// ErrBadChecksum indicates the checksum doesn't match the payload.
	ErrBadChecksum = errors.New("bad checksum")
)
