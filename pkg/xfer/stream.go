package xfer

import "io"

// Stream is the byte-level transport contract the protocol drives.
// Reads block until a byte arrives; bounded waiting, if any, is the
// transport's concern (a serial read timeout, or closing the port).
type Stream interface {
	io.Writer
	// ReadByte blocks until one byte is available.
	ReadByte() (byte, error)
	// ReadUntil consumes and discards bytes until delim is seen.
	ReadUntil(delim byte) error
}

type rwStream struct {
	rw  io.ReadWriter
	buf [1]byte
}

// NewStream adapts an io.ReadWriter into a Stream using single-byte
// blocking reads.
func NewStream(rw io.ReadWriter) Stream {
	return &rwStream{rw: rw}
}

func (s *rwStream) Write(p []byte) (int, error) {
	return s.rw.Write(p)
}

func (s *rwStream) ReadByte() (byte, error) {
	for {
		n, err := s.rw.Read(s.buf[:])
		if err != nil {
			return 0, err
		}
		if n > 0 {
			return s.buf[0], nil
		}
	}
}

func (s *rwStream) ReadUntil(delim byte) error {
	for {
		b, err := s.ReadByte()
		if err != nil {
			return err
		}
		if b == delim {
			return nil
		}
	}
}
