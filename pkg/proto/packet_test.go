package proto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChecksum(t *testing.T) {
	require.Equal(t, byte(0), Checksum(nil))
	require.Equal(t, byte(6), Checksum([]byte{1, 2, 3}))
	// wraps modulo 256
	require.Equal(t, byte(1), Checksum([]byte{0xff, 0x02}))
	require.Equal(t, byte(0xfe), Checksum([]byte{0xff, 0xff}))
}

func TestPacket(t *testing.T) {
	testCases := []struct {
		name    string
		blockID uint16
		payload []byte
		expect  []byte
	}{
		{"empty payload", 0, nil, []byte{0x01, 0, 0, 0, 0, 0}},
		{"single byte", 1, []byte{0x42}, []byte{0x01, 0, 1, 0, 1, 0x42, 0x42}},
		{"metadata", 0,
			[]byte{0, 0, 0, 3, 0, 0, 0, 3},
			[]byte{0x01, 0, 0, 0, 8, 0, 0, 0, 3, 0, 0, 0, 3, 6}},
		{"big endian block id", 0x1234, []byte{0xff},
			[]byte{0x01, 0x12, 0x34, 0, 1, 0xff, 0xff}},
		{"checksum wraps", 2, []byte{0x80, 0x81},
			[]byte{0x01, 0, 2, 0, 2, 0x80, 0x81, 0x01}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pkt := NewPacket(tc.blockID, tc.payload)
			require.Equal(t, tc.expect, pkt.Bytes())
			var buf bytes.Buffer
			n, err := pkt.WriteTo(&buf)
			require.NoError(t, err)
			require.Equal(t, tc.expect, buf.Bytes())
			require.Equal(t, len(tc.expect), n)

			blockID, payload, err := Decode(tc.expect)
			require.NoError(t, err)
			require.Equal(t, tc.blockID, blockID)
			if len(tc.payload) > 0 {
				require.Equal(t, tc.payload, payload)
			} else {
				require.Empty(t, payload)
			}
		})
	}
}

func TestPacketMaxPayload(t *testing.T) {
	payload := make([]byte, MaxPayloadSize)
	for i := range payload {
		payload[i] = byte(i)
	}
	frame := NewPacket(7, payload).Bytes()
	require.Len(t, frame, headerSize+MaxPayloadSize+trailerSize)
	// 256 must survive the 16-bit length field
	require.Equal(t, []byte{0x01, 0x00}, frame[3:5])

	blockID, decoded, err := Decode(frame)
	require.NoError(t, err)
	require.Equal(t, uint16(7), blockID)
	require.Equal(t, payload, decoded)
}

func TestDecodeErrors(t *testing.T) {
	good := NewPacket(1, []byte{1, 2, 3}).Bytes()

	testCases := []struct {
		name  string
		frame []byte
		err   error
	}{
		{"too short", []byte{0x01, 0, 1, 0, 0}, ErrFrameTooShort},
		{"no SOH", append([]byte{0x02}, good[1:]...), ErrBadHeader},
		{"length mismatch", append(good[:len(good):len(good)], 0xaa), ErrBadLength},
		{"corrupt payload", func() []byte {
			f := append([]byte(nil), good...)
			f[5] ^= 0xff
			return f
		}(), ErrBadChecksum},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Decode(tc.frame)
			require.Equal(t, tc.err, err)
		})
	}
}
