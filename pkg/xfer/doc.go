// Package xfer drives bitstream uploads to the Elastic Node bootloader
// over a byte-stream transport.
package xfer

// Control flow: Transmitter -> Protocol -> Stream.
//
// The Transmitter slices a bitstream into fixed-size chunks, the
// Protocol frames and sends each chunk and blocks for the single-byte
// acknowledgement. Everything is strictly sequential over a half-duplex
// channel: one transmitter, one transfer at a time.
