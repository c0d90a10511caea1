// Package proto implements the framed upload protocol spoken by the
// Elastic Node bootloader.
package proto

// The framing is inspired by XMODEM, except the two bytes following the
// block id carry the payload length instead of the block number's
// complement.
//
// Frame layout (multi-byte fields big-endian):
//
//	SOH(1) | block id(2) | payload length(2) | payload(0..256) | checksum(1)
//
// The checksum is the sum of payload bytes modulo 256.
//
// Producer: flasher (this module)
// Consumer: Elastic Node bootloader
