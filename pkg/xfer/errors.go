package xfer

import "fmt"

// RejectedError indicates the bootloader answered NAK for a packet
// while strict acknowledgement checking is enabled.
type RejectedError struct {
	BlockID uint16
}

// Error implements error.
func (e *RejectedError) Error() string {
	return fmt.Sprintf("packet %d rejected", e.BlockID)
}
