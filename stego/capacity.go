package stego

import "fmt"

// CapacityBits returns how many bits fit in sampleCount samples when each
// sample carries lsbBits of hidden data.
func CapacityBits(sampleCount, lsbBits int) int {
	return sampleCount * lsbBits
}

// CheckCapacity verifies that a header of headerBits plus a payload of
// payloadBits fit inside the cover. Boundary equality is allowed. Must
// succeed before any sample is modified; embedding is all-or-nothing.
func CheckCapacity(sampleCount, lsbBits, headerBits, payloadBits int) error {
	capacity := CapacityBits(sampleCount, lsbBits)
	needed := headerBits + payloadBits
	if needed > capacity {
		return fmt.Errorf("%w: need %d bits, cover holds %d bits (%d samples × %d LSB)",
			ErrInsufficientCapacity, needed, capacity, sampleCount, lsbBits)
	}
	return nil
}
