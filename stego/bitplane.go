package stego

import (
	"fmt"

	"github.com/go-audio/audio"
)

// WriteBits returns a copy of src with the message bits written into the
// LSB slots the plan visits, one bit per step. The input buffer is never
// modified.
func WriteBits(src *audio.IntBuffer, plan *EmbeddingPlan, bits []byte) (*audio.IntBuffer, error) {
	if len(bits) > plan.Steps() {
		return nil, fmt.Errorf("%w: plan covers %d bits, got %d", ErrInsufficientCapacity, plan.Steps(), len(bits))
	}

	out := cloneBuffer(src)
	for i, bit := range bits {
		sample, slot := plan.Position(i)
		out.Data[sample] = out.Data[sample]&^(1<<slot) | int(bit&1)<<slot
	}
	return out, nil
}

// ReadBits extracts bitCount bits from the buffer, visiting slots in
// exactly the order the plan was generated. The order encodes both the
// random schedule and the header-before-payload structure, so it must
// mirror WriteBits step for step.
func ReadBits(buf *audio.IntBuffer, plan *EmbeddingPlan, bitCount int) ([]byte, error) {
	if bitCount > plan.Steps() {
		return nil, fmt.Errorf("%w: plan covers %d bits, requested %d", ErrInsufficientCapacity, plan.Steps(), bitCount)
	}

	bits := make([]byte, bitCount)
	for i := range bits {
		sample, slot := plan.Position(i)
		bits[i] = byte(buf.Data[sample]>>slot) & 1
	}
	return bits, nil
}

// bytesToBits expands bytes into single-bit values, MSB first per byte.
func bytesToBits(data []byte) []byte {
	bits := make([]byte, 0, len(data)*8)
	for _, b := range data {
		for i := 7; i >= 0; i-- {
			bits = append(bits, (b>>i)&1)
		}
	}
	return bits
}

// bitsToBytes packs bits back into bytes, dropping a trailing partial
// byte. Payload lengths are exact in the header so nothing of value is
// ever in the remainder.
func bitsToBytes(bits []byte) []byte {
	out := make([]byte, 0, len(bits)/8)
	for i := 0; i+8 <= len(bits); i += 8 {
		var b byte
		for j := 0; j < 8; j++ {
			b = b<<1 | bits[i+j]&1
		}
		out = append(out, b)
	}
	return out
}

func cloneBuffer(src *audio.IntBuffer) *audio.IntBuffer {
	out := &audio.IntBuffer{
		Data:           make([]int, len(src.Data)),
		SourceBitDepth: src.SourceBitDepth,
	}
	copy(out.Data, src.Data)
	if src.Format != nil {
		f := *src.Format
		out.Format = &f
	}
	return out
}
