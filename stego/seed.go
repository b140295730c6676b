// Package stego implements LSB steganography on PCM sample buffers:
// seed derivation, capacity accounting, the pseudorandom embedding
// schedule, the header format, the bit-plane codec and the embed/extract
// pipeline with parameter auto-detection.
package stego

import (
	"crypto/sha256"
	"encoding/binary"
)

// DeriveSeed turns a key into the deterministic seed that drives the
// randomized embedding schedule: the first 8 bytes of SHA-256 over the
// key's raw bytes, read big-endian. Equal keys always yield equal seeds.
func DeriveSeed(key string) uint64 {
	hash := sha256.Sum256([]byte(key))
	return binary.BigEndian.Uint64(hash[:8])
}
