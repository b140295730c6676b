package stego

import (
	"encoding/binary"
	"fmt"
)

// Wire layout, stable across implementations:
//
//	magic "STEG" (4) · flags (1) · lsbBits (1) ·
//	nameLen (1) · name · extLen (1) · ext · payloadLen (4, big-endian)
//
// Flags: bit 0 = encrypted, bit 1 = randomized; the remaining bits must
// be zero. The magic match is the sole gate that tells valid stego data
// apart from noise during the extraction search.
const headerMagic = "STEG"

const (
	flagEncrypted  = 1 << 0
	flagRandomized = 1 << 1
	flagsReserved  = ^byte(flagEncrypted | flagRandomized)
)

// MaxHeaderSize is the serialized size with maximal name and extension.
const MaxHeaderSize = 4 + 1 + 1 + 1 + 255 + 1 + 255 + 4

// Header carries the metadata embedded ahead of the payload.
type Header struct {
	Encrypted  bool
	Randomized bool
	LSBBits    int
	Name       string
	Ext        string
	PayloadLen uint32
}

// Size returns the serialized length in bytes.
func (h *Header) Size() int {
	return 4 + 1 + 1 + 1 + len(h.Name) + 1 + len(h.Ext) + 4
}

// Serialize encodes the header into its wire form.
func (h *Header) Serialize() ([]byte, error) {
	if h.LSBBits < 1 || h.LSBBits > 4 {
		return nil, fmt.Errorf("%w: lsb bits %d out of range", ErrInvalidHeader, h.LSBBits)
	}
	if len(h.Name) > 255 {
		return nil, fmt.Errorf("%w: name longer than 255 bytes", ErrInvalidHeader)
	}
	if len(h.Ext) > 255 {
		return nil, fmt.Errorf("%w: extension longer than 255 bytes", ErrInvalidHeader)
	}

	var flags byte
	if h.Encrypted {
		flags |= flagEncrypted
	}
	if h.Randomized {
		flags |= flagRandomized
	}

	buf := make([]byte, 0, h.Size())
	buf = append(buf, headerMagic...)
	buf = append(buf, flags, byte(h.LSBBits), byte(len(h.Name)))
	buf = append(buf, h.Name...)
	buf = append(buf, byte(len(h.Ext)))
	buf = append(buf, h.Ext...)
	buf = binary.BigEndian.AppendUint32(buf, h.PayloadLen)
	return buf, nil
}

// ParseHeader decodes a header from the front of data and returns it along
// with the number of bytes it occupies. Rejects anything whose magic,
// reserved flag bits, lsbBits range or declared lengths do not hold up.
func ParseHeader(data []byte) (*Header, int, error) {
	if len(data) < 7 {
		return nil, 0, fmt.Errorf("%w: %d bytes is too short", ErrInvalidHeader, len(data))
	}
	if string(data[:4]) != headerMagic {
		return nil, 0, fmt.Errorf("%w: magic mismatch", ErrInvalidHeader)
	}

	flags := data[4]
	if flags&flagsReserved != 0 {
		return nil, 0, fmt.Errorf("%w: reserved flag bits set", ErrInvalidHeader)
	}
	lsbBits := int(data[5])
	if lsbBits < 1 || lsbBits > 4 {
		return nil, 0, fmt.Errorf("%w: lsb bits %d out of range", ErrInvalidHeader, lsbBits)
	}

	off := 6
	nameLen := int(data[off])
	off++
	if off+nameLen+1 > len(data) {
		return nil, 0, fmt.Errorf("%w: name runs past header bytes", ErrInvalidHeader)
	}
	name := string(data[off : off+nameLen])
	off += nameLen

	extLen := int(data[off])
	off++
	if off+extLen+4 > len(data) {
		return nil, 0, fmt.Errorf("%w: extension runs past header bytes", ErrInvalidHeader)
	}
	ext := string(data[off : off+extLen])
	off += extLen

	payloadLen := binary.BigEndian.Uint32(data[off : off+4])
	off += 4

	return &Header{
		Encrypted:  flags&flagEncrypted != 0,
		Randomized: flags&flagRandomized != 0,
		LSBBits:    lsbBits,
		Name:       name,
		Ext:        ext,
		PayloadLen: payloadLen,
	}, off, nil
}
