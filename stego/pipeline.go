package stego

import (
	"fmt"

	"github.com/go-audio/audio"

	"github.com/zaidanav/tucil2-if4020-audio-steganography/crypto"
)

// Options selects how a secret is embedded. Immutable per operation.
type Options struct {
	LSBBits     int  // low bits used per sample, 1..4
	Encrypt     bool // Vigenère-256 over header and payload
	RandomStart bool // key-seeded sample schedule instead of ascending
}

// SecretPayload is the hidden file: its raw bytes plus the original name
// and extension recovered on extract.
type SecretPayload struct {
	Name string
	Ext  string
	Data []byte
}

func validateOptions(opts Options) error {
	if opts.LSBBits < 1 || opts.LSBBits > 4 {
		return fmt.Errorf("%w: lsb bits must be 1..4, got %d", ErrUnsupportedFormat, opts.LSBBits)
	}
	return nil
}

func validateBuffer(buf *audio.IntBuffer) error {
	if buf == nil || len(buf.Data) == 0 {
		return fmt.Errorf("%w: empty sample buffer", ErrUnsupportedFormat)
	}
	if buf.Format == nil || buf.Format.NumChannels < 1 {
		return fmt.Errorf("%w: missing or invalid channel layout", ErrUnsupportedFormat)
	}
	switch bitDepthOf(buf) {
	case 8, 16, 24, 32:
		return nil
	default:
		return fmt.Errorf("%w: %d-bit samples", ErrUnsupportedFormat, buf.SourceBitDepth)
	}
}

func validateKey(key string) error {
	if err := crypto.ValidateKey(key); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return nil
}

// Embed hides the secret inside a copy of the cover buffer and reports
// the PSNR between cover and result. The cover itself is only read; on
// any failure no buffer is produced.
func Embed(cover *audio.IntBuffer, secret SecretPayload, key string, opts Options) (*audio.IntBuffer, float64, error) {
	if err := validateKey(key); err != nil {
		return nil, 0, err
	}
	if err := validateOptions(opts); err != nil {
		return nil, 0, err
	}
	if err := validateBuffer(cover); err != nil {
		return nil, 0, err
	}

	body := secret.Data
	cipher := crypto.NewExtendedVigenere(key)
	if opts.Encrypt {
		body = cipher.Encrypt(body)
	}

	header := &Header{
		Encrypted:  opts.Encrypt,
		Randomized: opts.RandomStart,
		LSBBits:    opts.LSBBits,
		Name:       secret.Name,
		Ext:        secret.Ext,
		PayloadLen: uint32(len(body)),
	}
	headerBytes, err := header.Serialize()
	if err != nil {
		return nil, 0, err
	}
	// The header travels under the same keystream as the payload, each
	// starting at keystream offset zero. Without this a wrong key would
	// still find a plaintext magic on non-randomized embeds.
	if opts.Encrypt {
		headerBytes = cipher.Encrypt(headerBytes)
	}

	headerBits := len(headerBytes) * 8
	payloadBits := len(body) * 8
	if err := CheckCapacity(len(cover.Data), opts.LSBBits, headerBits, payloadBits); err != nil {
		return nil, 0, err
	}

	var seed uint64
	if opts.RandomStart {
		seed = DeriveSeed(key)
	}
	plan, err := NewEmbeddingPlan(seed, len(cover.Data), opts.LSBBits, headerBits+payloadBits, opts.RandomStart)
	if err != nil {
		return nil, 0, err
	}

	bits := bytesToBits(append(headerBytes, body...))
	stego, err := WriteBits(cover, plan, bits)
	if err != nil {
		return nil, 0, err
	}

	return stego, PSNR(cover, stego), nil
}

// Extract recovers the secret from a stego buffer given only the key.
// The embedding parameters are auto-detected: lsb bits ascending 1..4,
// non-randomized before randomized, and for each candidate the header is
// tried both raw and key-deciphered. The first combination that parses a
// self-consistent header wins; its flags are authoritative from then on.
func Extract(stego *audio.IntBuffer, key string) (*SecretPayload, *Header, error) {
	if err := validateKey(key); err != nil {
		return nil, nil, err
	}
	if err := validateBuffer(stego); err != nil {
		return nil, nil, err
	}

	cipher := crypto.NewExtendedVigenere(key)
	sampleCount := len(stego.Data)

	for lsbBits := 1; lsbBits <= 4; lsbBits++ {
		for _, randomized := range []bool{false, true} {
			var seed uint64
			if randomized {
				seed = DeriveSeed(key)
			}

			capBits := CapacityBits(sampleCount, lsbBits)
			plan, err := NewEmbeddingPlan(seed, sampleCount, lsbBits, capBits, randomized)
			if err != nil {
				continue
			}

			headerBits := min(MaxHeaderSize*8, capBits)
			bits, err := ReadBits(stego, plan, headerBits)
			if err != nil {
				continue
			}
			raw := bitsToBytes(bits)

			header, headerLen := probeHeader(raw, cipher, lsbBits, randomized)
			if header == nil {
				continue
			}

			payloadBits := int(header.PayloadLen) * 8
			if err := CheckCapacity(sampleCount, lsbBits, headerLen*8, payloadBits); err != nil {
				continue
			}

			allBits, err := ReadBits(stego, plan, headerLen*8+payloadBits)
			if err != nil {
				continue
			}
			blob := bitsToBytes(allBits)
			payload := blob[headerLen : headerLen+int(header.PayloadLen)]
			if header.Encrypted {
				payload = cipher.Decrypt(payload)
			}

			return &SecretPayload{Name: header.Name, Ext: header.Ext, Data: payload}, header, nil
		}
	}

	return nil, nil, fmt.Errorf("%w: no parameter combination yields a valid header (wrong key or not a stego file)", ErrExtractionFailed)
}

// probeHeader tries to parse a header out of the raw LSB bytes, first as
// plaintext and then deciphered with the key. A parse is only accepted
// when the header agrees with how it was found: the encrypted flag must
// match the variant that parsed, and the randomized flag and lsb bits
// must match the probe that produced the read.
func probeHeader(raw []byte, cipher *crypto.ExtendedVigenere, lsbBits int, randomized bool) (*Header, int) {
	if header, n, err := ParseHeader(raw); err == nil {
		if !header.Encrypted && header.Randomized == randomized && header.LSBBits == lsbBits {
			return header, n
		}
	}
	if header, n, err := ParseHeader(cipher.Decrypt(raw)); err == nil {
		if header.Encrypted && header.Randomized == randomized && header.LSBBits == lsbBits {
			return header, n
		}
	}
	return nil, 0
}
