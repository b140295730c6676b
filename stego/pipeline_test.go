package stego

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/go-audio/audio"
)

func coverBuffer(n int) *audio.IntBuffer {
	data := make([]int, n)
	for i := range data {
		// 440 Hz-ish sine at 16-bit amplitude
		data[i] = int(20000 * math.Sin(float64(i)*0.0627))
	}
	return &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: 44100},
		Data:           data,
		SourceBitDepth: 16,
	}
}

func TestEmbedExtractAllParameterCombinations(t *testing.T) {
	cover := coverBuffer(4000)
	secret := SecretPayload{Name: "notes", Ext: ".txt", Data: []byte("auto-detect me across all eight combinations")}
	key := "RAHASIA"

	for lsbBits := 1; lsbBits <= 4; lsbBits++ {
		for _, encrypt := range []bool{false, true} {
			for _, random := range []bool{false, true} {
				opts := Options{LSBBits: lsbBits, Encrypt: encrypt, RandomStart: random}

				stegoBuf, psnr, err := Embed(cover, secret, key, opts)
				if err != nil {
					t.Fatalf("Embed(%+v): %v", opts, err)
				}
				if psnr < 40 {
					t.Errorf("Embed(%+v): PSNR %.2f unexpectedly low", opts, psnr)
				}

				got, header, err := Extract(stegoBuf, key)
				if err != nil {
					t.Fatalf("Extract after Embed(%+v): %v", opts, err)
				}
				if !bytes.Equal(got.Data, secret.Data) || got.Name != secret.Name || got.Ext != secret.Ext {
					t.Fatalf("Extract(%+v): recovered %q %s%s", opts, got.Data, got.Name, got.Ext)
				}
				if header.LSBBits != lsbBits || header.Encrypted != encrypt || header.Randomized != random {
					t.Errorf("detected parameters %+v do not match embed options %+v", header, opts)
				}
			}
		}
	}
}

func TestEmbedConcreteScenario(t *testing.T) {
	// 1000 mono 16-bit samples, nLsb=2: capacity 2000 bits = 250 bytes,
	// comfortably above header + 5 secret bytes
	cover := coverBuffer(1000)
	secret := SecretPayload{Name: "secret", Ext: ".txt", Data: []byte("HELLO")}
	opts := Options{LSBBits: 2, Encrypt: true, RandomStart: false}

	stegoBuf, _, err := Embed(cover, secret, "RAHASIA", opts)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	got, _, err := Extract(stegoBuf, "RAHASIA")
	if err != nil {
		t.Fatalf("Extract with correct key: %v", err)
	}
	if string(got.Data) != "HELLO" {
		t.Errorf("recovered %q, want HELLO", got.Data)
	}

	if _, _, err := Extract(stegoBuf, "WRONG"); !errors.Is(err, ErrExtractionFailed) {
		t.Errorf("wrong key: got %v, want ErrExtractionFailed", err)
	}
}

func TestEmbedInsufficientCapacity(t *testing.T) {
	cover := coverBuffer(10) // 10 bits at 1 LSB, far below any header
	secret := SecretPayload{Name: "s", Ext: ".b", Data: []byte("x")}

	buf, _, err := Embed(cover, secret, "key", Options{LSBBits: 1})
	if !errors.Is(err, ErrInsufficientCapacity) {
		t.Fatalf("got %v, want ErrInsufficientCapacity", err)
	}
	if buf != nil {
		t.Error("buffer produced despite capacity failure")
	}
}

func TestEmbedDoesNotMutateCover(t *testing.T) {
	cover := coverBuffer(2000)
	before := make([]int, len(cover.Data))
	copy(before, cover.Data)

	_, _, err := Embed(cover, SecretPayload{Name: "f", Ext: ".txt", Data: []byte("payload")}, "key", Options{LSBBits: 3, Encrypt: true, RandomStart: true})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	for i := range before {
		if cover.Data[i] != before[i] {
			t.Fatalf("cover sample %d mutated", i)
		}
	}
}

func TestExtractWrongKeyCorpus(t *testing.T) {
	cover := coverBuffer(4000)
	secret := SecretPayload{Name: "doc", Ext: ".pdf", Data: []byte("wrong keys must not recover this")}
	key := "CORRECT-KEY"

	// Every combination where the key influences the wire data
	combos := []Options{
		{LSBBits: 1, Encrypt: true, RandomStart: false},
		{LSBBits: 2, Encrypt: true, RandomStart: true},
		{LSBBits: 3, Encrypt: false, RandomStart: true},
		{LSBBits: 4, Encrypt: true, RandomStart: true},
	}
	wrongKeys := []string{"WRONG", "correct-key", "CORRECT-KEY ", "x"}

	for _, opts := range combos {
		stegoBuf, _, err := Embed(cover, secret, key, opts)
		if err != nil {
			t.Fatalf("Embed(%+v): %v", opts, err)
		}

		if got, _, err := Extract(stegoBuf, key); err != nil || !bytes.Equal(got.Data, secret.Data) {
			t.Fatalf("correct key must succeed for %+v: %v", opts, err)
		}

		for _, wrong := range wrongKeys {
			if _, _, err := Extract(stegoBuf, wrong); err == nil {
				t.Errorf("key %q accepted for %+v", wrong, opts)
			}
		}
	}
}

func TestExtractPlainBufferFails(t *testing.T) {
	if _, _, err := Extract(coverBuffer(3000), "anykey"); !errors.Is(err, ErrExtractionFailed) {
		t.Errorf("got %v, want ErrExtractionFailed", err)
	}
}

func TestEmbedValidatesInputs(t *testing.T) {
	cover := coverBuffer(1000)
	secret := SecretPayload{Name: "a", Ext: ".b", Data: []byte("x")}

	if _, _, err := Embed(cover, secret, "", Options{LSBBits: 1}); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("empty key: got %v, want ErrInvalidKey", err)
	}
	if _, _, err := Embed(cover, secret, "01234567890123456789012345", Options{LSBBits: 1}); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("oversized key: got %v, want ErrInvalidKey", err)
	}
	if _, _, err := Embed(cover, secret, "k", Options{LSBBits: 0}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("lsb 0: got %v, want ErrUnsupportedFormat", err)
	}
	if _, _, err := Embed(cover, secret, "k", Options{LSBBits: 5}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("lsb 5: got %v, want ErrUnsupportedFormat", err)
	}

	bad := coverBuffer(100)
	bad.SourceBitDepth = 12
	if _, _, err := Embed(bad, secret, "k", Options{LSBBits: 1}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("12-bit samples: got %v, want ErrUnsupportedFormat", err)
	}

	if _, _, err := Embed(&audio.IntBuffer{}, secret, "k", Options{LSBBits: 1}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("empty buffer: got %v, want ErrUnsupportedFormat", err)
	}
}

func TestEmbedStereoCover(t *testing.T) {
	cover := coverBuffer(2000)
	cover.Format.NumChannels = 2
	secret := SecretPayload{Name: "st", Ext: ".bin", Data: []byte{1, 2, 3, 4}}

	stegoBuf, _, err := Embed(cover, secret, "key", Options{LSBBits: 2, RandomStart: true})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if stegoBuf.Format.NumChannels != 2 {
		t.Error("channel layout not preserved")
	}

	got, _, err := Extract(stegoBuf, "key")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !bytes.Equal(got.Data, secret.Data) {
		t.Errorf("recovered %v, want %v", got.Data, secret.Data)
	}
}
