package stego

import (
	"math"
	"testing"
)

func TestPSNRIdenticalIsInfinite(t *testing.T) {
	buf := testBuffer(500)
	if got := PSNR(buf, buf); !math.IsInf(got, 1) {
		t.Errorf("PSNR(x, x) = %f, want +Inf", got)
	}
}

func TestPSNRDecreasesWithDistortion(t *testing.T) {
	original := testBuffer(1000)

	slight := cloneBuffer(original)
	for i := 0; i < 10; i++ {
		slight.Data[i] ^= 1
	}

	heavy := cloneBuffer(original)
	for i := 0; i < 500; i++ {
		heavy.Data[i] += 100
	}

	slightPSNR := PSNR(original, slight)
	heavyPSNR := PSNR(original, heavy)

	if math.IsInf(slightPSNR, 1) || math.IsInf(heavyPSNR, 1) {
		t.Fatal("distorted buffers must have finite PSNR")
	}
	if slightPSNR <= heavyPSNR {
		t.Errorf("slight distortion PSNR %.2f should exceed heavy distortion PSNR %.2f", slightPSNR, heavyPSNR)
	}
	if slightPSNR < 60 {
		t.Errorf("flipping 10 LSBs of 1000 samples gives %.2f dB, expected well above 60", slightPSNR)
	}
}

func TestPSNRShapeMismatch(t *testing.T) {
	if got := PSNR(testBuffer(10), testBuffer(11)); got != 0 {
		t.Errorf("shape mismatch PSNR = %f, want 0", got)
	}
	if got := PSNR(nil, testBuffer(10)); got != 0 {
		t.Errorf("nil buffer PSNR = %f, want 0", got)
	}
}
