package stego

import (
	"math"

	"github.com/go-audio/audio"
)

// PSNR measures the distortion the embedding introduced, in dB:
// 10·log10(MAX²/MSE) with MAX the largest magnitude the sample width can
// represent (32767 for 16-bit). Returns +Inf for identical buffers and 0
// when the shapes do not match. Informational only; never gates embedding.
func PSNR(original, modified *audio.IntBuffer) float64 {
	if original == nil || modified == nil {
		return 0.0
	}
	if len(original.Data) != len(modified.Data) || len(original.Data) == 0 {
		return 0.0
	}

	var mse float64
	for i := range original.Data {
		diff := float64(original.Data[i] - modified.Data[i])
		mse += diff * diff
	}
	mse /= float64(len(original.Data))

	if mse == 0 {
		return math.Inf(1)
	}

	max := float64(int(1)<<(bitDepthOf(original)-1) - 1)
	return 10 * math.Log10(max*max/mse)
}

func bitDepthOf(buf *audio.IntBuffer) int {
	if buf.SourceBitDepth == 0 {
		return 16
	}
	return buf.SourceBitDepth
}
