package stego

import "errors"

// Error kinds reported by the embedding and extraction pipeline. Handlers
// match these with errors.Is to pick a response.
var (
	// ErrInsufficientCapacity means the header plus payload need more LSB
	// slots than the cover provides. Raised before any sample is touched.
	ErrInsufficientCapacity = errors.New("insufficient capacity")

	// ErrInvalidHeader means the byte stream read from the sample LSBs does
	// not form a valid header (wrong magic, bad lengths, out-of-range fields).
	ErrInvalidHeader = errors.New("invalid stego header")

	// ErrExtractionFailed means no parameter combination in the auto-detect
	// search produced a valid header. Wrong key and plain non-stego audio are
	// indistinguishable here.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrInvalidKey means the key is empty or exceeds the length bound.
	ErrInvalidKey = errors.New("invalid key")

	// ErrUnsupportedFormat means the sample buffer has a bit depth or channel
	// layout the codec does not handle.
	ErrUnsupportedFormat = errors.New("unsupported sample format")
)
