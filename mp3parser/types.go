package mp3parser

// ID3v2Header represents ID3v2 tag header
type ID3v2Header struct {
	Version [2]byte
	Flags   byte
	Size    int
}

// FrameHeader represents a parsed MP3 frame header
type FrameHeader struct {
	VersionID     int
	Layer         int
	ProtectionBit bool
	Bitrate       int
	SampleRate    int
	Padding       bool
	ChannelMode   int
	FrameLength   int
}

// SamplesPerFrame is fixed for MPEG-1 Layer III.
const SamplesPerFrame = 1152

// Mono is the channel mode value for single-channel streams.
const Mono = 3

// StreamInfo aggregates the frame walk over a whole MP3 stream
type StreamInfo struct {
	FrameCount   int
	SampleRate   int
	ChannelMode  int
	BitrateMin   int
	BitrateMax   int
	BitrateAvg   int
	VBR          bool
	TotalSamples int
	Duration     float64
	HasID3v2     bool
	HasID3v1     bool
}

// Stereo reports whether the stream carries two channels.
func (si *StreamInfo) Stereo() bool {
	return si.ChannelMode != Mono
}
