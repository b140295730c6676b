// Package mp3parser inspects MP3 streams without decoding them: ID3 tag
// detection, MPEG-1 Layer III frame walk and aggregate stream statistics
// for the cover-analysis endpoint.
package mp3parser

import (
	"encoding/binary"
	"fmt"
)

// bitrate in bit/s and sample rate tables, MPEG-1 Layer III only
var bitrateTable = [16]int{
	0, 32, 40, 48, 56, 64, 80, 96,
	112, 128, 160, 192, 224, 256, 320, 0,
}

var sampleRateTable = [4]int{44100, 48000, 32000, 0}

// read syncsafe int for ID3v2 size
func syncSafeToInt(b []byte) int {
	return int(b[0]&0x7F)<<21 |
		int(b[1]&0x7F)<<14 |
		int(b[2]&0x7F)<<7 |
		int(b[3]&0x7F)
}

// ParseID3v2 reads an ID3v2 preamble at the start of data, returning the
// header and the offset where audio frames begin. A nil header with
// offset 0 means there is no tag.
func ParseID3v2(data []byte) (*ID3v2Header, int) {
	if len(data) < 10 || string(data[:3]) != "ID3" {
		return nil, 0
	}
	h := &ID3v2Header{
		Version: [2]byte{data[3], data[4]},
		Flags:   data[5],
		Size:    syncSafeToInt(data[6:10]),
	}
	offset := 10 + h.Size
	if offset > len(data) {
		offset = len(data)
	}
	return h, offset
}

// HasID3v1 reports whether the stream ends with a 128-byte "TAG" trailer.
func HasID3v1(data []byte) bool {
	return len(data) >= 128 && string(data[len(data)-128:len(data)-125]) == "TAG"
}

// ParseFrameHeader decodes the 4-byte frame header at the start of data.
func ParseFrameHeader(data []byte) (*FrameHeader, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("need 4 bytes for frame header, have %d", len(data))
	}
	header := binary.BigEndian.Uint32(data[:4])

	// check sync
	if (header & 0xFFE00000) != 0xFFE00000 {
		return nil, fmt.Errorf("invalid sync word: 0x%08X", header)
	}

	versionID := int((header >> 19) & 0x3)
	layer := int((header >> 17) & 0x3)
	prot := ((header >> 16) & 0x1) == 0
	bitrateIdx := int((header >> 12) & 0xF)
	sampleRateIdx := int((header >> 10) & 0x3)
	padding := ((header >> 9) & 0x1) == 1
	channelMode := int((header >> 6) & 0x3)

	bitrate := bitrateTable[bitrateIdx] * 1000
	sampleRate := sampleRateTable[sampleRateIdx]

	if bitrate == 0 || sampleRate == 0 {
		return nil, fmt.Errorf("unsupported bitrate or samplerate")
	}

	return &FrameHeader{
		VersionID:     versionID,
		Layer:         layer,
		ProtectionBit: prot,
		Bitrate:       bitrate,
		SampleRate:    sampleRate,
		Padding:       padding,
		ChannelMode:   channelMode,
		FrameLength:   (144*bitrate)/sampleRate + btoi(padding),
	}, nil
}

// Inspect walks the full stream and aggregates frame statistics. Bad
// sync is handled by scanning forward one byte at a time until the next
// frame, so junk between frames does not abort the walk.
func Inspect(data []byte) (*StreamInfo, error) {
	info := &StreamInfo{HasID3v1: HasID3v1(data)}

	id3, offset := ParseID3v2(data)
	info.HasID3v2 = id3 != nil

	end := len(data)
	if info.HasID3v1 {
		end -= 128
	}

	bitrateSum := 0
	pos := offset
	for pos+4 <= end {
		frame, err := ParseFrameHeader(data[pos:end])
		if err != nil {
			pos++
			continue
		}

		if info.FrameCount == 0 {
			info.SampleRate = frame.SampleRate
			info.ChannelMode = frame.ChannelMode
			info.BitrateMin = frame.Bitrate
			info.BitrateMax = frame.Bitrate
		} else {
			if frame.Bitrate < info.BitrateMin {
				info.BitrateMin = frame.Bitrate
			}
			if frame.Bitrate > info.BitrateMax {
				info.BitrateMax = frame.Bitrate
			}
		}
		bitrateSum += frame.Bitrate
		info.FrameCount++
		pos += frame.FrameLength
	}

	if info.FrameCount == 0 {
		return nil, fmt.Errorf("no MPEG-1 Layer III frames found")
	}

	info.BitrateAvg = bitrateSum / info.FrameCount
	info.VBR = info.BitrateMin != info.BitrateMax
	info.TotalSamples = info.FrameCount * SamplesPerFrame
	info.Duration = float64(info.TotalSamples) / float64(info.SampleRate)
	return info, nil
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
