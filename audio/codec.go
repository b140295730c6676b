// Package audio adapts audio containers to the PCM sample buffers the
// stego core works on. MP3 and WAV covers are decoded here; stego output
// is always encoded as WAV, since a lossy re-encode would destroy the
// embedded LSB data.
package audio

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aler9/writerseeker"
	"github.com/bogem/id3v2"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/tosone/minimp3"

	"github.com/zaidanav/tucil2-if4020-audio-steganography/models"
)

type AudioDecoder struct{}

func NewAudioDecoder() *AudioDecoder {
	return &AudioDecoder{}
}

// DecodeAudio dispatches on the filename extension. Only .mp3 and .wav
// covers are supported.
func (ad *AudioDecoder) DecodeAudio(data []byte, filename string) (*goaudio.IntBuffer, *models.AudioMetadata, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mp3":
		return ad.DecodeMP3(data)
	case ".wav":
		return ad.DecodeWAV(data)
	default:
		return nil, nil, fmt.Errorf("unsupported audio format %q, only MP3 and WAV are supported", filepath.Ext(filename))
	}
}

func (ad *AudioDecoder) DecodeMP3(mp3Data []byte) (*goaudio.IntBuffer, *models.AudioMetadata, error) {
	decoder, data, err := minimp3.DecodeFull(mp3Data)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode MP3: %v", err)
	}
	defer decoder.Close()

	if len(data) < 2 {
		return nil, nil, fmt.Errorf("MP3 contains no audio data")
	}

	// minimp3 hands back interleaved little-endian 16-bit PCM
	sampleCount := len(data) / 2
	samples := make([]int, sampleCount)
	for i := 0; i < sampleCount; i++ {
		samples[i] = int(int16(uint16(data[i*2]) | uint16(data[i*2+1])<<8))
	}

	samplesPerChannel := sampleCount / decoder.Channels
	metadata := &models.AudioMetadata{
		SampleRate:   decoder.SampleRate,
		Channels:     decoder.Channels,
		BitDepth:     16,
		Duration:     float64(samplesPerChannel) / float64(decoder.SampleRate),
		TotalSamples: sampleCount,
	}

	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: decoder.Channels,
			SampleRate:  decoder.SampleRate,
		},
		Data:           samples,
		SourceBitDepth: 16,
	}
	return buf, metadata, nil
}

func (ad *AudioDecoder) DecodeWAV(wavData []byte) (*goaudio.IntBuffer, *models.AudioMetadata, error) {
	decoder := wav.NewDecoder(bytes.NewReader(wavData))
	if !decoder.IsValidFile() {
		return nil, nil, fmt.Errorf("not a valid WAV file")
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode WAV: %v", err)
	}
	if len(buf.Data) == 0 {
		return nil, nil, fmt.Errorf("WAV contains no audio data")
	}
	if buf.SourceBitDepth == 0 {
		buf.SourceBitDepth = int(decoder.BitDepth)
	}

	channels := buf.Format.NumChannels
	samplesPerChannel := len(buf.Data) / channels
	metadata := &models.AudioMetadata{
		SampleRate:   buf.Format.SampleRate,
		Channels:     channels,
		BitDepth:     buf.SourceBitDepth,
		Duration:     float64(samplesPerChannel) / float64(buf.Format.SampleRate),
		TotalSamples: len(buf.Data),
	}
	return buf, metadata, nil
}

// EncodeWAV writes the buffer to an in-memory WAV container. Tags, when
// present, end up in the LIST/INFO chunk so cover metadata survives the
// MP3-to-WAV trip.
func (ad *AudioDecoder) EncodeWAV(buf *goaudio.IntBuffer, metadata *models.AudioMetadata, tags *models.TagSummary) ([]byte, error) {
	ws := &writerseeker.WriterSeeker{}

	encoder := wav.NewEncoder(ws, metadata.SampleRate, metadata.BitDepth, metadata.Channels, 1)
	if tags != nil {
		encoder.Metadata = &wav.Metadata{
			Title:        tags.Title,
			Artist:       tags.Artist,
			Product:      tags.Album,
			Genre:        tags.Genre,
			CreationDate: tags.Year,
		}
	}

	if err := encoder.Write(buf); err != nil {
		return nil, fmt.Errorf("failed to encode WAV: %v", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to close WAV encoder: %v", err)
	}

	wavData, err := io.ReadAll(ws.Reader())
	if err != nil {
		return nil, fmt.Errorf("failed to read WAV data: %v", err)
	}
	return wavData, nil
}

// ReadTags pulls the common tags out of the cover: ID3v2 for MP3, the
// LIST/INFO chunk for WAV. Returns nil when there is nothing usable.
func (ad *AudioDecoder) ReadTags(data []byte, filename string) *models.TagSummary {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mp3":
		return readID3Tags(data)
	case ".wav":
		return readWAVTags(data)
	}
	return nil
}

func readID3Tags(data []byte) *models.TagSummary {
	tag, err := id3v2.ParseReader(bytes.NewReader(data), id3v2.Options{Parse: true})
	if err != nil || tag == nil {
		return nil
	}
	summary := &models.TagSummary{
		Title:  tag.Title(),
		Artist: tag.Artist(),
		Album:  tag.Album(),
		Genre:  tag.Genre(),
		Year:   tag.Year(),
	}
	if *summary == (models.TagSummary{}) {
		return nil
	}
	return summary
}

func readWAVTags(data []byte) *models.TagSummary {
	decoder := wav.NewDecoder(bytes.NewReader(data))
	if !decoder.IsValidFile() {
		return nil
	}
	decoder.ReadMetadata()
	if decoder.Metadata == nil {
		return nil
	}
	summary := &models.TagSummary{
		Title:  decoder.Metadata.Title,
		Artist: decoder.Metadata.Artist,
		Album:  decoder.Metadata.Product,
		Genre:  decoder.Metadata.Genre,
		Year:   decoder.Metadata.CreationDate,
	}
	if *summary == (models.TagSummary{}) {
		return nil
	}
	return summary
}
