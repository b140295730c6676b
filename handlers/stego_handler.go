// Package handlers is made to handle requests
package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/zaidanav/tucil2-if4020-audio-steganography/audio"
	"github.com/zaidanav/tucil2-if4020-audio-steganography/crypto"
	"github.com/zaidanav/tucil2-if4020-audio-steganography/models"
	"github.com/zaidanav/tucil2-if4020-audio-steganography/mp3parser"
	"github.com/zaidanav/tucil2-if4020-audio-steganography/stego"
)

const maxUploadBytes = 32 << 20 // 32MB limit

type StegoHandler struct {
	audioDecoder *audio.AudioDecoder
}

func NewStegoHandler() *StegoHandler {
	return &StegoHandler{
		audioDecoder: audio.NewAudioDecoder(),
	}
}

func (h *StegoHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Steganography API is running",
		"version": "1.0.0",
	})
}

func (h *StegoHandler) InsertMessage(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(maxUploadBytes); err != nil {
		c.JSON(http.StatusBadRequest, models.StegoResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to parse form: %v", err),
		})
		return
	}

	key := c.PostForm("key")
	useEncryption := c.PostForm("use_encryption") == "true"
	useRandomStart := c.PostForm("use_random_start") == "true"
	lsbBitsStr := c.PostForm("lsb_bits")

	if err := crypto.ValidateKey(key); err != nil {
		c.JSON(http.StatusBadRequest, models.StegoResponse{
			Success: false,
			Message: fmt.Sprintf("Invalid key: %v", err),
		})
		return
	}

	lsbBits, err := strconv.Atoi(lsbBitsStr)
	if err != nil || lsbBits < 1 || lsbBits > 4 {
		c.JSON(http.StatusBadRequest, models.StegoResponse{
			Success: false,
			Message: "LSB bits must be between 1 and 4",
		})
		return
	}

	audioData, audioHeader, ok := readFormFile(c, "audio_file", "Audio file is required")
	if !ok {
		return
	}
	if !isValidCoverFile(audioHeader.Filename) {
		c.JSON(http.StatusBadRequest, models.StegoResponse{
			Success: false,
			Message: "Invalid audio file format. Only MP3 and WAV covers are supported",
		})
		return
	}

	secretData, secretHeader, ok := readFormFile(c, "secret_file", "Secret file is required")
	if !ok {
		return
	}

	cover, metadata, err := h.audioDecoder.DecodeAudio(audioData, audioHeader.Filename)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.StegoResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to decode audio file: %v", err),
		})
		return
	}

	name, ext := splitSecretName(secretHeader.Filename)
	secret := stego.SecretPayload{Name: name, Ext: ext, Data: secretData}
	opts := stego.Options{LSBBits: lsbBits, Encrypt: useEncryption, RandomStart: useRandomStart}

	stegoBuf, psnr, err := stego.Embed(cover, secret, key, opts)
	if err != nil {
		c.JSON(statusForError(err), models.StegoResponse{
			Success: false,
			Message: embedErrorMessage(err),
		})
		return
	}

	tags := h.audioDecoder.ReadTags(audioData, audioHeader.Filename)
	wavData, err := h.audioDecoder.EncodeWAV(stegoBuf, metadata, tags)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.StegoResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to encode stego WAV: %v", err),
		})
		return
	}

	baseFilename := strings.TrimSuffix(audioHeader.Filename, filepath.Ext(audioHeader.Filename))
	outputFilename := fmt.Sprintf("%s_stego.wav", baseFilename)

	// Set headers for file download
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", outputFilename))
	c.Header("Content-Length", fmt.Sprintf("%d", len(wavData)))

	// Include metadata about the steganography operation
	c.Header("X-Stego-Method", "PCM Sample LSB")
	c.Header("X-Stego-Message", "Secret file successfully embedded in PCM samples")
	c.Header("X-Stego-PSNR", fmt.Sprintf("%.2f", psnr))
	c.Header("X-Stego-Capacity", fmt.Sprintf("%d", stego.CapacityBits(len(cover.Data), lsbBits)))

	c.Data(http.StatusOK, "audio/wav", wavData)
}

func (h *StegoHandler) ExtractMessage(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(maxUploadBytes); err != nil {
		c.JSON(http.StatusBadRequest, models.ExtractResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to parse form: %v", err),
		})
		return
	}

	key := c.PostForm("key")
	if err := crypto.ValidateKey(key); err != nil {
		c.JSON(http.StatusBadRequest, models.ExtractResponse{
			Success: false,
			Message: fmt.Sprintf("Invalid key: %v", err),
		})
		return
	}

	stegoData, stegoHeader, ok := readFormFileExtract(c, "stego_file", "Stego audio file is required")
	if !ok {
		return
	}
	if !isValidWAVFile(stegoHeader.Filename) {
		c.JSON(http.StatusBadRequest, models.ExtractResponse{
			Success: false,
			Message: "Invalid audio file format. Stego files are WAV",
		})
		return
	}

	stegoBuf, _, err := h.audioDecoder.DecodeWAV(stegoData)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ExtractResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to decode stego file: %v", err),
		})
		return
	}

	secret, header, err := stego.Extract(stegoBuf, key)
	if err != nil {
		c.JSON(statusForError(err), models.ExtractResponse{
			Success: false,
			Message: extractErrorMessage(err),
		})
		return
	}

	secretFilename := secret.Name + secret.Ext
	if secretFilename == "" {
		secretFilename = "extracted.bin"
	}

	// Set headers for file download
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", secretFilename))
	c.Header("Content-Length", fmt.Sprintf("%d", len(secret.Data)))

	// Report the auto-detected embedding parameters
	c.Header("X-Stego-Encrypted", strconv.FormatBool(header.Encrypted))
	c.Header("X-Stego-Randomized", strconv.FormatBool(header.Randomized))
	c.Header("X-Stego-LSB-Bits", strconv.Itoa(header.LSBBits))

	c.Data(http.StatusOK, "application/octet-stream", secret.Data)
}

// AnalyzeAudio reports cover metadata, per-depth capacity and, when a
// secret size is supplied, whether that secret fits.
func (h *StegoHandler) AnalyzeAudio(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(maxUploadBytes); err != nil {
		c.JSON(http.StatusBadRequest, models.AnalyzeResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to parse form: %v", err),
		})
		return
	}

	audioFile, audioHeader, err := c.Request.FormFile("audio_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.AnalyzeResponse{
			Success: false,
			Message: "Audio file is required",
		})
		return
	}
	defer audioFile.Close()

	if !isValidCoverFile(audioHeader.Filename) {
		c.JSON(http.StatusBadRequest, models.AnalyzeResponse{
			Success: false,
			Message: "Invalid audio file format. Only MP3 and WAV covers are supported",
		})
		return
	}

	audioData, err := io.ReadAll(audioFile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.AnalyzeResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to read audio file: %v", err),
		})
		return
	}

	buf, metadata, err := h.audioDecoder.DecodeAudio(audioData, audioHeader.Filename)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.AnalyzeResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to decode audio file: %v", err),
		})
		return
	}

	secretName := c.PostForm("secret_name")
	if secretName == "" {
		secretName = "secret.bin"
	}
	name, ext := splitSecretName(secretName)
	headerOverhead := (&stego.Header{LSBBits: 1, Name: name, Ext: ext}).Size()

	resp := models.AnalyzeResponse{
		Success:             true,
		Metadata:            metadata,
		HeaderOverheadBytes: headerOverhead,
		Tags:                h.audioDecoder.ReadTags(audioData, audioHeader.Filename),
	}

	for lsbBits := 1; lsbBits <= 4; lsbBits++ {
		bits := stego.CapacityBits(len(buf.Data), lsbBits)
		resp.Capacities = append(resp.Capacities, models.CapacityOption{
			LSBBits:       lsbBits,
			CapacityBits:  bits,
			CapacityBytes: bits / 8,
		})
	}

	if strings.ToLower(filepath.Ext(audioHeader.Filename)) == ".mp3" {
		if info, err := mp3parser.Inspect(audioData); err == nil {
			resp.MP3Stream = &models.MP3StreamInfo{
				FrameCount:   info.FrameCount,
				SampleRate:   info.SampleRate,
				Stereo:       info.Stereo(),
				BitrateMin:   info.BitrateMin,
				BitrateMax:   info.BitrateMax,
				BitrateAvg:   info.BitrateAvg,
				VBR:          info.VBR,
				TotalSamples: info.TotalSamples,
				Duration:     info.Duration,
				HasID3v2:     info.HasID3v2,
				HasID3v1:     info.HasID3v1,
			}
		}
	}

	if sizeStr := c.PostForm("secret_size"); sizeStr != "" {
		secretSize, err := strconv.Atoi(sizeStr)
		if err != nil || secretSize < 0 {
			c.JSON(http.StatusBadRequest, models.AnalyzeResponse{
				Success: false,
				Message: "secret_size must be a non-negative integer",
			})
			return
		}
		lsbBits := 1
		if lsbStr := c.PostForm("lsb_bits"); lsbStr != "" {
			lsbBits, err = strconv.Atoi(lsbStr)
			if err != nil || lsbBits < 1 || lsbBits > 4 {
				c.JSON(http.StatusBadRequest, models.AnalyzeResponse{
					Success: false,
					Message: "LSB bits must be between 1 and 4",
				})
				return
			}
		}
		resp.Feasibility = feasibilityReport(len(buf.Data), lsbBits, headerOverhead, secretSize)
	}

	c.JSON(http.StatusOK, resp)
}

func feasibilityReport(sampleCount, lsbBits, headerBytes, secretBytes int) *models.Feasibility {
	capacityBits := stego.CapacityBits(sampleCount, lsbBits)
	neededBits := (headerBytes + secretBytes) * 8
	fits := neededBits <= capacityBits

	utilization := 0.0
	if capacityBits > 0 {
		utilization = float64(neededBits) / float64(capacityBits) * 100
	}

	var recommendation string
	switch {
	case !fits:
		recommendation = "Secret is too large. Use a longer cover, a smaller secret or more LSB bits."
	case utilization > 95:
		recommendation = fmt.Sprintf("Very close to the limit (%.1f%% of capacity).", utilization)
	case utilization > 80:
		recommendation = fmt.Sprintf("Close to the limit (%.1f%% of capacity). Consider a smaller secret.", utilization)
	default:
		recommendation = fmt.Sprintf("Safe to embed (%.1f%% of capacity).", utilization)
	}

	return &models.Feasibility{
		Fits:               fits,
		NeededBits:         neededBits,
		CapacityBits:       capacityBits,
		MarginBits:         capacityBits - neededBits,
		UtilizationPercent: utilization,
		Recommendation:     recommendation,
	}
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, stego.ErrInsufficientCapacity),
		errors.Is(err, stego.ErrInvalidKey),
		errors.Is(err, stego.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, stego.ErrExtractionFailed),
		errors.Is(err, stego.ErrInvalidHeader):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func embedErrorMessage(err error) string {
	if errors.Is(err, stego.ErrInsufficientCapacity) {
		return fmt.Sprintf("Secret data too large for this cover: %v. Increase cover length, reduce secret size or use more LSB bits.", err)
	}
	return fmt.Sprintf("Failed to embed secret data: %v", err)
}

func extractErrorMessage(err error) string {
	if errors.Is(err, stego.ErrExtractionFailed) {
		return "No hidden data found. Possible causes: (1) wrong key, (2) the file contains no embedded data, (3) the audio was re-encoded after embedding."
	}
	return fmt.Sprintf("Failed to extract secret data: %v", err)
}

func readFormFile(c *gin.Context, field, missingMsg string) ([]byte, *multipart.FileHeader, bool) {
	file, header, err := c.Request.FormFile(field)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.StegoResponse{
			Success: false,
			Message: missingMsg,
		})
		return nil, nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.StegoResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to read %s: %v", field, err),
		})
		return nil, nil, false
	}
	return data, header, true
}

func readFormFileExtract(c *gin.Context, field, missingMsg string) ([]byte, *multipart.FileHeader, bool) {
	file, header, err := c.Request.FormFile(field)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ExtractResponse{
			Success: false,
			Message: missingMsg,
		})
		return nil, nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ExtractResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to read %s: %v", field, err),
		})
		return nil, nil, false
	}
	return data, header, true
}

// splitSecretName splits "notes.tar.gz" into ("notes.tar", ".gz") so the
// extension survives the round trip the way the header stores it.
func splitSecretName(filename string) (name, ext string) {
	base := filepath.Base(filename)
	ext = filepath.Ext(base)
	return strings.TrimSuffix(base, ext), ext
}

func isValidCoverFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".mp3" || ext == ".wav"
}

func isValidWAVFile(filename string) bool {
	return strings.ToLower(filepath.Ext(filename)) == ".wav"
}
