// Package models contain needed models
package models

// StegoRequest represents the request for inserting a secret file
type StegoRequest struct {
	Key            string `form:"key" binding:"required,max=25"`
	UseEncryption  bool   `form:"use_encryption"`
	UseRandomStart bool   `form:"use_random_start"`
	LSBBits        int    `form:"lsb_bits" binding:"required,min=1,max=4"`
}

// StegoResponse represents the response after insertion
type StegoResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	PSNR    float64 `json:"psnr,omitempty"`
}

// ExtractRequest represents the request for extracting a secret file.
// Only the key is supplied; the remaining parameters are auto-detected.
type ExtractRequest struct {
	Key string `form:"key" binding:"required,max=25"`
}

// ExtractResponse represents the response after extraction
type ExtractResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	SecretFilename string `json:"secret_filename,omitempty"`
}

// AudioMetadata represents metadata about a decoded audio stream
type AudioMetadata struct {
	SampleRate   int     `json:"sample_rate"`
	Channels     int     `json:"channels"`
	BitDepth     int     `json:"bit_depth"`
	Duration     float64 `json:"duration_seconds"`
	TotalSamples int     `json:"total_samples"`
}

// TagSummary carries the common tags read from the cover's metadata
type TagSummary struct {
	Title  string `json:"title,omitempty"`
	Artist string `json:"artist,omitempty"`
	Album  string `json:"album,omitempty"`
	Genre  string `json:"genre,omitempty"`
	Year   string `json:"year,omitempty"`
}

// CapacityOption reports the embeddable capacity for one LSB depth
type CapacityOption struct {
	LSBBits       int `json:"lsb_bits"`
	CapacityBits  int `json:"capacity_bits"`
	CapacityBytes int `json:"capacity_bytes"`
}

// Feasibility is the verdict for embedding a secret of a given size
type Feasibility struct {
	Fits               bool    `json:"fits"`
	NeededBits         int     `json:"needed_bits"`
	CapacityBits       int     `json:"capacity_bits"`
	MarginBits         int     `json:"margin_bits"`
	UtilizationPercent float64 `json:"utilization_percent"`
	Recommendation     string  `json:"recommendation"`
}

// MP3StreamInfo summarizes the frame-level structure of an MP3 cover
type MP3StreamInfo struct {
	FrameCount   int     `json:"frame_count"`
	SampleRate   int     `json:"sample_rate"`
	Stereo       bool    `json:"stereo"`
	BitrateMin   int     `json:"bitrate_min"`
	BitrateMax   int     `json:"bitrate_max"`
	BitrateAvg   int     `json:"bitrate_avg"`
	VBR          bool    `json:"vbr"`
	TotalSamples int     `json:"total_samples"`
	Duration     float64 `json:"duration_seconds"`
	HasID3v2     bool    `json:"has_id3v2"`
	HasID3v1     bool    `json:"has_id3v1"`
}

// AnalyzeResponse is the full cover analysis returned by the analyze endpoint
type AnalyzeResponse struct {
	Success             bool             `json:"success"`
	Message             string           `json:"message,omitempty"`
	Metadata            *AudioMetadata   `json:"metadata,omitempty"`
	Capacities          []CapacityOption `json:"capacities,omitempty"`
	HeaderOverheadBytes int              `json:"header_overhead_bytes,omitempty"`
	Tags                *TagSummary      `json:"tags,omitempty"`
	MP3Stream           *MP3StreamInfo   `json:"mp3_stream,omitempty"`
	Feasibility         *Feasibility     `json:"feasibility,omitempty"`
}
