package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRequest is wrapped by every DownloadRequest validation failure
var ErrInvalidRequest = errors.New("invalid request")

// Mode selects between merged video output and audio extraction
type Mode string

const (
	ModeVideo Mode = "Video"
	ModeAudio Mode = "Audio"
)

// QualityPreset caps the video resolution in video mode
type QualityPreset string

const (
	QualityBest  QualityPreset = "Best Available"
	Quality1080p QualityPreset = "1080p"
	Quality720p  QualityPreset = "720p"
	QualityWorst QualityPreset = "Worst (Low Data)"
)

// AudioFormat is the target codec in audio mode
type AudioFormat string

const (
	AudioMP3 AudioFormat = "mp3"
	AudioM4A AudioFormat = "m4a"
	AudioWAV AudioFormat = "wav"
)

// AudioBitrate is the target audio quality in audio mode
type AudioBitrate string

const (
	Bitrate192k AudioBitrate = "192k"
	Bitrate320k AudioBitrate = "320k"
	Bitrate128k AudioBitrate = "128k"
)

// Concurrency bounds for fragment downloads
const (
	MinConcurrency     = 1
	MaxConcurrency     = 10
	DefaultConcurrency = 4
)

// Option lists in the order they are offered to users
var (
	Modes          = []Mode{ModeVideo, ModeAudio}
	QualityPresets = []QualityPreset{QualityBest, Quality1080p, Quality720p, QualityWorst}
	AudioFormats   = []AudioFormat{AudioMP3, AudioM4A, AudioWAV}
	AudioBitrates  = []AudioBitrate{Bitrate192k, Bitrate320k, Bitrate128k}
)

// ClampConcurrency bounds n to the supported fragment concurrency range
func ClampConcurrency(n int) int {
	if n < MinConcurrency {
		return MinConcurrency
	}
	if n > MaxConcurrency {
		return MaxConcurrency
	}
	return n
}

// DownloadRequest is the user's submission. It is read-only once validated.
type DownloadRequest struct {
	URL          string
	Mode         Mode
	Quality      QualityPreset // video mode only
	AudioFormat  AudioFormat   // audio mode only
	AudioBitrate AudioBitrate  // audio mode only
	Limit        int           // max playlist items, 0 = all
	Concurrency  int           // fragment concurrency, 1..10
}

// Validate checks that exactly the fields belonging to the request mode are set
// and that every enum holds a known value.
func (r DownloadRequest) Validate() error {
	if strings.TrimSpace(r.URL) == "" {
		return fmt.Errorf("%w: source URL is required", ErrInvalidRequest)
	}
	if r.Limit < 0 {
		return fmt.Errorf("%w: item limit must be positive, got %d", ErrInvalidRequest, r.Limit)
	}
	if r.Concurrency < MinConcurrency || r.Concurrency > MaxConcurrency {
		return fmt.Errorf("%w: concurrency must be between %d and %d, got %d",
			ErrInvalidRequest, MinConcurrency, MaxConcurrency, r.Concurrency)
	}

	switch r.Mode {
	case ModeVideo:
		if !r.Quality.Valid() {
			return fmt.Errorf("%w: no such quality preset %q", ErrInvalidRequest, r.Quality)
		}
		if r.AudioFormat != "" || r.AudioBitrate != "" {
			return fmt.Errorf("%w: audio options are not allowed in video mode", ErrInvalidRequest)
		}
	case ModeAudio:
		if !r.AudioFormat.Valid() {
			return fmt.Errorf("%w: no such audio format %q", ErrInvalidRequest, r.AudioFormat)
		}
		if !r.AudioBitrate.Valid() {
			return fmt.Errorf("%w: no such audio bitrate %q", ErrInvalidRequest, r.AudioBitrate)
		}
		if r.Quality != "" {
			return fmt.Errorf("%w: quality preset is not allowed in audio mode", ErrInvalidRequest)
		}
	default:
		return fmt.Errorf("%w: no such mode %q", ErrInvalidRequest, r.Mode)
	}
	return nil
}

// Valid reports whether q is one of the declared presets
func (q QualityPreset) Valid() bool {
	for _, p := range QualityPresets {
		if q == p {
			return true
		}
	}
	return false
}

// Valid reports whether f is one of the declared audio formats
func (f AudioFormat) Valid() bool {
	for _, v := range AudioFormats {
		if f == v {
			return true
		}
	}
	return false
}

// Valid reports whether b is one of the declared bitrates
func (b AudioBitrate) Valid() bool {
	for _, v := range AudioBitrates {
		if b == v {
			return true
		}
	}
	return false
}

// Kbps returns the bitrate without its unit suffix, e.g. "192"
func (b AudioBitrate) Kbps() string {
	return strings.TrimSuffix(strings.ToLower(string(b)), "k")
}

// ParseMode accepts "video" or "audio" in any case
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "video":
		return ModeVideo, nil
	case "audio":
		return ModeAudio, nil
	}
	return "", fmt.Errorf("%w: no such mode %q", ErrInvalidRequest, s)
}

// ParseQualityPreset accepts a preset label or its short alias (best, 1080p, 720p, worst)
func ParseQualityPreset(s string) (QualityPreset, error) {
	s = strings.TrimSpace(s)
	if q := QualityPreset(s); q.Valid() {
		return q, nil
	}
	switch strings.ToLower(s) {
	case "best":
		return QualityBest, nil
	case "1080", "1080p":
		return Quality1080p, nil
	case "720", "720p":
		return Quality720p, nil
	case "worst", "low":
		return QualityWorst, nil
	}
	return "", fmt.Errorf("%w: no such quality preset %q", ErrInvalidRequest, s)
}

// Normalize fills the mode-specific defaults used by the web form and CLI:
// the first offered option for unset enums and DefaultConcurrency for zero.
func (r DownloadRequest) Normalize() DownloadRequest {
	r.URL = strings.TrimSpace(r.URL)
	if r.Concurrency == 0 {
		r.Concurrency = DefaultConcurrency
	}
	switch r.Mode {
	case ModeVideo:
		if r.Quality == "" {
			r.Quality = QualityBest
		}
		r.AudioFormat, r.AudioBitrate = "", ""
	case ModeAudio:
		if r.AudioFormat == "" {
			r.AudioFormat = AudioMP3
		}
		if r.AudioBitrate == "" {
			r.AudioBitrate = Bitrate192k
		}
		r.Quality = ""
	}
	return r
}
