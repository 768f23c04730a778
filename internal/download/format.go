package download

import (
	"fmt"

	"github.com/ytget/playlist-packager/internal/model"
)

// Format selection expressions
const (
	FormatBest      = "bestvideo+bestaudio/best"
	Format1080p     = "bestvideo[height<=1080]+bestaudio/best[height<=1080]"
	Format720p      = "bestvideo[height<=720]+bestaudio/best[height<=720]"
	FormatWorst     = "worstvideo+worstaudio/worst"
	FormatBestAudio = "bestaudio/best"
)

// Container and post-processor names
const (
	MergeFormatMP4        = "mp4"
	PostProcessorFFmpegEA = "FFmpegExtractAudio"
)

var videoFormats = map[model.QualityPreset]string{
	model.QualityBest:  FormatBest,
	model.Quality1080p: Format1080p,
	model.Quality720p:  Format720p,
	model.QualityWorst: FormatWorst,
}

// PostProcessor converts downloaded streams to an audio codec
type PostProcessor struct {
	Key     string
	Codec   string
	Quality string
}

// Selection is what the engine should fetch and how to finish it
type Selection struct {
	Format            string
	MergeOutputFormat string // set in video mode
	PostProcess       PostProcessor
}

// HasPostProcessor reports whether an audio conversion is attached
func (s Selection) HasPostProcessor() bool {
	return s.PostProcess.Codec != ""
}

// OutputExtension is the extension produced files are expected to carry
func (s Selection) OutputExtension() string {
	if s.HasPostProcessor() {
		return "." + s.PostProcess.Codec
	}
	return "." + s.MergeOutputFormat
}

// SelectFormat maps the request's mode and options to a format expression.
// It has no side effects; unknown options yield a KindInvalidRequest error.
func SelectFormat(req model.DownloadRequest) (Selection, error) {
	switch req.Mode {
	case model.ModeVideo:
		format, ok := videoFormats[req.Quality]
		if !ok {
			return Selection{}, model.NewInvalidRequestError(
				fmt.Errorf("%w: no such quality preset %q", model.ErrInvalidRequest, req.Quality))
		}
		return Selection{Format: format, MergeOutputFormat: MergeFormatMP4}, nil

	case model.ModeAudio:
		if !req.AudioFormat.Valid() {
			return Selection{}, model.NewInvalidRequestError(
				fmt.Errorf("%w: no such audio format %q", model.ErrInvalidRequest, req.AudioFormat))
		}
		if !req.AudioBitrate.Valid() {
			return Selection{}, model.NewInvalidRequestError(
				fmt.Errorf("%w: no such audio bitrate %q", model.ErrInvalidRequest, req.AudioBitrate))
		}
		return Selection{
			Format: FormatBestAudio,
			PostProcess: PostProcessor{
				Key:     PostProcessorFFmpegEA,
				Codec:   string(req.AudioFormat),
				Quality: req.AudioBitrate.Kbps(),
			},
		}, nil
	}

	return Selection{}, model.NewInvalidRequestError(
		fmt.Errorf("%w: no such mode %q", model.ErrInvalidRequest, req.Mode))
}
