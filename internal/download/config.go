package download

import (
	"path/filepath"

	"github.com/ytget/playlist-packager/internal/model"
)

// OutputFileTemplate names each file by playlist position and title
const OutputFileTemplate = "%(playlist_index)s - %(title)s.%(ext)s"

// JobConfig is the complete engine configuration for one request. It is built
// once by BuildJobConfig and passed by value.
type JobConfig struct {
	MediaDir          string
	OutputTemplate    string
	Selection         Selection
	Concurrency       int
	PlaylistEnd       int // 0 = whole playlist
	RestrictFilenames bool
	IgnoreErrors      bool
	Quiet             bool
	FFmpegLocation    string
}

// BuildJobConfig assembles the engine configuration for req writing into mediaDir
func BuildJobConfig(req model.DownloadRequest, sel Selection, mediaDir string) JobConfig {
	cfg := JobConfig{
		MediaDir:          mediaDir,
		OutputTemplate:    filepath.Join(mediaDir, OutputFileTemplate),
		Selection:         sel,
		Concurrency:       model.ClampConcurrency(req.Concurrency),
		RestrictFilenames: true,
		IgnoreErrors:      true,
		Quiet:             true,
	}
	if req.Limit > 0 {
		cfg.PlaylistEnd = req.Limit
	}
	return cfg
}

// WithFFmpegLocation returns a copy of cfg pointing the engine at ffmpeg
func (c JobConfig) WithFFmpegLocation(path string) JobConfig {
	c.FFmpegLocation = path
	return c
}
