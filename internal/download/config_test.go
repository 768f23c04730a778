package download

import (
	"path/filepath"
	"testing"

	"github.com/ytget/playlist-packager/internal/model"
)

func TestBuildJobConfig_Video(t *testing.T) {
	req := model.DownloadRequest{
		URL:         "https://www.youtube.com/playlist?list=PL1",
		Mode:        model.ModeVideo,
		Quality:     model.Quality720p,
		Limit:       5,
		Concurrency: 3,
	}
	sel, err := SelectFormat(req)
	if err != nil {
		t.Fatalf("SelectFormat() error = %v", err)
	}

	mediaDir := filepath.Join("work", "media")
	cfg := BuildJobConfig(req, sel, mediaDir)

	if cfg.OutputTemplate != filepath.Join(mediaDir, "%(playlist_index)s - %(title)s.%(ext)s") {
		t.Errorf("unexpected output template %q", cfg.OutputTemplate)
	}
	if cfg.MediaDir != mediaDir {
		t.Errorf("expected media dir %q, got %q", mediaDir, cfg.MediaDir)
	}
	if cfg.PlaylistEnd != 5 {
		t.Errorf("expected playlist end 5, got %d", cfg.PlaylistEnd)
	}
	if cfg.Concurrency != 3 {
		t.Errorf("expected concurrency 3, got %d", cfg.Concurrency)
	}
	if !cfg.RestrictFilenames || !cfg.IgnoreErrors || !cfg.Quiet {
		t.Errorf("expected restrict/ignore/quiet flags set, got %+v", cfg)
	}
	if cfg.Selection.MergeOutputFormat == "" || cfg.Selection.HasPostProcessor() {
		t.Errorf("video config must carry only video fields: %+v", cfg.Selection)
	}
	if cfg.FFmpegLocation != "" {
		t.Errorf("ffmpeg location must be empty until execution, got %q", cfg.FFmpegLocation)
	}
}

func TestBuildJobConfig_Audio(t *testing.T) {
	req := model.DownloadRequest{
		URL:          "https://www.youtube.com/watch?v=abc",
		Mode:         model.ModeAudio,
		AudioFormat:  model.AudioMP3,
		AudioBitrate: model.Bitrate192k,
		Concurrency:  4,
	}
	sel, err := SelectFormat(req)
	if err != nil {
		t.Fatalf("SelectFormat() error = %v", err)
	}

	cfg := BuildJobConfig(req, sel, "media")
	if cfg.PlaylistEnd != 0 {
		t.Errorf("expected unbounded playlist, got %d", cfg.PlaylistEnd)
	}
	if !cfg.Selection.HasPostProcessor() || cfg.Selection.MergeOutputFormat != "" {
		t.Errorf("audio config must carry only audio fields: %+v", cfg.Selection)
	}
	if cfg.Selection.PostProcess.Quality != "192" {
		t.Errorf("expected quality 192, got %q", cfg.Selection.PostProcess.Quality)
	}
}

func TestBuildJobConfig_ModeExclusive(t *testing.T) {
	var reqs []model.DownloadRequest
	for _, q := range model.QualityPresets {
		reqs = append(reqs, model.DownloadRequest{URL: "u", Mode: model.ModeVideo, Quality: q, Concurrency: 1})
	}
	for _, f := range model.AudioFormats {
		for _, b := range model.AudioBitrates {
			reqs = append(reqs, model.DownloadRequest{URL: "u", Mode: model.ModeAudio, AudioFormat: f, AudioBitrate: b, Concurrency: 1})
		}
	}

	for _, req := range reqs {
		sel, err := SelectFormat(req)
		if err != nil {
			t.Fatalf("SelectFormat(%+v) error = %v", req, err)
		}
		cfg := BuildJobConfig(req, sel, "media")
		video := cfg.Selection.MergeOutputFormat != ""
		audio := cfg.Selection.HasPostProcessor()
		if video == audio {
			t.Errorf("expected exactly one of video/audio fields for %+v, got video=%v audio=%v", req, video, audio)
		}
		if video != (req.Mode == model.ModeVideo) {
			t.Errorf("fields do not match mode %s", req.Mode)
		}
	}
}

func TestBuildJobConfig_ClampsConcurrency(t *testing.T) {
	tests := []struct {
		input    int
		expected int
	}{
		{0, 1},
		{1, 1},
		{10, 10},
		{15, 10},
	}

	for _, tt := range tests {
		cfg := BuildJobConfig(model.DownloadRequest{Concurrency: tt.input}, Selection{}, "m")
		if cfg.Concurrency != tt.expected {
			t.Errorf("concurrency %d: expected %d, got %d", tt.input, tt.expected, cfg.Concurrency)
		}
	}
}

func TestJobConfig_WithFFmpegLocation(t *testing.T) {
	cfg := BuildJobConfig(model.DownloadRequest{Concurrency: 2}, Selection{}, "m")
	withFFmpeg := cfg.WithFFmpegLocation("/usr/bin/ffmpeg")

	if withFFmpeg.FFmpegLocation != "/usr/bin/ffmpeg" {
		t.Errorf("expected ffmpeg location to be set, got %q", withFFmpeg.FFmpegLocation)
	}
	if cfg.FFmpegLocation != "" {
		t.Error("original config must not be mutated")
	}
}
