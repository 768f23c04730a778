package main

import (
	"github.com/rs/zerolog"

	"github.com/ytget/playlist-packager/internal/compress"
	"github.com/ytget/playlist-packager/internal/config"
	"github.com/ytget/playlist-packager/internal/download"
	"github.com/ytget/playlist-packager/internal/job"
	"github.com/ytget/playlist-packager/internal/platform"
)

// newPipeline wires the yt-dlp engine, the zip archiver and the optional
// playlist probe into one pipeline
func newPipeline(cfg *config.Config, logger zerolog.Logger) *job.Pipeline {
	engine := download.NewYTDLP(download.YTDLPOptions{
		Executable:       cfg.YTDLPPath,
		AutoInstall:      cfg.AutoInstallYTDLP,
		ProgressInterval: cfg.ProgressInterval(),
	}, logger)
	runner := download.NewExecutor(engine, cfg.FFmpegPath, logger)

	opts := job.Options{
		WorkRoot:        cfg.WorkRoot,
		MaxArchiveBytes: cfg.MaxArchiveBytes(),
	}
	if cfg.ProbePlaylists {
		probe := platform.NewPlaylistProbe()
		probe.SetTimeout(cfg.ProbeTimeout())
		opts.Counter = probe
	}

	return job.New(runner, compress.NewService(logger), opts, logger)
}

func checkDependencies(cfg *config.Config) []platform.Status {
	return platform.CheckBinaries(platform.Requirements(cfg.FFmpegPath, cfg.YTDLPPath))
}
