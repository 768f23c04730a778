package download

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"github.com/rs/zerolog"

	"github.com/ytget/playlist-packager/internal/model"
)

// DefaultProgressInterval is how often yt-dlp progress is forwarded
const DefaultProgressInterval = 500 * time.Millisecond

// DefaultInstallTimeout bounds one attempt to fetch the yt-dlp executable
const DefaultInstallTimeout = 5 * time.Minute

// engineErrorPrefix marks the lines yt-dlp prints for failures
const engineErrorPrefix = "ERROR:"

// YTDLP is the Engine backed by the yt-dlp executable
type YTDLP struct {
	executable       string
	autoInstall      bool
	progressInterval time.Duration
	logger           zerolog.Logger

	install   func(ctx context.Context) error
	installMu sync.Mutex
	installed bool
}

// YTDLPOptions configures the yt-dlp engine
type YTDLPOptions struct {
	Executable       string // empty = resolved by go-ytdlp
	AutoInstall      bool   // download yt-dlp on first use if missing
	ProgressInterval time.Duration
}

// NewYTDLP creates the yt-dlp engine
func NewYTDLP(opts YTDLPOptions, logger zerolog.Logger) *YTDLP {
	interval := opts.ProgressInterval
	if interval <= 0 {
		interval = DefaultProgressInterval
	}
	return &YTDLP{
		executable:       opts.Executable,
		autoInstall:      opts.AutoInstall,
		progressInterval: interval,
		logger:           logger.With().Str("component", "ytdlp").Logger(),
		install:          installYTDLP,
	}
}

func installYTDLP(ctx context.Context) error {
	_, err := ytdlp.Install(ctx, nil)
	return err
}

// Download runs one blocking yt-dlp invocation covering the whole job
func (y *YTDLP) Download(ctx context.Context, cfg JobConfig, url string, progress model.ProgressReporter) error {
	if err := y.ensureInstalled(ctx); err != nil {
		return &EngineError{Message: fmt.Sprintf("yt-dlp is unavailable: %v", err), Err: err}
	}

	dl := y.BuildCommand(cfg)
	dl.ProgressFunc(y.progressInterval, func(update ytdlp.ProgressUpdate) {
		progress.Report(progressEvent(update))
	})

	y.logger.Debug().Str("url", url).Str("format", cfg.Selection.Format).Msg("starting yt-dlp")

	result, err := dl.Run(ctx, url)
	if err != nil {
		return &EngineError{Message: resultMessage(result, err), Err: err}
	}
	return nil
}

// BuildCommand translates cfg into yt-dlp flags
func (y *YTDLP) BuildCommand(cfg JobConfig) *ytdlp.Command {
	dl := ytdlp.New().
		Output(cfg.OutputTemplate).
		Format(cfg.Selection.Format).
		ConcurrentFragments(cfg.Concurrency)

	if y.executable != "" {
		dl.SetExecutable(y.executable)
	}
	if cfg.RestrictFilenames {
		dl.RestrictFilenames()
	}
	if cfg.IgnoreErrors {
		dl.IgnoreErrors()
	}
	if cfg.Quiet {
		dl.Quiet().NoWarnings()
	}
	if cfg.PlaylistEnd > 0 {
		dl.PlaylistItems(fmt.Sprintf("1:%d", cfg.PlaylistEnd))
	}
	if cfg.Selection.MergeOutputFormat != "" {
		dl.MergeOutputFormat(cfg.Selection.MergeOutputFormat)
	}
	if cfg.Selection.HasPostProcessor() {
		dl.ExtractAudio().
			AudioFormat(cfg.Selection.PostProcess.Codec).
			AudioQuality(cfg.Selection.PostProcess.Quality)
	}
	if cfg.FFmpegLocation != "" {
		dl.FFmpegLocation(cfg.FFmpegLocation)
	}
	return dl
}

// ensureInstalled fetches yt-dlp once per process. A failed attempt is not
// remembered, so the next job tries again. The attempt is detached from ctx's
// cancellation so a client going away does not abort a shared install.
func (y *YTDLP) ensureInstalled(ctx context.Context) error {
	if !y.autoInstall || y.executable != "" {
		return nil
	}

	y.installMu.Lock()
	defer y.installMu.Unlock()
	if y.installed {
		return nil
	}

	installCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), DefaultInstallTimeout)
	defer cancel()

	y.logger.Info().Msg("ensuring yt-dlp is installed")
	if err := y.install(installCtx); err != nil {
		y.logger.Warn().Err(err).Msg("yt-dlp install failed, will retry on next job")
		return err
	}
	y.installed = true
	return nil
}

// progressEvent maps a yt-dlp progress update onto a model event
func progressEvent(update ytdlp.ProgressUpdate) model.ProgressEvent {
	e := model.ProgressEvent{
		Phase:      model.PhaseDownloading,
		Item:       filepath.Base(update.Filename),
		Downloaded: int64(update.DownloadedBytes),
		Total:      int64(update.TotalBytes),
	}

	switch update.Status {
	case ytdlp.ProgressStatusPostProcessing:
		e.Phase = model.PhasePostProcessing
	case ytdlp.ProgressStatusFinished:
		e.Phase = model.PhaseItemFinished
	}

	if !update.Started.IsZero() {
		elapsed := time.Since(update.Started)
		if elapsed.Seconds() > 0 {
			e.Speed = float64(update.DownloadedBytes) / elapsed.Seconds()
		}
	}

	if info := update.Info; info != nil {
		if info.PlaylistIndex != nil {
			e.Index = int(*info.PlaylistIndex)
		}
		if info.PlaylistCount != nil {
			e.Count = int(*info.PlaylistCount)
		}
		if e.Item == "." && info.Title != nil {
			e.Item = *info.Title
		}
	}
	return e
}

// resultMessage prefers the ERROR lines yt-dlp printed over the exit status
func resultMessage(result *ytdlp.Result, err error) string {
	if result != nil {
		if msg := errorLines(result.Stderr); msg != "" {
			return msg
		}
	}
	return err.Error()
}

func errorLines(stderr string) string {
	var lines []string
	for _, line := range strings.Split(stderr, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, engineErrorPrefix) {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
