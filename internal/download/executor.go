package download

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/ytget/playlist-packager/internal/model"
	"github.com/ytget/playlist-packager/internal/platform"
)

// EngineError carries the engine's own diagnostic text
type EngineError struct {
	Message string
	Err     error
}

func (e *EngineError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "download engine failed"
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// Executor checks preconditions and runs the engine once per job
type Executor struct {
	engine        Engine
	ffmpegCommand string
	resolve       func(string) (string, error)
	logger        zerolog.Logger
}

// NewExecutor creates an executor. An empty ffmpegCommand means "ffmpeg" on PATH.
func NewExecutor(engine Engine, ffmpegCommand string, logger zerolog.Logger) *Executor {
	if ffmpegCommand == "" {
		ffmpegCommand = platform.FFmpegCommand
	}
	return &Executor{
		engine:        engine,
		ffmpegCommand: ffmpegCommand,
		resolve:       platform.ResolveBinary,
		logger:        logger.With().Str("component", "executor").Logger(),
	}
}

// Execute runs cfg against url. It fails with KindMissingDependency before the
// engine is touched when ffmpeg cannot be found, and with KindDownloadEngine
// when the engine fails without producing any file. An engine failure after
// some items were written is tolerated: those are per-item errors.
func (e *Executor) Execute(ctx context.Context, cfg JobConfig, url string, progress model.ProgressReporter) (int, error) {
	if progress == nil {
		progress = model.NopReporter{}
	}

	ffmpegPath, err := e.resolve(e.ffmpegCommand)
	if err != nil {
		return 0, model.NewMissingDependencyError(platform.FFmpegCommand, err)
	}

	runErr := e.engine.Download(ctx, cfg.WithFFmpegLocation(ffmpegPath), url, progress)

	files, listErr := platform.ListMediaFiles(cfg.MediaDir)
	if listErr != nil && runErr == nil {
		return 0, model.NewDownloadEngineError("", listErr)
	}

	if runErr != nil {
		if len(files) == 0 {
			return 0, model.NewDownloadEngineError(engineMessage(runErr), runErr)
		}
		e.logger.Warn().Err(runErr).Int("files", len(files)).Msg("engine reported errors, keeping partial results")
	}

	return len(files), nil
}

func engineMessage(err error) string {
	var engErr *EngineError
	if errors.As(err, &engErr) {
		return engErr.Error()
	}
	return err.Error()
}
