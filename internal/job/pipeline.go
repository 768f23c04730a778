package job

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ytget/playlist-packager/internal/compress"
	"github.com/ytget/playlist-packager/internal/download"
	"github.com/ytget/playlist-packager/internal/model"
	"github.com/ytget/playlist-packager/internal/platform"
)

// JobIDPrefix prefixes every job ID
const JobIDPrefix = "job-"

// ItemCounter reports how many items a URL will yield
type ItemCounter interface {
	CountItems(ctx context.Context, url string, limit int) (int, error)
}

// Options configures a Pipeline
type Options struct {
	WorkRoot        string      // parent of working areas, os.TempDir() if empty
	MaxArchiveBytes int64       // archive ceiling, DefaultMaxArchiveBytes if <= 0
	Counter         ItemCounter // optional, fills JobResult.Requested
}

// Pipeline packages one request at a time per call. A single Pipeline may be
// used from many goroutines; calls share nothing but configuration.
type Pipeline struct {
	runner   download.Runner
	archiver compress.Archiver
	counter  ItemCounter
	workRoot string
	ceiling  int64
	logger   zerolog.Logger

	readFile func(string) ([]byte, error)
}

// New creates a pipeline
func New(runner download.Runner, archiver compress.Archiver, opts Options, logger zerolog.Logger) *Pipeline {
	ceiling := opts.MaxArchiveBytes
	if ceiling <= 0 {
		ceiling = DefaultMaxArchiveBytes
	}
	return &Pipeline{
		runner:   runner,
		archiver: archiver,
		counter:  opts.Counter,
		workRoot: opts.WorkRoot,
		ceiling:  ceiling,
		logger:   logger.With().Str("component", "pipeline").Logger(),
		readFile: os.ReadFile,
	}
}

// Ceiling returns the archive size limit in bytes
func (p *Pipeline) Ceiling() int64 {
	return p.ceiling
}

// Run executes the whole pipeline for req and returns exactly one result. The
// first failing stage ends the run; the working area is removed on every path.
func (p *Pipeline) Run(ctx context.Context, req model.DownloadRequest, progress model.ProgressReporter) (result model.JobResult) {
	jobID := generateJobID()
	logger := p.logger.With().Str("job_id", jobID).Str("url", req.URL).Str("mode", string(req.Mode)).Logger()
	progress = withJobID(progress, jobID)
	started := time.Now()

	defer func() {
		if r := recover(); r != nil {
			result = model.Failed(model.NewInternalError(fmt.Errorf("panic: %v", r)))
		}
		result.JobID = jobID
		p.logOutcome(logger, result, time.Since(started))
	}()

	if err := req.Validate(); err != nil {
		return model.Failed(model.NewInvalidRequestError(err))
	}

	sel, err := download.SelectFormat(req)
	if err != nil {
		return model.Failed(err)
	}

	area, err := AcquireWorkingArea(p.workRoot)
	if err != nil {
		return model.Failed(model.NewInternalError(err))
	}
	defer func() {
		if err := area.Release(); err != nil {
			logger.Warn().Err(err).Str("dir", area.Root()).Msg("failed to remove working area")
		}
	}()

	cfg := download.BuildJobConfig(req, sel, area.MediaDir())
	progress.Report(model.ProgressEvent{Phase: model.PhasePreparing})
	logger.Info().Str("format", sel.Format).Int("limit", cfg.PlaylistEnd).Int("concurrency", cfg.Concurrency).Msg("download started")

	files, err := p.runner.Execute(ctx, cfg, req.URL, progress)
	if err != nil {
		return model.Failed(err)
	}
	if files == 0 {
		logger.Warn().Msg("engine finished without producing any file")
	}
	if mediaSize, err := platform.DirSize(area.MediaDir()); err == nil {
		logger.Info().Int("files", files).Str("media_size", platform.HumanBytes(mediaSize)).Msg("download finished")
	}

	progress.Report(model.ProgressEvent{Phase: model.PhaseArchiving})
	archive, err := p.archiver.Archive(ctx, area.MediaDir(), area.ArchivePath(), progress)
	if err != nil {
		return model.Failed(classify(err, model.NewArchivingError))
	}

	progress.Report(model.ProgressEvent{Phase: model.PhaseVerifying})
	size, err := CheckSize(archive.Path, p.ceiling)
	if err != nil {
		return model.Failed(err)
	}

	payload, err := Materialize(archive.Path, p.readFile)
	if err != nil {
		return model.Failed(err)
	}

	result = model.Succeeded(payload, files)
	result.Requested = p.countItems(ctx, logger, req)
	progress.Report(model.ProgressEvent{Phase: model.PhaseDone, Downloaded: size, Total: size})
	return result
}

// countItems is best effort: a failure only leaves Requested unknown
func (p *Pipeline) countItems(ctx context.Context, logger zerolog.Logger, req model.DownloadRequest) int {
	if p.counter == nil {
		return 0
	}
	n, err := p.counter.CountItems(ctx, req.URL, req.Limit)
	if err != nil {
		logger.Debug().Err(err).Msg("could not count requested items")
		return 0
	}
	return n
}

func (p *Pipeline) logOutcome(logger zerolog.Logger, result model.JobResult, took time.Duration) {
	if result.Status.IsSuccess() {
		ev := logger.Info().
			Int("files", result.Files).
			Str("size", platform.HumanBytes(int64(len(result.Payload)))).
			Dur("took", took)
		if result.Requested > 0 {
			ev = ev.Int("requested", result.Requested)
		}
		ev.Msg("job finished")
		return
	}
	logger.Error().
		Str("kind", model.KindOf(result.Err).String()).
		Str("reason", result.Message).
		Dur("took", took).
		Msg("job failed")
}

// classify keeps already classified errors and wraps the rest with wrap
func classify(err error, wrap func(error) *model.Error) error {
	var classified *model.Error
	if errors.As(err, &classified) {
		return err
	}
	return wrap(err)
}

func withJobID(progress model.ProgressReporter, jobID string) model.ProgressReporter {
	if progress == nil {
		return model.NopReporter{}
	}
	return model.ProgressFunc(func(e model.ProgressEvent) {
		e.JobID = jobID
		progress.Report(e)
	})
}

// generateJobID generates a unique job ID using UUID v7 for time ordering
func generateJobID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(JobIDPrefix+"%d", time.Now().UnixNano())
	}
	return JobIDPrefix + id.String()
}
