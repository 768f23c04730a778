package download

import (
	"context"

	"github.com/ytget/playlist-packager/internal/model"
)

// Engine is the external media download capability. Download blocks until the
// whole job has finished; per-item failures are tolerated according to
// cfg.IgnoreErrors.
type Engine interface {
	Download(ctx context.Context, cfg JobConfig, url string, progress model.ProgressReporter) error
}

// Runner runs one job into cfg.MediaDir and reports how many media files it produced.
type Runner interface {
	Execute(ctx context.Context, cfg JobConfig, url string, progress model.ProgressReporter) (int, error)
}
