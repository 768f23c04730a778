package compress

import (
	"context"

	"github.com/ytget/playlist-packager/internal/model"
)

// Archiver defines the interface for the archiving service.
type Archiver interface {
	Archive(ctx context.Context, srcDir, destPath string, progress model.ProgressReporter) (*Result, error)
}
