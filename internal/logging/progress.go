package logging

import (
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/ytget/playlist-packager/internal/model"
)

// ProgressLogger reports job progress through a logger. Phase changes and
// finished items are logged at info, repeated transfer ticks at debug.
type ProgressLogger struct {
	logger zerolog.Logger

	mu    sync.Mutex
	phase model.Phase
}

// NewProgressLogger creates a reporter writing to logger
func NewProgressLogger(logger zerolog.Logger) *ProgressLogger {
	return &ProgressLogger{logger: logger}
}

// Report implements model.ProgressReporter
func (p *ProgressLogger) Report(e model.ProgressEvent) {
	p.mu.Lock()
	changed := e.Phase != p.phase
	p.phase = e.Phase
	p.mu.Unlock()

	switch {
	case e.Phase == model.PhaseItemFinished:
		p.event(p.logger.Info(), e).Msg("item finished")
	case changed:
		p.event(p.logger.Info(), e).Msg("stage")
	case e.Phase.IsTransfer():
		p.event(p.logger.Debug(), e).Msg("transfer")
	}
}

func (p *ProgressLogger) event(ev *zerolog.Event, e model.ProgressEvent) *zerolog.Event {
	ev = ev.Str("phase", string(e.Phase))
	if e.JobID != "" {
		ev = ev.Str("job_id", e.JobID)
	}
	if e.Item != "" {
		ev = ev.Str("item", e.Item)
	}
	if e.Count > 0 {
		ev = ev.Int("index", e.Index).Int("count", e.Count)
	}
	if e.Total > 0 {
		ev = ev.Str("downloaded", humanize.IBytes(uint64(e.Downloaded))).
			Str("total", humanize.IBytes(uint64(e.Total)))
	}
	if e.Speed > 0 {
		ev = ev.Str("speed", humanize.IBytes(uint64(e.Speed))+"/s")
	}
	return ev
}
