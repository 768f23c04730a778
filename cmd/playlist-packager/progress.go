package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/ytget/playlist-packager/internal/model"
)

// cliReporter prints job progress as plain status lines
type cliReporter struct {
	mu    sync.Mutex
	w     io.Writer
	phase model.Phase
}

func newCLIReporter(w io.Writer) *cliReporter {
	return &cliReporter{w: w}
}

func (r *cliReporter) Report(e model.ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	changed := e.Phase != r.phase
	r.phase = e.Phase

	switch e.Phase {
	case model.PhaseDownloading:
		fmt.Fprintf(r.w, "Downloading: %s  %s  Speed: %s\n", e.Item, transferred(e), speed(e.Speed))
	case model.PhasePostProcessing:
		if changed {
			fmt.Fprintf(r.w, "Processing: %s\n", e.Item)
		}
	case model.PhaseItemFinished:
		fmt.Fprintf(r.w, "Finished: %s\n", e.Item)
	case model.PhasePreparing:
		fmt.Fprintln(r.w, "Initializing download engine...")
	case model.PhaseArchiving:
		fmt.Fprintln(r.w, "Creating archive...")
	case model.PhaseVerifying:
		fmt.Fprintln(r.w, "Checking archive size...")
	case model.PhaseDone:
		fmt.Fprintf(r.w, "Done: %s\n", humanize.IBytes(uint64(e.Total)))
	}
}

func transferred(e model.ProgressEvent) string {
	if e.Total <= 0 {
		return humanize.IBytes(uint64(e.Downloaded))
	}
	return fmt.Sprintf("%s / %s (%.0f%%)",
		humanize.IBytes(uint64(e.Downloaded)), humanize.IBytes(uint64(e.Total)), e.Fraction()*100)
}

func speed(bps float64) string {
	if bps <= 0 {
		return "N/A"
	}
	return humanize.IBytes(uint64(bps)) + "/s"
}

// warnUnlessDebug keeps the terminal for progress lines unless debugging
func warnUnlessDebug(debug bool) zerolog.Level {
	if debug {
		return zerolog.DebugLevel
	}
	return zerolog.WarnLevel
}
