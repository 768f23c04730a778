package compress

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ytget/playlist-packager/internal/model"
	"github.com/ytget/playlist-packager/internal/platform"
)

// Archive constants
const (
	ArchiveExtension = ".zip"
	TaskIDPrefix     = "archive-"
	ArchivePerm      = 0o644
)

// Result describes a finished archive
type Result struct {
	ID       string
	Path     string
	Entries  []string // entry names in archive order
	Size     int64
	Started  time.Time
	Finished time.Time
}

// Service writes flat zip archives of a directory's finished files
type Service struct {
	logger zerolog.Logger
}

// NewService creates a new archiving service
func NewService(logger zerolog.Logger) *Service {
	return &Service{logger: logger.With().Str("component", "archiver").Logger()}
}

// Archive zips every finished regular file directly inside srcDir into
// destPath. Entry names are portable and unique; nothing else is added.
// A partially written archive is removed on failure.
func (s *Service) Archive(ctx context.Context, srcDir, destPath string, progress model.ProgressReporter) (res *Result, err error) {
	if progress == nil {
		progress = model.NopReporter{}
	}

	files, err := platform.ListMediaFiles(srcDir)
	if err != nil {
		return nil, err
	}

	res = &Result{
		ID:      generateTaskID(),
		Path:    destPath,
		Started: time.Now(),
	}

	out, err := os.OpenFile(destPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, ArchivePerm)
	if err != nil {
		return nil, fmt.Errorf("failed to create archive file: %w", err)
	}
	defer func() {
		if err != nil {
			os.Remove(destPath)
		}
	}()

	zw := zip.NewWriter(out)
	used := make(map[string]bool, len(files))
	for _, file := range files {
		if err = ctx.Err(); err != nil {
			zw.Close()
			out.Close()
			return nil, err
		}

		name := uniqueName(platform.PortableName(filepath.Base(file)), used)
		progress.Report(model.ProgressEvent{Phase: model.PhaseArchiving, Item: name})

		if err = addFile(zw, file, name); err != nil {
			zw.Close()
			out.Close()
			return nil, fmt.Errorf("failed to add %s: %w", filepath.Base(file), err)
		}
		res.Entries = append(res.Entries, name)
	}

	if err = zw.Close(); err != nil {
		out.Close()
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	if err = out.Close(); err != nil {
		return nil, fmt.Errorf("failed to close archive: %w", err)
	}

	info, err := os.Stat(destPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat archive: %w", err)
	}
	res.Size = info.Size()
	res.Finished = time.Now()

	s.logger.Debug().
		Str("archive_id", res.ID).
		Int("entries", len(res.Entries)).
		Str("size", platform.HumanBytes(res.Size)).
		Dur("took", res.Finished.Sub(res.Started)).
		Msg("archive written")

	return res, nil
}

// addFile streams one file into the archive under name
func addFile(zw *zip.Writer, path, name string) error {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = name
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, in)
	return err
}

// uniqueName appends -2, -3, ... before the extension until name is unused
func uniqueName(name string, used map[string]bool) string {
	candidate := name
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for i := 2; used[candidate]; i++ {
		candidate = base + "-" + strconv.Itoa(i) + ext
	}
	used[candidate] = true
	return candidate
}

// generateTaskID generates a unique archive ID using UUID v7 for time ordering
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
