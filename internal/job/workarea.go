package job

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ytget/playlist-packager/internal/compress"
	"github.com/ytget/playlist-packager/internal/platform"
)

// Working area layout
const (
	workDirPattern = "job-*"
	mediaDirName   = "media"
	archiveName    = "package" + compress.ArchiveExtension
)

// WorkingArea is an isolated directory owned by one job. The archive is
// written next to the media directory, never inside it.
type WorkingArea struct {
	root string

	once       sync.Once
	releaseErr error
}

// AcquireWorkingArea creates a fresh area under parent (os.TempDir() if empty)
func AcquireWorkingArea(parent string) (*WorkingArea, error) {
	if parent != "" {
		if err := platform.CreateDirectoryIfNotExists(parent); err != nil {
			return nil, fmt.Errorf("failed to create work root %s: %w", parent, err)
		}
	}
	root, err := os.MkdirTemp(parent, workDirPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to create working area: %w", err)
	}
	if err := os.Mkdir(filepath.Join(root, mediaDirName), platform.DefaultDirPermissions); err != nil {
		os.RemoveAll(root)
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return &WorkingArea{root: root}, nil
}

// Root returns the area's top directory
func (a *WorkingArea) Root() string {
	return a.root
}

// MediaDir is where the engine writes downloaded files
func (a *WorkingArea) MediaDir() string {
	return filepath.Join(a.root, mediaDirName)
}

// ArchivePath is where the archive of MediaDir is written
func (a *WorkingArea) ArchivePath() string {
	return filepath.Join(a.root, archiveName)
}

// Release removes the area and everything in it. Safe to call more than once.
func (a *WorkingArea) Release() error {
	a.once.Do(func() {
		a.releaseErr = os.RemoveAll(a.root)
	})
	return a.releaseErr
}
