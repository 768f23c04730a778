package job

import (
	"errors"
	"fmt"
	"os"

	"github.com/ytget/playlist-packager/internal/model"
)

// DefaultMaxArchiveBytes is the archive ceiling used when none is configured
const DefaultMaxArchiveBytes int64 = 550 * 1024 * 1024

// CheckSize stats the archive and rejects it when it is larger than ceiling.
// It never opens the file.
func CheckSize(path string, ceiling int64) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, model.NewMissingArtifactError(err)
		}
		return 0, model.NewArchivingError(fmt.Errorf("stat archive: %w", err))
	}
	if info.Size() > ceiling {
		return info.Size(), model.NewTooLargeError(info.Size(), ceiling)
	}
	return info.Size(), nil
}

// Materialize loads the accepted archive into memory
func Materialize(path string, readFile func(string) ([]byte, error)) ([]byte, error) {
	if readFile == nil {
		readFile = os.ReadFile
	}
	data, err := readFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, model.NewMissingArtifactError(err)
		}
		return nil, model.NewArchivingError(fmt.Errorf("read archive: %w", err))
	}
	return data, nil
}
