package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// File extensions to skip
var (
	SkippedExtensions = []string{".part", ".ytdl", ".temp"}
)

// Portable name constants
const (
	FallbackFileName  = "file"
	NameReplacement   = '_'
	MaxEntryNameBytes = 200
)

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// IsPartialFile reports whether name is an engine scratch file
func IsPartialFile(name string) bool {
	for _, ext := range SkippedExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// ListMediaFiles returns the finished regular files directly inside dir,
// sorted by name. Subdirectories and partial downloads are ignored.
func ListMediaFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if IsPartialFile(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// PortableName folds name to a form that is safe as an archive entry or file
// name on every common OS: accents are stripped, anything outside
// [A-Za-z0-9._-] becomes '_', and runs of '_' are collapsed.
func PortableName(name string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	lastWasReplacement := false
	for _, r := range folded {
		if isPortableRune(r) {
			b.WriteRune(r)
			lastWasReplacement = false
			continue
		}
		if !lastWasReplacement {
			b.WriteRune(NameReplacement)
			lastWasReplacement = true
		}
	}

	out := strings.Trim(b.String(), "_. ")
	if len(out) > MaxEntryNameBytes {
		ext := filepath.Ext(out)
		if len(ext) >= MaxEntryNameBytes {
			ext = ""
		}
		out = out[:MaxEntryNameBytes-len(ext)] + ext
	}
	if out == "" {
		return FallbackFileName
	}
	return out
}

func isPortableRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '.', r == '-', r == '_':
		return true
	}
	return false
}

// HumanBytes formats a byte count for logs, e.g. "12 MiB"
func HumanBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}

// DirSize sums the sizes of the regular files directly inside dir
func DirSize(dir string) (int64, error) {
	files, err := ListMediaFiles(dir)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			return 0, err
		}
		total += info.Size()
	}
	return total, nil
}
