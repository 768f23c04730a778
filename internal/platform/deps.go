package platform

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Command constants
const (
	FFmpegCommand = "ffmpeg"
	YTDLPCommand  = "yt-dlp"
)

// ErrBinaryNotFound is returned when a required executable cannot be located
var ErrBinaryNotFound = errors.New("binary not found")

// Requirement defines an external executable the packager relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a requirement.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Path        string
	Detail      string
}

// Requirements returns the executables a job needs. Empty commands fall back
// to the default names resolved through PATH.
func Requirements(ffmpegCommand, ytdlpCommand string) []Requirement {
	if strings.TrimSpace(ffmpegCommand) == "" {
		ffmpegCommand = FFmpegCommand
	}
	if strings.TrimSpace(ytdlpCommand) == "" {
		ytdlpCommand = YTDLPCommand
	}
	return []Requirement{
		{Name: "FFmpeg", Command: ffmpegCommand, Description: "Merges video streams and converts audio"},
		{Name: "yt-dlp", Command: ytdlpCommand, Description: "Downloads media", Optional: true},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		status := Status{
			Name:        req.Name,
			Command:     strings.TrimSpace(req.Command),
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		path, err := ResolveBinary(status.Command)
		if err != nil {
			status.Detail = err.Error()
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Path = path
		results = append(results, status)
	}
	return results
}

// ResolveBinary returns the absolute path of command, searching PATH when it
// has no directory component.
func ResolveBinary(command string) (string, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		return "", fmt.Errorf("%w: command not configured", ErrBinaryNotFound)
	}
	path, err := exec.LookPath(command)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrBinaryNotFound, command, err)
	}
	return path, nil
}
