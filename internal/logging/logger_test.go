package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ytget/playlist-packager/internal/model"
)

func TestNewWithWriter_Levels(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		level string
		want  zerolog.Level
	}{
		{"production default", "production", "", zerolog.InfoLevel},
		{"development default", "development", "", zerolog.DebugLevel},
		{"explicit level", "production", "warn", zerolog.WarnLevel},
		{"bad level ignored", "production", "loud", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewWithWriter(&bytes.Buffer{}, tt.env, tt.level)
			if logger.GetLevel() != tt.want {
				t.Errorf("expected level %s, got %s", tt.want, logger.GetLevel())
			}
		})
	}
}

func TestNewWithWriter_ProductionJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "production", "")

	logger.Info().Str("job_id", "job-1").Msg("job finished")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if line["job_id"] != "job-1" || line["message"] != "job finished" {
		t.Errorf("unexpected fields %v", line)
	}
	if _, ok := line["time"]; !ok {
		t.Error("expected a timestamp")
	}
}

func TestNewWithWriter_DevelopmentConsole(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "development", "")

	logger.Debug().Msg("hello")

	if strings.HasPrefix(buf.String(), "{") {
		t.Errorf("expected console output, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("expected message in output, got %q", buf.String())
	}
}

func TestProgressLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.InfoLevel)
	reporter := NewProgressLogger(logger)

	reporter.Report(model.ProgressEvent{JobID: "job-1", Phase: model.PhasePreparing})
	reporter.Report(model.ProgressEvent{JobID: "job-1", Phase: model.PhaseDownloading, Downloaded: 10, Total: 100})
	reporter.Report(model.ProgressEvent{JobID: "job-1", Phase: model.PhaseDownloading, Downloaded: 50, Total: 100})
	reporter.Report(model.ProgressEvent{JobID: "job-1", Phase: model.PhaseItemFinished, Item: "1_-_a.mp4", Index: 1, Count: 2})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 info lines (two stages, one item), got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[2], `"item":"1_-_a.mp4"`) {
		t.Errorf("expected item in last line, got %q", lines[2])
	}
	if !strings.Contains(lines[1], `"total":"100 B"`) {
		t.Errorf("expected humanized total, got %q", lines[1])
	}
}
