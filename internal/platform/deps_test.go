package platform

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func writeStub(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, executableName(name))
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func executableName(base string) string {
	if runtime.GOOS == "windows" {
		return base + ".exe"
	}
	return base
}

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := writeStub(t, binDir, "present")
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Blank", Command: "  "},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[0].Path != present {
		t.Errorf("expected resolved path %q, got %q", present, results[0].Path)
	}
	if results[0].Detail != "" {
		t.Errorf("unexpected detail for available dependency: %s", results[0].Detail)
	}

	if results[1].Available {
		t.Fatal("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatal("expected detail message for missing binary")
	}
	if results[1].Command != "clearly-not-present-binary" {
		t.Errorf("unexpected command recorded: %s", results[1].Command)
	}

	if results[2].Available {
		t.Fatal("expected blank command to be unavailable")
	}
}

func TestResolveBinary_PathLookup(t *testing.T) {
	binDir := t.TempDir()
	ffmpegPath := writeStub(t, binDir, "ffmpeg")
	t.Setenv("PATH", binDir)

	path, err := ResolveBinary(FFmpegCommand)
	if err != nil {
		t.Fatalf("ResolveBinary() error = %v", err)
	}
	if path != ffmpegPath {
		t.Errorf("expected %q, got %q", ffmpegPath, path)
	}
}

func TestResolveBinary_NotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	_, err := ResolveBinary(FFmpegCommand)
	if err == nil {
		t.Fatal("expected ffmpeg resolution to fail")
	}
	if !errors.Is(err, ErrBinaryNotFound) {
		t.Errorf("expected ErrBinaryNotFound, got %v", err)
	}
}

func TestRequirements_Defaults(t *testing.T) {
	reqs := Requirements("", "")
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requirements, got %d", len(reqs))
	}
	if reqs[0].Command != FFmpegCommand || reqs[0].Optional {
		t.Errorf("unexpected ffmpeg requirement: %#v", reqs[0])
	}
	if reqs[1].Command != YTDLPCommand || !reqs[1].Optional {
		t.Errorf("unexpected yt-dlp requirement: %#v", reqs[1])
	}

	custom := Requirements("/opt/ffmpeg/bin/ffmpeg", "")
	if custom[0].Command != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("expected custom ffmpeg command, got %q", custom[0].Command)
	}
}
