package job

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAcquireWorkingArea_Layout(t *testing.T) {
	parent := t.TempDir()

	area, err := AcquireWorkingArea(parent)
	if err != nil {
		t.Fatalf("AcquireWorkingArea() error = %v", err)
	}
	defer area.Release()

	if filepath.Dir(area.Root()) != parent {
		t.Errorf("expected area under %s, got %s", parent, area.Root())
	}
	if info, err := os.Stat(area.MediaDir()); err != nil || !info.IsDir() {
		t.Fatalf("media dir missing: %v", err)
	}
	if filepath.Dir(area.ArchivePath()) != area.Root() {
		t.Errorf("archive must be a sibling of the media dir, got %s", area.ArchivePath())
	}
}

func TestAcquireWorkingArea_CreatesParent(t *testing.T) {
	parent := filepath.Join(t.TempDir(), "nested", "root")

	area, err := AcquireWorkingArea(parent)
	if err != nil {
		t.Fatalf("AcquireWorkingArea() error = %v", err)
	}
	defer area.Release()

	if _, err := os.Stat(parent); err != nil {
		t.Errorf("expected parent to be created: %v", err)
	}
}

func TestAcquireWorkingArea_Isolated(t *testing.T) {
	parent := t.TempDir()

	a, err := AcquireWorkingArea(parent)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Release()
	b, err := AcquireWorkingArea(parent)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Release()

	if a.Root() == b.Root() {
		t.Error("two acquisitions must not share a directory")
	}
}

func TestWorkingArea_Release(t *testing.T) {
	area, err := AcquireWorkingArea(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(area.MediaDir(), "a.mp4"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := area.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if _, err := os.Stat(area.Root()); !os.IsNotExist(err) {
		t.Errorf("expected area to be removed, stat err = %v", err)
	}

	// Idempotent
	if err := area.Release(); err != nil {
		t.Errorf("second Release() error = %v", err)
	}
}
