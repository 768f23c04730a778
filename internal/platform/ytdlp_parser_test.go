package platform

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewPlaylistProbe(t *testing.T) {
	probe := NewPlaylistProbe()

	if probe == nil {
		t.Fatal("probe should not be nil")
	}
	if probe.timeout != DefaultProbeTimeout {
		t.Errorf("expected timeout %v, got %v", DefaultProbeTimeout, probe.timeout)
	}
	if probe.list == nil {
		t.Error("expected default lister to be set")
	}
}

func TestPlaylistProbe_SetTimeout(t *testing.T) {
	probe := NewPlaylistProbe()
	probe.SetTimeout(5 * time.Second)

	if probe.timeout != 5*time.Second {
		t.Errorf("expected timeout 5s, got %v", probe.timeout)
	}
}

func TestIsPlaylistURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected bool
	}{
		{"playlist page", "https://www.youtube.com/playlist?list=PL123", true},
		{"watch with list", "https://www.youtube.com/watch?v=abc&list=PL123", true},
		{"single video", "https://www.youtube.com/watch?v=abc", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPlaylistURL(tt.url); got != tt.expected {
				t.Errorf("IsPlaylistURL(%q) = %v, expected %v", tt.url, got, tt.expected)
			}
		})
	}
}

func TestExtractPlaylistID(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{"playlist page", "https://www.youtube.com/playlist?list=PL123", "PL123"},
		{"list before other params", "https://www.youtube.com/watch?list=PL456&v=abc", "PL456"},
		{"list after video", "https://www.youtube.com/watch?v=abc&list=PL789&index=2", "PL789"},
		{"no list", "https://www.youtube.com/watch?v=abc", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractPlaylistID(tt.url); got != tt.expected {
				t.Errorf("ExtractPlaylistID(%q) = %q, expected %q", tt.url, got, tt.expected)
			}
		})
	}
}

func TestPlaylistProbe_CountItems(t *testing.T) {
	var gotID string
	probe := &PlaylistProbe{
		timeout: time.Second,
		list: func(ctx context.Context, playlistID string) (int, error) {
			gotID = playlistID
			return 12, nil
		},
	}

	count, err := probe.CountItems(context.Background(), "https://www.youtube.com/playlist?list=PLabc", 0)
	if err != nil {
		t.Fatalf("CountItems() error = %v", err)
	}
	if count != 12 {
		t.Errorf("expected 12 items, got %d", count)
	}
	if gotID != "PLabc" {
		t.Errorf("expected playlist id PLabc, got %q", gotID)
	}

	limited, err := probe.CountItems(context.Background(), "https://www.youtube.com/playlist?list=PLabc", 5)
	if err != nil {
		t.Fatalf("CountItems() with limit error = %v", err)
	}
	if limited != 5 {
		t.Errorf("expected limit to cap count at 5, got %d", limited)
	}
}

func TestPlaylistProbe_SingleVideo(t *testing.T) {
	probe := &PlaylistProbe{
		list: func(ctx context.Context, playlistID string) (int, error) {
			t.Fatal("lister must not be called for single videos")
			return 0, nil
		},
	}

	count, err := probe.CountItems(context.Background(), "https://www.youtube.com/watch?v=abc", 0)
	if err != nil {
		t.Fatalf("CountItems() error = %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 item, got %d", count)
	}
}

func TestPlaylistProbe_Errors(t *testing.T) {
	probe := &PlaylistProbe{
		list: func(ctx context.Context, playlistID string) (int, error) {
			return 0, errors.New("network down")
		},
	}

	_, err := probe.CountItems(context.Background(), "https://www.youtube.com/playlist?list=PLx", 0)
	if err == nil || !strings.Contains(err.Error(), "network down") {
		t.Errorf("expected lister error to propagate, got %v", err)
	}

	_, err = probe.CountItems(context.Background(), "https://www.youtube.com/playlist?list=", 0)
	if err == nil || !strings.Contains(err.Error(), "could not extract playlist ID") {
		t.Errorf("expected extraction error, got %v", err)
	}
}
