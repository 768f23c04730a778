package platform

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ytget/ytdlp/v2"
)

// Timeout constants
const (
	DefaultProbeTimeout = 30 * time.Second
)

// URL parameters and separators
const (
	PlaylistParam  = "list="
	ParamSeparator = "&"
)

// playlistLister returns the number of entries in a playlist
type playlistLister func(ctx context.Context, playlistID string) (int, error)

// PlaylistProbe counts the entries of a playlist before it is downloaded so
// the caller can compare requested and produced items.
type PlaylistProbe struct {
	timeout time.Duration
	list    playlistLister
}

// NewPlaylistProbe creates a probe backed by the ytdlp library
func NewPlaylistProbe() *PlaylistProbe {
	return &PlaylistProbe{
		timeout: DefaultProbeTimeout,
		list:    listWithLibrary,
	}
}

// SetTimeout sets the timeout for probe operations
func (p *PlaylistProbe) SetTimeout(timeout time.Duration) {
	p.timeout = timeout
}

// CountItems returns how many entries a download of url with the given item
// limit will request. Single-video URLs count as one item.
func (p *PlaylistProbe) CountItems(ctx context.Context, url string, limit int) (int, error) {
	if !IsPlaylistURL(url) {
		return 1, nil
	}

	playlistID := ExtractPlaylistID(url)
	if playlistID == "" {
		return 0, fmt.Errorf("could not extract playlist ID from URL: %s", url)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	count, err := p.list(ctx, playlistID)
	if err != nil {
		return 0, fmt.Errorf("failed to get playlist items: %w", err)
	}
	if limit > 0 && count > limit {
		count = limit
	}
	return count, nil
}

// IsPlaylistURL checks if the URL carries a playlist parameter
func IsPlaylistURL(url string) bool {
	return strings.Contains(url, PlaylistParam)
}

// ExtractPlaylistID extracts the playlist ID from various URL formats
func ExtractPlaylistID(url string) string {
	if !strings.Contains(url, PlaylistParam) {
		return ""
	}
	parts := strings.SplitN(url, PlaylistParam, 2)
	playlistPart := parts[1]
	if strings.Contains(playlistPart, ParamSeparator) {
		playlistPart = strings.Split(playlistPart, ParamSeparator)[0]
	}
	return playlistPart
}

func listWithLibrary(ctx context.Context, playlistID string) (int, error) {
	d := ytdlp.New()
	items, err := d.GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}
