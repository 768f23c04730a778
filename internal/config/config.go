package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/ytget/playlist-packager/internal/model"
)

// Config holds the packager settings. Values come from the built-in defaults,
// then an optional TOML file, then PACKAGER_* environment variables.
type Config struct {
	AppEnv   string `toml:"app_env"`
	LogLevel string `toml:"log_level"`

	ListenAddr              string `toml:"listen_addr"`
	HTTPReadTimeoutSeconds  int    `toml:"http_read_timeout"`
	HTTPWriteTimeoutSeconds int    `toml:"http_write_timeout"`
	HTTPIdleTimeoutSeconds  int    `toml:"http_idle_timeout"`
	ShutdownTimeoutSeconds  int    `toml:"shutdown_timeout"`
	MaxConcurrentJobs       int    `toml:"max_concurrent_jobs"`
	DefaultConcurrency      int    `toml:"default_concurrency"`
	WorkRoot                string `toml:"work_root"`
	MaxArchiveMB            int    `toml:"max_archive_mb"`
	FFmpegPath              string `toml:"ffmpeg_path"`
	YTDLPPath               string `toml:"ytdlp_path"`
	AutoInstallYTDLP        bool   `toml:"auto_install_ytdlp"`
	ProbePlaylists          bool   `toml:"probe_playlists"`
	ProbeTimeoutSeconds     int    `toml:"probe_timeout"`
	ProgressIntervalMillis  int    `toml:"progress_interval_ms"`
}

// Environment names
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Default values
const (
	DefaultListenAddr         = ":8080"
	DefaultMaxArchiveMB       = 550
	DefaultConcurrency        = model.DefaultConcurrency
	DefaultMaxConcurrentJobs  = 2
	DefaultFFmpegPath         = "ffmpeg"
	DefaultReadTimeout        = 15
	DefaultWriteTimeout       = 1800 // a playlist may take a long time to fetch
	DefaultIdleTimeout        = 60
	DefaultShutdownTimeout    = 30
	DefaultProbeTimeout       = 30
	DefaultProgressIntervalMS = 500
)

// Default returns the built-in configuration
func Default() Config {
	return Config{
		AppEnv:                  EnvDevelopment,
		ListenAddr:              DefaultListenAddr,
		HTTPReadTimeoutSeconds:  DefaultReadTimeout,
		HTTPWriteTimeoutSeconds: DefaultWriteTimeout,
		HTTPIdleTimeoutSeconds:  DefaultIdleTimeout,
		ShutdownTimeoutSeconds:  DefaultShutdownTimeout,
		MaxConcurrentJobs:       DefaultMaxConcurrentJobs,
		DefaultConcurrency:      DefaultConcurrency,
		MaxArchiveMB:            DefaultMaxArchiveMB,
		FFmpegPath:              DefaultFFmpegPath,
		AutoInstallYTDLP:        true,
		ProbePlaylists:          true,
		ProbeTimeoutSeconds:     DefaultProbeTimeout,
		ProgressIntervalMillis:  DefaultProgressIntervalMS,
	}
}

// Load reads the configuration. An empty path or a path that does not exist
// leaves the defaults in place. A .env file in the working directory is
// loaded into the environment first; it never overrides variables already set.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	_ = godotenv.Load()
	cfg.applyEnv()
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) loadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	if err := toml.NewDecoder(file).DisallowUnknownFields().Decode(c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// IsDevelopment reports whether the service runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == EnvDevelopment
}

// MaxArchiveBytes returns the archive ceiling in bytes
func (c *Config) MaxArchiveBytes() int64 {
	return int64(c.MaxArchiveMB) * 1024 * 1024
}

// HTTPReadTimeout returns the server read timeout
func (c *Config) HTTPReadTimeout() time.Duration {
	return time.Duration(c.HTTPReadTimeoutSeconds) * time.Second
}

// HTTPWriteTimeout returns the server write timeout
func (c *Config) HTTPWriteTimeout() time.Duration {
	return time.Duration(c.HTTPWriteTimeoutSeconds) * time.Second
}

// HTTPIdleTimeout returns the server idle timeout
func (c *Config) HTTPIdleTimeout() time.Duration {
	return time.Duration(c.HTTPIdleTimeoutSeconds) * time.Second
}

// ShutdownTimeout returns how long in-flight jobs get on shutdown
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// ProbeTimeout returns the playlist probe timeout
func (c *Config) ProbeTimeout() time.Duration {
	return time.Duration(c.ProbeTimeoutSeconds) * time.Second
}

// ProgressInterval returns how often engine progress is forwarded
func (c *Config) ProgressInterval() time.Duration {
	return time.Duration(c.ProgressIntervalMillis) * time.Millisecond
}
