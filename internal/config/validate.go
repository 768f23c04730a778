package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ytget/playlist-packager/internal/model"
)

// normalize trims strings and clamps values that have a safe nearest setting
func (c *Config) normalize() {
	c.AppEnv = strings.ToLower(strings.TrimSpace(c.AppEnv))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.ListenAddr = strings.TrimSpace(c.ListenAddr)
	c.WorkRoot = strings.TrimSpace(c.WorkRoot)
	c.FFmpegPath = strings.TrimSpace(c.FFmpegPath)
	c.YTDLPPath = strings.TrimSpace(c.YTDLPPath)

	if c.FFmpegPath == "" {
		c.FFmpegPath = DefaultFFmpegPath
	}
	c.DefaultConcurrency = model.ClampConcurrency(c.DefaultConcurrency)
	if c.MaxConcurrentJobs < 1 {
		c.MaxConcurrentJobs = 1
	}
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.AppEnv != EnvDevelopment && c.AppEnv != EnvProduction {
		return fmt.Errorf("app_env must be %q or %q, got %q", EnvDevelopment, EnvProduction, c.AppEnv)
	}
	if c.LogLevel != "" {
		if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("log_level: %w", err)
		}
	}
	if c.ListenAddr == "" {
		return errors.New("listen_addr must be set")
	}
	if c.MaxArchiveMB <= 0 {
		return fmt.Errorf("max_archive_mb must be positive, got %d", c.MaxArchiveMB)
	}
	if c.HTTPReadTimeoutSeconds < 0 || c.HTTPWriteTimeoutSeconds < 0 || c.HTTPIdleTimeoutSeconds < 0 {
		return errors.New("http timeouts must not be negative")
	}
	if c.ShutdownTimeoutSeconds < 0 {
		return errors.New("shutdown_timeout must not be negative")
	}
	if c.ProbeTimeoutSeconds < 0 {
		return errors.New("probe_timeout must not be negative")
	}
	if c.ProgressIntervalMillis < 0 {
		return errors.New("progress_interval_ms must not be negative")
	}
	return nil
}
