package config

import (
	"os"
	"strconv"
	"strings"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "PACKAGER_"

func (c *Config) applyEnv() {
	c.AppEnv = getEnv("APP_ENV", c.AppEnv)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.ListenAddr = getEnv("LISTEN_ADDR", c.ListenAddr)
	c.HTTPReadTimeoutSeconds = getEnvInt("HTTP_READ_TIMEOUT", c.HTTPReadTimeoutSeconds)
	c.HTTPWriteTimeoutSeconds = getEnvInt("HTTP_WRITE_TIMEOUT", c.HTTPWriteTimeoutSeconds)
	c.HTTPIdleTimeoutSeconds = getEnvInt("HTTP_IDLE_TIMEOUT", c.HTTPIdleTimeoutSeconds)
	c.ShutdownTimeoutSeconds = getEnvInt("SHUTDOWN_TIMEOUT", c.ShutdownTimeoutSeconds)
	c.MaxConcurrentJobs = getEnvInt("MAX_CONCURRENT_JOBS", c.MaxConcurrentJobs)
	c.DefaultConcurrency = getEnvInt("DEFAULT_CONCURRENCY", c.DefaultConcurrency)
	c.WorkRoot = getEnv("WORK_ROOT", c.WorkRoot)
	c.MaxArchiveMB = getEnvInt("MAX_ARCHIVE_MB", c.MaxArchiveMB)
	c.FFmpegPath = getEnv("FFMPEG_PATH", c.FFmpegPath)
	c.YTDLPPath = getEnv("YTDLP_PATH", c.YTDLPPath)
	c.AutoInstallYTDLP = getEnvBool("AUTO_INSTALL_YTDLP", c.AutoInstallYTDLP)
	c.ProbePlaylists = getEnvBool("PROBE_PLAYLISTS", c.ProbePlaylists)
	c.ProbeTimeoutSeconds = getEnvInt("PROBE_TIMEOUT", c.ProbeTimeoutSeconds)
	c.ProgressIntervalMillis = getEnvInt("PROGRESS_INTERVAL_MS", c.ProgressIntervalMillis)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok && v != "" {
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok && v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return fallback
}
