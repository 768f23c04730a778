// Package config loads packager settings from defaults, an optional TOML file
// and PACKAGER_* environment variables.
package config
