// Package config provides configuration management for the leaplint CLI.
//
// The shared lint and cache types are defined in pkg/core and re-exported
// here via type aliases for convenience.
package config

import (
	"log/slog"
	"strings"

	"github.com/leapstack-labs/leaplint/internal/loader"
	"github.com/leapstack-labs/leaplint/pkg/core"
)

// LintConfig is an alias for the shared lint configuration.
type LintConfig = core.LintConfig

// RuleOptions is an alias for the shared rule options type.
type RuleOptions = core.RuleOptions

// CacheConfig is an alias for the shared cache configuration.
type CacheConfig = core.CacheConfig

// Config holds all CLI configuration options.
type Config struct {
	Include      []string    `koanf:"include"`
	Exclude      []string    `koanf:"exclude"`
	OutputFormat string      `koanf:"output"`
	Verbose      bool        `koanf:"verbose"`
	LogLevel     string      `koanf:"log_level"`
	Concurrency  int         `koanf:"concurrency"`
	Cache        CacheConfig `koanf:"cache"`
	Lint         *LintConfig `koanf:"lint"`

	// ProjectRoot is the directory relative paths are resolved against.
	// It is not read from the config file.
	ProjectRoot string `koanf:"-"`
}

// Default configuration values.
const (
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultLogLevel  = "warn"
	DefaultCacheFile = ".leaplint/cache.db"
)

// configFileNames lists the config files searched for, in priority order.
var configFileNames = []string{"leaplint.yaml", "leaplint.yml", "leaplint.toml"}

// Discovery returns the file discovery options for the engine.
func (c *Config) Discovery() loader.Options {
	return loader.Options{Include: c.Include, Exclude: c.Exclude}
}

// CachePath returns the cache database path, or "" when the cache is disabled.
func (c *Config) CachePath() string {
	if !c.Cache.Enabled {
		return ""
	}
	return c.Cache.Path
}

// SlogLevel returns the slog level for the configured log level.
// Verbose always means debug.
func (c *Config) SlogLevel() slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	level, _ := parseLogLevel(c.LogLevel)
	return level
}

func parseLogLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning", "":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelWarn, false
	}
}
