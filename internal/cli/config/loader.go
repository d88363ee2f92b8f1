package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/leaplint/internal/loader"
)

// loggerKey is used to store the logger in context.
type loggerKey struct{}

// maxUpwardSearchLevels limits how far up the directory tree to search for config files.
const maxUpwardSearchLevels = 10

// envPrefix is the prefix for environment overrides. A double underscore
// separates nested keys: LEAPLINT_CACHE__ENABLED -> cache.enabled.
const envPrefix = "LEAPLINT_"

// flagKeys maps global CLI flag names onto config keys. Command flags such
// as lint's --cache are applied by the command itself.
var flagKeys = map[string]string{
	"output":    "output",
	"verbose":   "verbose",
	"log-level": "log_level",
}

// Package-level koanf instance and config file tracking
var (
	k              = koanf.New(".")
	configFileUsed string
	currentConfig  *Config
)

// configIn returns the first leaplint config file in dir, or "".
func configIn(dir string) string {
	for _, name := range configFileNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// findProjectRootUpward searches upward from startDir for a leaplint config file.
// Returns empty string if not found within maxUpwardSearchLevels.
func findProjectRootUpward(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		if configIn(dir) != "" {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// FindConfigFile returns the nearest leaplint config file at or above
// startDir, or "" when there is none.
func FindConfigFile(startDir string) string {
	if root := findProjectRootUpward(startDir); root != "" {
		return configIn(root)
	}
	return ""
}

// inferProjectRoot picks the directory that relative config paths are anchored at.
// Priority:
//  1. Directory of an explicit --config file
//  2. Nearest ancestor of the working directory holding a leaplint config
//  3. Current working directory
func inferProjectRoot(cfgFile string) string {
	if cfgFile != "" {
		if abs, err := filepath.Abs(cfgFile); err == nil {
			return filepath.Dir(abs)
		}
		return filepath.Dir(cfgFile)
	}

	cwd, err := os.Getwd()
	if err != nil || cwd == "" {
		return "."
	}
	if root := findProjectRootUpward(cwd); root != "" {
		return root
	}
	return cwd
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not absolute.
// Returns the path unchanged if it's empty or already absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
	currentConfig = nil
}

// LoadConfig loads configuration from defaults, the config file, environment
// variables and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k = koanf.New(".")
	configFileUsed = ""

	projectRoot := inferProjectRoot(cfgFile)

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"exclude":       loader.DefaultExclude,
		"output":        DefaultOutput,
		"verbose":       false,
		"log_level":     DefaultLogLevel,
		"concurrency":   0,
		"cache.enabled": false,
		"cache.path":    DefaultCacheFile,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if cfgFile == "" {
		cfgFile = configIn(projectRoot)
	}
	if cfgFile != "" {
		if err := loadFile(cfgFile); err != nil {
			return nil, err
		}
		configFileUsed = cfgFile
	}

	// 3. Environment variables
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags (highest priority)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	cfg.ProjectRoot = projectRoot
	cfg.Cache.Path = resolvePathRelativeTo(cfg.Cache.Path, projectRoot)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	currentConfig = &cfg
	return &cfg, nil
}

// loadFile loads a YAML or TOML config file into k.
func loadFile(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("error reading config file %s: %w", path, err)
		}
		var raw map[string]interface{}
		if err := toml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("error parsing config file %s: %w", path, err)
		}
		if err := k.Load(confmap.Provider(raw, ""), nil); err != nil {
			return fmt.Errorf("error loading config file %s: %w", path, err)
		}
	default:
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}
	return nil
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentConfig returns the currently loaded configuration.
// This is available after LoadConfig is called.
func GetCurrentConfig() *Config {
	return currentConfig
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return slog.New(slog.DiscardHandler)
}
