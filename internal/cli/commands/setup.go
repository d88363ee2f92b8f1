package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leaplint/internal/cli/config"
	"github.com/leapstack-labs/leaplint/internal/cli/output"
	"github.com/leapstack-labs/leaplint/internal/engine"
	"github.com/leapstack-labs/leaplint/internal/loader"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	_ "github.com/leapstack-labs/leaplint/pkg/lint/rules" // register rules
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Engine   *engine.Engine
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with an engine built from the
// current configuration and lintCfg.
// Returns the context and a cleanup function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command, cfg *config.Config, lintCfg *lint.Config) (*CommandContext, func(), error) {
	logger := config.GetLogger(cmd.Context())

	eng, err := createEngine(cfg, lintCfg, logger)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if err := eng.Close(); err != nil {
			logger.Warn("failed to close engine", "error", err)
		}
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Engine:   eng,
		Renderer: newRenderer(cmd, cfg.OutputFormat),
	}, cleanup, nil
}

// NewCommandContextWithoutEngine creates a CommandContext without an engine.
// Useful for commands that only print metadata.
func NewCommandContextWithoutEngine(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: newRenderer(cmd, cfg.OutputFormat),
	}
}

// newRenderer creates a renderer for cmd's output streams.
func newRenderer(cmd *cobra.Command, format string) *output.Renderer {
	return output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(format))
}

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to
// environment variables and defaults. The fallback is what commands see when
// they run without the root command, as in tests.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	return &config.Config{
		Exclude:      loader.DefaultExclude,
		OutputFormat: getEnvOrDefault("LEAPLINT_OUTPUT", config.DefaultOutput),
		LogLevel:     getEnvOrDefault("LEAPLINT_LOG_LEVEL", config.DefaultLogLevel),
		Verbose:      os.Getenv("LEAPLINT_VERBOSE") == "true",
		Cache:        config.CacheConfig{Path: config.DefaultCacheFile},
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func createEngine(cfg *config.Config, lintCfg *lint.Config, logger *slog.Logger) (*engine.Engine, error) {
	return engine.New(engine.Config{
		Lint:        lintCfg,
		Discovery:   cfg.Discovery(),
		Concurrency: cfg.Concurrency,
		CachePath:   cfg.CachePath(),
		Logger:      logger,
	})
}
