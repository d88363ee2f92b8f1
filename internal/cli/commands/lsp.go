package commands

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leaplint/internal/cli/config"
	"github.com/leapstack-labs/leaplint/internal/lsp"
)

// NewLSPCommand creates the lsp command.
func NewLSPCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the language server",
		Long: `Start a Language Server Protocol server on stdin and stdout.

Editors get leaplint diagnostics for open JavaScript and TypeScript files
as they are edited. Configuration is read from the nearest leaplint config
file at or above the workspace root. Logs go to stderr.`,
		Example: `  # Neovim (lspconfig)
  cmd = { "leaplint", "lsp" }`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runLSP(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), config.GetLogger(cmd.Context()), version)
		},
	}
}

func runLSP(ctx context.Context, in io.Reader, out io.Writer, logger *slog.Logger, version string) error {
	server := lsp.NewServer(in, out, lsp.Options{
		Version:   version,
		Logger:    logger,
		NewLinter: workspaceLinter(logger),
	})

	err := server.Run(ctx)
	if errors.Is(err, lsp.ErrExitWithoutShutdown) {
		logger.Warn("client exited without shutdown")
	}
	return err
}

// workspaceLinter builds an engine from the configuration governing a
// workspace root. Content linting never touches the result cache.
func workspaceLinter(logger *slog.Logger) lsp.LinterFactory {
	return func(root string) (lsp.Linter, error) {
		cfg, err := workspaceConfig(root)
		if err != nil {
			return nil, err
		}
		cfg.Cache.Enabled = false

		eng, err := createEngine(cfg, cfg.LintSettings(), logger)
		if err != nil {
			return nil, err
		}
		return eng, nil
	}
}

// workspaceConfig loads the configuration for root. Without a config file
// at or above root the CLI configuration is used.
func workspaceConfig(root string) (*config.Config, error) {
	if root != "" {
		if path := config.FindConfigFile(root); path != "" {
			return config.LoadConfig(path, nil)
		}
	}
	cfg := *getConfig()
	return &cfg, nil
}
