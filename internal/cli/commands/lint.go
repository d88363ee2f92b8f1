package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leaplint/internal/cli/config"
	"github.com/leapstack-labs/leaplint/internal/cli/output"
	"github.com/leapstack-labs/leaplint/internal/engine"
	"github.com/leapstack-labs/leaplint/internal/watch"
	"github.com/leapstack-labs/leaplint/pkg/core"
	"github.com/leapstack-labs/leaplint/pkg/lint"
)

// ErrLintIssues is returned when a lint run should fail the process.
var ErrLintIssues = errors.New("lint issues found")

// LintOptions holds options for the lint command.
type LintOptions struct {
	Paths         []string // Files or directories to lint
	Format        string   // Output format: text, markdown, json
	Disable       []string // Rule IDs to disable
	Rules         []string // Run only specific rules
	Severity      string   // Minimum severity to report: error, warning, info, hint
	MaxWarnings   int      // Fail when warnings exceed this count (-1 disables)
	Cache         bool     // Use the result cache
	CacheLocation string   // Cache database path
	Watch         bool     // Re-lint on file changes
	Concurrency   int      // Files linted in parallel (0 = NumCPU)
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint JavaScript and TypeScript files",
		Long: `Analyze JavaScript and TypeScript sources for problems.

Directories are searched recursively for .js, .mjs, .cjs, .jsx, .ts, .mts,
.cts and .tsx files; node_modules and .git are skipped. Rules can be
configured in leaplint.yaml or per file with a /*--- ... ---*/ block.

The command fails when an error-severity issue remains after filtering,
or when the number of warnings exceeds --max-warnings.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Lint the current directory
  leaplint lint

  # Lint specific paths
  leaplint lint src/ scripts/build.js

  # Output as JSON
  leaplint lint --format json

  # Disable a rule
  leaplint lint --disable no-control-regex

  # Reuse results for unchanged files
  leaplint lint --cache

  # Re-lint whenever a file changes
  leaplint lint --watch src/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Paths = args
			return runLint(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Run only specific rules")
	cmd.Flags().StringVar(&opts.Severity, "severity", "hint", "Minimum severity to report: error, warning, info, hint")
	cmd.Flags().IntVar(&opts.MaxWarnings, "max-warnings", -1, "Number of warnings to trigger a failing exit (-1 to disable)")
	cmd.Flags().BoolVar(&opts.Cache, "cache", false, "Only lint files that changed since the last run")
	cmd.Flags().StringVar(&opts.CacheLocation, "cache-location", "", "Path to the cache database")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Watch for changes and re-lint")
	cmd.Flags().IntVar(&opts.Concurrency, "concurrency", 0, "Number of files linted in parallel (default: number of CPUs)")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "markdown", "json"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("rule", completeRuleIDs)
	_ = cmd.RegisterFlagCompletionFunc("disable", completeRuleIDs)

	return cmd
}

func runLint(cmd *cobra.Command, opts *LintOptions) error {
	threshold, ok := core.ParseSeverity(opts.Severity)
	if !ok {
		return fmt.Errorf("invalid --severity %q (expected error, warning, info or hint)", opts.Severity)
	}

	cfg, err := applyLintFlags(cmd, getConfig(), opts)
	if err != nil {
		return err
	}
	lintCfg, err := buildLintConfig(cfg, opts)
	if err != nil {
		return err
	}

	cmdCtx, cleanup, err := NewCommandContext(cmd, cfg, lintCfg)
	if err != nil {
		return err
	}
	defer cleanup()

	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = newRenderer(cmd, opts.Format)
	}

	paths := opts.Paths
	if len(paths) == 0 {
		paths = []string{"."}
	}

	if opts.Watch {
		return runLintWatch(cmd.Context(), cmdCtx, r, paths, threshold)
	}

	result, err := cmdCtx.Engine.Run(cmd.Context(), paths)
	if err != nil {
		return err
	}
	result.Filter(threshold)
	renderLintResults(r, result)

	return lintOutcome(result, opts.MaxWarnings)
}

// applyLintFlags returns a copy of cfg with the changed command flags applied.
func applyLintFlags(cmd *cobra.Command, cfg *config.Config, opts *LintOptions) (*config.Config, error) {
	out := *cfg
	flags := cmd.Flags()

	if flags.Changed("cache") {
		out.Cache.Enabled = opts.Cache
	}
	if flags.Changed("cache-location") && opts.CacheLocation != "" {
		abs, err := filepath.Abs(opts.CacheLocation)
		if err != nil {
			return nil, fmt.Errorf("invalid --cache-location: %w", err)
		}
		out.Cache.Path = abs
		out.Cache.Enabled = true
	}
	if flags.Changed("concurrency") {
		if opts.Concurrency < 0 {
			return nil, fmt.Errorf("--concurrency must not be negative, got %d", opts.Concurrency)
		}
		out.Concurrency = opts.Concurrency
	}
	return &out, nil
}

// buildLintConfig merges the project lint settings with CLI overrides.
// CLI flags take precedence.
func buildLintConfig(cfg *config.Config, opts *LintOptions) (*lint.Config, error) {
	lintCfg := cfg.LintSettings()

	for _, id := range opts.Disable {
		lintCfg.Disable(strings.TrimSpace(id))
	}

	// If --rule specified, disable all others
	if len(opts.Rules) > 0 {
		enabled := make(map[string]bool)
		for _, id := range opts.Rules {
			id = strings.TrimSpace(id)
			if _, ok := lint.GetRuleByID(id); !ok {
				return nil, fmt.Errorf("%w: %s", lint.ErrUnknownRule, id)
			}
			enabled[id] = true
		}
		for _, rule := range lint.GetAllRules() {
			if !enabled[rule.ID()] {
				lintCfg.Disable(rule.ID())
			}
		}
	}

	return lintCfg, nil
}

// lintOutcome decides whether the run fails: any error-severity diagnostic,
// or more warnings than maxWarnings when maxWarnings is not negative.
func lintOutcome(result *engine.Result, maxWarnings int) error {
	if result.Count(core.SeverityError) > 0 {
		return ErrLintIssues
	}
	if warnings := result.Count(core.SeverityWarning); maxWarnings >= 0 && warnings > maxWarnings {
		return fmt.Errorf("%w: %d warnings exceed --max-warnings %d", ErrLintIssues, warnings, maxWarnings)
	}
	return nil
}

func runLintWatch(ctx context.Context, cmdCtx *CommandContext, r *output.Renderer, paths []string, threshold core.Severity) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	eng := cmdCtx.Engine
	lintAndRender := func(ctx context.Context, run func(context.Context) (*engine.Result, error)) {
		result, err := run(ctx)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				r.Error(err.Error())
			}
			return
		}
		result.Filter(threshold)
		renderLintResults(r, result)
	}

	lintAndRender(ctx, func(ctx context.Context) (*engine.Result, error) {
		return eng.Run(ctx, paths)
	})
	r.Println(r.Styles().Muted.Render("Watching for changes. Press Ctrl+C to stop."))

	w := watch.New(paths, cmdCtx.Cfg.Discovery(), func(ctx context.Context, changed []string) {
		r.Println("")
		r.Println(r.Styles().Muted.Render(fmt.Sprintf("%d file(s) changed", len(changed))))
		lintAndRender(ctx, func(ctx context.Context) (*engine.Result, error) {
			return eng.LintFiles(ctx, changed)
		})
	}, cmdCtx.Logger)

	return w.Run(ctx)
}

// renderLintResults writes the run in the renderer's mode.
func renderLintResults(r *output.Renderer, result *engine.Result) {
	summary := summarize(result)

	if r.EffectiveMode() == output.ModeJSON {
		_ = r.JSON(toLintOutput(result, summary))
		return
	}

	if summary.TotalIssues == 0 {
		r.Success(fmt.Sprintf("No lint issues found in %d files", summary.FilesAnalyzed))
		return
	}

	styles := r.Styles()
	for _, res := range result.Files {
		if len(res.Diagnostics) == 0 {
			continue
		}
		r.Println(styles.FilePath.Render(res.Path))
		for _, d := range res.Diagnostics {
			loc := fmt.Sprintf("%d:%d", d.Pos.Line, d.Pos.Column)
			if d.Pos.Line == 0 {
				loc = "-"
			}
			r.Printf("  %s  %s  %s  %s\n",
				styles.Muted.Render(fmt.Sprintf("%-7s", loc)),
				severityLabel(r, d.Severity),
				d.Message,
				styles.RuleID.Render(d.RuleID),
			)
		}
		r.Println("")
	}

	parts := []string{fmt.Sprintf("%d issues", summary.TotalIssues)}
	if summary.Errors > 0 {
		parts = append(parts, fmt.Sprintf("%d errors", summary.Errors))
	}
	if summary.Warnings > 0 {
		parts = append(parts, fmt.Sprintf("%d warnings", summary.Warnings))
	}
	if summary.Info > 0 {
		parts = append(parts, fmt.Sprintf("%d info", summary.Info))
	}
	if summary.Hints > 0 {
		parts = append(parts, fmt.Sprintf("%d hints", summary.Hints))
	}
	r.Printf("Summary: %s in %d files\n", strings.Join(parts, ", "), summary.FilesAnalyzed)
}

func summarize(result *engine.Result) output.LintSummary {
	return output.LintSummary{
		FilesAnalyzed: len(result.Files),
		FilesCached:   result.Cached(),
		TotalIssues:   result.Total(),
		Errors:        result.Count(core.SeverityError),
		Warnings:      result.Count(core.SeverityWarning),
		Info:          result.Count(core.SeverityInfo),
		Hints:         result.Count(core.SeverityHint),
	}
}

func toLintOutput(result *engine.Result, summary output.LintSummary) output.LintOutput {
	out := output.LintOutput{
		RunID:   result.RunID,
		Summary: summary,
		Files:   make([]output.LintFileResult, 0, len(result.Files)),
	}
	for _, res := range result.Files {
		if len(res.Diagnostics) == 0 {
			continue
		}
		fr := output.LintFileResult{Path: res.Path}
		for _, d := range res.Diagnostics {
			fr.Diagnostics = append(fr.Diagnostics, output.LintDiagnostic{
				RuleID:           d.RuleID,
				Severity:         d.Severity.String(),
				Message:          d.Message,
				Line:             d.Pos.Line,
				Column:           d.Pos.Column,
				EndLine:          d.EndPos.Line,
				EndColumn:        d.EndPos.Column,
				DocumentationURL: d.DocumentationURL,
			})
		}
		out.Files = append(out.Files, fr)
	}
	return out
}

func severityLabel(r *output.Renderer, sev core.Severity) string {
	styles := r.Styles()
	switch sev {
	case core.SeverityError:
		return styles.Error.Render("error  ")
	case core.SeverityWarning:
		return styles.Warning.Render("warning")
	case core.SeverityInfo:
		return styles.Info.Render("info   ")
	case core.SeverityHint:
		return styles.Muted.Render("hint   ")
	default:
		return styles.Muted.Render("unknown")
	}
}

func completeRuleIDs(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	rules := lint.GetAllRules()
	ids := make([]string, 0, len(rules))
	for _, r := range rules {
		ids = append(ids, r.ID()+"\t"+r.Description())
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}
