// Package engine drives a lint run: it discovers files, loads and parses
// them, and hands every file to the rule analyzer.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/leaplint/internal/cache"
	"github.com/leapstack-labs/leaplint/internal/loader"
	"github.com/leapstack-labs/leaplint/pkg/core"
	"github.com/leapstack-labs/leaplint/pkg/jsast"
	"github.com/leapstack-labs/leaplint/pkg/lint"
)

// ParseErrorRuleID identifies diagnostics for files that could not be parsed.
const ParseErrorRuleID = "parse-error"

// Engine lints JavaScript and TypeScript files.
type Engine struct {
	lintConfig  *lint.Config
	rules       []lint.NodeRule
	analyzer    *lint.Analyzer
	fingerprint string
	discovery   loader.Options
	concurrency int

	cache  *cache.Store
	logger *slog.Logger
}

// Config holds engine configuration.
type Config struct {
	// Lint controls rule selection and severity (defaults to all rules enabled)
	Lint *lint.Config
	// Rules restricts the run to these rules (defaults to the global registry)
	Rules []lint.NodeRule
	// Discovery holds include/exclude globs
	Discovery loader.Options
	// Concurrency caps the number of files processed at once (defaults to NumCPU)
	Concurrency int
	// CachePath enables the result cache when non-empty
	CachePath string
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// New creates an engine. When a cache path is configured the cache is
// opened immediately; call Close to release it.
func New(cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	lintConfig := cfg.Lint
	if lintConfig == nil {
		lintConfig = lint.NewConfig()
	}

	rules := cfg.Rules
	if len(rules) == 0 {
		rules = lint.GetAllRules()
	}
	if err := lintConfig.ValidateRuleOptions(rules); err != nil {
		return nil, fmt.Errorf("invalid rule options: %w", err)
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}

	e := &Engine{
		lintConfig:  lintConfig,
		rules:       rules,
		analyzer:    lint.NewAnalyzer(lintConfig, rules...).WithLogger(logger),
		fingerprint: lintConfig.Fingerprint(rules),
		discovery:   cfg.Discovery,
		concurrency: concurrency,
		logger:      logger,
	}

	if cfg.CachePath != "" {
		store := cache.NewStore(logger)
		if err := store.Open(cfg.CachePath); err != nil {
			return nil, fmt.Errorf("failed to open cache: %w", err)
		}
		e.cache = store
	}

	logger.Debug("engine initialized",
		slog.Int("rules", len(e.analyzer.Rules())),
		slog.Int("concurrency", concurrency),
		slog.Bool("cache", e.cache != nil),
	)
	return e, nil
}

// Close releases the cache, if any.
func (e *Engine) Close() error {
	if e.cache == nil {
		return nil
	}
	return e.cache.Close()
}

// Cache returns the result cache, or nil when caching is disabled.
func (e *Engine) Cache() *cache.Store {
	return e.cache
}

// Rules returns the enabled rules.
func (e *Engine) Rules() []lint.NodeRule {
	return e.analyzer.Rules()
}

// Run discovers files under paths and lints them.
func (e *Engine) Run(ctx context.Context, paths []string) (*Result, error) {
	files, err := loader.Discover(paths, e.discovery)
	if err != nil {
		return nil, err
	}
	return e.LintFiles(ctx, files)
}

// LintFiles lints the given files concurrently. Results keep the order of files.
func (e *Engine) LintFiles(ctx context.Context, files []string) (*Result, error) {
	start := time.Now()
	result := &Result{Files: make([]FileResult, len(files))}

	if e.cache != nil {
		run, err := e.cache.StartRun(ctx)
		if err != nil {
			e.logger.Warn("failed to record run", "error", err)
		} else {
			result.RunID = run.ID
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, path := range files {
		g.Go(func() error {
			fr, err := e.lintFile(gctx, path)
			if err != nil {
				return err
			}
			result.Files[i] = fr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.Duration = time.Since(start)

	if e.cache != nil && result.RunID != "" {
		if err := e.cache.FinishRun(ctx, result.RunID, len(files), result.Total()); err != nil {
			e.logger.Warn("failed to complete run", "error", err)
		}
	}

	e.logger.Debug("lint finished",
		slog.Int("files", len(files)),
		slog.Int("cached", result.Cached()),
		slog.Int("issues", result.Total()),
		slog.Duration("duration", result.Duration),
	)
	return result, nil
}

func (e *Engine) lintFile(ctx context.Context, path string) (FileResult, error) {
	if err := ctx.Err(); err != nil {
		return FileResult{}, err
	}

	src, err := loader.Load(path)
	if err != nil {
		if diag, ok := loadErrorDiagnostic(err); ok {
			return FileResult{Path: path, Diagnostics: []lint.Diagnostic{diag}}, nil
		}
		return FileResult{}, err
	}

	if e.cache != nil {
		diags, hit, err := e.cache.Lookup(ctx, path, src.Hash, e.fingerprint)
		if err != nil {
			e.logger.Warn("cache lookup failed", "path", path, "error", err)
		} else if hit {
			return FileResult{Path: path, Diagnostics: diags, Cached: true}, nil
		}
	}

	diags := e.LintSource(src)

	if e.cache != nil {
		if err := e.cache.Save(ctx, path, src.Hash, e.fingerprint, diags); err != nil {
			e.logger.Warn("cache save failed", "path", path, "error", err)
		}
	}
	return FileResult{Path: path, Diagnostics: diags}, nil
}

// LintContent lints in-memory content as if it were the file at path.
// Nothing is read from disk and the cache is not consulted.
func (e *Engine) LintContent(path string, content []byte) ([]lint.Diagnostic, error) {
	src, err := loader.FromContent(path, content)
	if err != nil {
		if diag, ok := loadErrorDiagnostic(err); ok {
			return []lint.Diagnostic{diag}, nil
		}
		return nil, err
	}
	return e.LintSource(src), nil
}

// LintSource parses and analyses a loaded source. Positions in the returned
// diagnostics refer to the original file.
func (e *Engine) LintSource(src *loader.Source) []lint.Diagnostic {
	transpiled := src.Transpiled()
	file, err := jsast.Parse(src.Path, src.Code)

	// Retry plain JavaScript through esbuild for syntax the parser lacks.
	var syntaxErr *jsast.SyntaxError
	if errors.As(err, &syntaxErr) && !transpiled {
		if lowerErr := src.Lower(); lowerErr == nil {
			if lowered, retryErr := jsast.Parse(src.Path, src.Code); retryErr == nil {
				e.logger.Debug("parsed after lowering", "path", src.Path)
				file, err = lowered, nil
			}
		}
	}

	if err != nil {
		diag := parseErrorDiagnostic(err)
		if transpiled {
			diag.Pos = src.MapPosition(diag.Pos)
			diag.EndPos = diag.Pos
		}
		return []lint.Diagnostic{diag}
	}

	if src.Transpiled() {
		file.SetLiteralFilter(func(lit *jsast.StringLiteral) bool {
			return src.IsOriginalStringLiteral(lit.Loc.Start, lit.Value)
		})
	}

	diags := e.analyzerFor(src.Directives).Analyze(file)
	for i := range diags {
		span := src.MapSpan(spanOf(diags[i]))
		diags[i].Pos, diags[i].EndPos = span.Start, span.End
	}
	lint.SortDiagnostics(diags)
	return diags
}

// analyzerFor applies per-file directives on top of the engine configuration.
func (e *Engine) analyzerFor(d *loader.Directives) *lint.Analyzer {
	if d.IsEmpty() {
		return e.analyzer
	}

	cfg := cloneConfig(e.lintConfig)
	for _, id := range d.Disable {
		cfg.Disable(id)
	}
	for id, level := range d.Severity {
		if sev, ok := core.ParseSeverity(level); ok {
			cfg.SetSeverity(id, sev)
		} else {
			cfg.Disable(id)
		}
	}
	return lint.NewAnalyzer(cfg, e.rules...).WithLogger(e.logger)
}

func cloneConfig(c *lint.Config) *lint.Config {
	out := lint.NewConfig()
	for id, off := range c.DisabledRules {
		out.DisabledRules[id] = off
	}
	for id, sev := range c.SeverityOverrides {
		out.SeverityOverrides[id] = sev
	}
	for id, opts := range c.RuleOptions {
		out.RuleOptions[id] = opts
	}
	return out
}
