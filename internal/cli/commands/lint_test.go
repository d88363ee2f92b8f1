package commands

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplint/internal/cli/config"
	"github.com/leapstack-labs/leaplint/internal/cli/output"
	"github.com/leapstack-labs/leaplint/internal/cli/testutil"
	"github.com/leapstack-labs/leaplint/internal/engine"
	"github.com/leapstack-labs/leaplint/pkg/core"
	"github.com/leapstack-labs/leaplint/pkg/lint"
)

const ruleID = "no-control-regex"

func TestNewLintCommand(t *testing.T) {
	cmd := NewLintCommand()

	assert.Equal(t, "lint [paths...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	flags := []string{"format", "disable", "severity", "rule", "max-warnings", "cache", "cache-location", "watch", "concurrency"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestBuildLintConfig(t *testing.T) {
	t.Run("empty options", func(t *testing.T) {
		cfg, err := buildLintConfig(&config.Config{}, &LintOptions{})

		require.NoError(t, err)
		assert.False(t, cfg.IsDisabled(ruleID))
	})

	t.Run("disable rules", func(t *testing.T) {
		cfg, err := buildLintConfig(&config.Config{}, &LintOptions{Disable: []string{ruleID, " other "}})

		require.NoError(t, err)
		assert.True(t, cfg.IsDisabled(ruleID))
		assert.True(t, cfg.IsDisabled("other"))
	})

	t.Run("enable only specific rules", func(t *testing.T) {
		cfg, err := buildLintConfig(&config.Config{}, &LintOptions{Rules: []string{ruleID}})

		require.NoError(t, err)
		for _, r := range lint.GetAllRules() {
			assert.Equal(t, r.ID() != ruleID, cfg.IsDisabled(r.ID()), "rule %q", r.ID())
		}
	})

	t.Run("unknown rule", func(t *testing.T) {
		_, err := buildLintConfig(&config.Config{}, &LintOptions{Rules: []string{"no-such-rule"}})

		require.ErrorIs(t, err, lint.ErrUnknownRule)
		assert.Contains(t, err.Error(), "no-such-rule")
	})

	t.Run("project config severity overrides", func(t *testing.T) {
		projectCfg := &config.Config{
			Lint: &config.LintConfig{Severity: map[string]string{ruleID: "warning"}},
		}
		cfg, err := buildLintConfig(projectCfg, &LintOptions{})

		require.NoError(t, err)
		assert.Equal(t, core.SeverityWarning, cfg.GetSeverity(ruleID, core.SeverityError))
	})

	t.Run("severity off disables", func(t *testing.T) {
		projectCfg := &config.Config{
			Lint: &config.LintConfig{Severity: map[string]string{ruleID: "off"}},
		}
		cfg, err := buildLintConfig(projectCfg, &LintOptions{})

		require.NoError(t, err)
		assert.True(t, cfg.IsDisabled(ruleID))
	})

	t.Run("CLI adds to project config", func(t *testing.T) {
		projectCfg := &config.Config{
			Lint: &config.LintConfig{Disabled: []string{"legacy-rule"}},
		}
		cfg, err := buildLintConfig(projectCfg, &LintOptions{Disable: []string{ruleID}})

		require.NoError(t, err)
		assert.True(t, cfg.IsDisabled("legacy-rule"))
		assert.True(t, cfg.IsDisabled(ruleID))
	})
}

func TestApplyLintFlags(t *testing.T) {
	base := &config.Config{Cache: config.CacheConfig{Path: "/tmp/base.db"}, Concurrency: 2}

	t.Run("unchanged flags keep config", func(t *testing.T) {
		cmd := NewLintCommand()
		got, err := applyLintFlags(cmd, base, &LintOptions{})

		require.NoError(t, err)
		assert.Equal(t, base.Cache, got.Cache)
		assert.Equal(t, 2, got.Concurrency)
	})

	t.Run("cache flag enables cache", func(t *testing.T) {
		cmd := NewLintCommand()
		require.NoError(t, cmd.Flags().Set("cache", "true"))

		got, err := applyLintFlags(cmd, base, &LintOptions{Cache: true})

		require.NoError(t, err)
		assert.True(t, got.Cache.Enabled)
		assert.False(t, base.Cache.Enabled, "input config must not be modified")
	})

	t.Run("cache location implies cache", func(t *testing.T) {
		cmd := NewLintCommand()
		require.NoError(t, cmd.Flags().Set("cache-location", "rel/cache.db"))

		got, err := applyLintFlags(cmd, base, &LintOptions{CacheLocation: "rel/cache.db"})

		require.NoError(t, err)
		assert.True(t, got.Cache.Enabled)
		assert.True(t, filepath.IsAbs(got.Cache.Path))
		assert.True(t, strings.HasSuffix(filepath.ToSlash(got.Cache.Path), "rel/cache.db"))
	})

	t.Run("negative concurrency", func(t *testing.T) {
		cmd := NewLintCommand()
		require.NoError(t, cmd.Flags().Set("concurrency", "-1"))

		_, err := applyLintFlags(cmd, base, &LintOptions{Concurrency: -1})
		assert.Error(t, err)
	})
}

func TestLintOutcome(t *testing.T) {
	result := func(sevs ...core.Severity) *engine.Result {
		fr := engine.FileResult{Path: "a.js"}
		for _, s := range sevs {
			fr.Diagnostics = append(fr.Diagnostics, lint.Diagnostic{RuleID: ruleID, Severity: s})
		}
		return &engine.Result{Files: []engine.FileResult{fr}}
	}

	tests := []struct {
		name        string
		result      *engine.Result
		maxWarnings int
		wantErr     bool
	}{
		{"clean", result(), -1, false},
		{"error fails", result(core.SeverityError), -1, true},
		{"warnings pass without limit", result(core.SeverityWarning, core.SeverityWarning), -1, false},
		{"warnings within limit", result(core.SeverityWarning), 1, false},
		{"warnings over limit", result(core.SeverityWarning, core.SeverityWarning), 1, true},
		{"zero limit", result(core.SeverityWarning), 0, true},
		{"info ignored", result(core.SeverityInfo, core.SeverityHint), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := lintOutcome(tt.result, tt.maxWarnings)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrLintIssues)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRunLint_JSON(t *testing.T) {
	t.Chdir(testutil.SetupTestProject(t))

	stdout, _, err := executeCommand(t, NewLintCommand(), "--format", "json")
	require.ErrorIs(t, err, ErrLintIssues)

	var out output.LintOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))

	assert.Equal(t, 3, out.Summary.FilesAnalyzed, "node_modules must be skipped")
	assert.Equal(t, 2, out.Summary.Errors)
	require.Len(t, out.Files, 2)

	var names []string
	for _, f := range out.Files {
		names = append(names, filepath.Base(f.Path))
		require.NotEmpty(t, f.Diagnostics)
		d := f.Diagnostics[0]
		assert.Equal(t, ruleID, d.RuleID)
		assert.Equal(t, "error", d.Severity)
		assert.Equal(t, 1, d.Line)
		assert.NotEmpty(t, d.DocumentationURL)
	}
	assert.ElementsMatch(t, []string{"bad.js", "typed.ts"}, names)
}

func TestRunLint_Markdown(t *testing.T) {
	t.Chdir(testutil.SetupTestProject(t))

	stdout, _, err := executeCommand(t, NewLintCommand(), "src/bad.js")
	require.ErrorIs(t, err, ErrLintIssues)

	testutil.AssertNoANSI(t, stdout)
	assert.Contains(t, stdout, "bad.js")
	assert.Contains(t, stdout, "Unexpected control character in regular expression.")
	assert.Contains(t, stdout, ruleID)
	assert.Contains(t, stdout, "Summary: 1 issues, 1 errors in 1 files")
}

func TestRunLint_Clean(t *testing.T) {
	t.Chdir(testutil.SetupTestProject(t))

	stdout, _, err := executeCommand(t, NewLintCommand(), "src/ok.js")

	require.NoError(t, err)
	assert.Contains(t, stdout, "No lint issues found in 1 files")
}

func TestRunLint_Flags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
		errText string
	}{
		{name: "disable rule", args: []string{"--disable", ruleID}},
		{name: "error threshold keeps errors", args: []string{"--severity", "error"}, wantErr: ErrLintIssues},
		{name: "unknown rule", args: []string{"--rule", "no-such-rule"}, wantErr: lint.ErrUnknownRule},
		{name: "invalid severity", args: []string{"--severity", "loud"}, errText: "invalid --severity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(testutil.SetupTestProject(t))

			_, _, err := executeCommand(t, NewLintCommand(), append(tt.args, "src")...)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.errText != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errText)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestRunLint_MaxWarnings(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	testutil.WriteFile(t, dir, "leaplint.yaml", "lint:\n  severity:\n    no-control-regex: warning\n")
	t.Chdir(dir)

	_, err := config.LoadConfig("", nil)
	require.NoError(t, err)
	t.Cleanup(config.ResetConfig)

	cmd := NewLintCommand()
	cmd.SetOut(new(strings.Builder))
	cmd.SetErr(new(strings.Builder))

	cmd.SetArgs([]string{"src"})
	require.NoError(t, cmd.Execute(), "warnings alone do not fail")

	cmd = NewLintCommand()
	cmd.SetOut(new(strings.Builder))
	cmd.SetErr(new(strings.Builder))
	cmd.SetArgs([]string{"--max-warnings", "1", "src"})
	err = cmd.Execute()
	require.ErrorIs(t, err, ErrLintIssues)
	assert.Contains(t, err.Error(), "2 warnings exceed --max-warnings 1")
}

func TestRunLint_Cache(t *testing.T) {
	t.Chdir(testutil.SetupTestProject(t))
	cachePath := filepath.Join(t.TempDir(), "cache.db")

	_, _, err := executeCommand(t, NewLintCommand(), "--cache-location", cachePath, "--format", "json")
	require.ErrorIs(t, err, ErrLintIssues)

	stdout, _, err := executeCommand(t, NewLintCommand(), "--cache-location", cachePath, "--format", "json")
	require.ErrorIs(t, err, ErrLintIssues)

	var out output.LintOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, 3, out.Summary.FilesCached)
	assert.NotEmpty(t, out.RunID)
	assert.Equal(t, 2, out.Summary.Errors, "cached diagnostics are reported again")
}
