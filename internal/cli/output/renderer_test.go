package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(mode OutputMode, tty bool) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return NewRendererWithTTY(out, errOut, tty, mode), out, errOut
}

func TestMode(t *testing.T) {
	tests := map[string]OutputMode{
		"":         ModeAuto,
		"auto":     ModeAuto,
		"TEXT":     ModeText,
		" text ":   ModeText,
		"markdown": ModeMarkdown,
		"md":       ModeMarkdown,
		"json":     ModeJSON,
		"xml":      ModeAuto,
	}
	for in, want := range tests {
		assert.Equal(t, want, Mode(in), "Mode(%q)", in)
	}
}

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		mode OutputMode
		tty  bool
		want OutputMode
	}{
		{ModeAuto, true, ModeText},
		{ModeAuto, false, ModeMarkdown},
		{ModeText, false, ModeText},
		{ModeMarkdown, true, ModeMarkdown},
		{ModeJSON, true, ModeJSON},
		{OutputMode("bogus"), false, ModeMarkdown},
	}
	for _, tt := range tests {
		r, _, _ := newTestRenderer(tt.mode, tt.tty)
		assert.Equal(t, tt.want, r.EffectiveMode(), "mode=%s tty=%v", tt.mode, tt.tty)
		assert.Equal(t, tt.tty, r.IsTTY())
	}
}

func TestRenderer_PlainOutputHasNoEscapes(t *testing.T) {
	for _, mode := range []OutputMode{ModeMarkdown, ModeJSON, ModeAuto} {
		r, out, errOut := newTestRenderer(mode, false)
		r.Header(1, "Title")
		r.Success("done")
		r.Warning("careful")
		r.Error("broken")
		r.StatusLine("file.js", "error", "2 issues")
		r.Println(r.Styles().Bold.Render("bold"), r.Styles().Error.Render("red"))

		combined := out.String() + errOut.String()
		assert.NotContains(t, combined, "\x1b[", "mode %s", mode)
	}
}

func TestRenderer_Markdown(t *testing.T) {
	r, out, errOut := newTestRenderer(ModeMarkdown, false)

	r.Header(1, "Lint Results")
	r.Header(2, "Details")
	r.Success("No lint issues found")
	r.Error("something failed")
	r.StatusLine("leaplint.yaml", "success", "")

	got := out.String()
	assert.Contains(t, got, "# Lint Results\n\n")
	assert.Contains(t, got, "## Details\n\n")
	assert.Contains(t, got, "OK No lint issues found\n")
	assert.Contains(t, got, "[ok] leaplint.yaml")
	assert.Equal(t, "Error: something failed\n", errOut.String())
}

func TestRenderer_TextOnTTY(t *testing.T) {
	r, out, _ := newTestRenderer(ModeText, true)
	r.Success("done")
	r.StatusLine("a.js", "warning", "")
	assert.Contains(t, out.String(), "✓")
	assert.Contains(t, out.String(), "done")
	assert.Contains(t, out.String(), "!")
}

func TestRenderer_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	r, out, _ := newTestRenderer(ModeText, true)
	r.Println(r.Styles().Error.Render("plain"))
	assert.Equal(t, "plain\n", out.String())
}

func TestRenderer_JSON(t *testing.T) {
	r, out, _ := newTestRenderer(ModeJSON, false)

	err := r.JSON(LintOutput{
		Summary: LintSummary{FilesAnalyzed: 1, TotalIssues: 1, Errors: 1},
		Files: []LintFileResult{{
			Path: "a.js",
			Diagnostics: []LintDiagnostic{{
				RuleID: "no-control-regex", Severity: "error", Message: "m", Line: 1, Column: 10,
			}},
		}},
	})
	require.NoError(t, err)

	got := out.String()
	assert.True(t, strings.HasPrefix(got, "{\n  \"summary\""), got)
	assert.Contains(t, got, `"rule_id": "no-control-regex"`)
	assert.Contains(t, got, `"column": 10`)
	assert.NotContains(t, got, "end_line")
}

func TestRenderer_Writers(t *testing.T) {
	r, out, errOut := newTestRenderer(ModeAuto, false)
	assert.Same(t, out, r.Writer())
	assert.Same(t, errOut, r.ErrWriter())
}
