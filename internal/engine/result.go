package engine

import (
	"errors"
	"time"

	"github.com/leapstack-labs/leaplint/internal/loader"
	"github.com/leapstack-labs/leaplint/pkg/core"
	"github.com/leapstack-labs/leaplint/pkg/jsast"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// FileResult holds the diagnostics of one file.
type FileResult struct {
	Path        string            `json:"path"`
	Diagnostics []lint.Diagnostic `json:"diagnostics"`
	Cached      bool              `json:"cached,omitempty"`
}

// Result summarises a lint run.
type Result struct {
	RunID    string        `json:"run_id,omitempty"`
	Files    []FileResult  `json:"files"`
	Duration time.Duration `json:"duration"`
}

// Total returns the number of diagnostics across all files.
func (r *Result) Total() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Diagnostics)
	}
	return n
}

// Count returns the number of diagnostics with exactly severity s.
func (r *Result) Count(s core.Severity) int {
	n := 0
	for _, f := range r.Files {
		for _, d := range f.Diagnostics {
			if d.Severity == s {
				n++
			}
		}
	}
	return n
}

// Cached returns the number of files served from the cache.
func (r *Result) Cached() int {
	n := 0
	for _, f := range r.Files {
		if f.Cached {
			n++
		}
	}
	return n
}

// Filter keeps only diagnostics at least as severe as threshold.
func (r *Result) Filter(threshold core.Severity) {
	for i := range r.Files {
		kept := r.Files[i].Diagnostics[:0]
		for _, d := range r.Files[i].Diagnostics {
			if d.Severity.AtLeast(threshold) {
				kept = append(kept, d)
			}
		}
		r.Files[i].Diagnostics = kept
	}
}

func spanOf(d lint.Diagnostic) token.Span {
	return token.Span{Start: d.Pos, End: d.EndPos}
}

func parseErrorDiagnostic(err error) lint.Diagnostic {
	diag := lint.Diagnostic{
		RuleID:   ParseErrorRuleID,
		Severity: core.SeverityError,
		Message:  "Parsing error: " + err.Error(),
	}
	var syntaxErr *jsast.SyntaxError
	if errors.As(err, &syntaxErr) {
		diag.Message = "Parsing error: " + syntaxErr.Message
		diag.Pos = syntaxErr.Pos
		diag.EndPos = syntaxErr.Pos
	}
	return diag
}

// loadErrorDiagnostic converts load failures caused by file content into
// diagnostics. I/O failures are not converted.
func loadErrorDiagnostic(err error) (lint.Diagnostic, bool) {
	var (
		transpileErr *loader.TranspileError
		directiveErr *loader.DirectiveParseError
		unknownErr   *loader.UnknownFieldError
	)
	switch {
	case errors.As(err, &transpileErr):
		return lint.Diagnostic{
			RuleID:   ParseErrorRuleID,
			Severity: core.SeverityError,
			Message:  "Parsing error: " + transpileErr.Message,
			Pos:      transpileErr.Pos,
			EndPos:   transpileErr.Pos,
		}, true
	case errors.As(err, &directiveErr):
		return lint.Diagnostic{
			RuleID:   ParseErrorRuleID,
			Severity: core.SeverityError,
			Message:  "Invalid directives: " + directiveErr.Message,
			Pos:      token.Position{Line: directiveErr.Line, Column: 1},
		}, true
	case errors.As(err, &unknownErr):
		return lint.Diagnostic{
			RuleID:   ParseErrorRuleID,
			Severity: core.SeverityError,
			Message:  "Invalid directives: unknown field " + unknownErr.Field,
			Pos:      token.Position{Line: 1, Column: 1},
		}, true
	}
	return lint.Diagnostic{}, false
}
