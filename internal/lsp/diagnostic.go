package lsp

import (
	"github.com/leapstack-labs/leaplint/internal/loader"
	"github.com/leapstack-labs/leaplint/pkg/core"
	"github.com/leapstack-labs/leaplint/pkg/lint"
)

// diagnosticSource is shown by editors next to each message.
const diagnosticSource = "leaplint"

// publishDiagnostics lints the document and publishes the result. Documents
// in languages leaplint does not handle get an empty diagnostic list.
func (s *Server) publishDiagnostics(doc *Document) {
	diagnostics := []Diagnostic{}

	path := URIToPath(doc.URI)
	if loader.IsLintable(path) && s.linter != nil {
		diags, err := s.linter.LintContent(path, []byte(doc.Content))
		if err != nil {
			s.logger.Warn("lint failed", "uri", doc.URI, "error", err)
		} else {
			diagnostics = toLSPDiagnostics(doc, diags)
		}
	}

	version := doc.Version
	s.sendNotification("textDocument/publishDiagnostics", &PublishDiagnosticsParams{
		URI:         doc.URI,
		Version:     &version,
		Diagnostics: diagnostics,
	})
}

// clearDiagnostics removes every diagnostic shown for uri.
func (s *Server) clearDiagnostics(uri string) {
	s.sendNotification("textDocument/publishDiagnostics", &PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []Diagnostic{},
	})
}

// toLSPDiagnostics converts lint diagnostics to the protocol shape.
func toLSPDiagnostics(doc *Document, diags []lint.Diagnostic) []Diagnostic {
	out := make([]Diagnostic, 0, len(diags))
	for _, d := range diags {
		start := doc.PositionFromToken(d.Pos)
		end := start
		if d.EndPos.IsValid() {
			end = doc.PositionFromToken(d.EndPos)
		}

		ld := Diagnostic{
			Range:    Range{Start: start, End: end},
			Severity: toLSPSeverity(d.Severity),
			Code:     d.RuleID,
			Source:   diagnosticSource,
			Message:  d.Message,
		}
		if d.DocumentationURL != "" {
			ld.CodeDescription = &CodeDescription{Href: d.DocumentationURL}
		}
		out = append(out, ld)
	}
	return out
}

func toLSPSeverity(s core.Severity) DiagnosticSeverity {
	switch s {
	case core.SeverityError:
		return DiagnosticSeverityError
	case core.SeverityWarning:
		return DiagnosticSeverityWarning
	case core.SeverityInfo:
		return DiagnosticSeverityInformation
	default:
		return DiagnosticSeverityHint
	}
}
