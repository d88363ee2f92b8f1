package output

// LintOutput is the JSON document written by `leaplint lint --format json`.
type LintOutput struct {
	RunID   string           `json:"run_id,omitempty"`
	Summary LintSummary      `json:"summary"`
	Files   []LintFileResult `json:"files"`
}

// LintSummary aggregates a lint run.
type LintSummary struct {
	FilesAnalyzed int `json:"files_analyzed"`
	FilesCached   int `json:"files_cached"`
	TotalIssues   int `json:"total_issues"`
	Errors        int `json:"errors"`
	Warnings      int `json:"warnings"`
	Info          int `json:"info"`
	Hints         int `json:"hints"`
}

// LintFileResult holds the diagnostics of one file.
type LintFileResult struct {
	Path        string           `json:"path"`
	Diagnostics []LintDiagnostic `json:"diagnostics"`
}

// LintDiagnostic is a flattened diagnostic with 1-based line and column.
type LintDiagnostic struct {
	RuleID           string `json:"rule_id"`
	Severity         string `json:"severity"`
	Message          string `json:"message"`
	Line             int    `json:"line"`
	Column           int    `json:"column"`
	EndLine          int    `json:"end_line,omitempty"`
	EndColumn        int    `json:"end_column,omitempty"`
	DocumentationURL string `json:"documentation_url,omitempty"`
}
