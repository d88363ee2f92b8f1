// Package core defines the shared language of the leaplint system.
//
// This package contains:
//   - Severity levels for diagnostics
//   - Rule metadata (RuleInfo)
//   - Configuration DTOs shared by the CLI and the lint framework (LintConfig)
//
// The Golden Rule: pkg/core imports ONLY pkg/token and stdlib.
// All other packages depend on core, not the reverse.
package core
