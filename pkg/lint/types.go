package lint

import (
	"github.com/leapstack-labs/leaplint/pkg/core"
	"github.com/leapstack-labs/leaplint/pkg/jsast"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// =============================================================================
// Rule Definitions
// =============================================================================

// RuleDef is a data-driven rule definition.
// Rules are stateless - all context comes via the Check function parameters.
type RuleDef struct {
	ID          string        // Unique identifier, e.g., "no-control-regex"
	Name        string        // Human-readable name, e.g., "possible.control_regex"
	Group       string        // Category, e.g., "possible-errors"
	Description string        // Human-readable description
	Severity    core.Severity // Default severity
	Kinds       []jsast.Kind  // Node kinds the rule subscribes to
	Check       CheckFunc     // The check function
	ConfigKeys  []string      // Configuration keys this rule accepts (for rule-specific options)

	// Documentation fields for richer rule documentation
	Rationale   string // Why this rule exists, what problems it prevents
	BadExample  string // Code showing the anti-pattern
	GoodExample string // Code showing the correct pattern
	Fix         string // How to fix violations (when not obvious)
}

// CheckFunc inspects a single node. It is only called with nodes whose kind
// is listed in RuleDef.Kinds and which passed jsast.Validate.
type CheckFunc func(node jsast.Node, r Reporter)

// Reporter receives findings from a rule.
type Reporter interface {
	Report(node jsast.Node, message string)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(node jsast.Node, message string)

// Report calls f(node, message).
func (f ReporterFunc) Report(node jsast.Node, message string) { f(node, message) }

// =============================================================================
// Diagnostics
// =============================================================================

// Diagnostic represents a lint finding.
type Diagnostic struct {
	RuleID   string         `json:"rule_id"`
	Severity core.Severity  `json:"severity"`
	Message  string         `json:"message"`
	Pos      token.Position `json:"pos"`
	EndPos   token.Position `json:"end_pos"` // Optional: end of the problematic range

	DocumentationURL string `json:"documentation_url,omitempty"`
}

// =============================================================================
// Rule Interfaces
// =============================================================================

// Rule is the base interface all lint rules implement.
type Rule interface {
	// ID returns the unique identifier, e.g., "no-control-regex"
	ID() string

	// Name returns the human-readable name, e.g., "possible.control_regex"
	Name() string

	// Group returns the category, e.g., "possible-errors"
	Group() string

	// Description returns a human-readable description
	Description() string

	// DefaultSeverity returns the default severity for this rule
	DefaultSeverity() core.Severity

	// ConfigKeys returns configuration keys this rule accepts
	ConfigKeys() []string

	// Documentation methods for richer rule documentation
	Rationale() string   // Why this rule exists, what problems it prevents
	BadExample() string  // Code showing the anti-pattern
	GoodExample() string // Code showing the correct pattern
	Fix() string         // How to fix violations (when not obvious)
}

// NodeRule analyzes individual syntax nodes.
// The analyzer calls CheckNode once for every visited node whose kind is in NodeKinds.
type NodeRule interface {
	Rule

	// NodeKinds returns the node kinds this rule subscribes to.
	NodeKinds() []jsast.Kind

	// CheckNode inspects node and reports findings to r.
	CheckNode(node jsast.Node, r Reporter)
}

// GetRuleInfo extracts metadata from a Rule for documentation/tooling.
func GetRuleInfo(r Rule) core.RuleInfo {
	info := core.RuleInfo{
		ID:              r.ID(),
		Name:            r.Name(),
		Group:           r.Group(),
		Description:     r.Description(),
		DefaultSeverity: r.DefaultSeverity(),
		ConfigKeys:      r.ConfigKeys(),
		Rationale:       r.Rationale(),
		BadExample:      r.BadExample(),
		GoodExample:     r.GoodExample(),
		Fix:             r.Fix(),
	}

	if nr, ok := r.(NodeRule); ok {
		for _, k := range nr.NodeKinds() {
			info.NodeKinds = append(info.NodeKinds, k.String())
		}
	}

	return info
}

// =============================================================================
// Wrapped RuleDef
// =============================================================================

// wrappedRuleDef wraps a RuleDef to implement NodeRule.
type wrappedRuleDef struct {
	def RuleDef
}

// WrapRuleDef wraps a RuleDef to implement the NodeRule interface.
func WrapRuleDef(def RuleDef) NodeRule {
	return &wrappedRuleDef{def: def}
}

func (w *wrappedRuleDef) ID() string                     { return w.def.ID }
func (w *wrappedRuleDef) Name() string                   { return w.def.Name }
func (w *wrappedRuleDef) Group() string                  { return w.def.Group }
func (w *wrappedRuleDef) Description() string            { return w.def.Description }
func (w *wrappedRuleDef) DefaultSeverity() core.Severity { return w.def.Severity }
func (w *wrappedRuleDef) ConfigKeys() []string           { return w.def.ConfigKeys }
func (w *wrappedRuleDef) NodeKinds() []jsast.Kind        { return w.def.Kinds }

// Documentation methods
func (w *wrappedRuleDef) Rationale() string   { return w.def.Rationale }
func (w *wrappedRuleDef) BadExample() string  { return w.def.BadExample }
func (w *wrappedRuleDef) GoodExample() string { return w.def.GoodExample }
func (w *wrappedRuleDef) Fix() string         { return w.def.Fix }

func (w *wrappedRuleDef) CheckNode(node jsast.Node, r Reporter) {
	if w.def.Check == nil {
		return
	}
	w.def.Check(node, r)
}

// Unwrap returns the underlying RuleDef.
func (w *wrappedRuleDef) Unwrap() RuleDef {
	return w.def
}
