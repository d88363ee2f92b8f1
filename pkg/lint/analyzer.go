package lint

import (
	"log/slog"
	"sort"

	"github.com/leapstack-labs/leaplint/pkg/jsast"
)

// Analyzer runs node rules against parsed JavaScript.
// It owns traversal: the file is walked once and every node is handed to the
// rules subscribed to its kind.
type Analyzer struct {
	config *Config
	rules  []NodeRule
	byKind map[jsast.Kind][]NodeRule
	logger *slog.Logger
}

// NewAnalyzer creates an analyzer over rules. With no rules given it uses
// every rule in the global registry. Disabled rules are dropped up front.
func NewAnalyzer(config *Config, rules ...NodeRule) *Analyzer {
	if config == nil {
		config = NewConfig()
	}
	if len(rules) == 0 {
		rules = GetAllRules()
	}

	a := &Analyzer{
		config: config,
		byKind: make(map[jsast.Kind][]NodeRule),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, rule := range rules {
		if config.IsDisabled(rule.ID()) {
			continue
		}
		a.rules = append(a.rules, rule)
		for _, kind := range rule.NodeKinds() {
			a.byKind[kind] = append(a.byKind[kind], rule)
		}
	}
	return a
}

// WithLogger sets the logger used for skipped-node messages.
func (a *Analyzer) WithLogger(logger *slog.Logger) *Analyzer {
	if logger != nil {
		a.logger = logger
	}
	return a
}

// Rules returns the enabled rules.
func (a *Analyzer) Rules() []NodeRule {
	return a.rules
}

// Config returns the analyzer configuration.
func (a *Analyzer) Config() *Config {
	return a.config
}

// Analyze walks f once and returns the diagnostics of all enabled rules,
// sorted by position.
func (a *Analyzer) Analyze(f *jsast.File) []Diagnostic {
	if f == nil {
		return nil
	}
	run := a.newRun()
	f.Walk(run.visit)
	return run.finish()
}

// AnalyzeNodes runs the rules over nodes supplied by another traversal.
// Each distinct node is checked once even if it appears more than once.
func (a *Analyzer) AnalyzeNodes(nodes []jsast.Node) []Diagnostic {
	run := a.newRun()
	for _, n := range nodes {
		run.visit(n)
	}
	return run.finish()
}

type reportKey struct {
	ruleID string
	node   jsast.Node
}

// run holds the state of a single analysis pass.
type run struct {
	a        *Analyzer
	visited  map[jsast.Node]struct{}
	reported map[reportKey]struct{}
	diags    []Diagnostic
}

func (a *Analyzer) newRun() *run {
	return &run{
		a:        a,
		visited:  make(map[jsast.Node]struct{}),
		reported: make(map[reportKey]struct{}),
	}
}

func (r *run) visit(n jsast.Node) {
	if err := jsast.Validate(n); err != nil {
		r.a.logger.Debug("skipping malformed node", "error", err)
		return
	}
	if _, dup := r.visited[n]; dup {
		return
	}
	r.visited[n] = struct{}{}

	for _, rule := range r.a.byKind[n.Kind()] {
		rule.CheckNode(n, r.reporter(rule))
	}
}

// reporter keeps at most one diagnostic per (rule, node).
func (r *run) reporter(rule NodeRule) Reporter {
	severity := r.a.config.GetSeverity(rule.ID(), rule.DefaultSeverity())
	return ReporterFunc(func(node jsast.Node, message string) {
		if jsast.Validate(node) != nil {
			return
		}
		key := reportKey{ruleID: rule.ID(), node: node}
		if _, dup := r.reported[key]; dup {
			return
		}
		r.reported[key] = struct{}{}

		span := node.Span()
		r.diags = append(r.diags, Diagnostic{
			RuleID:           rule.ID(),
			Severity:         severity,
			Message:          message,
			Pos:              span.Start,
			EndPos:           span.End,
			DocumentationURL: BuildDocURL(rule.ID()),
		})
	})
}

func (r *run) finish() []Diagnostic {
	SortDiagnostics(r.diags)
	return r.diags
}

// SortDiagnostics orders diagnostics by position, then rule ID.
func SortDiagnostics(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		pi, pj := diags[i].Pos, diags[j].Pos
		if pi.Line != pj.Line {
			return pi.Line < pj.Line
		}
		if pi.Column != pj.Column {
			return pi.Column < pj.Column
		}
		return diags[i].RuleID < diags[j].RuleID
	})
}
