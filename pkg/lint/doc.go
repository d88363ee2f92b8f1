// Package lint provides the rule framework for linting JavaScript sources.
//
// # Architecture
//
// Rules subscribe to node kinds from package jsast. The Analyzer walks a
// parsed file once and hands every node to the rules subscribed to its kind,
// so rules never traverse the tree themselves:
//
//	file, err := jsast.Parse("app.js", src)
//	diags := lint.NewAnalyzer(lint.NewConfig()).Analyze(file)
//
// # Rule Registration
//
// Rules are registered via init() functions when their packages are imported:
//
//	import _ "github.com/leapstack-labs/leaplint/pkg/lint/rules"
//
// # Using the Registry
//
//	rules := lint.AllRules()
//	rule, ok := lint.GetRuleByID("no-control-regex")
//	regexRules := lint.GetRulesForKind(jsast.KindRegexLiteral)
//
// # Configuration
//
// Use Config to control which rules are enabled and their severity:
//
//	config := lint.NewConfig()
//	config.Disable("no-control-regex")
//	config.SetSeverity("no-control-regex", core.SeverityWarning)
//
// # Creating Custom Rules
//
// Implement NodeRule or use RuleDef:
//
//	var MyRule = lint.RuleDef{
//		ID:       "my-rule",
//		Name:     "custom.my_rule",
//		Group:    "custom",
//		Severity: core.SeverityWarning,
//		Kinds:    []jsast.Kind{jsast.KindRegexLiteral},
//		Check:    checkMyRule,
//	}
//
//	func init() {
//		lint.Register(MyRule)
//	}
package lint
