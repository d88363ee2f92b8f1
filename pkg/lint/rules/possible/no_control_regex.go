package possible

import (
	"github.com/leapstack-labs/leaplint/pkg/core"
	"github.com/leapstack-labs/leaplint/pkg/jsast"
	"github.com/leapstack-labs/leaplint/pkg/lint"
)

func init() {
	lint.Register(NoControlRegex)
}

// ControlRegexMessage is the message reported for every offending node.
const ControlRegexMessage = "Unexpected control character in regular expression."

// NoControlRegex flags regular expressions whose pattern contains raw
// control characters.
var NoControlRegex = lint.RuleDef{
	ID:          "no-control-regex",
	Name:        "possible.control_regex",
	Group:       "possible-errors",
	Description: "Disallow control characters in regular expressions.",
	Severity:    core.SeverityError,
	Kinds: []jsast.Kind{
		jsast.KindRegexLiteral,
		jsast.KindConstructorCall,
		jsast.KindFunctionCall,
	},
	Check: checkControlRegex,

	Rationale: `Control characters (U+0000 to U+001F) are invisible and rarely typed on purpose.
In a regular expression they usually come from a mistyped or double-decoded escape
and match input nobody expected.`,

	BadExample: `var pattern1 = /\x1f/;
var pattern2 = new RegExp("\x1f");
var pattern3 = RegExp("\x0B");`,

	GoodExample: `var pattern1 = /\x20/;
var pattern2 = new RegExp("\x20");
var pattern3 = /\t\n/;`,

	Fix: `Remove the control character, or write it with a symbolic escape such as \t or \n.
Only the first argument of RegExp is checked, and only when it is a literal:
patterns built from variables, templates or concatenation are not evaluated.`,
}

func checkControlRegex(node jsast.Node, r lint.Reporter) {
	switch n := node.(type) {
	case *jsast.RegexLiteral:
		reportIfControl(n, r)
	case *jsast.ConstructorCall:
		checkRegExpCall(n, r)
	case *jsast.FunctionCall:
		checkRegExpCall(n, r)
	}
}

// checkRegExpCall handles new RegExp(...) and RegExp(...) alike.
func checkRegExpCall(call jsast.Call, r lint.Reporter) {
	if name, ok := jsast.IdentifierName(call.CalleeNode()); !ok || name != "RegExp" {
		return
	}
	args := call.Args()
	if len(args) == 0 {
		return
	}
	switch arg := args[0].(type) {
	case *jsast.RegexLiteral:
		// Reported when the literal itself is visited.
	case *jsast.StringLiteral:
		reportIfControl(arg, r)
	}
}

func reportIfControl(src jsast.PatternSource, r lint.Reporter) {
	if HasControlChars(EffectivePattern(src.PatternText())) {
		r.Report(src, ControlRegexMessage)
	}
}
