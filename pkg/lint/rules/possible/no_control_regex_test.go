package possible_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplint/pkg/core"
	"github.com/leapstack-labs/leaplint/pkg/jsast"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	_ "github.com/leapstack-labs/leaplint/pkg/lint/rules" // register rules
	"github.com/leapstack-labs/leaplint/pkg/lint/rules/possible"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// runRule parses src and returns the no-control-regex diagnostics.
func runRule(t *testing.T, src string) []lint.Diagnostic {
	t.Helper()
	f, err := jsast.Parse("test.js", src)
	require.NoError(t, err)

	rule, ok := lint.GetRuleByID("no-control-regex")
	require.True(t, ok, "rule not registered")

	return lint.NewAnalyzer(lint.NewConfig(), rule).Analyze(f)
}

func TestNoControlRegex(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		count int
	}{
		{"literal with control escape", `var re = /^\x1f$/;`, 1},
		{"literal with space escape", `var re = /^\x20$/;`, 0},
		{"literal with flags", `var re = /\x1f/gi;`, 1},
		{"literal with several control chars", `var re = /\x01\x02\x1f/;`, 1},
		{"literal with unicode escape", `var re = /\u000C/;`, 1},
		{"literal with code point escape", `var re = /\u{1}/u;`, 1},
		{"literal with escaped backslash", `var re = /\\x1f/;`, 0},
		{"literal with symbolic escapes", `var re = /\t\n\r/;`, 0},
		{"literal with DEL", `var re = /\x7f/;`, 0},
		{"constructor with control string", `new RegExp("\x0B");`, 1},
		{"constructor with double escaped string", `new RegExp("\\x1f");`, 1},
		{"constructor with flags argument", `new RegExp("\x0B", "g");`, 1},
		{"constructor without arguments", `new RegExp();`, 0},
		{"call with control string", `RegExp("\x0B");`, 1},
		{"call without arguments", `RegExp();`, 0},
		{"optional call with control string", `RegExp?.("\x0B");`, 1},
		{"optional member call", `window.RegExp?.("\x0B");`, 0},
		{"other constructor", `new Foo("\x0B");`, 0},
		{"other function", `foo("\x0B");`, 0},
		{"member callee", `window.RegExp("\x0B");`, 0},
		{"variable argument", `var p = "\x0B"; new RegExp(p);`, 0},
		{"template argument", "new RegExp(`\\x0B`);", 0},
		{"concatenated argument", `new RegExp("\x0B" + "a");`, 0},
		{"clean string", `new RegExp("abc");`, 0},
		{"regex literal argument", `new RegExp(/\x1f/);`, 1},
		{"regex literal argument to call", `RegExp(/\x1f/g);`, 1},
		{"nested in function", "function f() {\n  return [/\\x00/, RegExp(\"\\x1f\")];\n}", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := runRule(t, tt.src)
			require.Len(t, diags, tt.count)
			for _, d := range diags {
				assert.Equal(t, "no-control-regex", d.RuleID)
				assert.Equal(t, possible.ControlRegexMessage, d.Message)
				assert.Equal(t, core.SeverityError, d.Severity)
			}
		})
	}
}

func TestNoControlRegex_ReportPositions(t *testing.T) {
	t.Run("literal", func(t *testing.T) {
		diags := runRule(t, `var re = /\x1f/;`)
		require.Len(t, diags, 1)
		assert.Equal(t, token.Position{Line: 1, Column: 10, Offset: 9}, diags[0].Pos)
	})

	t.Run("call reports on the first argument", func(t *testing.T) {
		diags := runRule(t, "x;\nnew RegExp(\"\\x0B\");")
		require.Len(t, diags, 1)
		assert.Equal(t, 2, diags[0].Pos.Line)
		assert.Equal(t, 12, diags[0].Pos.Column)
	})
}

func TestNoControlRegex_DirectNodes(t *testing.T) {
	// Hosts other than the goja walker hand nodes in directly.
	rule := lint.WrapRuleDef(possible.NoControlRegex)

	var got []jsast.Node
	r := lint.ReporterFunc(func(n jsast.Node, msg string) {
		assert.Equal(t, possible.ControlRegexMessage, msg)
		got = append(got, n)
	})

	lit := &jsast.StringLiteral{Value: "\x0b"}
	rule.CheckNode(&jsast.ConstructorCall{Callee: &jsast.Identifier{Name: "RegExp"}, Arguments: []jsast.Node{lit}}, r)
	rule.CheckNode(&jsast.FunctionCall{Callee: &jsast.Identifier{Name: "RegExp"}, Arguments: []jsast.Node{lit}}, r)
	rule.CheckNode(&jsast.FunctionCall{Callee: &jsast.Identifier{Name: "Regexp"}, Arguments: []jsast.Node{lit}}, r)
	rule.CheckNode(&jsast.FunctionCall{Callee: &jsast.Identifier{Name: "RegExp"}, Arguments: []jsast.Node{&jsast.Identifier{Name: "p"}}}, r)
	rule.CheckNode(&jsast.RegexLiteral{Pattern: "\x1f"}, r)
	rule.CheckNode(&jsast.Identifier{Name: "RegExp"}, r)

	require.Len(t, got, 3)
	assert.Same(t, lit, got[0])
	assert.Same(t, lit, got[1])
}

func TestNoControlRegex_Metadata(t *testing.T) {
	rule, ok := lint.GetRuleByID("no-control-regex")
	require.True(t, ok)

	assert.Equal(t, "possible-errors", rule.Group())
	assert.Empty(t, rule.ConfigKeys())
	assert.ElementsMatch(t, []jsast.Kind{
		jsast.KindRegexLiteral,
		jsast.KindConstructorCall,
		jsast.KindFunctionCall,
	}, rule.NodeKinds())

	cfg := lint.NewConfig().SetRuleOptions("no-control-regex", map[string]any{"allow": true})
	assert.ErrorIs(t, cfg.ValidateRuleOptions([]lint.NodeRule{rule}), lint.ErrUnknownOption)
}
