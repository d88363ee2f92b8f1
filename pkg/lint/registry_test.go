package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplint/pkg/core"
	"github.com/leapstack-labs/leaplint/pkg/jsast"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

func pos(line, col int) token.Position {
	return token.Position{Line: line, Column: col}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	reg.Add(WrapRuleDef(RuleDef{ID: "b-rule", Group: "style", Kinds: []jsast.Kind{jsast.KindFunctionCall}}))
	reg.Add(WrapRuleDef(RuleDef{ID: "a-rule", Group: "possible-errors", Kinds: []jsast.Kind{jsast.KindRegexLiteral, jsast.KindFunctionCall}}))

	assert.Equal(t, 2, reg.Len())

	var ids []string
	for _, r := range reg.All() {
		ids = append(ids, r.ID())
	}
	assert.Equal(t, []string{"a-rule", "b-rule"}, ids)

	rule, ok := reg.Get("a-rule")
	require.True(t, ok)
	assert.Equal(t, "possible-errors", rule.Group())

	_, ok = reg.Get("missing")
	assert.False(t, ok)

	assert.Len(t, reg.ByGroup("style"), 1)
	assert.Len(t, reg.ForKind(jsast.KindFunctionCall), 2)
	assert.Len(t, reg.ForKind(jsast.KindRegexLiteral), 1)
	assert.Empty(t, reg.ForKind(jsast.KindConstructorCall))

	reg.Reset()
	assert.Equal(t, 0, reg.Len())
}

func TestGlobalRegistry(t *testing.T) {
	Clear()
	t.Cleanup(Clear)

	Register(RuleDef{
		ID:          "test-global",
		Name:        "test.global",
		Group:       "testing",
		Description: "A test rule",
		Severity:    core.SeverityInfo,
		Kinds:       []jsast.Kind{jsast.KindRegexLiteral},
		Rationale:   "Because.",
	})

	assert.Equal(t, 1, Count())
	_, ok := GetRuleByID("test-global")
	assert.True(t, ok)
	assert.Len(t, GetRulesByGroup("testing"), 1)
	assert.Len(t, GetRulesForKind(jsast.KindRegexLiteral), 1)

	infos := AllRules()
	require.Len(t, infos, 1)
	assert.Equal(t, core.RuleInfo{
		ID:              "test-global",
		Name:            "test.global",
		Group:           "testing",
		Description:     "A test rule",
		DefaultSeverity: core.SeverityInfo,
		NodeKinds:       []string{"regex-literal"},
		Rationale:       "Because.",
	}, infos[0])
}

func TestWrapRuleDef_NilCheck(t *testing.T) {
	rule := WrapRuleDef(RuleDef{ID: "empty"})
	assert.NotPanics(t, func() {
		rule.CheckNode(&jsast.RegexLiteral{}, ReporterFunc(func(jsast.Node, string) {}))
	})

	unwrapped := rule.(interface{ Unwrap() RuleDef }).Unwrap()
	assert.Equal(t, "empty", unwrapped.ID)
}

func TestBuildDocURL(t *testing.T) {
	t.Cleanup(ResetDocsBaseURL)

	assert.Equal(t, "https://leaplint.dev/docs/rules/no-control-regex", BuildDocURL("no-control-regex"))

	SetDocsBaseURL("http://localhost:8080/rules/")
	assert.Equal(t, "http://localhost:8080/rules/my-rule", BuildDocURL("My-Rule"))
}
