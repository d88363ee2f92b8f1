package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplint/pkg/jsast"
)

// firstArgument returns the first argument of the first constructor call
// in src.Code, before any literal filtering.
func firstArgument(t *testing.T, src *Source) *jsast.StringLiteral {
	t.Helper()
	f, err := jsast.Parse(src.Path, src.Code)
	require.NoError(t, err)

	var lit *jsast.StringLiteral
	f.Walk(func(n jsast.Node) {
		if ctor, ok := n.(*jsast.ConstructorCall); ok && lit == nil && len(ctor.Arguments) > 0 {
			lit, _ = ctor.Arguments[0].(*jsast.StringLiteral)
		}
	})
	require.NotNil(t, lit, "no string literal argument in %q", src.Code)
	return lit
}

func TestSource_IsOriginalStringLiteral(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
		want    bool
	}{
		{name: "literal", path: "a.ts", content: "new RegExp(\"\\x01\");\n", want: true},
		{name: "literal with flags", path: "a.ts", content: "new RegExp('\\x01', \"g\");\n", want: true},
		{name: "literal before comment", path: "a.ts", content: "new RegExp(\"\\x01\" /* ctrl */);\n", want: true},
		{name: "typed literal", path: "a.ts", content: "const p: string = \"x\";\nnew RegExp(\"\\x01\");\n", want: true},
		{name: "astral prefix", path: "a.ts", content: "const s = \"😀\"; new RegExp(\"\\x01\");\n", want: true},
		{name: "folded concatenation", path: "a.ts", content: "new RegExp(\"a\" + \"\\x01\");\n"},
		{name: "folded in jsx", path: "a.jsx", content: "new RegExp(\"a\" + \"\\x01\");\nconst el = <div />;\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := FromContent(tt.path, []byte(tt.content))
			require.NoError(t, err)

			lit := firstArgument(t, src)
			assert.Equal(t, tt.want, src.IsOriginalStringLiteral(lit.Loc.Start, lit.Value))
		})
	}
}

func TestSource_IsOriginalStringLiteralUntranspiled(t *testing.T) {
	src, err := FromContent("a.js", []byte("new RegExp(\"a\" + \"\\x01\");\n"))
	require.NoError(t, err)
	assert.True(t, src.IsOriginalStringLiteral(src.lines.Position(11), "anything"))
}

func TestScanStringLiteral(t *testing.T) {
	raw, ok := scanStringLiteral(`x("a\"b", 1)`, 2)
	require.True(t, ok)
	assert.Equal(t, `"a\"b"`, raw)

	_, ok = scanStringLiteral("\"open\n\"", 0)
	assert.False(t, ok)

	_, ok = scanStringLiteral("p", 0)
	assert.False(t, ok)
}

func TestEndsArgument(t *testing.T) {
	assert.True(t, endsArgument(")"))
	assert.True(t, endsArgument(" // note\n , 'g')"))
	assert.False(t, endsArgument(" + p)"))
	assert.False(t, endsArgument(" as string)"))
	assert.False(t, endsArgument(""))
}
