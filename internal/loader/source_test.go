package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplint/pkg/jsast"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

func TestLoad_PlainJS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.js")
	content := "var re = /\\x1f/;\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	src, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, LanguageJS, src.Language)
	assert.Equal(t, content, src.Code)
	assert.Equal(t, content, src.Original)
	assert.False(t, src.Transpiled())
	assert.Equal(t, ContentHash([]byte(content)), src.Hash)
	assert.Len(t, src.Hash, 16)
	assert.True(t, src.Directives.IsEmpty())

	pos := token.Position{Line: 1, Column: 10, Offset: 9}
	assert.Equal(t, pos, src.MapPosition(pos))
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.js"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFromContent_TypeScriptPositionsMapBack(t *testing.T) {
	src, err := FromContent("app.ts", []byte("const re: RegExp = /\\x1f/;\n"))
	require.NoError(t, err)
	assert.Equal(t, LanguageTS, src.Language)
	assert.True(t, src.Transpiled())
	assert.NotContains(t, src.Code, "RegExp =")
	assert.Contains(t, src.Code, `/\x1f/`)

	f, err := jsast.Parse(src.Path, src.Code)
	require.NoError(t, err)

	var lit *jsast.RegexLiteral
	f.Walk(func(n jsast.Node) {
		if re, ok := n.(*jsast.RegexLiteral); ok {
			lit = re
		}
	})
	require.NotNil(t, lit)

	mapped := src.MapPosition(lit.Span().Start)
	assert.Equal(t, 1, mapped.Line)
	assert.Equal(t, 20, mapped.Column)
	assert.Equal(t, 19, mapped.Offset)
}

func TestFromContent_AstralCharactersMapBack(t *testing.T) {
	src, err := FromContent("app.ts", []byte("const s: string = \"😀\"; const re = /\\x1f/;\n"))
	require.NoError(t, err)

	f, err := jsast.Parse(src.Path, src.Code)
	require.NoError(t, err)

	var lit *jsast.RegexLiteral
	f.Walk(func(n jsast.Node) {
		if re, ok := n.(*jsast.RegexLiteral); ok {
			lit = re
		}
	})
	require.NotNil(t, lit)

	mapped := src.MapPosition(lit.Span().Start)
	assert.Equal(t, token.Position{Line: 1, Column: 35, Offset: 37}, mapped)
}

func TestFromContent_JSX(t *testing.T) {
	src, err := FromContent("view.jsx", []byte("const el = <div title={RegExp(\"\\x0B\")} />;\n"))
	require.NoError(t, err)
	assert.Equal(t, LanguageJSX, src.Language)
	assert.NotContains(t, src.Code, "<div")
	assert.Contains(t, src.Code, "RegExp(")
}

func TestFromContent_TranspileError(t *testing.T) {
	_, err := FromContent("broken.ts", []byte("const x: = ;\n"))
	require.Error(t, err)

	var terr *TranspileError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "broken.ts", terr.Path)
	assert.Equal(t, 1, terr.Pos.Line)
	assert.NotEmpty(t, terr.Message)
}

func TestSource_Lower(t *testing.T) {
	src, err := FromContent("app.js", []byte("var re = /\\x1f/;\n"))
	require.NoError(t, err)
	require.False(t, src.Transpiled())

	require.NoError(t, src.Lower())
	assert.True(t, src.Transpiled())
	assert.Contains(t, src.Code, `/\x1f/`)

	// Lowering twice is a no-op.
	code := src.Code
	require.NoError(t, src.Lower())
	assert.Equal(t, code, src.Code)
}

func TestLanguageOf(t *testing.T) {
	assert.Equal(t, LanguageTSX, LanguageOf("a/b/View.TSX"))
	assert.Equal(t, LanguageTS, LanguageOf("x.cts"))
	assert.Equal(t, LanguageJS, LanguageOf("x.unknown"))
}

func TestSource_LowerModuleSyntax(t *testing.T) {
	src, err := FromContent("mod.js", []byte("import x from \"y\";\nexport const re = /\\x1f/;\n"))
	require.NoError(t, err)

	_, err = jsast.Parse(src.Path, src.Code)
	require.Error(t, err, "module syntax is rejected before lowering")

	require.NoError(t, src.Lower())
	assert.NotContains(t, src.Code, "import x")

	_, err = jsast.Parse(src.Path, src.Code)
	require.NoError(t, err)
}
