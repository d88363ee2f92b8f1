package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDirectives(t *testing.T) {
	t.Run("no block", func(t *testing.T) {
		d, found, err := ExtractDirectives("var a = /x/;\n")
		require.NoError(t, err)
		assert.False(t, found)
		assert.True(t, d.IsEmpty())
	})

	t.Run("valid block", func(t *testing.T) {
		content := `/*---
disable: [no-control-regex]
severity:
  other-rule: warn
---*/
var a = /\x1f/;
`
		d, found, err := ExtractDirectives(content)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []string{"no-control-regex"}, d.Disable)
		assert.Equal(t, map[string]string{"other-rule": "warn"}, d.Severity)
		assert.False(t, d.IsEmpty())
	})

	t.Run("after shebang", func(t *testing.T) {
		content := "#!/usr/bin/env node\n/*---\ndisable: [a]\n---*/\n"
		d, found, err := ExtractDirectives(content)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []string{"a"}, d.Disable)
	})

	t.Run("block not at top is ignored", func(t *testing.T) {
		_, found, err := ExtractDirectives("var a;\n/*---\ndisable: [a]\n---*/\n")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, _, err := ExtractDirectives("/*---\nenable: [a]\n---*/\n")
		var unknown *UnknownFieldError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "enable", unknown.Field)
	})

	t.Run("bad severity", func(t *testing.T) {
		_, _, err := ExtractDirectives("/*---\nseverity:\n  a: loud\n---*/\n")
		var perr *DirectiveParseError
		require.ErrorAs(t, err, &perr)
		assert.Contains(t, perr.Message, `"loud"`)
	})

	t.Run("off is accepted", func(t *testing.T) {
		d, _, err := ExtractDirectives("/*---\nseverity:\n  a: off\n---*/\n")
		require.NoError(t, err)
		assert.Equal(t, "off", d.Severity["a"])
	})
}

func TestFromContent_DirectiveErrorNamesFile(t *testing.T) {
	_, err := FromContent("src/a.js", []byte("/*---\nbogus: 1\n---*/\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "src/a.js")
}
