package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("var a = 1;\n"), 0o644))
	}
}

func rel(t *testing.T, root string, files []string) []string {
	t.Helper()
	out := make([]string, 0, len(files))
	for _, f := range files {
		r, err := filepath.Rel(root, f)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(r))
	}
	return out
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"index.js",
		"src/app.ts",
		"src/view.tsx",
		"src/lib/util.mjs",
		"src/readme.md",
		"node_modules/dep/index.js",
		"src/node_modules/nested/index.js",
		"dist/bundle.js",
	)

	t.Run("defaults", func(t *testing.T) {
		files, err := Discover([]string{root}, Options{Exclude: DefaultExclude})
		require.NoError(t, err)
		assert.Equal(t, []string{
			"dist/bundle.js",
			"index.js",
			"src/app.ts",
			"src/lib/util.mjs",
			"src/view.tsx",
		}, rel(t, root, files))
	})

	t.Run("custom exclude", func(t *testing.T) {
		files, err := Discover([]string{root}, Options{Exclude: append([]string{"dist/**", "**/*.tsx"}, DefaultExclude...)})
		require.NoError(t, err)
		assert.Equal(t, []string{"index.js", "src/app.ts", "src/lib/util.mjs"}, rel(t, root, files))
	})

	t.Run("custom include", func(t *testing.T) {
		files, err := Discover([]string{root}, Options{Include: []string{"src/**/*.ts"}, Exclude: DefaultExclude})
		require.NoError(t, err)
		assert.Equal(t, []string{"src/app.ts"}, rel(t, root, files))
	})

	t.Run("explicit file is always kept", func(t *testing.T) {
		explicit := filepath.Join(root, "node_modules", "dep", "index.js")
		files, err := Discover([]string{explicit, explicit}, Options{Exclude: DefaultExclude})
		require.NoError(t, err)
		assert.Equal(t, []string{explicit}, files)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := Discover([]string{filepath.Join(root, "missing")}, Options{})
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("nothing to lint", func(t *testing.T) {
		empty := t.TempDir()
		_, err := Discover([]string{empty}, Options{})
		assert.ErrorIs(t, err, ErrNoFiles)
	})
}

func TestOptions_SkipDir(t *testing.T) {
	opts := Options{Exclude: DefaultExclude}
	assert.False(t, opts.SkipDir("."))
	assert.False(t, opts.SkipDir("src"))
	assert.True(t, opts.SkipDir("node_modules"))
	assert.True(t, opts.SkipDir("packages/a/node_modules"))
	assert.True(t, opts.SkipDir(".git"))
}

func TestIsLintable(t *testing.T) {
	for _, p := range []string{"a.js", "a.MJS", "a.cjs", "a.jsx", "a.ts", "a.mts", "a.cts", "a.tsx"} {
		assert.True(t, IsLintable(p), p)
	}
	for _, p := range []string{"a.json", "a.md", "Makefile", "a.d"} {
		assert.False(t, IsLintable(p), p)
	}
}
