package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplint/internal/loader"
	"github.com/leapstack-labs/leaplint/internal/testutil"
)

func TestWatcher_DebouncesChanges(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "node_modules"), 0o755))

	calls := make(chan []string, 10)
	w := New([]string{root}, loader.Options{Exclude: loader.DefaultExclude}, func(_ context.Context, changed []string) {
		calls <- changed
	}, testutil.NewTestLogger(t)).WithDebounce(50 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	// Give the watcher time to register directories.
	time.Sleep(100 * time.Millisecond)

	write := func(rel string) {
		require.NoError(t, os.WriteFile(filepath.Join(root, rel), []byte("var a = /x/;\n"), 0o644))
	}
	write("src/a.js")
	write("src/b.ts")
	write("src/a.js")
	write("notes.md")
	write("node_modules/dep.js")

	select {
	case changed := <-calls:
		assert.Equal(t, []string{
			filepath.Join(root, "src", "a.js"),
			filepath.Join(root, "src", "b.ts"),
		}, changed)
	case <-time.After(3 * time.Second):
		t.Fatal("no change notification")
	}

	select {
	case extra := <-calls:
		t.Fatalf("unexpected second notification: %v", extra)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_Relevant(t *testing.T) {
	root := t.TempDir()
	w := New([]string{root}, loader.Options{Exclude: loader.DefaultExclude}, nil, nil)
	w.dirs[root] = root
	w.files[filepath.Join("/elsewhere", "one.js")] = true

	assert.True(t, w.relevant(filepath.Join(root, "x.js")))
	assert.False(t, w.relevant(filepath.Join(root, "x.json")))
	assert.False(t, w.relevant(filepath.Join(root, "sub", "x.js")), "directory not watched")
	assert.True(t, w.relevant(filepath.Join("/elsewhere", "one.js")))
}

func TestWatcher_MissingRoot(t *testing.T) {
	w := New([]string{filepath.Join(t.TempDir(), "missing")}, loader.Options{}, nil, nil)
	err := w.Run(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
