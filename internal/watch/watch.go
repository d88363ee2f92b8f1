// Package watch re-runs a callback when lintable files change on disk.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/leapstack-labs/leaplint/internal/loader"
)

// DefaultDebounce is how long the watcher waits for events to settle.
const DefaultDebounce = 100 * time.Millisecond

// ChangeFunc receives the sorted, de-duplicated paths that changed.
type ChangeFunc func(ctx context.Context, changed []string)

// Watcher watches directories and files for changes to lintable sources.
type Watcher struct {
	roots    []string
	opts     loader.Options
	onChange ChangeFunc
	debounce time.Duration
	logger   *slog.Logger

	dirs  map[string]string // watched directory -> root it belongs to
	files map[string]bool   // explicitly watched files
}

// New creates a watcher over roots. A nil logger discards output.
func New(roots []string, opts loader.Options, onChange ChangeFunc, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if len(roots) == 0 {
		roots = []string{"."}
	}
	return &Watcher{
		roots:    roots,
		opts:     opts,
		onChange: onChange,
		debounce: DefaultDebounce,
		logger:   logger,
		dirs:     make(map[string]string),
		files:    make(map[string]bool),
	}
}

// WithDebounce overrides the debounce interval.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	if d > 0 {
		w.debounce = d
	}
	return w
}

// Run watches until ctx is cancelled. The callback runs on the watcher
// goroutine, so calls never overlap.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	for _, root := range w.roots {
		if err := w.add(fw, root); err != nil {
			return err
		}
	}

	pending := make(map[string]struct{})
	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					w.addNewDir(fw, event.Name)
					continue
				}
			}

			if !w.relevant(event.Name) {
				continue
			}

			pending[filepath.Clean(event.Name)] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			clear(pending)
			sort.Strings(changed)

			w.logger.Debug("files changed", slog.Int("count", len(changed)))
			w.onChange(ctx, changed)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

func (w *Watcher) add(fw *fsnotify.Watcher, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", root, err)
	}
	if !info.IsDir() {
		w.files[filepath.Clean(root)] = true
		return fw.Add(filepath.Dir(root))
	}
	return w.addTree(fw, root, root)
}

// addTree adds dir and its subdirectories, skipping excluded ones.
func (w *Watcher) addTree(fw *fsnotify.Watcher, root, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if w.opts.SkipDir(rel) {
			return filepath.SkipDir
		}
		w.dirs[filepath.Clean(path)] = root
		return fw.Add(path)
	})
}

func (w *Watcher) addNewDir(fw *fsnotify.Watcher, dir string) {
	root, ok := w.dirs[filepath.Dir(filepath.Clean(dir))]
	if !ok {
		return
	}
	if err := w.addTree(fw, root, dir); err != nil {
		w.logger.Warn("failed to watch new directory", "dir", dir, "error", err)
	}
}

// relevant reports whether a changed path should trigger a run.
func (w *Watcher) relevant(path string) bool {
	path = filepath.Clean(path)
	if w.files[path] {
		return true
	}
	root, ok := w.dirs[filepath.Dir(path)]
	if !ok {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return w.opts.Allowed(rel)
}
