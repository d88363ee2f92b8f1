package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Default discovery globs.
var (
	DefaultInclude = []string{"**/*.{js,mjs,cjs,jsx,ts,mts,cts,tsx}"}
	DefaultExclude = []string{"**/node_modules/**", "**/.git/**"}
)

// ErrNoFiles is returned when no path yields a lintable file.
var ErrNoFiles = errors.New("no files to lint")

// Options configures discovery.
type Options struct {
	Include []string // Glob patterns a file must match; empty means DefaultInclude
	Exclude []string // Glob patterns removing files and directories
}

func (o Options) includes() []string {
	if len(o.Include) == 0 {
		return DefaultInclude
	}
	return o.Include
}

// Allowed reports whether a slash-separated relative path passes the
// include and exclude globs.
func (o Options) Allowed(rel string) bool {
	rel = filepath.ToSlash(rel)
	if !matchAnyGlob(rel, o.includes()) {
		return false
	}
	return !matchAnyGlob(rel, o.Exclude)
}

// SkipDir reports whether a directory is excluded.
func (o Options) SkipDir(rel string) bool {
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == "" {
		return false
	}
	return matchAnyGlob(rel, o.Exclude) || matchAnyGlob(rel+"/", o.Exclude)
}

// Discover expands paths into the sorted list of files to lint.
// Directories are walked and filtered through the globs; files named
// explicitly are always kept.
func Discover(paths []string, opts Options) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(p string) {
		p = filepath.Clean(p)
		if _, dup := seen[p]; dup {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				return relErr
			}
			if d.IsDir() {
				if opts.SkipDir(rel) {
					return filepath.SkipDir
				}
				return nil
			}
			if opts.Allowed(rel) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	sort.Strings(files)
	return files, nil
}

// IsLintable reports whether the file extension is one the loader handles.
func IsLintable(path string) bool {
	_, ok := languages[strings.ToLower(filepath.Ext(path))]
	return ok
}

func matchAnyGlob(rel string, globs []string) bool {
	base := filepath.Base(rel)
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, base); ok {
			return true
		}
	}
	return false
}
