package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leaplint/internal/cache"
	"github.com/leapstack-labs/leaplint/internal/cli/output"
)

// CacheStatus is the JSON shape of `leaplint cache status`.
type CacheStatus struct {
	Path    string     `json:"path"`
	Exists  bool       `json:"exists"`
	Enabled bool       `json:"enabled"`
	Entries int        `json:"entries"`
	LastRun *cache.Run `json:"last_run,omitempty"`
}

// NewCacheCommand creates the cache command and its subcommands.
func NewCacheCommand() *cobra.Command {
	var location string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the lint result cache",
		Long: `Inspect or clear the SQLite cache used by 'leaplint lint --cache'.

The cache location comes from cache.path in leaplint.yaml
(default .leaplint/cache.db) unless --cache-location is given.`,
	}

	cmd.PersistentFlags().StringVar(&location, "cache-location", "", "Path to the cache database")

	status := &cobra.Command{
		Use:   "status",
		Short: "Show cache location, size and last run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCacheStatus(cmd, location)
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCacheClear(cmd, location)
		},
	}

	cmd.AddCommand(status, clearCmd)
	return cmd
}

func cachePath(cctx *CommandContext, location string) (string, error) {
	path := cctx.Cfg.Cache.Path
	if location != "" {
		path = location
	}
	if path == "" {
		path = cache.DefaultPath
	}
	return filepath.Abs(path)
}

// openExistingCache opens the store at path. It returns a nil store when no
// database file exists so read-only commands do not create one.
func openExistingCache(cctx *CommandContext, path string) (*cache.Store, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat cache %s: %w", path, err)
	}

	store := cache.NewStore(cctx.Logger)
	if err := store.Open(path); err != nil {
		return nil, err
	}
	return store, nil
}

func runCacheStatus(cmd *cobra.Command, location string) error {
	cctx := NewCommandContextWithoutEngine(cmd)
	r := cctx.Renderer

	path, err := cachePath(cctx, location)
	if err != nil {
		return err
	}

	st := CacheStatus{Path: path, Enabled: cctx.Cfg.Cache.Enabled}
	store, err := openExistingCache(cctx, path)
	if err != nil {
		return err
	}
	if store != nil {
		defer func() { _ = store.Close() }()
		st.Exists = true
		if st.Entries, err = store.Entries(cmd.Context()); err != nil {
			return err
		}
		if st.LastRun, err = store.LastRun(cmd.Context()); err != nil {
			return err
		}
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(st)
	}

	r.Header(1, "Cache")
	r.Printf("Path:    %s\n", st.Path)
	r.Printf("Enabled: %t\n", st.Enabled)
	if !st.Exists {
		r.Println("No cache database yet")
		return nil
	}
	r.Printf("Entries: %d\n", st.Entries)
	if st.LastRun == nil {
		r.Println("Last run: none")
		return nil
	}
	r.Printf("Last run: %s (%d files, %d issues)\n",
		st.LastRun.StartedAt.Local().Format(time.DateTime), st.LastRun.Files, st.LastRun.Issues)
	return nil
}

func runCacheClear(cmd *cobra.Command, location string) error {
	cctx := NewCommandContextWithoutEngine(cmd)
	r := cctx.Renderer

	path, err := cachePath(cctx, location)
	if err != nil {
		return err
	}

	store, err := openExistingCache(cctx, path)
	if err != nil {
		return err
	}
	if store == nil {
		r.Success("Cache is already empty")
		return nil
	}
	defer func() { _ = store.Close() }()

	n, err := store.Entries(cmd.Context())
	if err != nil {
		return err
	}
	if err := store.Clear(cmd.Context()); err != nil {
		return err
	}

	cctx.Logger.Debug("cache cleared", "path", path, "entries", n)
	r.Success(fmt.Sprintf("Cleared %d cached results", n))
	return nil
}
