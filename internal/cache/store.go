// Package cache stores lint results in SQLite so unchanged files are not
// analysed again.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver (pure Go)

	"github.com/leapstack-labs/leaplint/pkg/lint"
)

// ErrNotOpen is returned when the store is used before Open.
var ErrNotOpen = errors.New("database not opened")

// DefaultPath is the cache location relative to the project root.
const DefaultPath = ".leaplint/cache.db"

// Store is a SQLite-backed result cache.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Run records one invocation of the linter.
type Run struct {
	ID          string     `json:"id"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Files       int        `json:"files"`
	Issues      int        `json:"issues"`
}

// NewStore creates a store. A nil logger discards output.
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{logger: logger}
}

// Open opens the database at path and applies migrations.
// Use ":memory:" for an in-memory database.
func (s *Store) Open(path string) error {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create cache directory: %w", err)
		}
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// One connection serialises writers and keeps :memory: databases shared.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path

	if err := s.Migrate(); err != nil {
		_ = s.Close()
		return err
	}

	s.logger.Debug("cache opened", slog.String("path", path))
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Path returns the database path passed to Open.
func (s *Store) Path() string {
	return s.path
}

// Lookup returns the cached diagnostics for path when both hashes match.
func (s *Store) Lookup(ctx context.Context, path, contentHash, configHash string) ([]lint.Diagnostic, bool, error) {
	if s.db == nil {
		return nil, false, ErrNotOpen
	}

	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT diagnostics FROM file_results WHERE path = ? AND content_hash = ? AND config_hash = ?`,
		path, contentHash, configHash,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up %s: %w", path, err)
	}

	var diags []lint.Diagnostic
	if err := json.Unmarshal([]byte(raw), &diags); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached diagnostics for %s: %w", path, err)
	}
	s.logger.Debug("cache hit", slog.String("path", path))
	return diags, true, nil
}

// Save stores the diagnostics of path, replacing any previous entry.
func (s *Store) Save(ctx context.Context, path, contentHash, configHash string, diags []lint.Diagnostic) error {
	if s.db == nil {
		return ErrNotOpen
	}
	if diags == nil {
		diags = []lint.Diagnostic{}
	}

	raw, err := json.Marshal(diags)
	if err != nil {
		return fmt.Errorf("failed to encode diagnostics for %s: %w", path, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO file_results (path, content_hash, config_hash, diagnostics, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
		   content_hash = excluded.content_hash,
		   config_hash  = excluded.config_hash,
		   diagnostics  = excluded.diagnostics,
		   updated_at   = excluded.updated_at`,
		path, contentHash, configHash, string(raw), time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// Entries returns the number of cached file results.
func (s *Store) Entries(ctx context.Context) (int, error) {
	if s.db == nil {
		return 0, ErrNotOpen
	}
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM file_results`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count cache entries: %w", err)
	}
	return n, nil
}

// Clear removes every cached result and run.
func (s *Store) Clear(ctx context.Context) error {
	if s.db == nil {
		return ErrNotOpen
	}
	for _, stmt := range []string{`DELETE FROM file_results`, `DELETE FROM runs`} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
	}
	return nil
}

// --- Run operations ---

// StartRun records the start of a lint run.
func (s *Store) StartRun(ctx context.Context) (*Run, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}

	run := &Run{
		ID:        uuid.New().String(),
		StartedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at) VALUES (?, ?)`,
		run.ID, run.StartedAt.UnixMilli(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	s.logger.Debug("run started", slog.String("id", run.ID))
	return run, nil
}

// FinishRun marks a run as completed with its totals.
func (s *Store) FinishRun(ctx context.Context, id string, files, issues int) error {
	if s.db == nil {
		return ErrNotOpen
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET completed_at = ?, files = ?, issues = ? WHERE id = ?`,
		time.Now().UTC().UnixMilli(), files, issues, id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("run not found: %s", id)
	}
	return nil
}

// LastRun returns the most recent run, or nil when none exists.
func (s *Store) LastRun(ctx context.Context) (*Run, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}

	var (
		run         Run
		startedAt   int64
		completedAt sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, completed_at, files, issues FROM runs ORDER BY started_at DESC, rowid DESC LIMIT 1`,
	).Scan(&run.ID, &startedAt, &completedAt, &run.Files, &run.Issues)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest run: %w", err)
	}

	run.StartedAt = time.UnixMilli(startedAt).UTC()
	if completedAt.Valid {
		t := time.UnixMilli(completedAt.Int64).UTC()
		run.CompletedAt = &t
	}
	return &run, nil
}
