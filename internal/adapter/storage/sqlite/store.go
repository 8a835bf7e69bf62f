package sqlite

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	_ "modernc.org/sqlite"
)

const defaultBusyTimeout = 10 * time.Second

// Options tune the embedded store.
type Options struct {
	BusyTimeout  time.Duration
	MaxOpenConns int
	MaxIdleConns int
}

func (o Options) withDefaults() Options {
	if o.BusyTimeout <= 0 {
		o.BusyTimeout = defaultBusyTimeout
	}
	if o.MaxOpenConns <= 0 {
		o.MaxOpenConns = 4
	}
	if o.MaxIdleConns <= 0 {
		o.MaxIdleConns = 2
	}
	return o
}

// Store wraps a pooled sqlx.DB connection to the single-file operation
// log. All mutation goes through OperationRepo; no caller writes to
// the backing file directly.
type Store struct {
	db   *sqlx.DB
	path string
	log  zerolog.Logger
}

// Open creates or opens the store at path. A pre-existing file is
// integrity-checked first; on failure it is backed up beside itself,
// deleted and recreated. The self-heal runs at most once per open: a
// freshly created store that still reports corrupt indicates host I/O
// failure and surfaces as a fatal error.
func Open(path string, opts Options, log zerolog.Logger) (*Store, error) {
	return open(path, opts.withDefaults(), log, true)
}

func open(path string, opts Options, log zerolog.Logger, allowHeal bool) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("store path required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve store path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	existed := fileExists(abs)

	db, err := sqlx.Open("sqlite", dsn(abs, opts.BusyTimeout))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(opts.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), opts.BusyTimeout)
	defer cancel()

	healErr := func(cause error) (*Store, error) {
		db.Close()
		if !existed || !allowHeal {
			return nil, fmt.Errorf("store unrecoverable: %w", cause)
		}
		log.Warn().Err(cause).Str("path", abs).Msg("operation log corrupt, backing up and recreating")
		if err := quarantine(abs); err != nil {
			return nil, fmt.Errorf("quarantine corrupt store: %w", err)
		}
		return open(abs, opts, log, false)
	}

	if err := db.PingContext(ctx); err != nil {
		return healErr(fmt.Errorf("ping store: %w", err))
	}

	if existed {
		if err := integrityCheck(ctx, db); err != nil {
			return healErr(err)
		}
	}

	if err := migrate(ctx, db); err != nil {
		return healErr(fmt.Errorf("create schema: %w", err))
	}

	s := &Store{db: db, path: abs, log: log}
	s.hardenFilePermissions()

	return s, nil
}

// Close releases the underlying database handle. Safe to call more
// than once; operations issued after Close fail with a closed-store
// error.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB exposes the underlying handle for read-side queries.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Path returns the absolute path of the backing file.
func (s *Store) Path() string {
	return s.path
}

func dsn(path string, busyTimeout time.Duration) string {
	ms := int(busyTimeout / time.Millisecond)
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", path, ms)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// integrityCheck runs SQLite's self-diagnostic. A file that is not a
// database at all fails the query itself.
func integrityCheck(ctx context.Context, db *sqlx.DB) error {
	var result string
	if err := db.GetContext(ctx, &result, "PRAGMA integrity_check"); err != nil {
		return fmt.Errorf("integrity check: %w", err)
	}
	if result != "ok" {
		return fmt.Errorf("integrity check failed: %s", result)
	}
	return nil
}

// quarantine copies the corrupt file to a .corrupted.bak sibling and
// removes the original together with its WAL companions.
func quarantine(path string) error {
	backup := path + ".corrupted.bak"
	if err := copyFile(path, backup); err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return err
	}
	for _, sidecar := range []string{path + "-wal", path + "-shm"} {
		os.Remove(sidecar)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, in)
	return err
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS operations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT NOT NULL,
		operation_type TEXT NOT NULL,
		time_point TEXT NOT NULL,
		center_code TEXT NOT NULL,
		hospital_number TEXT NOT NULL,
		pdf_files TEXT NOT NULL,
		merge_flag INTEGER NOT NULL,
		is_duplicate INTEGER NOT NULL,
		reprint_reason TEXT,
		username TEXT,
		operation_hash TEXT NOT NULL,
		file_count INTEGER NOT NULL,
		output_path TEXT
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_operation_hash ON operations(operation_hash);`,
	`CREATE INDEX IF NOT EXISTS idx_hospital_number ON operations(hospital_number);`,
	`CREATE INDEX IF NOT EXISTS idx_timestamp ON operations(timestamp);`,
}

// migrate applies the idempotent schema.
func migrate(ctx context.Context, db *sqlx.DB) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	for i, stmt := range schemaStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("execute schema statement %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}
	return nil
}

// hardenFilePermissions tightens the backing file to the current
// account. Best effort: failure is logged, never fatal.
func (s *Store) hardenFilePermissions() {
	if err := os.Chmod(s.path, 0o600); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("could not restrict operation log permissions")
	}
}
