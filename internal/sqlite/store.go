// File path: internal/sqlite/store.go
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/nicodishanthj/affirmd/internal/common/telemetry"
	"github.com/nicodishanthj/affirmd/internal/model"
)

var errNilStore = errors.New("sqlite store not initialised")

// Store wraps a pooled sqlx.DB holding affirmations, daily progress and the
// settings singleton.
type Store struct {
	db *sqlx.DB
}

// Open constructs a Store backed by the SQLite database at the provided path,
// taking pool settings from LoadConfig.
func Open(path string) (*Store, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		cfg.Path = trimmed
	}
	return OpenWithConfig(cfg)
}

// OpenWithConfig constructs a Store using the provided configuration. The
// schema is created on first use.
func OpenWithConfig(cfg Config) (*Store, error) {
	cfg = DefaultConfig().Merge(cfg)
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, errors.New("sqlite path required")
	}
	abs, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve sqlite path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}
	busy := int(cfg.BusyTimeout / time.Millisecond)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)", abs, busy)
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.BusyTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Close releases the underlying database resources.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.ensureReady(); err != nil {
		return err
	}
	return s.db.PingContext(ctx)
}

func (s *Store) ensureReady() error {
	if s == nil || s.db == nil {
		return errNilStore
	}
	return nil
}

func (s *Store) migrate(ctx context.Context) error {
	if err := s.ensureReady(); err != nil {
		return err
	}
	return withTx(ctx, s.db, func(tx *sqlx.Tx) error {
		for i, stmt := range schemaStatements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("execute schema statement %d: %w", i+1, err)
			}
		}
		return nil
	})
}

func withTx(ctx context.Context, db *sqlx.DB, fn func(*sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// storeErr tags driver failures so the API can report them as server errors
// while leaving domain errors untouched.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrInvalidArgument) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, model.ErrStoreUnavailable, err)
}

func observe(op string, start time.Time) {
	telemetry.RecordStoreOp(op, time.Since(start))
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS affirmations (
                id TEXT PRIMARY KEY,
                text TEXT NOT NULL,
                sort_order INTEGER NOT NULL DEFAULT 0,
                is_example BOOLEAN NOT NULL DEFAULT 0,
                created_at TEXT NOT NULL
        );`,
	`CREATE TABLE IF NOT EXISTS daily_progress (
                id TEXT PRIMARY KEY,
                date TEXT NOT NULL UNIQUE,
                completed_affirmations TEXT NOT NULL DEFAULT '[]',
                total_affirmations INTEGER NOT NULL DEFAULT 0,
                completion_percentage REAL NOT NULL DEFAULT 0,
                practice_count INTEGER NOT NULL DEFAULT 0
        );`,
	`CREATE TABLE IF NOT EXISTS settings (
                singleton INTEGER PRIMARY KEY CHECK (singleton = 1),
                id TEXT NOT NULL,
                morning_time TEXT NOT NULL,
                night_time TEXT NOT NULL,
                notifications_enabled BOOLEAN NOT NULL DEFAULT 1,
                notification_times TEXT NOT NULL DEFAULT '[]',
                current_streak INTEGER NOT NULL DEFAULT 0 CHECK (current_streak >= 0),
                longest_streak INTEGER NOT NULL DEFAULT 0 CHECK (longest_streak >= 0),
                last_practice_date TEXT
        );`,
	`CREATE INDEX IF NOT EXISTS idx_affirmations_order ON affirmations(sort_order, created_at);`,
	`CREATE INDEX IF NOT EXISTS idx_affirmations_example ON affirmations(is_example);`,
}
