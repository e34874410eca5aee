// Package store persists words, review records, and learner settings
// in a local SQLite database.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store wraps the database handle and hands out repositories.
type Store struct {
	db *sqlx.DB
}

// Open connects to the SQLite database at dsn, applies pragmas, and
// creates the schema if needed.
func Open(dsn string) (*Store, error) {
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite allows a single writer; serializing through one
	// connection also gives RecordAnswer its per-record atomicity.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying handle for raw queries.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Words returns the word repository backed by this store.
func (s *Store) Words() WordRepo {
	return &wordRepo{db: s.db}
}

// Records returns the review-record repository backed by this store.
func (s *Store) Records() RecordRepo {
	return &recordRepo{db: s.db}
}

// Settings returns the settings repository backed by this store.
func (s *Store) Settings() SettingsRepo {
	return &settingsRepo{db: s.db}
}

// applyPragmas configures SQLite for single-user desktop use.
func applyPragmas(db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func createSchema(db *sqlx.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS words (
			id            INTEGER PRIMARY KEY,
			ru            TEXT NOT NULL,
			en            TEXT NOT NULL,
			pos           TEXT NOT NULL,
			level         TEXT NOT NULL DEFAULT 'A1',
			frequency     INTEGER NOT NULL,
			cognate_score REAL NOT NULL DEFAULT 0,
			origin        TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS word_forms (
			word_id INTEGER NOT NULL REFERENCES words(id) ON DELETE CASCADE,
			lang    TEXT NOT NULL,
			native  TEXT NOT NULL,
			latin   TEXT NOT NULL DEFAULT '',
			ipa     TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (word_id, lang)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_words_frequency ON words(frequency)`,
		`CREATE TABLE IF NOT EXISTS review_records (
			word_id          INTEGER PRIMARY KEY REFERENCES words(id),
			ease_factor      REAL NOT NULL DEFAULT 2.5,
			interval         INTEGER NOT NULL DEFAULT 1,
			repetitions      INTEGER NOT NULL DEFAULT 0,
			next_review_date TEXT NOT NULL,
			correct_count    INTEGER NOT NULL DEFAULT 0,
			incorrect_count  INTEGER NOT NULL DEFAULT 0,
			last_reviewed_at TEXT,
			first_seen_at    TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_next_review ON review_records(next_review_date)`,
		`CREATE TABLE IF NOT EXISTS learner_settings (
			id                  INTEGER PRIMARY KEY CHECK (id = 1),
			interface_language  TEXT NOT NULL,
			active_languages    TEXT NOT NULL,
			daily_goal_minutes  INTEGER NOT NULL,
			sound_enabled       INTEGER NOT NULL DEFAULT 1,
			current_streak      INTEGER NOT NULL DEFAULT 0,
			last_session_date   TEXT,
			total_study_minutes INTEGER NOT NULL DEFAULT 0,
			created_at          TEXT NOT NULL
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. SOZDIK_DB environment variable
// 2. $XDG_DATA_HOME/sozdik/sozdik.db
// 3. ~/.local/share/sozdik/sozdik.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("SOZDIK_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "sozdik", "sozdik.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
