// internal/dictstore/dictstore.go
//
// SQLite-backed dictionary oracle.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout).
//   - Applying embedded migrations from sql/*.sql (recorded in _migrations).
//   - Loading word lists per language and answering IsReal lookups.
//
// Only dictionary words are stored here; round state stays in memory.

package dictstore

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
)

//go:embed sql/*.sql
var migrations embed.FS

// Store answers dictionary lookups from a SQLite table.
type Store struct {
	db *sql.DB
}

// Open opens (creating if missing) the database at dsn and applies migrations.
// Use ":memory:" for a throwaway dictionary.
func Open(dsn string) (*Store, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// Load inserts words for lang in a single transaction. Duplicates are ignored.
func (s *Store) Load(ctx context.Context, lang language.Tag, words []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin load: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO words(language, word) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare load: %w", err)
	}
	defer stmt.Close()

	tag := lang.String()
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, tag, w); err != nil {
			return fmt.Errorf("insert %q: %w", w, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit load: %w", err)
	}
	return nil
}

// Count returns how many words are stored for lang.
func (s *Store) Count(ctx context.Context, lang language.Tag) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM words WHERE language=?`, lang.String()).Scan(&n)
	return n, err
}

// IsReal reports whether word is stored for lang.
// Lookup failures are logged and treated as "not a word".
func (s *Store) IsReal(word string, lang language.Tag) bool {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM words WHERE language=? AND word=?`, lang.String(), word).Scan(&one)
	if err == nil {
		return true
	}
	if !errors.Is(err, sql.ErrNoRows) {
		log.Error().Err(err).Str("word", word).Str("language", lang.String()).Msg("dictionary lookup")
	}
	return false
}

// openDB opens a SQLite database, creating the parent directory for file DSNs.
func openDB(dsn string) (*sql.DB, error) {
	memory := dsn == ":memory:"
	source := dsn
	if !memory {
		if dir := filepath.Dir(dsn); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("mkdir %s: %w", dir, err)
			}
		}
		source += "?_busy_timeout=5000&_journal_mode=WAL"
	}

	db, err := sql.Open("sqlite3", source)
	if err != nil {
		return nil, err
	}
	// Each new connection to ":memory:" is a separate database.
	if memory {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", dsn, err)
	}
	return db, nil
}

// migrate applies embedded migrations in lexical order, each at most once.
func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(migrations, "sql/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		body, err := fs.ReadFile(migrations, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(body)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}
