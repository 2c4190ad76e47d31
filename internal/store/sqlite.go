// internal/store/sqlite.go
//
// SQLite-backed catalog source.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying embedded migrations (idempotent, recorded in _migrations).
//   - Seeding a catalog and loading it back in source order.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/pinyin-game/assets"
	"github.com/robalobadob/pinyin-game/internal/pinyin"
)

// SQLite holds catalog tables in a SQLite database.
type SQLite struct {
	db         *sql.DB
	dsn        string
	migrations fs.FS
}

// OpenSQLite opens (and creates if missing) a SQLite database file.
// The parent directory is created for relative paths like ./data/catalog.db.
// ":memory:" opens a private in-memory database.
func OpenSQLite(dsn string) (*SQLite, error) {
	if dsn != ":memory:" {
		dir := filepath.Dir(dsn)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("mkdir %s: %w", dir, err)
			}
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	// A single connection keeps ":memory:" databases alive across queries.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return &SQLite{db: db, dsn: dsn, migrations: assets.Migrations()}, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error { return s.db.Close() }

// Name describes the source for logs.
func (s *SQLite) Name() string { return "sqlite:" + s.dsn }

// Migrate applies every *.sql file of the embedded migrations in lexical
// order, each in its own transaction, skipping files already recorded.
func (s *SQLite) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(s.migrations, "*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := s.db.QueryRowContext(ctx, `SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlBytes, err := fs.ReadFile(s.migrations, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
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

// Seed replaces the stored catalog with cat in one transaction.
func (s *SQLite) Seed(ctx context.Context, cat *pinyin.Catalog) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM catalog_entries; DELETE FROM catalog_groups;`); err != nil {
		return fmt.Errorf("clear catalog: %w", err)
	}
	for gi, g := range cat.Groups() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO catalog_groups (key, title, position) VALUES (?, ?, ?)`,
			string(g.Key), g.Title, gi,
		); err != nil {
			return fmt.Errorf("insert group %s: %w", g.Key, err)
		}
		for ei, e := range g.Entries {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO catalog_entries (file_key, display, group_key, position, reading) VALUES (?, ?, ?, ?, ?)`,
				e.FileKey, e.Display, string(g.Key), ei, e.Reading,
			); err != nil {
				return fmt.Errorf("insert entry %s: %w", e.FileKey, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	log.Info().Int("entries", cat.Len()).Str("db", s.dsn).Msg("catalog seeded")
	return nil
}

// Load reads the stored catalog. It returns ErrEmpty when no group exists.
func (s *SQLite) Load(ctx context.Context) (*pinyin.Catalog, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT g.key, g.title, e.display, e.file_key, e.reading
        FROM catalog_groups g
        LEFT JOIN catalog_entries e ON e.group_key = g.key
        ORDER BY g.position ASC, e.position ASC`)
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	defer rows.Close()

	var groups []pinyin.Group
	for rows.Next() {
		var key, title string
		var display, fileKey, reading sql.NullString
		if err := rows.Scan(&key, &title, &display, &fileKey, &reading); err != nil {
			return nil, err
		}
		cat := pinyin.Category(strings.TrimSpace(key))
		if n := len(groups); n == 0 || groups[n-1].Key != cat {
			groups = append(groups, pinyin.Group{Title: title, Key: cat})
		}
		if display.Valid {
			g := &groups[len(groups)-1]
			g.Entries = append(g.Entries, pinyin.Entry{
				Display:  display.String,
				FileKey:  fileKey.String,
				Category: cat,
				Reading:  reading.String,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, ErrEmpty
	}

	c, err := pinyin.NewCatalog(groups)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name(), err)
	}
	return c, nil
}
