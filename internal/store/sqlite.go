package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteDriverName = "sqlite"

const schemaSettings = `
CREATE TABLE IF NOT EXISTS settings (
    slot INTEGER PRIMARY KEY,
    value INTEGER NOT NULL CHECK (value BETWEEN 0 AND 255),
    updated_at TIMESTAMP NOT NULL
);
`

const (
	upsertSlotSQL = `
		INSERT INTO settings (slot, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			value=excluded.value,
			updated_at=excluded.updated_at
	`

	selectSlotSQL = `SELECT value FROM settings WHERE slot=?`
)

// OpenDB opens/creates a SQLite DB file and ensures the schema exists.
func OpenDB(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// One writer, and it is us.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = FULL;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.Exec(schemaSettings); err != nil {
		return fmt.Errorf("apply settings schema: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}

// SQLite stores slots in the settings table.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLite wraps an open database.
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db, now: time.Now}
}

// ReadSlot returns the slot value, or Erased if it was never written.
func (s *SQLite) ReadSlot(ctx context.Context, slot int) (byte, error) {
	var v int
	if err := s.db.QueryRowContext(ctx, selectSlotSQL, slot).Scan(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Erased, nil
		}
		return 0, fmt.Errorf("read slot %d: %w", slot, err)
	}
	if v < 0 || v > 255 {
		return 0, fmt.Errorf("read slot %d: stored value %d is not a byte", slot, v)
	}
	return byte(v), nil
}

// WriteSlot inserts or replaces the slot value.
func (s *SQLite) WriteSlot(ctx context.Context, slot int, value byte) error {
	if _, err := s.db.ExecContext(ctx, upsertSlotSQL, slot, int(value), s.now().UTC()); err != nil {
		return fmt.Errorf("write slot %d: %w", slot, err)
	}
	return nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
