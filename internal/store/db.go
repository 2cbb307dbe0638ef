// Package store persists a board: its columns, the cards in them and the
// cards filed inside folders. It is the host side of the drag engine. Zones
// report reorder and drop intents; the board applies them here and reloads.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/marcus/freeform/internal/workdir"
	_ "modernc.org/sqlite"
)

// DB wraps the database connection
type DB struct {
	conn  *sql.DB
	board workdir.Board
}

// Open opens an existing board database.
func Open(b workdir.Board) (*DB, error) {
	if !b.Exists() {
		return nil, fmt.Errorf("board not found in %s: run 'freeform init' first", b.Root)
	}
	return open(b)
}

// Initialize creates the database if needed and applies the schema.
func Initialize(b workdir.Board) (*DB, error) {
	if err := b.EnsureDir(); err != nil {
		return nil, err
	}
	return open(b)
}

func open(b workdir.Board) (*DB, error) {
	conn, err := sql.Open("sqlite", b.DBPath())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for concurrent reads while writes are serialized
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := conn.Exec("PRAGMA busy_timeout=500"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	// Slightly faster writes, still safe with WAL
	conn.Exec("PRAGMA synchronous=NORMAL")

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	if _, err := conn.Exec(`INSERT OR IGNORE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		conn.Close()
		return nil, fmt.Errorf("record schema version: %w", err)
	}

	return &DB{conn: conn, board: b}, nil
}

// Close closes the database
func (db *DB) Close() error {
	return db.conn.Close()
}

// Board returns where the database lives.
func (db *DB) Board() workdir.Board {
	return db.board
}

// withTx runs fn in a transaction, committing when it returns nil.
func (db *DB) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
