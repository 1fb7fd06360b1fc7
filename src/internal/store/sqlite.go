package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"citeassist/src/internal/schema"
)

// SQLiteStore keeps one row per item; the record is stored as JSON.
type SQLiteStore struct {
	Path string
}

const itemsDDL = `CREATE TABLE IF NOT EXISTS items (
  id TEXT PRIMARY KEY,
  position INTEGER NOT NULL,
  added TEXT NOT NULL,
  record TEXT NOT NULL
)`

func (s *SQLiteStore) open() (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", s.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(itemsDDL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return db, nil
}

// Load reads the items in position order.
func (s *SQLiteStore) Load() (List, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(`SELECT id, added, record FROM items ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("store: query items: %w", err)
	}
	defer rows.Close()

	out := List{}
	for rows.Next() {
		var id, added, raw string
		if err := rows.Scan(&id, &added, &raw); err != nil {
			return nil, err
		}
		it := Item{ID: id}
		if t, err := time.Parse(time.RFC3339Nano, added); err == nil {
			it.Added = t
		}
		var rec schema.Record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("store: decode record %s: %w", id, err)
		}
		it.Record = rec
		out = append(out, it)
	}
	return out, rows.Err()
}

// Save replaces the table contents in one transaction.
func (s *SQLiteStore) Save(l List) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM items`); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO items (id, position, added, record) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, it := range l {
		raw, err := json.Marshal(it.Record)
		if err != nil {
			return err
		}
		if _, err := stmt.Exec(it.ID, i, it.Added.UTC().Format(time.RFC3339Nano), string(raw)); err != nil {
			return fmt.Errorf("store: insert %s: %w", it.ID, err)
		}
	}
	return tx.Commit()
}
