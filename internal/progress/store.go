// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package progress persists per-row categorization results so an interrupted
// run can resume without repeating API calls. Rows are keyed by the SHA-256
// of the input file, so resume survives a rename but not a content edit.
package progress

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Store manages the progress SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the progress database at path, creating the schema
// and parent directories if they do not exist.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating progress directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening progress database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS progress (
		input_sha TEXT NOT NULL,
		row_idx INTEGER NOT NULL,
		category TEXT NOT NULL,
		PRIMARY KEY (input_sha, row_idx)
	)`)
	return err
}

// Load returns the categories saved for the given input hash, keyed by row index.
func (s *Store) Load(ctx context.Context, inputSHA string) (map[int]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT row_idx, category FROM progress WHERE input_sha = ?`, inputSHA)
	if err != nil {
		return nil, fmt.Errorf("loading progress: %w", err)
	}
	defer rows.Close()

	out := make(map[int]string)
	for rows.Next() {
		var idx int
		var category string
		if err := rows.Scan(&idx, &category); err != nil {
			return nil, fmt.Errorf("scanning progress row: %w", err)
		}
		out[idx] = category
	}
	return out, rows.Err()
}

// SaveBatch upserts a batch of row categories for the given input hash in one
// transaction.
func (s *Store) SaveBatch(ctx context.Context, inputSHA string, batch map[int]string) error {
	if len(batch) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting progress transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO progress (input_sha, row_idx, category) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing progress insert: %w", err)
	}
	defer stmt.Close()

	for idx, category := range batch {
		if _, err := stmt.ExecContext(ctx, inputSHA, idx, category); err != nil {
			return fmt.Errorf("saving progress for row %d: %w", idx, err)
		}
	}

	return tx.Commit()
}

// Clear removes all saved progress for the given input hash. Called after a
// run completes so a rerun starts clean.
func (s *Store) Clear(ctx context.Context, inputSHA string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM progress WHERE input_sha = ?`, inputSHA)
	if err != nil {
		return fmt.Errorf("clearing progress: %w", err)
	}
	return nil
}

// FileSHA256 returns the hex SHA-256 of the file at path, the key under which
// its progress is stored.
func FileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
