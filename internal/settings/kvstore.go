// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package settings

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrKeyNotFound is returned when the store has no value for a key.
var ErrKeyNotFound = errors.New("settings key not found")

// =============================================================================
// KEY-VALUE STORE
// =============================================================================

// KVStore is the opaque persistence layer: whole JSON values keyed by
// name, atomically replaced per key.
type KVStore struct {
	db *sql.DB
}

// OpenKV opens (creating if needed) the settings database at path.
func OpenKV(path string) (*KVStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create settings directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings database: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS settings (
			key        TEXT PRIMARY KEY,
			value      BLOB NOT NULL,
			updated_at TEXT NOT NULL
		)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create settings schema: %w", err)
	}

	return &KVStore{db: db}, nil
}

// Get unmarshals the value stored under key into v.
func (s *KVStore) Get(key string, v any) error {
	var blob []byte
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrKeyNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read settings key %q: %w", key, err)
	}

	if err := json.Unmarshal(blob, v); err != nil {
		return fmt.Errorf("failed to decode settings key %q: %w", key, err)
	}
	return nil
}

// Put replaces the value stored under key with v, as one atomic
// whole-object write.
func (s *KVStore) Put(key string, v any) error {
	blob, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode settings key %q: %w", key, err)
	}

	_, err = s.db.Exec(`
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, blob, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to write settings key %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *KVStore) Close() error {
	return s.db.Close()
}
