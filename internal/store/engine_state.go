package store

import (
	"database/sql"
	"errors"
)

// GetEngineState retrieves a bookkeeping value by key.
// Returns empty string if the key doesn't exist.
func (db *DB) GetEngineState(key string) (string, error) {
	var value string
	err := db.QueryRow(`SELECT value FROM engine_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

// SetEngineState sets a bookkeeping value.
func (db *DB) SetEngineState(key, value string) error {
	_, err := db.Exec(`
		INSERT INTO engine_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	return err
}
