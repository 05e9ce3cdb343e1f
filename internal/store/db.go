package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// ErrNoState is returned when an athlete has no aggregated state yet
var ErrNoState = errors.New("no athlete state stored")

// ErrRunNotFound is returned when a run doesn't exist
var ErrRunNotFound = errors.New("run not found")

// ErrNoGoal is returned when an athlete has no goal configured
var ErrNoGoal = errors.New("no goal stored")

// ErrNoOpenPeriod is returned when an athlete has no open philosophy period
var ErrNoOpenPeriod = errors.New("no open philosophy period")

// DB wraps the sqlite connection and provides the data access layer
type DB struct {
	*sql.DB
}

// Open opens the SQLite database, creating it if necessary.
// The database is stored at ~/.runcoach/data.db
func Open() (*DB, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, fmt.Errorf("getting db path: %w", err)
	}

	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return OpenPath(dbPath)
}

// OpenPath opens a SQLite database at the given path and runs migrations.
// Use ":memory:" for tests.
func OpenPath(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	// Run migrations
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &DB{db}, nil
}

// getDBPath returns the path to the SQLite database file
func getDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".runcoach", "data.db"), nil
}
