package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"multi-city-planner/internal/database"
	"multi-city-planner/internal/logger"

	_ "modernc.org/sqlite"
)

const (
	DefaultDBFileName = database.DBFileName
	schemaVersion     = 1
)

// Store is a SQLite-based data store implementing database.DataStore
type Store struct {
	db  *sql.DB
	mu  sync.RWMutex
	log logger.Logger

	tripRepo database.TripRepository
}

// New creates a new SQLite store at the specified path
func New(dbPath string, log logger.Logger) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	log.Info("Opening SQLite database", "path", dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA cache_size = -16000",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}

	store := &Store{
		db:  db,
		log: log,
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	store.tripRepo = &tripRepository{store: store}

	return store, nil
}

func (s *Store) initSchema() error {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		// no version table yet
		return s.createSchema()
	}

	if version != schemaVersion {
		return fmt.Errorf("unsupported schema version %d (expected %d)", version, schemaVersion)
	}
	return nil
}

func (s *Store) createSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY
	);
	INSERT INTO schema_version (version) VALUES (%d);

	-- Trips are stored whole as JSON; the scalar columns back listing
	CREATE TABLE IF NOT EXISTS trips (
		id TEXT PRIMARY KEY,
		status TEXT NOT NULL,
		start_date DATETIME NOT NULL,
		end_date DATETIME NOT NULL,
		cities TEXT NOT NULL,
		payload TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		last_modified_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_trips_modified ON trips(last_modified_at DESC);
	`

	if _, err := s.db.Exec(fmt.Sprintf(schema, schemaVersion)); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	s.log.Info("SQLite schema initialized", "version", schemaVersion)
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		if _, err := s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
			s.log.Warn("WAL checkpoint failed", "error", err)
		}
		return s.db.Close()
	}
	return nil
}

// HealthCheck verifies the database connection
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Trips returns the trip repository
func (s *Store) Trips() database.TripRepository { return s.tripRepo }
