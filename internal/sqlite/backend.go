// Package sqlite implements the bed and planting store.
//
// JSONL files in the data directory are the source of truth. On Attach the
// SQLite database is recreated from scratch and loaded from them; every
// write goes to SQLite in a transaction and then rewrites the affected JSONL
// file atomically. The database file is a disposable query cache.
package sqlite

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/gardenplan/pkg/types"
)

// DBFile is the SQLite cache file created in DataDir.
const DBFile = "garden.db"

// Backend stores beds and plantings. All methods are safe for concurrent
// use; writes are serialized.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	logger   *slog.Logger
}

var (
	_ types.BedLookup      = (*Backend)(nil)
	_ types.OccupantSource = (*Backend)(nil)
)

var _ types.Store = (*Backend)(nil)

// NewBackend creates a detached backend. A nil logger uses slog.Default.
func NewBackend(logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.Default()
	}
	return &Backend{logger: logger}
}

// Attach opens the store in config.DataDir, creating the directory and empty
// JSONL files when missing, and loads all records into a fresh database.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	config.DataDir = dataDir

	dbPath := filepath.Join(dataDir, DBFile)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", dbPath, err)
	}
	// One connection keeps transactions and plain queries from contending
	// for the file lock.
	db.SetMaxOpenConns(1)

	for _, ddl := range append(append([]string{}, schemaDDL...), indexDDL...) {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	if err := initJSONLFiles(dataDir); err != nil {
		db.Close()
		return err
	}
	loaded, dropped, err := loadAllJSONL(db, dataDir)
	if err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}
	if dropped > 0 {
		b.logger.Warn("dropped plantings whose bed no longer exists", "data_dir", dataDir, "count", dropped)
	}

	b.db = db
	b.config = config
	b.attached = true
	b.logger.Debug("backend attached", "data_dir", dataDir, "records", loaded)
	return nil
}

// Detach closes the database. It is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if err := b.db.Close(); err != nil {
		return err
	}
	b.db = nil
	b.attached = false
	b.logger.Debug("backend detached", "data_dir", b.config.DataDir)
	return nil
}

// checkAttached returns ErrBackendDetached when the backend is closed. The
// caller must hold b.mu.
func (b *Backend) checkAttached() error {
	if !b.attached {
		return types.ErrBackendDetached
	}
	return nil
}

// generateUUID generates a new UUID v7 for entity IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
