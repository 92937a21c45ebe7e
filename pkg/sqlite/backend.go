// Package sqlite exposes the factory for the SQLite garden store while
// keeping its implementation internal.
package sqlite

import (
	"log/slog"

	"github.com/mesh-intelligence/gardenplan/internal/sqlite"
	"github.com/mesh-intelligence/gardenplan/pkg/types"
)

// NewBackend creates a new SQLite backend. The backend is not attached; call
// Attach with a Config to load its data directory. A nil logger uses
// slog.Default.
//
// Example:
//
//	backend := sqlite.NewBackend(nil)
//	err := backend.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".gardenplan-data",
//	})
//	defer backend.Detach()
//	report, err := backend.Place(planting, garden.New(crops))
func NewBackend(logger *slog.Logger) types.Store {
	return sqlite.NewBackend(logger)
}
