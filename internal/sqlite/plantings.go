package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mesh-intelligence/gardenplan/pkg/types"
)

var (
	selectPlantings = "SELECT " + strings.Join(plantingColumns, ", ") + " FROM plantings"
	upsertPlanting  = upsertSQL("plantings", "planting_id", plantingColumns)
)

// SavePlanting creates or updates a planting without a conflict check. Use
// Place to enforce conflicts. An empty PlantingID creates a new record with a
// UUID v7. Returns ErrInvalidWindow for an inverted occupancy window and an
// error wrapping ErrBedNotFound when the bed does not exist.
func (b *Backend) SavePlanting(p *types.Planting) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkAttached(); err != nil {
		return "", err
	}

	tx, err := b.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	bed, err := getBed(tx, p.BedID)
	if err != nil {
		return "", err
	}
	if err := writePlanting(tx, bed, p); err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing planting: %w", err)
	}
	if err := b.persistPlantings(); err != nil {
		return "", err
	}
	return p.PlantingID, nil
}

// Planting returns one planting. Returns ErrNotFound when it does not exist.
func (b *Backend) Planting(id string) (*types.Planting, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkAttached(); err != nil {
		return nil, err
	}

	p, err := scanPlanting(b.db.QueryRow(selectPlantings+" WHERE planting_id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("planting %s: %w", id, types.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting planting %s: %w", id, err)
	}
	return p, nil
}

// Plantings returns every planting, or only those in bedID when it is not
// empty, in creation order.
func (b *Backend) Plantings(bedID string) ([]*types.Planting, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkAttached(); err != nil {
		return nil, err
	}
	if bedID == "" {
		return queryPlantings(b.db, selectPlantings+" ORDER BY created_at, planting_id")
	}
	return queryPlantings(b.db, selectPlantings+" WHERE bed_id = ? ORDER BY created_at, planting_id", bedID)
}

// OccupantsInBed returns the positioned, non-provisional plantings in a bed.
func (b *Backend) OccupantsInBed(bedID string) ([]types.Occupant, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkAttached(); err != nil {
		return nil, err
	}
	return occupantsInBed(b.db, bedID)
}

// DeletePlanting removes a planting. Returns ErrNotFound when it does not
// exist.
func (b *Backend) DeletePlanting(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkAttached(); err != nil {
		return err
	}

	res, err := b.db.Exec("DELETE FROM plantings WHERE planting_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting planting %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("planting %s: %w", id, types.ErrNotFound)
	}
	return b.persistPlantings()
}

func occupantsInBed(q queryer, bedID string) ([]types.Occupant, error) {
	plantings, err := queryPlantings(q, selectPlantings+
		` WHERE bed_id = ?
		AND bed_id IN (SELECT bed_id FROM beds)
		AND pos_col IS NOT NULL AND pos_row IS NOT NULL
		AND COALESCE(provisional, 0) = 0
		ORDER BY planting_id`, bedID)
	if err != nil {
		return nil, err
	}
	out := make([]types.Occupant, len(plantings))
	for i, p := range plantings {
		out[i] = p
	}
	return out, nil
}

func queryPlantings(q queryer, query string, args ...any) ([]*types.Planting, error) {
	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying plantings: %w", err)
	}
	defer rows.Close()

	var out []*types.Planting
	for rows.Next() {
		p, err := scanPlanting(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning planting: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// writePlanting stamps IDs and timestamps and upserts p inside tx. A
// position must lie on the bed's grid.
func writePlanting(tx *sql.Tx, bed *types.Bed, p *types.Planting) error {
	if pos, ok := p.GridPosition(); ok && !bed.Contains(pos) {
		return fmt.Errorf("%w: position %s outside bed %s", types.ErrInvalidData, pos, bed.BedID)
	}
	now := time.Now().UTC()
	if p.PlantingID == "" {
		p.PlantingID = generateUUID()
		p.CreatedAt = now
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	if _, err := tx.Exec(upsertPlanting, plantingArgs(p)...); err != nil {
		return fmt.Errorf("saving planting %s: %w", p.PlantingID, err)
	}
	return nil
}

// persistPlantings rewrites plantings.jsonl from SQLite. The caller must
// hold b.mu.
func (b *Backend) persistPlantings() error {
	plantings, err := queryPlantings(b.db, selectPlantings+" ORDER BY created_at, planting_id")
	if err != nil {
		return err
	}
	records := make([]json.RawMessage, 0, len(plantings))
	for _, p := range plantings {
		data, err := json.Marshal(plantingToRecord(p))
		if err != nil {
			return fmt.Errorf("marshaling planting %s: %w", p.PlantingID, err)
		}
		records = append(records, data)
	}
	if err := writeJSONL(filepath.Join(b.config.DataDir, plantingsJSONL), records); err != nil {
		return fmt.Errorf("persisting %s: %w", plantingsJSONL, err)
	}
	return nil
}
