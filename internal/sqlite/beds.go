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
	selectBeds = "SELECT " + strings.Join(bedColumns, ", ") + " FROM beds"
	upsertBed  = upsertSQL("beds", "bed_id", bedColumns)
)

// SaveBed creates or updates a bed. An empty BedID creates a new bed with a
// UUID v7; a zero grid resolution is stored as 12". Returns the bed ID.
func (b *Backend) SaveBed(bed *types.Bed) (string, error) {
	if err := bed.Validate(); err != nil {
		return "", err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkAttached(); err != nil {
		return "", err
	}

	now := time.Now().UTC()
	if bed.BedID == "" {
		bed.BedID = generateUUID()
		bed.CreatedAt = now
	}
	if bed.CreatedAt.IsZero() {
		bed.CreatedAt = now
	}
	bed.UpdatedAt = now
	if bed.GridResolutionInches == 0 {
		bed.GridResolutionInches = types.DefaultGridResolutionInches
	}
	if bed.Method == "" {
		bed.Method = types.MethodRow
	}

	if _, err := b.db.Exec(upsertBed, bedArgs(bed)...); err != nil {
		return "", fmt.Errorf("saving bed %s: %w", bed.BedID, err)
	}
	if err := b.persistBeds(); err != nil {
		return "", err
	}
	b.logger.Debug("bed saved", "bed_id", bed.BedID, "method", bed.Method)
	return bed.BedID, nil
}

// BedByID returns a bed. The error wraps ErrBedNotFound when it does not
// exist.
func (b *Backend) BedByID(id string) (*types.Bed, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkAttached(); err != nil {
		return nil, err
	}
	return getBed(b.db, id)
}

// Beds returns all beds in creation order.
func (b *Backend) Beds() ([]*types.Bed, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkAttached(); err != nil {
		return nil, err
	}
	return queryBeds(b.db)
}

// DeleteBed removes a bed and every planting in it.
func (b *Backend) DeleteBed(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkAttached(); err != nil {
		return err
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM beds WHERE bed_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting bed %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("bed %s: %w", id, types.ErrBedNotFound)
	}
	res, err = tx.Exec("DELETE FROM plantings WHERE bed_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting plantings of bed %s: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing bed delete: %w", err)
	}

	if err := b.persistBeds(); err != nil {
		return err
	}
	if err := b.persistPlantings(); err != nil {
		return err
	}
	removed, _ := res.RowsAffected()
	b.logger.Debug("bed deleted", "bed_id", id, "plantings", removed)
	return nil
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryRow(query string, args ...any) *sql.Row
	Query(query string, args ...any) (*sql.Rows, error)
}

func getBed(q queryer, id string) (*types.Bed, error) {
	bed, err := scanBed(q.QueryRow(selectBeds+" WHERE bed_id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("bed %s: %w", id, types.ErrBedNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting bed %s: %w", id, err)
	}
	return bed, nil
}

func queryBeds(q queryer) ([]*types.Bed, error) {
	rows, err := q.Query(selectBeds + " ORDER BY created_at, bed_id")
	if err != nil {
		return nil, fmt.Errorf("querying beds: %w", err)
	}
	defer rows.Close()

	var beds []*types.Bed
	for rows.Next() {
		bed, err := scanBed(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning bed: %w", err)
		}
		beds = append(beds, bed)
	}
	return beds, rows.Err()
}

// persistBeds rewrites beds.jsonl from SQLite. The caller must hold b.mu.
func (b *Backend) persistBeds() error {
	beds, err := queryBeds(b.db)
	if err != nil {
		return err
	}
	records := make([]json.RawMessage, 0, len(beds))
	for _, bed := range beds {
		data, err := json.Marshal(bedToRecord(bed))
		if err != nil {
			return fmt.Errorf("marshaling bed %s: %w", bed.BedID, err)
		}
		records = append(records, data)
	}
	if err := writeJSONL(filepath.Join(b.config.DataDir, bedsJSONL), records); err != nil {
		return fmt.Errorf("persisting %s: %w", bedsJSONL, err)
	}
	return nil
}

// upsertSQL builds an INSERT that updates every non-key column on conflict.
func upsertSQL(table, key string, columns []string) string {
	var updates []string
	for _, c := range columns {
		if c != key {
			updates = append(updates, c+" = excluded."+c)
		}
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT(%s) DO UPDATE SET %s",
		table,
		strings.Join(columns, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", "),
		key,
		strings.Join(updates, ", "),
	)
}
