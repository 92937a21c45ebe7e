package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mesh-intelligence/gardenplan/pkg/types"
)

// Column lists shared by the loader, queries and JSONL writers. JSONL record
// keys are the column names.
var (
	bedColumns = []string{
		"bed_id", "name", "owner", "grid_resolution_inches", "width_inches",
		"length_inches", "method", "sun_exposure", "created_at", "updated_at",
	}
	plantingColumns = []string{
		"planting_id", "crop_id", "variety", "bed_id", "pos_col", "pos_row",
		"seed_start_date", "transplant_date", "direct_seed_date",
		"expected_harvest_date", "actual_harvest_date", "override",
		"provisional", "created_at", "updated_at",
	}
)

// bedRecord is one line of beds.jsonl.
type bedRecord struct {
	BedID                string  `json:"bed_id"`
	Name                 string  `json:"name"`
	Owner                string  `json:"owner,omitempty"`
	GridResolutionInches float64 `json:"grid_resolution_inches"`
	WidthInches          float64 `json:"width_inches"`
	LengthInches         float64 `json:"length_inches"`
	Method               string  `json:"method"`
	SunExposure          string  `json:"sun_exposure,omitempty"`
	CreatedAt            string  `json:"created_at"`
	UpdatedAt            string  `json:"updated_at"`
}

// plantingRecord is one line of plantings.jsonl. Dates are YYYY-MM-DD.
type plantingRecord struct {
	PlantingID          string  `json:"planting_id"`
	CropID              string  `json:"crop_id"`
	Variety             string  `json:"variety,omitempty"`
	BedID               string  `json:"bed_id"`
	Col                 *int    `json:"pos_col"`
	Row                 *int    `json:"pos_row"`
	SeedStartDate       *string `json:"seed_start_date"`
	TransplantDate      *string `json:"transplant_date"`
	DirectSeedDate      *string `json:"direct_seed_date"`
	ExpectedHarvestDate *string `json:"expected_harvest_date"`
	ActualHarvestDate   *string `json:"actual_harvest_date"`
	Override            bool    `json:"override"`
	Provisional         bool    `json:"provisional"`
	CreatedAt           string  `json:"created_at"`
	UpdatedAt           string  `json:"updated_at"`
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBed(row rowScanner) (*types.Bed, error) {
	var b types.Bed
	var owner, sun sql.NullString
	var method, createdAt, updatedAt string
	err := row.Scan(
		&b.BedID, &b.Name, &owner, &b.GridResolutionInches, &b.WidthInches,
		&b.LengthInches, &method, &sun, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.Owner = owner.String
	b.Method = types.PlanningMethod(method)
	b.SunExposure = types.Light(sun.String)
	if b.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, err
	}
	if b.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func bedArgs(b *types.Bed) []any {
	return []any{
		b.BedID, b.Name, nullString(b.Owner), b.GridResolutionInches,
		b.WidthInches, b.LengthInches, string(b.Method),
		nullString(string(b.SunExposure)), formatTimestamp(b.CreatedAt),
		formatTimestamp(b.UpdatedAt),
	}
}

func bedToRecord(b *types.Bed) bedRecord {
	return bedRecord{
		BedID:                b.BedID,
		Name:                 b.Name,
		Owner:                b.Owner,
		GridResolutionInches: b.GridResolutionInches,
		WidthInches:          b.WidthInches,
		LengthInches:         b.LengthInches,
		Method:               string(b.Method),
		SunExposure:          string(b.SunExposure),
		CreatedAt:            formatTimestamp(b.CreatedAt),
		UpdatedAt:            formatTimestamp(b.UpdatedAt),
	}
}

func scanPlanting(row rowScanner) (*types.Planting, error) {
	var p types.Planting
	var variety sql.NullString
	var col, rowIdx sql.NullInt64
	var seedStart, transplant, directSeed, expected, actual sql.NullString
	var override, provisional sql.NullBool
	var createdAt, updatedAt string
	err := row.Scan(
		&p.PlantingID, &p.CropID, &variety, &p.BedID, &col, &rowIdx,
		&seedStart, &transplant, &directSeed, &expected, &actual,
		&override, &provisional, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Variety = variety.String
	if col.Valid && rowIdx.Valid {
		p.Position = &types.Position{Col: int(col.Int64), Row: int(rowIdx.Int64)}
	}
	p.Override = override.Bool
	p.Provisional = provisional.Bool

	dates := []struct {
		src sql.NullString
		dst **time.Time
	}{
		{seedStart, &p.SeedStartDate},
		{transplant, &p.TransplantDate},
		{directSeed, &p.DirectSeedDate},
		{expected, &p.ExpectedHarvestDate},
		{actual, &p.ActualHarvestDate},
	}
	for _, d := range dates {
		if !d.src.Valid {
			continue
		}
		if *d.dst, err = types.ParseDatePtr(d.src.String); err != nil {
			return nil, err
		}
	}
	if p.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func plantingArgs(p *types.Planting) []any {
	var col, row any
	if p.Position != nil {
		col, row = p.Position.Col, p.Position.Row
	}
	return []any{
		p.PlantingID, p.CropID, nullString(p.Variety), p.BedID, col, row,
		nullDate(p.SeedStartDate), nullDate(p.TransplantDate),
		nullDate(p.DirectSeedDate), nullDate(p.ExpectedHarvestDate),
		nullDate(p.ActualHarvestDate), p.Override, p.Provisional,
		formatTimestamp(p.CreatedAt), formatTimestamp(p.UpdatedAt),
	}
}

func plantingToRecord(p *types.Planting) plantingRecord {
	rec := plantingRecord{
		PlantingID:          p.PlantingID,
		CropID:              p.CropID,
		Variety:             p.Variety,
		BedID:               p.BedID,
		SeedStartDate:       datePtrString(p.SeedStartDate),
		TransplantDate:      datePtrString(p.TransplantDate),
		DirectSeedDate:      datePtrString(p.DirectSeedDate),
		ExpectedHarvestDate: datePtrString(p.ExpectedHarvestDate),
		ActualHarvestDate:   datePtrString(p.ActualHarvestDate),
		Override:            p.Override,
		Provisional:         p.Provisional,
		CreatedAt:           formatTimestamp(p.CreatedAt),
		UpdatedAt:           formatTimestamp(p.UpdatedAt),
	}
	if p.Position != nil {
		col, row := p.Position.Col, p.Position.Row
		rec.Col, rec.Row = &col, &row
	}
	return rec
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(types.DateLayout)
}

func datePtrString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(types.DateLayout)
	return &s
}
