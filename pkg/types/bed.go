package types

import (
	"math"
	"time"
)

// DefaultGridResolutionInches is assumed when a bed has no usable resolution.
const DefaultGridResolutionInches = 12.0

// Bed is a planting area laid out as a square grid.
type Bed struct {
	BedID                string         `json:"bed_id"`
	Name                 string         `json:"name"`
	Owner                string         `json:"owner,omitempty"`
	GridResolutionInches float64        `json:"grid_resolution_inches"`
	WidthInches          float64        `json:"width_inches"`
	LengthInches         float64        `json:"length_inches"`
	Method               PlanningMethod `json:"method"`
	SunExposure          Light          `json:"sun_exposure"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

// Resolution returns the grid resolution, degrading to 12" when unset or
// non-positive.
func (b *Bed) Resolution() float64 {
	if b.GridResolutionInches <= 0 {
		return DefaultGridResolutionInches
	}
	return b.GridResolutionInches
}

// PlanningMethod returns the bed's method, assuming row planting when the
// stored value is missing or unrecognized.
func (b *Bed) PlanningMethod() PlanningMethod {
	if !b.Method.Valid() {
		return MethodRow
	}
	return b.Method
}

// Cols returns the number of grid columns across the bed width.
func (b *Bed) Cols() int {
	return int(math.Floor(b.WidthInches / b.Resolution()))
}

// Rows returns the number of grid rows along the bed length.
func (b *Bed) Rows() int {
	return int(math.Floor(b.LengthInches / b.Resolution()))
}

// Cells returns the total number of grid cells in the bed.
func (b *Bed) Cells() int {
	return b.Cols() * b.Rows()
}

// AreaSquareFeet returns the bed's planted area.
func (b *Bed) AreaSquareFeet() float64 {
	return b.WidthInches * b.LengthInches / 144
}

// Contains reports whether p lies on the bed's grid.
func (b *Bed) Contains(p Position) bool {
	return p.Col >= 0 && p.Row >= 0 && p.Col < b.Cols() && p.Row < b.Rows()
}

// Validate checks the fields required to persist a bed.
func (b *Bed) Validate() error {
	if b.Name == "" {
		return ErrInvalidName
	}
	if b.WidthInches <= 0 || b.LengthInches <= 0 || b.GridResolutionInches < 0 {
		return ErrInvalidBed
	}
	if b.Method != "" && !b.Method.Valid() {
		return ErrInvalidMethod
	}
	return nil
}

// BedLookup resolves bed identifiers.
type BedLookup interface {
	// BedByID returns the bed, or an error wrapping ErrBedNotFound.
	BedByID(id string) (*Bed, error)
}
