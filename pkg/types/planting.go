package types

import (
	"fmt"
	"time"
)

// Position is an integer (column, row) cell on a bed grid.
type Position struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// String renders the position as "(col,row)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Col, p.Row)
}

// Occupant is the read-only accessor contract the conflict engine reasons
// over. Persisted plantings and speculative candidates both satisfy it.
type Occupant interface {
	// ID returns the stable record identity, or "" for an unsaved candidate.
	ID() string
	Crop() string
	VarietyName() string
	Bed() string
	// GridPosition returns the cell, or false for a timeline-only record.
	GridPosition() (Position, bool)
	// OccupancyWindow returns the dates the planting is physically in the bed.
	OccupancyWindow() DateRange
	// ConflictOverride reports whether conflict enforcement is suppressed.
	ConflictOverride() bool
}

// OccupantSource lists what currently occupies a bed.
type OccupantSource interface {
	// OccupantsInBed returns every positioned, non-provisional record in the
	// bed. Records whose bed no longer exists are never returned.
	OccupantsInBed(bedID string) ([]Occupant, error)
}

// Planting is the persisted occupancy record for one crop in one bed.
type Planting struct {
	PlantingID          string     `json:"planting_id"`
	CropID              string     `json:"crop_id"`
	Variety             string     `json:"variety,omitempty"`
	BedID               string     `json:"bed_id"`
	Position            *Position  `json:"position,omitempty"`
	SeedStartDate       *time.Time `json:"seed_start_date,omitempty"`
	TransplantDate      *time.Time `json:"transplant_date,omitempty"`
	DirectSeedDate      *time.Time `json:"direct_seed_date,omitempty"`
	ExpectedHarvestDate *time.Time `json:"expected_harvest_date,omitempty"`
	ActualHarvestDate   *time.Time `json:"actual_harvest_date,omitempty"`
	Override            bool       `json:"override,omitempty"`
	Provisional         bool       `json:"provisional,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

var _ Occupant = (*Planting)(nil)

func (p *Planting) ID() string          { return p.PlantingID }
func (p *Planting) Crop() string        { return p.CropID }
func (p *Planting) VarietyName() string { return p.Variety }
func (p *Planting) Bed() string         { return p.BedID }

func (p *Planting) GridPosition() (Position, bool) {
	if p.Position == nil {
		return Position{}, false
	}
	return *p.Position, true
}

func (p *Planting) ConflictOverride() bool { return p.Override }

// OccupancyStart returns the first date the planting is in the ground: the
// transplant date, else the direct-seed date. An indoor seed-start date
// never occupies bed space and is not considered.
func (p *Planting) OccupancyStart() *time.Time {
	if p.TransplantDate != nil {
		return p.TransplantDate
	}
	return p.DirectSeedDate
}

// OccupancyEnd returns the actual harvest date, else the expected one.
func (p *Planting) OccupancyEnd() *time.Time {
	if p.ActualHarvestDate != nil {
		return p.ActualHarvestDate
	}
	return p.ExpectedHarvestDate
}

func (p *Planting) OccupancyWindow() DateRange {
	return DateRange{Start: p.OccupancyStart(), End: p.OccupancyEnd()}
}

// Validate checks the fields required to persist a planting.
func (p *Planting) Validate() error {
	if p.CropID == "" || p.BedID == "" {
		return ErrInvalidData
	}
	if !p.OccupancyWindow().Valid() {
		return ErrInvalidWindow
	}
	return nil
}

// MoveTo places the planting at pos.
func (p *Planting) MoveTo(pos Position) {
	p.Position = &pos
	p.UpdatedAt = time.Now()
}

// ClearPosition makes the planting timeline-only.
func (p *Planting) ClearPosition() {
	p.Position = nil
	p.UpdatedAt = time.Now()
}

// Reschedule replaces the in-ground and expected harvest dates. Either may be
// nil to leave it unknown. A recorded harvest is cleared. Returns
// ErrInvalidWindow, leaving the planting unchanged, if the resulting window
// would be inverted.
func (p *Planting) Reschedule(inGround, expectedHarvest *time.Time) error {
	next := *p
	if p.TransplantDate != nil || p.DirectSeedDate == nil {
		next.TransplantDate = inGround
	} else {
		next.DirectSeedDate = inGround
	}
	next.ExpectedHarvestDate = expectedHarvest
	next.ActualHarvestDate = nil
	if !next.OccupancyWindow().Valid() {
		return ErrInvalidWindow
	}
	*p = next
	p.UpdatedAt = time.Now()
	return nil
}

// Harvest records the actual harvest date, closing the occupancy window.
// Returns ErrInvalidWindow if the date is not after occupancy start.
func (p *Planting) Harvest(on time.Time) error {
	d := DateOf(on)
	if start := p.OccupancyStart(); start != nil && !start.Before(d) {
		return ErrInvalidWindow
	}
	p.ActualHarvestDate = &d
	p.UpdatedAt = time.Now()
	return nil
}

// Candidate is an unsaved, speculative occupant used for what-if checks.
type Candidate struct {
	PlantingID string
	CropID     string
	Variety    string
	BedID      string
	Position   *Position
	Start      *time.Time
	End        *time.Time
	Override   bool
}

var _ Occupant = Candidate{}

func (c Candidate) ID() string          { return c.PlantingID }
func (c Candidate) Crop() string        { return c.CropID }
func (c Candidate) VarietyName() string { return c.Variety }
func (c Candidate) Bed() string         { return c.BedID }

func (c Candidate) GridPosition() (Position, bool) {
	if c.Position == nil {
		return Position{}, false
	}
	return *c.Position, true
}

func (c Candidate) OccupancyWindow() DateRange { return DateRange{Start: c.Start, End: c.End} }
func (c Candidate) ConflictOverride() bool     { return c.Override }

// CandidateFrom snapshots any occupant into a Candidate, e.g. to re-validate
// a persisted planting after an edit.
func CandidateFrom(o Occupant) Candidate {
	c := Candidate{
		PlantingID: o.ID(),
		CropID:     o.Crop(),
		Variety:    o.VarietyName(),
		BedID:      o.Bed(),
		Override:   o.ConflictOverride(),
	}
	if pos, ok := o.GridPosition(); ok {
		c.Position = &pos
	}
	w := o.OccupancyWindow()
	c.Start, c.End = w.Start, w.End
	return c
}
