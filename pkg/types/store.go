package types

// Evaluator decides whether a candidate conflicts with a bed's occupants.
// The planning engine satisfies it.
type Evaluator interface {
	Evaluate(candidate Occupant, occupants []Occupant, bed *Bed) ConflictReport
}

// Store defines backend-agnostic access to beds and plantings. Callers
// attach to a backend, read and write records, and detach when done.
type Store interface {
	// Attach connects the store to the backend described by config.
	// Creates the DataDir if it does not exist. Returns ErrAlreadyAttached
	// if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, operations return ErrBackendDetached.
	Detach() error

	BedLookup
	OccupantSource

	// SaveBed creates or updates a bed and returns its ID.
	SaveBed(bed *Bed) (string, error)
	Beds() ([]*Bed, error)
	// DeleteBed removes a bed together with its plantings.
	DeleteBed(id string) error

	// SavePlanting writes a planting without a conflict check.
	SavePlanting(p *Planting) (string, error)
	Planting(id string) (*Planting, error)
	// Plantings lists the plantings in bedID, or in every bed when bedID
	// is empty.
	Plantings(bedID string) ([]*Planting, error)
	DeletePlanting(id string) error

	// Place saves p only if eval finds no conflict with the bed's current
	// occupants, or p is overridden. A refused placement returns the report
	// and an error wrapping ErrConflict.
	Place(p *Planting, eval Evaluator) (ConflictReport, error)
}
