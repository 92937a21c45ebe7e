package conflict

import (
	"fmt"

	"github.com/mesh-intelligence/gardenplan/pkg/types"
)

// Checker resolves a candidate's bed and occupants before evaluating it.
type Checker struct {
	resolver  *Resolver
	beds      types.BedLookup
	occupants types.OccupantSource
}

// NewChecker creates a Checker.
func NewChecker(resolver *Resolver, beds types.BedLookup, occupants types.OccupantSource) *Checker {
	return &Checker{
		resolver:  resolver,
		beds:      beds,
		occupants: occupants,
	}
}

// Check evaluates candidate against everything currently in its bed.
// Returns an error wrapping ErrBedNotFound when the bed does not exist.
func (c *Checker) Check(candidate types.Occupant) (types.ConflictReport, error) {
	bed, err := c.beds.BedByID(candidate.Bed())
	if err != nil {
		return types.ConflictReport{}, fmt.Errorf("check %s: %w", candidate.Crop(), err)
	}
	occupants, err := c.occupants.OccupantsInBed(bed.BedID)
	if err != nil {
		return types.ConflictReport{}, fmt.Errorf("list occupants of bed %s: %w", bed.BedID, err)
	}
	return c.resolver.Evaluate(candidate, occupants, bed), nil
}
