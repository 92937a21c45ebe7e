// Package conflict decides whether a proposed planting can share a bed with
// what is already there.
//
// Two plantings conflict only when they are too close on the grid and their
// occupancy windows overlap. Sun exposure is checked alongside but is only
// ever an annotation.
package conflict

import (
	"slices"
	"strings"

	"github.com/mesh-intelligence/gardenplan/internal/footprint"
	"github.com/mesh-intelligence/gardenplan/pkg/types"
)

// Resolver evaluates candidates against a known set of occupants. It holds
// no mutable state.
type Resolver struct {
	crops types.CropLookup
	calc  *footprint.Calculator
}

// NewResolver creates a resolver.
func NewResolver(crops types.CropLookup, calc *footprint.Calculator) *Resolver {
	return &Resolver{crops: crops, calc: calc}
}

// Evaluate checks candidate against occupants of bed.
//
// A candidate with no position, an override, an incomplete window or an
// unknown crop is not evaluated; the report says why. Occupants in other
// beds, without a position, or sharing the candidate's ID are ignored.
// Conflicts are sorted by planting ID, so the result does not depend on
// the order of occupants.
func (r *Resolver) Evaluate(candidate types.Occupant, occupants []types.Occupant, bed *types.Bed) types.ConflictReport {
	report := types.ConflictReport{Conflicts: []types.Conflict{}}

	crop, known := r.crop(candidate.Crop())
	if known {
		report.SunExposureWarning = SunCheck(crop.LightRequirement, bed.SunExposure)
	}

	pos, positioned := candidate.GridPosition()
	window := candidate.OccupancyWindow()
	switch {
	case !positioned:
		report.SkipReason = types.SkipNoPosition
		return report
	case candidate.ConflictOverride():
		report.SkipReason = types.SkipOverride
		return report
	case !window.Complete():
		report.SkipReason = types.SkipIncompleteDate
		return report
	case !known:
		report.SkipReason = types.SkipUnknownCrop
		return report
	}
	report.Evaluated = true

	res, method := bed.Resolution(), bed.PlanningMethod()
	radius := r.calc.Radius(candidate.Crop(), res, method)

	for _, o := range occupants {
		if o.Bed() != bed.BedID {
			continue
		}
		if id := candidate.ID(); id != "" && o.ID() == id {
			continue
		}
		opos, ok := o.GridPosition()
		if !ok {
			continue
		}
		oradius := r.calc.Radius(o.Crop(), res, method)
		if !SpatialOverlap(pos, radius, opos, oradius) {
			continue
		}
		owindow := o.OccupancyWindow()
		if !TemporalOverlap(window, owindow) {
			continue
		}
		report.Conflicts = append(report.Conflicts, types.Conflict{
			PlantingID: o.ID(),
			CropID:     o.Crop(),
			Variety:    o.VarietyName(),
			Dates:      owindow.String(),
			Window:     owindow,
			Position:   opos,
			Kind:       types.ConflictSpaceAndTime,
			Distance:   Chebyshev(pos, opos),
			Radius:     max(radius, oradius),
		})
	}

	slices.SortFunc(report.Conflicts, func(a, b types.Conflict) int {
		return strings.Compare(a.PlantingID, b.PlantingID)
	})
	report.HasConflict = len(report.Conflicts) > 0
	return report
}

func (r *Resolver) crop(id string) (*types.Crop, bool) {
	if r.crops == nil {
		return nil, false
	}
	return r.crops.CropByID(id)
}
