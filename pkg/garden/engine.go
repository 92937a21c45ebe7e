// Package garden is the public entry point to the placement engine.
//
// An Engine wires the spacing registry, footprint calculator, conflict
// resolver, succession scheduler and quantity planner over one crop lookup.
// It holds only read-only reference data, so a single Engine may serve any
// number of goroutines.
//
// Example:
//
//	eng := garden.New(catalog)
//	report := eng.CheckConflict(candidate, occupants, bed)
//	if report.HasConflict {
//	    ...
//	}
package garden

import (
	"fmt"

	"github.com/mesh-intelligence/gardenplan/internal/conflict"
	"github.com/mesh-intelligence/gardenplan/internal/footprint"
	"github.com/mesh-intelligence/gardenplan/internal/quantity"
	"github.com/mesh-intelligence/gardenplan/internal/spacing"
	"github.com/mesh-intelligence/gardenplan/internal/succession"
	"github.com/mesh-intelligence/gardenplan/pkg/types"
)

// Version is the gardenplan release version.
const Version = "0.3.0"

// PlanOptions control a quantity planning run.
type PlanOptions = quantity.Options

// Store is what CheckPlacement needs from persistence.
type Store interface {
	types.BedLookup
	types.OccupantSource
}

// Engine answers placement, succession and quantity questions.
type Engine struct {
	crops    types.CropLookup
	calc     *footprint.Calculator
	resolver *conflict.Resolver
	planner  *quantity.Planner
}

// New creates an engine over crops using the built-in method tables.
func New(crops types.CropLookup) *Engine {
	calc := footprint.New(spacing.NewRegistry(crops, spacing.DefaultTables()))
	return &Engine{
		crops:    crops,
		calc:     calc,
		resolver: conflict.NewResolver(crops, calc),
		planner:  quantity.NewPlanner(crops, calc),
	}
}

// Crop returns the reference data for a crop id.
func (e *Engine) Crop(id string) (*types.Crop, bool) {
	if e.crops == nil {
		return nil, false
	}
	return e.crops.CropByID(id)
}

// CheckConflict evaluates a candidate against occupants of bed. It never
// fails; anything that prevents evaluation is reported as a skip reason.
func (e *Engine) CheckConflict(candidate types.Occupant, occupants []types.Occupant, bed *types.Bed) types.ConflictReport {
	return e.resolver.Evaluate(candidate, occupants, bed)
}

// Evaluate is CheckConflict under the name storage backends expect, so an
// Engine can be handed to sqlite.Backend.Place directly.
func (e *Engine) Evaluate(candidate types.Occupant, occupants []types.Occupant, bed *types.Bed) types.ConflictReport {
	return e.CheckConflict(candidate, occupants, bed)
}

// CheckPlacement looks up the candidate's bed and current occupants in store
// and evaluates it. Returns an error wrapping ErrBedNotFound when the bed
// does not exist.
func (e *Engine) CheckPlacement(store Store, candidate types.Occupant) (types.ConflictReport, error) {
	return conflict.NewChecker(e.resolver, store, store).Check(candidate)
}

// Spacing returns the resolved spacing for a crop under a method.
func (e *Engine) Spacing(cropID string, method types.PlanningMethod) spacing.Spacing {
	return e.calc.Spacing(cropID, method)
}

// FootprintCells returns the grid cells one plant of cropID occupies.
func (e *Engine) FootprintCells(cropID string, res float64, method types.PlanningMethod) float64 {
	return e.calc.Cells(cropID, res, method)
}

// ExclusionRadius returns the conflict radius, in cells, of one plant.
func (e *Engine) ExclusionRadius(cropID string, res float64, method types.PlanningMethod) int {
	return e.calc.Radius(cropID, res, method)
}

// PlanSuccession schedules waves of cropID for a target quantity. Returns
// ErrCropNotFound for crops the lookup does not know.
func (e *Engine) PlanSuccession(cropID string, target int, pref types.SuccessionPreference, frost types.FrostDates) (types.SuccessionPlan, error) {
	crop, ok := e.Crop(cropID)
	if !ok {
		return types.SuccessionPlan{}, fmt.Errorf("plan succession for %s: %w", cropID, types.ErrCropNotFound)
	}
	return succession.Plan(*crop, target, pref, frost), nil
}

// PlanQuantities plans every selection in input order.
func (e *Engine) PlanQuantities(selections []types.SeedSelection, opts PlanOptions) ([]types.PlanItem, error) {
	return e.planner.PlanAll(selections, opts)
}

// ExpandWaves turns a plan item's succession waves into provisional,
// timeline-only plantings: one per wave per allocated bed. They carry no
// position, so they never take part in conflict checks until the gardener
// places them. Allocations without a bed ID are skipped.
func (e *Engine) ExpandWaves(item types.PlanItem, allocations []types.BedAllocation) []*types.Planting {
	var out []*types.Planting
	for _, w := range item.Succession.Waves {
		for _, a := range allocations {
			if a.Bed.BedID == "" {
				continue
			}
			out = append(out, &types.Planting{
				CropID:              item.CropID,
				Variety:             item.Variety,
				BedID:               a.Bed.BedID,
				DirectSeedDate:      types.DatePtr(w.PlantDate),
				ExpectedHarvestDate: types.DatePtr(w.HarvestDate),
				Provisional:         true,
			})
		}
	}
	return out
}
