// Package footprint converts resolved spacing into grid-cell demand.
//
// A footprint is how many cells of a bed one individual plant consumes. The
// exclusion radius is the Chebyshev distance, in cells, inside which no other
// planting may share the bed at the same time.
package footprint

import (
	"math"

	"github.com/mesh-intelligence/gardenplan/internal/spacing"
	"github.com/mesh-intelligence/gardenplan/pkg/types"
)

// Calculator answers footprint questions over a spacing registry.
type Calculator struct {
	registry *spacing.Registry
}

// New returns a calculator backed by registry.
func New(registry *spacing.Registry) *Calculator {
	return &Calculator{registry: registry}
}

// Spacing exposes the resolved spacing the calculator works from.
func (c *Calculator) Spacing(cropID string, method types.PlanningMethod) spacing.Spacing {
	return c.registry.Resolve(cropID, method)
}

// Cells returns the number of grid cells one individual occupies.
//
// Square-foot planting ignores the resolution and returns 1/PerCell of a
// fixed 12" cell, so 4 per cell is 0.25 and 0.5 per cell is 2.0. Other
// methods round each axis up to whole cells: ceil(plant/res)² when
// isotropic, ceil(row/res)·ceil(plant/res) otherwise.
func (c *Calculator) Cells(cropID string, res float64, method types.PlanningMethod) float64 {
	s := c.registry.Resolve(cropID, method)
	return cells(s, normalizeResolution(res))
}

// Radius returns the exclusion radius in cells, at least 1. Square-foot
// crops are managed per cell, so their radius is always exactly 1.
func (c *Calculator) Radius(cropID string, res float64, method types.PlanningMethod) int {
	s := c.registry.Resolve(cropID, method)
	return radius(s, normalizeResolution(res))
}

func cells(s spacing.Spacing, res float64) float64 {
	if s.Method == types.MethodSquareFoot {
		return 1 / s.PerCell
	}
	plant := axisCells(s.PlantInches, res)
	if s.Isotropic() {
		return plant * plant
	}
	return axisCells(s.RowInches, res) * plant
}

func radius(s spacing.Spacing, res float64) int {
	if s.Method == types.MethodSquareFoot {
		return 1
	}
	r := int(axisCells(s.Governing(), res))
	if r < 1 {
		return 1
	}
	return r
}

func axisCells(inches, res float64) float64 {
	return math.Ceil(inches / res)
}

func normalizeResolution(res float64) float64 {
	if res <= 0 || math.IsNaN(res) || math.IsInf(res, 0) {
		return types.DefaultGridResolutionInches
	}
	return res
}
