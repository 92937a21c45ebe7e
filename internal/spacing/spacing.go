// Package spacing resolves how far apart a crop must be planted under each
// of the five planning methods.
//
// A Registry combines per-crop reference data with immutable per-method
// tables. Resolution never fails: missing data degrades to documented
// defaults, and every resolved spacing is at least MinSpacingInches.
package spacing

import (
	"math"

	"github.com/mesh-intelligence/gardenplan/pkg/types"
)

// Spacing and density constants.
const (
	// MinSpacingInches is the floor applied to every resolved distance.
	MinSpacingInches = 1.0

	// GenericSpacingInches is assumed for crops with no spacing data.
	GenericSpacingInches = 12.0

	// SquareFootCellInches is the fixed square-foot cell edge.
	SquareFootCellInches = 12.0

	// HexPackingFactor scales square-grid yield for hexagonal layouts.
	HexPackingFactor = 0.866

	// DenseFallbackFactor shrinks generic spacing for unmapped crops under
	// the ultra-dense method.
	DenseFallbackFactor = 0.25

	// DefaultPerCell is the square-foot density for unknown crops.
	DefaultPerCell = 1.0
)

// Default row-method spacing when neither tables nor the crop say otherwise.
const (
	DefaultRowInches   = 24.0
	DefaultPlantInches = 12.0
)

// DensityTiers are the only square-foot densities, in individuals per cell.
var DensityTiers = []float64{0.5, 1, 4, 8, 9, 16}

// Spacing is a resolved spacing requirement for one crop under one method.
type Spacing struct {
	Method types.PlanningMethod `json:"method"`

	// PerCell is the square-foot density. Zero for other methods.
	PerCell float64 `json:"per_cell,omitempty"`

	// RowInches is the distance between rows. Zero means no row discipline:
	// isotropic for most methods, broadcast for the ultra-dense method.
	RowInches float64 `json:"row_inches"`

	// PlantInches is the within-row or on-center distance.
	PlantInches float64 `json:"plant_inches"`
}

// Broadcast reports whether the spacing is an ultra-dense broadcast sowing.
func (s Spacing) Broadcast() bool {
	return s.Method == types.MethodMIGardener && s.RowInches == 0
}

// Isotropic reports whether the same distance applies on both grid axes.
func (s Spacing) Isotropic() bool {
	return s.RowInches == 0 || s.RowInches == s.PlantInches
}

// Governing returns the larger axis distance.
func (s Spacing) Governing() float64 {
	return math.Max(s.RowInches, s.PlantInches)
}

// PlantsPerSquareFoot returns the area yield of the spacing. Intensive
// spacing applies the hexagonal packing factor.
func (s Spacing) PlantsPerSquareFoot() float64 {
	switch {
	case s.Method == types.MethodSquareFoot:
		return s.PerCell
	case s.Method == types.MethodIntensive:
		return 144 / (s.PlantInches * s.PlantInches) * HexPackingFactor
	case s.Isotropic():
		return 144 / (s.PlantInches * s.PlantInches)
	default:
		return 144 / (s.RowInches * s.PlantInches)
	}
}

// snapTier maps an arbitrary density onto the closed tier set: the largest
// tier not above v, or the smallest tier when v is below all of them.
func snapTier(v float64) float64 {
	best := DensityTiers[0]
	for _, tier := range DensityTiers {
		if tier <= v {
			best = tier
		}
	}
	return best
}

func floor(v float64) float64 {
	return math.Max(v, MinSpacingInches)
}
