package spacing

import (
	"math"

	"github.com/mesh-intelligence/gardenplan/pkg/types"
)

// Registry resolves (crop, method) pairs to spacing. It holds only read-only
// data and is safe for concurrent use.
type Registry struct {
	crops  types.CropLookup
	tables Tables
}

// NewRegistry creates a registry over a crop lookup and method tables. A nil
// lookup behaves as an empty catalog.
func NewRegistry(crops types.CropLookup, tables Tables) *Registry {
	return &Registry{crops: crops, tables: tables}
}

// Crop returns the crop for id, if the registry's lookup knows it.
func (r *Registry) Crop(cropID string) (*types.Crop, bool) {
	if r.crops == nil {
		return nil, false
	}
	return r.crops.CropByID(cropID)
}

// Resolve returns the spacing for a crop under a method. Unrecognized
// methods are treated as row planting.
func (r *Registry) Resolve(cropID string, method types.PlanningMethod) Spacing {
	crop, _ := r.Crop(cropID)

	var s Spacing
	switch method {
	case types.MethodSquareFoot:
		s = r.squareFoot(cropID, crop)
	case types.MethodIntensive:
		s = r.intensive(cropID, crop)
	case types.MethodMIGardener:
		s = r.miGardener(cropID, crop)
	case types.MethodPermaculture:
		s = r.permaculture(crop)
	default:
		s = r.row(cropID, crop)
	}

	s.PlantInches = floor(s.PlantInches)
	if s.RowInches > 0 {
		s.RowInches = floor(s.RowInches)
	}
	return s
}

// tableLookup tries the crop id, then the crop's display name.
func tableLookup[V any](cropID string, crop *types.Crop, table map[string]V) (V, bool) {
	if v, ok := lookup(cropID, table); ok {
		return v, true
	}
	if crop != nil && crop.Name != "" {
		return lookup(crop.Name, table)
	}
	var zero V
	return zero, false
}

func (r *Registry) squareFoot(cropID string, crop *types.Crop) Spacing {
	perCell := DefaultPerCell
	if o, ok := crop.Override(types.MethodSquareFoot); ok && o.PerCell > 0 {
		perCell = snapTier(o.PerCell)
	} else if v, ok := tableLookup(cropID, crop, r.tables.SquareFoot); ok && v > 0 {
		perCell = snapTier(v)
	}
	// Plant distance is informational; the cell is the unit of management.
	plant := SquareFootCellInches
	if perCell >= 1 {
		plant = SquareFootCellInches / math.Sqrt(perCell)
	}
	return Spacing{Method: types.MethodSquareFoot, PerCell: perCell, PlantInches: plant}
}

func (r *Registry) row(cropID string, crop *types.Crop) Spacing {
	s := Spacing{Method: types.MethodRow}
	if o, ok := crop.Override(types.MethodRow); ok && o.PlantInches > 0 {
		s.PlantInches, s.RowInches = o.PlantInches, o.RowInches
	} else if p, ok := tableLookup(cropID, crop, r.tables.Row); ok && p.Plant > 0 {
		s.PlantInches, s.RowInches = p.Plant, p.Row
	} else if crop != nil && crop.SpacingInches > 0 {
		s.PlantInches, s.RowInches = crop.SpacingInches, crop.RowSpacingInches
	} else {
		s.PlantInches, s.RowInches = DefaultPlantInches, DefaultRowInches
	}
	if s.RowInches <= 0 {
		s.RowInches = s.PlantInches
	}
	return s
}

func (r *Registry) intensive(cropID string, crop *types.Crop) Spacing {
	s := Spacing{Method: types.MethodIntensive, PlantInches: genericSpacing(crop)}
	if o, ok := crop.Override(types.MethodIntensive); ok && o.PlantInches > 0 {
		s.PlantInches = o.PlantInches
	} else if v, ok := tableLookup(cropID, crop, r.tables.Intensive); ok && v > 0 {
		s.PlantInches = v
	}
	return s
}

func (r *Registry) miGardener(cropID string, crop *types.Crop) Spacing {
	s := Spacing{Method: types.MethodMIGardener}
	if o, ok := crop.Override(types.MethodMIGardener); ok && o.PlantInches > 0 {
		s.PlantInches, s.RowInches = o.PlantInches, o.RowInches
		return s
	}
	if p, ok := tableLookup(cropID, crop, r.tables.MIGardener); ok && p.Plant > 0 {
		s.PlantInches, s.RowInches = p.Plant, p.Row
		return s
	}
	s.PlantInches = genericSpacing(crop) * DenseFallbackFactor
	if crop != nil && crop.RowSpacingInches > 0 {
		s.RowInches = crop.RowSpacingInches * DenseFallbackFactor
	}
	return s
}

func (r *Registry) permaculture(crop *types.Crop) Spacing {
	s := Spacing{Method: types.MethodPermaculture, PlantInches: genericSpacing(crop)}
	if o, ok := crop.Override(types.MethodPermaculture); ok && o.PlantInches > 0 {
		s.PlantInches = o.PlantInches
	}
	return s
}

// genericSpacing is the crop's native spacing, or 12" when unknown.
func genericSpacing(crop *types.Crop) float64 {
	if crop != nil && crop.SpacingInches > 0 {
		return crop.SpacingInches
	}
	return GenericSpacingInches
}
