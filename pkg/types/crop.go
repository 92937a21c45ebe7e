package types

import "strings"

// PlanningMethod is the spacing methodology active on a bed.
type PlanningMethod string

// Planning methods. A bed has exactly one active method at a time.
const (
	MethodSquareFoot   PlanningMethod = "square-foot"
	MethodRow          PlanningMethod = "row"
	MethodIntensive    PlanningMethod = "intensive"
	MethodMIGardener   PlanningMethod = "migardener"
	MethodPermaculture PlanningMethod = "permaculture"
)

// PlanningMethods lists every recognized method in display order.
var PlanningMethods = []PlanningMethod{
	MethodSquareFoot,
	MethodRow,
	MethodIntensive,
	MethodMIGardener,
	MethodPermaculture,
}

// Valid reports whether m is a recognized planning method.
func (m PlanningMethod) Valid() bool {
	for _, known := range PlanningMethods {
		if m == known {
			return true
		}
	}
	return false
}

// ParsePlanningMethod normalizes s (case, underscores, "sfg" shorthand) into
// a PlanningMethod. Returns ErrInvalidMethod when s names no method.
func ParsePlanningMethod(s string) (PlanningMethod, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	switch norm {
	case "sfg", "square-foot", "squarefoot":
		return MethodSquareFoot, nil
	case "hex":
		return MethodIntensive, nil
	case "mi-gardener", "migardener", "ultra-dense":
		return MethodMIGardener, nil
	}
	m := PlanningMethod(norm)
	if !m.Valid() {
		return "", ErrInvalidMethod
	}
	return m, nil
}

// FrostTolerance classifies how early a crop may go in the ground relative
// to the last spring frost.
type FrostTolerance string

// Frost tolerance classes, hardiest first.
const (
	FrostVeryHardy  FrostTolerance = "very-hardy"
	FrostHardy      FrostTolerance = "hardy"
	FrostModerate   FrostTolerance = "moderate"
	FrostTender     FrostTolerance = "tender"
	FrostVeryTender FrostTolerance = "very-tender"
)

// Light levels, used both for crop requirements and bed exposure.
type Light string

// Light levels.
const (
	LightFull    Light = "full"
	LightPartial Light = "partial"
	LightShade   Light = "shade"
)

// SpacingOverride replaces registry spacing for one method on one crop.
// Zero fields are ignored, so an override may set only what it knows.
type SpacingOverride struct {
	PerCell     float64 `json:"per_cell,omitempty" yaml:"per_cell,omitempty"`
	RowInches   float64 `json:"row_inches,omitempty" yaml:"row_inches,omitempty"`
	PlantInches float64 `json:"plant_inches,omitempty" yaml:"plant_inches,omitempty"`
}

// Crop is immutable reference data describing one crop.
type Crop struct {
	CropID            string                             `json:"crop_id" yaml:"id"`
	Name              string                             `json:"name" yaml:"name"`
	SpacingInches     float64                            `json:"spacing_inches" yaml:"spacing"`
	RowSpacingInches  float64                            `json:"row_spacing_inches,omitempty" yaml:"row_spacing,omitempty"`
	DaysToMaturity    int                                `json:"days_to_maturity" yaml:"days_to_maturity"`
	FrostTolerance    FrostTolerance                     `json:"frost_tolerance" yaml:"frost_tolerance"`
	LightRequirement  Light                              `json:"light_requirement" yaml:"light"`
	NoSuccession      bool                               `json:"no_succession,omitempty" yaml:"no_succession,omitempty"`
	GerminationRate   float64                            `json:"germination_rate,omitempty" yaml:"germination_rate,omitempty"`
	SurvivalRate      float64                            `json:"survival_rate,omitempty" yaml:"survival_rate,omitempty"`
	DenseSurvivalRate float64                            `json:"dense_survival_rate,omitempty" yaml:"dense_survival_rate,omitempty"`
	SeedsPerPacket    int                                `json:"seeds_per_packet,omitempty" yaml:"seeds_per_packet,omitempty"`
	Overrides         map[PlanningMethod]SpacingOverride `json:"overrides,omitempty" yaml:"overrides,omitempty"`
}

// Override returns the crop's spacing override for method, if any.
func (c *Crop) Override(method PlanningMethod) (SpacingOverride, bool) {
	if c == nil || c.Overrides == nil {
		return SpacingOverride{}, false
	}
	o, ok := c.Overrides[method]
	return o, ok
}

// CropLookup resolves crop identifiers to reference data. Implementations
// are read-only after construction.
type CropLookup interface {
	// CropByID returns the crop for id, or false when it is unknown.
	CropByID(id string) (*Crop, bool)
}
