package types

import "time"

// FrostDates are the average last spring and first fall frost for a site.
type FrostDates struct {
	LastFrost  time.Time `json:"last_frost" yaml:"last_frost"`
	FirstFrost time.Time `json:"first_frost" yaml:"first_frost"`
}

// SuccessionPreference is what the gardener asked for.
type SuccessionPreference struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	Count   int  `json:"count" yaml:"count"`
}

// Wave is one sowing within a succession plan.
type Wave struct {
	Index       int       `json:"index"`
	PlantDate   time.Time `json:"plant_date"`
	HarvestDate time.Time `json:"harvest_date"`
	Quantity    int       `json:"quantity"`
}

// SuccessionPlan is a planning-time projection; it writes no plantings.
type SuccessionPlan struct {
	Enabled      bool      `json:"enabled"`
	Feasible     bool      `json:"feasible"`
	Count        int       `json:"count"`
	IntervalDays int       `json:"interval_days"`
	FirstDate    time.Time `json:"first_date"`
	LastDate     time.Time `json:"last_date"`
	HarvestStart time.Time `json:"harvest_start"`
	HarvestEnd   time.Time `json:"harvest_end"`
	Clamped      bool      `json:"clamped,omitempty"`
	Waves        []Wave    `json:"waves,omitempty"`
}

// Strategy chooses how target plant counts are derived from space and seed.
type Strategy string

// Quantity strategies.
const (
	StrategyMaximize    Strategy = "maximize"
	StrategyUseAllSeeds Strategy = "use-all-seeds"
	StrategyBalanced    Strategy = "balanced"
)

// Valid reports whether s is a recognized strategy.
func (s Strategy) Valid() bool {
	switch s {
	case StrategyMaximize, StrategyUseAllSeeds, StrategyBalanced:
		return true
	}
	return false
}

// BedAllocation assigns part of a bed to a seed selection. Zero Cells means
// the whole bed.
type BedAllocation struct {
	Bed   Bed     `json:"bed" yaml:"bed"`
	Cells float64 `json:"cells,omitempty" yaml:"cells,omitempty"`
}

// SeedSelection is one crop the gardener intends to grow, with its stock.
type SeedSelection struct {
	CropID          string          `json:"crop_id" yaml:"crop"`
	Variety         string          `json:"variety,omitempty" yaml:"variety,omitempty"`
	SeedsAvailable  int             `json:"seeds_available" yaml:"seeds_available"`
	SeedsPerPacket  int             `json:"seeds_per_packet,omitempty" yaml:"seeds_per_packet,omitempty"`
	GerminationRate *float64        `json:"germination_rate,omitempty" yaml:"germination_rate,omitempty"`
	Allocations     []BedAllocation `json:"allocations" yaml:"allocations"`
}

// UnitPlants is the only unit type the planner produces today.
const UnitPlants = "plants"

// PlanItem is the planner's output for one seed selection.
type PlanItem struct {
	CropID          string  `json:"crop_id"`
	Variety         string  `json:"variety,omitempty"`
	Unit            string  `json:"unit"`
	SpaceCapacity   int     `json:"space_capacity"`
	SeedCapacity    int     `json:"seed_capacity"`
	TargetQuantity  int     `json:"target_quantity"`
	GerminationRate float64 `json:"germination_rate"`
	SurvivalRate    float64 `json:"survival_rate"`
	RequiredSeeds   int     `json:"required_seeds"`
	SeedsToBuy      int     `json:"seeds_to_buy"`
	// PacketsRequired covers RequiredSeeds with no stock on hand.
	PacketsRequired int `json:"packets_required"`
	// PacketsToBuy covers only SeedsToBuy, the shortfall after stock.
	PacketsToBuy int            `json:"packets_to_buy"`
	Succession   SuccessionPlan `json:"succession"`
}
