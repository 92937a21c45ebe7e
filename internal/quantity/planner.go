// Package quantity turns seed stock and allocated bed space into target
// plant counts and a shopping list.
package quantity

import (
	"fmt"
	"math"

	"github.com/mesh-intelligence/gardenplan/internal/footprint"
	"github.com/mesh-intelligence/gardenplan/internal/succession"
	"github.com/mesh-intelligence/gardenplan/pkg/types"
)

// Planning defaults.
const (
	DefaultGerminationRate = 0.85
	DefaultSurvivalRate    = 0.90
	DefaultSeedsPerPacket  = 50

	// SafetyMargin inflates the seeds required to reach a target.
	SafetyMargin = 1.15

	// BalancedShare is the share of space capacity the balanced strategy
	// aims for.
	BalancedShare = 0.70

	// BalancedFloor is the minimum balanced target when seed is on hand.
	BalancedFloor = 12
)

// MethodSurvivalRates are used when a crop has no survival rate of its own.
var MethodSurvivalRates = map[types.PlanningMethod]float64{
	types.MethodSquareFoot:   0.90,
	types.MethodRow:          0.90,
	types.MethodIntensive:    0.85,
	types.MethodMIGardener:   0.70,
	types.MethodPermaculture: 0.85,
}

// Options control a planning run.
type Options struct {
	Strategy   types.Strategy
	Succession types.SuccessionPreference
	Frost      types.FrostDates
}

// Planner computes plan items. It is stateless and safe for concurrent use.
type Planner struct {
	crops types.CropLookup
	calc  *footprint.Calculator
}

// NewPlanner creates a planner.
func NewPlanner(crops types.CropLookup, calc *footprint.Calculator) *Planner {
	return &Planner{crops: crops, calc: calc}
}

// PlanAll plans every selection with the same options, in input order.
func (p *Planner) PlanAll(selections []types.SeedSelection, opts Options) ([]types.PlanItem, error) {
	items := make([]types.PlanItem, 0, len(selections))
	for _, sel := range selections {
		item, err := p.Plan(sel, opts)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Plan computes the plan item for one selection. An empty strategy means
// balanced; an unrecognized one returns ErrInvalidStrategy. Unknown crops
// are planned with default rates and get no succession schedule.
func (p *Planner) Plan(sel types.SeedSelection, opts Options) (types.PlanItem, error) {
	strategy := opts.Strategy
	if strategy == "" {
		strategy = types.StrategyBalanced
	}
	if !strategy.Valid() {
		return types.PlanItem{}, fmt.Errorf("plan %s: %w: %q", sel.CropID, types.ErrInvalidStrategy, strategy)
	}

	crop, known := p.crop(sel.CropID)
	g := germinationRate(sel, crop)
	s := survivalRate(crop, allocationMethod(sel.Allocations))

	space := p.SpaceCapacity(sel.CropID, sel.Allocations)
	seeds := SeedCapacity(sel.SeedsAvailable, g, s)
	target := Target(strategy, space, seeds, sel.SeedsAvailable)

	required := RequiredSeeds(target, g, s)
	perPacket := seedsPerPacket(sel, crop)
	toBuy := max(0, required-max(0, sel.SeedsAvailable))

	item := types.PlanItem{
		CropID:          sel.CropID,
		Variety:         sel.Variety,
		Unit:            types.UnitPlants,
		SpaceCapacity:   space,
		SeedCapacity:    seeds,
		TargetQuantity:  target,
		GerminationRate: g,
		SurvivalRate:    s,
		RequiredSeeds:   required,
		SeedsToBuy:      toBuy,
		PacketsRequired: (required + perPacket - 1) / perPacket,
		PacketsToBuy:    (toBuy + perPacket - 1) / perPacket,
	}
	if known {
		item.Succession = succession.Plan(*crop, target, opts.Succession, opts.Frost)
	}
	return item, nil
}

// SpaceCapacity sums how many individuals fit in each allocation. Square-foot
// beds divide allocated square feet by the footprint; intensive beds use the
// hexagonal area yield; the rest divide cells by the footprint.
func (p *Planner) SpaceCapacity(cropID string, allocations []types.BedAllocation) int {
	total := 0
	for _, a := range allocations {
		bed := a.Bed
		res := bed.Resolution()
		method := bed.PlanningMethod()

		cells := a.Cells
		if cells <= 0 {
			cells = float64(bed.Cells())
		}
		sqft := cells * res * res / 144

		switch method {
		case types.MethodIntensive:
			total += floor(sqft * p.calc.Spacing(cropID, method).PlantsPerSquareFoot())
		case types.MethodSquareFoot:
			total += floor(sqft / p.calc.Cells(cropID, res, method))
		default:
			total += floor(cells / p.calc.Cells(cropID, res, method))
		}
	}
	return total
}

// SeedCapacity is how many plants the stock is expected to yield.
func SeedCapacity(seeds int, germination, survival float64) int {
	if seeds <= 0 {
		return 0
	}
	return floor(float64(seeds) * germination * survival)
}

// Target picks the plant count for a strategy. Only maximize may exceed
// what the seed on hand can grow; nothing exceeds the space.
func Target(strategy types.Strategy, space, seeds, stock int) int {
	switch strategy {
	case types.StrategyMaximize:
		return space
	case types.StrategyUseAllSeeds:
		return max(0, min(space, seeds))
	}
	t := floor(float64(space) * BalancedShare)
	t = min(t, seeds)
	if stock > 0 {
		t = max(t, min(BalancedFloor, seeds))
	}
	return max(0, min(t, space))
}

// RequiredSeeds is how many seeds to sow for target plants after
// germination and survival losses, with a safety margin.
func RequiredSeeds(target int, germination, survival float64) int {
	if target <= 0 {
		return 0
	}
	raw := float64(target) / (germination * survival) * SafetyMargin
	return int(math.Ceil(raw - epsilon))
}

// epsilon absorbs float noise so exact products round the way they read.
const epsilon = 1e-9

func floor(v float64) int {
	return int(math.Floor(v + epsilon))
}

func (p *Planner) crop(id string) (*types.Crop, bool) {
	if p.crops == nil {
		return nil, false
	}
	return p.crops.CropByID(id)
}

func germinationRate(sel types.SeedSelection, crop *types.Crop) float64 {
	if sel.GerminationRate != nil && validRate(*sel.GerminationRate) {
		return *sel.GerminationRate
	}
	if crop != nil && validRate(crop.GerminationRate) {
		return crop.GerminationRate
	}
	return DefaultGerminationRate
}

func survivalRate(crop *types.Crop, method types.PlanningMethod) float64 {
	if crop != nil {
		if method == types.MethodMIGardener && validRate(crop.DenseSurvivalRate) {
			return crop.DenseSurvivalRate
		}
		if validRate(crop.SurvivalRate) {
			return crop.SurvivalRate
		}
	}
	if r, ok := MethodSurvivalRates[method]; ok {
		return r
	}
	return DefaultSurvivalRate
}

// allocationMethod returns the one method shared by every allocation, or ""
// when there are none or they disagree.
func allocationMethod(allocations []types.BedAllocation) types.PlanningMethod {
	var method types.PlanningMethod
	for i, a := range allocations {
		m := a.Bed.PlanningMethod()
		if i > 0 && m != method {
			return ""
		}
		method = m
	}
	return method
}

func seedsPerPacket(sel types.SeedSelection, crop *types.Crop) int {
	if sel.SeedsPerPacket > 0 {
		return sel.SeedsPerPacket
	}
	if crop != nil && crop.SeedsPerPacket > 0 {
		return crop.SeedsPerPacket
	}
	return DefaultSeedsPerPacket
}

func validRate(r float64) bool {
	return r > 0 && r <= 1
}
