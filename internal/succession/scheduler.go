// Package succession projects staggered plantings of one crop across a
// frost-bounded season.
//
// The scheduler writes nothing. It returns a plan of waves that callers may
// expand into candidate plantings and check for conflicts.
package succession

import (
	"time"

	"github.com/mesh-intelligence/gardenplan/pkg/types"
)

// Scheduling constants, in days.
const (
	// FrostOffsetDays shifts the first safe planting date away from the last
	// spring frost for hardy and tender crops.
	FrostOffsetDays = 14

	// MinIntervalDays is the shortest gap between two waves.
	MinIntervalDays = 14

	// HarvestBufferDays must separate a wave's harvest from the first fall
	// frost.
	HarvestBufferDays = 14

	// MaxSuccessionDTM is the longest days-to-maturity that still allows
	// more than one wave.
	MaxSuccessionDTM = 90
)

// Plan schedules crop for a target quantity.
//
// The effective wave count is 1 when the crop matures in more than 90 days,
// forbids succession, or the gardener did not ask for more than one wave.
// Waves that could not be harvested before the fall cutoff are dropped.
// When even the first safe date falls after the cutoff the plan is marked
// infeasible with no waves.
func Plan(crop types.Crop, target int, pref types.SuccessionPreference, frost types.FrostDates) types.SuccessionPlan {
	dtm := max(crop.DaysToMaturity, 0)
	first := FirstSafeDate(crop.FrostTolerance, frost.LastFrost)
	cutoff := Cutoff(dtm, frost.FirstFrost)

	count := 1
	if allowsSuccession(crop, pref) {
		count = pref.Count
	}
	interval := max(MinIntervalDays, dtm/2)

	plan := types.SuccessionPlan{FirstDate: first}
	if first.After(cutoff) {
		plan.IntervalDays = interval
		return plan
	}

	// Clamp before computing dates; (count-1)*interval overflows for huge counts.
	if limit := types.DaysBetween(first, cutoff)/interval + 1; count > limit {
		count = limit
		plan.Clamped = true
	}
	last := addDays(first, (count-1)*interval)

	plan.Feasible = true
	plan.Count = count
	plan.Enabled = count > 1
	if plan.Enabled {
		plan.IntervalDays = interval
	}
	plan.LastDate = last
	plan.HarvestStart = addDays(first, dtm)
	plan.HarvestEnd = addDays(last, dtm)
	plan.Waves = waves(first, interval, count, dtm, perWave(target, count))
	return plan
}

// FirstSafeDate returns the earliest date a crop of the given tolerance may
// go in the ground. Unrecognized classes are treated as moderate.
func FirstSafeDate(tolerance types.FrostTolerance, lastFrost time.Time) time.Time {
	lastFrost = types.DateOf(lastFrost)
	switch tolerance {
	case types.FrostVeryHardy, types.FrostHardy:
		return addDays(lastFrost, -FrostOffsetDays)
	case types.FrostTender, types.FrostVeryTender:
		return addDays(lastFrost, FrostOffsetDays)
	default:
		return lastFrost
	}
}

// Cutoff returns the last date a crop maturing in dtm days may be planted
// and still be harvested HarvestBufferDays before the first fall frost.
func Cutoff(dtm int, firstFrost time.Time) time.Time {
	return addDays(types.DateOf(firstFrost), -(dtm + HarvestBufferDays))
}

func allowsSuccession(crop types.Crop, pref types.SuccessionPreference) bool {
	return pref.Enabled && pref.Count > 1 && !crop.NoSuccession && crop.DaysToMaturity <= MaxSuccessionDTM
}

func perWave(target, count int) int {
	if target <= 0 || count <= 0 {
		return 0
	}
	return (target + count - 1) / count
}

func waves(first time.Time, interval, count, dtm, quantity int) []types.Wave {
	out := make([]types.Wave, 0, count)
	for i := range count {
		plant := addDays(first, i*interval)
		out = append(out, types.Wave{
			Index:       i + 1,
			PlantDate:   plant,
			HarvestDate: addDays(plant, dtm),
			Quantity:    quantity,
		})
	}
	return out
}

func addDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}
