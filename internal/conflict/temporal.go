package conflict

import "github.com/mesh-intelligence/gardenplan/pkg/types"

// TemporalOverlap reports whether two occupancy windows share any day.
// Windows are half-open, so a harvest on the day the next crop goes in is
// not an overlap. A window missing either endpoint never overlaps.
func TemporalOverlap(a, b types.DateRange) bool {
	if !a.Complete() || !b.Complete() {
		return false
	}
	return a.Start.Before(*b.End) && b.Start.Before(*a.End)
}
