package conflict

import "github.com/mesh-intelligence/gardenplan/pkg/types"

// Chebyshev returns the king-move distance between two grid cells.
func Chebyshev(a, b types.Position) int {
	return max(abs(a.Col-b.Col), abs(a.Row-b.Row))
}

// SpatialOverlap reports whether two plantings are too close. The larger of
// the two exclusion radii governs, which keeps the test symmetric.
func SpatialOverlap(a types.Position, radiusA int, b types.Position, radiusB int) bool {
	return Chebyshev(a, b) < max(radiusA, radiusB)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
