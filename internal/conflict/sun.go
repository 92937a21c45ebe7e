package conflict

import (
	"fmt"

	"github.com/mesh-intelligence/gardenplan/pkg/types"
)

var lightRank = map[types.Light]int{
	types.LightShade:   0,
	types.LightPartial: 1,
	types.LightFull:    2,
}

// SunCheck compares what a crop wants with what a bed gets. It returns nil
// when the bed is bright enough or either value is unrecognized. The result
// is advisory and never blocks a placement.
func SunCheck(requirement, exposure types.Light) *types.SunExposureWarning {
	want, ok := lightRank[requirement]
	if !ok {
		return nil
	}
	have, ok := lightRank[exposure]
	if !ok || have >= want {
		return nil
	}

	severity := types.SunCaution
	if requirement == types.LightFull {
		severity = types.SunWarning
	}
	return &types.SunExposureWarning{
		Requirement: requirement,
		Exposure:    exposure,
		Severity:    severity,
		Message:     fmt.Sprintf("crop needs %s sun but the bed gets %s", requirement, exposure),
	}
}
