package succession

import (
	"bytes"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mesh-intelligence/gardenplan/pkg/types"
)

var season2024 = types.FrostDates{
	LastFrost:  types.Date(2024, time.April, 15),
	FirstFrost: types.Date(2024, time.October, 15),
}

func lettuce() types.Crop {
	return types.Crop{CropID: "lettuce", DaysToMaturity: 50, FrostTolerance: types.FrostHardy}
}

func TestFirstSafeDate(t *testing.T) {
	last := types.Date(2024, time.April, 15)
	tests := []struct {
		tolerance types.FrostTolerance
		want      time.Time
	}{
		{types.FrostVeryHardy, types.Date(2024, time.April, 1)},
		{types.FrostHardy, types.Date(2024, time.April, 1)},
		{types.FrostModerate, last},
		{types.FrostTender, types.Date(2024, time.April, 29)},
		{types.FrostVeryTender, types.Date(2024, time.April, 29)},
		{"", last},
	}
	for _, tt := range tests {
		t.Run(string(tt.tolerance), func(t *testing.T) {
			assert.Equal(t, tt.want, FirstSafeDate(tt.tolerance, last))
		})
	}
}

func TestPlanLettuceFourWaves(t *testing.T) {
	plan := Plan(lettuce(), 40, types.SuccessionPreference{Enabled: true, Count: 4}, season2024)

	require.True(t, plan.Feasible)
	assert.True(t, plan.Enabled)
	assert.False(t, plan.Clamped)
	assert.Equal(t, 4, plan.Count)
	assert.Equal(t, 25, plan.IntervalDays)
	assert.Equal(t, types.Date(2024, time.April, 1), plan.FirstDate)
	assert.Equal(t, types.Date(2024, time.June, 15), plan.LastDate)
	assert.Equal(t, types.Date(2024, time.May, 21), plan.HarvestStart)
	assert.Equal(t, types.Date(2024, time.August, 4), plan.HarvestEnd)

	require.Len(t, plan.Waves, 4)
	for i, w := range plan.Waves {
		assert.Equal(t, i+1, w.Index)
		assert.Equal(t, 10, w.Quantity)
		assert.Equal(t, 50, types.DaysBetween(w.PlantDate, w.HarvestDate))
	}
	assert.Equal(t, types.Date(2024, time.April, 26), plan.Waves[1].PlantDate)
}

func TestPlanClampsToCutoff(t *testing.T) {
	radish := types.Crop{CropID: "radish", DaysToMaturity: 28, FrostTolerance: types.FrostVeryHardy}

	plan := Plan(radish, 100, types.SuccessionPreference{Enabled: true, Count: 20}, season2024)

	require.True(t, plan.Feasible)
	assert.True(t, plan.Clamped)
	assert.Equal(t, 12, plan.Count)
	assert.Equal(t, 14, plan.IntervalDays)
	assert.Equal(t, types.Date(2024, time.September, 2), plan.LastDate)
	assert.Len(t, plan.Waves, 12)
	assert.Equal(t, 9, plan.Waves[0].Quantity)
}

func TestPlanClampsHugeCounts(t *testing.T) {
	radish := types.Crop{CropID: "radish", DaysToMaturity: 28, FrostTolerance: types.FrostVeryHardy}

	for _, count := range []int{1 << 40, math.MaxInt} {
		t.Run(fmt.Sprint(count), func(t *testing.T) {
			plan := Plan(radish, 10, types.SuccessionPreference{Enabled: true, Count: count}, season2024)
			require.True(t, plan.Feasible)
			assert.True(t, plan.Clamped)
			assert.Equal(t, 12, plan.Count)
			assert.Equal(t, types.Date(2024, time.September, 2), plan.LastDate)
			assert.Len(t, plan.Waves, 12)
		})
	}
}

func TestPlanSingleWave(t *testing.T) {
	tests := []struct {
		name string
		crop types.Crop
		pref types.SuccessionPreference
	}{
		{"long season crop", types.Crop{DaysToMaturity: 95, FrostTolerance: types.FrostModerate}, types.SuccessionPreference{Enabled: true, Count: 3}},
		{"crop forbids succession", types.Crop{DaysToMaturity: 60, NoSuccession: true}, types.SuccessionPreference{Enabled: true, Count: 3}},
		{"preference disabled", lettuce(), types.SuccessionPreference{Enabled: false, Count: 3}},
		{"count of one", lettuce(), types.SuccessionPreference{Enabled: true, Count: 1}},
		{"count of zero", lettuce(), types.SuccessionPreference{Enabled: true, Count: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := Plan(tt.crop, 7, tt.pref, season2024)
			require.True(t, plan.Feasible)
			assert.False(t, plan.Enabled)
			assert.Equal(t, 1, plan.Count)
			assert.Zero(t, plan.IntervalDays)
			assert.Equal(t, plan.FirstDate, plan.LastDate)
			require.Len(t, plan.Waves, 1)
			assert.Equal(t, 7, plan.Waves[0].Quantity)
		})
	}
}

func TestPlanInfeasibleSeason(t *testing.T) {
	tomato := types.Crop{CropID: "tomato", DaysToMaturity: 75, FrostTolerance: types.FrostTender}
	short := types.FrostDates{
		LastFrost:  types.Date(2024, time.June, 1),
		FirstFrost: types.Date(2024, time.August, 15),
	}

	plan := Plan(tomato, 6, types.SuccessionPreference{Enabled: true, Count: 2}, short)

	assert.False(t, plan.Feasible)
	assert.False(t, plan.Enabled)
	assert.Zero(t, plan.Count)
	assert.Empty(t, plan.Waves)
	assert.Equal(t, types.Date(2024, time.June, 15), plan.FirstDate)
}

func TestPlanNeverPastCutoff(t *testing.T) {
	tolerances := []types.FrostTolerance{types.FrostVeryHardy, types.FrostModerate, types.FrostTender}
	for dtm := 10; dtm <= 90; dtm += 7 {
		for count := 1; count <= 15; count += 2 {
			for _, tol := range tolerances {
				crop := types.Crop{DaysToMaturity: dtm, FrostTolerance: tol}
				name := fmt.Sprintf("dtm=%d count=%d %s", dtm, count, tol)
				plan := Plan(crop, 30, types.SuccessionPreference{Enabled: true, Count: count}, season2024)
				if !plan.Feasible {
					continue
				}
				cutoff := Cutoff(dtm, season2024.FirstFrost)
				assert.False(t, plan.LastDate.After(cutoff), name)
				assert.LessOrEqual(t, plan.Count, count, name)
				for _, w := range plan.Waves {
					assert.False(t, w.PlantDate.After(cutoff), name)
					assert.GreaterOrEqual(t, w.Quantity*plan.Count, 30, name)
				}
			}
		}
	}
}

func TestWriteCalendar(t *testing.T) {
	feasible := Plan(lettuce(), 40, types.SuccessionPreference{Enabled: true, Count: 2}, season2024)
	infeasible := types.SuccessionPlan{}

	var buf bytes.Buffer
	err := WriteCalendar(&buf, []CalendarEntry{
		{CropID: "lettuce", Variety: "Buttercrunch", Plan: feasible},
		{CropID: "tomato", Plan: infeasible},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(CalendarSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, calendarHeader, rows[0])
	assert.Equal(t, []string{"lettuce", "Buttercrunch", "1", "2024-04-01", "2024-05-21", "20"}, rows[1])
	assert.Equal(t, "2024-04-26", rows[2][3])
	assert.Equal(t, []string{"tomato", "", "infeasible"}, rows[3])
}
