package footprint

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/gardenplan/internal/catalog"
	"github.com/mesh-intelligence/gardenplan/internal/spacing"
	"github.com/mesh-intelligence/gardenplan/pkg/types"
)

func newCalculator(t *testing.T) *Calculator {
	t.Helper()
	return New(spacing.NewRegistry(catalog.Builtin(), spacing.DefaultTables()))
}

func TestCellsSquareFoot(t *testing.T) {
	c := newCalculator(t)
	tests := []struct {
		cropID string
		want   float64
	}{
		{"lettuce", 0.25},
		{"carrot", 0.0625},
		{"bean", 1.0 / 9},
		{"peas", 0.125},
		{"tomato", 1.0},
		{"watermelon", 2.0},
		{"unknown-crop", 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.cropID, func(t *testing.T) {
			assert.InDelta(t, tt.want, c.Cells(tt.cropID, 12, types.MethodSquareFoot), 1e-12)
		})
	}
}

func TestCellsSquareFootIgnoresResolution(t *testing.T) {
	c := newCalculator(t)
	for _, res := range []float64{3, 6, 12, 24} {
		assert.Equal(t, 0.25, c.Cells("lettuce", res, types.MethodSquareFoot))
	}
}

func TestCellsRowAndIsotropic(t *testing.T) {
	c := newCalculator(t)
	tests := []struct {
		name   string
		cropID string
		res    float64
		method types.PlanningMethod
		want   float64
	}{
		{"watermelon row at 12 inches", "watermelon", 12, types.MethodRow, 4},
		{"tomato row is anisotropic", "tomato", 12, types.MethodRow, 3 * 2},
		{"carrot row at 6 inches", "carrot", 6, types.MethodRow, 2 * 1},
		{"tomato intensive", "tomato", 12, types.MethodIntensive, 4},
		{"tomato permaculture", "tomato", 12, types.MethodPermaculture, 4},
		{"lettuce broadcast", "lettuce", 2, types.MethodMIGardener, 4},
		{"bean dense rows", "bean", 3, types.MethodMIGardener, 2 * 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Cells(tt.cropID, tt.res, tt.method))
		})
	}
}

func TestCellsNonPositiveResolution(t *testing.T) {
	c := newCalculator(t)
	want := c.Cells("watermelon", 12, types.MethodRow)
	for _, res := range []float64{0, -1, -12} {
		assert.Equal(t, want, c.Cells("watermelon", res, types.MethodRow), "res=%v", res)
	}
}

func TestRadius(t *testing.T) {
	c := newCalculator(t)
	tests := []struct {
		name   string
		cropID string
		res    float64
		method types.PlanningMethod
		want   int
	}{
		{"square-foot is always one", "watermelon", 12, types.MethodSquareFoot, 1},
		{"square-foot ignores fine grids", "tomato", 3, types.MethodSquareFoot, 1},
		{"governing axis", "tomato", 12, types.MethodRow, 3},
		{"isotropic", "watermelon", 12, types.MethodRow, 2},
		{"never below one", "radish", 12, types.MethodMIGardener, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Radius(tt.cropID, tt.res, tt.method))
		})
	}
}

func TestDeterministic(t *testing.T) {
	c := newCalculator(t)
	for _, m := range types.PlanningMethods {
		first := c.Cells("tomato-cherry", 6, m)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, c.Cells("tomato-cherry", 6, m))
		}
	}
}
