package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/gardenplan/pkg/types"
)

func TestBuiltin(t *testing.T) {
	c := Builtin()
	assert.Greater(t, c.Len(), 10)

	tomato, ok := c.CropByID("tomato")
	require.True(t, ok)
	assert.Equal(t, 24.0, tomato.SpacingInches)
	assert.Equal(t, types.FrostTender, tomato.FrostTolerance)
	assert.Equal(t, types.LightFull, tomato.LightRequirement)

	lettuce, ok := c.CropByID("lettuce")
	require.True(t, ok)
	assert.Equal(t, types.LightPartial, lettuce.LightRequirement)
	assert.Equal(t, 0.60, lettuce.DenseSurvivalRate)

	watermelon, ok := c.CropByID("watermelon")
	require.True(t, ok)
	assert.Equal(t, 17.0, watermelon.SpacingInches)
	assert.True(t, watermelon.NoSuccession)

	_, ok = c.CropByID("dragonfruit")
	assert.False(t, ok)
}

func TestAllSorted(t *testing.T) {
	c := Builtin()

	all := c.All()
	require.Len(t, all, c.Len())
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].CropID, all[i].CropID)
	}
}

func TestCropByIDReturnsCopy(t *testing.T) {
	c, err := New(types.Crop{CropID: "kale", SpacingInches: 15})
	require.NoError(t, err)

	k, _ := c.CropByID("kale")
	k.SpacingInches = 99

	again, _ := c.CropByID("kale")
	assert.Equal(t, 15.0, again.SpacingInches)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crops.yaml")
	data := []byte(`crops:
  - id: okra
    name: Okra
    spacing: 18
    days_to_maturity: 60
    frost_tolerance: very-tender
    light: full
    overrides:
      row:
        row_inches: 36
        plant_inches: 18
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	okra, ok := c.CropByID("okra")
	require.True(t, ok)
	o, ok := okra.Override(types.MethodRow)
	require.True(t, ok)
	assert.Equal(t, 36.0, o.RowInches)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("crops: [{name: nameless}]"))
	assert.ErrorIs(t, err, types.ErrInvalidID)

	_, err = Parse([]byte("crops: {not: a list"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
