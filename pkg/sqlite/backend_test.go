package sqlite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/gardenplan/internal/catalog"
	"github.com/mesh-intelligence/gardenplan/pkg/garden"
	"github.com/mesh-intelligence/gardenplan/pkg/sqlite"
	"github.com/mesh-intelligence/gardenplan/pkg/types"
)

func TestNewBackendPlacesThroughStore(t *testing.T) {
	var store types.Store = sqlite.NewBackend(nil)
	require.NoError(t, store.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	t.Cleanup(func() { _ = store.Detach() })

	bed := &types.Bed{Name: "North", WidthInches: 48, LengthInches: 96, Method: types.MethodSquareFoot}
	bedID, err := store.SaveBed(bed)
	require.NoError(t, err)

	eng := garden.New(catalog.Builtin())
	tomato := func(start, end string) *types.Planting {
		s, err := types.ParseDate(start)
		require.NoError(t, err)
		e, err := types.ParseDate(end)
		require.NoError(t, err)
		return &types.Planting{
			CropID:              "tomato",
			BedID:               bedID,
			Position:            &types.Position{Col: 2, Row: 2},
			TransplantDate:      &s,
			ExpectedHarvestDate: &e,
		}
	}

	_, err = store.Place(tomato("2024-05-01", "2024-08-15"), eng)
	require.NoError(t, err)

	report, err := store.Place(tomato("2024-08-10", "2024-10-01"), eng)
	assert.ErrorIs(t, err, types.ErrConflict)
	assert.True(t, report.HasConflict)

	occupants, err := store.OccupantsInBed(bedID)
	require.NoError(t, err)
	assert.Len(t, occupants, 1)

	require.NoError(t, store.Detach())
	_, err = store.Beds()
	assert.ErrorIs(t, err, types.ErrBackendDetached)
}
