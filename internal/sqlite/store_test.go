package sqlite

import (
	"errors"
	"testing"

	"github.com/mesh-intelligence/gardenplan/pkg/types"
)

func TestBeds_CRUD(t *testing.T) {
	b := attach(t, t.TempDir())

	bed := &types.Bed{Name: "South", WidthInches: 36, LengthInches: 72, GridResolutionInches: 6, Method: types.MethodIntensive}
	id, err := b.SaveBed(bed)
	if err != nil {
		t.Fatalf("SaveBed failed: %v", err)
	}
	if id == "" || bed.BedID != id || bed.CreatedAt.IsZero() {
		t.Fatalf("SaveBed did not stamp the bed: %+v", bed)
	}

	bed.Name = "South renamed"
	if _, err := b.SaveBed(bed); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	got, err := b.BedByID(id)
	if err != nil {
		t.Fatalf("BedByID failed: %v", err)
	}
	if got.Name != "South renamed" || got.GridResolutionInches != 6 || got.Cols() != 6 {
		t.Errorf("unexpected bed: %+v", got)
	}

	all, err := b.Beds()
	if err != nil || len(all) != 1 {
		t.Fatalf("Beds = %d, %v", len(all), err)
	}

	if _, err := b.BedByID("missing"); !errors.Is(err, types.ErrBedNotFound) {
		t.Errorf("expected ErrBedNotFound, got %v", err)
	}
	if _, err := b.BedByID(""); err != types.ErrInvalidID {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}
	if err := b.DeleteBed("missing"); !errors.Is(err, types.ErrBedNotFound) {
		t.Errorf("expected ErrBedNotFound, got %v", err)
	}
}

func TestBeds_Validation(t *testing.T) {
	b := attach(t, t.TempDir())
	tests := []struct {
		name string
		bed  types.Bed
		want error
	}{
		{"no name", types.Bed{WidthInches: 1, LengthInches: 1}, types.ErrInvalidName},
		{"no width", types.Bed{Name: "x", LengthInches: 1}, types.ErrInvalidBed},
		{"bad method", types.Bed{Name: "x", WidthInches: 1, LengthInches: 1, Method: "lasagna"}, types.ErrInvalidMethod},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bed := tt.bed
			if _, err := b.SaveBed(&bed); err != tt.want {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}

	bed := types.Bed{Name: "defaults", WidthInches: 24, LengthInches: 24}
	if _, err := b.SaveBed(&bed); err != nil {
		t.Fatalf("SaveBed failed: %v", err)
	}
	if bed.Method != types.MethodRow || bed.GridResolutionInches != 12 {
		t.Errorf("defaults not applied: %+v", bed)
	}
}

func TestPlantings_CRUD(t *testing.T) {
	b := attach(t, t.TempDir())
	bed := newBed(t, b, types.MethodSquareFoot)

	p := &types.Planting{
		CropID:         "carrot",
		BedID:          bed.BedID,
		Position:       &types.Position{Col: 0, Row: 0},
		DirectSeedDate: day("2024-04-01"),
	}
	id, err := b.SavePlanting(p)
	if err != nil {
		t.Fatalf("SavePlanting failed: %v", err)
	}

	if err := p.Harvest(*day("2024-06-10")); err != nil {
		t.Fatalf("Harvest failed: %v", err)
	}
	if _, err := b.SavePlanting(p); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	got, err := b.Planting(id)
	if err != nil {
		t.Fatalf("Planting failed: %v", err)
	}
	if types.FormatDate(got.ActualHarvestDate) != "2024-06-10" {
		t.Errorf("harvest not saved: %+v", got)
	}

	inBed, err := b.Plantings(bed.BedID)
	if err != nil || len(inBed) != 1 {
		t.Fatalf("Plantings(bed) = %d, %v", len(inBed), err)
	}

	if err := b.DeletePlanting(id); err != nil {
		t.Fatalf("DeletePlanting failed: %v", err)
	}
	if _, err := b.Planting(id); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := b.DeletePlanting(id); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestPlantings_Validation(t *testing.T) {
	b := attach(t, t.TempDir())
	bed := newBed(t, b, types.MethodSquareFoot)

	tests := []struct {
		name string
		p    types.Planting
		want error
	}{
		{"inverted window", types.Planting{CropID: "kale", BedID: bed.BedID, TransplantDate: day("2024-06-01"), ExpectedHarvestDate: day("2024-05-01")}, types.ErrInvalidWindow},
		{"no crop", types.Planting{BedID: bed.BedID}, types.ErrInvalidData},
		{"unknown bed", types.Planting{CropID: "kale", BedID: "nope"}, types.ErrBedNotFound},
		{"off the grid", types.Planting{CropID: "kale", BedID: bed.BedID, Position: &types.Position{Col: 4, Row: 0}}, types.ErrInvalidData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.p
			if _, err := b.SavePlanting(&p); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestOccupantsInBed(t *testing.T) {
	b := attach(t, t.TempDir())
	bed := newBed(t, b, types.MethodSquareFoot)
	other := newBed(t, b, types.MethodRow)

	save := func(p types.Planting) {
		t.Helper()
		if _, err := b.SavePlanting(&p); err != nil {
			t.Fatalf("SavePlanting failed: %v", err)
		}
	}
	save(types.Planting{PlantingID: "a-positioned", CropID: "kale", BedID: bed.BedID, Position: &types.Position{Col: 1, Row: 1}})
	save(types.Planting{PlantingID: "b-timeline", CropID: "kale", BedID: bed.BedID})
	save(types.Planting{PlantingID: "c-provisional", CropID: "kale", BedID: bed.BedID, Position: &types.Position{Col: 2, Row: 2}, Provisional: true})
	save(types.Planting{PlantingID: "d-other-bed", CropID: "kale", BedID: other.BedID, Position: &types.Position{Col: 0, Row: 0}})

	occ, err := b.OccupantsInBed(bed.BedID)
	if err != nil {
		t.Fatalf("OccupantsInBed failed: %v", err)
	}
	if len(occ) != 1 || occ[0].ID() != "a-positioned" {
		t.Fatalf("expected only a-positioned, got %d occupants", len(occ))
	}

	if err := b.DeleteBed(bed.BedID); err != nil {
		t.Fatalf("DeleteBed failed: %v", err)
	}
	occ, err = b.OccupantsInBed(bed.BedID)
	if err != nil || len(occ) != 0 {
		t.Errorf("expected no occupants after delete, got %d, %v", len(occ), err)
	}
	all, _ := b.Plantings("")
	if len(all) != 1 || all[0].PlantingID != "d-other-bed" {
		t.Errorf("delete should cascade only to the deleted bed, got %d plantings", len(all))
	}
}
