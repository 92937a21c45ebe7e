package sqlite

import (
	"fmt"

	"github.com/mesh-intelligence/gardenplan/pkg/types"
)

// Place saves p only if it does not conflict with what is already in its
// bed. Occupants are re-read, evaluated and the planting written under the
// backend's write lock and one transaction, so two concurrent placements
// cannot both succeed against a stale view of the bed.
//
// A conflicting planting without an override returns the report and an
// error wrapping ErrConflict; nothing is written. Plantings the evaluator
// cannot check (no position, incomplete dates) are saved as-is.
func (b *Backend) Place(p *types.Planting, eval types.Evaluator) (types.ConflictReport, error) {
	if err := p.Validate(); err != nil {
		return types.ConflictReport{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkAttached(); err != nil {
		return types.ConflictReport{}, err
	}

	tx, err := b.db.Begin()
	if err != nil {
		return types.ConflictReport{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	bed, err := getBed(tx, p.BedID)
	if err != nil {
		return types.ConflictReport{}, err
	}
	occupants, err := occupantsInBed(tx, bed.BedID)
	if err != nil {
		return types.ConflictReport{}, err
	}

	report := eval.Evaluate(p, occupants, bed)
	if report.HasConflict && !p.Override {
		b.logger.Debug("placement refused", "crop_id", p.CropID, "bed_id", bed.BedID, "conflicts", len(report.Conflicts))
		return report, fmt.Errorf("place %s in bed %s: %w", p.CropID, bed.BedID, types.ErrConflict)
	}

	if err := writePlanting(tx, bed, p); err != nil {
		return report, err
	}
	if err := tx.Commit(); err != nil {
		return report, fmt.Errorf("committing placement: %w", err)
	}
	if err := b.persistPlantings(); err != nil {
		return report, err
	}
	b.logger.Debug("planting placed", "planting_id", p.PlantingID, "bed_id", bed.BedID)
	return report, nil
}
