package succession

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/mesh-intelligence/gardenplan/pkg/types"
)

// CalendarSheet is the worksheet name used by WriteCalendar.
const CalendarSheet = "Succession"

var calendarHeader = []string{"Crop", "Variety", "Wave", "Plant", "Harvest", "Quantity"}

// CalendarEntry is one crop's plan in a calendar export.
type CalendarEntry struct {
	CropID  string
	Variety string
	Plan    types.SuccessionPlan
}

// WriteCalendar writes every wave of every entry as one spreadsheet row.
// Infeasible plans get a single row with no dates.
func WriteCalendar(w io.Writer, entries []CalendarEntry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", CalendarSheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}
	if err := setRow(f, 1, toCells(calendarHeader)); err != nil {
		return err
	}

	row := 2
	for _, e := range entries {
		if !e.Plan.Feasible {
			if err := setRow(f, row, []any{e.CropID, e.Variety, "infeasible"}); err != nil {
				return err
			}
			row++
			continue
		}
		for _, wave := range e.Plan.Waves {
			cells := []any{
				e.CropID,
				e.Variety,
				wave.Index,
				wave.PlantDate.Format(types.DateLayout),
				wave.HarvestDate.Format(types.DateLayout),
				wave.Quantity,
			}
			if err := setRow(f, row, cells); err != nil {
				return err
			}
			row++
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(CalendarSheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}

func toCells(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
