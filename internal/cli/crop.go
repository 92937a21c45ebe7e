package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gardenplan/pkg/types"
)

func newCropCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "crop",
		Short:   "Browse the crop catalog",
		GroupID: groupGarden,
	}
	cmd.AddCommand(newCropListCmd(a), newCropShowCmd(a))
	return cmd
}

func newCropListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog crops",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, cat, err := a.engine()
			if err != nil {
				return err
			}
			crops := cat.All()

			p := a.printer(cmd)
			if p.jsonMode {
				return p.json(crops)
			}
			rows := make([][]string, 0, len(crops))
			for _, c := range crops {
				rows = append(rows, []string{
					c.CropID,
					c.Name,
					formatInches(c.SpacingInches),
					strconv.Itoa(c.DaysToMaturity),
					string(c.FrostTolerance),
					string(c.LightRequirement),
				})
			}
			p.section(plural(len(crops), "crop", "crops"))
			p.table([]string{"ID", "NAME", "SPACING", "DTM", "FROST", "LIGHT"}, rows)
			return nil
		},
	}
}

// methodFootprint is one planning method's view of a crop at 12" resolution.
type methodFootprint struct {
	Method      types.PlanningMethod `json:"method"`
	RowInches   float64              `json:"row_inches,omitempty"`
	PlantInches float64              `json:"plant_inches"`
	PerCell     float64              `json:"per_cell,omitempty"`
	Cells       float64              `json:"cells"`
	Radius      int                  `json:"radius"`
}

func newCropShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <crop-id>",
		Short: "Show one crop and its footprint under each planning method",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := a.engine()
			if err != nil {
				return err
			}
			crop, ok := eng.Crop(args[0])
			if !ok {
				return userError(fmt.Errorf("crop %q: %w", args[0], types.ErrCropNotFound))
			}

			methods := make([]methodFootprint, 0, len(types.PlanningMethods))
			for _, m := range types.PlanningMethods {
				s := eng.Spacing(crop.CropID, m)
				methods = append(methods, methodFootprint{
					Method:      m,
					RowInches:   s.RowInches,
					PlantInches: s.PlantInches,
					PerCell:     s.PerCell,
					Cells:       eng.FootprintCells(crop.CropID, types.DefaultGridResolutionInches, m),
					Radius:      eng.ExclusionRadius(crop.CropID, types.DefaultGridResolutionInches, m),
				})
			}

			p := a.printer(cmd)
			if p.jsonMode {
				return p.json(struct {
					Crop    *types.Crop       `json:"crop"`
					Methods []methodFootprint `json:"methods"`
				}{crop, methods})
			}

			p.section(crop.Name)
			p.labelValue("ID", crop.CropID)
			p.labelValue("Spacing", formatInches(crop.SpacingInches))
			if crop.RowSpacingInches > 0 {
				p.labelValue("Row spacing", formatInches(crop.RowSpacingInches))
			}
			p.labelValue("Days to maturity", crop.DaysToMaturity)
			p.labelValue("Frost tolerance", crop.FrostTolerance)
			p.labelValue("Light", crop.LightRequirement)
			if crop.NoSuccession {
				p.labelValue("Succession", "single planting only")
			}

			rows := make([][]string, 0, len(methods))
			for _, m := range methods {
				spacing := formatInches(m.PlantInches)
				if m.PerCell > 0 {
					spacing = formatFloat(m.PerCell) + "/cell"
				} else if m.RowInches > 0 {
					spacing = formatInches(m.RowInches) + " x " + spacing
				}
				rows = append(rows, []string{string(m.Method), spacing, formatFloat(m.Cells), strconv.Itoa(m.Radius)})
			}
			p.section("Footprint at 12\" grid")
			p.table([]string{"METHOD", "SPACING", "CELLS", "RADIUS"}, rows)
			return nil
		},
	}
}
