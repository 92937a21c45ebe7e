package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gardenplan/internal/spacing"
	"github.com/mesh-intelligence/gardenplan/pkg/types"
)

func newFootprintCmd(a *app) *cobra.Command {
	var (
		method     string
		resolution float64
	)
	cmd := &cobra.Command{
		Use:     "footprint <crop-id>",
		Short:   "Show the grid cells and exclusion radius of one plant",
		GroupID: groupPlanning,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := parseMethod(method)
			if err != nil {
				return err
			}
			eng, _, err := a.engine()
			if err != nil {
				return err
			}
			cropID := args[0]
			if _, ok := eng.Crop(cropID); !ok {
				a.logger.Warn("crop is not in the catalog; using method defaults", "crop_id", cropID)
			}

			s := eng.Spacing(cropID, m)
			result := struct {
				CropID              string          `json:"crop_id"`
				ResolutionInches    float64         `json:"resolution_inches"`
				Spacing             spacing.Spacing `json:"spacing"`
				Cells               float64         `json:"cells"`
				Radius              int             `json:"radius"`
				PlantsPerSquareFoot float64         `json:"plants_per_square_foot"`
			}{
				CropID:              cropID,
				ResolutionInches:    resolution,
				Spacing:             s,
				Cells:               eng.FootprintCells(cropID, resolution, m),
				Radius:              eng.ExclusionRadius(cropID, resolution, m),
				PlantsPerSquareFoot: s.PlantsPerSquareFoot(),
			}

			p := a.printer(cmd)
			if p.jsonMode {
				return p.json(result)
			}
			p.section(fmt.Sprintf("%s, %s at %s", cropID, m, formatInches(resolution)))
			switch {
			case s.Method == types.MethodSquareFoot:
				p.labelValue("Density", formatFloat(s.PerCell)+" per cell")
			case s.Broadcast():
				p.labelValue("Spacing", "broadcast, "+formatInches(s.PlantInches)+" apart")
			case s.RowInches > 0:
				p.labelValue("Spacing", formatInches(s.RowInches)+" between rows, "+formatInches(s.PlantInches)+" in row")
			default:
				p.labelValue("Spacing", formatInches(s.PlantInches)+" on center")
			}
			p.labelValue("Cells per plant", formatFloat(result.Cells))
			p.labelValue("Exclusion radius", plural(result.Radius, "cell", "cells"))
			p.labelValue("Plants per sq ft", fmt.Sprintf("%.2f", result.PlantsPerSquareFoot))
			return nil
		},
	}
	cmd.Flags().StringVar(&method, "method", string(types.MethodSquareFoot), "planning method")
	cmd.Flags().Float64Var(&resolution, "resolution", types.DefaultGridResolutionInches, "grid cell size in inches")
	return cmd
}
