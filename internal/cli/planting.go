package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gardenplan/pkg/types"
)

func newPlantingCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "planting",
		Short:   "Place and manage plantings",
		GroupID: groupGarden,
	}
	cmd.AddCommand(
		newPlantingAddCmd(a),
		newPlantingListCmd(a),
		newPlantingMoveCmd(a),
		newPlantingRescheduleCmd(a),
		newPlantingHarvestCmd(a),
		newPlantingRmCmd(a),
	)
	return cmd
}

// placement is the JSON shape of a placement attempt.
type placement struct {
	Planting *types.Planting      `json:"planting"`
	Report   types.ConflictReport `json:"report"`
	Saved    bool                 `json:"saved"`
}

// place saves p through the conflict check and prints the outcome. A refused
// placement prints its report and returns a user error.
func (a *app) place(cmd *cobra.Command, p *types.Planting, verb string) error {
	eng, _, err := a.engine()
	if err != nil {
		return err
	}
	if _, ok := eng.Crop(p.CropID); !ok {
		a.logger.Warn("crop is not in the catalog; conflicts cannot be checked", "crop_id", p.CropID)
	}

	var report types.ConflictReport
	placeErr := a.withStore(func(b types.Store) error {
		var err error
		report, err = b.Place(p, eng)
		return storeError(err)
	})
	if placeErr != nil && !errors.Is(placeErr, types.ErrConflict) {
		return placeErr
	}

	out := a.printer(cmd)
	if out.jsonMode {
		if err := out.json(placement{Planting: p, Report: report, Saved: placeErr == nil}); err != nil {
			return err
		}
		return placeErr
	}
	printReport(out, report)
	if placeErr != nil {
		return placeErr
	}
	out.success("%s %s %s (%s)", verb, p.CropID, positionString(p.Position), p.PlantingID)
	return nil
}

func addWindowFlags(cmd *cobra.Command) {
	cmd.Flags().String("seed-start", "", "indoor seed-start date, YYYY-MM-DD (does not occupy the bed)")
	cmd.Flags().String("transplant", "", "transplant date, YYYY-MM-DD")
	cmd.Flags().String("direct-seed", "", "direct-seed date, YYYY-MM-DD")
	cmd.Flags().String("harvest", "", "expected harvest date, YYYY-MM-DD")
}

func newPlantingAddCmd(a *app) *cobra.Command {
	var (
		bedID, cropID, variety string
		override               bool
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Place a planting in a bed, refusing conflicts",
		Example: `  gardenplan planting add --bed <bed-id> --crop tomato --col 2 --row 2 \
      --transplant 2026-05-01 --harvest 2026-08-15`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pos, err := positionFlags(cmd)
			if err != nil {
				return err
			}
			p := &types.Planting{
				CropID:   cropID,
				Variety:  variety,
				BedID:    bedID,
				Position: pos,
				Override: override,
			}
			for name, dst := range map[string]**time.Time{
				"seed-start":  &p.SeedStartDate,
				"transplant":  &p.TransplantDate,
				"direct-seed": &p.DirectSeedDate,
				"harvest":     &p.ExpectedHarvestDate,
			} {
				if *dst, err = dateFlag(cmd, name); err != nil {
					return err
				}
			}
			return a.place(cmd, p, "Placed")
		},
	}
	cmd.Flags().StringVar(&bedID, "bed", "", "bed ID")
	cmd.Flags().StringVar(&cropID, "crop", "", "crop ID from the catalog")
	cmd.Flags().StringVar(&variety, "variety", "", "variety name")
	cmd.Flags().BoolVar(&override, "override", false, "save even if it conflicts with existing plantings")
	addPositionFlags(cmd)
	addWindowFlags(cmd)
	_ = cmd.MarkFlagRequired("bed")
	_ = cmd.MarkFlagRequired("crop")
	return cmd
}

func newPlantingListCmd(a *app) *cobra.Command {
	var bedID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List plantings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var plantings []*types.Planting
			if err := a.withStore(func(b types.Store) error {
				var err error
				plantings, err = b.Plantings(bedID)
				return storeError(err)
			}); err != nil {
				return err
			}
			p := a.printer(cmd)
			if p.jsonMode {
				return p.json(nonNil(plantings))
			}
			printPlantings(p, plantings)
			return nil
		},
	}
	cmd.Flags().StringVar(&bedID, "bed", "", "only plantings in this bed")
	return cmd
}

// loadPlanting reads one planting for an edit command.
func (a *app) loadPlanting(id string) (*types.Planting, error) {
	var p *types.Planting
	err := a.withStore(func(b types.Store) error {
		var err error
		p, err = b.Planting(id)
		return storeError(err)
	})
	return p, err
}

func newPlantingMoveCmd(a *app) *cobra.Command {
	var offGrid bool
	cmd := &cobra.Command{
		Use:   "move <planting-id>",
		Short: "Move a planting to another cell, or off the grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := positionFlags(cmd)
			if err != nil {
				return err
			}
			if (pos == nil) == !offGrid {
				return userError(errors.New("give either --col and --row, or --clear"))
			}
			p, err := a.loadPlanting(args[0])
			if err != nil {
				return err
			}
			if offGrid {
				p.ClearPosition()
			} else {
				p.MoveTo(*pos)
			}
			return a.place(cmd, p, "Moved")
		},
	}
	addPositionFlags(cmd)
	cmd.Flags().BoolVar(&offGrid, "clear", false, "remove the grid position, keeping the planting on the timeline")
	return cmd
}

func newPlantingRescheduleCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reschedule <planting-id>",
		Short: "Change when a planting goes in the ground and comes out",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := dateFlag(cmd, "start")
			if err != nil {
				return err
			}
			end, err := dateFlag(cmd, "harvest")
			if err != nil {
				return err
			}
			p, err := a.loadPlanting(args[0])
			if err != nil {
				return err
			}
			if err := p.Reschedule(start, end); err != nil {
				return userError(fmt.Errorf("reschedule %s: %w", p.PlantingID, err))
			}
			return a.place(cmd, p, "Rescheduled")
		},
	}
	cmd.Flags().String("start", "", "new in-ground date, YYYY-MM-DD (empty leaves it unknown)")
	cmd.Flags().String("harvest", "", "new expected harvest date, YYYY-MM-DD (empty leaves it unknown)")
	return cmd
}

func newPlantingHarvestCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "harvest <planting-id>",
		Short: "Record the actual harvest date, freeing the bed from then on",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			on, err := dateFlag(cmd, "on")
			if err != nil {
				return err
			}
			if on == nil {
				on = types.DatePtr(time.Now())
			}

			var p *types.Planting
			if err := a.withStore(func(b types.Store) error {
				var err error
				if p, err = b.Planting(args[0]); err != nil {
					return storeError(err)
				}
				if err := p.Harvest(*on); err != nil {
					return userError(fmt.Errorf("harvest %s on %s: %w", p.PlantingID, on.Format(types.DateLayout), err))
				}
				// A recorded harvest is a fact, so it is saved without a conflict check.
				_, err = b.SavePlanting(p)
				return storeError(err)
			}); err != nil {
				return err
			}

			out := a.printer(cmd)
			if out.jsonMode {
				return out.json(p)
			}
			out.success("Harvested %s on %s", p.CropID, on.Format(types.DateLayout))
			return nil
		},
	}
	cmd.Flags().String("on", "", "harvest date, YYYY-MM-DD (default: today)")
	return cmd
}

func newPlantingRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <planting-id>",
		Short: "Remove a planting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.withStore(func(b types.Store) error {
				return storeError(b.DeletePlanting(args[0]))
			}); err != nil {
				return err
			}
			p := a.printer(cmd)
			if p.jsonMode {
				return p.json(map[string]string{"deleted": args[0]})
			}
			p.success("Removed planting %s", args[0])
			return nil
		},
	}
}

func printPlantings(p *printer, plantings []*types.Planting) {
	if len(plantings) == 0 {
		p.empty("No plantings.")
		return
	}
	rows := make([][]string, 0, len(plantings))
	for _, pl := range plantings {
		var flags []string
		if pl.Override {
			flags = append(flags, "override")
		}
		if pl.Provisional {
			flags = append(flags, "provisional")
		}
		if pl.ActualHarvestDate != nil {
			flags = append(flags, "harvested")
		}
		rows = append(rows, []string{
			pl.PlantingID,
			pl.CropID,
			pl.Variety,
			pl.BedID,
			positionString(pl.Position),
			pl.OccupancyWindow().String(),
			strings.Join(flags, ","),
		})
	}
	p.section(plural(len(plantings), "planting", "plantings"))
	p.table([]string{"ID", "CROP", "VARIETY", "BED", "CELL", "IN BED", "FLAGS"}, rows)
}

func printReport(p *printer, r types.ConflictReport) {
	if w := r.SunExposureWarning; w != nil {
		p.warning("%s: %s", w.Severity, w.Message)
	}
	if !r.Evaluated {
		p.labelValue("Not checked", r.SkipReason)
		return
	}
	if !r.HasConflict {
		p.success("No conflicts")
		return
	}
	rows := make([][]string, 0, len(r.Conflicts))
	for _, c := range r.Conflicts {
		rows = append(rows, []string{
			c.PlantingID,
			c.CropID,
			c.Variety,
			c.Position.String(),
			c.Dates,
			fmt.Sprintf("%d < %d", c.Distance, c.Radius),
		})
	}
	p.warning("Conflicts with %s", plural(len(r.Conflicts), "planting", "plantings"))
	p.table([]string{"ID", "CROP", "VARIETY", "CELL", "IN BED", "DISTANCE"}, rows)
}
