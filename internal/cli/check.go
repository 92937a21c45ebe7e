package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gardenplan/pkg/types"
)

func newCheckCmd(a *app) *cobra.Command {
	var (
		bedID, cropID, variety, exclude string
		override                        bool
	)
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check whether a planting would conflict, without saving it",
		Long: `Check evaluates a hypothetical planting against everything currently in
its bed. Nothing is written. Use --exclude with a planting ID to ask
"what if this planting moved here?".`,
		Example: `  gardenplan check --bed <bed-id> --crop tomato --col 2 --row 2 \
      --start 2026-08-10 --end 2026-10-01`,
		GroupID: groupPlanning,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pos, err := positionFlags(cmd)
			if err != nil {
				return err
			}
			start, err := dateFlag(cmd, "start")
			if err != nil {
				return err
			}
			end, err := dateFlag(cmd, "end")
			if err != nil {
				return err
			}
			candidate := types.Candidate{
				PlantingID: exclude,
				CropID:     cropID,
				Variety:    variety,
				BedID:      bedID,
				Position:   pos,
				Start:      start,
				End:        end,
				Override:   override,
			}
			if !candidate.OccupancyWindow().Valid() {
				return userError(types.ErrInvalidWindow)
			}

			eng, _, err := a.engine()
			if err != nil {
				return err
			}
			var report types.ConflictReport
			if err := a.withStore(func(b types.Store) error {
				var err error
				report, err = eng.CheckPlacement(b, candidate)
				return storeError(err)
			}); err != nil {
				return err
			}

			p := a.printer(cmd)
			if p.jsonMode {
				return p.json(report)
			}
			printReport(p, report)
			return nil
		},
	}
	cmd.Flags().StringVar(&bedID, "bed", "", "bed ID")
	cmd.Flags().StringVar(&cropID, "crop", "", "crop ID from the catalog")
	cmd.Flags().StringVar(&variety, "variety", "", "variety name")
	cmd.Flags().StringVar(&exclude, "exclude", "", "planting ID to leave out, as if it were the one being moved")
	cmd.Flags().BoolVar(&override, "override", false, "evaluate as an override (skips the check)")
	cmd.Flags().String("start", "", "first day in the bed, YYYY-MM-DD")
	cmd.Flags().String("end", "", "last day in the bed, YYYY-MM-DD")
	addPositionFlags(cmd)
	_ = cmd.MarkFlagRequired("bed")
	_ = cmd.MarkFlagRequired("crop")
	return cmd
}
