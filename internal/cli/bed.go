package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gardenplan/pkg/types"
)

func newBedCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bed",
		Short:   "Manage beds",
		GroupID: groupGarden,
	}
	cmd.AddCommand(newBedAddCmd(a), newBedListCmd(a), newBedShowCmd(a), newBedRmCmd(a))
	return cmd
}

func newBedAddCmd(a *app) *cobra.Command {
	var (
		width, length, resolution float64
		method, sun, owner        string
	)
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a bed",
		Example: `  gardenplan bed add North --width 48 --length 96 --method sfg
  gardenplan bed add Rows --width 120 --length 240 --resolution 6 --sun partial`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := parseMethod(method)
			if err != nil {
				return err
			}
			light, err := parseLight(sun)
			if err != nil {
				return err
			}
			bed := &types.Bed{
				Name:                 args[0],
				Owner:                owner,
				WidthInches:          width,
				LengthInches:         length,
				GridResolutionInches: resolution,
				Method:               m,
				SunExposure:          light,
			}

			if err := a.withStore(func(b types.Store) error {
				_, err := b.SaveBed(bed)
				return storeError(err)
			}); err != nil {
				return err
			}

			p := a.printer(cmd)
			if p.jsonMode {
				return p.json(bed)
			}
			p.success("Added bed %s (%s)", bed.Name, bed.BedID)
			p.labelValue("Grid", fmt.Sprintf("%d x %d cells at %s", bed.Cols(), bed.Rows(), formatInches(bed.Resolution())))
			return nil
		},
	}
	cmd.Flags().Float64Var(&width, "width", 0, "bed width in inches")
	cmd.Flags().Float64Var(&length, "length", 0, "bed length in inches")
	cmd.Flags().Float64Var(&resolution, "resolution", types.DefaultGridResolutionInches, "grid cell size in inches")
	cmd.Flags().StringVar(&method, "method", string(types.MethodRow), "planning method: square-foot, row, intensive, migardener, permaculture")
	cmd.Flags().StringVar(&sun, "sun", string(types.LightFull), "sun exposure: full, partial or shade")
	cmd.Flags().StringVar(&owner, "owner", "", "bed owner")
	_ = cmd.MarkFlagRequired("width")
	_ = cmd.MarkFlagRequired("length")
	return cmd
}

func newBedListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List beds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var beds []*types.Bed
			if err := a.withStore(func(b types.Store) error {
				var err error
				beds, err = b.Beds()
				return storeError(err)
			}); err != nil {
				return err
			}

			p := a.printer(cmd)
			if p.jsonMode {
				return p.json(nonNil(beds))
			}
			if len(beds) == 0 {
				p.empty("No beds yet. Add one with: gardenplan bed add <name> --width W --length L")
				return nil
			}
			rows := make([][]string, 0, len(beds))
			for _, bed := range beds {
				rows = append(rows, []string{
					bed.BedID,
					bed.Name,
					formatInches(bed.WidthInches) + " x " + formatInches(bed.LengthInches),
					fmt.Sprintf("%dx%d @ %s", bed.Cols(), bed.Rows(), formatInches(bed.Resolution())),
					string(bed.PlanningMethod()),
					string(bed.SunExposure),
				})
			}
			p.section(plural(len(beds), "bed", "beds"))
			p.table([]string{"ID", "NAME", "SIZE", "GRID", "METHOD", "SUN"}, rows)
			return nil
		},
	}
}

func newBedShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <bed-id>",
		Short: "Show a bed and its plantings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				bed       *types.Bed
				plantings []*types.Planting
			)
			if err := a.withStore(func(b types.Store) error {
				var err error
				if bed, err = b.BedByID(args[0]); err != nil {
					return storeError(err)
				}
				plantings, err = b.Plantings(bed.BedID)
				return storeError(err)
			}); err != nil {
				return err
			}

			p := a.printer(cmd)
			if p.jsonMode {
				return p.json(struct {
					Bed       *types.Bed        `json:"bed"`
					Plantings []*types.Planting `json:"plantings"`
				}{bed, nonNil(plantings)})
			}
			p.section(bed.Name)
			p.labelValue("ID", bed.BedID)
			p.labelValue("Size", fmt.Sprintf("%s x %s (%s sq ft)", formatInches(bed.WidthInches), formatInches(bed.LengthInches), formatFloat(bed.AreaSquareFeet())))
			p.labelValue("Grid", fmt.Sprintf("%d x %d cells at %s", bed.Cols(), bed.Rows(), formatInches(bed.Resolution())))
			p.labelValue("Method", bed.PlanningMethod())
			p.labelValue("Sun", bed.SunExposure)
			if bed.Owner != "" {
				p.labelValue("Owner", bed.Owner)
			}
			printPlantings(p, plantings)
			return nil
		},
	}
}

func newBedRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <bed-id>",
		Short: "Remove a bed and every planting in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.withStore(func(b types.Store) error {
				return storeError(b.DeleteBed(args[0]))
			}); err != nil {
				return err
			}
			p := a.printer(cmd)
			if p.jsonMode {
				return p.json(map[string]string{"deleted": args[0]})
			}
			p.success("Removed bed %s", args[0])
			return nil
		},
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
