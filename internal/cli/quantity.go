package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/gardenplan/internal/succession"
	"github.com/mesh-intelligence/gardenplan/pkg/garden"
	"github.com/mesh-intelligence/gardenplan/pkg/types"
)

// selectionFile is the YAML layout read by the quantity command.
type selectionFile struct {
	Strategy   types.Strategy `yaml:"strategy"`
	Succession struct {
		Count int `yaml:"count"`
	} `yaml:"succession"`
	Selections []selectionEntry `yaml:"selections"`
}

type selectionEntry struct {
	Crop            string   `yaml:"crop"`
	Variety         string   `yaml:"variety"`
	SeedsAvailable  int      `yaml:"seeds_available"`
	SeedsPerPacket  int      `yaml:"seeds_per_packet"`
	GerminationRate *float64 `yaml:"germination_rate"`
	Beds            []struct {
		ID    string  `yaml:"id"`
		Cells float64 `yaml:"cells"`
	} `yaml:"beds"`
}

func readSelectionFile(path string) (selectionFile, error) {
	var f selectionFile
	data, err := os.ReadFile(path)
	if err != nil {
		return f, userError(fmt.Errorf("read selections: %w", err))
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, userError(fmt.Errorf("parse %s: %w: %w", path, types.ErrInvalidData, err))
	}
	return f, nil
}

// resolve turns bed references into allocations against stored beds.
func (f selectionFile) resolve(beds types.BedLookup) ([]types.SeedSelection, error) {
	out := make([]types.SeedSelection, 0, len(f.Selections))
	for i, e := range f.Selections {
		if e.Crop == "" {
			return nil, fmt.Errorf("selection %d: crop: %w", i+1, types.ErrInvalidData)
		}
		sel := types.SeedSelection{
			CropID:          e.Crop,
			Variety:         e.Variety,
			SeedsAvailable:  e.SeedsAvailable,
			SeedsPerPacket:  e.SeedsPerPacket,
			GerminationRate: e.GerminationRate,
		}
		for _, ref := range e.Beds {
			bed, err := beds.BedByID(ref.ID)
			if err != nil {
				return nil, fmt.Errorf("selection %d (%s): %w", i+1, e.Crop, err)
			}
			sel.Allocations = append(sel.Allocations, types.BedAllocation{Bed: *bed, Cells: ref.Cells})
		}
		out = append(out, sel)
	}
	return out, nil
}

func newQuantityCmd(a *app) *cobra.Command {
	var (
		file, strategy, xlsx string
		count                int
		save                 bool
	)
	cmd := &cobra.Command{
		Use:   "quantity",
		Short: "Work out plant targets and seed to buy for a list of selections",
		Long: `Quantity reads seed selections from a YAML file, sizes each against the
beds allocated to it and the seed on hand, and reports how many plants to
aim for and how many seeds and packets to buy.

Selection file:

  strategy: balanced        # maximize, use-all-seeds or balanced
  succession:
    count: 3                # waves per crop, when the crop allows it
  selections:
    - crop: lettuce
      variety: Buttercrunch
      seeds_available: 100
      beds:
        - id: <bed-id>
          cells: 16         # omit for the whole bed`,
		GroupID: groupPlanning,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := readSelectionFile(file)
			if err != nil {
				return err
			}
			frost, err := a.frostDates(cmd)
			if err != nil {
				return err
			}
			eng, _, err := a.engine()
			if err != nil {
				return err
			}

			opts := garden.PlanOptions{Strategy: f.Strategy, Frost: frost}
			switch {
			case strategy != "":
				opts.Strategy = types.Strategy(strategy)
			case opts.Strategy == "":
				opts.Strategy = types.Strategy(a.settings.Strategy)
			}
			waves := f.Succession.Count
			if cmd.Flags().Changed("succession-count") {
				waves = count
			}
			opts.Succession = types.SuccessionPreference{Enabled: waves > 1, Count: waves}

			var (
				items []types.PlanItem
				saved int
			)
			err = a.withStore(func(b types.Store) error {
				selections, err := f.resolve(b)
				if err != nil {
					return storeError(err)
				}
				if items, err = eng.PlanQuantities(selections, opts); err != nil {
					return userError(err)
				}
				if !save {
					return nil
				}
				for i, item := range items {
					for _, p := range eng.ExpandWaves(item, selections[i].Allocations) {
						if _, err := b.SavePlanting(p); err != nil {
							return storeError(err)
						}
						saved++
					}
				}
				return nil
			})
			if err != nil {
				return err
			}

			if xlsx != "" {
				entries := make([]succession.CalendarEntry, 0, len(items))
				for _, item := range items {
					entries = append(entries, succession.CalendarEntry{CropID: item.CropID, Variety: item.Variety, Plan: item.Succession})
				}
				if err := writeCalendarFile(xlsx, entries); err != nil {
					return err
				}
			}

			p := a.printer(cmd)
			if p.jsonMode {
				return p.json(nonNil(items))
			}
			printPlanItems(p, items)
			if save {
				p.success("Saved %s", plural(saved, "provisional planting", "provisional plantings"))
			}
			if xlsx != "" {
				p.success("Calendar written to %s", xlsx)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "seed selection YAML file")
	cmd.Flags().StringVar(&strategy, "strategy", "", "maximize, use-all-seeds or balanced (default: file, then config, then balanced)")
	cmd.Flags().IntVar(&count, "succession-count", 1, "waves per crop, overriding the file")
	cmd.Flags().BoolVar(&save, "save", false, "save each succession wave as a provisional, unplaced planting")
	cmd.Flags().StringVar(&xlsx, "xlsx", "", "also write the succession calendar to this .xlsx file")
	addFrostFlags(cmd)
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func printPlanItems(p *printer, items []types.PlanItem) {
	if len(items) == 0 {
		p.empty("No selections.")
		return
	}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		// Unknown crops have no schedule at all.
		waves := "-"
		if it.Succession.Feasible {
			waves = strconv.Itoa(it.Succession.Count)
		} else if !it.Succession.FirstDate.IsZero() {
			waves = "none fit"
		}
		rows = append(rows, []string{
			it.CropID,
			it.Variety,
			strconv.Itoa(it.SpaceCapacity),
			strconv.Itoa(it.SeedCapacity),
			strconv.Itoa(it.TargetQuantity),
			strconv.Itoa(it.RequiredSeeds),
			strconv.Itoa(it.SeedsToBuy),
			strconv.Itoa(it.PacketsRequired),
			strconv.Itoa(it.PacketsToBuy),
			waves,
		})
	}
	p.section("Seed plan")
	p.table([]string{"CROP", "VARIETY", "SPACE", "SEED", "TARGET", "NEED", "BUY", "PKTS NEED", "PKTS BUY", "WAVES"}, rows)
}
