package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gardenplan/internal/succession"
	"github.com/mesh-intelligence/gardenplan/pkg/types"
)

func newSuccessionCmd(a *app) *cobra.Command {
	var (
		target, count int
		variety, xlsx string
	)
	cmd := &cobra.Command{
		Use:   "succession <crop-id>",
		Short: "Schedule staggered sowings of one crop between the frosts",
		Example: `  gardenplan succession lettuce --target 40 --count 4 \
      --last-frost 2026-04-15 --first-frost 2026-10-15 --xlsx lettuce.xlsx`,
		GroupID: groupPlanning,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			frost, err := a.frostDates(cmd)
			if err != nil {
				return err
			}
			eng, _, err := a.engine()
			if err != nil {
				return err
			}
			pref := types.SuccessionPreference{Enabled: count > 1, Count: count}
			plan, err := eng.PlanSuccession(args[0], target, pref, frost)
			if err != nil {
				return userError(err)
			}

			if xlsx != "" {
				entries := []succession.CalendarEntry{{CropID: args[0], Variety: variety, Plan: plan}}
				if err := writeCalendarFile(xlsx, entries); err != nil {
					return err
				}
				a.logger.Debug("calendar written", "path", xlsx)
			}

			p := a.printer(cmd)
			if p.jsonMode {
				return p.json(plan)
			}
			printSuccession(p, args[0], plan)
			if xlsx != "" {
				p.success("Calendar written to %s", xlsx)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&target, "target", 0, "plants wanted across all waves")
	cmd.Flags().IntVar(&count, "count", 1, "waves wanted; fewer are scheduled when the season is too short")
	cmd.Flags().StringVar(&variety, "variety", "", "variety name for the calendar export")
	cmd.Flags().StringVar(&xlsx, "xlsx", "", "also write the calendar to this .xlsx file")
	addFrostFlags(cmd)
	return cmd
}

func writeCalendarFile(path string, entries []succession.CalendarEntry) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return sysError(fmt.Errorf("create %s: %w", path, err))
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = sysError(cerr)
		}
	}()
	if err := succession.WriteCalendar(f, entries); err != nil {
		return sysError(err)
	}
	return nil
}

func printSuccession(p *printer, cropID string, plan types.SuccessionPlan) {
	p.section("Succession: " + cropID)
	if !plan.Feasible {
		p.warning("No wave can be harvested before the first fall frost (first safe date %s)", plan.FirstDate.Format(types.DateLayout))
		return
	}
	p.labelValue("Waves", plan.Count)
	if plan.Enabled {
		p.labelValue("Interval", plural(plan.IntervalDays, "day", "days"))
	}
	p.labelValue("Sow", plan.FirstDate.Format(types.DateLayout)+" to "+plan.LastDate.Format(types.DateLayout))
	p.labelValue("Harvest", plan.HarvestStart.Format(types.DateLayout)+" to "+plan.HarvestEnd.Format(types.DateLayout))
	if plan.Clamped {
		p.warning("Fewer waves than requested fit before the first fall frost")
	}
	rows := make([][]string, 0, len(plan.Waves))
	for _, w := range plan.Waves {
		rows = append(rows, []string{
			strconv.Itoa(w.Index),
			w.PlantDate.Format(types.DateLayout),
			w.HarvestDate.Format(types.DateLayout),
			strconv.Itoa(w.Quantity),
		})
	}
	fmt.Fprintln(p.w)
	p.table([]string{"WAVE", "SOW", "HARVEST", "QTY"}, rows)
}
