package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gardenplan/pkg/types"
)

// dateFlag parses an optional YYYY-MM-DD flag; unset flags are nil.
func dateFlag(cmd *cobra.Command, name string) (*time.Time, error) {
	s, err := cmd.Flags().GetString(name)
	if err != nil {
		return nil, err
	}
	t, err := types.ParseDatePtr(s)
	if err != nil {
		return nil, userError(fmt.Errorf("--%s: %w", name, err))
	}
	return t, nil
}

// positionFlags reads --col and --row. A position exists only when both
// are given.
func positionFlags(cmd *cobra.Command) (*types.Position, error) {
	colSet, rowSet := cmd.Flags().Changed("col"), cmd.Flags().Changed("row")
	if !colSet && !rowSet {
		return nil, nil
	}
	if colSet != rowSet {
		return nil, userError(fmt.Errorf("--col and --row must be given together: %w", types.ErrInvalidData))
	}
	col, _ := cmd.Flags().GetInt("col")
	row, _ := cmd.Flags().GetInt("row")
	return &types.Position{Col: col, Row: row}, nil
}

func addPositionFlags(cmd *cobra.Command) {
	cmd.Flags().Int("col", 0, "grid column (0-based)")
	cmd.Flags().Int("row", 0, "grid row (0-based)")
}

func addFrostFlags(cmd *cobra.Command) {
	cmd.Flags().String("last-frost", "", "average last spring frost, YYYY-MM-DD (default: config last_frost)")
	cmd.Flags().String("first-frost", "", "average first fall frost, YYYY-MM-DD (default: config first_frost)")
}

// frostDates resolves the season from flags, falling back to configuration.
func (a *app) frostDates(cmd *cobra.Command) (types.FrostDates, error) {
	last, err := a.configuredDate(cmd, "last-frost", a.settings.LastFrost)
	if err != nil {
		return types.FrostDates{}, err
	}
	first, err := a.configuredDate(cmd, "first-frost", a.settings.FirstFrost)
	if err != nil {
		return types.FrostDates{}, err
	}
	if !last.Before(first) {
		return types.FrostDates{}, userError(fmt.Errorf("last frost %s must precede first frost %s: %w",
			last.Format(types.DateLayout), first.Format(types.DateLayout), types.ErrInvalidDate))
	}
	return types.FrostDates{LastFrost: last, FirstFrost: first}, nil
}

func (a *app) configuredDate(cmd *cobra.Command, flag, configured string) (time.Time, error) {
	s, _ := cmd.Flags().GetString(flag)
	if s == "" {
		s = configured
	}
	if s == "" {
		return time.Time{}, userError(fmt.Errorf("--%s is required (or set it in config.yaml)", flag))
	}
	// Unquoted YAML dates arrive as timestamps.
	if len(s) > len(types.DateLayout) {
		s = s[:len(types.DateLayout)]
	}
	t, err := types.ParseDate(s)
	if err != nil {
		return time.Time{}, userError(fmt.Errorf("--%s: %w", flag, err))
	}
	return t, nil
}

func parseMethod(s string) (types.PlanningMethod, error) {
	m, err := types.ParsePlanningMethod(s)
	if err != nil {
		return "", userError(fmt.Errorf("method %q: %w", s, err))
	}
	return m, nil
}

func parseLight(s string) (types.Light, error) {
	switch l := types.Light(s); l {
	case types.LightFull, types.LightPartial, types.LightShade:
		return l, nil
	}
	return "", userError(fmt.Errorf("sun %q: want full, partial or shade: %w", s, types.ErrInvalidData))
}

func formatInches(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + `"`
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func positionString(p *types.Position) string {
	if p == nil {
		return "-"
	}
	return p.String()
}
