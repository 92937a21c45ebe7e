package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mesh-intelligence/gardenplan/internal/succession"
	"github.com/mesh-intelligence/gardenplan/pkg/garden"
	"github.com/mesh-intelligence/gardenplan/pkg/types"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// testGarden is an isolated config and data directory pair.
type testGarden struct {
	t         *testing.T
	configDir string
	dataDir   string
}

func newTestGarden(t *testing.T) *testGarden {
	t.Helper()
	for _, key := range []string{"BACKEND", "DATA_DIR", "CATALOG", "LAST_FROST", "FIRST_FROST", "STRATEGY", "CONFIG_DIR"} {
		t.Setenv(envPrefix+"_"+key, "")
	}
	root := t.TempDir()
	return &testGarden{
		t:         t,
		configDir: filepath.Join(root, "config"),
		dataDir:   filepath.Join(root, "data"),
	}
}

// run executes the CLI and returns stdout, stderr and the exit code.
func (g *testGarden) run(args ...string) (string, string, int) {
	g.t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	full := append([]string{"--config-dir", g.configDir, "--data-dir", g.dataDir}, args...)
	code := run(root, full, &stderr)
	return stdout.String(), stderr.String(), code
}

// mustJSON runs a --json command that must succeed and decodes its output.
func (g *testGarden) mustJSON(v any, args ...string) {
	g.t.Helper()
	out, errOut, code := g.run(append(args, "--json")...)
	require.Equal(g.t, exitSuccess, code, "stderr: %s", errOut)
	require.NoError(g.t, json.Unmarshal([]byte(out), v), "output: %s", out)
}

func (g *testGarden) addBed(name, method string) types.Bed {
	g.t.Helper()
	var bed types.Bed
	g.mustJSON(&bed, "bed", "add", name, "--width", "48", "--length", "96", "--method", method)
	require.NotEmpty(g.t, bed.BedID)
	return bed
}

var season = []string{"--last-frost", "2024-04-15", "--first-frost", "2024-10-15"}

func TestVersion(t *testing.T) {
	g := newTestGarden(t)
	out, _, code := g.run("version")
	assert.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "gardenplan v"+garden.Version)
	assert.Contains(t, out, modulePath)
}

func TestInit(t *testing.T) {
	g := newTestGarden(t)
	out, errOut, code := g.run("init")
	require.Equal(t, exitSuccess, code, errOut)
	assert.Contains(t, out, "gardenplan initialized")

	assert.FileExists(t, filepath.Join(g.configDir, "config.yaml"))
	assert.FileExists(t, filepath.Join(g.dataDir, "beds.jsonl"))
	assert.FileExists(t, filepath.Join(g.dataDir, "plantings.jsonl"))

	_, _, code = g.run("init")
	assert.Equal(t, exitSuccess, code, "init is idempotent")
}

func TestCropCommands(t *testing.T) {
	g := newTestGarden(t)

	var crops []types.Crop
	g.mustJSON(&crops, "crop", "list")
	assert.Greater(t, len(crops), 10)

	out, _, code := g.run("crop", "show", "tomato")
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "Tomato")
	assert.Contains(t, out, "square-foot")

	_, errOut, code := g.run("crop", "show", "dragonfruit")
	assert.Equal(t, exitUserError, code)
	assert.Contains(t, errOut, "crop not found")
}

func TestCustomCatalog(t *testing.T) {
	g := newTestGarden(t)
	path := filepath.Join(t.TempDir(), "crops.yaml")
	require.NoError(t, os.WriteFile(path, []byte("crops:\n  - id: yacon\n    name: Yacon\n    spacing: 36\n    days_to_maturity: 180\n"), 0o644))

	var crops []types.Crop
	g.mustJSON(&crops, "--catalog", path, "crop", "list")
	require.Len(t, crops, 1)
	assert.Equal(t, "yacon", crops[0].CropID)

	_, _, code := g.run("--catalog", filepath.Join(t.TempDir(), "missing.yaml"), "crop", "list")
	assert.Equal(t, exitUserError, code)
}

func TestBedCommands(t *testing.T) {
	g := newTestGarden(t)
	bed := g.addBed("North", "sfg")
	assert.Equal(t, types.MethodSquareFoot, bed.Method)
	assert.Equal(t, types.LightFull, bed.SunExposure)

	var beds []types.Bed
	g.mustJSON(&beds, "bed", "list")
	require.Len(t, beds, 1)

	out, _, code := g.run("bed", "show", bed.BedID)
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "4 x 8 cells")

	tests := []struct {
		name string
		args []string
	}{
		{"bad method", []string{"bed", "add", "X", "--width", "1", "--length", "1", "--method", "hydroponic"}},
		{"bad sun", []string{"bed", "add", "X", "--width", "1", "--length", "1", "--sun", "dappled"}},
		{"zero width", []string{"bed", "add", "X", "--width", "0", "--length", "1"}},
		{"missing width", []string{"bed", "add", "X", "--length", "1"}},
		{"unknown bed", []string{"bed", "show", "nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, code := g.run(tt.args...)
			assert.Equal(t, exitUserError, code)
		})
	}

	_, _, code = g.run("bed", "rm", bed.BedID)
	require.Equal(t, exitSuccess, code)
	g.mustJSON(&beds, "bed", "list")
	assert.Empty(t, beds)
}

func TestPlantingLifecycle(t *testing.T) {
	g := newTestGarden(t)
	bed := g.addBed("North", "sfg")

	tomato := func(start, end string, extra ...string) []string {
		return append([]string{"planting", "add", "--bed", bed.BedID, "--crop", "tomato",
			"--col", "2", "--row", "2", "--transplant", start, "--harvest", end}, extra...)
	}

	var first placement
	g.mustJSON(&first, tomato("2024-05-01", "2024-08-15")...)
	assert.True(t, first.Saved)
	assert.True(t, first.Report.Evaluated)

	t.Run("back to back is allowed", func(t *testing.T) {
		var next placement
		g.mustJSON(&next, tomato("2024-08-15", "2024-10-15")...)
		assert.False(t, next.Report.HasConflict)
	})

	t.Run("overlap is refused", func(t *testing.T) {
		out, errOut, code := g.run(tomato("2024-08-10", "2024-10-01")...)
		assert.Equal(t, exitUserError, code)
		assert.Contains(t, out, first.Planting.PlantingID)
		assert.Contains(t, errOut, "conflicts")
	})

	t.Run("check reports without saving", func(t *testing.T) {
		var report types.ConflictReport
		g.mustJSON(&report, "check", "--bed", bed.BedID, "--crop", "tomato",
			"--col", "2", "--row", "2", "--start", "2024-06-01", "--end", "2024-07-01")
		assert.True(t, report.HasConflict)
		require.Len(t, report.Conflicts, 1)
		assert.Equal(t, first.Planting.PlantingID, report.Conflicts[0].PlantingID)

		g.mustJSON(&report, "check", "--bed", bed.BedID, "--crop", "tomato", "--exclude", first.Planting.PlantingID,
			"--col", "2", "--row", "2", "--start", "2024-06-01", "--end", "2024-07-01")
		assert.False(t, report.HasConflict)
	})

	t.Run("override saves anyway", func(t *testing.T) {
		var forced placement
		g.mustJSON(&forced, tomato("2024-06-01", "2024-07-01", "--override")...)
		assert.True(t, forced.Saved)
		assert.Equal(t, types.SkipOverride, forced.Report.SkipReason)
	})

	var plantings []types.Planting
	g.mustJSON(&plantings, "planting", "list", "--bed", bed.BedID)
	require.Len(t, plantings, 3)

	t.Run("move off the grid", func(t *testing.T) {
		var moved placement
		g.mustJSON(&moved, "planting", "move", first.Planting.PlantingID, "--clear")
		assert.Nil(t, moved.Planting.Position)
		assert.Equal(t, types.SkipNoPosition, moved.Report.SkipReason)

		_, _, code := g.run("planting", "move", first.Planting.PlantingID)
		assert.Equal(t, exitUserError, code, "needs a target")
		_, _, code = g.run("planting", "move", first.Planting.PlantingID, "--col", "9", "--row", "0")
		assert.Equal(t, exitUserError, code, "column 9 is off a 4-column bed")
	})

	t.Run("reschedule", func(t *testing.T) {
		var moved placement
		g.mustJSON(&moved, "planting", "reschedule", first.Planting.PlantingID, "--start", "2024-05-10", "--harvest", "2024-08-01")
		assert.Equal(t, "2024-05-10 to 2024-08-01", moved.Planting.OccupancyWindow().String())

		_, _, code := g.run("planting", "reschedule", first.Planting.PlantingID, "--start", "2024-09-01", "--harvest", "2024-08-01")
		assert.Equal(t, exitUserError, code)
	})

	t.Run("harvest", func(t *testing.T) {
		var harvested types.Planting
		g.mustJSON(&harvested, "planting", "harvest", first.Planting.PlantingID, "--on", "2024-07-20")
		require.NotNil(t, harvested.ActualHarvestDate)
		assert.Equal(t, "2024-07-20", harvested.ActualHarvestDate.Format(types.DateLayout))

		_, _, code := g.run("planting", "harvest", first.Planting.PlantingID, "--on", "2024-01-01")
		assert.Equal(t, exitUserError, code, "harvest before planting")
	})

	_, _, code := g.run("planting", "rm", first.Planting.PlantingID)
	require.Equal(t, exitSuccess, code)
	_, _, code = g.run("planting", "rm", first.Planting.PlantingID)
	assert.Equal(t, exitUserError, code)

	g.mustJSON(&plantings, "planting", "list")
	assert.Len(t, plantings, 2)
}

func TestSunWarningIsPrinted(t *testing.T) {
	g := newTestGarden(t)
	var bed types.Bed
	g.mustJSON(&bed, "bed", "add", "Shady", "--width", "24", "--length", "24", "--sun", "shade")

	out, errOut, code := g.run("planting", "add", "--bed", bed.BedID, "--crop", "tomato", "--col", "0", "--row", "0")
	require.Equal(t, exitSuccess, code, errOut)
	assert.Contains(t, out, "warning")
	assert.Contains(t, out, "incomplete-window")
}

func TestFootprint(t *testing.T) {
	g := newTestGarden(t)

	var result struct {
		Cells  float64 `json:"cells"`
		Radius int     `json:"radius"`
	}
	g.mustJSON(&result, "footprint", "watermelon", "--method", "sfg")
	assert.Equal(t, 2.0, result.Cells)
	assert.Equal(t, 1, result.Radius)

	g.mustJSON(&result, "footprint", "tomato", "--method", "row", "--resolution", "12")
	assert.Equal(t, 6.0, result.Cells)
	assert.Equal(t, 3, result.Radius)

	out, _, code := g.run("footprint", "lettuce", "--method", "migardener")
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "broadcast")
}

func TestSuccession(t *testing.T) {
	g := newTestGarden(t)
	xlsx := filepath.Join(t.TempDir(), "lettuce.xlsx")

	var plan types.SuccessionPlan
	g.mustJSON(&plan, append([]string{"succession", "lettuce", "--target", "40", "--count", "4", "--xlsx", xlsx}, season...)...)
	assert.Equal(t, 4, plan.Count)
	assert.Equal(t, 25, plan.IntervalDays)

	f, err := excelize.OpenFile(xlsx)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(succession.CalendarSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 5)

	_, errOut, code := g.run("succession", "lettuce")
	assert.Equal(t, exitUserError, code)
	assert.Contains(t, errOut, "--last-frost")

	_, _, code = g.run(append([]string{"succession", "dragonfruit"}, season...)...)
	assert.Equal(t, exitUserError, code)

	_, _, code = g.run("succession", "lettuce", "--last-frost", "2024-10-15", "--first-frost", "2024-04-15")
	assert.Equal(t, exitUserError, code, "frosts out of order")
}

func TestSuccessionFrostFromConfig(t *testing.T) {
	g := newTestGarden(t)
	require.NoError(t, os.MkdirAll(g.configDir, 0o755))
	cfg := "backend: sqlite\nlast_frost: \"2024-04-15\"\nfirst_frost: \"2024-10-15\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(g.configDir, "config.yaml"), []byte(cfg), 0o644))

	var plan types.SuccessionPlan
	g.mustJSON(&plan, "succession", "radish", "--target", "100", "--count", "20")
	assert.True(t, plan.Clamped)
	assert.Equal(t, 12, plan.Count)
}

func TestQuantity(t *testing.T) {
	g := newTestGarden(t)
	bed := g.addBed("North", "sfg")

	selections := "strategy: maximize\nsuccession:\n  count: 4\nselections:\n" +
		"  - crop: lettuce\n    variety: Buttercrunch\n    seeds_available: 100\n    beds:\n      - id: " + bed.BedID + "\n"
	path := filepath.Join(t.TempDir(), "selections.yaml")
	require.NoError(t, os.WriteFile(path, []byte(selections), 0o644))

	var items []types.PlanItem
	g.mustJSON(&items, append([]string{"quantity", "--file", path}, season...)...)
	require.Len(t, items, 1)
	assert.Equal(t, 128, items[0].SpaceCapacity)
	assert.Equal(t, 128, items[0].TargetQuantity)
	assert.Equal(t, 4, items[0].Succession.Count)

	g.mustJSON(&items, append([]string{"quantity", "--file", path, "--strategy", "balanced", "--succession-count", "1"}, season...)...)
	assert.Equal(t, 68, items[0].TargetQuantity)
	assert.Equal(t, 1, items[0].Succession.Count)

	_, _, code := g.run(append([]string{"quantity", "--file", path, "--strategy", "hoard"}, season...)...)
	assert.Equal(t, exitUserError, code)

	t.Run("save provisional waves", func(t *testing.T) {
		g.mustJSON(&items, append([]string{"quantity", "--file", path, "--save"}, season...)...)

		var plantings []types.Planting
		g.mustJSON(&plantings, "planting", "list", "--bed", bed.BedID)
		require.Len(t, plantings, 4)
		for _, p := range plantings {
			assert.True(t, p.Provisional)
			assert.Nil(t, p.Position)
		}

		// Provisional waves never block a real placement.
		var placed placement
		g.mustJSON(&placed, "planting", "add", "--bed", bed.BedID, "--crop", "lettuce",
			"--col", "0", "--row", "0", "--direct-seed", "2024-04-01", "--harvest", "2024-05-21")
		assert.False(t, placed.Report.HasConflict)
	})

	t.Run("unknown bed", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("selections:\n  - crop: kale\n    beds:\n      - id: nope\n"), 0o644))
		_, errOut, code := g.run(append([]string{"quantity", "--file", bad}, season...)...)
		assert.Equal(t, exitUserError, code)
		assert.Contains(t, errOut, "bed not found")
	})
}

func TestUnknownCommand(t *testing.T) {
	g := newTestGarden(t)
	_, errOut, code := g.run("plant-everything")
	assert.Equal(t, exitUserError, code)
	assert.True(t, strings.Contains(errOut, "unknown command"), errOut)
}

func TestUnknownBackend(t *testing.T) {
	g := newTestGarden(t)
	t.Setenv("GARDENPLAN_BACKEND", "postgres")
	_, errOut, code := g.run("bed", "list")
	assert.Equal(t, exitUserError, code)
	assert.Contains(t, errOut, "unknown backend")
}
