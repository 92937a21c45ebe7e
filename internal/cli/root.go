// Package cli implements the gardenplan command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gardenplan/internal/catalog"
	"github.com/mesh-intelligence/gardenplan/internal/paths"
	"github.com/mesh-intelligence/gardenplan/pkg/garden"
	"github.com/mesh-intelligence/gardenplan/pkg/sqlite"
	"github.com/mesh-intelligence/gardenplan/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Command groups shown in help.
const (
	groupGarden   = "garden"
	groupPlanning = "planning"
)

// app carries global flags and the state PersistentPreRunE resolves for
// subcommands.
type app struct {
	configDir   string
	dataDir     string
	catalogPath string
	jsonMode    bool
	verbose     bool

	settings settings
	logger   *slog.Logger
}

// NewRootCmd creates the top-level "gardenplan" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:     "gardenplan",
		Short:   "Plan beds, plantings and seed orders",
		Long:    "gardenplan places crops on bed grids without space or time conflicts,\nschedules succession sowings and works out how much seed to buy.",
		Version: garden.Version,
		// Errors are printed by Execute with the right exit code.
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configDir, "config-dir", "", "configuration directory (default: platform config dir, or $GARDENPLAN_CONFIG_DIR)")
	pf.StringVar(&a.dataDir, "data-dir", "", "data directory (default: $(CWD)/.gardenplan-data)")
	pf.StringVar(&a.catalogPath, "catalog", "", "crop catalog YAML (default: built-in catalog)")
	pf.BoolVar(&a.jsonMode, "json", false, "output in JSON format")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log debug detail to stderr")

	root.AddGroup(
		&cobra.Group{ID: groupGarden, Title: "Garden Commands:"},
		&cobra.Group{ID: groupPlanning, Title: "Planning Commands:"},
	)
	root.AddCommand(
		newInitCmd(a),
		newVersionCmd(),
		newCropCmd(a),
		newBedCmd(a),
		newPlantingCmd(a),
		newCheckCmd(a),
		newFootprintCmd(a),
		newSuccessionCmd(a),
		newQuantityCmd(a),
	)
	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(run(NewRootCmd(), os.Args[1:], os.Stderr))
}

// run executes root with args and returns the process exit code.
func run(root *cobra.Command, args []string, stderr io.Writer) int {
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		printError(stderr, err)
		return exitCode(err)
	}
	return exitSuccess
}

// setup resolves directories, environment and configuration before any
// subcommand runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	if err := loadEnvFiles(configDir); err != nil {
		return sysError(err)
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}
	a.settings = cfg
	a.logger.Debug("configuration loaded", "config_dir", configDir, "backend", cfg.Backend)
	return nil
}

func (a *app) printer(cmd *cobra.Command) *printer {
	return &printer{w: cmd.OutOrStdout(), jsonMode: a.jsonMode}
}

// engine loads the crop catalog (flag, then config, then built-in) and
// builds a planning engine over it.
func (a *app) engine() (*garden.Engine, *catalog.Catalog, error) {
	path := a.catalogPath
	if path == "" {
		path = a.settings.Catalog
	}
	if path == "" {
		cat := catalog.Builtin()
		return garden.New(cat), cat, nil
	}
	cat, err := catalog.Load(path)
	if err != nil {
		return nil, nil, userError(err)
	}
	a.logger.Debug("catalog loaded", "path", path, "crops", cat.Len())
	return garden.New(cat), cat, nil
}

func (a *app) resolveDataDir() (string, error) {
	dataDir, err := paths.ResolveDataDir(a.dataDir, a.settings.DataDir)
	if err != nil {
		return "", sysError(fmt.Errorf("resolve data dir: %w", err))
	}
	return dataDir, nil
}

// withStore attaches the backend for the duration of fn.
func (a *app) withStore(fn func(types.Store) error) (err error) {
	dataDir, err := a.resolveDataDir()
	if err != nil {
		return err
	}
	backend := a.settings.Backend
	if backend == "" {
		backend = types.BackendSQLite
	}

	store := sqlite.NewBackend(a.logger)
	if err := store.Attach(types.Config{Backend: backend, DataDir: dataDir}); err != nil {
		if errors.Is(err, types.ErrBackendUnknown) || errors.Is(err, types.ErrBackendEmpty) {
			return userError(fmt.Errorf("attach %q backend: %w", backend, err))
		}
		return sysError(fmt.Errorf("attach backend: %w", err))
	}
	defer func() {
		if derr := store.Detach(); derr != nil && err == nil {
			err = sysError(derr)
		}
	}()
	return fn(store)
}
