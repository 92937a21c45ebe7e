package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gardenplan/pkg/types"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "init",
		Short:   "Initialize gardenplan storage",
		Long:    "Create the configuration and data directories, then initialize the storage backend.",
		GroupID: groupGarden,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dataDir, err := a.resolveDataDir()
			if err != nil {
				return err
			}
			// Attaching creates the data directory and its JSONL files.
			if err := a.withStore(func(types.Store) error { return nil }); err != nil {
				return err
			}

			p := a.printer(cmd)
			if p.jsonMode {
				return p.json(map[string]string{"backend": a.settings.Backend, "data_dir": dataDir})
			}
			p.success("gardenplan initialized")
			p.labelValue("Data", dataDir)
			return nil
		},
	}
}
