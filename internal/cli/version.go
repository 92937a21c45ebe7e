package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gardenplan/pkg/garden"
)

const modulePath = "github.com/mesh-intelligence/gardenplan"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the gardenplan version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "gardenplan v%s\nmodule: %s\ngo: %s\n", garden.Version, modulePath, runtime.Version())
			return nil
		},
	}
}
