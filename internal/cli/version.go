package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/seatplan/pkg/buildinfo"
	seatio "github.com/matzehuels/seatplan/pkg/io"
)

// versionCommand prints build information.
func (c *CLI) versionCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				return seatio.WriteJSON(buildinfo.Get(), stdout)
			}
			fmt.Fprintln(stdout, buildinfo.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
