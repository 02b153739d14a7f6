package cmd

import (
	"fmt"

	"github.com/irysname/irysname/version"
	"github.com/qri-io/ioes"
	"github.com/spf13/cobra"
)

// NewVersionCommand creates a new command for printing the irysname version
func NewVersionCommand(_ Factory, ioStreams ioes.IOStreams) *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "print the version number",
		Long: `irysname uses semantic versioning.

For updates & further information check https://github.com/irysname/irysname/releases`,
		Annotations: map[string]string{
			"group": "other",
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(ioStreams.Out, version.Summary(verbose))
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print build details")
	return cmd
}
