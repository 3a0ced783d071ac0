package cmd

import (
	"github.com/spf13/cobra"

	"github.com/randalmurphal/lazorkit/level"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of parsed levels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeValue(cmd.OutOrStdout(), "json", level.Schema())
		},
	}
}
