package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/lazorkit/parser"
)

func newFmtCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "fmt <file>",
		Short: "Print a level file in canonical form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := g.parser().ParseFile(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), parser.Format(lvl))
			return err
		},
	}
}
