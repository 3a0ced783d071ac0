package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "check [dir]",
		Short: "Parse and validate every level in a directory",
		Long: `Loads every level file under the directory (default: the configured
level_dir), then checks each parsed level for problems the parser does not
reject: ragged grids, negative counts, bad laser directions, coordinates off
the board, and more movable blocks than open cells.

Exits non-zero if any level fails.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := g.catalog(args)
			if err := cat.Load(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, name := range cat.Names() {
				entry, _ := cat.Get(name)
				if entry.Err != nil {
					failed++
					fmt.Fprintf(out, "FAIL     %s: %v\n", name, entry.Err)
					continue
				}
				if err := entry.Level.Validate(); err != nil {
					failed++
					fmt.Fprintf(out, "INVALID  %s: %v\n", name, err)
					continue
				}
				fmt.Fprintf(out, "ok       %s\n", name)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d levels have problems", failed, cat.Len())
			}
			return nil
		},
	}
}
