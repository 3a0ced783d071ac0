package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newWatchCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [dir]",
		Short: "Reparse levels as they change",
		Long: `Loads the level directory, then prints a line for every level file
that is created, modified, or removed until interrupted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cat := g.catalog(args)
			if err := cat.Load(); err != nil {
				return err
			}

			g.logger.Info("watching level dir", slog.String("dir", cat.Dir()), slog.Int("levels", cat.Len()))

			out := cmd.OutOrStdout()
			for ev := range cat.Watch(ctx) {
				switch {
				case ev.Err != nil:
					fmt.Fprintf(out, "%-8s %s: %v\n", ev.Op, ev.Name, ev.Err)
				default:
					fmt.Fprintf(out, "%-8s %s\n", ev.Op, ev.Name)
				}
			}
			return nil
		},
	}
}
