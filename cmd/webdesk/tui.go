package main

import (
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"webdesk/pkg/tui"
)

func newTUICmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the desktop in the terminal",
		PreRun: func(*cobra.Command, []string) {
			// Log lines would tear the full-screen view.
			c.log.SetOutput(io.Discard)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
			defer stop()

			d, err := newDesktop(c.cfg, c.log)
			if err != nil {
				return err
			}
			d.Start(ctx)
			defer d.Close()

			return tui.Run(ctx, d, os.Stdin, cmd.OutOrStdout())
		},
	}
}
