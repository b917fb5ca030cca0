package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"webdesk/pkg/server"
)

func newServeCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the desktop JSON API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			d, err := newDesktop(c.cfg, c.log)
			if err != nil {
				return err
			}
			d.Start(ctx)
			defer d.Close()

			api := server.NewAPI(d, c.log, server.APIConfig{
				StaticDir:        c.cfg.Server.StaticDir,
				CORSOrigin:       c.cfg.Server.CORSOrigin,
				MaxStreamClients: c.cfg.Server.StreamClients,
			})
			defer api.Close()
			srv := server.New(server.Config{
				Addr:            c.cfg.Server.Addr,
				Handler:         api,
				ShutdownTimeout: c.cfg.Server.ShutdownTimeout,
				Logger:          c.log,
			})
			return srv.Run(ctx)
		},
	}

	cmd.Flags().String("addr", ":8080", "listen address")
	cmd.Flags().String("static", "", "directory of a front end to serve")
	_ = c.v.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	_ = c.v.BindPFlag("server.static_dir", cmd.Flags().Lookup("static"))
	return cmd
}
