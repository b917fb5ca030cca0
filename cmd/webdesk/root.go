package main

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cli carries what the persistent pre-run loads for every subcommand.
type cli struct {
	v          *viper.Viper
	configPath string
	cfg        config
	log        *logrus.Logger
	// logOut receives log output; the terminal desktop silences it.
	logOut io.Writer
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:           "webdesk",
		Short:         "A simulated desktop: window manager, search, widgets and games",
		Long:          "webdesk runs a simulated desktop session and exposes it as a JSON API for a browser front end or as a terminal desktop.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(c.v, c.configPath)
			if err != nil {
				return err
			}
			out := c.logOut
			if out == nil {
				out = cmd.ErrOrStderr()
			}
			log, err := newLogger(cfg.Log.Level, out)
			if err != nil {
				return err
			}
			c.cfg, c.log = cfg, log
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default $HOME/.config/webdesk/config.toml)")
	flags.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	_ = c.v.BindPFlag("log.level", flags.Lookup("log-level"))

	rootCmd.AddCommand(
		newServeCmd(c),
		newTUICmd(c),
		newAppsCmd(c),
		newVersionCmd(),
	)
	return rootCmd
}
