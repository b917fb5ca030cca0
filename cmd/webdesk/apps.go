package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"webdesk/pkg/apps"
)

func newAppsCmd(c *cli) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "apps",
		Short: "Print the application registry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry := apps.Default()
			if c.cfg.Apps.File != "" {
				var err error
				if registry, err = apps.LoadFile(c.cfg.Apps.File); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			switch format {
			case "yaml":
				return registry.Encode(out)
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(registry.Descriptors())
			case "table":
				for _, d := range registry.Descriptors() {
					if _, err := fmt.Fprintf(out, "%-10s %-18s %dx%d\n", d.ID, d.Title, d.DefaultSize.Width, d.DefaultSize.Height); err != nil {
						return err
					}
				}
				return nil
			default:
				return fmt.Errorf("unknown format %q (want table, yaml or json)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", "table", "output format: table, yaml or json")
	return cmd
}
