package main

import (
	"fmt"

	"github.com/nulzo/greencode-advisor/cmd"
	"github.com/nulzo/greencode-advisor/internal/cli"
	"github.com/spf13/cobra"
)

func newVersionCommand(a *app) *cobra.Command {
	var check bool

	c := &cobra.Command{
		Use:   "version",
		Short: "Print the version and look for a newer release",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			fmt.Fprintf(c.OutOrStdout(), "%s %s\n", cli.Banner("greencode"), cmd.AppVersion)

			if !check || !a.cfg.Updates.Check {
				return nil
			}
			latest, outdated, err := cmd.NewUpdateChecker().Latest(c.Context(), cmd.AppVersion)
			switch {
			case err != nil:
				fmt.Fprintf(c.OutOrStdout(), "%s could not check for updates\n", cli.WarningSign())
			case outdated:
				fmt.Fprintf(c.OutOrStdout(), "%s %s is available\n", cli.Arrow(), latest)
			default:
				fmt.Fprintf(c.OutOrStdout(), "%s up to date\n", cli.CheckMark())
			}
			return nil
		},
	}

	c.Flags().BoolVar(&check, "check", true, "check GitHub for a newer release")
	return c
}
