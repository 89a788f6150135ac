package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/nulzo/greencode-advisor/internal/cli"
	"github.com/nulzo/greencode-advisor/pkg/api"
	"github.com/spf13/cobra"
)

func newProvidersCommand(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "providers",
		Short: "List the available providers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			infos := a.service.Providers()
			data := make([]api.ProviderInfo, 0, len(infos))
			for _, info := range infos {
				data = append(data, api.ProviderInfo{
					Name:          info.Provider.String(),
					RequiresKey:   info.RequiresKey,
					Mock:          info.Mock,
					HasDefaultKey: a.cfg.DefaultKey(info.Provider) != "",
				})
			}

			if asJSON {
				return cli.PrintJSON(cmd.OutOrStdout(), api.NewList(data))
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PROVIDER\tKEY\tNOTES")
			for _, p := range data {
				key := "-"
				switch {
				case p.RequiresKey && p.HasDefaultKey:
					key = "configured"
				case p.RequiresKey:
					key = "required"
				}
				notes := ""
				if p.Mock {
					notes = "placeholder output"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, key, notes)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
