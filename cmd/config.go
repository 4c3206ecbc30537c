package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nibzard/tasks/internal/config"
)

func newConfigCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show resolved settings and where each came from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if len(a.cws.Files) == 0 {
				fmt.Fprintln(w, "Config files: none")
			} else {
				fmt.Fprintln(w, "Config files:")
				for _, f := range a.cws.Files {
					fmt.Fprintf(w, "  %s\n", f)
				}
			}
			fmt.Fprintln(w)

			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			for _, f := range a.cws.Fields() {
				fmt.Fprintf(tw, "%s\t%s\t(%s)\n", f.Key, f.Value, f.Source)
			}
			return tw.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "example",
		Short: "Print a commented example config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), config.ExampleConfig())
			return nil
		},
	})

	return cmd
}
