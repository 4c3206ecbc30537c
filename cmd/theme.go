package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nibzard/tasks/internal/theme"
)

func newThemeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [toggle|dark|light]",
		Short:     "Show or change the light/dark theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"toggle", string(theme.Dark), string(theme.Light)},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			th, err := a.openTheme(ctx)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(args) == 0 {
				fmt.Fprintln(w, th.Mode())
				return nil
			}

			if args[0] == "toggle" {
				if _, err := th.Toggle(ctx); err != nil {
					return storageError(err)
				}
			} else {
				mode, err := theme.ParseMode(args[0])
				if err != nil {
					return userError(err)
				}
				if err := th.Set(ctx, mode == theme.Dark); err != nil {
					return storageError(err)
				}
			}
			a.info(w, "%s\n", th.Mode())
			return nil
		},
	}
}
