package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/nibzard/tasks/internal/logging"
	"github.com/nibzard/tasks/internal/ui"
)

func newTUICommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive task list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd.Context())
		},
	}
}

// runTUI opens the interactive list. While it owns the screen, logs go
// to the log file in the data directory.
func (a *app) runTUI(ctx context.Context) error {
	logger, closer, err := logging.OpenFile(a.cfg)
	if err != nil {
		a.logger.Warn("logging disabled", "err", err)
		logger = logging.Discard()
	} else {
		defer closer.Close()
	}
	a.logger = logger

	store, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	th, err := a.openTheme(ctx)
	if err != nil {
		return err
	}
	if err := ui.RunTUI(ctx, store, th, ui.WithLogger(logger)); err != nil {
		if errors.Is(err, ui.ErrNotTTY) {
			return userError(err)
		}
		return storageError(err)
	}
	return nil
}
