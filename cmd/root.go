// Package cmd implements the CLI command structure for tasks.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/nibzard/tasks/internal/config"
	"github.com/nibzard/tasks/internal/exitcode"
	"github.com/nibzard/tasks/internal/kv"
	"github.com/nibzard/tasks/internal/logging"
	"github.com/nibzard/tasks/internal/theme"
	"github.com/nibzard/tasks/internal/todo"
	"github.com/nibzard/tasks/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// app holds the state shared by all commands of one invocation.
type app struct {
	flags  *config.Flags
	cws    *config.ConfigWithSources
	cfg    *config.Config
	logger *log.Logger

	kv    kv.Store
	store *todo.Store
	theme *theme.Theme
}

// Run executes the tasks CLI and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{}
	root := newRootCommand(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if cerr := a.close(); cerr != nil && err == nil {
		err = storageError(cerr)
	}
	if err == nil {
		return exitcode.Success
	}
	if ctx.Err() != nil {
		fmt.Fprintln(stderr, "\nInterrupted")
		return exitcode.Interrupted
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return exitCode(err)
}

// NewRootCommand creates the root command for the tasks CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{})
}

func newRootCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Tasks - a persisted task list",
		Long: `Tasks keeps a short list of things to do.

Run without arguments in a terminal to open the interactive list. Every
other command works on the same stored list, so tasks can be scripted:

  tasks add Buy milk
  tasks ls --filter active
  tasks done 1`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if ui.IsTTY(cmd.OutOrStdout()) {
				return a.runTUI(cmd.Context())
			}
			return a.runList(cmd, "", "")
		},
	}

	a.flags = config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(newTUICommand(a))
	cmd.AddCommand(newAddCommand(a))
	cmd.AddCommand(newListCommand(a))
	cmd.AddCommand(newDoneCommand(a))
	cmd.AddCommand(newFavCommand(a))
	cmd.AddCommand(newEditCommand(a))
	cmd.AddCommand(newRemoveCommand(a))
	cmd.AddCommand(newClearCommand(a))
	cmd.AddCommand(newStatsCommand(a))
	cmd.AddCommand(newExportCommand(a))
	cmd.AddCommand(newThemeCommand(a))
	cmd.AddCommand(newConfigCommand(a))
	cmd.AddCommand(newVersionCommand())

	return cmd
}

func (a *app) loadConfig(cmd *cobra.Command) error {
	cws, err := config.LoadWithSources(a.flags)
	if err != nil {
		return storageError(fmt.Errorf("loading config: %w", err))
	}
	a.cws = cws
	a.cfg = cws.Config
	a.logger = logging.NewFromConfig(a.cfg, cmd.ErrOrStderr())
	return nil
}

func (a *app) openKV(ctx context.Context) (kv.Store, error) {
	if a.kv != nil {
		return a.kv, nil
	}
	store, err := kv.Open(ctx, a.cfg)
	if err != nil {
		return nil, storageError(fmt.Errorf("opening %s storage: %w", a.cfg.Backend, err))
	}
	a.logger.Debug("storage opened", "backend", a.cfg.Backend)
	a.kv = store
	return store, nil
}

func (a *app) openStore(ctx context.Context) (*todo.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	store, err := a.openKV(ctx)
	if err != nil {
		return nil, err
	}
	filter, err := todo.ParseFilter(a.cfg.DefaultFilter)
	if err != nil {
		return nil, storageError(err)
	}
	repo := todo.NewKVRepository(store, todo.WithValidation(a.cfg.ValidateOnLoad))
	s, err := todo.Open(ctx, repo, todo.WithLogger(a.logger), todo.WithFilter(filter))
	if err != nil {
		return nil, storageError(fmt.Errorf("loading tasks: %w", err))
	}
	a.store = s
	return s, nil
}

// openTheme loads the dark mode preference. An unreadable stored value
// falls back to light with a warning.
func (a *app) openTheme(ctx context.Context) (*theme.Theme, error) {
	if a.theme != nil {
		return a.theme, nil
	}
	store, err := a.openKV(ctx)
	if err != nil {
		return nil, err
	}
	th, err := theme.Load(ctx, store)
	if err != nil {
		a.logger.Warn("ignoring stored theme", "err", err)
		th = theme.New(store, false)
	}
	a.theme = th
	return th, nil
}

func (a *app) close() error {
	if a.kv == nil {
		return nil
	}
	err := a.kv.Close()
	a.kv = nil
	return err
}

// exitError attaches an exit code to an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error {
	return &exitError{code: exitcode.UserError, err: err}
}

func storageError(err error) error {
	return &exitError{code: exitcode.StorageError, err: err}
}

// exitCode maps err to a process exit code. Errors without an explicit
// code, such as bad flags, are user errors.
func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitcode.UserError
}
