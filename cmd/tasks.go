package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nibzard/tasks/internal/output"
	"github.com/nibzard/tasks/internal/todo"
)

func newAddCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a task to the top of the list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			task, ok, err := store.Add(ctx, strings.Join(args, " "))
			if err != nil {
				return storageError(err)
			}
			if !ok {
				return nil
			}
			a.printTask(cmd.OutOrStdout(), store, task)
			return nil
		},
	}
}

func newListCommand(a *app) *cobra.Command {
	var filter, search string
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List tasks",
		Long: `List tasks, numbered by their position in the full list.

--search only narrows the "all" filter; the active, completed and
favorites filters ignore it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runList(cmd, filter, search)
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "Filter (all, active, completed, favorites)")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Case-insensitive text search")
	return cmd
}

func (a *app) runList(cmd *cobra.Command, filter, search string) error {
	store, err := a.openStore(cmd.Context())
	if err != nil {
		return err
	}
	if filter != "" {
		f, err := todo.ParseFilter(filter)
		if err != nil {
			return userError(err)
		}
		store.SetFilter(f)
	}
	store.SetSearch(search)

	w := cmd.OutOrStdout()
	visible := store.Visible()
	if len(visible) == 0 {
		output.FormatEmpty(w, store.Filter(), store.Search())
		return nil
	}
	output.FormatList(w, store.Tasks(), visible)
	return nil
}

func newDoneCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "done <ref>",
		Aliases: []string{"toggle"},
		Short:   "Toggle a task between active and completed",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(cmd, args[0], func(ctx context.Context, s *todo.Store, t todo.Task) error {
				_, err := s.ToggleCompleted(ctx, t.ID)
				return err
			})
		},
	}
}

func newFavCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "fav <ref>",
		Aliases: []string{"star"},
		Short:   "Toggle a task's favorite mark",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(cmd, args[0], func(ctx context.Context, s *todo.Store, t todo.Task) error {
				_, err := s.ToggleFavorite(ctx, t.ID)
				return err
			})
		},
	}
}

func newEditCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <ref> <text...>",
		Short: "Replace a task's text",
		Long:  "Replace a task's text. Blank text leaves the task unchanged.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args[1:], " ")
			if strings.TrimSpace(text) == "" {
				store, err := a.openStore(cmd.Context())
				if err != nil {
					return err
				}
				if _, err := store.Resolve(args[0]); err != nil {
					return userError(err)
				}
				return nil
			}
			return a.mutate(cmd, args[0], func(ctx context.Context, s *todo.Store, t todo.Task) error {
				_, err := s.Edit(ctx, t.ID, text)
				return err
			})
		},
	}
}

// mutate resolves ref, applies fn and prints the updated task.
func (a *app) mutate(cmd *cobra.Command, ref string, fn func(context.Context, *todo.Store, todo.Task) error) error {
	ctx := cmd.Context()
	store, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	task, err := store.Resolve(ref)
	if err != nil {
		return userError(err)
	}
	if err := fn(ctx, store, task); err != nil {
		return storageError(err)
	}
	updated, _ := store.Task(task.ID)
	a.printTask(cmd.OutOrStdout(), store, updated)
	return nil
}

func newRemoveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <ref>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			task, err := store.Resolve(args[0])
			if err != nil {
				return userError(err)
			}
			if _, err := store.Remove(ctx, task.ID); err != nil {
				return storageError(err)
			}
			a.info(cmd.OutOrStdout(), "Removed: %s\n", output.NormalizeText(task.Text))
			return nil
		},
	}
}

func newClearCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every completed task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			n, err := store.ClearCompleted(ctx)
			if err != nil {
				return storageError(err)
			}
			a.info(cmd.OutOrStdout(), "Cleared %d completed %s\n", n, plural(n, "task", "tasks"))
			return nil
		},
	}
}

func newStatsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show task counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			output.FormatStats(cmd.OutOrStdout(), store.Counts())
			return nil
		},
	}
}

func newExportCommand(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every task as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch strings.ToLower(format) {
			case output.FormatJSON, output.FormatYAML, "yml":
			default:
				return userError(fmt.Errorf("invalid format %q: must be json or yaml", format))
			}
			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			return output.Export(cmd.OutOrStdout(), store.Tasks(), format)
		},
	}
	cmd.Flags().StringVar(&format, "format", output.FormatJSON, "Output format (json|yaml)")
	return cmd
}

// printTask prints t numbered by its position in the full list.
func (a *app) printTask(w io.Writer, s *todo.Store, t todo.Task) {
	if a.cfg.Quiet {
		return
	}
	for i, cur := range s.Tasks() {
		if cur.ID == t.ID {
			output.FormatTask(w, i+1, t)
			return
		}
	}
}

// info prints informational output unless --quiet is set.
func (a *app) info(w io.Writer, format string, args ...any) {
	if a.cfg.Quiet {
		return
	}
	fmt.Fprintf(w, format, args...)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
