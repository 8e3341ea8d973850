package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/store"
	"github.com/sandeepkv93/todo/internal/views"
)

const shortIDLen = 8

// updatedAter is implemented by backends that record when a key was written.
type updatedAter interface {
	UpdatedAt(ctx context.Context, key string) (time.Time, bool, error)
}

func newAddCommand(a *app) *cobra.Command {
	var priority int
	cmd := &cobra.Command{
		Use:   "add <description...>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := a.store.Add(cmd.Context(), strings.Join(args, " "), model.Priority(priority))
			if store.IsRejected(err) {
				return fmt.Errorf("%s: %w", views.FormErrorText, err)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s %s\n", shortID(task.ID), task.Description)
			return nil
		},
	}
	cmd.Flags().IntVarP(&priority, "priority", "p", int(model.PriorityMedium), "1 high, 2 medium, 3 low")
	return cmd
}

func newDoneCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := a.store.Resolve(args[0])
			if err != nil {
				return err
			}
			if task.Completed {
				fmt.Fprintf(cmd.OutOrStdout(), "already done %s %s\n", shortID(task.ID), task.Description)
				return nil
			}
			if err := a.store.Complete(cmd.Context(), task.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "completed %s %s\n", shortID(task.ID), task.Description)
			return nil
		},
	}
}

func newEditCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <description...>",
		Short: "Replace a task's description",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := a.store.Resolve(args[0])
			if err != nil {
				return err
			}
			if err := a.store.Edit(cmd.Context(), task.ID, strings.Join(args[1:], " ")); err != nil {
				return err
			}
			updated, _ := a.store.Get(task.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "updated %s %s\n", shortID(updated.ID), updated.Description)
			return nil
		},
	}
}

func newRemoveCommand(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := a.store.Resolve(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !yes && !confirm(cmd.InOrStdin(), out, fmt.Sprintf("delete %q? [y/N] ", task.Description)) {
				fmt.Fprintln(out, "delete cancelled")
				return nil
			}
			if err := a.store.Delete(cmd.Context(), task.ID); err != nil {
				return err
			}
			fmt.Fprintf(out, "deleted %s %s\n", shortID(task.ID), task.Description)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newListCommand(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List tasks by priority",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tasks := a.store.List()
			out := cmd.OutOrStdout()
			if asJSON {
				blob, err := store.Export(tasks)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, blob)
				return nil
			}
			if len(tasks) == 0 {
				fmt.Fprintln(out, "no tasks yet")
				return nil
			}
			fmt.Fprintln(out, renderTable(tasks))
			if src, ok := a.kv.(updatedAter); ok {
				at, found, err := src.UpdatedAt(cmd.Context(), a.store.Key())
				if err != nil {
					a.logger.Warn("read save time", "err", err)
				} else if found {
					fmt.Fprintf(out, "saved %s\n", at.Local().Format("2006-01-02 15:04:05"))
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the stored JSON form")
	return cmd
}

func newResetCommand(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every task under the storage key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("reset removes every task; pass --yes to confirm")
			}
			if err := a.kv.Delete(cmd.Context(), a.store.Key()); err != nil {
				return fmt.Errorf("reset %q: %w", a.store.Key(), err)
			}
			a.logger.Info("task list reset", "key", a.store.Key())
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d tasks\n", a.store.Len())
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}

func renderTable(tasks []model.Task) string {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		done := ""
		if t.Completed {
			done = "x"
		}
		rows = append(rows, []string{
			shortID(t.ID),
			done,
			t.Priority.String(),
			t.Description,
			t.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "DONE", "PRI", "TASK", "CREATED").
		Rows(rows...).
		String()
}

func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}
