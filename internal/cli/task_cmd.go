package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/scoper/internal/cli/formatter"
	"github.com/alexanderramin/scoper/internal/domain"
	"github.com/alexanderramin/scoper/internal/timeline"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage task blocks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskMoveCmd(app),
		newTaskResizeCmd(app),
		newTaskRenameCmd(app),
		newTaskDeliverableCmd(app),
		newTaskRemoveCmd(app),
	)

	return cmd
}

func describeTask(t *domain.Task, dayView bool) string {
	star := ""
	if t.IsDeliverable {
		star = " ★"
	}
	return fmt.Sprintf("%s%s [%s] W%s, %s", t.Name, star, formatter.TruncID(t.ID),
		formatter.FormatWeeks(t.StartWeek), formatter.FormatDuration(t.Duration, dayView))
}

func newTaskAddCmd(app *App) *cobra.Command {
	var project, name, length string
	var deliverable bool

	cmd := &cobra.Command{
		Use:   "add <stage> <start>",
		Short: "Add a task to a stage at a week (3, W3) or day column (D9)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			snapshot, err := loadSnapshot(ctx, app, project)
			if err != nil {
				return err
			}
			c, err := resolveCategory(snapshot, args[0])
			if err != nil {
				return err
			}
			start, err := parseStart(args[1])
			if err != nil {
				return err
			}

			var patch domain.TaskPatch
			if length != "" {
				d, err := parseDuration(length)
				if err != nil {
					return err
				}
				patch.Duration = &d
			}
			if n := strings.TrimSpace(name); n != "" {
				patch.Name = &n
			}
			if deliverable {
				patch.IsDeliverable = &deliverable
			}

			t, err := app.Board.AddTask(ctx, snapshot.Project.ID, c.ID, start)
			if err != nil {
				return err
			}
			if !patch.IsEmpty() {
				if t, err = app.Board.UpdateTask(ctx, t.ID, patch); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s\n",
				describeTask(t, timeline.IsDayView(snapshot.Project.TotalWeeks)), c.Name)
			return nil
		},
	}

	addProjectFlag(cmd.Flags(), &project)
	cmd.Flags().StringVarP(&name, "name", "n", "", "Task name (default \""+domain.DefaultTaskName+"\")")
	cmd.Flags().StringVarP(&length, "length", "l", "", "Length: 2, 2w or 3d (default one grid column)")
	cmd.Flags().BoolVar(&deliverable, "deliverable", false, "Mark the task as a deliverable")
	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's tasks by stage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := loadSnapshot(cmd.Context(), app, project)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskList(snapshot.Project, snapshot.Categories, snapshot.Tasks))
			return nil
		},
	}

	addProjectFlag(cmd.Flags(), &project)
	return cmd
}

func newTaskMoveCmd(app *App) *cobra.Command {
	var project, stage string

	cmd := &cobra.Command{
		Use:   "move <task> <start>",
		Short: "Move a task to a new start, optionally to another stage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			snapshot, err := loadSnapshot(ctx, app, project)
			if err != nil {
				return err
			}
			t, err := resolveTask(snapshot, args[0])
			if err != nil {
				return err
			}
			start, err := parseStart(args[1])
			if err != nil {
				return err
			}
			patch := domain.TaskPatch{StartWeek: &start}
			if stage != "" {
				c, err := resolveCategory(snapshot, stage)
				if err != nil {
					return err
				}
				patch.CategoryID = &c.ID
			}
			updated, err := app.Board.UpdateTask(ctx, t.ID, patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s\n", describeTask(updated, timeline.IsDayView(snapshot.Project.TotalWeeks)))
			return nil
		},
	}

	addProjectFlag(cmd.Flags(), &project)
	cmd.Flags().StringVarP(&stage, "stage", "s", "", "Target stage (row number, ID or name)")
	return cmd
}

func newTaskResizeCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "resize <task> <length>",
		Short: "Change a task's length: 2, 2w or 3d",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			snapshot, err := loadSnapshot(ctx, app, project)
			if err != nil {
				return err
			}
			t, err := resolveTask(snapshot, args[0])
			if err != nil {
				return err
			}
			d, err := parseDuration(args[1])
			if err != nil {
				return err
			}
			updated, err := app.Board.UpdateTask(ctx, t.ID, domain.TaskPatch{Duration: &d})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Resized %s\n", describeTask(updated, timeline.IsDayView(snapshot.Project.TotalWeeks)))
			return nil
		},
	}

	addProjectFlag(cmd.Flags(), &project)
	return cmd
}

func newTaskRenameCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "rename <task> <name>",
		Short: "Rename a task",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			snapshot, err := loadSnapshot(ctx, app, project)
			if err != nil {
				return err
			}
			t, err := resolveTask(snapshot, args[0])
			if err != nil {
				return err
			}
			updated, err := app.Board.RenameTask(ctx, t.ID, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s\n", t.Name, updated.Name)
			return nil
		},
	}

	addProjectFlag(cmd.Flags(), &project)
	return cmd
}

func newTaskDeliverableCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "deliverable <task>",
		Short: "Toggle a task's deliverable marker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			snapshot, err := loadSnapshot(ctx, app, project)
			if err != nil {
				return err
			}
			t, err := resolveTask(snapshot, args[0])
			if err != nil {
				return err
			}
			updated, err := app.Board.ToggleDeliverable(ctx, t.ID)
			if err != nil {
				return err
			}
			state := "is no longer a deliverable"
			if updated.IsDeliverable {
				state = "marked as deliverable"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", updated.Name, state)
			return nil
		},
	}

	addProjectFlag(cmd.Flags(), &project)
	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "remove <task>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			snapshot, err := loadSnapshot(ctx, app, project)
			if err != nil {
				return err
			}
			t, err := resolveTask(snapshot, args[0])
			if err != nil {
				return err
			}
			if err := app.Board.DeleteTask(ctx, t.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", t.Name)
			return nil
		},
	}

	addProjectFlag(cmd.Flags(), &project)
	return cmd
}
