package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/scoper/internal/cli/formatter"
	"github.com/alexanderramin/scoper/internal/domain"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectUseCmd(app),
		newProjectRenameCmd(app),
		newProjectWeeksCmd(app),
		newProjectCostCmd(app),
		newProjectRemoveCmd(app),
		newProjectTemplatesCmd(app),
		newProjectInitCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var template string

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Create a project and select it",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := strings.Join(args, " ")

			var (
				p   *domain.Project
				err error
			)
			if template != "" {
				p, err = app.Projects.CreateFromTemplate(ctx, template, name)
			} else {
				if name == "" {
					return fmt.Errorf("project name is required (or use --template)")
				}
				p, err = app.Projects.Create(ctx, name)
			}
			if err != nil {
				return err
			}
			if err := app.State.SelectProject(ctx, p.ID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s [%s]\n", p.Name, p.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "", "Template ID, name or number from 'project templates'")
	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projects, err := app.Projects.List(ctx)
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No projects. Run 'scoper project init' to create the demo project."))
				return nil
			}
			selected, err := app.State.SelectedProject(ctx)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProjectList(projects, selected))
			return nil
		},
	}
}

func newProjectUseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use <project>",
		Short: "Select the project other commands operate on",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.State.SelectProject(ctx, p.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Selected project %s [%s]\n", p.Name, p.DisplayID())
			return nil
		},
	}
}

func newProjectRenameCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "rename <name>",
		Short: "Rename a project",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, project)
			if err != nil {
				return err
			}
			name := strings.Join(args, " ")
			if err := app.Projects.Rename(ctx, p.ID, name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed project %s to %s\n", p.Name, strings.TrimSpace(name))
			return nil
		},
	}

	addProjectFlag(cmd.Flags(), &project)
	return cmd
}

func newProjectWeeksCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "weeks <n>",
		Short: "Set the timeline length in weeks (1 or 2 weeks shows days)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			weeks, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid week count %q: %w", args[0], err)
			}
			p, err := resolveProject(ctx, app, project)
			if err != nil {
				return err
			}
			if err := app.Projects.SetTotalWeeks(ctx, p.ID, weeks); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s now spans %d weeks\n", p.Name, weeks)
			return nil
		},
	}

	addProjectFlag(cmd.Flags(), &project)
	return cmd
}

func newProjectCostCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "cost <amount>",
		Short: "Set the project's cost estimate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cost, err := strconv.ParseFloat(strings.ReplaceAll(args[0], ",", ""), 64)
			if err != nil {
				return fmt.Errorf("invalid cost %q: %w", args[0], err)
			}
			p, err := resolveProject(ctx, app, project)
			if err != nil {
				return err
			}
			if err := app.Projects.SetCost(ctx, p.ID, cost); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s cost set to %s\n", p.Name, formatter.FormatCost(cost))
			return nil
		},
	}

	addProjectFlag(cmd.Flags(), &project)
	return cmd
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <project>",
		Short: "Delete a project with its stages and tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			replacement, err := app.Projects.Delete(ctx, p.ID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Deleted project %s\n", p.Name)
			if replacement != nil {
				fmt.Fprintf(out, "Created %s [%s] in its place\n", replacement.Name, replacement.DisplayID())
			}
			return nil
		},
	}
}

func newProjectTemplatesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List built-in project templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			templates := app.Projects.Templates()
			rows := make([][]string, 0, len(templates))
			for i, s := range templates {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					s.ID,
					formatter.Bold(s.Name),
					strconv.Itoa(s.TotalWeeks),
					strconv.Itoa(len(s.Tasks)),
					formatter.FormatCost(s.Cost),
				})
			}
			table := formatter.NewTable("#", "ID", "NAME", "WEEKS", "TASKS", "COST").AlignRight(0, 3, 4, 5)
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderBox("Templates", table.Render(rows)))
			return nil
		},
	}
}

func newProjectInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the demo project when the store is empty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := activeProject(ctx, app, "")
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Active project: %s [%s]\n", p.Name, p.DisplayID())
			return nil
		},
	}
}
