package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/scoper/internal/service"
	"github.com/spf13/cobra"
)

// loadSnapshot reads the board of the project named by the --project value.
func loadSnapshot(ctx context.Context, app *App, project string) (*service.Snapshot, error) {
	p, err := resolveProject(ctx, app, project)
	if err != nil {
		return nil, err
	}
	return app.Board.Snapshot(ctx, p.ID)
}

func newCategoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"stage"},
		Short:   "Manage the stages (rows) of a timeline",
	}

	cmd.AddCommand(
		newCategoryAddCmd(app),
		newCategoryRenameCmd(app),
	)

	return cmd
}

func newCategoryAddCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Append a stage below the existing ones",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, project)
			if err != nil {
				return err
			}
			c, err := app.Board.AddCategory(ctx, p.ID)
			if err != nil {
				return err
			}
			if name := strings.TrimSpace(strings.Join(args, " ")); name != "" {
				if err := app.Board.RenameCategory(ctx, c.ID, name); err != nil {
					return err
				}
				c.Name = name
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added stage #%d %s\n", c.Position+1, c.Name)
			return nil
		},
	}

	addProjectFlag(cmd.Flags(), &project)
	return cmd
}

func newCategoryRenameCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "rename <stage> <name>",
		Short: "Rename a stage (by row number, ID or name)",
		Args:  cobra.MinimumNArgs(2),
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
			name := strings.Join(args[1:], " ")
			if err := app.Board.RenameCategory(ctx, c.ID, name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed stage %s to %s\n", c.Name, strings.TrimSpace(name))
			return nil
		},
	}

	addProjectFlag(cmd.Flags(), &project)
	return cmd
}
