package cli

import (
	"fmt"

	"github.com/alexanderramin/scoper/internal/cli/formatter"
	"github.com/alexanderramin/scoper/internal/timeline"
	"github.com/spf13/cobra"
)

func newLayoutCmd(app *App) *cobra.Command {
	var project string
	var width float64
	var cells bool

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the computed lanes and rectangles of every task",
		Long: `Print the lane assignment and block geometry of the board.

By default rectangles are in pixels for a grid of --width pixels, using the
browser metrics (72px rows, 4px inset, 8px padding). With --cells the
terminal metrics of the board are used instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if width <= 0 {
				return fmt.Errorf("width must be positive, got %g", width)
			}
			snapshot, err := loadSnapshot(cmd.Context(), app, project)
			if err != nil {
				return err
			}

			metrics := timeline.PixelMetrics
			if cells {
				metrics = timeline.CellMetrics(app.Config.RowHeight)
			}
			board := timeline.Compute(timeline.Frame{
				TotalWeeks:     snapshot.Project.TotalWeeks,
				Categories:     snapshot.Categories,
				Tasks:          snapshot.Tasks,
				ContainerWidth: width,
				Metrics:        metrics,
			})
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLayout(board))
			return nil
		},
	}

	addProjectFlag(cmd.Flags(), &project)
	cmd.Flags().Float64VarP(&width, "width", "w", 1200, "Width of the task area")
	cmd.Flags().BoolVar(&cells, "cells", false, "Use the terminal board's cell metrics")
	return cmd
}
