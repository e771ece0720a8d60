package cli

import (
	"github.com/alexanderramin/scoper/internal/config"
	"github.com/alexanderramin/scoper/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects service.ProjectService
	Board    service.BoardService
	State    service.StateService

	// Config supplies the TUI cell sizes.
	Config config.Config

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool

	// RunTUI runs the bubbletea program. Nil runs a real program on the
	// alt screen; tests replace it.
	RunTUI func(m tea.Model) error
}

// NewRootCmd creates the top-level "scoper" command and registers all
// subcommands against the provided App. Without arguments on a terminal it
// opens the board.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "scoper",
		Short:         "Scope projects on a week and day timeline",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive == nil || !app.IsInteractive() {
				return cmd.Help()
			}
			return runTUI(cmd.Context(), app, "")
		},
	}

	root.AddCommand(
		newBoardCmd(app),
		newProjectCmd(app),
		newCategoryCmd(app),
		newTaskCmd(app),
		newLayoutCmd(app),
	)

	return root
}

// addProjectFlag registers the shared --project flag.
func addProjectFlag(flags *pflag.FlagSet, target *string) {
	flags.StringVarP(target, "project", "p", "", "Project ID, ID prefix or name (default: selected project)")
}

func newBoardCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the interactive timeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, project)
			if err != nil {
				return err
			}
			return runTUI(cmd.Context(), app, p.ID)
		},
	}

	addProjectFlag(cmd.Flags(), &project)
	return cmd
}
