package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// runTUI starts the board on projectID, or on the selected project when
// projectID is empty.
func runTUI(ctx context.Context, app *App, projectID string) error {
	m := newAppModel(app, projectID)
	if app.RunTUI != nil {
		return app.RunTUI(m)
	}
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
