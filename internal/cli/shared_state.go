package cli

import (
	"context"
	"errors"

	"github.com/alexanderramin/scoper/internal/domain"
	"github.com/alexanderramin/scoper/internal/repository"
)

// Lines the app chrome takes around view content: header (title +
// separator), flash line, and status bar (separator + hints).
const (
	appHeaderLines = 2
	appFooterLines = 3
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Active project context
	ActiveProjectID   string
	ActiveProjectName string

	// Terminal dimensions
	Width  int
	Height int
}

// SetActiveProjectFrom sets the active project context from an already-loaded project.
func (s *SharedState) SetActiveProjectFrom(p *domain.Project) {
	s.ActiveProjectID = p.ID
	s.ActiveProjectName = p.Name
}

// ContentHeight returns the available height for view content. It is 0
// while the terminal size is unknown.
func (s *SharedState) ContentHeight() int {
	if s.Height <= 0 {
		return 0
	}
	return max(s.Height-appHeaderLines-appFooterLines, 1)
}

// activeProject resolves the project a command or view should operate on:
// the preferred ID when it still exists, else the persisted selection, else
// the project Init returns. The result is persisted as the selection.
func activeProject(ctx context.Context, app *App, preferred string) (*domain.Project, error) {
	candidates := []string{preferred}
	selected, err := app.State.SelectedProject(ctx)
	if err != nil {
		return nil, err
	}
	candidates = append(candidates, selected)

	for _, id := range candidates {
		if id == "" {
			continue
		}
		p, err := app.Projects.GetByID(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if p.ID != selected {
			if err := app.State.SelectProject(ctx, p.ID); err != nil {
				return nil, err
			}
		}
		return p, nil
	}

	p, err := app.Projects.Init(ctx)
	if err != nil {
		return nil, err
	}
	if err := app.State.SelectProject(ctx, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}
