package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/scoper/internal/cli/formatter"
	"github.com/alexanderramin/scoper/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// projectsLoadedMsg signals that project list data has been loaded.
type projectsLoadedMsg struct {
	projects []*domain.Project
	selected string
	err      error
}

// projectChangedMsg reports a mutation made from the project list.
type projectChangedMsg struct {
	text     string
	selectID string // becomes the active project when set
	back     bool   // return to the board afterwards
	err      error
}

// projectListView shows an interactive, navigable list of projects.
type projectListView struct {
	state    *SharedState
	projects []*domain.Project
	selected string
	cursor   int
	loading  bool
	err      error
}

func newProjectListView(state *SharedState) *projectListView {
	return &projectListView{
		state:   state,
		loading: true,
	}
}

func (v *projectListView) ID() ViewID    { return ViewProjectList }
func (v *projectListView) Title() string { return "Projects" }

func (v *projectListView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "new")),
		key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "from template")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
	}
}

func (v *projectListView) Init() tea.Cmd {
	return v.loadProjects()
}

func (v *projectListView) loadProjects() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		ctx := context.Background()
		projects, err := app.Projects.List(ctx)
		if err != nil {
			return projectsLoadedMsg{err: err}
		}
		selected, err := app.State.SelectedProject(ctx)
		return projectsLoadedMsg{projects: projects, selected: selected, err: err}
	}
}

func (v *projectListView) mutate(fn func(ctx context.Context, app *App) (projectChangedMsg, error)) tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		msg, err := fn(context.Background(), app)
		if err != nil {
			return projectChangedMsg{err: err}
		}
		if msg.selectID != "" {
			if err := app.State.SelectProject(context.Background(), msg.selectID); err != nil {
				return projectChangedMsg{err: err}
			}
		}
		return msg
	}
}

func (v *projectListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case projectsLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.projects = msg.projects
		v.selected = msg.selected
		v.cursor = min(v.cursor, max(len(v.projects)-1, 0))
		return v, nil

	case projectChangedMsg:
		if msg.err != nil {
			return v, tea.Batch(flashError(msg.err), v.loadProjects())
		}
		if msg.selectID != "" {
			v.state.ActiveProjectID = msg.selectID
		}
		cmds := []tea.Cmd{flash(msg.text), refreshViews()}
		if msg.back {
			cmds = append(cmds, popView())
		}
		return v, tea.Batch(cmds...)

	case refreshViewMsg:
		return v, v.loadProjects()

	case tea.KeyMsg:
		return v.updateNormal(msg)
	}
	return v, nil
}

func (v *projectListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.projects)-1 {
			v.cursor++
		}
	case "enter":
		if v.cursor < len(v.projects) {
			p := v.projects[v.cursor]
			v.state.SetActiveProjectFrom(p)
			return v, v.mutate(func(context.Context, *App) (projectChangedMsg, error) {
				return projectChangedMsg{text: "Opened " + p.Name, selectID: p.ID, back: true}, nil
			})
		}
	case "a":
		name := ""
		form := wizardInputText("Project name", domain.DefaultProjectName, false, &name)
		return v, startWizardCmd(v.state, "New project", form, func() tea.Cmd {
			return v.mutate(func(ctx context.Context, app *App) (projectChangedMsg, error) {
				if strings.TrimSpace(name) == "" {
					name = domain.DefaultProjectName
				}
				p, err := app.Projects.Create(ctx, name)
				if err != nil {
					return projectChangedMsg{}, err
				}
				return projectChangedMsg{text: "Created " + p.Name, selectID: p.ID}, nil
			})
		})
	case "t":
		var templateID string
		form := wizardSelectTemplate(v.state.App.Projects.Templates(), &templateID)
		if form == nil {
			return v, flash("No templates available.")
		}
		return v, startWizardCmd(v.state, "From template", form, func() tea.Cmd {
			return v.mutate(func(ctx context.Context, app *App) (projectChangedMsg, error) {
				p, err := app.Projects.CreateFromTemplate(ctx, templateID, "")
				if err != nil {
					return projectChangedMsg{}, err
				}
				return projectChangedMsg{text: "Created " + p.Name, selectID: p.ID}, nil
			})
		})
	case "x":
		if v.cursor >= len(v.projects) {
			return v, nil
		}
		p := v.projects[v.cursor]
		confirmed := false
		form := wizardConfirm(fmt.Sprintf("Delete %q and all of its tasks?", p.Name), &confirmed)
		return v, startWizardCmd(v.state, "Delete project", form, func() tea.Cmd {
			if !confirmed {
				return flash(formatter.Dim("Kept " + p.Name))
			}
			return v.mutate(func(ctx context.Context, app *App) (projectChangedMsg, error) {
				if _, err := app.Projects.Delete(ctx, p.ID); err != nil {
					return projectChangedMsg{}, err
				}
				selected, err := app.State.SelectedProject(ctx)
				if err != nil {
					return projectChangedMsg{}, err
				}
				return projectChangedMsg{text: "Deleted " + p.Name, selectID: selected}, nil
			})
		})
	}
	return v, nil
}

func (v *projectListView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading projects...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}

	var b strings.Builder
	b.WriteString("\n")

	if len(v.projects) == 0 {
		b.WriteString("  " + formatter.Dim("No projects yet. Press a to create one.") + "\n")
		return b.String()
	}

	for i, p := range v.projects {
		cursor := "  "
		nameStyle := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			nameStyle = formatter.StyleBold
		}
		active := " "
		if p.ID == v.selected {
			active = formatter.StyleGreen.Render("●")
		}

		b.WriteString(fmt.Sprintf("%s%s %s  %s  %s  %s\n",
			cursor,
			active,
			formatter.Dim(p.DisplayID()),
			nameStyle.Render(formatter.PadRight(formatter.Truncate(p.Name, 28), 28)),
			formatter.PadRight(fmt.Sprintf("%dw", p.TotalWeeks), 4),
			formatter.Dim("$"+formatter.FormatCost(p.Cost)),
		))
	}

	return b.String()
}
