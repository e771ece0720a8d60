package cli

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/alexanderramin/scoper/internal/cli/formatter"
	"github.com/alexanderramin/scoper/internal/domain"
	"github.com/alexanderramin/scoper/internal/service"
	"github.com/alexanderramin/scoper/internal/timeline"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// timelineChromeLines is the summary line plus the column header line drawn
// above the grid inside the view.
const timelineChromeLines = 2

// boardLoadedMsg carries a freshly read snapshot of the active project.
type boardLoadedMsg struct {
	snapshot *service.Snapshot
	snap     bool
	err      error
}

// boardChangedMsg reports the outcome of a store mutation started from the
// board. The board reloads on receipt either way.
type boardChangedMsg struct {
	text     string
	selected string
	err      error
}

// gridMeasuredMsg delivers the width of the task area after a resize. Until
// the first one arrives the board has no column width.
type gridMeasuredMsg struct {
	width int
}

func measureGrid(width int) tea.Cmd {
	return func() tea.Msg { return gridMeasuredMsg{width: width} }
}

var timelineKeys = struct {
	Snap, Stage, Rename, RenameStage, Deliverable, Delete, Next, Longer, Shorter, Projects key.Binding
}{
	Snap:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "snap")),
	Stage:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "stage")),
	Rename:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
	RenameStage: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "rename stage")),
	Deliverable: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "deliverable")),
	Delete:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
	Next:        key.NewBinding(key.WithKeys("tab", "shift+tab")),
	Longer:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "weeks")),
	Shorter:     key.NewBinding(key.WithKeys("-", "_")),
	Projects:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "projects")),
}

// timelineView is the interactive week/day grid for the active project.
type timelineView struct {
	state    *SharedState
	snapshot *service.Snapshot
	snap     bool
	loading  bool
	err      error

	gridWidth int // measured task-area width in cells
	board     timeline.Board
	drag      timeline.Controller
	selected  string
	hoverRow  int

	vp viewport.Model
}

func newTimelineView(state *SharedState) *timelineView {
	vp := viewport.New(0, 0)
	vp.KeyMap = viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
		Up:       key.NewBinding(key.WithKeys("up")),
		Down:     key.NewBinding(key.WithKeys("down")),
	}
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 1

	return &timelineView{
		state:    state,
		loading:  true,
		hoverRow: -1,
		vp:       vp,
	}
}

func (v *timelineView) ID() ViewID    { return ViewTimeline }
func (v *timelineView) Title() string { return "Timeline" }

func (v *timelineView) ShortHelp() []key.Binding {
	return []key.Binding{
		timelineKeys.Snap,
		timelineKeys.Stage,
		timelineKeys.Rename,
		timelineKeys.Deliverable,
		timelineKeys.Delete,
		timelineKeys.Longer,
		timelineKeys.Projects,
	}
}

func (v *timelineView) Init() tea.Cmd {
	cmds := []tea.Cmd{v.loadBoard()}
	if v.state.Width > 0 {
		cmds = append(cmds, measureGrid(v.state.Width-v.labelWidth()))
	}
	return tea.Batch(cmds...)
}

func (v *timelineView) labelWidth() int {
	return v.state.App.Config.LabelWidth
}

func (v *timelineView) metrics() timeline.Metrics {
	return timeline.CellMetrics(v.state.App.Config.RowHeight)
}

func (v *timelineView) loadBoard() tea.Cmd {
	app := v.state.App
	preferred := v.state.ActiveProjectID
	return func() tea.Msg {
		ctx := context.Background()
		p, err := activeProject(ctx, app, preferred)
		if err != nil {
			return boardLoadedMsg{err: err}
		}
		snapshot, err := app.Board.Snapshot(ctx, p.ID)
		if err != nil {
			return boardLoadedMsg{err: err}
		}
		snap, err := app.State.SnapToGrid(ctx)
		return boardLoadedMsg{snapshot: snapshot, snap: snap, err: err}
	}
}

// mutate runs fn against the store and reports the result as a boardChangedMsg.
func (v *timelineView) mutate(fn func(ctx context.Context, app *App) (boardChangedMsg, error)) tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		msg, err := fn(context.Background(), app)
		if err != nil {
			return boardChangedMsg{err: err}
		}
		return msg
	}
}

// rebuild recomputes the layout from the snapshot, the measured width and
// any drag in progress.
func (v *timelineView) rebuild() {
	if v.snapshot == nil {
		v.board = timeline.Board{}
		return
	}
	v.board = timeline.Compute(timeline.Frame{
		TotalWeeks:     v.snapshot.Project.TotalWeeks,
		Categories:     v.snapshot.Categories,
		Tasks:          v.snapshot.Tasks,
		Transient:      v.drag.TransientPtr(),
		ContainerWidth: float64(v.gridWidth),
		Metrics:        v.metrics(),
	})
	v.vp.SetContent(formatter.RenderTimeline(v.board, formatter.TimelineOptions{
		LabelWidth: v.labelWidth(),
		Selected:   v.selected,
		HoverRow:   v.hoverRow,
	}))
}

func (v *timelineView) geometry() timeline.Geometry {
	return timeline.Geometry{
		TotalWeeks: v.snapshot.Project.TotalWeeks,
		ColWidth:   v.board.Grid.ColWidth,
		RowHeight:  v.board.Grid.RowHeight,
		Categories: v.snapshot.Categories,
		Snap:       v.snap,
	}
}

func (v *timelineView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.vp.Width = msg.Width
		v.vp.Height = max(v.state.ContentHeight()-timelineChromeLines, 1)
		// The new width only takes effect once measured, like a layout pass.
		return v, measureGrid(msg.Width - v.labelWidth())

	case gridMeasuredMsg:
		v.gridWidth = max(msg.width, 0)
		v.rebuild()
		return v, nil

	case boardLoadedMsg:
		v.loading = false
		v.err = msg.err
		if msg.err != nil {
			return v, nil
		}
		v.snapshot = msg.snapshot
		v.snap = msg.snap
		v.state.SetActiveProjectFrom(msg.snapshot.Project)
		if _, ok := v.findTask(v.selected); !ok {
			v.selected = ""
		}
		v.rebuild()
		return v, nil

	case boardChangedMsg:
		if msg.selected != "" {
			v.selected = msg.selected
		}
		cmds := []tea.Cmd{v.loadBoard()}
		if msg.err != nil {
			cmds = append(cmds, flashError(msg.err))
		} else if msg.text != "" {
			cmds = append(cmds, flash(msg.text))
		}
		return v, tea.Batch(cmds...)

	case refreshViewMsg:
		return v, v.loadBoard()

	case tea.MouseMsg:
		return v.updateMouse(msg)

	case tea.KeyMsg:
		if v.snapshot == nil {
			return v, nil
		}
		return v.updateKey(msg)
	}
	return v, nil
}

// gridPoint converts a screen cell to task-area coordinates.
func (v *timelineView) gridPoint(msg tea.MouseMsg) (float64, float64) {
	x := msg.X - v.labelWidth()
	y := msg.Y - appHeaderLines - timelineChromeLines + v.vp.YOffset
	return float64(x), float64(y)
}

func (v *timelineView) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if v.snapshot == nil {
		return v, nil
	}
	if tea.MouseEvent(msg).IsWheel() {
		var cmd tea.Cmd
		v.vp, cmd = v.vp.Update(msg)
		return v, cmd
	}

	x, y := v.gridPoint(msg)
	// Hit tests use the centre of the cell under the pointer.
	cx, cy := x+0.5, y+0.5

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || v.drag.Active() {
			return v, nil
		}
		hit := v.board.HitTest(cx, cy)
		switch hit.Kind {
		case timeline.HitTask, timeline.HitResize:
			it, ok := v.board.Find(hit.TaskID)
			if !ok {
				return v, nil
			}
			mode := timeline.ModeMove
			if hit.Kind == timeline.HitResize {
				mode = timeline.ModeResize
			}
			v.selected = hit.TaskID
			v.drag.Begin(it.Task, mode, x, y)
			v.rebuild()
		case timeline.HitCell:
			return v, v.addTask(hit.CategoryID, hit.StartWeek)
		}
		return v, nil

	case tea.MouseActionMotion:
		if v.drag.Active() {
			v.drag.Move(x, y, v.geometry())
		} else {
			v.hover(cx, cy)
		}
		v.rebuild()
		return v, nil

	case tea.MouseActionRelease:
		if !v.drag.Active() {
			return v, nil
		}
		u, changed := v.drag.End()
		if !changed {
			v.rebuild()
			return v, nil
		}
		v.applyLocal(u)
		v.rebuild()
		return v, v.commit(u)
	}
	return v, nil
}

// hover tracks the row and task under an idle pointer. The hovered task
// becomes the target of the d, x and r keys.
func (v *timelineView) hover(x, y float64) {
	v.hoverRow = -1
	if rh := v.board.Grid.RowHeight; rh > 0 && x >= 0 && y >= 0 {
		if row := int(math.Floor(y / rh)); row < len(v.board.Categories) {
			v.hoverRow = row
		}
	}
	if hit := v.board.HitTest(x, y); hit.TaskID != "" {
		v.selected = hit.TaskID
	}
}

// applyLocal shows a committed gesture immediately, ahead of the store
// round trip and reload.
func (v *timelineView) applyLocal(u timeline.Update) {
	for i := range v.snapshot.Tasks {
		if v.snapshot.Tasks[i].ID == u.TaskID {
			u.Patch.Apply(&v.snapshot.Tasks[i])
			return
		}
	}
}

func (v *timelineView) commit(u timeline.Update) tea.Cmd {
	return v.mutate(func(ctx context.Context, app *App) (boardChangedMsg, error) {
		_, err := app.Board.UpdateTask(ctx, u.TaskID, u.Patch)
		return boardChangedMsg{}, err
	})
}

func (v *timelineView) addTask(categoryID string, startWeek float64) tea.Cmd {
	projectID := v.snapshot.Project.ID
	return v.mutate(func(ctx context.Context, app *App) (boardChangedMsg, error) {
		t, err := app.Board.AddTask(ctx, projectID, categoryID, startWeek)
		if err != nil {
			return boardChangedMsg{}, err
		}
		return boardChangedMsg{text: "Added " + t.Name, selected: t.ID}, nil
	})
}

func (v *timelineView) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if v.drag.Active() {
		return v, nil
	}
	projectID := v.snapshot.Project.ID

	switch {
	case key.Matches(msg, timelineKeys.Snap):
		v.snap = !v.snap
		snap := v.snap
		return v, v.mutate(func(ctx context.Context, app *App) (boardChangedMsg, error) {
			if err := app.State.SetSnapToGrid(ctx, snap); err != nil {
				return boardChangedMsg{}, err
			}
			return boardChangedMsg{text: "Snap to grid " + onOff(snap)}, nil
		})

	case key.Matches(msg, timelineKeys.Stage):
		return v, v.mutate(func(ctx context.Context, app *App) (boardChangedMsg, error) {
			c, err := app.Board.AddCategory(ctx, projectID)
			if err != nil {
				return boardChangedMsg{}, err
			}
			return boardChangedMsg{text: "Added stage " + c.Name}, nil
		})

	case key.Matches(msg, timelineKeys.Deliverable):
		id := v.selected
		if id == "" {
			return v, nil
		}
		return v, v.mutate(func(ctx context.Context, app *App) (boardChangedMsg, error) {
			t, err := app.Board.ToggleDeliverable(ctx, id)
			if err != nil {
				return boardChangedMsg{}, err
			}
			if t.IsDeliverable {
				return boardChangedMsg{text: t.Name + " marked as deliverable"}, nil
			}
			return boardChangedMsg{text: t.Name + " is no longer a deliverable"}, nil
		})

	case key.Matches(msg, timelineKeys.Delete):
		t, ok := v.findTask(v.selected)
		if !ok {
			return v, nil
		}
		v.selected = ""
		return v, v.mutate(func(ctx context.Context, app *App) (boardChangedMsg, error) {
			if err := app.Board.DeleteTask(ctx, t.ID); err != nil {
				return boardChangedMsg{}, err
			}
			return boardChangedMsg{text: "Deleted " + t.Name}, nil
		})

	case key.Matches(msg, timelineKeys.Rename):
		t, ok := v.findTask(v.selected)
		if !ok {
			return v, nil
		}
		name := t.Name
		form := wizardInputText("Task name", domain.DefaultTaskName, true, &name)
		return v, startWizardCmd(v.state, "Rename task", form, func() tea.Cmd {
			return v.mutate(func(ctx context.Context, app *App) (boardChangedMsg, error) {
				renamed, err := app.Board.RenameTask(ctx, t.ID, name)
				if err != nil {
					return boardChangedMsg{}, err
				}
				return boardChangedMsg{text: "Renamed to " + renamed.Name}, nil
			})
		})

	case key.Matches(msg, timelineKeys.RenameStage):
		c, ok := v.targetCategory()
		if !ok {
			return v, nil
		}
		name := c.Name
		form := wizardInputText("Stage name", domain.DefaultCategoryName, true, &name)
		return v, startWizardCmd(v.state, "Rename stage", form, func() tea.Cmd {
			return v.mutate(func(ctx context.Context, app *App) (boardChangedMsg, error) {
				if err := app.Board.RenameCategory(ctx, c.ID, name); err != nil {
					return boardChangedMsg{}, err
				}
				return boardChangedMsg{text: "Renamed stage"}, nil
			})
		})

	case key.Matches(msg, timelineKeys.Next):
		v.cycleSelection(msg.String() == "shift+tab")
		v.rebuild()
		return v, nil

	case key.Matches(msg, timelineKeys.Longer):
		return v, v.setWeeks(v.snapshot.Project.TotalWeeks + 1)

	case key.Matches(msg, timelineKeys.Shorter):
		return v, v.setWeeks(v.snapshot.Project.TotalWeeks - 1)

	case key.Matches(msg, timelineKeys.Projects):
		return v, pushView(newProjectListView(v.state))
	}

	var cmd tea.Cmd
	v.vp, cmd = v.vp.Update(msg)
	return v, cmd
}

func (v *timelineView) setWeeks(weeks int) tea.Cmd {
	if weeks < 1 || weeks > domain.MaxBoardWeeks {
		return nil
	}
	projectID := v.snapshot.Project.ID
	return v.mutate(func(ctx context.Context, app *App) (boardChangedMsg, error) {
		if err := app.Projects.SetTotalWeeks(ctx, projectID, weeks); err != nil {
			return boardChangedMsg{}, err
		}
		return boardChangedMsg{text: fmt.Sprintf("Timeline is now %d weeks", weeks)}, nil
	})
}

func (v *timelineView) findTask(id string) (domain.Task, bool) {
	if v.snapshot == nil || id == "" {
		return domain.Task{}, false
	}
	for _, t := range v.snapshot.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Task{}, false
}

// targetCategory is the hovered row, falling back to the selected task's row.
func (v *timelineView) targetCategory() (domain.Category, bool) {
	cats := v.snapshot.Categories
	if v.hoverRow >= 0 && v.hoverRow < len(cats) {
		return cats[v.hoverRow], true
	}
	if t, ok := v.findTask(v.selected); ok {
		if i := domain.IndexOfCategory(cats, t.CategoryID); i >= 0 {
			return cats[i], true
		}
	}
	return domain.Category{}, false
}

// cycleSelection moves the selection through the drawn blocks in layout order.
func (v *timelineView) cycleSelection(backward bool) {
	items := v.board.Items
	if len(items) == 0 {
		return
	}
	idx := -1
	for i, it := range items {
		if it.Task.ID == v.selected {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && backward:
		idx = len(items) - 1
	case idx < 0:
		idx = 0
	case backward:
		idx = (idx - 1 + len(items)) % len(items)
	default:
		idx = (idx + 1) % len(items)
	}
	v.selected = items[idx].Task.ID
}

func (v *timelineView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading board...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}

	var b strings.Builder
	b.WriteString(v.renderSummary())
	b.WriteString("\n")
	if !v.board.Grid.Measured() {
		b.WriteString("\n  " + formatter.Dim("Measuring..."))
		return b.String()
	}
	b.WriteString(formatter.RenderColumnHeader(v.board, v.labelWidth()))
	b.WriteString("\n")
	if v.vp.Height > 0 {
		b.WriteString(v.vp.View())
	} else {
		b.WriteString(formatter.RenderTimeline(v.board, formatter.TimelineOptions{
			LabelWidth: v.labelWidth(),
			Selected:   v.selected,
			HoverRow:   v.hoverRow,
		}))
	}
	return b.String()
}

func (v *timelineView) renderSummary() string {
	p := v.snapshot.Project
	unit := "weeks"
	if p.TotalWeeks == 1 {
		unit = "week"
	}
	parts := []string{
		formatter.Bold(p.Name),
		fmt.Sprintf("%d %s", p.TotalWeeks, unit),
		"$" + formatter.FormatCost(p.Cost),
		"snap " + onOff(v.snap),
	}
	if v.drag.Active() {
		if t, ok := v.drag.Transient(); ok {
			parts = append(parts, formatter.StyleYellow.Render(fmt.Sprintf("%s %s: W%s, %s",
				v.drag.Mode(), t.Name, formatter.FormatWeeks(t.StartWeek),
				formatter.FormatDuration(t.Duration, v.board.Grid.IsDayView))))
		}
	} else if t, ok := v.findTask(v.selected); ok {
		parts = append(parts, formatter.Dim(fmt.Sprintf("%s: W%s, %s", t.Name,
			formatter.FormatWeeks(t.StartWeek), formatter.FormatDuration(t.Duration, v.board.Grid.IsDayView))))
	}
	return " " + strings.Join(parts, formatter.Dim(" · "))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
