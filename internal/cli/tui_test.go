package cli

import (
	"context"
	"testing"

	"github.com/alexanderramin/scoper/internal/domain"
	"github.com/alexanderramin/scoper/internal/teatest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func research(t *testing.T, app *App, projectID string) domain.Task {
	t.Helper()
	return taskNamed(t, snapshot(t, app, projectID), "Research")
}

// --- Rendering ---

func TestTUI_RendersBoard(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app)
	d := NewTestDriver(t, app)

	view := d.View()
	assert.Contains(t, view, "Timeline")
	assert.Contains(t, view, "Launch")
	assert.Contains(t, view, "W1")
	assert.Contains(t, view, "W4")
	assert.Contains(t, view, "Strategy")
	assert.Contains(t, view, "Research")
	assert.Contains(t, view, "snap on")
	assert.Equal(t, float64(testColCell), d.Timeline().board.Grid.ColWidth)
}

func TestTUI_DayViewHeader(t *testing.T) {
	app := testApp(t)
	snap := seedBoard(t, app)
	require.NoError(t, app.Projects.SetTotalWeeks(context.Background(), snap.Project.ID, 2))
	d := NewTestDriver(t, app)

	view := d.View()
	assert.Contains(t, view, "D1")
	assert.Contains(t, view, "D14")
	assert.True(t, d.Timeline().board.Grid.IsDayView)
}

func TestTUI_StartsOnDemoProjectWhenEmpty(t *testing.T) {
	app := testApp(t)
	d := NewTestDriver(t, app)

	assert.Equal(t, "Identity + Landing", d.State().ActiveProjectName)
	selected, err := app.State.SelectedProject(context.Background())
	require.NoError(t, err)
	assert.Equal(t, d.State().ActiveProjectID, selected)
}

// --- Mouse gestures ---

func TestTUI_DragMovesTaskOneColumn(t *testing.T) {
	app := testApp(t)
	snap := seedBoard(t, app)
	d := NewTestDriver(t, app)

	x, y := Cell(5, 0)
	d.Drag(x, y, x+21, y)

	moved := research(t, app, snap.Project.ID)
	assert.Equal(t, 2.0, moved.StartWeek)
	assert.Equal(t, 1.0, moved.Duration)
	assert.Equal(t, snap.Categories[0].ID, moved.CategoryID)
	assert.False(t, d.Timeline().drag.Active())
}

func TestTUI_DragShowsTransientUntilRelease(t *testing.T) {
	app := testApp(t)
	snap := seedBoard(t, app)
	d := NewTestDriver(t, app)

	x, y := Cell(5, 0)
	d.MouseDown(x, y)
	d.MouseMove(x+40, y)

	tv := d.Timeline()
	require.True(t, tv.drag.Active())
	it, ok := tv.board.Find(research(t, app, snap.Project.ID).ID)
	require.True(t, ok)
	assert.True(t, it.Dragging)
	assert.Equal(t, 3.0, it.Task.StartWeek)
	assert.Equal(t, 1.0, research(t, app, snap.Project.ID).StartWeek, "store is untouched mid-drag")

	d.MouseUp(x+40, y)
	assert.Equal(t, 3.0, research(t, app, snap.Project.ID).StartWeek)
}

func TestTUI_DragDownChangesStage(t *testing.T) {
	app := testApp(t)
	snap := seedBoard(t, app)
	d := NewTestDriver(t, app)

	x, y := Cell(5, 0)
	d.Drag(x, y, x, y+testRowCell)

	moved := research(t, app, snap.Project.ID)
	assert.Equal(t, snap.Categories[1].ID, moved.CategoryID)
	assert.Equal(t, 1.0, moved.StartWeek)
}

func TestTUI_DragClampsToLastColumn(t *testing.T) {
	app := testApp(t)
	snap := seedBoard(t, app)
	d := NewTestDriver(t, app)

	x, y := Cell(5, 0)
	d.Drag(x, y, testWidth-1, y)

	assert.Equal(t, 4.0, research(t, app, snap.Project.ID).StartWeek)
}

func TestTUI_ResizeFromHandle(t *testing.T) {
	app := testApp(t)
	snap := seedBoard(t, app)
	d := NewTestDriver(t, app)

	// The last cell of the block is its resize handle.
	x, y := Cell(testColCell-1, 0)
	d.Drag(x, y, x+2*testColCell, y)

	resized := research(t, app, snap.Project.ID)
	assert.Equal(t, 1.0, resized.StartWeek)
	assert.Equal(t, 3.0, resized.Duration)
}

func TestTUI_ResizeWithoutSnapKeepsFraction(t *testing.T) {
	app := testApp(t)
	snap := seedBoard(t, app)
	require.NoError(t, app.State.SetSnapToGrid(context.Background(), false))
	d := NewTestDriver(t, app)

	x, y := Cell(testColCell-1, 0)
	d.Drag(x, y, x+10, y)

	assert.Equal(t, 1.5, research(t, app, snap.Project.ID).Duration)
}

func TestTUI_ClickWithoutMovingWritesNothing(t *testing.T) {
	app := testApp(t)
	snap := seedBoard(t, app)
	before := research(t, app, snap.Project.ID)
	d := NewTestDriver(t, app)

	x, y := Cell(5, 0)
	d.Click(x, y)

	after := research(t, app, snap.Project.ID)
	assert.Equal(t, before, after)
	assert.Equal(t, before.ID, d.Timeline().selected)
}

func TestTUI_ClickEmptyCellAddsTask(t *testing.T) {
	app := testApp(t)
	snap := seedBoard(t, app)
	d := NewTestDriver(t, app)

	x, y := Cell(2*testColCell+5, 2)
	d.Click(x, y)

	after := snapshot(t, app, snap.Project.ID)
	require.Len(t, after.Tasks, 2)
	added := taskNamed(t, after, domain.DefaultTaskName)
	assert.Equal(t, snap.Categories[2].ID, added.CategoryID)
	assert.Equal(t, 3.0, added.StartWeek)
	assert.Equal(t, 1.0, added.Duration)
	assert.Equal(t, added.ID, d.Timeline().selected)
	assert.Contains(t, d.Flash(), "Added")
}

func TestTUI_SecondPressDuringDragIsIgnored(t *testing.T) {
	app := testApp(t)
	snap := seedBoard(t, app)
	d := NewTestDriver(t, app)

	x, y := Cell(5, 0)
	d.MouseDown(x, y)
	require.True(t, d.Timeline().drag.Active())

	// An empty cell in the third stage would otherwise add a task.
	ex, ey := Cell(2*testColCell+5, 2)
	d.MouseDown(ex, ey)

	tv := d.Timeline()
	assert.True(t, tv.drag.Active())
	assert.Equal(t, research(t, app, snap.Project.ID).ID, tv.selected)
	assert.Len(t, snapshot(t, app, snap.Project.ID).Tasks, 1)

	d.MouseUp(x, y)
	assert.False(t, d.Timeline().drag.Active())
	assert.Len(t, snapshot(t, app, snap.Project.ID).Tasks, 1)
}

func TestTUI_ClickOutsideGridDoesNothing(t *testing.T) {
	app := testApp(t)
	snap := seedBoard(t, app)
	d := NewTestDriver(t, app)

	d.Click(3, gridTop+1)                      // label column
	d.Click(gridLeft+30, gridTop+5*testRowCell) // below the last stage

	assert.Len(t, snapshot(t, app, snap.Project.ID).Tasks, 1)
}

func TestTUI_PointerIgnoredUntilMeasured(t *testing.T) {
	app := testApp(t)
	snap := seedBoard(t, app)

	m := newAppModel(app, "")
	d := &TestDriver{Driver: teatest.New(t, m)}
	d.DrainInit()

	tv := d.Timeline()
	require.NotNil(t, tv.snapshot)
	assert.False(t, tv.board.Grid.Measured())

	x, y := Cell(5, 0)
	d.Drag(x, y, x+40, y)
	assert.False(t, d.Timeline().drag.Active())
	assert.Equal(t, 1.0, research(t, app, snap.Project.ID).StartWeek)

	d.Resize(testWidth, testHeight)
	assert.True(t, d.Timeline().board.Grid.Measured())
	d.Drag(x, y, x+40, y)
	assert.Equal(t, 3.0, research(t, app, snap.Project.ID).StartWeek)
}

func TestTimelineView_WindowSizeDefersMeasurement(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app)
	state := &SharedState{App: app, Width: testWidth, Height: testHeight}
	tv := newTimelineView(state)
	tv.Update(tv.loadBoard()())

	_, cmd := tv.Update(tea.WindowSizeMsg{Width: testWidth, Height: testHeight})
	require.NotNil(t, cmd)
	assert.False(t, tv.board.Grid.Measured(), "width applies only after measurement")

	msg := cmd()
	require.Equal(t, gridMeasuredMsg{width: testWidth - gridLeft}, msg)
	tv.Update(msg)
	assert.Equal(t, float64(testColCell), tv.board.Grid.ColWidth)

	// A later resize keeps the old width until the new measurement lands.
	_, cmd = tv.Update(tea.WindowSizeMsg{Width: gridLeft + 40, Height: testHeight})
	assert.Equal(t, float64(testColCell), tv.board.Grid.ColWidth)
	tv.Update(cmd())
	assert.Equal(t, 10.0, tv.board.Grid.ColWidth)
}

// --- Keys ---

func TestTUI_SnapToggleIsPersisted(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app)
	d := NewTestDriver(t, app)

	d.PressKey('s')
	snap, err := app.State.SnapToGrid(context.Background())
	require.NoError(t, err)
	assert.False(t, snap)
	assert.False(t, d.Timeline().snap)
	assert.Contains(t, d.View(), "snap off")
}

func TestTUI_AddStage(t *testing.T) {
	app := testApp(t)
	snap := seedBoard(t, app)
	d := NewTestDriver(t, app)

	d.PressKey('n')
	cats := snapshot(t, app, snap.Project.ID).Categories
	require.Len(t, cats, 5)
	assert.Equal(t, domain.DefaultCategoryName, cats[4].Name)
	assert.Contains(t, d.View(), domain.DefaultCategoryName)
}

func TestTUI_HoveredTaskDeliverableAndDelete(t *testing.T) {
	app := testApp(t)
	snap := seedBoard(t, app)
	d := NewTestDriver(t, app)

	x, y := Cell(5, 0)
	d.MouseHover(x, y)
	d.PressKey('d')
	assert.True(t, research(t, app, snap.Project.ID).IsDeliverable)
	assert.Contains(t, d.View(), "★")

	d.PressKey('x')
	assert.Empty(t, snapshot(t, app, snap.Project.ID).Tasks)
	assert.Contains(t, d.Flash(), "Deleted Research")
}

func TestTUI_KeysWithoutTargetDoNothing(t *testing.T) {
	app := testApp(t)
	snap := seedBoard(t, app)
	d := NewTestDriver(t, app)

	d.PressKey('x')
	d.PressKey('d')
	d.PressKey('r')

	assert.Len(t, snapshot(t, app, snap.Project.ID).Tasks, 1)
	assert.Equal(t, ViewTimeline, d.ActiveViewID())
}

func TestTUI_TabCyclesSelection(t *testing.T) {
	app := testApp(t)
	snap := seedBoard(t, app)
	_, err := app.Board.AddTask(context.Background(), snap.Project.ID, snap.Categories[1].ID, 2)
	require.NoError(t, err)
	d := NewTestDriver(t, app)

	d.SendKey(tea.KeyMsg{Type: tea.KeyTab})
	first := d.Timeline().selected
	d.SendKey(tea.KeyMsg{Type: tea.KeyTab})
	second := d.Timeline().selected
	d.SendKey(tea.KeyMsg{Type: tea.KeyTab})

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
	assert.Equal(t, first, d.Timeline().selected)
}

func TestTUI_WeekKeysClampToRange(t *testing.T) {
	app := testApp(t)
	snap := seedBoard(t, app)
	ctx := context.Background()
	d := NewTestDriver(t, app)

	d.PressKey('+')
	assert.Equal(t, 5, snapshot(t, app, snap.Project.ID).Project.TotalWeeks)

	require.NoError(t, app.Projects.SetTotalWeeks(ctx, snap.Project.ID, domain.MaxBoardWeeks))
	d.Send(refreshViewMsg{})
	d.PressKey('+')
	assert.Equal(t, domain.MaxBoardWeeks, snapshot(t, app, snap.Project.ID).Project.TotalWeeks)

	require.NoError(t, app.Projects.SetTotalWeeks(ctx, snap.Project.ID, 1))
	d.Send(refreshViewMsg{})
	d.PressKey('-')
	assert.Equal(t, 1, snapshot(t, app, snap.Project.ID).Project.TotalWeeks)
	assert.True(t, d.Timeline().board.Grid.IsDayView)
}

func TestTUI_RenameOpensFormAndEscCancels(t *testing.T) {
	app := testApp(t)
	snap := seedBoard(t, app)
	d := NewTestDriver(t, app)

	x, y := Cell(5, 0)
	d.MouseHover(x, y)
	d.PressKey('r')
	require.Equal(t, ViewForm, d.ActiveViewID())
	assert.Contains(t, d.View(), "Task name")

	// q is text for the form, not a quit.
	d.PressKey('q')
	assert.False(t, d.Quitting)

	d.PressEsc()
	assert.Equal(t, ViewTimeline, d.ActiveViewID())
	assert.Contains(t, d.Flash(), "Cancelled.")
	assert.Equal(t, "Research", research(t, app, snap.Project.ID).Name)
}

func TestTUI_RenameStageTargetsHoveredRow(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app)
	d := NewTestDriver(t, app)

	x, y := Cell(30, 2)
	d.MouseHover(x, y)
	d.PressKey('c')
	require.Equal(t, ViewForm, d.ActiveViewID())
	assert.Contains(t, d.View(), "Stage name")
	d.PressEsc()
	assert.Equal(t, 1, d.ViewStackLen())
}

func TestTUI_QuitKey(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app)
	d := NewTestDriver(t, app)

	d.PressKey('q')
	assert.True(t, d.Quitting)
}

// --- Project list ---

func TestTUI_ProjectListSwitchesBoard(t *testing.T) {
	app := testApp(t)
	launch := seedBoard(t, app).Project
	other, err := app.Projects.Create(context.Background(), "Other")
	require.NoError(t, err)
	d := NewTestDriver(t, app)

	d.PressKey('p')
	require.Equal(t, ViewProjectList, d.ActiveViewID())
	view := d.View()
	assert.Contains(t, view, "Launch")
	assert.Contains(t, view, "Other")

	d.PressDown()
	d.PressEnter()

	assert.Equal(t, ViewTimeline, d.ActiveViewID())
	assert.Equal(t, other.ID, d.State().ActiveProjectID)
	assert.Equal(t, other.ID, d.Timeline().snapshot.Project.ID)
	assert.Contains(t, d.View(), "Other")

	selected, err := app.State.SelectedProject(context.Background())
	require.NoError(t, err)
	assert.Equal(t, other.ID, selected)

	// Board edits now land on the newly opened project.
	d.PressKey('+')
	assert.Equal(t, 5, snapshot(t, app, other.ID).Project.TotalWeeks)
	assert.Equal(t, 4, snapshot(t, app, launch.ID).Project.TotalWeeks)
}

func TestTUI_ProjectListEscReturnsToBoard(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app)
	d := NewTestDriver(t, app)

	d.PressKey('p')
	assert.Equal(t, 2, d.ViewStackLen())
	d.PressEsc()
	assert.Equal(t, 1, d.ViewStackLen())
	assert.Equal(t, ViewTimeline, d.ActiveViewID())
}

func TestTUI_ProjectListFormsPushWizard(t *testing.T) {
	app := testApp(t)
	seedBoard(t, app)
	d := NewTestDriver(t, app)

	d.PressKey('p')
	for _, k := range []rune{'a', 't', 'x'} {
		d.PressKey(k)
		require.Equal(t, ViewForm, d.ActiveViewID(), "key %q", k)
		d.PressEsc()
		require.Equal(t, ViewProjectList, d.ActiveViewID())
	}

	projects, err := app.Projects.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, projects, 1)
}

func TestTUI_StoreErrorIsFlashed(t *testing.T) {
	app := testApp(t)
	snap := seedBoard(t, app)
	d := NewTestDriver(t, app)

	// The task vanishes behind the board's back.
	require.NoError(t, app.Board.DeleteTask(context.Background(), research(t, app, snap.Project.ID).ID))
	x, y := Cell(5, 0)
	d.Drag(x, y, x+21, y)

	assert.True(t, d.appModel().flashErr)
	assert.Empty(t, d.Timeline().snapshot.Tasks, "board reloads after a failed write")
}
