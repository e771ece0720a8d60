package cli

import (
	"testing"

	"github.com/alexanderramin/scoper/internal/teatest"
)

// Test terminal: a 14-cell label column plus an 80-cell task area, so a
// four-week board has 20-cell columns. Rows are 4 lines tall and the grid
// starts below the app header and the summary and column header lines.
const (
	testWidth   = 94
	testHeight  = 40
	testColCell = 20
	testRowCell = 4
	gridLeft    = 14
	gridTop     = appHeaderLines + timelineChromeLines
)

// TestDriver wraps teatest.Driver with scoper-specific inspection methods.
// It provides access to appModel internals (view stack, shared state,
// the board) that the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver creates a TestDriver from a test App.
// It constructs the appModel, sets terminal size, and drains Init()
// (which loads the board synchronously via in-memory SQLite).
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()

	m := newAppModel(app, "")
	d := teatest.New(t, m, teatest.WithSize(testWidth, testHeight))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

// ── High-level helpers ───────────────────────────────────────────────────────

// Cell returns the screen position of the middle line of a row, at column
// offset dx cells into the task area.
func Cell(dx, row int) (int, int) {
	return gridLeft + dx, gridTop + row*testRowCell + 1
}

// ── scoper-specific inspection ───────────────────────────────────────────────

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ViewStackLen returns the number of views on the stack.
func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// Timeline returns the board at the bottom of the stack.
func (d *TestDriver) Timeline() *timelineView {
	return d.appModel().viewStack[0].(*timelineView)
}

// State returns the shared state pointer.
func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// Flash returns the current notice text.
func (d *TestDriver) Flash() string {
	return d.appModel().flash
}
