package timeline

import (
	"math"

	"github.com/alexanderramin/scoper/internal/domain"
)

// State is the drag controller state.
type State int

const (
	StateIdle State = iota
	StateDragging
)

func (s State) String() string {
	if s == StateDragging {
		return "dragging"
	}
	return "idle"
}

// Mode selects what a drag changes.
type Mode int

const (
	ModeMove   Mode = iota // start week and category
	ModeResize             // duration only
)

func (m Mode) String() string {
	if m == ModeResize {
		return "resize"
	}
	return "move"
}

// EventKind is a pointer event type.
type EventKind int

const (
	PointerDown EventKind = iota
	PointerMove
	PointerUp
)

// transitions lists every event a state reacts to. Pairs not listed are
// ignored, which is how a second pointer-down during a drag is refused.
var transitions = map[State]map[EventKind]State{
	StateIdle: {
		PointerDown: StateDragging,
	},
	StateDragging: {
		PointerMove: StateDragging,
		PointerUp:   StateIdle,
	},
}

const (
	// CommitEpsilon is the smallest change, in weeks, that a drag commits.
	CommitEpsilon = 0.01
	// MinFreeDuration is the resize floor in weeks when snapping is off.
	MinFreeDuration = 0.2
)

// Geometry is the grid context a pointer move is interpreted against. It is
// passed per event because the container can be resized mid-gesture.
type Geometry struct {
	TotalWeeks int
	ColWidth   float64
	RowHeight  float64
	Categories []domain.Category
	Snap       bool
}

// Event is a pointer event. Task and Mode are only read for PointerDown.
type Event struct {
	Kind EventKind
	X, Y float64
	Task domain.Task
	Mode Mode
}

// Update is the single store mutation produced by a completed gesture.
type Update struct {
	TaskID string
	Patch  domain.TaskPatch
}

type dragOrigin struct {
	task           domain.Task
	startX, startY float64
}

// Controller turns pointer events into a transient task and, on release, at
// most one Update. It never touches the store itself. The zero value is an
// idle controller.
type Controller struct {
	state     State
	mode      Mode
	origin    dragOrigin
	transient domain.Task
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Mode returns the mode of the active gesture.
func (c *Controller) Mode() Mode { return c.mode }

// Active reports whether a gesture is in progress.
func (c *Controller) Active() bool { return c.state == StateDragging }

// Transient returns the in-progress copy of the dragged task.
func (c *Controller) Transient() (domain.Task, bool) {
	if c.state != StateDragging {
		return domain.Task{}, false
	}
	return c.transient, true
}

// TransientPtr is Transient in the form Frame expects.
func (c *Controller) TransientPtr() *domain.Task {
	if c.state != StateDragging {
		return nil
	}
	t := c.transient
	return &t
}

// Handle routes an event through the transition table. An Update is
// returned only for a PointerUp that ends a gesture with a real change.
func (c *Controller) Handle(ev Event, g Geometry) (Update, bool) {
	next, ok := transitions[c.state][ev.Kind]
	if !ok {
		return Update{}, false
	}
	switch ev.Kind {
	case PointerDown:
		c.begin(ev.Task, ev.Mode, ev.X, ev.Y)
	case PointerMove:
		c.move(ev.X, ev.Y, g)
	case PointerUp:
		u, changed := c.end()
		c.state = next
		return u, changed
	}
	c.state = next
	return Update{}, false
}

// Begin starts a gesture on t. It returns false, leaving the current
// gesture untouched, when a drag is already in progress.
func (c *Controller) Begin(t domain.Task, mode Mode, x, y float64) bool {
	if c.Active() {
		return false
	}
	c.Handle(Event{Kind: PointerDown, X: x, Y: y, Task: t, Mode: mode}, Geometry{})
	return true
}

// Move updates the transient task for a pointer at (x, y). It does nothing
// while idle or while the grid is unmeasured.
func (c *Controller) Move(x, y float64, g Geometry) {
	c.Handle(Event{Kind: PointerMove, X: x, Y: y}, g)
}

// End finishes the gesture. The controller is idle afterwards whether or
// not an Update is returned.
func (c *Controller) End() (Update, bool) {
	return c.Handle(Event{Kind: PointerUp}, Geometry{})
}

func (c *Controller) begin(t domain.Task, mode Mode, x, y float64) {
	c.mode = mode
	c.origin = dragOrigin{task: t, startX: x, startY: y}
	c.transient = t
}

func (c *Controller) move(x, y float64, g Geometry) {
	if g.ColWidth <= 0 || g.TotalWeeks < 1 {
		return
	}
	dayView := IsDayView(g.TotalWeeks)
	totalCols := float64(TotalColumns(g.TotalWeeks))
	colDelta := (x - c.origin.startX) / g.ColWidth
	initial := c.origin.task

	switch c.mode {
	case ModeMove:
		startCol := WeekToColumn(initial.StartWeek, dayView) + colDelta
		if g.Snap {
			startCol = roundHalfUp(startCol)
		}
		durCols := DurationToColumns(c.transient.Duration, dayView)
		startCol = math.Max(1, math.Min(startCol, totalCols-durCols+1))
		c.transient.StartWeek = ColumnToWeek(startCol, dayView)

		if g.RowHeight > 0 && len(g.Categories) > 0 {
			fromRow := domain.IndexOfCategory(g.Categories, initial.CategoryID)
			if fromRow >= 0 {
				rowDelta := int(roundHalfUp((y - c.origin.startY) / g.RowHeight))
				toRow := min(max(fromRow+rowDelta, 0), len(g.Categories)-1)
				c.transient.CategoryID = g.Categories[toRow].ID
			}
		}

	case ModeResize:
		durCols := DurationToColumns(initial.Duration, dayView) + colDelta
		if g.Snap {
			durCols = roundHalfUp(durCols)
		}
		startCol := WeekToColumn(c.transient.StartWeek, dayView)
		minCols := DurationToColumns(MinFreeDuration, dayView)
		if g.Snap {
			minCols = 1
		}
		maxCols := totalCols - startCol + 1
		durCols = math.Max(minCols, math.Min(durCols, maxCols))
		c.transient.Duration = ColumnsToDuration(durCols, dayView)
	}
}

func (c *Controller) end() (Update, bool) {
	orig, tr := c.origin.task, c.transient
	c.origin = dragOrigin{}
	c.transient = domain.Task{}

	changed := math.Abs(tr.StartWeek-orig.StartWeek) > CommitEpsilon ||
		math.Abs(tr.Duration-orig.Duration) > CommitEpsilon ||
		tr.CategoryID != orig.CategoryID
	if !changed {
		return Update{}, false
	}
	return Update{
		TaskID: orig.ID,
		Patch: domain.TaskPatch{
			StartWeek:  &tr.StartWeek,
			Duration:   &tr.Duration,
			CategoryID: &tr.CategoryID,
		},
	}, true
}

// roundHalfUp rounds to the nearest integer, halves toward +Inf.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
