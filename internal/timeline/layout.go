package timeline

import (
	"math"

	"github.com/alexanderramin/scoper/internal/domain"
)

// Frame is the input for one render: a project snapshot, the in-progress
// drag copy if any, and the measured container width.
type Frame struct {
	TotalWeeks     int
	Categories     []domain.Category
	Tasks          []domain.Task
	Transient      *domain.Task
	ContainerWidth float64
	Metrics        Metrics
}

// Grid describes the column space of the rendered board.
type Grid struct {
	TotalColumns int
	ColWidth     float64
	IsDayView    bool
	RowHeight    float64
}

// Measured reports whether the grid has a usable column width.
func (g Grid) Measured() bool { return g.ColWidth > 0 }

// Item is one drawable task block.
type Item struct {
	Task     domain.Task // current values, transient for the dragged task
	RowIndex int
	Lane     Lane
	Rect     Rect
	Dragging bool
	Dimmed   bool // another task is being dragged
}

// Board is the full layout for one frame.
type Board struct {
	Grid       Grid
	Categories []domain.Category
	Lanes      CategoryLanes
	Items      []Item
	Metrics    Metrics
}

// Compute lays out a frame. The transient task, when present, replaces its
// stored version before packing so the dragged block gets a lane in the
// row it is currently over. Items keep the order of f.Tasks.
func Compute(f Frame) Board {
	dayView := IsDayView(f.TotalWeeks)
	totalCols := TotalColumns(f.TotalWeeks)

	current := make([]domain.Task, len(f.Tasks))
	for i, t := range f.Tasks {
		if f.Transient != nil && f.Transient.ID == t.ID {
			t = *f.Transient
		}
		current[i] = t
	}

	layout, lanes := PackBoard(f.Categories, current)
	metrics := fitRows(f.Metrics, lanes)
	grid := Grid{
		TotalColumns: totalCols,
		ColWidth:     ColumnWidth(f.ContainerWidth, totalCols),
		IsDayView:    dayView,
		RowHeight:    metrics.RowHeight,
	}
	board := Board{Grid: grid, Categories: f.Categories, Lanes: lanes, Metrics: metrics}
	if !grid.Measured() {
		return board
	}

	for _, t := range current {
		row := domain.IndexOfCategory(f.Categories, t.CategoryID)
		lane, ok := layout[t.ID]
		if row < 0 || !ok {
			continue
		}
		rect, ok := Place(Placement{
			RowIndex:  row,
			Lane:      lane,
			StartWeek: t.StartWeek,
			Duration:  t.Duration,
		}, metrics, grid.ColWidth, totalCols, dayView)
		if !ok {
			continue
		}
		dragging := f.Transient != nil && f.Transient.ID == t.ID
		board.Items = append(board.Items, Item{
			Task:     t,
			RowIndex: row,
			Lane:     lane,
			Rect:     rect,
			Dragging: dragging,
			Dimmed:   f.Transient != nil && !dragging,
		})
	}
	return board
}

// fitRows grows the row height so the busiest category still gives every
// lane one LaneUnit. Metrics without a LaneUnit are returned unchanged.
func fitRows(m Metrics, lanes CategoryLanes) Metrics {
	if m.LaneUnit <= 0 {
		return m
	}
	busiest := 1
	for _, n := range lanes {
		busiest = max(busiest, n)
	}
	m.RowHeight = max(m.RowHeight, float64(busiest)*m.LaneUnit)
	return m
}

// Find returns the item for a task ID.
func (b Board) Find(taskID string) (Item, bool) {
	for _, it := range b.Items {
		if it.Task.ID == taskID {
			return it, true
		}
	}
	return Item{}, false
}

// HitKind classifies what lies under the pointer.
type HitKind int

const (
	HitNone HitKind = iota
	HitTask
	HitResize
	HitCell
)

func (k HitKind) String() string {
	switch k {
	case HitTask:
		return "task"
	case HitResize:
		return "resize"
	case HitCell:
		return "cell"
	default:
		return "none"
	}
}

// Hit is the result of HitTest. For HitCell, CategoryID, Column and
// StartWeek identify the empty cell.
type Hit struct {
	Kind       HitKind
	TaskID     string
	CategoryID string
	RowIndex   int
	Column     int
	StartWeek  float64
}

// HitTest resolves a pointer position, relative to the top-left of the task
// area, to a task body, a resize handle, an empty cell or nothing. Blocks
// drawn later win over earlier ones. Occupied cells outside any block's
// rectangle resolve to nothing so a click there never creates a task.
func (b Board) HitTest(x, y float64) Hit {
	if !b.Grid.Measured() || b.Grid.RowHeight <= 0 {
		return Hit{}
	}

	for i := len(b.Items) - 1; i >= 0; i-- {
		it := b.Items[i]
		if !it.Rect.Contains(x, y) {
			continue
		}
		kind := HitTask
		if x >= it.Rect.Right()-b.Metrics.HandleWidth {
			kind = HitResize
		}
		return Hit{Kind: kind, TaskID: it.Task.ID, CategoryID: it.Task.CategoryID, RowIndex: it.RowIndex}
	}

	if x < 0 || y < 0 {
		return Hit{}
	}
	col := int(math.Floor(x/b.Grid.ColWidth)) + 1
	row := int(math.Floor(y / b.Grid.RowHeight))
	if col > b.Grid.TotalColumns || row >= len(b.Categories) {
		return Hit{}
	}

	cat := b.Categories[row]
	tasks := make([]domain.Task, len(b.Items))
	for i, it := range b.Items {
		tasks[i] = it.Task
	}
	if CellOccupied(tasks, cat.ID, col, b.Grid.IsDayView) {
		return Hit{}
	}
	return Hit{
		Kind:       HitCell,
		CategoryID: cat.ID,
		RowIndex:   row,
		Column:     col,
		StartWeek:  ColumnToWeek(float64(col), b.Grid.IsDayView),
	}
}

// CellOccupied reports whether any task of the category covers the 1-based
// column, using the half-open span [start, start+duration) in columns.
func CellOccupied(tasks []domain.Task, categoryID string, column int, dayView bool) bool {
	c := float64(column)
	for _, t := range tasks {
		if t.CategoryID != categoryID {
			continue
		}
		start := WeekToColumn(t.StartWeek, dayView)
		end := start + DurationToColumns(t.Duration, dayView)
		if c >= start && c < end {
			return true
		}
	}
	return false
}
