package timeline

import "math"

// Metrics are the fixed sizes used to turn lanes into rectangles. Units are
// whatever the renderer draws in: pixels for a browser, cells for a terminal.
type Metrics struct {
	RowHeight   float64 // height of one category row
	Inset       float64 // horizontal gap on each side of a block
	Padding     float64 // vertical space removed from each lane
	HandleWidth float64 // width of the resize handle at a block's right edge

	// LaneUnit, when positive, makes lane heights whole multiples of it and
	// lets rows grow so every lane gets at least one unit. A terminal sets
	// it to 1 so each lane covers whole lines.
	LaneUnit float64
}

// PixelMetrics sizes the board for a browser canvas.
var PixelMetrics = Metrics{RowHeight: 72, Inset: 4, Padding: 8, HandleWidth: 16}

// CellMetrics sizes the board for a terminal with rows of rowHeight lines.
func CellMetrics(rowHeight int) Metrics {
	return Metrics{RowHeight: float64(rowHeight), HandleWidth: 1, LaneUnit: 1}
}

// Rect is an absolute rectangle relative to the top-left of the task area.
type Rect struct {
	Top, Left, Width, Height float64
}

// Right returns the x coordinate of the rectangle's right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns the y coordinate of the rectangle's bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Contains reports whether (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x < r.Right() && y >= r.Top && y < r.Bottom()
}

// Placement is everything the mapper needs to position one task.
type Placement struct {
	RowIndex  int
	Lane      Lane
	StartWeek float64
	Duration  float64
}

// ColumnWidth divides the measured container width across the grid columns.
// It returns 0 when either value is not positive, meaning "not measured".
func ColumnWidth(containerWidth float64, totalColumns int) float64 {
	if containerWidth <= 0 || totalColumns <= 0 {
		return 0
	}
	return containerWidth / float64(totalColumns)
}

// Place maps a placement to a rectangle. ok is false when the block must not
// be drawn: the grid is unmeasured, or the block starts past the last column.
// Blocks running past the last column are clipped; the stored duration is
// not affected.
func Place(p Placement, m Metrics, colWidth float64, totalColumns int, dayView bool) (Rect, bool) {
	if colWidth <= 0 || totalColumns <= 0 {
		return Rect{}, false
	}

	startCol := WeekToColumn(p.StartWeek, dayView)
	if startCol > float64(totalColumns) {
		return Rect{}, false
	}

	durationCols := DurationToColumns(p.Duration, dayView)
	if startCol+durationCols > float64(totalColumns+1) {
		durationCols = float64(totalColumns) - startCol + 1
	}
	durationCols = max(durationCols, 0)

	numLanes := max(p.Lane.NumLanes, 1)
	laneHeight := m.RowHeight / float64(numLanes)
	if m.LaneUnit > 0 {
		laneHeight = math.Floor(laneHeight/m.LaneUnit) * m.LaneUnit
	}

	return Rect{
		Top:    float64(p.RowIndex)*m.RowHeight + float64(p.Lane.Index)*laneHeight,
		Left:   (startCol-1)*colWidth + m.Inset,
		Width:  max(durationCols*colWidth-2*m.Inset, 0),
		Height: max(laneHeight-m.Padding, 0),
	}, true
}
