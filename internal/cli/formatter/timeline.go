package formatter

import (
	"math"
	"strings"

	"github.com/alexanderramin/scoper/internal/timeline"
	"github.com/charmbracelet/lipgloss"
)

// TimelineOptions controls how a board is drawn in the terminal.
type TimelineOptions struct {
	LabelWidth int
	Selected   string // task ID drawn highlighted
	HoverRow   int    // category row under the pointer, -1 for none
}

type cellKind int

const (
	cellEmpty cellKind = iota
	cellWeekend
	cellWeekLine
	cellBlock
	cellHandle
)

// cellStyle is the comparable key used to merge adjacent cells into runs.
type cellStyle struct {
	kind     cellKind
	row      int
	selected bool
	dragging bool
	dimmed   bool
}

type cell struct {
	r     rune
	style cellStyle
}

// GridWidth returns the drawn width of the task area in cells.
func GridWidth(b timeline.Board) int {
	if !b.Grid.Measured() {
		return 0
	}
	return int(math.Round(b.Grid.ColWidth * float64(b.Grid.TotalColumns)))
}

// RowLines returns how many terminal lines one category row occupies.
func RowLines(b timeline.Board) int {
	return max(int(math.Ceil(b.Grid.RowHeight)), 1)
}

// RenderColumnHeader renders the D1.. or W1.. label line above the grid.
// Labels that would collide with the previous one are skipped.
func RenderColumnHeader(b timeline.Board, labelWidth int) string {
	width := GridWidth(b)
	line := []rune(strings.Repeat(" ", width))
	weekend := make([]bool, width)
	next := 0
	for c := 1; c <= b.Grid.TotalColumns; c++ {
		pos := int(math.Round(float64(c-1) * b.Grid.ColWidth))
		label := []rune(timeline.ColumnLabel(c, b.Grid.IsDayView))
		if pos < next || pos+len(label) > width {
			continue
		}
		copy(line[pos:], label)
		isWeekend := b.Grid.IsDayView && timeline.IsWeekend(c)
		for i := range label {
			weekend[pos+i] = isWeekend
		}
		next = pos + len(label) + 1
	}

	var out strings.Builder
	out.WriteString(strings.Repeat(" ", labelWidth))
	start := 0
	for i := 1; i <= width; i++ {
		if i < width && weekend[i] == weekend[start] {
			continue
		}
		seg := string(line[start:i])
		if weekend[start] {
			out.WriteString(StyleDim.Render(seg))
		} else {
			out.WriteString(StyleHeader.Render(seg))
		}
		start = i
	}
	return out.String()
}

// RenderTimeline draws category labels and task blocks, one category row
// per RowLines(b) lines.
func RenderTimeline(b timeline.Board, opts TimelineOptions) string {
	width := GridWidth(b)
	lines := RowLines(b)
	height := len(b.Categories) * lines
	canvas := make([][]cell, height)
	for y := range canvas {
		canvas[y] = make([]cell, width)
		for x := range canvas[y] {
			canvas[y][x] = cell{r: ' ', style: cellStyle{kind: cellEmpty, row: y / lines}}
		}
	}

	paintBackground(canvas, b, width)
	for _, it := range b.Items {
		paintItem(canvas, it, opts.Selected == it.Task.ID, width)
	}

	var out strings.Builder
	for y := 0; y < height; y++ {
		row := y / lines
		out.WriteString(renderLabel(b, row, y%lines == 0, opts))
		writeRuns(&out, canvas[y])
		if y < height-1 {
			out.WriteString("\n")
		}
	}
	return out.String()
}

func paintBackground(canvas [][]cell, b timeline.Board, width int) {
	for c := 1; c <= b.Grid.TotalColumns; c++ {
		x0 := int(math.Round(float64(c-1) * b.Grid.ColWidth))
		x1 := min(int(math.Round(float64(c)*b.Grid.ColWidth)), width)
		weekStart := !b.Grid.IsDayView || (c-1)%timeline.DaysPerWeek == 0
		weekend := b.Grid.IsDayView && timeline.IsWeekend(c)
		for y := range canvas {
			for x := x0; x < x1; x++ {
				switch {
				case weekStart && x == x0 && c > 1:
					canvas[y][x].r = '┊'
					canvas[y][x].style.kind = cellWeekLine
				case weekend:
					canvas[y][x].style.kind = cellWeekend
				}
			}
		}
	}
}

func paintItem(canvas [][]cell, it timeline.Item, selected bool, width int) {
	x0 := int(math.Round(it.Rect.Left))
	x1 := min(int(math.Round(it.Rect.Right())), width)
	if x1 <= x0 {
		x1 = min(x0+1, width)
	}
	y0 := int(math.Floor(it.Rect.Top))
	y1 := min(int(math.Floor(it.Rect.Bottom())), len(canvas))
	if y1 <= y0 {
		y1 = min(y0+1, len(canvas))
	}
	if x0 >= width || y0 >= len(canvas) {
		return
	}

	style := cellStyle{kind: cellBlock, row: it.RowIndex, selected: selected, dragging: it.Dragging, dimmed: it.Dimmed}
	handle := style
	handle.kind = cellHandle

	label := it.Task.Name
	if it.Task.IsDeliverable {
		label = "★ " + label
	}
	text := []rune(Truncate(label, max(x1-x0-1, 1)))

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c := cell{r: ' ', style: style}
			if x == x1-1 && x1-x0 > 1 {
				c = cell{r: '▐', style: handle}
			} else if y == y0 && x-x0 < len(text) {
				c.r = text[x-x0]
			}
			canvas[y][x] = c
		}
	}
}

func renderLabel(b timeline.Board, row int, first bool, opts TimelineOptions) string {
	if opts.LabelWidth <= 0 {
		return ""
	}
	text := ""
	if first {
		text = b.Categories[row].Name
	}
	padded := PadRight(" "+text, opts.LabelWidth-1) + " "
	style := lipgloss.NewStyle().Foreground(CategoryColor(row))
	if row == opts.HoverRow {
		style = style.Bold(true)
	}
	return style.Render(padded)
}

func writeRuns(out *strings.Builder, line []cell) {
	start := 0
	for i := 1; i <= len(line); i++ {
		if i < len(line) && line[i].style == line[start].style {
			continue
		}
		var seg strings.Builder
		for _, c := range line[start:i] {
			seg.WriteRune(c.r)
		}
		out.WriteString(styleFor(line[start].style).Render(seg.String()))
		start = i
	}
}

func styleFor(s cellStyle) lipgloss.Style {
	switch s.kind {
	case cellWeekend:
		return lipgloss.NewStyle().Background(ColorShade)
	case cellWeekLine:
		return StyleDim
	case cellBlock, cellHandle:
		color := CategoryColor(s.row)
		if s.dimmed {
			return lipgloss.NewStyle().Background(ColorShade).Foreground(color)
		}
		st := lipgloss.NewStyle().Background(color).Foreground(ColorBg)
		if s.kind == cellHandle {
			st = st.Foreground(ColorFg)
		}
		if s.selected || s.dragging {
			st = st.Bold(true)
		}
		if s.selected && s.kind == cellBlock {
			st = st.Underline(true)
		}
		return st
	default:
		return lipgloss.NewStyle()
	}
}
