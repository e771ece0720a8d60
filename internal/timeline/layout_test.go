package timeline

import (
	"testing"

	"github.com/alexanderramin/scoper/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cellMetrics = Metrics{RowHeight: 4, HandleWidth: 1}

func sampleFrame() Frame {
	return Frame{
		TotalWeeks: 12,
		Categories: []domain.Category{{ID: "strategy"}, {ID: "design"}},
		Tasks: []domain.Task{
			{ID: "a", CategoryID: "strategy", StartWeek: 1, Duration: 2},
			{ID: "b", CategoryID: "strategy", StartWeek: 2, Duration: 2},
			{ID: "c", CategoryID: "design", StartWeek: 5, Duration: 1},
			{ID: "orphan", CategoryID: "deleted", StartWeek: 1, Duration: 1},
		},
		ContainerWidth: 120,
		Metrics:        cellMetrics,
	}
}

func TestCompute_GridAndItems(t *testing.T) {
	b := Compute(sampleFrame())
	assert.Equal(t, 12, b.Grid.TotalColumns)
	assert.Equal(t, 10.0, b.Grid.ColWidth)
	assert.False(t, b.Grid.IsDayView)
	require.Len(t, b.Items, 3, "orphan excluded")

	a, ok := b.Find("a")
	require.True(t, ok)
	assert.Equal(t, Rect{Top: 0, Left: 0, Width: 20, Height: 2}, a.Rect)
	bItem, _ := b.Find("b")
	assert.Equal(t, Rect{Top: 2, Left: 10, Width: 20, Height: 2}, bItem.Rect)
	c, _ := b.Find("c")
	assert.Equal(t, 1, c.RowIndex)
	assert.Equal(t, Rect{Top: 4, Left: 40, Width: 10, Height: 4}, c.Rect)
	assert.Equal(t, 1, b.Lanes["design"])
}

func TestCompute_UnmeasuredHasNoItems(t *testing.T) {
	f := sampleFrame()
	f.ContainerWidth = 0
	b := Compute(f)
	assert.False(t, b.Grid.Measured())
	assert.Empty(t, b.Items)
	assert.Equal(t, 2, b.Lanes["strategy"], "lanes are still packed")
}

func TestCompute_TransientReplacesStoredTask(t *testing.T) {
	f := sampleFrame()
	moved := f.Tasks[1]
	moved.CategoryID = "design"
	moved.StartWeek = 8
	f.Transient = &moved

	b := Compute(f)
	item, ok := b.Find("b")
	require.True(t, ok)
	assert.True(t, item.Dragging)
	assert.False(t, item.Dimmed)
	assert.Equal(t, 1, item.RowIndex)
	assert.Equal(t, 70.0, item.Rect.Left)
	assert.Equal(t, 1, b.Lanes["strategy"], "strategy no longer needs a second lane")

	other, _ := b.Find("a")
	assert.True(t, other.Dimmed)

	// The stored slice is not touched.
	assert.Equal(t, "strategy", f.Tasks[1].CategoryID)
}

func TestHitTest(t *testing.T) {
	b := Compute(sampleFrame())

	hit := b.HitTest(5, 1) // inside "a", left part
	assert.Equal(t, HitTask, hit.Kind)
	assert.Equal(t, "a", hit.TaskID)

	hit = b.HitTest(19.5, 1) // last cell of "a"
	assert.Equal(t, HitResize, hit.Kind)
	assert.Equal(t, "a", hit.TaskID)

	hit = b.HitTest(95, 5) // design row, column 10
	assert.Equal(t, HitCell, hit.Kind)
	assert.Equal(t, "design", hit.CategoryID)
	assert.Equal(t, 10, hit.Column)
	assert.Equal(t, 10.0, hit.StartWeek)

	assert.Equal(t, HitNone, b.HitTest(500, 1).Kind, "past the last column")
	assert.Equal(t, HitNone, b.HitTest(5, 100).Kind, "below the last row")
	assert.Equal(t, HitNone, b.HitTest(-1, 1).Kind)
}

func TestHitTest_OccupiedCellOutsideRect(t *testing.T) {
	// "b" occupies columns 2-3 in lane 1; the lane 0 gap at column 3 is
	// still an occupied cell of the row.
	b := Compute(sampleFrame())
	assert.Equal(t, HitNone, b.HitTest(25, 1).Kind)
}

func TestHitTest_DayViewCell(t *testing.T) {
	f := Frame{
		TotalWeeks:     1,
		Categories:     []domain.Category{{ID: "only"}},
		ContainerWidth: 70,
		Metrics:        cellMetrics,
	}
	b := Compute(f)
	hit := b.HitTest(35, 0)
	require.Equal(t, HitCell, hit.Kind)
	assert.Equal(t, 4, hit.Column)
	assert.InDelta(t, 1+3.0/7, hit.StartWeek, 1e-12)
}

func TestCellOccupied(t *testing.T) {
	tasks := []domain.Task{{ID: "x", CategoryID: "c", StartWeek: 2, Duration: 2}}
	assert.False(t, CellOccupied(tasks, "c", 1, false))
	assert.True(t, CellOccupied(tasks, "c", 2, false))
	assert.True(t, CellOccupied(tasks, "c", 3, false))
	assert.False(t, CellOccupied(tasks, "c", 4, false), "end is exclusive")
	assert.False(t, CellOccupied(tasks, "other", 2, false))

	half := []domain.Task{{ID: "h", CategoryID: "c", StartWeek: 1, Duration: 0.5}}
	assert.True(t, CellOccupied(half, "c", 3, true))
	assert.True(t, CellOccupied(half, "c", 4, true), "3.5 day span covers the start of day 4")
	assert.False(t, CellOccupied(half, "c", 5, true))
}

func TestHitKindString(t *testing.T) {
	assert.Equal(t, "resize", HitResize.String())
	assert.Equal(t, "none", HitNone.String())
}

func stackedFrame(rowHeight int) Frame {
	return Frame{
		TotalWeeks: 4,
		Categories: []domain.Category{{ID: "strategy"}, {ID: "design", Position: 1}},
		Tasks: []domain.Task{
			{ID: "a", CategoryID: "strategy", StartWeek: 1, Duration: 3},
			{ID: "b", CategoryID: "strategy", StartWeek: 1, Duration: 2},
			{ID: "c", CategoryID: "strategy", StartWeek: 1, Duration: 1},
		},
		ContainerWidth: 80,
		Metrics:        CellMetrics(rowHeight),
	}
}

func TestCompute_CellRowsGrowToFitLanes(t *testing.T) {
	b := Compute(stackedFrame(2))
	require.Equal(t, 3, b.Lanes["strategy"])
	assert.Equal(t, 3.0, b.Grid.RowHeight, "three lanes need three lines")
	assert.Equal(t, 3.0, b.Metrics.RowHeight)

	tops := map[float64]string{}
	for _, it := range b.Items {
		assert.Equal(t, 1.0, it.Rect.Height, "task %s", it.Task.ID)
		tops[it.Rect.Top] = it.Task.ID
	}
	assert.Len(t, tops, 3, "every lane has its own line")

	// The next row starts below the grown one.
	hit := b.HitTest(5.5, 3.5)
	assert.Equal(t, HitCell, hit.Kind)
	assert.Equal(t, "design", hit.CategoryID)
}

func TestCompute_CellLanesAreWholeLines(t *testing.T) {
	b := Compute(stackedFrame(4))
	assert.Equal(t, 4.0, b.Grid.RowHeight)

	for line := 0; line < 3; line++ {
		hit := b.HitTest(0.5, float64(line)+0.5)
		require.Equal(t, HitTask, hit.Kind, "line %d", line)
		it, ok := b.Find(hit.TaskID)
		require.True(t, ok)
		assert.Equal(t, float64(line), it.Rect.Top, "line %d hits the block drawn there", line)
		assert.Equal(t, 1.0, it.Rect.Height)
	}

	// Leftover line below the lanes is occupied at column 1, so it is neither
	// a block nor a free cell.
	assert.Equal(t, HitNone, b.HitTest(0.5, 3.5).Kind)
}

func TestCompute_PixelRowsKeepFixedHeight(t *testing.T) {
	f := stackedFrame(0)
	f.Metrics = PixelMetrics
	b := Compute(f)
	assert.Equal(t, PixelMetrics.RowHeight, b.Grid.RowHeight)
	a, _ := b.Find("a")
	assert.InDelta(t, 72.0/3-8, a.Rect.Height, 1e-9)
}
