package timeline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnWidth(t *testing.T) {
	assert.Equal(t, 100.0, ColumnWidth(1200, 12))
	assert.Equal(t, 0.0, ColumnWidth(0, 12))
	assert.Equal(t, 0.0, ColumnWidth(1200, 0))
	assert.Equal(t, 0.0, ColumnWidth(-5, 3))
}

func TestPlace_WeekView(t *testing.T) {
	r, ok := Place(Placement{
		RowIndex:  1,
		Lane:      Lane{Index: 1, NumLanes: 2},
		StartWeek: 3,
		Duration:  2,
	}, PixelMetrics, 100, 12, false)
	require.True(t, ok)
	assert.Equal(t, Rect{Top: 72 + 36, Left: 204, Width: 192, Height: 28}, r)
}

func TestPlace_DayView(t *testing.T) {
	// Week 1.5 is day column 4.5; half a week is 3.5 columns.
	r, ok := Place(Placement{Lane: Lane{NumLanes: 1}, StartWeek: 1.5, Duration: 0.5}, PixelMetrics, 10, 7, true)
	require.True(t, ok)
	assert.InDelta(t, 3.5*10+4, r.Left, 1e-9)
	assert.InDelta(t, 3.5*10-8, r.Width, 1e-9)
	assert.InDelta(t, 64, r.Height, 1e-9)
}

func TestPlace_UnmeasuredGridNotDrawn(t *testing.T) {
	_, ok := Place(Placement{Lane: Lane{NumLanes: 1}, StartWeek: 1, Duration: 1}, PixelMetrics, 0, 12, false)
	assert.False(t, ok)
}

func TestPlace_StartPastLastColumnNotDrawn(t *testing.T) {
	_, ok := Place(Placement{Lane: Lane{NumLanes: 1}, StartWeek: 13, Duration: 1}, PixelMetrics, 100, 12, false)
	assert.False(t, ok)

	_, ok = Place(Placement{Lane: Lane{NumLanes: 1}, StartWeek: 12, Duration: 1}, PixelMetrics, 100, 12, false)
	assert.True(t, ok, "a block starting on the last column is drawn")
}

func TestPlace_TruncatesPastLastColumn(t *testing.T) {
	r, ok := Place(Placement{Lane: Lane{NumLanes: 1}, StartWeek: 11, Duration: 5}, PixelMetrics, 100, 12, false)
	require.True(t, ok)
	assert.Equal(t, 2*100.0-8, r.Width, "clipped to columns 11 and 12")
}

func TestPlace_NeverNegative(t *testing.T) {
	m := Metrics{RowHeight: 2, Inset: 4, Padding: 8}
	r, ok := Place(Placement{Lane: Lane{NumLanes: 3}, StartWeek: 1, Duration: 0.01}, m, 10, 12, false)
	require.True(t, ok)
	assert.Equal(t, 0.0, r.Width)
	assert.Equal(t, 0.0, r.Height)
}

func TestPlace_ZeroLanesTreatedAsOne(t *testing.T) {
	r, ok := Place(Placement{Lane: Lane{NumLanes: 0}, StartWeek: 1, Duration: 1}, PixelMetrics, 100, 12, false)
	require.True(t, ok)
	assert.False(t, math.IsInf(r.Height, 0))
	assert.Equal(t, 64.0, r.Height)
}

func TestRect_Contains(t *testing.T) {
	r := Rect{Top: 10, Left: 10, Width: 5, Height: 5}
	assert.True(t, r.Contains(10, 10))
	assert.True(t, r.Contains(14.9, 14.9))
	assert.False(t, r.Contains(15, 12))
	assert.False(t, r.Contains(12, 9))
}
