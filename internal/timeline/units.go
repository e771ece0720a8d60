// Package timeline is the layout engine behind the scoping grid: unit
// conversion between weeks and grid columns, lane packing, rectangle
// geometry, hit testing and the drag state machine. Everything here is a
// pure function of its inputs except Controller, which holds one gesture.
package timeline

import "fmt"

// DaysPerWeek is the number of day columns per week in day view.
const DaysPerWeek = 7

// dayViewMaxWeeks is the longest project still shown at day granularity.
const dayViewMaxWeeks = 2

// IsDayView reports whether a project of the given length is shown with one
// column per day instead of one column per week.
func IsDayView(totalWeeks int) bool {
	return totalWeeks <= dayViewMaxWeeks
}

// TotalColumns returns the number of grid columns for a project.
func TotalColumns(totalWeeks int) int {
	if IsDayView(totalWeeks) {
		return totalWeeks * DaysPerWeek
	}
	return totalWeeks
}

// WeekToColumn maps a 1-based week coordinate to a 1-based column coordinate.
func WeekToColumn(startWeek float64, dayView bool) float64 {
	if dayView {
		return (startWeek-1)*DaysPerWeek + 1
	}
	return startWeek
}

// ColumnToWeek is the exact inverse of WeekToColumn.
func ColumnToWeek(startCol float64, dayView bool) float64 {
	if dayView {
		return (startCol-1)/DaysPerWeek + 1
	}
	return startCol
}

// DurationToColumns scales a duration in weeks to columns.
func DurationToColumns(duration float64, dayView bool) float64 {
	if dayView {
		return duration * DaysPerWeek
	}
	return duration
}

// ColumnsToDuration scales a column span back to weeks.
func ColumnsToDuration(cols float64, dayView bool) float64 {
	if dayView {
		return cols / DaysPerWeek
	}
	return cols
}

// DefaultTaskDuration is one column expressed in weeks: a day in day view,
// a week otherwise.
func DefaultTaskDuration(dayView bool) float64 {
	return ColumnsToDuration(1, dayView)
}

// ColumnLabel returns the header label for a 1-based column ("D3", "W3").
func ColumnLabel(col int, dayView bool) string {
	if dayView {
		return fmt.Sprintf("D%d", col)
	}
	return fmt.Sprintf("W%d", col)
}

// IsWeekend reports whether a 1-based day column falls on the last two days
// of its week. Only meaningful in day view.
func IsWeekend(col int) bool {
	day := (col - 1) % DaysPerWeek
	return day >= 5
}
