package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Truncate shortens s to at most width runes, marking the cut with "…".
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

// PadRight pads s with spaces to width runes, truncating if needed.
func PadRight(s string, width int) string {
	s = Truncate(s, width)
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// FormatWeeks renders a week quantity without float noise: "2", "1.5",
// "0.143".
func FormatWeeks(w float64) string {
	return strconv.FormatFloat(math.Round(w*1000)/1000, 'f', -1, 64)
}

// FormatDuration renders a duration in the unit the grid shows: days for
// day view, weeks otherwise.
func FormatDuration(weeks float64, dayView bool) string {
	if dayView {
		days := math.Round(weeks*7*100) / 100
		unit := "days"
		if days == 1 {
			unit = "day"
		}
		return fmt.Sprintf("%s %s", strconv.FormatFloat(days, 'f', -1, 64), unit)
	}
	unit := "weeks"
	if weeks == 1 {
		unit = "week"
	}
	return fmt.Sprintf("%s %s", FormatWeeks(weeks), unit)
}

// FormatCost renders a cost with thousands separators and no currency.
func FormatCost(cost float64) string {
	whole := int64(math.Round(cost))
	neg := whole < 0
	if neg {
		whole = -whole
	}
	digits := strconv.FormatInt(whole, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
