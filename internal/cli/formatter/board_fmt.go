package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/scoper/internal/domain"
	"github.com/alexanderramin/scoper/internal/timeline"
)

// FormatProjectList renders projects as a table, marking the active one.
func FormatProjectList(projects []*domain.Project, activeID string) string {
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		marker := " "
		if p.ID == activeID {
			marker = StyleGreen.Render("▸")
		}
		rows = append(rows, []string{
			marker,
			TruncID(p.ID),
			Bold(p.Name),
			fmt.Sprintf("%d", p.TotalWeeks),
			FormatCost(p.Cost),
		})
	}
	table := NewTable("", "ID", "NAME", "WEEKS", "COST").AlignRight(3, 4)
	return RenderBox("Projects", table.Render(rows))
}

// FormatTaskList lists a project's tasks grouped by category in row order.
// Tasks whose category no longer exists are listed last.
func FormatTaskList(p *domain.Project, categories []domain.Category, tasks []domain.Task) string {
	dayView := timeline.IsDayView(p.TotalWeeks)
	byCategory := make(map[string][]domain.Task, len(categories))
	for _, t := range tasks {
		byCategory[t.CategoryID] = append(byCategory[t.CategoryID], t)
	}

	var rows [][]string
	for i, c := range categories {
		for _, t := range byCategory[c.ID] {
			rows = append(rows, taskRow(t, c.Name, i, dayView))
		}
		delete(byCategory, c.ID)
	}
	for _, t := range tasks {
		if _, orphan := byCategory[t.CategoryID]; orphan {
			rows = append(rows, taskRow(t, Dim("(missing)"), -1, dayView))
		}
	}

	if len(rows) == 0 {
		return Dim("No tasks.") + "\n"
	}
	table := NewTable("ID", "CATEGORY", "TASK", "START", "LENGTH", "")
	return table.Render(rows)
}

func taskRow(t domain.Task, category string, row int, dayView bool) []string {
	star := ""
	if t.IsDeliverable {
		star = StyleYellow.Render("★")
	}
	catLabel := category
	if row >= 0 {
		catLabel = StyleFg.Foreground(CategoryColor(row)).Render(category)
	}
	start := "W" + FormatWeeks(t.StartWeek)
	if dayView {
		start = "D" + FormatWeeks(timeline.WeekToColumn(t.StartWeek, true))
	}
	return []string{TruncID(t.ID), catLabel, t.Name, start, FormatDuration(t.Duration, dayView), star}
}

// FormatLayout renders the computed lane and rectangle of every item.
func FormatLayout(b timeline.Board) string {
	var sb strings.Builder
	view := "week"
	if b.Grid.IsDayView {
		view = "day"
	}
	fmt.Fprintf(&sb, "%s %s  %s %d  %s %s\n\n",
		Dim("view"), view,
		Dim("columns"), b.Grid.TotalColumns,
		Dim("column width"), FormatWeeks(b.Grid.ColWidth))

	rows := make([][]string, 0, len(b.Items))
	for _, it := range b.Items {
		rows = append(rows, []string{
			it.Task.Name,
			b.Categories[it.RowIndex].Name,
			fmt.Sprintf("%d/%d", it.Lane.Index+1, it.Lane.NumLanes),
			FormatWeeks(it.Rect.Left),
			FormatWeeks(it.Rect.Top),
			FormatWeeks(it.Rect.Width),
			FormatWeeks(it.Rect.Height),
		})
	}
	table := NewTable("TASK", "CATEGORY", "LANE", "LEFT", "TOP", "WIDTH", "HEIGHT").AlignRight(3, 4, 5, 6)
	sb.WriteString(table.Render(rows))
	return sb.String()
}
