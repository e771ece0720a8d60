package formatter

import (
	"strings"
	"testing"

	"github.com/alexanderramin/scoper/internal/domain"
	"github.com/alexanderramin/scoper/internal/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBoard(totalWeeks int, tasks ...domain.Task) timeline.Board {
	return timeline.Compute(timeline.Frame{
		TotalWeeks: totalWeeks,
		Categories: []domain.Category{
			{ID: "c1", Name: "Strategy", Position: 0},
			{ID: "c2", Name: "Design", Position: 1},
		},
		Tasks:          tasks,
		ContainerWidth: 80,
		Metrics:        timeline.Metrics{RowHeight: 2, HandleWidth: 1},
	})
}

func TestRenderColumnHeader_Weeks(t *testing.T) {
	got := stripANSI(RenderColumnHeader(testBoard(4), 10))

	assert.True(t, strings.HasPrefix(got, strings.Repeat(" ", 10)+"W1"))
	assert.Equal(t, 10+20, strings.Index(got, "W2"))
	assert.Contains(t, got, "W4")
	assert.Len(t, []rune(got), 10+80)
}

func TestRenderColumnHeader_DaysSkipCollisions(t *testing.T) {
	// 14 columns in 80 cells leaves room for every label.
	got := stripANSI(RenderColumnHeader(testBoard(2), 0))
	assert.Contains(t, got, "D1")
	assert.Contains(t, got, "D14")

	// 14 columns in 20 cells cannot fit them all.
	b := testBoard(2)
	b.Grid.ColWidth = 20.0 / 14
	got = stripANSI(RenderColumnHeader(b, 0))
	assert.Contains(t, got, "D1")
	assert.NotContains(t, got, "D2")
}

func TestRenderTimeline_DrawsBlocksInRows(t *testing.T) {
	b := testBoard(4,
		domain.Task{ID: "t1", CategoryID: "c1", Name: "Research", StartWeek: 1, Duration: 2},
		domain.Task{ID: "t2", CategoryID: "c2", Name: "Mockups", StartWeek: 3, Duration: 1, IsDeliverable: true},
	)

	out := stripANSI(RenderTimeline(b, TimelineOptions{LabelWidth: 10, HoverRow: -1}))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4, "two rows of two lines")

	assert.True(t, strings.HasPrefix(lines[0], " Strategy "))
	assert.Equal(t, "", strings.TrimSpace(lines[1][:10]), "label only on the first line of a row")
	assert.True(t, strings.HasPrefix(lines[2], " Design   "))

	first := []rune(lines[0])
	assert.Equal(t, "Research", string(first[10:18]))
	assert.Equal(t, '▐', first[10+39], "handle on the last cell")
	assert.Equal(t, '┊', first[10+40], "week line after the block")

	third := []rune(lines[2])
	assert.Equal(t, "★ Mockups", string(third[50:59]))
}

func TestRenderTimeline_Unmeasured(t *testing.T) {
	b := testBoard(4, domain.Task{ID: "t1", CategoryID: "c1", Name: "Research", StartWeek: 1, Duration: 1})
	b.Grid.ColWidth = 0
	b.Items = nil

	out := stripANSI(RenderTimeline(b, TimelineOptions{LabelWidth: 10, HoverRow: -1}))
	assert.NotContains(t, out, "Research")
	assert.Contains(t, out, "Strategy")
}

func TestFormatTaskList_GroupsByRowAndListsOrphans(t *testing.T) {
	p := &domain.Project{ID: "p1", Name: "Launch", TotalWeeks: 4}
	cats := []domain.Category{{ID: "c1", Name: "Strategy"}, {ID: "c2", Name: "Design", Position: 1}}
	tasks := []domain.Task{
		{ID: "t-design", CategoryID: "c2", Name: "Mockups", StartWeek: 2, Duration: 1},
		{ID: "t-lost", CategoryID: "gone", Name: "Stray", StartWeek: 1, Duration: 1},
		{ID: "t-strat", CategoryID: "c1", Name: "Research", StartWeek: 1, Duration: 1.5, IsDeliverable: true},
	}

	out := stripANSI(FormatTaskList(p, cats, tasks))
	research := strings.Index(out, "Research")
	mockups := strings.Index(out, "Mockups")
	stray := strings.Index(out, "Stray")
	require.True(t, research >= 0 && mockups >= 0 && stray >= 0)
	assert.Less(t, research, mockups)
	assert.Less(t, mockups, stray)
	assert.Contains(t, out, "(missing)")
	assert.Contains(t, out, "1.5 weeks")
	assert.Contains(t, out, "★")
}

func TestFormatTaskList_DayView(t *testing.T) {
	p := &domain.Project{ID: "p1", Name: "Sprint", TotalWeeks: 2}
	cats := []domain.Category{{ID: "c1", Name: "Strategy"}}
	tasks := []domain.Task{{ID: "t1", CategoryID: "c1", Name: "Kickoff", StartWeek: 1 + 8.0/7, Duration: 3.0 / 7}}

	out := stripANSI(FormatTaskList(p, cats, tasks))
	assert.Contains(t, out, "D9")
	assert.Contains(t, out, "3 days")
}

func TestFormatTaskList_Empty(t *testing.T) {
	out := stripANSI(FormatTaskList(&domain.Project{TotalWeeks: 4}, nil, nil))
	assert.Equal(t, "No tasks.\n", out)
}

func TestFormatLayout(t *testing.T) {
	b := testBoard(4,
		domain.Task{ID: "t1", CategoryID: "c1", Name: "Research", StartWeek: 1, Duration: 2},
		domain.Task{ID: "t2", CategoryID: "c1", Name: "Interviews", StartWeek: 2, Duration: 1},
	)

	out := stripANSI(FormatLayout(b))
	assert.Contains(t, out, "view week")
	assert.Contains(t, out, "columns 4")
	assert.Contains(t, out, "column width 20")
	assert.Contains(t, out, "1/2")
	assert.Contains(t, out, "2/2")
}

func TestRenderTimeline_MoreLanesThanLines(t *testing.T) {
	b := timeline.Compute(timeline.Frame{
		TotalWeeks: 4,
		Categories: []domain.Category{
			{ID: "c1", Name: "Strategy", Position: 0},
			{ID: "c2", Name: "Design", Position: 1},
		},
		Tasks: []domain.Task{
			{ID: "a", CategoryID: "c1", Name: "Alpha", StartWeek: 1, Duration: 3},
			{ID: "b", CategoryID: "c1", Name: "Beta", StartWeek: 1, Duration: 2},
			{ID: "g", CategoryID: "c1", Name: "Gamma", StartWeek: 1, Duration: 1},
		},
		ContainerWidth: 80,
		Metrics:        timeline.CellMetrics(2),
	})

	out := stripANSI(RenderTimeline(b, TimelineOptions{LabelWidth: 10, HoverRow: -1}))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 6, "rows grow to three lines for three lanes")

	for _, name := range []string{"Alpha", "Beta", "Gamma"} {
		assert.Equal(t, 1, strings.Count(out, name), "%s drawn once", name)
	}
	for y := 0; y < 3; y++ {
		hit := b.HitTest(2.5, float64(y)+0.5)
		require.Equal(t, timeline.HitTask, hit.Kind, "line %d", y)
		it, ok := b.Find(hit.TaskID)
		require.True(t, ok)
		name := it.Task.Name
		assert.Contains(t, lines[y], name, "line %d shows the block it hits", y)
	}
}
