package timeline

import (
	"sort"

	"github.com/alexanderramin/scoper/internal/domain"
)

// Lane is a task's position inside its category row.
type Lane struct {
	Index    int // 0-based sub-row
	NumLanes int // lanes in the category, shared by all of its tasks, >= 1
}

// Layout maps task IDs to lanes across one or more categories.
type Layout map[string]Lane

// CategoryLanes maps category IDs to their lane count, which is at least 1
// even when the category holds no tasks.
type CategoryLanes map[string]int

// PackCategory assigns the tasks of a single category to the fewest lanes
// such that no two tasks in the same lane overlap. Tasks that merely touch
// (one ends where the next starts) may share a lane. It returns the
// assignment and the category's lane count.
//
// Ordering is start ascending, then duration ascending, then ID, so the
// result depends only on the set of tasks and not on input order.
func PackCategory(tasks []domain.Task) (Layout, int) {
	sorted := make([]domain.Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.StartWeek != b.StartWeek {
			return a.StartWeek < b.StartWeek
		}
		if a.Duration != b.Duration {
			return a.Duration < b.Duration
		}
		return a.ID < b.ID
	})

	var laneEnds []float64
	index := make(map[string]int, len(sorted))
	for _, t := range sorted {
		placed := false
		for i, end := range laneEnds {
			if end <= t.StartWeek {
				laneEnds[i] = t.StartWeek + t.Duration
				index[t.ID] = i
				placed = true
				break
			}
		}
		if !placed {
			laneEnds = append(laneEnds, t.StartWeek+t.Duration)
			index[t.ID] = len(laneEnds) - 1
		}
	}

	numLanes := max(len(laneEnds), 1)
	layout := make(Layout, len(index))
	for id, i := range index {
		layout[id] = Lane{Index: i, NumLanes: numLanes}
	}
	return layout, numLanes
}

// PackBoard packs every category independently. Tasks whose category is
// not in categories are left out of the layout so they are never drawn.
func PackBoard(categories []domain.Category, tasks []domain.Task) (Layout, CategoryLanes) {
	byCategory := make(map[string][]domain.Task, len(categories))
	for _, t := range tasks {
		byCategory[t.CategoryID] = append(byCategory[t.CategoryID], t)
	}

	layout := make(Layout, len(tasks))
	lanes := make(CategoryLanes, len(categories))
	for _, c := range categories {
		catLayout, n := PackCategory(byCategory[c.ID])
		for id, l := range catLayout {
			layout[id] = l
		}
		lanes[c.ID] = n
	}
	return layout, lanes
}
