package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/scoper/internal/domain"
	"github.com/alexanderramin/scoper/internal/service"
	"github.com/alexanderramin/scoper/internal/timeline"
)

// resolveProject resolves a --project value: an exact ID, a case-insensitive
// name, or a unique ID prefix. An empty input yields the selected project.
func resolveProject(ctx context.Context, app *App, input string) (*domain.Project, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return activeProject(ctx, app, "")
	}

	projects, err := app.Projects.List(ctx)
	if err != nil {
		return nil, err
	}

	// 1. Exact ID match
	for _, p := range projects {
		if p.ID == input {
			return p, nil
		}
	}

	// 2. Name match (case-insensitive)
	for _, p := range projects {
		if strings.EqualFold(p.Name, input) {
			return p, nil
		}
	}

	// 3. ID prefix match
	var matches []*domain.Project
	for _, p := range projects {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("project not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("project ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveCategory resolves a category by 1-based row number, ID, unique ID
// prefix, or case-insensitive name.
func resolveCategory(s *service.Snapshot, input string) (domain.Category, error) {
	input = strings.TrimSpace(input)
	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(s.Categories) {
			return domain.Category{}, fmt.Errorf("stage #%d out of range (1-%d)", n, len(s.Categories))
		}
		return s.Categories[n-1], nil
	}

	var matches []domain.Category
	for _, c := range s.Categories {
		if c.ID == input {
			return c, nil
		}
		if strings.EqualFold(c.Name, input) || strings.HasPrefix(c.ID, input) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return domain.Category{}, fmt.Errorf("stage not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return domain.Category{}, fmt.Errorf("stage %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveTask resolves a task by ID, unique ID prefix, or case-insensitive name.
func resolveTask(s *service.Snapshot, input string) (domain.Task, error) {
	input = strings.TrimSpace(input)

	var matches []domain.Task
	for _, t := range s.Tasks {
		if t.ID == input {
			return t, nil
		}
		if strings.EqualFold(t.Name, input) || strings.HasPrefix(t.ID, input) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return domain.Task{}, fmt.Errorf("task not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return domain.Task{}, fmt.Errorf("task %q is ambiguous (%d matches, use the ID)", input, len(matches))
	}
}

// parseStart reads a start position: a column label ("D9", "W3") or a
// plain 1-based week number, which may be fractional.
func parseStart(input string) (float64, error) {
	s := strings.ToUpper(strings.TrimSpace(input))
	switch {
	case strings.HasPrefix(s, "D"):
		col, err := strconv.ParseFloat(s[1:], 64)
		if err != nil || col < 1 {
			return 0, fmt.Errorf("invalid day column %q", input)
		}
		return timeline.ColumnToWeek(col, true), nil
	case strings.HasPrefix(s, "W"):
		s = s[1:]
	}
	w, err := strconv.ParseFloat(s, 64)
	if err != nil || w < 1 {
		return 0, fmt.Errorf("invalid start %q: use a week >= 1, W3 or D9", input)
	}
	return w, nil
}

// parseDuration reads a length: "3d" for days, "2w" or a plain number for
// weeks.
func parseDuration(input string) (float64, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	perWeek := 1.0
	switch {
	case strings.HasSuffix(s, "d"):
		perWeek = 7
		s = strings.TrimSuffix(s, "d")
	case strings.HasSuffix(s, "w"):
		s = strings.TrimSuffix(s, "w")
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid length %q: use 2, 2w or 3d", input)
	}
	return n / perWeek, nil
}
