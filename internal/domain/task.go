package domain

import "fmt"

// DefaultTaskName is used for tasks created by clicking an empty cell.
const DefaultTaskName = "New Task"

// Task is a block on the timeline. StartWeek is 1-based and both StartWeek
// and Duration are in week units regardless of display granularity.
type Task struct {
	ID            string
	ProjectID     string
	CategoryID    string
	Name          string
	StartWeek     float64
	Duration      float64
	IsDeliverable bool
}

// Validate checks the structural invariants the layout engine relies on.
func (t *Task) Validate() error {
	if t.CategoryID == "" {
		return fmt.Errorf("task %q has no category", t.ID)
	}
	if t.Duration <= 0 {
		return fmt.Errorf("task duration must be positive, got %g", t.Duration)
	}
	if t.StartWeek < 1 {
		return fmt.Errorf("task start week must be at least 1, got %g", t.StartWeek)
	}
	return nil
}

// End returns the exclusive end of the task in week units.
func (t *Task) End() float64 {
	return t.StartWeek + t.Duration
}

// TaskPatch is a partial update. Nil fields are left untouched.
type TaskPatch struct {
	StartWeek     *float64
	Duration      *float64
	CategoryID    *string
	Name          *string
	IsDeliverable *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.StartWeek == nil && p.Duration == nil && p.CategoryID == nil &&
		p.Name == nil && p.IsDeliverable == nil
}

// Apply copies every non-nil field of the patch onto t.
func (p TaskPatch) Apply(t *Task) {
	if p.StartWeek != nil {
		t.StartWeek = *p.StartWeek
	}
	if p.Duration != nil {
		t.Duration = *p.Duration
	}
	if p.CategoryID != nil {
		t.CategoryID = *p.CategoryID
	}
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.IsDeliverable != nil {
		t.IsDeliverable = *p.IsDeliverable
	}
}
