package testutil

import (
	"time"

	"github.com/alexanderramin/scoper/internal/domain"
	"github.com/google/uuid"
)

// Project options
type ProjectOption func(*domain.Project)

func WithTotalWeeks(weeks int) ProjectOption {
	return func(p *domain.Project) {
		p.TotalWeeks = weeks
	}
}

func WithCost(cost float64) ProjectOption {
	return func(p *domain.Project) {
		p.Cost = cost
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.Project{
		ID:         uuid.New().String(),
		Name:       name,
		Cost:       domain.DefaultProjectCost,
		TotalWeeks: domain.DefaultProjectWeeks,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func NewTestCategory(projectID, name string, position int) *domain.Category {
	return &domain.Category{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      name,
		Position:  position,
	}
}

// Task options
type TaskOption func(*domain.Task)

func WithStart(week float64) TaskOption {
	return func(t *domain.Task) {
		t.StartWeek = week
	}
}

func WithDuration(weeks float64) TaskOption {
	return func(t *domain.Task) {
		t.Duration = weeks
	}
}

func WithDeliverable() TaskOption {
	return func(t *domain.Task) {
		t.IsDeliverable = true
	}
}

func NewTestTask(projectID, categoryID, name string, opts ...TaskOption) *domain.Task {
	t := &domain.Task{
		ID:         uuid.New().String(),
		ProjectID:  projectID,
		CategoryID: categoryID,
		Name:       name,
		StartWeek:  1,
		Duration:   1,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}
