package service

import (
	"context"

	"github.com/alexanderramin/scoper/internal/domain"
	tmpl "github.com/alexanderramin/scoper/internal/template"
)

type ProjectService interface {
	// Create makes a project with default cost, length, and categories.
	Create(ctx context.Context, name string) (*domain.Project, error)
	CreateFromTemplate(ctx context.Context, templateName, projectName string) (*domain.Project, error)
	// Init seeds the demo project when the store is empty and returns the
	// project that should be selected.
	Init(ctx context.Context) (*domain.Project, error)
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Templates() []*tmpl.Schema
	Rename(ctx context.Context, id, name string) error
	SetCost(ctx context.Context, id string, cost float64) error
	SetTotalWeeks(ctx context.Context, id string, weeks int) error
	// Delete removes the project. When it was the last one a fresh default
	// project is created and returned; otherwise the returned project is nil.
	Delete(ctx context.Context, id string) (*domain.Project, error)
}

// Snapshot is everything the board needs to render one project.
type Snapshot struct {
	Project    *domain.Project
	Categories []domain.Category
	Tasks      []domain.Task
}

type BoardService interface {
	Snapshot(ctx context.Context, projectID string) (*Snapshot, error)
	UpdateTask(ctx context.Context, taskID string, patch domain.TaskPatch) (*domain.Task, error)
	AddTask(ctx context.Context, projectID, categoryID string, startWeek float64) (*domain.Task, error)
	AddCategory(ctx context.Context, projectID string) (*domain.Category, error)
	RenameCategory(ctx context.Context, categoryID, name string) error
	RenameTask(ctx context.Context, taskID, name string) (*domain.Task, error)
	ToggleDeliverable(ctx context.Context, taskID string) (*domain.Task, error)
	DeleteTask(ctx context.Context, taskID string) error
}

type StateService interface {
	// SelectedProject returns the last selected project ID, or "" if none.
	SelectedProject(ctx context.Context) (string, error)
	SelectProject(ctx context.Context, projectID string) error
	SnapToGrid(ctx context.Context) (bool, error)
	SetSnapToGrid(ctx context.Context, snap bool) error
}
