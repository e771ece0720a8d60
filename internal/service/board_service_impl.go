package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/scoper/internal/db"
	"github.com/alexanderramin/scoper/internal/domain"
	"github.com/alexanderramin/scoper/internal/repository"
	"github.com/alexanderramin/scoper/internal/timeline"
	"github.com/google/uuid"
)

type boardService struct {
	projects   repository.ProjectRepo
	categories repository.CategoryRepo
	tasks      repository.TaskRepo
	uow        db.UnitOfWork
	observer   UseCaseObserver
}

func NewBoardService(
	projects repository.ProjectRepo,
	categories repository.CategoryRepo,
	tasks repository.TaskRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) BoardService {
	return &boardService{
		projects:   projects,
		categories: categories,
		tasks:      tasks,
		uow:        uow,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *boardService) Snapshot(ctx context.Context, projectID string) (*Snapshot, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	cats, err := s.categories.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Project: p, Categories: cats, Tasks: tasks}, nil
}

// UpdateTask applies patch in a single transaction. A category change must
// stay within the task's project.
func (s *boardService) UpdateTask(ctx context.Context, taskID string, patch domain.TaskPatch) (task *domain.Task, err error) {
	startedAt := time.Now()
	fields := patchFields(taskID, patch)
	defer func() { observe(ctx, s.observer, "update-task", startedAt, fields, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var txErr error
		task, txErr = applyPatch(ctx, tx, taskID, patch)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func applyPatch(ctx context.Context, tx db.DBTX, taskID string, patch domain.TaskPatch) (*domain.Task, error) {
	txTasks := repository.NewSQLiteTaskRepo(tx)
	t, err := txTasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return t, nil
	}

	if patch.CategoryID != nil && *patch.CategoryID != t.CategoryID {
		c, err := repository.NewSQLiteCategoryRepo(tx).GetByID(ctx, *patch.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("moving task to category: %w", err)
		}
		if c.ProjectID != t.ProjectID {
			return nil, fmt.Errorf("category %s belongs to another project", c.ID)
		}
	}

	patch.Apply(t)
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := txTasks.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func patchFields(taskID string, patch domain.TaskPatch) map[string]any {
	fields := map[string]any{"task_id": taskID}
	if patch.StartWeek != nil {
		fields["start_week"] = *patch.StartWeek
	}
	if patch.Duration != nil {
		fields["duration"] = *patch.Duration
	}
	if patch.CategoryID != nil {
		fields["category_id"] = *patch.CategoryID
	}
	return fields
}

// AddTask creates a default task whose length is one grid column.
func (s *boardService) AddTask(ctx context.Context, projectID, categoryID string, startWeek float64) (task *domain.Task, err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": projectID, "category_id": categoryID, "start_week": startWeek}
	defer func() { observe(ctx, s.observer, "add-task", startedAt, fields, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		p, err := repository.NewSQLiteProjectRepo(tx).GetByID(ctx, projectID)
		if err != nil {
			return err
		}
		c, err := repository.NewSQLiteCategoryRepo(tx).GetByID(ctx, categoryID)
		if err != nil {
			return err
		}
		if c.ProjectID != p.ID {
			return fmt.Errorf("category %s belongs to another project", c.ID)
		}

		t := &domain.Task{
			ID:         uuid.New().String(),
			ProjectID:  p.ID,
			CategoryID: c.ID,
			Name:       domain.DefaultTaskName,
			StartWeek:  startWeek,
			Duration:   timeline.DefaultTaskDuration(timeline.IsDayView(p.TotalWeeks)),
		}
		if err := t.Validate(); err != nil {
			return err
		}
		if err := repository.NewSQLiteTaskRepo(tx).Create(ctx, t); err != nil {
			return err
		}
		task = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *boardService) AddCategory(ctx context.Context, projectID string) (category *domain.Category, err error) {
	startedAt := time.Now()
	defer func() { observe(ctx, s.observer, "add-category", startedAt, map[string]any{"project_id": projectID}, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := repository.NewSQLiteProjectRepo(tx).GetByID(ctx, projectID); err != nil {
			return err
		}
		txCategories := repository.NewSQLiteCategoryRepo(tx)
		pos, err := txCategories.NextPosition(ctx, projectID)
		if err != nil {
			return err
		}
		c := &domain.Category{
			ID:        uuid.New().String(),
			ProjectID: projectID,
			Name:      domain.DefaultCategoryName,
			Position:  pos,
		}
		if err := txCategories.Create(ctx, c); err != nil {
			return err
		}
		category = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (s *boardService) RenameCategory(ctx context.Context, categoryID, name string) (err error) {
	startedAt := time.Now()
	defer func() { observe(ctx, s.observer, "rename-category", startedAt, map[string]any{"category_id": categoryID}, err) }()

	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("category name must not be empty")
	}
	return s.categories.Rename(ctx, categoryID, name)
}

func (s *boardService) RenameTask(ctx context.Context, taskID, name string) (*domain.Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("task name must not be empty")
	}
	return s.UpdateTask(ctx, taskID, domain.TaskPatch{Name: &name})
}

func (s *boardService) ToggleDeliverable(ctx context.Context, taskID string) (task *domain.Task, err error) {
	startedAt := time.Now()
	defer func() { observe(ctx, s.observer, "toggle-deliverable", startedAt, map[string]any{"task_id": taskID}, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		current, err := repository.NewSQLiteTaskRepo(tx).GetByID(ctx, taskID)
		if err != nil {
			return err
		}
		flipped := !current.IsDeliverable
		task, err = applyPatch(ctx, tx, taskID, domain.TaskPatch{IsDeliverable: &flipped})
		return err
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *boardService) DeleteTask(ctx context.Context, taskID string) (err error) {
	startedAt := time.Now()
	defer func() { observe(ctx, s.observer, "delete-task", startedAt, map[string]any{"task_id": taskID}, err) }()

	return s.tasks.Delete(ctx, taskID)
}
