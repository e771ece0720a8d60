package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/scoper/internal/db"
	"github.com/alexanderramin/scoper/internal/domain"
	"github.com/alexanderramin/scoper/internal/repository"
	tmpl "github.com/alexanderramin/scoper/internal/template"
	"github.com/google/uuid"
)

type projectService struct {
	projects  repository.ProjectRepo
	uow       db.UnitOfWork
	templates *tmpl.Registry
	observer  UseCaseObserver
}

func NewProjectService(
	projects repository.ProjectRepo,
	uow db.UnitOfWork,
	templates *tmpl.Registry,
	observers ...UseCaseObserver,
) ProjectService {
	return &projectService{
		projects:  projects,
		uow:       uow,
		templates: templates,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *projectService) Create(ctx context.Context, name string) (project *domain.Project, err error) {
	startedAt := time.Now()
	defer func() { observe(ctx, s.observer, "create-project", startedAt, map[string]any{"name": name}, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var txErr error
		project, txErr = createDefaultProject(ctx, tx, name)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

// createDefaultProject inserts a project with the default categories using tx.
func createDefaultProject(ctx context.Context, tx db.DBTX, name string) (*domain.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = domain.DefaultProjectName
	}
	now := time.Now().UTC()
	p := &domain.Project{
		ID:         uuid.New().String(),
		Name:       name,
		Cost:       domain.DefaultProjectCost,
		TotalWeeks: domain.DefaultProjectWeeks,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := repository.NewSQLiteProjectRepo(tx).Create(ctx, p); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}
	categories := repository.NewSQLiteCategoryRepo(tx)
	for i, catName := range domain.DefaultCategoryNames {
		c := &domain.Category{ID: uuid.New().String(), ProjectID: p.ID, Name: catName, Position: i}
		if err := categories.Create(ctx, c); err != nil {
			return nil, fmt.Errorf("creating category '%s': %w", catName, err)
		}
	}
	return p, nil
}

func (s *projectService) CreateFromTemplate(ctx context.Context, templateName, projectName string) (project *domain.Project, err error) {
	startedAt := time.Now()
	fields := map[string]any{"template": templateName, "project": projectName}
	defer func() { observe(ctx, s.observer, "create-project-from-template", startedAt, fields, err) }()

	var schema *tmpl.Schema
	schema, err = s.templates.Resolve(templateName)
	if err != nil {
		return nil, err
	}
	generated := tmpl.Execute(schema, strings.TrimSpace(projectName))
	fields["task_count"] = len(generated.Tasks)

	if err = s.persistGenerated(ctx, generated); err != nil {
		return nil, err
	}
	return generated.Project, nil
}

func (s *projectService) persistGenerated(ctx context.Context, generated *tmpl.GeneratedProject) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		txCategories := repository.NewSQLiteCategoryRepo(tx)
		txTasks := repository.NewSQLiteTaskRepo(tx)

		if err := txProjects.Create(ctx, generated.Project); err != nil {
			return fmt.Errorf("creating project: %w", err)
		}
		for i := range generated.Categories {
			if err := txCategories.Create(ctx, &generated.Categories[i]); err != nil {
				return fmt.Errorf("creating category '%s': %w", generated.Categories[i].Name, err)
			}
		}
		for i := range generated.Tasks {
			if err := txTasks.Create(ctx, &generated.Tasks[i]); err != nil {
				return fmt.Errorf("creating task '%s': %w", generated.Tasks[i].Name, err)
			}
		}
		return nil
	})
}

func (s *projectService) Init(ctx context.Context) (project *domain.Project, err error) {
	startedAt := time.Now()
	fields := map[string]any{"seeded": false}
	defer func() { observe(ctx, s.observer, "init", startedAt, fields, err) }()

	var existing []*domain.Project
	existing, err = s.projects.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return existing[0], nil
	}

	seed, ok := s.templates.Seed()
	if !ok {
		return s.Create(ctx, domain.DefaultProjectName)
	}
	generated := tmpl.Execute(seed, "")
	if err = s.persistGenerated(ctx, generated); err != nil {
		return nil, err
	}
	fields["seeded"] = true
	return generated.Project, nil
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.projects.List(ctx)
}

func (s *projectService) Templates() []*tmpl.Schema {
	return s.templates.Templates()
}

func (s *projectService) Rename(ctx context.Context, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("project name must not be empty")
	}
	return s.update(ctx, "rename-project", id, func(p *domain.Project) error {
		p.Name = name
		return nil
	})
}

func (s *projectService) SetCost(ctx context.Context, id string, cost float64) error {
	return s.update(ctx, "set-cost", id, func(p *domain.Project) error {
		if err := domain.ValidateCost(cost); err != nil {
			return err
		}
		p.Cost = cost
		return nil
	})
}

func (s *projectService) SetTotalWeeks(ctx context.Context, id string, weeks int) error {
	return s.update(ctx, "set-total-weeks", id, func(p *domain.Project) error {
		if err := domain.ValidateTotalWeeks(weeks); err != nil {
			return err
		}
		p.TotalWeeks = weeks
		return nil
	})
}

func (s *projectService) update(ctx context.Context, useCase, id string, mutate func(*domain.Project) error) (err error) {
	startedAt := time.Now()
	defer func() { observe(ctx, s.observer, useCase, startedAt, map[string]any{"project_id": id}, err) }()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		p, err := txProjects.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := mutate(p); err != nil {
			return err
		}
		p.UpdatedAt = time.Now().UTC()
		return txProjects.Update(ctx, p)
	})
}

func (s *projectService) Delete(ctx context.Context, id string) (replacement *domain.Project, err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": id}
	defer func() { observe(ctx, s.observer, "delete-project", startedAt, fields, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		txState := repository.NewSQLiteStateRepo(tx)

		if err := txProjects.Delete(ctx, id); err != nil {
			return err
		}
		remaining, err := txProjects.List(ctx)
		if err != nil {
			return err
		}
		next := ""
		if len(remaining) == 0 {
			replacement, err = createDefaultProject(ctx, tx, domain.DefaultProjectName)
			if err != nil {
				return err
			}
			next = replacement.ID
		} else {
			next = remaining[0].ID
		}

		selected, err := txState.Get(ctx, selectedProjectKey)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		if selected == id || selected == "" {
			return txState.Set(ctx, selectedProjectKey, next)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["replaced"] = replacement != nil
	return replacement, nil
}
