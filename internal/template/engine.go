package template

import (
	"time"

	"github.com/alexanderramin/scoper/internal/domain"
	"github.com/google/uuid"
)

// GeneratedProject is a template instantiated with fresh IDs, ready to persist.
type GeneratedProject struct {
	Project    *domain.Project
	Categories []domain.Category
	Tasks      []domain.Task
}

// Execute instantiates schema. An empty projectName keeps the template name.
func Execute(schema *Schema, projectName string) *GeneratedProject {
	if projectName == "" {
		projectName = schema.Name
	}
	now := time.Now().UTC()
	p := &domain.Project{
		ID:         uuid.New().String(),
		Name:       projectName,
		Cost:       schema.Cost,
		TotalWeeks: schema.TotalWeeks,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	out := &GeneratedProject{Project: p}
	idByKey := make(map[string]string, len(schema.Categories))
	for i, c := range schema.Categories {
		id := uuid.New().String()
		idByKey[c.Key] = id
		out.Categories = append(out.Categories, domain.Category{
			ID:        id,
			ProjectID: p.ID,
			Name:      c.Name,
			Position:  i,
		})
	}
	for _, t := range schema.Tasks {
		out.Tasks = append(out.Tasks, domain.Task{
			ID:            uuid.New().String(),
			ProjectID:     p.ID,
			CategoryID:    idByKey[t.Category],
			Name:          t.Name,
			StartWeek:     t.StartWeek,
			Duration:      t.Duration,
			IsDeliverable: t.Deliverable,
		})
	}
	return out
}
