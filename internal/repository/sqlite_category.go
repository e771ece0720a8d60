package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/scoper/internal/db"
	"github.com/alexanderramin/scoper/internal/domain"
)

const categoryColumns = `id, project_id, name, position`

// SQLiteCategoryRepo implements CategoryRepo using a SQLite database.
type SQLiteCategoryRepo struct {
	db db.DBTX
}

// NewSQLiteCategoryRepo creates a new SQLiteCategoryRepo.
func NewSQLiteCategoryRepo(conn db.DBTX) *SQLiteCategoryRepo {
	return &SQLiteCategoryRepo{db: conn}
}

func (r *SQLiteCategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	query := `INSERT INTO categories (` + categoryColumns + `) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, c.ID, c.ProjectID, c.Name, c.Position); err != nil {
		return fmt.Errorf("inserting category: %w", err)
	}
	return nil
}

func (r *SQLiteCategoryRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	var c domain.Category
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = ?`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.ProjectID, &c.Name, &c.Position)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("category %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning category: %w", err)
	}
	return &c, nil
}

// ListByProject returns the project's categories in row order.
func (r *SQLiteCategoryRepo) ListByProject(ctx context.Context, projectID string) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE project_id = ? ORDER BY position, rowid`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.ProjectID, &c.Name, &c.Position); err != nil {
			return nil, fmt.Errorf("scanning category row: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}
	return categories, nil
}

// NextPosition returns the position after the project's last category.
func (r *SQLiteCategoryRepo) NextPosition(ctx context.Context, projectID string) (int, error) {
	var next int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position) + 1, 0) FROM categories WHERE project_id = ?`, projectID,
	).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("reading next category position: %w", err)
	}
	return next, nil
}

func (r *SQLiteCategoryRepo) Rename(ctx context.Context, id, name string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE categories SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return fmt.Errorf("renaming category: %w", err)
	}
	return requireAffected(res, "category", id)
}
