package db

import (
	"database/sql"
	"fmt"
)

// Migrate creates the schema. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		cost        REAL NOT NULL DEFAULT 0 CHECK(cost >= 0),
		total_weeks INTEGER NOT NULL DEFAULT 4 CHECK(total_weeks >= 1),
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS categories (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name       TEXT NOT NULL,
		position   INTEGER NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_categories_project ON categories(project_id, position)`,

	// category_id is not a foreign key: a task whose category
	// disappears stays in the store and is skipped by the layout.
	`CREATE TABLE IF NOT EXISTS tasks (
		id          TEXT PRIMARY KEY,
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		category_id TEXT NOT NULL,
		name        TEXT NOT NULL,
		start_week  REAL NOT NULL CHECK(start_week >= 1),
		duration    REAL NOT NULL CHECK(duration > 0),
		is_deliverable INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,

	`CREATE TABLE IF NOT EXISTS app_state (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
}
