package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/scoper/internal/domain"
	"github.com/alexanderramin/scoper/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCategory(t *testing.T, repos *SQLiteProjectRepo, cats *SQLiteCategoryRepo) (*domain.Project, *domain.Category) {
	t.Helper()
	ctx := context.Background()
	proj := testutil.NewTestProject("Site")
	require.NoError(t, repos.Create(ctx, proj))
	cat := testutil.NewTestCategory(proj.ID, "Design", 0)
	require.NoError(t, cats.Create(ctx, cat))
	return proj, cat
}

func TestTaskRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTaskRepo(db)
	proj, cat := seedCategory(t, NewSQLiteProjectRepo(db), NewSQLiteCategoryRepo(db))
	ctx := context.Background()

	task := testutil.NewTestTask(proj.ID, cat.ID, "Moodboard",
		testutil.WithStart(2.5), testutil.WithDuration(0.75), testutil.WithDeliverable())
	require.NoError(t, repo.Create(ctx, task))

	fetched, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, *task, *fetched)
}

func TestTaskRepo_FractionalValuesRoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTaskRepo(db)
	proj, cat := seedCategory(t, NewSQLiteProjectRepo(db), NewSQLiteCategoryRepo(db))
	ctx := context.Background()

	task := testutil.NewTestTask(proj.ID, cat.ID, "Sketches",
		testutil.WithStart(1+3.0/7.0), testutil.WithDuration(1.0/7.0))
	require.NoError(t, repo.Create(ctx, task))

	fetched, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.StartWeek, fetched.StartWeek)
	assert.Equal(t, task.Duration, fetched.Duration)
}

func TestTaskRepo_UpdateAndDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTaskRepo(db)
	proj, cat := seedCategory(t, NewSQLiteProjectRepo(db), NewSQLiteCategoryRepo(db))
	ctx := context.Background()

	task := testutil.NewTestTask(proj.ID, cat.ID, "Logo")
	require.NoError(t, repo.Create(ctx, task))

	task.StartWeek = 3
	task.Duration = 2
	task.Name = "Logo v2"
	require.NoError(t, repo.Update(ctx, task))

	list, err := repo.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Logo v2", list[0].Name)
	assert.Equal(t, 3.0, list[0].StartWeek)

	require.NoError(t, repo.Delete(ctx, task.ID))
	_, err = repo.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, task), ErrNotFound)
}

func TestTaskRepo_RejectsNonPositiveDuration(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTaskRepo(db)
	proj, cat := seedCategory(t, NewSQLiteProjectRepo(db), NewSQLiteCategoryRepo(db))

	task := testutil.NewTestTask(proj.ID, cat.ID, "Broken", testutil.WithDuration(0))
	assert.Error(t, repo.Create(context.Background(), task))
}
