package service

import (
	"bytes"
	"database/sql"
	"testing"

	"github.com/alexanderramin/scoper/internal/db"
	"github.com/alexanderramin/scoper/internal/repository"
	tmpl "github.com/alexanderramin/scoper/internal/template"
	"github.com/alexanderramin/scoper/internal/testutil"
	"github.com/stretchr/testify/require"
)

type testServices struct {
	db       *sql.DB
	projects ProjectService
	board    BoardService
	state    StateService
	log      *bytes.Buffer
}

func setupServices(t *testing.T) *testServices {
	t.Helper()
	database := testutil.NewTestDB(t)
	return setupServicesWithUoW(t, database, testutil.NewTestUoW(database))
}

func setupServicesWithUoW(t *testing.T, database *sql.DB, uow db.UnitOfWork) *testServices {
	t.Helper()
	registry, err := tmpl.Builtin()
	require.NoError(t, err)

	var log bytes.Buffer
	obs := NewLogUseCaseObserver(&log)
	projects := repository.NewSQLiteProjectRepo(database)
	return &testServices{
		db:       database,
		projects: NewProjectService(projects, uow, registry, obs),
		board: NewBoardService(projects,
			repository.NewSQLiteCategoryRepo(database),
			repository.NewSQLiteTaskRepo(database),
			uow, obs),
		state: NewStateService(repository.NewSQLiteStateRepo(database), true),
		log:   &log,
	}
}

func ptr[T any](v T) *T { return &v }
