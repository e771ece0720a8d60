package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alexanderramin/scoper/internal/cli"
	"github.com/alexanderramin/scoper/internal/config"
	"github.com/alexanderramin/scoper/internal/db"
	"github.com/alexanderramin/scoper/internal/repository"
	"github.com/alexanderramin/scoper/internal/service"
	tmpl "github.com/alexanderramin/scoper/internal/template"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.DBPath == "" {
		return fmt.Errorf("no database path: set SCOPER_DB or db_path in the config file")
	}

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// The TUI owns the terminal, so use-case logs only go to a file.
	var logOut io.Writer
	if cfg.LogPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0755); err != nil {
			return fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	observer := service.NewLogUseCaseObserver(logOut)

	templates, err := tmpl.Builtin()
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	categoryRepo := repository.NewSQLiteCategoryRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	stateRepo := repository.NewSQLiteStateRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	app := &cli.App{
		Projects: service.NewProjectService(projectRepo, uow, templates, observer),
		Board:    service.NewBoardService(projectRepo, categoryRepo, taskRepo, uow, observer),
		State:    service.NewStateService(stateRepo, cfg.SnapToGrid),
		Config:   cfg,
	}

	// Bare "scoper" opens the board only on an interactive terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
