package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/alexanderramin/scoper/internal/repository"
)

const (
	selectedProjectKey = "selected_project"
	snapToGridKey      = "snap_to_grid"
)

type stateService struct {
	state       repository.StateRepo
	defaultSnap bool
}

// NewStateService reads and writes app_state. defaultSnap applies until the
// user toggles snapping for the first time.
func NewStateService(state repository.StateRepo, defaultSnap bool) StateService {
	return &stateService{state: state, defaultSnap: defaultSnap}
}

func (s *stateService) SelectedProject(ctx context.Context) (string, error) {
	v, err := s.state.Get(ctx, selectedProjectKey)
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil
	}
	return v, err
}

func (s *stateService) SelectProject(ctx context.Context, projectID string) error {
	return s.state.Set(ctx, selectedProjectKey, projectID)
}

func (s *stateService) SnapToGrid(ctx context.Context) (bool, error) {
	v, err := s.state.Get(ctx, snapToGridKey)
	if errors.Is(err, repository.ErrNotFound) {
		return s.defaultSnap, nil
	}
	if err != nil {
		return false, err
	}
	snap, err := strconv.ParseBool(v)
	if err != nil {
		return s.defaultSnap, nil
	}
	return snap, nil
}

func (s *stateService) SetSnapToGrid(ctx context.Context, snap bool) error {
	return s.state.Set(ctx, snapToGridKey, strconv.FormatBool(snap))
}
