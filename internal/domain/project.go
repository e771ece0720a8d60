package domain

import (
	"fmt"
	"time"
)

// Defaults applied to newly created projects.
const (
	DefaultProjectName  = "New Scope"
	DefaultProjectCost  = 5000
	DefaultProjectWeeks = 4

	// MaxBoardWeeks caps the length reachable from the board's +/- keys.
	MaxBoardWeeks = 16
)

// Project is a scoped timeline. TotalWeeks determines the grid length and,
// through it, whether the grid shows days or weeks.
type Project struct {
	ID         string
	Name       string
	Cost       float64
	TotalWeeks int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ValidateTotalWeeks rejects project lengths shorter than one week.
func ValidateTotalWeeks(weeks int) error {
	if weeks < 1 {
		return fmt.Errorf("total weeks must be at least 1, got %d", weeks)
	}
	return nil
}

// ValidateCost rejects negative project costs.
func ValidateCost(cost float64) error {
	if cost < 0 {
		return fmt.Errorf("cost must not be negative, got %g", cost)
	}
	return nil
}

// DisplayID returns the first 8 characters of the project ID.
func (p *Project) DisplayID() string {
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}
