// Package template holds the built-in project templates and turns them into
// fresh projects.
package template

// Schema is the top-level YAML template structure.
type Schema struct {
	ID         string           `yaml:"id"`
	Name       string           `yaml:"name"`
	Cost       float64          `yaml:"cost"`
	TotalWeeks int              `yaml:"total_weeks"`
	Seed       bool             `yaml:"seed,omitempty"`
	Categories []CategoryConfig `yaml:"categories"`
	Tasks      []TaskConfig     `yaml:"tasks"`
}

// CategoryConfig declares a row. Key is local to the template and is what
// tasks refer to.
type CategoryConfig struct {
	Key  string `yaml:"key"`
	Name string `yaml:"name"`
}

type TaskConfig struct {
	Name        string  `yaml:"name"`
	Category    string  `yaml:"category"`
	StartWeek   float64 `yaml:"start_week"`
	Duration    float64 `yaml:"duration"`
	Deliverable bool    `yaml:"deliverable,omitempty"`
}
