package template

import "fmt"

// ValidateSchema checks a Schema for structural errors.
// Returns a slice of errors (empty if valid).
func ValidateSchema(schema *Schema) []error {
	var errs []error

	if schema.ID == "" {
		errs = append(errs, fmt.Errorf("template id is required"))
	}
	if schema.Name == "" {
		errs = append(errs, fmt.Errorf("template name is required"))
	}
	if schema.TotalWeeks < 1 {
		errs = append(errs, fmt.Errorf("total_weeks must be at least 1, got %d", schema.TotalWeeks))
	}
	if schema.Cost < 0 {
		errs = append(errs, fmt.Errorf("cost must not be negative, got %g", schema.Cost))
	}
	if len(schema.Categories) == 0 {
		errs = append(errs, fmt.Errorf("at least one category is required"))
	}

	keys := map[string]bool{}
	for i, c := range schema.Categories {
		if c.Key == "" {
			errs = append(errs, fmt.Errorf("category[%d]: key is required", i))
		}
		if c.Name == "" {
			errs = append(errs, fmt.Errorf("category[%d]: name is required", i))
		}
		if keys[c.Key] {
			errs = append(errs, fmt.Errorf("category[%d]: duplicate key %q", i, c.Key))
		}
		keys[c.Key] = true
	}

	for i, t := range schema.Tasks {
		if t.Name == "" {
			errs = append(errs, fmt.Errorf("task[%d]: name is required", i))
		}
		if !keys[t.Category] {
			errs = append(errs, fmt.Errorf("task[%d]: unknown category %q", i, t.Category))
		}
		if t.StartWeek < 1 {
			errs = append(errs, fmt.Errorf("task[%d]: start_week must be at least 1, got %g", i, t.StartWeek))
		}
		if t.Duration <= 0 {
			errs = append(errs, fmt.Errorf("task[%d]: duration must be positive, got %g", i, t.Duration))
		}
	}

	return errs
}
