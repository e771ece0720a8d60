package repository

import (
	"time"
)

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// parseTimestamp parses an RFC3339 column, naming the column on failure.
func parseTimestamp(column, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, &timestampError{column: column, err: err}
	}
	return t, nil
}

type timestampError struct {
	column string
	err    error
}

func (e *timestampError) Error() string { return "parsing " + e.column + ": " + e.err.Error() }
func (e *timestampError) Unwrap() error { return e.err }
