package formatter

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ansiPattern matches ANSI escape sequences so assertions are terminal-independent.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestFormatWeeks(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  string
	}{
		{"whole", 2, "2"},
		{"half", 1.5, "1.5"},
		{"one day", 1.0 / 7, "0.143"},
		{"float noise", 0.1 + 0.2, "0.3"},
		{"day eight", 1 + 8.0/7, "2.143"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatWeeks(tt.input))
		})
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "1 week", FormatDuration(1, false))
	assert.Equal(t, "2.5 weeks", FormatDuration(2.5, false))
	assert.Equal(t, "1 day", FormatDuration(1.0/7, true))
	assert.Equal(t, "3 days", FormatDuration(3.0/7, true))
	assert.Equal(t, "7 days", FormatDuration(1, true))
}

func TestFormatCost(t *testing.T) {
	assert.Equal(t, "0", FormatCost(0))
	assert.Equal(t, "999", FormatCost(999))
	assert.Equal(t, "1,000", FormatCost(1000))
	assert.Equal(t, "18,500", FormatCost(18500))
	assert.Equal(t, "1,234,568", FormatCost(1234567.6))
	assert.Equal(t, "-2,500", FormatCost(-2500))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Research", Truncate("Research", 8))
	assert.Equal(t, "Rese…", Truncate("Research", 5))
	assert.Equal(t, "…", Truncate("Research", 1))
	assert.Equal(t, "", Truncate("Research", 0))
	assert.Equal(t, "★ D…", Truncate("★ Demo", 4))
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "QA   ", PadRight("QA", 5))
	assert.Equal(t, "Deve…", PadRight("Development", 5))
}

func TestTruncID(t *testing.T) {
	assert.Equal(t, "12345678", stripANSI(TruncID("1234567890abcdef")))
	assert.Equal(t, "abc", stripANSI(TruncID("abc")))
}
