package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/scoper/internal/cli/formatter"
	tmpl "github.com/alexanderramin/scoper/internal/template"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// scoperHuhTheme returns a huh theme using the formatter palette.
func scoperHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorBg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// wizardInputText creates a huh form for a single text input. The input
// starts with whatever *result already holds.
func wizardInputText(title, placeholder string, required bool, result *string) *huh.Form {
	input := huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(result)

	if required {
		input = input.Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s is required", strings.ToLower(title))
			}
			return nil
		})
	}

	return huh.NewForm(
		huh.NewGroup(input),
	).WithTheme(scoperHuhTheme()).WithShowHelp(false)
}

// wizardSelectTemplate creates a huh form to pick a project template by ID.
// It returns nil when no templates are available.
func wizardSelectTemplate(templates []*tmpl.Schema, result *string) *huh.Form {
	if len(templates) == 0 {
		return nil
	}

	options := make([]huh.Option[string], 0, len(templates))
	for _, s := range templates {
		label := fmt.Sprintf("%s  %s", s.Name, formatter.Dim(fmt.Sprintf("%dw · %d tasks", s.TotalWeeks, len(s.Tasks))))
		options = append(options, huh.NewOption(label, s.ID))
	}
	*result = templates[0].ID

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which Template?").
				Options(options...).
				Value(result),
		),
	).WithTheme(scoperHuhTheme()).WithShowHelp(false)
}

func wizardConfirm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(scoperHuhTheme()).WithShowHelp(false)
}
