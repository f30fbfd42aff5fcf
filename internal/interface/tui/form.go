package tui

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// newDiagnosisForm builds the entry form. Field validation here is a UI
// nicety; the workflow controller re-checks the preconditions that matter.
func newDiagnosisForm(v *formValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("image").
				Title("Lesion photo").
				Description("Path to a photo of the affected skin").
				Value(&v.ImagePath).
				Validate(validateImagePath),

			huh.NewText().
				Key("symptoms").
				Title("Describe your symptoms").
				Description("e.g. itchy red patch for 3 days").
				Value(&v.Symptoms),

			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&v.Name),

			huh.NewInput().
				Key("age").
				Title("Age").
				Value(&v.AgeStr).
				Validate(validateAge),
		),
	).WithShowHelp(false).WithShowErrors(true)
}

func validateImagePath(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("a photo is required")
	}
	if _, err := os.Stat(s); err != nil {
		return fmt.Errorf("no such file")
	}
	return nil
}

func validateAge(s string) error {
	if s == "" {
		return nil
	}
	age, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || age < 0 || age > 120 {
		return fmt.Errorf("age must be between 0 and 120")
	}
	return nil
}

func (m Model) viewForm() string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("Dermatology Self-Assessment") + "\n")
	b.WriteString("  " + metaStyle.Render("For better results, use a clear, well-lit photo.") + "\n\n")

	if m.errText != "" {
		b.WriteString("  " + errorStyle.Render(m.errText) + "\n\n")
	}

	b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(m.form.View()) + "\n")
	b.WriteString("  " + helpStyle.Render("enter: next field • ctrl+c: quit") + "\n")
	return b.String()
}
