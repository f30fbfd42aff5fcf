package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/dermassist/dermassist/internal/core/models"
)

func newResultViewport(res *models.Result, width, height int) viewport.Model {
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	vp := viewport.New(width, height-6)
	vp.SetContent(renderResult(res, width))
	return vp
}

func renderResult(res *models.Result, width int) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Diagnosis result") + "\n")
	b.WriteString(strings.Repeat("─", max(width-4, 10)) + "\n\n")

	b.WriteString(fmt.Sprintf("%s %s\n",
		diseaseStyle.Render(res.PredictedDisease),
		confidenceStyle.Render(fmt.Sprintf("(%d%% confidence)", res.ConfidenceScore)),
	))
	if res.UserInfo.Name != "" {
		meta := "for " + res.UserInfo.Name
		if age := res.UserInfo.AgeField(); age != "" {
			meta += ", age " + age
		}
		b.WriteString(metaStyle.Render(meta) + "\n")
	}
	b.WriteString("\n" + res.AssistantMessage + "\n")

	if len(res.SuggestedActions) > 0 {
		b.WriteString("\n" + titleStyle.Render("Suggested actions") + "\n")
		for _, action := range res.SuggestedActions {
			b.WriteString(actionStyle.Render("• "+action) + "\n")
		}
	}
	return b.String()
}

func (m Model) viewResult() string {
	var b strings.Builder
	b.WriteString("\n" + m.viewport.View() + "\n")
	if m.statusLine != "" {
		b.WriteString("  " + m.statusLine + "\n")
	}
	b.WriteString("  " + helpStyle.Render("n: new assessment • y: copy message • e: export report • q: quit") + "\n")
	return b.String()
}
