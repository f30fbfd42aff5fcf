package tui

import "github.com/charmbracelet/lipgloss"

// Global styles used across views
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	diseaseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true)

	confidenceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("120"))

	actionStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("246")) // Lighter gray for dark terminals

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	statusLineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("120"))
)
