package ui

import "github.com/charmbracelet/lipgloss"

var (
	StatusDefaultStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	StatusThinkingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	StatusRunningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	StatusDoneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	StatusFailedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	DimStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	successBadge = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("42"))
	errorBadge = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("196"))
)
