package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#10b981")
	muted  = lipgloss.Color("#71717a")
	danger = lipgloss.Color("#ef4444")

	brandStyle    = lipgloss.NewStyle().Bold(true)
	accentStyle   = lipgloss.NewStyle().Foreground(accent).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(muted)
	selectedStyle = lipgloss.NewStyle().Foreground(accent).Bold(true)
	titleStyle    = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	errorStyle    = lipgloss.NewStyle().Foreground(danger).Bold(true)
	frameStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#27272a")).
			Padding(1, 2)
)
