package hosts

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title   lipgloss.Style
	header  lipgloss.Style
	host    lipgloss.Style
	id      lipgloss.Style
	detail  lipgloss.Style
	saved   lipgloss.Style
	missing lipgloss.Style
	section lipgloss.Style
	empty   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true),
		header:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		host:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		id:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		detail:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		saved:   lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		missing: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		section: lipgloss.NewStyle().MarginTop(1),
		empty:   lipgloss.NewStyle().Faint(true),
	}
}
