package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	widgets       lipgloss.Style
	window        lipgloss.Style
	focused       lipgloss.Style
	title         lipgloss.Style
	geometry      lipgloss.Style
	content       lipgloss.Style
	taskItem      lipgloss.Style
	taskOpen      lipgloss.Style
	taskMinimized lipgloss.Style
	taskActive    lipgloss.Style
	search        lipgloss.Style
	result        lipgloss.Style
	selected      lipgloss.Style
	toast         lipgloss.Style
	empty         lipgloss.Style
}

func newStyles() styles {
	return styles{
		widgets:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		window:        lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		focused:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("39")).Padding(0, 1),
		title:         lipgloss.NewStyle().Bold(true),
		geometry:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		content:       lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		taskItem:      lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245")),
		taskOpen:      lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("252")).Underline(true),
		taskMinimized: lipgloss.NewStyle().Padding(0, 1).Faint(true).Underline(true),
		taskActive:    lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("16")).Background(lipgloss.Color("39")),
		search:        lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("69")).Padding(0, 1),
		result:        lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		selected:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("159")),
		toast:         lipgloss.NewStyle().Foreground(lipgloss.Color("229")),
		empty:         lipgloss.NewStyle().Faint(true),
	}
}
