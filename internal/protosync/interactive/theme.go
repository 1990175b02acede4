package interactive

import "github.com/charmbracelet/lipgloss"

type theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Prompt   lipgloss.Style
	Help     lipgloss.Style
	Error    lipgloss.Style
	Card     lipgloss.Style
}

func defaultTheme() theme {
	return theme{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		Subtitle: lipgloss.NewStyle().Faint(true),
		Prompt:   lipgloss.NewStyle().Bold(true),
		Help:     lipgloss.NewStyle().Faint(true),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Card: lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")),
	}
}
