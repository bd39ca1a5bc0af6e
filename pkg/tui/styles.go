package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	countStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	helpStyle  = lipgloss.NewStyle().Faint(true)

	tileStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
	selectedTileStyle = tileStyle.BorderForeground(lipgloss.Color("62"))
	tileLabelStyle    = lipgloss.NewStyle().Bold(true)
	tileTimeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	emptyStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	boxBorderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
	captionStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	timecodeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	imageStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	sourceStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	controlStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("236"))
	disabledStyle   = lipgloss.NewStyle().Faint(true)
	backgroundStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
)
