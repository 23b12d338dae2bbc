package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Panel border shared by every box
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#626262")).
			Padding(0, 1)

	// Header banner
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#4F4FB7")).
			Padding(0, 1)

	// Panel titles
	HeadingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#81A1C1"))

	// Secondary text such as instructions and debug info
	StatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#959595"))

	// The current message
	MessageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EBCB8B"))

	// The counter value
	CounterStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF"))

	// Status list items
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00"))

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7B2FBE"))
)
