package monitor

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	primaryColor   = lipgloss.Color("212")
	secondaryColor = lipgloss.Color("141")
	successColor   = lipgloss.Color("42")
	errorColor     = lipgloss.Color("196")
	warningColor   = lipgloss.Color("214")
	cyanColor      = lipgloss.Color("45")
	mutedColor     = lipgloss.Color("241")
	borderColor    = lipgloss.Color("240")
)

// laneColors cycles through lane header colors.
var laneColors = []lipgloss.Color{cyanColor, successColor, secondaryColor, warningColor, primaryColor}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(primaryColor)

	hintStyle = lipgloss.NewStyle().Foreground(mutedColor)

	dividerStyle = lipgloss.NewStyle().Foreground(borderColor)

	statusStyle = lipgloss.NewStyle().Foreground(warningColor)

	errorStyle = lipgloss.NewStyle().Foreground(errorColor).Bold(true)

	ghostStyle = lipgloss.NewStyle().Foreground(secondaryColor).Italic(true)
)

// Chip styles. Every chip renders chipWidth cells wide and chipHeight lines
// tall, border included.
var (
	chipStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1).
			Width(chipWidth - 2).
			Height(chipHeight - 2)

	chipSelectedStyle = chipStyle.
				BorderForeground(primaryColor).
				Bold(true)

	chipCursorStyle = chipStyle.
			BorderForeground(cyanColor)

	chipDisabledStyle = chipStyle.
				Foreground(mutedColor).
				BorderForeground(mutedColor)

	chipFolderStyle = chipStyle.
			BorderStyle(lipgloss.DoubleBorder()).
			Foreground(warningColor)

	chipAcceptStyle = chipFolderStyle.
			BorderForeground(successColor)

	chipRejectStyle = chipFolderStyle.
			BorderForeground(errorColor)

	placeholderStyle = chipStyle.
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(secondaryColor).
				Foreground(secondaryColor).
				Faint(true)
)
