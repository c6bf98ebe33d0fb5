package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Color constants
const (
	ColorActive   = "170" // Purple/magenta for active elements
	ColorInactive = "240" // Gray for inactive elements
	ColorSelected = "236" // Dark gray for background selection
	ColorNormal   = "245" // Light gray for normal text
	ColorDim      = "241"
	ColorVeryDim  = "242"
	ColorWarning  = "214"
	ColorSuccess  = "28"
	ColorWhite    = "255"
	ColorPrimary  = "33"
	ColorError    = "196"
	ColorCardBase = "#0a0f1a"
)

var (
	ActiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorActive))

	InactiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorInactive))

	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorActive)).
			Background(lipgloss.Color(ColorSelected)).
			Bold(true)

	NormalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorNormal))

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorDim))

	PaneTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorWarning))

	DescriptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorDim))

	EmptyInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorVeryDim))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError))

	CursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorActive)).
			Bold(true)

	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorDim)).
				Italic(true)

	DisabledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorVeryDim)).
			Strikethrough(true)
)

// paneStyle is the bordered frame around a pane
func paneStyle(active bool, width int) lipgloss.Style {
	style := InactiveBorderStyle
	if active {
		style = ActiveBorderStyle
	}
	return style.Width(width - 2).Padding(0, 1)
}

// hex converts a go-colorful color into a lipgloss truecolor
func hex(c colorful.Color) lipgloss.Color {
	return lipgloss.Color(c.Clamped().Hex())
}

// teamBadge renders text on a team's primary color
func teamBadge(text string, bg, fg colorful.Color) string {
	return lipgloss.NewStyle().
		Background(hex(bg)).
		Foreground(hex(fg)).
		Bold(true).
		Padding(0, 1).
		Render(text)
}
