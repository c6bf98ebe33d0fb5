package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/auctionpost/auctionpost/pkg/models"
)

const logo = `▄▖▖▖▄▖▄▖▄▖▄▖▖ ▖  ▄▖▄▖▄▖▄▖
▌▌▌▌▌ ▐ ▐ ▌▌▛▖▌  ▙▌▌▌▚ ▐ 
▛▌▙▌▙▖▐ ▟▖▙▌▌▝▌  ▌ ▙▌▄▌▐ `

// renderHeader draws the logo with the three form steps, each ticked once
// the selection has it
func renderHeader(width int, sel models.Selection) string {
	logoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true)

	steps := []struct {
		label string
		done  bool
	}{
		{"Player", sel.Player != nil},
		{"Team", sel.Team != nil},
		{"Price", strings.TrimSpace(sel.PriceText) != ""},
	}

	var parts []string
	for _, s := range steps {
		if s.done {
			parts = append(parts, lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess)).Bold(true).Render("● "+s.label))
		} else {
			parts = append(parts, EmptyInactiveStyle.Render("○ "+s.label))
		}
	}
	stepLine := strings.Join(parts, DescriptionStyle.Render("  ─  "))

	headerPadding := lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1).
		Width(width)

	logoRendered := logoStyle.Render(logo)
	gap := width - 2 - lipgloss.Width(logoRendered) - lipgloss.Width(stepLine)
	if gap < 1 {
		return headerPadding.Render(lipgloss.JoinVertical(lipgloss.Left, logoRendered, stepLine))
	}

	content := lipgloss.JoinHorizontal(
		lipgloss.Bottom,
		logoRendered,
		strings.Repeat(" ", gap),
		stepLine,
	)
	return headerPadding.Render(content)
}
