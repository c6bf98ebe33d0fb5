package tui

import (
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/auctionpost/auctionpost/pkg/card"
	"github.com/auctionpost/auctionpost/pkg/models"
)

const (
	gridColumns = 5
	thumbCols   = 6
	thumbRows   = 2
)

// teamGrid shows the ten teams as a 5x2 grid of logos. A team whose logo
// failed to load is remembered in fallbacks and drawn as its short name.
type teamGrid struct {
	teams     []models.Team
	palettes  []card.Palette
	logos     map[string]image.Image
	fallbacks card.LogoFallbacks
	cursor    int
	selected  string
	active    bool
	width     int
}

func newTeamGrid(teams []models.Team) *teamGrid {
	g := &teamGrid{
		teams: teams,
		logos: make(map[string]image.Image),
	}
	for _, t := range teams {
		g.palettes = append(g.palettes, card.NewPalette(t))
	}
	return g
}

func (g *teamGrid) move(dx, dy int) {
	if len(g.teams) == 0 {
		return
	}
	rows := (len(g.teams) + gridColumns - 1) / gridColumns
	col := g.cursor % gridColumns
	row := g.cursor / gridColumns

	col = (col + dx + gridColumns) % gridColumns
	row = (row + dy + rows) % rows

	next := row*gridColumns + col
	if next >= len(g.teams) {
		next = len(g.teams) - 1
	}
	g.cursor = next
}

func (g *teamGrid) current() (models.Team, bool) {
	if g.cursor < 0 || g.cursor >= len(g.teams) {
		return models.Team{}, false
	}
	return g.teams[g.cursor], true
}

// logoResult records the outcome of a grid logo load
func (g *teamGrid) logoResult(teamID string, img image.Image, err error) {
	if err != nil || img == nil {
		g.fallbacks.Mark(teamID)
		return
	}
	g.logos[teamID] = img
}

func (g *teamGrid) View() string {
	var b strings.Builder
	b.WriteString(PaneTitleStyle.Render("2. TEAM"))
	b.WriteString("\n")

	cellWidth := max((g.width-4)/gridColumns, thumbCols+2)
	var rows []string
	for start := 0; start < len(g.teams); start += gridColumns {
		end := min(start+gridColumns, len(g.teams))
		var cells []string
		for i := start; i < end; i++ {
			cells = append(cells, g.renderCell(i, cellWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))

	return paneStyle(g.active, g.width).Render(b.String())
}

func (g *teamGrid) renderCell(i, width int) string {
	t := g.teams[i]
	pal := g.palettes[i]

	var art string
	if img, ok := g.logos[t.ID]; ok && !g.fallbacks.Has(t.ID) {
		art = halfBlocks(img, thumbCols, thumbRows, card.Base)
	} else {
		badge := teamBadge(runewidth.Truncate(t.ShortName, thumbCols, ""), pal.Primary, pal.Text)
		art = lipgloss.NewStyle().Height(thumbRows).AlignVertical(lipgloss.Center).Render(badge)
	}

	label := t.ShortName
	switch {
	case i == g.cursor && g.active:
		label = SelectedStyle.Render("▸" + label)
	case t.ID == g.selected:
		label = CursorStyle.Render("✓" + label)
	default:
		label = NormalStyle.Render(" " + label)
	}

	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Center, art, label))
}
