package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/auctionpost/auctionpost/pkg/models"
	"github.com/auctionpost/auctionpost/pkg/price"
	"github.com/auctionpost/auctionpost/pkg/search"
)

// playerPane is the search box plus its result list
type playerPane struct {
	search   *SearchBar
	catalog  []models.Player
	results  []models.Player
	cursor   int
	selected string // id of the selected player
	active   bool
	width    int
	height   int
}

func newPlayerPane(players []models.Player) *playerPane {
	p := &playerPane{
		search:  NewSearchBar(),
		catalog: players,
	}
	p.refilter()
	return p
}

func (p *playerPane) setActive(active bool) {
	p.active = active
	p.search.SetActive(active)
}

func (p *playerPane) setSize(width, height int) {
	p.width = width
	p.height = height
	p.search.SetWidth(width - 4)
}

// refilter re-runs the filter for the current query and keeps the cursor
// in range
func (p *playerPane) refilter() {
	p.results = search.FilterPlayers(p.search.Value(), p.catalog)
	if p.cursor >= len(p.results) {
		p.cursor = max(len(p.results)-1, 0)
	}
}

func (p *playerPane) moveCursor(delta int) {
	if len(p.results) == 0 {
		return
	}
	p.cursor = (p.cursor + delta + len(p.results)) % len(p.results)
}

// current returns the highlighted player
func (p *playerPane) current() (models.Player, bool) {
	if p.cursor < 0 || p.cursor >= len(p.results) {
		return models.Player{}, false
	}
	return p.results[p.cursor], true
}

// choose marks pl selected and shows its name in the search box, the way
// picking from a dropdown fills the field
func (p *playerPane) choose(pl models.Player) {
	p.selected = pl.ID
	p.search.SetValue(pl.DisplayName())
	p.refilter()
}

// clear empties the query and forgets the selection
func (p *playerPane) clear() {
	p.selected = ""
	p.search.Reset()
	p.cursor = 0
	p.refilter()
}

// updateInput forwards typing to the search box and refilters on change
func (p *playerPane) updateInput(msg tea.Msg) tea.Cmd {
	before := p.search.Value()
	var cmd tea.Cmd
	p.search, cmd = p.search.Update(msg)
	if p.search.Value() != before {
		p.cursor = 0
		p.refilter()
	}
	return cmd
}

func (p *playerPane) visibleRows() int {
	rows := p.height - 4 // border, search line, count line
	if rows < 3 {
		rows = 3
	}
	return rows
}

func (p *playerPane) View() string {
	var b strings.Builder
	b.WriteString(PaneTitleStyle.Render("1. PLAYER"))
	b.WriteString("\n")
	b.WriteString(p.search.View())
	b.WriteString("\n")

	if len(p.results) == 0 {
		b.WriteString(EmptyInactiveStyle.Render("No players found"))
		return paneStyle(p.active, p.width).Render(b.String())
	}

	rows := p.visibleRows()
	start := 0
	if p.cursor >= rows {
		start = p.cursor - rows + 1
	}
	end := min(start+rows, len(p.results))

	inner := p.width - 4
	for i := start; i < end; i++ {
		b.WriteString(p.renderRow(p.results[i], i == p.cursor, inner))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	if len(p.results) > rows {
		b.WriteString("\n")
		b.WriteString(DescriptionStyle.Render(fmt.Sprintf("%d-%d of %d", start+1, end, len(p.results))))
	}

	return paneStyle(p.active, p.width).Render(b.String())
}

func (p *playerPane) renderRow(pl models.Player, highlighted bool, width int) string {
	marker := "  "
	if pl.ID == p.selected {
		marker = "✓ "
	}
	if highlighted && p.active {
		marker = "▸ "
	}

	meta := fmt.Sprintf(" %s · %s", pl.Country, pl.Specialism)
	reserve := " " + price.FormatReserve(pl.ReservePrice)
	nameWidth := width - runewidth.StringWidth(marker) - runewidth.StringWidth(meta) - runewidth.StringWidth(reserve)
	if nameWidth < 8 {
		reserve = ""
		nameWidth = width - runewidth.StringWidth(marker) - runewidth.StringWidth(meta)
	}
	if nameWidth < 8 {
		meta = ""
		nameWidth = width - runewidth.StringWidth(marker)
	}

	name := runewidth.FillRight(runewidth.Truncate(pl.DisplayName(), nameWidth, "…"), nameWidth)
	style := NormalStyle
	if highlighted && p.active {
		style = SelectedStyle
	}
	return style.Render(marker+name) + DescriptionStyle.Render(meta+reserve)
}
