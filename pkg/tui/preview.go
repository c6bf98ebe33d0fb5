package tui

import (
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/auctionpost/auctionpost/pkg/card"
	"github.com/auctionpost/auctionpost/pkg/models"
)

const (
	previewWidth  = 44
	previewHeight = 22
)

var patternGlyphs = map[models.Pattern]string{
	models.PatternWaves:    "∿",
	models.PatternDiagonal: "╱",
	models.PatternRadial:   "◌",
	models.PatternMesh:     "┼",
}

// preview is the live card. Its logo state belongs to this instance and
// is reset whenever a different team is mounted or the card empties.
type preview struct {
	view    card.View
	logo    card.LogoState
	logoImg image.Image
}

// setView shows v and reports whether a newly mounted team needs its logo
// loaded
func (p *preview) setView(v card.View) bool {
	p.view = v
	if !v.Ready() {
		p.logo = card.LogoState{}
		p.logoImg = nil
		return false
	}
	if p.logo.TeamID() == v.Team.ID {
		return false
	}
	p.logo.Mount(v.Team.ID)
	p.logoImg = nil
	return v.Team.LogoURL != ""
}

// logoResult applies a finished load if it belongs to the mounted team
func (p *preview) logoResult(teamID string, img image.Image, err error) {
	if err != nil || img == nil {
		p.logo.MarkFailed(teamID)
		return
	}
	if p.logo.MarkLoaded(teamID) {
		p.logoImg = img
	}
}

func (p *preview) View() string {
	if !p.view.Ready() {
		return p.placeholder()
	}

	v := p.view
	pal := v.Team.Palette
	base := lipgloss.Color(ColorCardBase)
	inner := previewWidth - 2

	on := func(s lipgloss.Style) lipgloss.Style { return s.Background(base) }
	center := func(s string) string {
		return lipgloss.PlaceHorizontal(inner, lipgloss.Center, s, lipgloss.WithWhitespaceBackground(base))
	}
	fit := func(s string) string { return truncate.StringWithTail(s, uint(inner-2), "…") }

	white := lipgloss.Color("#ffffff")
	dim := lipgloss.Color("#b3b3b3")
	primary := hex(pal.Primary)

	glyph := patternGlyphs[v.Team.Pattern]
	if glyph == "" {
		glyph = patternGlyphs[models.PatternWaves]
	}
	decoration := on(lipgloss.NewStyle().Foreground(primary).Faint(true)).Render(strings.Repeat(glyph, inner))

	badge := on(lipgloss.NewStyle().Foreground(dim)).Render(card.BadgeSponsor+" ") +
		on(lipgloss.NewStyle().Foreground(primary).Bold(true)).Render(card.BadgeTitle) +
		on(lipgloss.NewStyle().Foreground(dim)).Render(" "+card.BadgeSubtitle)

	initials := lipgloss.NewStyle().
		Background(hex(pal.GradientFrom)).
		Foreground(hex(pal.Text)).
		Bold(true).
		Padding(1, 3).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(primary).
		BorderBackground(base).
		Render(v.Player.Initials)

	var team string
	if p.logoImg != nil && p.logo.Loaded() {
		team = halfBlocks(p.logoImg, thumbCols, thumbRows, card.Base)
	} else {
		// fallback, and while the logo is still loading
		team = teamBadge(v.Team.ShortName, pal.Primary, pal.Text)
	}
	teamName := on(lipgloss.NewStyle().Foreground(primary).Bold(true)).
		Render(truncate.StringWithTail(v.Team.Name, uint(inner-thumbCols-4), "…"))
	spacer := on(lipgloss.NewStyle()).Render(" ")
	teamRow := lipgloss.JoinHorizontal(lipgloss.Center, team, spacer, teamName)

	tag := lipgloss.NewStyle().
		Background(primary).
		Foreground(hex(pal.Text)).
		Bold(true).
		Padding(0, 3).
		Render(v.PriceLine())

	sold := on(lipgloss.NewStyle().Foreground(primary)).Render("──── ") +
		on(lipgloss.NewStyle().Foreground(dim).Bold(true)).Render(card.SoldLabel) +
		on(lipgloss.NewStyle().Foreground(primary)).Render(" ────")

	hashtag := lipgloss.PlaceHorizontal(inner, lipgloss.Right,
		on(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDim))).Render(card.Hashtag+" "),
		lipgloss.WithWhitespaceBackground(base))

	blank := center("")
	lines := []string{
		decoration,
		lipgloss.PlaceHorizontal(inner, lipgloss.Right, badge+on(lipgloss.NewStyle()).Render(" "), lipgloss.WithWhitespaceBackground(base)),
		center(initials),
		center(on(lipgloss.NewStyle()).Render(" ") + lipgloss.NewStyle().Background(primary).Foreground(hex(pal.Text)).Bold(true).Padding(0, 1).Render(v.Player.Country)),
		blank,
		center(on(lipgloss.NewStyle().Foreground(white).Bold(true)).Render(fit(v.Player.FirstName))),
		center(on(lipgloss.NewStyle().Foreground(dim)).Render(fit(v.Player.Surname))),
		blank,
		center(sold),
		blank,
		center(teamRow),
		blank,
		center(tag),
		blank,
		hashtag,
		decoration,
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(primary).
		Background(base).
		Width(inner).
		Render(strings.Join(lines, "\n"))
}

func (p *preview) placeholder() string {
	text := lipgloss.JoinVertical(lipgloss.Center,
		PlaceholderStyle.Render(p.view.Placeholder.Title),
		DescriptionStyle.Render(p.view.Placeholder.Subtitle),
	)
	return InactiveBorderStyle.
		Width(previewWidth-2).
		Height(previewHeight-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(text)
}
