package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/auctionpost/auctionpost/pkg/price"
)

// pricePane is the sold-price input plus the quick price presets
type pricePane struct {
	input  textinput.Model
	active bool
	width  int
}

func newPricePane() *pricePane {
	ti := textinput.New()
	ti.Placeholder = "Price in crores, e.g. 2 or 0.5"
	ti.CharLimit = 12
	ti.Prompt = "₹ "
	ti.Width = 20
	return &pricePane{input: ti}
}

func (p *pricePane) setActive(active bool) {
	p.active = active
	if active {
		p.input.Focus()
	} else {
		p.input.Blur()
	}
}

func (p *pricePane) setWidth(width int) {
	p.width = width
	p.input.Width = max(width-8, 8)
}

func (p *pricePane) value() string {
	return p.input.Value()
}

func (p *pricePane) setValue(v string) {
	p.input.SetValue(v)
	p.input.CursorEnd()
}

// updateInput forwards typing and reports whether the text changed
func (p *pricePane) updateInput(msg tea.Msg) (tea.Cmd, bool) {
	before := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd, p.input.Value() != before
}

func (p *pricePane) View() string {
	var b strings.Builder
	b.WriteString(PaneTitleStyle.Render("3. SOLD PRICE"))
	b.WriteString("\n")
	b.WriteString(p.input.View())

	formatted := price.Format(p.input.Value())
	b.WriteString("  ")
	b.WriteString(DescriptionStyle.Render("→ " + tagText(formatted)))
	b.WriteString("\n")

	var chips []string
	for i, qp := range price.QuickPrices {
		chip := fmt.Sprintf("alt+%d %s", i+1, qp.Label)
		style := DescriptionStyle
		if p.input.Value() == qp.Value {
			style = CursorStyle
		}
		chips = append(chips, style.Render(chip))
	}
	b.WriteString(wordwrap.String(strings.Join(chips, "  "), max(p.width-4, 10)))

	return paneStyle(p.active, p.width).Render(b.String())
}

// tagText is the formatted price the way the tag shows it
func tagText(f price.Formatted) string {
	return lipgloss.NewStyle().Bold(true).Render("₹" + f.String())
}
