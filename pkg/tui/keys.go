package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/auctionpost/auctionpost/pkg/price"
)

type keyMap struct {
	NextPane key.Binding
	PrevPane key.Binding
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Select   key.Binding
	Clear    key.Binding
	Export   key.Binding
	Reset    key.Binding
	Copy     key.Binding
	Help     key.Binding
	Quit     key.Binding
	Quick    []key.Binding
}

func newKeyMap() keyMap {
	k := keyMap{
		NextPane: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next pane")),
		PrevPane: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev pane")),
		Up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Left:     key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right:    key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Clear:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		Export:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "export")),
		Reset:    key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset")),
		Copy:     key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy caption")),
		Help:     key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}

	for i, qp := range price.QuickPrices {
		digit := string(rune('1' + i))
		k.Quick = append(k.Quick, key.NewBinding(
			key.WithKeys("alt+"+digit),
			key.WithHelp("alt+"+digit, qp.Label),
		))
	}
	return k
}

// quickIndex returns the quick price index bound to msg, or -1
func (k keyMap) quickIndex(msg string) int {
	for i, b := range k.Quick {
		for _, bound := range b.Keys() {
			if bound == msg {
				return i
			}
		}
	}
	return -1
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextPane, k.Export, k.Reset, k.Copy, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextPane, k.PrevPane, k.Up, k.Down, k.Left, k.Right},
		{k.Select, k.Clear, k.Export, k.Reset, k.Copy},
		k.Quick,
		{k.Help, k.Quit},
	}
}
