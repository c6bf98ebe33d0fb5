package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/auctionpost/auctionpost/pkg/price"
)

// Run starts the interactive app in the alternate screen
func Run(cfg Config) error {
	app := NewApp(cfg)
	defer app.Close()

	_, err := tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}

func quickPrice(i int) string {
	if i < 0 || i >= len(price.QuickPrices) {
		return ""
	}
	return price.QuickPrices[i].Value
}
