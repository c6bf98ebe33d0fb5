package tui

import (
	"errors"
	"io"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/auctionpost/auctionpost/pkg/card"
	"github.com/auctionpost/auctionpost/pkg/catalog"
	"github.com/auctionpost/auctionpost/pkg/export"
	"github.com/auctionpost/auctionpost/pkg/models"
	"github.com/auctionpost/auctionpost/pkg/render"
	"github.com/auctionpost/auctionpost/pkg/state"
)

type pane int

const (
	panePlayers pane = iota
	paneTeams
	panePrice
	paneCount
)

const (
	leftColumnWidth = 64
	playerPaneRows  = 16
)

// Config wires the app to its collaborators
type Config struct {
	Catalog     *catalog.Catalog
	Rasterizer  render.Rasterizer
	Logos       render.LogoSource
	Saver       export.Saver
	Output      models.OutputSettings
	ShowPreview bool
	Logger      *log.Logger
	// Clipboard defaults to the system clipboard
	Clipboard func(string) error
}

// App is the root bubbletea model
type App struct {
	store       *state.Store
	unsubscribe func()
	sel         models.Selection
	pendingLogo *models.Team

	pipeline *export.Pipeline
	notes    chanNotifier
	logos    render.LogoSource
	teamList []models.Team
	copyFn   func(string) error
	logger   *log.Logger

	players *playerPane
	teams   *teamGrid
	price   *pricePane
	preview preview
	toasts  toastStack
	keys    keyMap
	help    help.Model

	focus       pane
	exporting   bool
	showPreview bool
	lastExport  *export.Result
	width       int
	height      int
}

// NewApp builds the app around a fresh, empty selection
func NewApp(cfg Config) *App {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logos := cfg.Logos
	if logos == nil {
		logos = render.DisabledLogos{}
	}
	copyFn := cfg.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	notes := make(chanNotifier, 32)
	a := &App{
		store:       state.NewStore(),
		pipeline:    export.New(cfg.Rasterizer, cfg.Saver, notes, logger, export.OptionsFromSettings(cfg.Output)),
		notes:       notes,
		logos:       logos,
		teamList:    cfg.Catalog.Teams(),
		copyFn:      copyFn,
		logger:      logger,
		players:     newPlayerPane(cfg.Catalog.Players()),
		teams:       newTeamGrid(cfg.Catalog.Teams()),
		price:       newPricePane(),
		keys:        newKeyMap(),
		help:        help.New(),
		showPreview: cfg.ShowPreview,
	}
	a.unsubscribe = a.store.Subscribe(a.onSelection)
	a.onSelection(a.store.Snapshot())
	a.setFocus(panePlayers)
	return a
}

// Close detaches the app from its store
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
}

// onSelection re-derives every view from the latest snapshot
func (a *App) onSelection(sel models.Selection) {
	a.sel = sel
	if a.preview.setView(card.Derive(sel)) {
		t := *sel.Team
		a.pendingLogo = &t
	}
}

func (a *App) setFocus(p pane) {
	a.focus = p
	a.players.setActive(p == panePlayers)
	a.teams.active = p == paneTeams
	a.price.setActive(p == panePrice)
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForNotification(a.notes), textinput.Blink}
	for _, t := range a.teamList {
		if t.LogoURL != "" {
			cmds = append(cmds, loadLogoCmd(a.logos, t))
		}
	}
	return tea.Batch(cmds...)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout()

	case tea.KeyMsg:
		cmds = append(cmds, a.handleKey(msg))

	case notificationMsg:
		n := export.Notification(msg)
		id := a.toasts.push(n)
		cmds = append(cmds, scheduleExpiry(id, n.Kind), a.rearm(n))

	case toastExpiredMsg:
		a.toasts.expire(msg.id)

	case exportDoneMsg:
		a.exporting = false
		a.keys.Export.SetEnabled(true)
		if msg.err == nil {
			a.lastExport = msg.result
		} else if !errors.Is(msg.err, export.ErrIncomplete) {
			a.logger.Debug("export finished with error", "err", msg.err)
		}

	case logoMsg:
		a.teams.logoResult(msg.teamID, msg.img, msg.err)
		a.preview.logoResult(msg.teamID, msg.img, msg.err)
		if msg.err != nil {
			a.logger.Debug("logo unavailable, using short name", "team", msg.teamID, "err", msg.err)
		}

	default:
		cmds = append(cmds, a.updateFocusedInput(msg))
	}

	if t := a.pendingLogo; t != nil {
		a.pendingLogo = nil
		if img, ok := a.teams.logos[t.ID]; ok {
			// already fetched by the grid
			a.preview.logoResult(t.ID, img, nil)
		} else {
			cmds = append(cmds, loadLogoCmd(a.logos, *t))
		}
	}

	return a, tea.Batch(cmds...)
}

// rearm keeps listening for pipeline notifications. Copy results come
// straight from their command and must not start a second listener.
func (a *App) rearm(n export.Notification) tea.Cmd {
	if n.Key == captionKey {
		return nil
	}
	return waitForNotification(a.notes)
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Quit):
		a.Close()
		return tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
		return nil

	case key.Matches(msg, a.keys.NextPane):
		a.setFocus((a.focus + 1) % paneCount)
		return nil

	case key.Matches(msg, a.keys.PrevPane):
		a.setFocus((a.focus + paneCount - 1) % paneCount)
		return nil

	case key.Matches(msg, a.keys.Export):
		return a.startExport()

	case key.Matches(msg, a.keys.Reset):
		a.reset()
		return nil

	case key.Matches(msg, a.keys.Copy):
		v := card.Derive(a.sel)
		if !v.Ready() {
			return func() tea.Msg {
				return notificationMsg{Kind: export.KindError, Message: msgCaptionEmpty, Key: captionKey}
			}
		}
		return copyCaptionCmd(a.copyFn, v.Caption())
	}

	if i := a.keys.quickIndex(msg.String()); i >= 0 {
		a.setPrice(quickPrice(i))
		return nil
	}

	switch a.focus {
	case panePlayers:
		return a.handlePlayerKey(msg)
	case paneTeams:
		a.handleTeamKey(msg)
		return nil
	case panePrice:
		return a.handlePriceKey(msg)
	}
	return nil
}

func (a *App) handlePlayerKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Up):
		a.players.moveCursor(-1)
	case key.Matches(msg, a.keys.Down):
		a.players.moveCursor(1)
	case key.Matches(msg, a.keys.Select):
		if p, ok := a.players.current(); ok {
			a.players.choose(p)
			a.store.SelectPlayer(p)
			a.setFocus(paneTeams)
		}
	case key.Matches(msg, a.keys.Clear):
		a.players.clear()
		a.store.ClearPlayer()
	default:
		return a.players.updateInput(msg)
	}
	return nil
}

func (a *App) handleTeamKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, a.keys.Up):
		a.teams.move(0, -1)
	case key.Matches(msg, a.keys.Down):
		a.teams.move(0, 1)
	case key.Matches(msg, a.keys.Left):
		a.teams.move(-1, 0)
	case key.Matches(msg, a.keys.Right):
		a.teams.move(1, 0)
	case key.Matches(msg, a.keys.Select):
		if t, ok := a.teams.current(); ok {
			a.teams.selected = t.ID
			a.store.SelectTeam(t)
			a.setFocus(panePrice)
		}
	case key.Matches(msg, a.keys.Clear):
		a.teams.selected = ""
		a.store.ClearTeam()
	}
}

func (a *App) handlePriceKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, a.keys.Clear) {
		a.setPrice("")
		return nil
	}
	if key.Matches(msg, a.keys.Select) {
		return a.startExport()
	}
	cmd, changed := a.price.updateInput(msg)
	if changed {
		a.store.SetPrice(a.price.value())
	}
	return cmd
}

func (a *App) updateFocusedInput(msg tea.Msg) tea.Cmd {
	switch a.focus {
	case panePlayers:
		return a.players.updateInput(msg)
	case panePrice:
		cmd, _ := a.price.updateInput(msg)
		return cmd
	}
	return nil
}

func (a *App) setPrice(v string) {
	a.price.setValue(v)
	a.store.SetPrice(v)
}

// startExport hands a snapshot to the pipeline. The key stays disabled
// until the pipeline reports back.
func (a *App) startExport() tea.Cmd {
	if a.exporting {
		return nil
	}
	a.exporting = true
	a.keys.Export.SetEnabled(false)
	return exportCmd(a.pipeline, a.store.Snapshot())
}

func (a *App) reset() {
	export.Reset(a.store, a.notes)
	a.players.clear()
	a.teams.selected = ""
	a.price.setValue("")
	a.setFocus(panePlayers)
}

func (a *App) layout() {
	left := min(leftColumnWidth, a.width)
	a.players.setSize(left, playerPaneRows)
	a.teams.width = left
	a.price.setWidth(left)
	a.help.Width = a.width
}

func (a *App) previewVisible() bool {
	return a.showPreview && a.width >= leftColumnWidth+previewWidth+1
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	left := lipgloss.JoinVertical(lipgloss.Left,
		a.players.View(),
		a.teams.View(),
		a.price.View(),
	)

	body := left
	if a.previewVisible() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, " ", a.preview.View())
	}

	sections := []string{renderHeader(a.width, a.sel), body, a.statusLine()}
	if toasts := a.toasts.View(a.width); toasts != "" {
		sections = append(sections, toasts)
	}
	sections = append(sections, a.help.View(a.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a *App) statusLine() string {
	var action string
	switch {
	case a.exporting:
		action = DisabledStyle.Render("Generating...")
	case a.sel.Complete():
		action = lipgloss.NewStyle().
			Background(lipgloss.Color(ColorActive)).
			Foreground(lipgloss.Color(ColorWhite)).
			Bold(true).
			Padding(0, 1).
			Render("ctrl+s  Download Post")
	default:
		action = EmptyInactiveStyle.Render("ctrl+s  Download Post")
	}

	if a.lastExport != nil {
		action += DescriptionStyle.Render("  last: " + a.lastExport.Filename + " (" + a.lastExport.Size + ")")
	}
	return lipgloss.NewStyle().PaddingLeft(1).Render(action)
}
