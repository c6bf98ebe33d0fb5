package tui

import (
	"context"
	"errors"
	"image"
	"image/color"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auctionpost/auctionpost/pkg/card"
	"github.com/auctionpost/auctionpost/pkg/export"
	"github.com/auctionpost/auctionpost/pkg/models"
	"github.com/auctionpost/auctionpost/pkg/render"
)

type stubRasterizer struct {
	err error
}

func (s stubRasterizer) Rasterize(ctx context.Context, v card.View, scale int) (image.Image, error) {
	if s.err != nil {
		return nil, s.err
	}
	w, h := render.Size(scale)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{200, 0, 0, 255})
		}
	}
	return img, nil
}

type memSaver struct {
	mu    sync.Mutex
	saved map[string]int
}

func (m *memSaver) Save(name string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saved == nil {
		m.saved = make(map[string]int)
	}
	m.saved[name] = len(data)
	return "/out/" + name, nil
}

func newTestApp(t *testing.T, r render.Rasterizer, saver export.Saver, clip func(string) error) *App {
	t.Helper()
	out := models.DefaultSettings().Output
	out.Scale = 1
	a := NewApp(Config{
		Catalog:     testCatalog(t),
		Rasterizer:  r,
		Logos:       render.DisabledLogos{},
		Saver:       saver,
		Output:      out,
		ShowPreview: true,
		Clipboard:   clip,
	})
	t.Cleanup(a.Close)
	a.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	return a
}

func press(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func altDigit(d rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{d}, Alt: true}
}

func drain(a *App) []export.Notification {
	var out []export.Notification
	for {
		select {
		case n := <-a.notes:
			out = append(out, n)
		default:
			return out
		}
	}
}

// selectViratRCB drives the panes the way a user would: search, pick,
// move to RCB, pick, then a quick price
func selectViratRCB(t *testing.T, a *App) {
	t.Helper()
	a.Update(runes("kohli"))
	a.Update(press(tea.KeyEnter))
	require.Equal(t, paneTeams, a.focus)

	a.Update(press(tea.KeyRight))
	a.Update(press(tea.KeyRight))
	a.Update(press(tea.KeyEnter))
	require.Equal(t, panePrice, a.focus)

	a.Update(altDigit('3'))
}

func TestAppSelectionFlow(t *testing.T) {
	a := newTestApp(t, stubRasterizer{}, &memSaver{}, nil)
	selectViratRCB(t, a)

	require.True(t, a.sel.Complete())
	assert.Equal(t, "virat-kohli", a.sel.Player.ID)
	assert.Equal(t, "rcb", a.sel.Team.ID)
	assert.Equal(t, "2", a.sel.PriceText)
	assert.Equal(t, "2", a.price.value())
	assert.Equal(t, "rcb", a.teams.selected)
	assert.Equal(t, "virat-kohli", a.players.selected)

	view := a.View()
	assert.Contains(t, view, "Virat")
	assert.Contains(t, view, "₹2 CR")
}

func TestAppTypedPriceUpdatesStore(t *testing.T) {
	a := newTestApp(t, stubRasterizer{}, &memSaver{}, nil)
	a.setFocus(panePrice)

	a.Update(runes("0.5"))
	assert.Equal(t, "0.5", a.sel.PriceText)

	a.Update(press(tea.KeyEsc))
	assert.Equal(t, "", a.sel.PriceText)
	assert.Equal(t, "", a.price.value())
}

func TestAppTeamRequestsLogo(t *testing.T) {
	a := newTestApp(t, stubRasterizer{}, &memSaver{}, nil)
	a.Update(runes("kohli"))
	a.Update(press(tea.KeyEnter))

	_, cmd := a.Update(press(tea.KeyEnter))
	require.NotNil(t, cmd, "selecting a team with a logo url should load it")
	assert.Nil(t, a.pendingLogo)

	a.Update(logoMsg{teamID: "csk", err: render.ErrLogosOff})
	assert.True(t, a.preview.logo.Fallback())
	assert.True(t, a.teams.fallbacks.Has("csk"))
}

func TestAppClearKeys(t *testing.T) {
	a := newTestApp(t, stubRasterizer{}, &memSaver{}, nil)
	selectViratRCB(t, a)

	a.setFocus(paneTeams)
	a.Update(press(tea.KeyEsc))
	assert.Nil(t, a.sel.Team)
	assert.Empty(t, a.teams.selected)

	a.setFocus(panePlayers)
	a.Update(press(tea.KeyEsc))
	assert.Nil(t, a.sel.Player)
	assert.Empty(t, a.players.search.Value())
	assert.Equal(t, "2", a.sel.PriceText, "price is untouched by other panes")
}

func TestAppExport(t *testing.T) {
	saver := &memSaver{}
	a := newTestApp(t, stubRasterizer{}, saver, nil)
	selectViratRCB(t, a)

	cmd := a.handleKey(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	assert.True(t, a.exporting)
	assert.False(t, a.keys.Export.Enabled())
	assert.Contains(t, a.statusLine(), "Generating")

	// a second press while busy starts nothing
	a.handleKey(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.True(t, a.exporting)

	msg := cmd()
	done, ok := msg.(exportDoneMsg)
	require.True(t, ok, "expected exportDoneMsg, got %T", msg)
	require.NoError(t, done.err)

	a.Update(done)
	assert.False(t, a.exporting)
	assert.True(t, a.keys.Export.Enabled())
	require.NotNil(t, a.lastExport)
	assert.Equal(t, "Virat_Kohli_RCB_auction.jpg", a.lastExport.Filename)
	assert.Contains(t, saver.saved, "Virat_Kohli_RCB_auction.jpg")
	assert.Contains(t, a.statusLine(), "Virat_Kohli_RCB_auction.jpg")

	notes := drain(a)
	require.Len(t, notes, 2)
	assert.Equal(t, export.KindLoading, notes[0].Kind)
	assert.Equal(t, export.KindSuccess, notes[1].Kind)
	assert.Equal(t, notes[0].Key, notes[1].Key)

	// the keyed success replaces the loading toast
	for _, n := range notes {
		a.Update(notificationMsg(n))
	}
	assert.Equal(t, 1, a.toasts.len())
	assert.Contains(t, a.View(), export.MsgSuccess)
}

func TestAppExportFailure(t *testing.T) {
	a := newTestApp(t, stubRasterizer{err: errors.New("gpu on fire")}, &memSaver{}, nil)
	selectViratRCB(t, a)

	done := a.handleKey(tea.KeyMsg{Type: tea.KeyCtrlS})().(exportDoneMsg)
	require.Error(t, done.err)
	a.Update(done)

	assert.False(t, a.exporting)
	assert.Nil(t, a.lastExport)
	notes := drain(a)
	require.Len(t, notes, 2)
	assert.Equal(t, export.MsgFailure, notes[1].Message)
}

func TestAppExportIncomplete(t *testing.T) {
	a := newTestApp(t, stubRasterizer{}, &memSaver{}, nil)

	done := a.handleKey(tea.KeyMsg{Type: tea.KeyCtrlS})().(exportDoneMsg)
	assert.ErrorIs(t, done.err, export.ErrIncomplete)

	notes := drain(a)
	require.Len(t, notes, 1)
	assert.Equal(t, export.KindError, notes[0].Kind)
	assert.Equal(t, export.MsgIncomplete, notes[0].Message)
}

func TestAppReset(t *testing.T) {
	a := newTestApp(t, stubRasterizer{}, &memSaver{}, nil)
	selectViratRCB(t, a)

	a.Update(tea.KeyMsg{Type: tea.KeyCtrlR})

	assert.False(t, a.sel.Ready())
	assert.Empty(t, a.sel.PriceText)
	assert.Empty(t, a.players.search.Value())
	assert.Empty(t, a.teams.selected)
	assert.Empty(t, a.price.value())
	assert.Equal(t, panePlayers, a.focus)
	assert.False(t, a.preview.view.Ready())

	notes := drain(a)
	require.Len(t, notes, 1)
	assert.Equal(t, export.MsgReset, notes[0].Message)
}

func TestAppCopyCaption(t *testing.T) {
	var copied string
	clip := func(s string) error {
		copied = s
		return nil
	}

	t.Run("not ready", func(t *testing.T) {
		a := newTestApp(t, stubRasterizer{}, &memSaver{}, clip)
		msg := a.handleKey(tea.KeyMsg{Type: tea.KeyCtrlY})()
		n := export.Notification(msg.(notificationMsg))
		assert.Equal(t, export.KindError, n.Kind)
		assert.Empty(t, copied)
	})

	t.Run("ready", func(t *testing.T) {
		a := newTestApp(t, stubRasterizer{}, &memSaver{}, clip)
		selectViratRCB(t, a)
		msg := a.handleKey(tea.KeyMsg{Type: tea.KeyCtrlY})()
		n := export.Notification(msg.(notificationMsg))
		assert.Equal(t, export.KindSuccess, n.Kind)
		assert.Equal(t, card.Derive(a.sel).Caption(), copied)
		assert.True(t, strings.HasPrefix(copied, "Virat Kohli SOLD to Royal Challengers Bangalore for ₹2 CR"))

		// copy results must not start a second notification listener
		assert.Nil(t, a.rearm(n))
	})

	t.Run("clipboard error", func(t *testing.T) {
		a := newTestApp(t, stubRasterizer{}, &memSaver{}, func(string) error { return errors.New("no display") })
		selectViratRCB(t, a)
		msg := a.handleKey(tea.KeyMsg{Type: tea.KeyCtrlY})()
		assert.Equal(t, msgCaptionFailed, export.Notification(msg.(notificationMsg)).Message)
	})
}

func TestAppFocusCycle(t *testing.T) {
	a := newTestApp(t, stubRasterizer{}, &memSaver{}, nil)

	a.Update(press(tea.KeyTab))
	assert.Equal(t, paneTeams, a.focus)
	a.Update(press(tea.KeyTab))
	assert.Equal(t, panePrice, a.focus)
	a.Update(press(tea.KeyTab))
	assert.Equal(t, panePlayers, a.focus)
	a.Update(press(tea.KeyShiftTab))
	assert.Equal(t, panePrice, a.focus)
	assert.True(t, a.price.active)
	assert.False(t, a.players.active)
}

func TestAppView(t *testing.T) {
	a := NewApp(Config{Catalog: testCatalog(t), Rasterizer: stubRasterizer{}, Saver: &memSaver{}, ShowPreview: true})
	defer a.Close()
	assert.Equal(t, "Loading...", a.View())

	a.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	view := a.View()
	assert.Contains(t, view, "1. PLAYER")
	assert.Contains(t, view, "2. TEAM")
	assert.Contains(t, view, "3. SOLD PRICE")
	assert.Contains(t, view, card.PlaceholderTitle)

	// narrow terminals drop the preview
	a.Update(tea.WindowSizeMsg{Width: 70, Height: 50})
	assert.NotContains(t, a.View(), card.PlaceholderTitle)

	a.Update(tea.KeyMsg{Type: tea.KeyF1})
	assert.True(t, a.help.ShowAll)
}

func TestAppQuit(t *testing.T) {
	a := newTestApp(t, stubRasterizer{}, &memSaver{}, nil)
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Nil(t, a.unsubscribe)
}

func TestAppPreviewReusesGridLogo(t *testing.T) {
	a := newTestApp(t, stubRasterizer{}, &memSaver{}, nil)
	logo := solid(color.RGBA{255, 200, 0, 255})
	a.Update(logoMsg{teamID: "csk", img: logo})

	a.Update(runes("kohli"))
	a.Update(press(tea.KeyEnter))
	a.Update(press(tea.KeyEnter))

	assert.Equal(t, "csk", a.sel.Team.ID)
	assert.True(t, a.preview.logo.Loaded())
	assert.Equal(t, logo, a.preview.logoImg)
}

func TestChanNotifierWaitsForKeyedResults(t *testing.T) {
	notes := make(chanNotifier, 2)
	info := export.Notification{Kind: export.KindInfo, Message: export.MsgReset}
	notes.Notify(info)
	notes.Notify(info)

	// unkeyed and loading notifications are dropped once the buffer is full
	notes.Notify(info)
	notes.Notify(export.Notification{Kind: export.KindLoading, Message: export.MsgGenerating, Key: "x"})
	assert.Len(t, notes, 2)

	done := make(chan struct{})
	go func() {
		notes.Notify(export.Notification{Kind: export.KindSuccess, Message: export.MsgSuccess, Key: "x"})
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("keyed success should wait for room instead of being dropped")
	case <-time.After(50 * time.Millisecond):
	}

	<-notes
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("keyed success was not delivered")
	}

	<-notes
	last := <-notes
	assert.Equal(t, export.KindSuccess, last.Kind)
	assert.Equal(t, "x", last.Key)
}
