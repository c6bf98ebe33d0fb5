package tui

import (
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/auctionpost/auctionpost/pkg/card"
	"github.com/auctionpost/auctionpost/pkg/catalog"
	"github.com/auctionpost/auctionpost/pkg/export"
	"github.com/auctionpost/auctionpost/pkg/models"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	return c
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestToastStack(t *testing.T) {
	t.Run("same key replaces in place", func(t *testing.T) {
		var s toastStack
		first := s.push(export.Notification{Kind: export.KindLoading, Message: export.MsgGenerating, Key: "k1"})
		second := s.push(export.Notification{Kind: export.KindSuccess, Message: export.MsgSuccess, Key: "k1"})

		if s.len() != 1 {
			t.Fatalf("expected 1 toast, got %d", s.len())
		}
		if s.items[0].Message != export.MsgSuccess {
			t.Errorf("expected replaced message, got %q", s.items[0].Message)
		}

		// the loading toast's timer must not remove its replacement
		s.expire(first)
		if s.len() != 1 {
			t.Errorf("stale expiry removed the toast")
		}
		s.expire(second)
		if s.len() != 0 {
			t.Errorf("expected empty stack, got %d", s.len())
		}
	})

	t.Run("unkeyed toasts stack up to the limit", func(t *testing.T) {
		var s toastStack
		for i := 0; i < maxToasts+2; i++ {
			s.push(export.Notification{Kind: export.KindInfo, Message: "note"})
		}
		if s.len() != maxToasts {
			t.Errorf("expected %d toasts, got %d", maxToasts, s.len())
		}
	})

	t.Run("view shows message", func(t *testing.T) {
		var s toastStack
		if s.View(80) != "" {
			t.Errorf("empty stack should render nothing")
		}
		s.push(export.Notification{Kind: export.KindError, Message: export.MsgFailure})
		if !strings.Contains(s.View(80), export.MsgFailure) {
			t.Errorf("view missing message: %q", s.View(80))
		}
	})
}

func TestScheduleExpiry(t *testing.T) {
	tests := []struct {
		kind    export.Kind
		wantCmd bool
	}{
		{export.KindLoading, false},
		{export.KindInfo, true},
		{export.KindSuccess, true},
		{export.KindError, true},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			got := scheduleExpiry(1, tt.kind) != nil
			if got != tt.wantCmd {
				t.Errorf("scheduleExpiry(%s) cmd = %v, want %v", tt.kind, got, tt.wantCmd)
			}
		})
	}
}

func TestPlayerPane(t *testing.T) {
	c := testCatalog(t)
	p := newPlayerPane(c.Players())
	p.setActive(true)
	p.setSize(60, 12)

	if len(p.results) != 10 {
		t.Fatalf("empty query should show 10 players, got %d", len(p.results))
	}

	p.cursor = 3
	p.updateInput(runes("kohli"))
	if p.cursor != 0 {
		t.Errorf("typing should reset the cursor, got %d", p.cursor)
	}
	if len(p.results) != 1 || p.results[0].ID != "virat-kohli" {
		t.Fatalf("unexpected results for kohli: %+v", p.results)
	}

	pl, ok := p.current()
	if !ok {
		t.Fatal("expected a highlighted player")
	}
	p.choose(pl)
	if p.search.Value() != "Virat Kohli" {
		t.Errorf("search text = %q, want full name", p.search.Value())
	}
	if !strings.Contains(p.View(), "Virat Kohli") {
		t.Errorf("view missing chosen player")
	}

	p.clear()
	if p.selected != "" || p.search.Value() != "" || len(p.results) != 10 {
		t.Errorf("clear left state behind: selected=%q query=%q results=%d", p.selected, p.search.Value(), len(p.results))
	}

	p.updateInput(runes("zzzz"))
	if _, ok := p.current(); ok {
		t.Errorf("no results should mean no current player")
	}
	if !strings.Contains(p.View(), "No players found") {
		t.Errorf("expected empty message")
	}
}

func TestPlayerPaneCursorWraps(t *testing.T) {
	p := newPlayerPane(testCatalog(t).Players())
	p.moveCursor(-1)
	if p.cursor != len(p.results)-1 {
		t.Errorf("cursor = %d, want last row", p.cursor)
	}
	p.moveCursor(1)
	if p.cursor != 0 {
		t.Errorf("cursor = %d, want 0", p.cursor)
	}
}

func TestTeamGridMove(t *testing.T) {
	g := newTeamGrid(testCatalog(t).Teams())

	tests := []struct {
		name   string
		dx, dy int
		want   int
	}{
		{"left wraps to end of row", -1, 0, 4},
		{"down to second row", 0, 1, 9},
		{"right wraps to start of row", 1, 0, 5},
		{"down wraps to first row", 0, 1, 0},
		{"up wraps to second row", 0, -1, 5},
	}
	for _, tt := range tests {
		g.move(tt.dx, tt.dy)
		if g.cursor != tt.want {
			t.Errorf("%s: cursor = %d, want %d", tt.name, g.cursor, tt.want)
		}
	}
}

func TestTeamGridLogoFallback(t *testing.T) {
	g := newTeamGrid(testCatalog(t).Teams())
	g.width = 64

	g.logoResult("csk", nil, errors.New("boom"))
	g.logoResult("mi", solid(color.RGBA{0, 75, 160, 255}), nil)

	if !g.fallbacks.Has("csk") {
		t.Errorf("csk should fall back to its short name")
	}
	if g.fallbacks.Has("mi") {
		t.Errorf("mi loaded and must not fall back")
	}
	if _, ok := g.logos["mi"]; !ok {
		t.Errorf("mi logo not stored")
	}
	if !strings.Contains(g.View(), "CSK") {
		t.Errorf("grid view should show the CSK short name")
	}
}

func TestPreviewLogoState(t *testing.T) {
	c := testCatalog(t)
	virat, _ := c.PlayerByID("virat-kohli")
	rcb, _ := c.TeamByID("rcb")
	mi, _ := c.TeamByID("mi")

	var p preview
	if p.setView(card.Derive(models.Selection{})) {
		t.Fatal("empty view should not request a logo")
	}
	if !strings.Contains(p.View(), card.PlaceholderTitle) {
		t.Errorf("placeholder missing title")
	}

	if !p.setView(card.Derive(models.Selection{Player: &virat, Team: &rcb})) {
		t.Fatal("mounting rcb should request its logo")
	}
	if p.setView(card.Derive(models.Selection{Player: &virat, Team: &rcb, PriceText: "2"})) {
		t.Error("same team should not request the logo again")
	}

	// result for a team that is not mounted is ignored
	p.logoResult("mi", solid(color.RGBA{0, 0, 255, 255}), nil)
	if p.logo.Loaded() || p.logoImg != nil {
		t.Error("stale logo applied")
	}

	p.logoResult("rcb", nil, errors.New("404"))
	if !p.logo.Fallback() {
		t.Error("failed load should switch to fallback")
	}
	if !strings.Contains(p.View(), "RCB") {
		t.Error("fallback should show the short name")
	}

	// a different team starts clean
	if !p.setView(card.Derive(models.Selection{Player: &virat, Team: &mi})) {
		t.Fatal("mounting mi should request its logo")
	}
	if p.logo.Fallback() {
		t.Error("fallback leaked across teams")
	}
	p.logoResult("mi", solid(color.RGBA{0, 0, 255, 255}), nil)
	if !p.logo.Loaded() || p.logoImg == nil {
		t.Error("mi logo should be applied")
	}

	if p.setView(card.Derive(models.Selection{})) || p.logo.TeamID() != "" {
		t.Error("emptying the card should reset logo state")
	}
}

func TestHalfBlocks(t *testing.T) {
	out := halfBlocks(solid(color.RGBA{255, 0, 0, 255}), 4, 2, card.Base)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}
	if strings.Count(out, "▀") != 8 {
		t.Errorf("expected 8 half blocks, got %d", strings.Count(out, "▀"))
	}
	if halfBlocks(nil, 4, 2, card.Base) != "" {
		t.Error("nil image should render nothing")
	}
}

func TestFitInside(t *testing.T) {
	dst := image.Rect(0, 0, 10, 10)
	got := fitInside(dst, image.Rect(0, 0, 20, 10))
	if got != image.Rect(0, 2, 10, 7) {
		t.Errorf("wide source: got %v", got)
	}
	got = fitInside(dst, image.Rect(0, 0, 5, 10))
	if got != image.Rect(2, 0, 7, 10) {
		t.Errorf("tall source: got %v", got)
	}
}

func TestRenderHeaderSteps(t *testing.T) {
	c := testCatalog(t)
	virat, _ := c.PlayerByID("virat-kohli")

	out := renderHeader(120, models.Selection{Player: &virat})
	if !strings.Contains(out, "● Player") {
		t.Errorf("player step should be done")
	}
	if !strings.Contains(out, "○ Team") || !strings.Contains(out, "○ Price") {
		t.Errorf("team and price steps should be pending")
	}
}

func solid(c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
