package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/auctionpost/auctionpost/pkg/export"
)

const (
	toastDuration = 3 * time.Second
	maxToasts     = 3
)

type toast struct {
	id int
	export.Notification
}

// toastStack holds visible notifications. A notification whose key matches
// an existing toast replaces it in place instead of stacking.
type toastStack struct {
	items  []toast
	nextID int
}

// push adds or replaces n and returns the id the expiry timer must carry
func (s *toastStack) push(n export.Notification) int {
	s.nextID++
	id := s.nextID

	if n.Key != "" {
		for i := range s.items {
			if s.items[i].Key == n.Key {
				s.items[i] = toast{id: id, Notification: n}
				return id
			}
		}
	}

	s.items = append(s.items, toast{id: id, Notification: n})
	if len(s.items) > maxToasts {
		s.items = s.items[len(s.items)-maxToasts:]
	}
	return id
}

// expire removes the toast with id. A replaced toast has a new id, so a
// stale timer does nothing.
func (s *toastStack) expire(id int) {
	for i, t := range s.items {
		if t.id == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

func (s *toastStack) len() int { return len(s.items) }

type toastExpiredMsg struct{ id int }

// scheduleExpiry returns the timer for a toast; loading toasts stay until
// they are replaced
func scheduleExpiry(id int, kind export.Kind) tea.Cmd {
	if kind == export.KindLoading {
		return nil
	}
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

var toastColors = map[export.Kind]string{
	export.KindInfo:    ColorPrimary,
	export.KindLoading: ColorWarning,
	export.KindSuccess: ColorSuccess,
	export.KindError:   ColorError,
}

var toastIcons = map[export.Kind]string{
	export.KindInfo:    "ℹ",
	export.KindLoading: "…",
	export.KindSuccess: "✓",
	export.KindError:   "✗",
}

func (s *toastStack) View(width int) string {
	if len(s.items) == 0 {
		return ""
	}
	if width < 10 {
		width = 10
	}

	var lines []string
	for _, t := range s.items {
		style := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWhite)).
			Background(lipgloss.Color(toastColors[t.Kind])).
			Padding(0, 1)
		text := wordwrap.String(toastIcons[t.Kind]+" "+t.Message, width-2)
		lines = append(lines, style.Render(text))
	}
	return strings.Join(lines, "\n")
}
