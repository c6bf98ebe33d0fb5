package tui

import (
	"context"
	"image"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/auctionpost/auctionpost/pkg/export"
	"github.com/auctionpost/auctionpost/pkg/models"
	"github.com/auctionpost/auctionpost/pkg/render"
)

// captionKey marks notifications produced in-process by the copy command
const captionKey = "caption"

const (
	msgCaptionCopied = "Caption copied to clipboard"
	msgCaptionFailed = "Failed to copy caption"
	msgCaptionEmpty  = "Select a player and team first"
)

// notificationMsg delivers an export.Notification to the toast stack
type notificationMsg export.Notification

type exportDoneMsg struct {
	result *export.Result
	err    error
}

type logoMsg struct {
	teamID string
	img    image.Image
	err    error
}

// chanNotifier forwards pipeline notifications into the program. A keyed
// success or error settles a loading toast, so it waits for room; it only
// comes from the export goroutine. Anything else is dropped when the buffer
// is full, since Reset notifies from inside Update.
type chanNotifier chan export.Notification

func (c chanNotifier) Notify(n export.Notification) {
	if n.Key != "" && n.Kind != export.KindLoading {
		c <- n
		return
	}
	select {
	case c <- n:
	default:
	}
}

func waitForNotification(ch <-chan export.Notification) tea.Cmd {
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return notificationMsg(n)
	}
}

func exportCmd(p *export.Pipeline, sel models.Selection) tea.Cmd {
	return func() tea.Msg {
		res, err := p.Run(context.Background(), sel)
		return exportDoneMsg{result: res, err: err}
	}
}

func loadLogoCmd(src render.LogoSource, t models.Team) tea.Cmd {
	return func() tea.Msg {
		img, err := src.Logo(context.Background(), t.LogoURL)
		return logoMsg{teamID: t.ID, img: img, err: err}
	}
}

func copyCaptionCmd(copyFn func(string) error, caption string) tea.Cmd {
	return func() tea.Msg {
		if err := copyFn(caption); err != nil {
			return notificationMsg{Kind: export.KindError, Message: msgCaptionFailed, Key: captionKey}
		}
		return notificationMsg{Kind: export.KindSuccess, Message: msgCaptionCopied, Key: captionKey}
	}
}
