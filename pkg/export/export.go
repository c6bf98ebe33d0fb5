// Package export turns the current selection into a saved JPEG, reporting
// progress through a Notifier.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/auctionpost/auctionpost/pkg/card"
	"github.com/auctionpost/auctionpost/pkg/files"
	"github.com/auctionpost/auctionpost/pkg/models"
	"github.com/auctionpost/auctionpost/pkg/render"
	"github.com/auctionpost/auctionpost/pkg/state"
)

var (
	ErrIncomplete = errors.New("player, team and price are required")
	ErrBusy       = errors.New("export already in progress")
	ErrPanic      = errors.New("rasterizer panicked")
)

// Saver persists an encoded card under name and returns where it went
type Saver interface {
	Save(name string, data []byte) (string, error)
}

// DirSaver writes files into Dir atomically
type DirSaver struct {
	Dir string
}

func (s DirSaver) Save(name string, data []byte) (string, error) {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, name)
	if err := files.WriteFileAtomic(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// Options tunes the output
type Options struct {
	Scale   int
	Quality int
	Suffix  string
}

// OptionsFromSettings maps the output settings section
func OptionsFromSettings(s models.OutputSettings) Options {
	return Options{Scale: s.Scale, Quality: s.Quality, Suffix: s.Suffix}
}

// Result describes a finished export
type Result struct {
	ID       string        `json:"id" yaml:"id"`
	Path     string        `json:"path" yaml:"path"`
	Filename string        `json:"filename" yaml:"filename"`
	Bytes    int           `json:"bytes" yaml:"bytes"`
	Size     string        `json:"size" yaml:"size"`
	Width    int           `json:"width" yaml:"width"`
	Height   int           `json:"height" yaml:"height"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Pipeline runs one export at a time
type Pipeline struct {
	rasterizer render.Rasterizer
	saver      Saver
	notifier   Notifier
	logger     *log.Logger
	opts       Options

	busy atomic.Bool
}

// New creates a Pipeline. A nil notifier or logger discards output.
func New(r render.Rasterizer, s Saver, n Notifier, logger *log.Logger, opts Options) *Pipeline {
	if n == nil {
		n = Discard
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Scale < 1 {
		opts.Scale = render.DefaultScale
	}
	if opts.Quality < 1 || opts.Quality > 100 {
		opts.Quality = render.DefaultQuality
	}
	if opts.Suffix == "" {
		opts.Suffix = DefaultSuffix
	}
	return &Pipeline{
		rasterizer: r,
		saver:      s,
		notifier:   n,
		logger:     logger,
		opts:       opts,
	}
}

// Filename is the name an export of p and t is saved under
func (p *Pipeline) Filename(pl models.Player, t models.Team) string {
	return Filename(pl, t, p.opts.Suffix)
}

// Busy reports whether an export is in flight
func (p *Pipeline) Busy() bool {
	return p.busy.Load()
}

// Run exports sel. It never mutates sel. A call made while another is in
// flight returns ErrBusy without notifying.
func (p *Pipeline) Run(ctx context.Context, sel models.Selection) (*Result, error) {
	if !sel.Complete() {
		p.notifier.Notify(Notification{Kind: KindError, Message: MsgIncomplete})
		return nil, ErrIncomplete
	}

	if !p.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer p.busy.Store(false)

	id := uuid.NewString()
	p.notifier.Notify(Notification{Kind: KindLoading, Message: MsgGenerating, Key: id})

	logger := p.logger.With("export", id, "player", sel.Player.ID, "team", sel.Team.ID)
	logger.Info("export started", "price", sel.PriceText)

	start := time.Now()
	res, err := p.generate(ctx, sel)
	if err != nil {
		logger.Error("export failed", "err", err, "duration", time.Since(start))
		p.notifier.Notify(Notification{Kind: KindError, Message: MsgFailure, Key: id})
		return nil, err
	}

	res.ID = id
	res.Duration = time.Since(start)
	logger.Info("export complete", "path", res.Path, "size", res.Size, "duration", res.Duration)
	p.notifier.Notify(Notification{Kind: KindSuccess, Message: MsgSuccess, Key: id})
	return res, nil
}

func (p *Pipeline) generate(ctx context.Context, sel models.Selection) (*Result, error) {
	img, err := p.rasterize(ctx, card.Derive(sel))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := render.EncodeJPEG(&buf, img, p.opts.Quality); err != nil {
		return nil, err
	}

	name := Filename(*sel.Player, *sel.Team, p.opts.Suffix)
	path, err := p.saver.Save(name, buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to save %s: %w", name, err)
	}

	b := img.Bounds()
	return &Result{
		Path:     path,
		Filename: name,
		Bytes:    buf.Len(),
		Size:     humanize.Bytes(uint64(buf.Len())),
		Width:    b.Dx(),
		Height:   b.Dy(),
	}, nil
}

func (p *Pipeline) rasterize(ctx context.Context, v card.View) (img image.Image, err error) {
	defer func() {
		if r := recover(); r != nil {
			img, err = nil, fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()

	img, err = p.rasterizer.Rasterize(ctx, v, p.opts.Scale)
	if err != nil {
		return nil, fmt.Errorf("failed to rasterize card: %w", err)
	}
	if img == nil {
		return nil, errors.New("rasterizer returned no image")
	}
	return img, nil
}

// Reset clears the selection and confirms it to the user
func Reset(store *state.Store, n Notifier) {
	store.Reset()
	if n != nil {
		n.Notify(Notification{Kind: KindInfo, Message: MsgReset})
	}
}
