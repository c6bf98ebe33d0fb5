// Package render rasterizes a card.View into a bitmap and encodes it.
package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"

	"github.com/charmbracelet/log"
	xdraw "golang.org/x/image/draw"

	"github.com/auctionpost/auctionpost/pkg/card"
	"github.com/auctionpost/auctionpost/pkg/models"
)

// DefaultScale is the oversampling factor relative to the logical card size
const DefaultScale = 2

// DefaultQuality is the JPEG quality (0.95 on a 0-1 scale)
const DefaultQuality = 95

// ErrUnknownBackend is returned by New for an unsupported backend name
var ErrUnknownBackend = errors.New("unknown render backend")

// Rasterizer draws a view at scale times its logical size
type Rasterizer interface {
	Rasterize(ctx context.Context, v card.View, scale int) (image.Image, error)
}

// NewLogoSource returns a Fetcher when settings allow network logos
func NewLogoSource(settings models.RenderSettings, logger *log.Logger) LogoSource {
	if !settings.FetchLogos {
		return DisabledLogos{}
	}
	return NewFetcher(settings.LogoTimeout, logger)
}

// New builds the rasterizer selected in settings. The native backend
// draws logos from logos, so a caller that also previews logos can share
// one cache; nil disables them. Chrome loads logos itself.
func New(settings models.RenderSettings, logos LogoSource, logger *log.Logger) (Rasterizer, error) {
	switch settings.Backend {
	case "", models.BackendNative:
		if logos == nil {
			logos = DisabledLogos{}
		}
		return NewNative(logos), nil
	case models.BackendChrome:
		return NewChrome(settings.ChromeURL, settings.Timeout, logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, settings.Backend)
	}
}

// Size returns the pixel dimensions of a card drawn at scale
func Size(scale int) (int, int) {
	if scale < 1 {
		scale = 1
	}
	return card.Width * scale, card.Height * scale
}

// EncodeJPEG flattens img onto opaque black, which is what transparent
// regions look like in a format without alpha, and writes it as JPEG.
func EncodeJPEG(w io.Writer, img image.Image, quality int) error {
	if quality < 1 || quality > 100 {
		quality = DefaultQuality
	}

	b := img.Bounds()
	flat := image.NewRGBA(b)
	xdraw.Draw(flat, b, image.NewUniform(color.Black), image.Point{}, xdraw.Src)
	xdraw.Draw(flat, b, img, b.Min, xdraw.Over)

	if err := jpeg.Encode(w, flat, &jpeg.Options{Quality: quality}); err != nil {
		return fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return nil
}
