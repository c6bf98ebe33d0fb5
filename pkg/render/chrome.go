package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"time"

	"github.com/charmbracelet/log"
	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"github.com/auctionpost/auctionpost/pkg/card"
)

const defaultChromeTimeout = 30 * time.Second

// waitForImages resolves once every <img> on the page has loaded or failed.
// It listens rather than assigning onerror so the inline short-name
// fallback on the logo still runs.
const waitForImages = `Promise.all(Array.from(document.images).map(img =>
	img.complete ? true : new Promise(done => {
		img.addEventListener('load', () => done(true), { once: true });
		img.addEventListener('error', () => done(true), { once: true });
	})
)).then(() => true)`

// Chrome renders the card as HTML in a headless browser and screenshots
// the #card element. With a remote URL it attaches to a running browser
// (as in a container sidecar); otherwise it launches a local one.
type Chrome struct {
	remoteURL string
	timeout   time.Duration
	logger    *log.Logger
}

// NewChrome returns a Chrome rasterizer
func NewChrome(remoteURL string, timeout time.Duration, logger *log.Logger) *Chrome {
	if timeout <= 0 {
		timeout = defaultChromeTimeout
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Chrome{remoteURL: remoteURL, timeout: timeout, logger: logger}
}

func (c *Chrome) allocator(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.remoteURL != "" {
		return chromedp.NewRemoteAllocator(ctx, c.remoteURL)
	}
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.DisableGPU,
		chromedp.Flag("hide-scrollbars", true),
	)
	return chromedp.NewExecAllocator(ctx, opts...)
}

// Rasterize implements Rasterizer
func (c *Chrome) Rasterize(ctx context.Context, v card.View, scale int) (image.Image, error) {
	if scale < 1 {
		scale = 1
	}

	doc, err := CardHTML(v)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	allocCtx, cancelAlloc := c.allocator(ctx)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(c.logger.Debugf))
	defer cancelBrowser()

	var buf []byte
	err = chromedp.Run(browserCtx,
		loadCard(doc, scale),
		chromedp.Screenshot("#card", &buf, chromedp.ByQuery),
	)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("chrome render timed out after %s: %w", c.timeout, err)
		}
		return nil, fmt.Errorf("chrome render failed: %w", err)
	}

	img, err := png.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("failed to decode screenshot: %w", err)
	}
	c.logger.Debug("chrome render complete", "bytes", len(buf), "bounds", img.Bounds())
	return img, nil
}

// loadCard opens doc and waits until the card and its images have settled
func loadCard(doc []byte, scale int) chromedp.Tasks {
	var loaded bool
	return chromedp.Tasks{
		chromedp.EmulateViewport(card.Width, card.Height, chromedp.EmulateScale(float64(scale))),
		emulation.SetDefaultBackgroundColorOverride().WithColor(&cdp.RGBA{R: 0, G: 0, B: 0, A: 0}),
		chromedp.Navigate(dataURL(doc)),
		chromedp.WaitVisible("#card", chromedp.ByQuery),
		chromedp.Evaluate(waitForImages, &loaded, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
	}
}
