package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/go-retryablehttp"
	lru "github.com/hashicorp/golang-lru/v2"
	_ "golang.org/x/image/webp"
)

const (
	maxLogoBytes   = 4 << 20
	logoCacheSize  = 32
	defaultLogoTTL = 5 * time.Second
)

var (
	ErrNoLogo       = errors.New("team has no logo url")
	ErrLogosOff     = errors.New("logo fetching disabled")
	ErrLogoResponse = errors.New("unexpected logo response")
)

// LogoSource loads a team logo. Callers treat any error as "use the
// fallback"; it never aborts a render.
type LogoSource interface {
	Logo(ctx context.Context, url string) (image.Image, error)
}

// DisabledLogos is a LogoSource that always falls back
type DisabledLogos struct{}

func (DisabledLogos) Logo(context.Context, string) (image.Image, error) {
	return nil, ErrLogosOff
}

// Fetcher downloads and decodes logos over HTTP. Successful decodes are
// cached by URL; failures are not, so a later render retries.
type Fetcher struct {
	client  *retryablehttp.Client
	cache   *lru.Cache[string, image.Image]
	timeout time.Duration
}

// NewFetcher returns a Fetcher whose requests give up after timeout
func NewFetcher(timeout time.Duration, logger *log.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = defaultLogoTTL
	}

	client := retryablehttp.NewClient()
	client.RetryMax = 1
	client.RetryWaitMin = 100 * time.Millisecond
	client.RetryWaitMax = 500 * time.Millisecond
	client.Logger = nil
	if logger != nil {
		client.Logger = leveledLogger{logger.WithPrefix("logo")}
	}

	cache, _ := lru.New[string, image.Image](logoCacheSize)

	return &Fetcher{
		client:  client,
		cache:   cache,
		timeout: timeout,
	}
}

// Logo fetches and decodes url
func (f *Fetcher) Logo(ctx context.Context, url string) (image.Image, error) {
	if url == "" {
		return nil, ErrNoLogo
	}
	if img, ok := f.cache.Get(url); ok {
		return img, nil
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build logo request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch logo %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %d", ErrLogoResponse, url, resp.StatusCode)
	}

	img, _, err := image.Decode(io.LimitReader(resp.Body, maxLogoBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to decode logo %s: %w", url, err)
	}

	f.cache.Add(url, img)
	return img, nil
}

// leveledLogger adapts a charm logger to retryablehttp.LeveledLogger
type leveledLogger struct {
	l *log.Logger
}

func (a leveledLogger) Error(msg string, kv ...interface{}) { a.l.Error(msg, kv...) }
func (a leveledLogger) Info(msg string, kv ...interface{})  { a.l.Debug(msg, kv...) }
func (a leveledLogger) Debug(msg string, kv ...interface{}) { a.l.Debug(msg, kv...) }
func (a leveledLogger) Warn(msg string, kv ...interface{})  { a.l.Warn(msg, kv...) }
