package render

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auctionpost/auctionpost/pkg/card"
	"github.com/auctionpost/auctionpost/pkg/models"
)

type stubLogos struct {
	img   image.Image
	err   error
	calls int
}

func (s *stubLogos) Logo(context.Context, string) (image.Image, error) {
	s.calls++
	return s.img, s.err
}

func redTeam(pattern models.Pattern) *models.Team {
	return &models.Team{
		ID:             "red",
		Name:           "Red Team",
		ShortName:      "RED",
		PrimaryColor:   "#FF0000",
		SecondaryColor: "#FF0000",
		TextColor:      "#FFFFFF",
		GradientFrom:   "#FF0000",
		GradientTo:     "#FF0000",
		LogoURL:        "https://example.invalid/red.png",
		BgPattern:      pattern,
	}
}

func readyView(pattern models.Pattern, priceText string) card.View {
	return card.Derive(models.Selection{
		Player: &models.Player{
			ID:         "virat-kohli",
			FirstName:  "Virat",
			Surname:    "Kohli",
			FullName:   "Virat Kohli",
			Country:    "India",
			Specialism: models.SpecialismBatter,
		},
		Team:      redTeam(pattern),
		PriceText: priceText,
		Revision:  1,
	})
}

func TestNativeSize(t *testing.T) {
	tests := []struct {
		name          string
		scale         int
		width, height int
	}{
		{"default scale", DefaultScale, 800, 1000},
		{"scale one", 1, 400, 500},
		{"zero clamps to one", 0, 400, 500},
	}

	r := NewNative(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := r.Rasterize(context.Background(), card.Derive(models.Selection{}), tt.scale)
			require.NoError(t, err)
			assert.Equal(t, tt.width, img.Bounds().Dx())
			assert.Equal(t, tt.height, img.Bounds().Dy())
		})
	}
}

func TestNativeRoundedCorners(t *testing.T) {
	img, err := NewNative(nil).Rasterize(context.Background(), readyView(models.PatternWaves, "2"), 2)
	require.NoError(t, err)

	_, _, _, a := img.At(0, 0).RGBA()
	assert.Zero(t, a, "corner should be transparent")
	_, _, _, a = img.At(400, 500).RGBA()
	assert.Equal(t, uint32(0xffff), a, "body should be opaque")
}

func TestNativePriceTagUsesTeamColors(t *testing.T) {
	img, err := NewNative(nil).Rasterize(context.Background(), readyView(models.PatternMesh, "2"), 2)
	require.NoError(t, err)

	// left edge of the tag, clear of its text
	c := color.NRGBAModel.Convert(img.At(220, 740)).(color.NRGBA)
	assert.Greater(t, c.R, uint8(200))
	assert.Less(t, c.G, uint8(60))
	assert.Less(t, c.B, uint8(60))
}

func TestNativeLogoFailureStillRenders(t *testing.T) {
	logos := &stubLogos{err: errors.New("boom")}
	img, err := NewNative(logos).Rasterize(context.Background(), readyView(models.PatternRadial, "0.5"), 1)
	require.NoError(t, err)
	assert.NotNil(t, img)
	assert.Equal(t, 1, logos.calls)
}

func TestNativeDrawsLoadedLogo(t *testing.T) {
	logo := image.NewRGBA(image.Rect(0, 0, 64, 64))
	logos := &stubLogos{img: logo}
	_, err := NewNative(logos).Rasterize(context.Background(), readyView(models.PatternDiagonal, "10"), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, logos.calls)
}

func TestNativeEmptyViewSkipsLogos(t *testing.T) {
	logos := &stubLogos{}
	_, err := NewNative(logos).Rasterize(context.Background(), card.Derive(models.Selection{}), 1)
	require.NoError(t, err)
	assert.Zero(t, logos.calls)
}

func TestNativeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewNative(nil).Rasterize(ctx, readyView(models.PatternWaves, "2"), 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEncodeJPEG(t *testing.T) {
	img, err := NewNative(nil).Rasterize(context.Background(), readyView(models.PatternWaves, "24.75"), 1)
	require.NoError(t, err)

	for _, q := range []int{DefaultQuality, 0, 150} {
		var buf bytes.Buffer
		require.NoError(t, EncodeJPEG(&buf, img, q))

		decoded, err := jpeg.Decode(&buf)
		require.NoError(t, err)
		assert.Equal(t, img.Bounds(), decoded.Bounds())
	}
}

func TestNew(t *testing.T) {
	r, err := New(models.RenderSettings{}, nil, nil)
	require.NoError(t, err)
	require.IsType(t, &Native{}, r)
	assert.IsType(t, DisabledLogos{}, r.(*Native).logos)

	shared := NewFetcher(time.Second, nil)
	r, err = New(models.RenderSettings{Backend: models.BackendNative}, shared, nil)
	require.NoError(t, err)
	require.IsType(t, &Native{}, r)
	assert.Same(t, shared, r.(*Native).logos)

	r, err = New(models.RenderSettings{Backend: models.BackendChrome}, shared, nil)
	require.NoError(t, err)
	assert.IsType(t, &Chrome{}, r)

	_, err = New(models.RenderSettings{Backend: "canvas"}, nil, nil)
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestNewLogoSource(t *testing.T) {
	assert.IsType(t, DisabledLogos{}, NewLogoSource(models.RenderSettings{}, nil))
	assert.IsType(t, &Fetcher{}, NewLogoSource(models.RenderSettings{FetchLogos: true, LogoTimeout: time.Second}, nil))
}

func TestFitRect(t *testing.T) {
	got := fitRect(image.Rect(0, 0, 64, 64), image.Rect(0, 0, 200, 100))
	assert.Equal(t, image.Rect(0, 16, 64, 48), got)
}
