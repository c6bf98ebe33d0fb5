package card

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/auctionpost/auctionpost/pkg/models"
)

// Base is the dark card body color (#0a0f1a)
var Base = colorful.Color{R: 10.0 / 255, G: 15.0 / 255, B: 26.0 / 255}

var (
	fallbackAccent = colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	fallbackText   = colorful.Color{R: 1, G: 1, B: 1}
)

// Palette is a team's colors parsed once per derivation
type Palette struct {
	Primary      colorful.Color
	Secondary    colorful.Color
	Text         colorful.Color
	GradientFrom colorful.Color
	GradientTo   colorful.Color
}

// NewPalette parses the team's hex colors. A malformed value falls back to
// gray (white for text) so a bad catalog entry cannot break rendering.
func NewPalette(t models.Team) Palette {
	return Palette{
		Primary:      parseHex(t.PrimaryColor, fallbackAccent),
		Secondary:    parseHex(t.SecondaryColor, fallbackAccent),
		Text:         parseHex(t.TextColor, fallbackText),
		GradientFrom: parseHex(t.GradientFrom, fallbackAccent),
		GradientTo:   parseHex(t.GradientTo, fallbackAccent),
	}
}

func parseHex(s string, fallback colorful.Color) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return fallback
	}
	return c
}

// Tint mixes c into the card base at the given strength (0-1)
func Tint(c colorful.Color, strength float64) colorful.Color {
	return Base.BlendRgb(c, strength).Clamped()
}

// NRGBA converts c with the given opacity (0-1)
func NRGBA(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return color.NRGBA{R: r, G: g, B: b, A: uint8(alpha*255 + 0.5)}
}

// CSS formats c as rgba() for the HTML backend
func CSS(c colorful.Color, alpha float64) string {
	n := NRGBA(c, alpha)
	return fmt.Sprintf("rgba(%d,%d,%d,%.2f)", n.R, n.G, n.B, float64(n.A)/255)
}
