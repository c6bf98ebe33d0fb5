package render

import (
	"context"
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/auctionpost/auctionpost/pkg/card"
	"github.com/auctionpost/auctionpost/pkg/models"
)

const cornerRadius = 12

// Native draws the card with golang.org/x/image, no browser required
type Native struct {
	logos LogoSource
}

// NewNative returns a rasterizer that loads logos from logos
func NewNative(logos LogoSource) *Native {
	if logos == nil {
		logos = DisabledLogos{}
	}
	return &Native{logos: logos}
}

// Rasterize implements Rasterizer. A logo that cannot be loaded is drawn
// as the team short name; it never fails the render.
func (n *Native) Rasterize(ctx context.Context, v card.View, scale int) (image.Image, error) {
	if scale < 1 {
		scale = 1
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := newCanvas(scale)
	if !v.Ready() {
		drawPlaceholder(c, v.Placeholder)
		return clipCorners(c), nil
	}

	var logo image.Image
	if v.Team.LogoURL != "" {
		if img, err := n.logos.Logo(ctx, v.Team.LogoURL); err == nil {
			logo = img
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	drawCard(c, v, logo)
	return clipCorners(c), nil
}

// clipCorners makes everything outside the rounded card outline transparent
func clipCorners(c *canvas) *image.RGBA {
	out := image.NewRGBA(c.img.Bounds())
	mask := c.roundRectCoverage(0, 0, card.Width, card.Height, cornerRadius)
	xdraw.DrawMask(out, mask.r, c.img, mask.r.Min, mask, mask.r.Min, xdraw.Src)
	return out
}

var (
	white  = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	shadow = color.NRGBA{A: 90}
)

func fade(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = uint8(float64(c.A)*clamp01(alpha) + 0.5)
	return c
}

func drawPlaceholder(c *canvas, p card.Placeholder) {
	c.fillRect(0, 0, card.Width, card.Height, uniform(card.NRGBA(card.Base, 1)))

	c.strokeCircle(200, 210, 40, 2, uniform(fade(white, 0.1)))
	c.fillCircle(200, 210, 30, uniform(fade(white, 0.04)))

	title := textStyle{bold: true, size: 16, color: fade(white, 0.6)}
	c.centerText(c.fitText(title, p.Title, 340), p.Title, 200, 290)

	sub := textStyle{size: 12, color: fade(white, 0.4)}
	c.centerText(c.fitText(sub, p.Subtitle, 340), p.Subtitle, 200, 310)
}

func drawCard(c *canvas, v card.View, logo image.Image) {
	pal := v.Team.Palette
	primary := card.NRGBA(pal.Primary, 1)
	secondary := card.NRGBA(pal.Secondary, 1)
	text := card.NRGBA(pal.Text, 1)
	gradTo := card.NRGBA(pal.GradientTo, 1)

	// body
	c.fillRect(0, 0, card.Width, card.Height, uniform(card.NRGBA(card.Base, 1)))
	c.fillRect(0, 0, card.Width, card.Height, c.linear(0, 0, 0, card.Height,
		stop{0, card.NRGBA(pal.GradientFrom, 0.125)},
		stop{0.4, fade(primary, 0)},
		stop{0.6, fade(gradTo, 0)},
		stop{1, fade(gradTo, 0.125)},
	))

	drawPattern(c, v.Team.Pattern, primary, secondary)
	drawBadge(c, primary)

	// player avatar
	c.fillCircle(200, 104, 96, c.radial(200, 104, 96,
		stop{0, fade(primary, 0.3)},
		stop{1, fade(primary, 0)},
	))
	c.strokeCircle(200, 104, 72, 2, uniform(fade(primary, 0.4)))
	c.fillCircle(200, 104, 64, c.linear(136, 40, 264, 168,
		stop{0, card.NRGBA(pal.GradientFrom, 1)},
		stop{1, gradTo},
	))
	c.strokeCircle(200, 104, 64, 4, uniform(primary))

	initials := textStyle{bold: true, size: 36, color: text}
	c.centerText(initials, v.Player.Initials, 200, 117)

	// country badge overlapping the avatar
	country := textStyle{bold: true, size: 10, tracking: 0.1, color: text}
	cw := c.measure(country, v.Player.Country) + 20
	c.fillRoundRect(200-cw/2, 156, 200+cw/2, 176, 10, uniform(primary))
	c.centerText(country, v.Player.Country, 200, 170)

	// names
	first := textStyle{bold: true, size: 30, color: white}
	c.centerText(c.fitText(first, v.Player.FirstName, 360), v.Player.FirstName, 200, 220)
	surname := textStyle{size: 20, tracking: 0.05, color: fade(white, 0.7)}
	c.centerText(c.fitText(surname, v.Player.Surname, 360), v.Player.Surname, 200, 246)

	drawSoldTo(c, primary)
	drawTeamRow(c, v.Team, logo, primary, text)
	drawPriceTag(c, v, primary, gradTo, text)

	tag := textStyle{size: 9, tracking: 0.05, color: fade(white, 0.3)}
	c.text(tag, card.Hashtag, card.Width-16-c.measure(tag, card.Hashtag), card.Height-12)
}

func drawPattern(c *canvas, p models.Pattern, primary, secondary color.NRGBA) {
	switch p {
	case models.PatternDiagonal:
		drawStripes(c, primary)
	case models.PatternRadial:
		drawRings(c, primary)
	case models.PatternMesh:
		drawMesh(c, primary)
	default:
		drawWaves(c, primary, secondary)
	}
}

// wave returns the boundary height of a sine band at logical x
func wave(base, amp, phase, x float64) float64 {
	return base - amp*math.Sin(2*math.Pi*(x+phase)/500)
}

func drawWaves(c *canvas, primary, secondary color.NRGBA) {
	s := c.scale
	band := func(base, amp, phase float64, above bool, src image.Image) {
		y0, y1 := 0.0, base+amp+2
		if !above {
			y0, y1 = base-amp-2, card.Height
		}
		c.fill(coverage{
			r: c.pixelRect(0, y0, card.Width, y1),
			f: func(x, y float64) float64 {
				edge := wave(base, amp, phase, x/s) * s
				if above {
					return edge - y + 0.5
				}
				return y - edge + 0.5
			},
		}, src)
	}

	band(150, 20, 120, true, c.linear(0, 0, 0, 170,
		stop{0, fade(secondary, 0.3)}, stop{1, fade(secondary, 0.02)}))
	band(120, 30, 50, true, c.linear(0, 0, 0, 150,
		stop{0, fade(primary, 0.4)}, stop{1, fade(primary, 0.05)}))
	band(380, 20, 200, false, c.linear(0, 360, 0, card.Height,
		stop{0, fade(secondary, 0.02)}, stop{1, fade(secondary, 0.3)}))
	band(410, 25, 0, false, c.linear(0, 385, 0, card.Height,
		stop{0, fade(primary, 0.05)}, stop{1, fade(primary, 0.4)}))
}

func drawStripes(c *canvas, primary color.NRGBA) {
	const spacing, width = 24.0, 8.0
	s := c.scale
	c.fill(coverage{
		r: c.img.Bounds(),
		f: func(x, y float64) float64 {
			d := math.Mod((x+y)/s, spacing)
			return math.Min(d, width-d)*s/math.Sqrt2 + 0.5
		},
	}, uniform(fade(primary, 0.08)))
}

func drawRings(c *canvas, primary color.NRGBA) {
	const spacing, width = 28.0, 1.5
	cx, cy := c.px(200), c.px(104)
	s := c.scale
	c.fill(coverage{
		r: c.img.Bounds(),
		f: func(x, y float64) float64 {
			m := math.Mod(math.Hypot(x-cx, y-cy)/s, spacing)
			return (width/2-math.Min(m, spacing-m))*s + 0.5
		},
	}, c.radial(200, 104, 320,
		stop{0, fade(primary, 0.2)}, stop{1, fade(primary, 0.02)}))
}

func drawMesh(c *canvas, primary color.NRGBA) {
	const spacing = 25.0
	s := c.scale
	c.fill(coverage{
		r: c.img.Bounds(),
		f: func(x, y float64) float64 {
			dx := math.Mod(x/s, spacing)
			dy := math.Mod(y/s, spacing)
			d := math.Min(math.Min(dx, spacing-dx), math.Min(dy, spacing-dy))
			return (0.5-d)*s + 0.5
		},
	}, uniform(fade(primary, 0.1)))
}

func drawBadge(c *canvas, primary color.NRGBA) {
	const x0, y0, x1, y1 = 314.0, 16.0, 384.0, 64.0
	c.fillRoundRect(x0, y0, x1, y1, 8, uniform(fade(white, 0.08)))
	c.strokeRoundRect(x0, y0, x1, y1, 8, 1, uniform(fade(white, 0.15)))

	cx := (x0 + x1) / 2
	small := textStyle{bold: true, size: 9, tracking: 0.2, color: fade(white, 0.6)}
	c.centerText(small, card.BadgeSponsor, cx, 29)
	c.centerText(textStyle{bold: true, size: 18, color: primary}, card.BadgeTitle, cx, 47)
	tiny := textStyle{bold: true, size: 7, tracking: 0.25, color: fade(white, 0.6)}
	c.centerText(tiny, card.BadgeSubtitle, cx, 58)
}

func drawSoldTo(c *canvas, primary color.NRGBA) {
	st := textStyle{bold: true, size: 12, tracking: 0.3, color: fade(white, 0.5)}
	w := c.measure(st, card.SoldLabel)
	c.centerText(st, card.SoldLabel, 200, 274)

	left := 200 - w/2 - 12
	right := 200 + w/2 + 12
	c.fillRect(60, 269.5, left, 270.5, c.linear(60, 0, left, 0,
		stop{0, fade(primary, 0)}, stop{1, primary}))
	c.fillRect(right, 269.5, 340, 270.5, c.linear(right, 0, 340, 0,
		stop{0, primary}, stop{1, fade(primary, 0)}))
}

func drawTeamRow(c *canvas, t card.TeamStyle, logo image.Image, primary, text color.NRGBA) {
	const size, gap, top = 32.0, 10.0, 290.0

	name := c.fitText(textStyle{bold: true, size: 18, color: primary}, t.Name, 300)
	nw := c.measure(name, t.Name)
	x := 200 - (size+gap+nw)/2

	if logo != nil {
		dst := c.pixelRect(x, top, x+size, top+size)
		xdraw.CatmullRom.Scale(c.img, fitRect(dst, logo.Bounds()), logo, logo.Bounds(), xdraw.Over, nil)
	} else {
		c.fillRoundRect(x, top, x+size, top+size, 8, uniform(primary))
		short := c.fitText(textStyle{bold: true, size: 11, color: text}, t.ShortName, size-4)
		c.centerText(short, t.ShortName, x+size/2, top+size/2+4)
	}

	c.text(name, t.Name, x+size+gap, top+size/2+6)
}

// fitRect centers src's aspect ratio inside dst
func fitRect(dst, src image.Rectangle) image.Rectangle {
	sw, sh := src.Dx(), src.Dy()
	if sw == 0 || sh == 0 {
		return dst
	}
	scale := math.Min(float64(dst.Dx())/float64(sw), float64(dst.Dy())/float64(sh))
	w := int(math.Round(float64(sw) * scale))
	h := int(math.Round(float64(sh) * scale))
	x := dst.Min.X + (dst.Dx()-w)/2
	y := dst.Min.Y + (dst.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}

func drawPriceTag(c *canvas, v card.View, primary, gradTo, text color.NRGBA) {
	const top, bottom, baseline = 340.0, 400.0, 383.0

	symbol := currencySymbol()
	symStyle := textStyle{bold: true, size: 20, color: text}
	valStyle := textStyle{bold: true, size: 36, color: text}
	unitStyle := textStyle{bold: true, size: 20, color: fade(text, 0.85)}

	value := v.Price.Value
	unit := string(v.Price.Unit)

	sw := c.measure(symStyle, symbol)
	vw := c.measure(valStyle, value)
	uw := 0.0
	if unit != "" {
		uw = 6 + c.measure(unitStyle, unit)
	}
	content := sw + 4 + vw + uw
	width := math.Max(content+48, 200)
	x0, x1 := 200-width/2, 200+width/2

	c.fillRoundRect(x0+2, top+6, x1+2, bottom+6, cornerRadius, uniform(shadow))
	c.fillRoundRect(x0, top, x1, bottom, cornerRadius, c.linear(x0, top, x1, bottom,
		stop{0, primary}, stop{1, gradTo}))
	c.strokeRoundRect(x0, top, x1, bottom, cornerRadius, 1, uniform(fade(white, 0.15)))

	x := 200 - content/2
	c.text(symStyle, symbol, x, baseline)
	x += sw + 4
	c.text(valStyle, value, x, baseline)
	if unit != "" {
		c.text(unitStyle, unit, x+vw+6, baseline)
	}
}
