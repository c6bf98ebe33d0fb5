package render

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// canvas draws in logical card coordinates onto a scaled RGBA bitmap
type canvas struct {
	img   *image.RGBA
	scale float64
}

func newCanvas(scale int) *canvas {
	w, h := Size(scale)
	return &canvas{
		img:   image.NewRGBA(image.Rect(0, 0, w, h)),
		scale: float64(scale),
	}
}

func (c *canvas) px(v float64) float64 { return v * c.scale }

// pixelRect converts a logical box to the covering pixel rectangle
func (c *canvas) pixelRect(x0, y0, x1, y1 float64) image.Rectangle {
	r := image.Rect(
		int(math.Floor(c.px(x0))), int(math.Floor(c.px(y0))),
		int(math.Ceil(c.px(x1))), int(math.Ceil(c.px(y1))),
	)
	return r.Intersect(c.img.Bounds())
}

// coverage is a mask computed per pixel center, in pixel coordinates
type coverage struct {
	r image.Rectangle
	f func(x, y float64) float64
}

func (m coverage) ColorModel() color.Model { return color.AlphaModel }
func (m coverage) Bounds() image.Rectangle { return m.r }
func (m coverage) At(x, y int) color.Color {
	a := clamp01(m.f(float64(x)+0.5, float64(y)+0.5))
	return color.Alpha{A: uint8(a*255 + 0.5)}
}

func (c *canvas) fill(m coverage, src image.Image) {
	if m.r.Empty() {
		return
	}
	xdraw.DrawMask(c.img, m.r, src, m.r.Min, m, m.r.Min, xdraw.Over)
}

func (c *canvas) fillRect(x0, y0, x1, y1 float64, src image.Image) {
	r := c.pixelRect(x0, y0, x1, y1)
	if r.Empty() {
		return
	}
	xdraw.Draw(c.img, r, src, r.Min, xdraw.Over)
}

// fillCircle fills a disc centered at (cx, cy) with radius r (logical)
func (c *canvas) fillCircle(cx, cy, r float64, src image.Image) {
	pcx, pcy, pr := c.px(cx), c.px(cy), c.px(r)
	c.fill(coverage{
		r: c.pixelRect(cx-r-1, cy-r-1, cx+r+1, cy+r+1),
		f: func(x, y float64) float64 {
			return pr - math.Hypot(x-pcx, y-pcy) + 0.5
		},
	}, src)
}

// strokeCircle draws a ring of the given logical width inside radius r
func (c *canvas) strokeCircle(cx, cy, r, width float64, src image.Image) {
	pcx, pcy, pr, pw := c.px(cx), c.px(cy), c.px(r), c.px(width)
	c.fill(coverage{
		r: c.pixelRect(cx-r-1, cy-r-1, cx+r+1, cy+r+1),
		f: func(x, y float64) float64 {
			d := math.Hypot(x-pcx, y-pcy)
			return math.Min(pr-d+0.5, d-(pr-pw)+0.5)
		},
	}, src)
}

// roundRectCoverage is the anti-aliased coverage of a rounded box
func (c *canvas) roundRectCoverage(x0, y0, x1, y1, radius float64) coverage {
	px0, py0, px1, py1, pr := c.px(x0), c.px(y0), c.px(x1), c.px(y1), c.px(radius)
	return coverage{
		r: c.pixelRect(x0-1, y0-1, x1+1, y1+1),
		f: func(x, y float64) float64 {
			// distance to the inner rectangle shrunk by the radius
			dx := math.Max(math.Max(px0+pr-x, x-(px1-pr)), 0)
			dy := math.Max(math.Max(py0+pr-y, y-(py1-pr)), 0)
			return pr - math.Hypot(dx, dy) + 0.5
		},
	}
}

func (c *canvas) fillRoundRect(x0, y0, x1, y1, radius float64, src image.Image) {
	c.fill(c.roundRectCoverage(x0, y0, x1, y1, radius), src)
}

func (c *canvas) strokeRoundRect(x0, y0, x1, y1, radius, width float64, src image.Image) {
	outer := c.roundRectCoverage(x0, y0, x1, y1, radius)
	inner := c.roundRectCoverage(x0+width, y0+width, x1-width, y1-width, math.Max(radius-width, 0))
	c.fill(coverage{
		r: outer.r,
		f: func(x, y float64) float64 {
			in := 0.0
			if image.Pt(int(x), int(y)).In(inner.r) {
				in = clamp01(inner.f(x, y))
			}
			return clamp01(outer.f(x, y)) - in
		},
	}, src)
}

// textStyle describes one run of text; size and tracking are logical
type textStyle struct {
	bold     bool
	size     float64
	tracking float64 // extra spacing in em
	color    color.NRGBA
}

func (c *canvas) face(st textStyle) font.Face {
	return fonts.face(st.bold, c.px(st.size))
}

// measure returns the logical width of s
func (c *canvas) measure(st textStyle, s string) float64 {
	face := c.face(st)
	var w fixed.Int26_6
	n := 0
	for _, r := range s {
		w += font.MeasureString(face, string(r))
		n++
	}
	px := float64(w) / 64
	if n > 1 {
		px += c.px(st.tracking*st.size) * float64(n-1)
	}
	return px / c.scale
}

// text draws s with its left edge at x and baseline at y (logical)
func (c *canvas) text(st textStyle, s string, x, baseline float64) {
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(st.color),
		Face: c.face(st),
		Dot:  fixed.Point26_6{X: toFixed(c.px(x)), Y: toFixed(c.px(baseline))},
	}
	gap := toFixed(c.px(st.tracking * st.size))
	for _, r := range s {
		d.DrawString(string(r))
		d.Dot.X += gap
	}
}

// centerText draws s horizontally centered on cx
func (c *canvas) centerText(st textStyle, s string, cx, baseline float64) {
	c.text(st, s, cx-c.measure(st, s)/2, baseline)
}

// fitText shrinks st until s fits in maxWidth, down to half its size
func (c *canvas) fitText(st textStyle, s string, maxWidth float64) textStyle {
	floor := st.size / 2
	for st.size > floor && c.measure(st, s) > maxWidth {
		st.size--
	}
	return st
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// stop is a gradient color stop at offset 0-1
type stop struct {
	at float64
	c  color.NRGBA
}

func lerpNRGBA(a, b color.NRGBA, t float64) color.NRGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

func sample(stops []stop, t float64) color.NRGBA {
	if t <= stops[0].at {
		return stops[0].c
	}
	for i := 1; i < len(stops); i++ {
		if t <= stops[i].at {
			span := stops[i].at - stops[i-1].at
			if span <= 0 {
				return stops[i].c
			}
			return lerpNRGBA(stops[i-1].c, stops[i].c, (t-stops[i-1].at)/span)
		}
	}
	return stops[len(stops)-1].c
}

var everywhere = image.Rect(-1<<30, -1<<30, 1<<30, 1<<30)

// linearGradient is an infinite image varying along (x0,y0)->(x1,y1) in pixels
type linearGradient struct {
	x0, y0, x1, y1 float64
	stops          []stop
}

func (g linearGradient) ColorModel() color.Model { return color.NRGBAModel }
func (g linearGradient) Bounds() image.Rectangle { return everywhere }
func (g linearGradient) At(x, y int) color.Color {
	dx, dy := g.x1-g.x0, g.y1-g.y0
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return g.stops[0].c
	}
	t := ((float64(x)+0.5-g.x0)*dx + (float64(y)+0.5-g.y0)*dy) / l2
	return sample(g.stops, clamp01(t))
}

// radialGradient varies with distance from (cx,cy), reaching the last stop at r
type radialGradient struct {
	cx, cy, r float64
	stops     []stop
}

func (g radialGradient) ColorModel() color.Model { return color.NRGBAModel }
func (g radialGradient) Bounds() image.Rectangle { return everywhere }
func (g radialGradient) At(x, y int) color.Color {
	if g.r <= 0 {
		return g.stops[len(g.stops)-1].c
	}
	d := math.Hypot(float64(x)+0.5-g.cx, float64(y)+0.5-g.cy)
	return sample(g.stops, clamp01(d/g.r))
}

// linear builds a gradient between logical points
func (c *canvas) linear(x0, y0, x1, y1 float64, stops ...stop) linearGradient {
	return linearGradient{x0: c.px(x0), y0: c.px(y0), x1: c.px(x1), y1: c.px(y1), stops: stops}
}

func (c *canvas) radial(cx, cy, r float64, stops ...stop) radialGradient {
	return radialGradient{cx: c.px(cx), cy: c.px(cy), r: c.px(r), stops: stops}
}

func uniform(c color.NRGBA) *image.Uniform {
	return image.NewUniform(c)
}
