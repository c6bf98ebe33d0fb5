package tui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	xdraw "golang.org/x/image/draw"

	"github.com/auctionpost/auctionpost/pkg/card"
)

// halfBlocks draws img into cols x rows terminal cells using "▀", whose
// foreground is the upper pixel and background the lower one. Transparent
// areas show bg.
func halfBlocks(img image.Image, cols, rows int, bg colorful.Color) string {
	if img == nil || cols <= 0 || rows <= 0 {
		return ""
	}

	dst := image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(card.NRGBA(bg, 1)), image.Point{}, xdraw.Src)
	xdraw.ApproxBiLinear.Scale(dst, fitInside(dst.Bounds(), img.Bounds()), img, img.Bounds(), xdraw.Over, nil)

	var b strings.Builder
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := dst.RGBAAt(x, 2*y)
			bottom := dst.RGBAAt(x, 2*y+1)
			b.WriteString(lipgloss.NewStyle().
				Foreground(rgbColor(top)).
				Background(rgbColor(bottom)).
				Render("▀"))
		}
		if y < rows-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func rgbColor(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// fitInside centers src's aspect ratio within dst
func fitInside(dst, src image.Rectangle) image.Rectangle {
	sw, sh := src.Dx(), src.Dy()
	if sw == 0 || sh == 0 {
		return dst
	}
	w, h := dst.Dx(), dst.Dy()
	if sw*h > sh*w {
		h = max(sh*w/sw, 1)
	} else {
		w = max(sw*h/sh, 1)
	}
	x := dst.Min.X + (dst.Dx()-w)/2
	y := dst.Min.Y + (dst.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}
