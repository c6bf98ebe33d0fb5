package render

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

type faceKey struct {
	bold bool
	size float64
}

// fontSet parses the Go fonts once and caches faces per weight and pixel size
type fontSet struct {
	once    sync.Once
	regular *opentype.Font
	bold    *opentype.Font

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

var fonts = &fontSet{faces: make(map[faceKey]font.Face)}

func (fs *fontSet) load() {
	fs.once.Do(func() {
		// parse errors leave the font nil and face() falls back to basicfont
		fs.regular, _ = opentype.Parse(goregular.TTF)
		fs.bold, _ = opentype.Parse(gobold.TTF)
	})
}

func (fs *fontSet) face(bold bool, size float64) font.Face {
	fs.load()

	key := faceKey{bold: bold, size: size}
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if f, ok := fs.faces[key]; ok {
		return f
	}

	src := fs.regular
	if bold {
		src = fs.bold
	}
	if src == nil {
		return basicfont.Face7x13
	}

	f, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	fs.faces[key] = f
	return f
}

// hasGlyph reports whether the bold face can draw r
func (fs *fontSet) hasGlyph(r rune) bool {
	fs.load()
	if fs.bold == nil {
		return false
	}
	var buf sfnt.Buffer
	idx, err := fs.bold.GlyphIndex(&buf, r)
	return err == nil && idx != 0
}

// currencySymbol is the rupee sign when the font has it, "Rs" otherwise
func currencySymbol() string {
	if fonts.hasGlyph('₹') {
		return "₹"
	}
	return "Rs"
}
