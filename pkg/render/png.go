package render

import (
	"bytes"
	"fmt"

	"github.com/fogleman/gg"

	"github.com/matzehuels/wordcloud/pkg/fonts"
)

// PNGOption configures [RenderPNG].
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	style Style
	scale float64
	lib   *fonts.Library
}

// WithPNGStyle sets background and palette.
func WithPNGStyle(s Style) PNGOption { return func(r *pngRenderer) { r.style = s } }

// WithScale sets the PNG scale factor (default 1). Non-positive values are ignored.
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithFontLibrary sets the library faces are resolved from.
func WithFontLibrary(lib *fonts.Library) PNGOption {
	return func(r *pngRenderer) {
		if lib != nil {
			r.lib = lib
		}
	}
}

// RenderPNG rasterizes l. Families missing from the font library fall back
// to the built-in Go font.
func RenderPNG(l Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{style: DefaultStyle(), scale: 1, lib: fonts.Default()}
	for _, opt := range opts {
		opt(&r)
	}
	if l.Width <= 0 || l.Height <= 0 {
		return nil, fmt.Errorf("png: empty canvas %dx%d", l.Width, l.Height)
	}

	w := int(float64(l.Width)*r.scale + 0.5)
	h := int(float64(l.Height)*r.scale + 0.5)
	dc := gg.NewContext(max(w, 1), max(h, 1))
	if bg, ok := r.style.background(); ok {
		dc.SetColor(bg)
		dc.Clear()
	}
	dc.Scale(r.scale, r.scale)

	for i, word := range l.Words {
		face, err := r.lib.Face(l.FontFamily, l.FontWeight, word.Size)
		if err != nil {
			return nil, fmt.Errorf("png: %q: %w", word.Text, err)
		}
		dc.SetFontFace(face)
		dc.SetColor(r.style.wordColor(i, word.Color))
		dc.Push()
		dc.RotateAbout(word.Rotate, word.X, word.Y)
		dc.DrawStringAnchored(word.Text, word.X, word.Y, 0.5, 0.5)
		dc.Pop()
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("png: encode: %w", err)
	}
	return buf.Bytes(), nil
}
