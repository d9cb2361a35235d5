package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"

	"github.com/matzehuels/wordcloud/pkg/fonts"
)

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style     Style
	embedFont bool
}

// WithSVGStyle sets background and palette.
func WithSVGStyle(s Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithBackground sets the canvas fill; "none" leaves it transparent.
func WithBackground(c string) SVGOption { return func(r *svgRenderer) { r.style.Background = c } }

// WithEmbeddedFont inlines the layout's font as an @font-face rule when it
// is one of the built-in families.
func WithEmbeddedFont() SVGOption { return func(r *svgRenderer) { r.embedFont = true } }

// RenderSVG renders l as a standalone SVG document.
func RenderSVG(l Layout, opts ...SVGOption) []byte {
	r := svgRenderer{style: DefaultStyle()}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		l.Width, l.Height, l.Width, l.Height)

	if r.embedFont {
		renderFontFace(&buf, l.FontFamily, l.FontWeight)
	}
	if bg, ok := r.style.background(); ok {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", bg.Hex())
	}

	family := escapeXML(fmt.Sprintf("'%s', %s", l.FontFamily, fonts.FallbackFontFamily))
	weight := escapeXML(cssWeight(l.FontWeight))
	fmt.Fprintf(&buf, `  <g font-family="%s" font-weight="%s" text-anchor="middle" dominant-baseline="central">`+"\n", family, weight)
	for i, w := range l.Words {
		fmt.Fprintf(&buf, `    <text x="%.2f" y="%.2f" font-size="%.2f" fill="%s"`,
			w.X, w.Y, w.Size, escapeXML(r.style.wordColorCSS(i, w.Color)))
		if w.Rotate != 0 {
			fmt.Fprintf(&buf, ` transform="rotate(%.3f %.2f %.2f)"`, degrees(w.Rotate), w.X, w.Y)
		}
		fmt.Fprintf(&buf, ">%s</text>\n", escapeXML(w.Text))
	}
	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func renderFontFace(buf *bytes.Buffer, family, weight string) {
	data := fonts.BuiltinBase64(family, fonts.ParseWeight(weight))
	if data == "" {
		return
	}
	fmt.Fprintf(buf, "  <defs><style>@font-face { font-family: '%s'; font-weight: %s; src: url(data:font/ttf;base64,%s) format('truetype'); }</style></defs>\n",
		escapeXML(family), fonts.ParseWeight(weight), data)
}

func cssWeight(w string) string {
	if w == "" {
		return "normal"
	}
	return w
}

func degrees(rad float64) float64 { return rad * 180 / math.Pi }

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
