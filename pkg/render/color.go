package render

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultPalette is used for words without a color of their own.
var DefaultPalette = []string{
	"#1b4965", "#5fa8d3", "#ca3c25", "#f5a623", "#3a7d44",
	"#7b2d8b", "#2a9d8f", "#e76f51", "#264653", "#8d6e63",
}

// DefaultBackground is the canvas fill when none is configured.
const DefaultBackground = "#ffffff"

var namedColors = map[string]string{
	"black":  "#000000",
	"white":  "#ffffff",
	"red":    "#ff0000",
	"green":  "#008000",
	"blue":   "#0000ff",
	"yellow": "#ffff00",
	"orange": "#ffa500",
	"purple": "#800080",
	"gray":   "#808080",
	"grey":   "#808080",
	"navy":   "#000080",
	"teal":   "#008080",
}

// Style holds the colors shared by every sink.
type Style struct {
	Background string   `json:"background,omitempty" bson:"background,omitempty"`
	Palette    []string `json:"palette,omitempty" bson:"palette,omitempty"`
}

// DefaultStyle is a white canvas with [DefaultPalette].
func DefaultStyle() Style {
	return Style{Background: DefaultBackground, Palette: DefaultPalette}
}

// ParseColor parses a hex color (#rgb or #rrggbb) or a basic CSS name.
func ParseColor(s string) (colorful.Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if hex, ok := namedColors[s]; ok {
		s = hex
	}
	if len(s) == 4 && s[0] == '#' {
		s = "#" + string([]byte{s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

// background returns the parsed background, or false for a transparent one.
func (s Style) background() (colorful.Color, bool) {
	if s.Background == "" || strings.EqualFold(s.Background, "none") || strings.EqualFold(s.Background, "transparent") {
		return colorful.Color{}, false
	}
	return ParseColor(s.Background)
}

// paletteColor returns the i-th palette entry, cycling.
func (s Style) paletteColor(i int) colorful.Color {
	p := s.Palette
	if len(p) == 0 {
		p = DefaultPalette
	}
	if c, ok := ParseColor(p[i%len(p)]); ok {
		return c
	}
	c, _ := ParseColor(DefaultPalette[i%len(DefaultPalette)])
	return c
}

// wordColor resolves the color of the i-th word.
func (s Style) wordColor(i int, color *string) colorful.Color {
	if color != nil {
		if c, ok := ParseColor(*color); ok {
			return c
		}
	}
	return s.paletteColor(i)
}

// wordColorCSS is like wordColor but keeps any non-empty word color as is.
func (s Style) wordColorCSS(i int, color *string) string {
	if color != nil && strings.TrimSpace(*color) != "" {
		return *color
	}
	return s.paletteColor(i).Hex()
}

func rgb255(c colorful.Color) (int, int, int) {
	r, g, b := c.Clamped().RGB255()
	return int(r), int(g), int(b)
}
