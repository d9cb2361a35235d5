// Package fonts resolves font families to OpenType data and measures text.
//
// The Go font family (regular and bold, plus the monospaced variant) is
// compiled into the binary through golang.org/x/image, so measurement and
// raster output work without any system fonts. Additional TTF/OTF files can
// be registered on a [Library] at runtime.
//
// Three measurers implement [cloud.Measurer] on top of a Library:
//
//   - [OpenTypeMeasurer]: advance widths with kerning from x/image/font
//   - [ShapingMeasurer]: HarfBuzz shaping from go-text/typesetting, for
//     scripts where ligatures and contextual forms change the width
//   - [BasicMeasurer]: the fixed 7x13 bitmap face, scaled; deterministic
//     and font independent, handy in tests
//
// [NewMeasurer] selects one by name.
package fonts

import (
	"encoding/base64"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Built-in family names.
const (
	FamilyGo     = "Go"
	FamilyGoMono = "Go Mono"
)

// DefaultFamily is used when a requested family is not registered.
const DefaultFamily = FamilyGo

// FallbackFontFamily is the CSS font-family list written into SVG output
// after the requested family.
const FallbackFontFamily = `'Go', 'Helvetica Neue', Arial, sans-serif`

// Weight buckets a CSS-style weight string.
type Weight int

const (
	Regular Weight = iota
	Bold
)

// ParseWeight maps "bold", "bolder", "semibold" and numeric weights of 600
// and above to [Bold]; everything else is [Regular].
func ParseWeight(s string) Weight {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "bold", "bolder", "semibold", "extrabold", "black", "heavy":
		return Bold
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 600 {
		return Bold
	}
	return Regular
}

// String returns the CSS keyword for w.
func (w Weight) String() string {
	if w == Bold {
		return "bold"
	}
	return "normal"
}

var builtin = map[fontKey][]byte{
	{FamilyGo, Regular}:     goregular.TTF,
	{FamilyGo, Bold}:        gobold.TTF,
	{FamilyGoMono, Regular}: gomono.TTF,
	{FamilyGoMono, Bold}:    gomonobold.TTF,
}

// Cache for base64-encoded fonts (computed once per face on first access).
var (
	base64Mu    sync.Mutex
	base64Fonts = map[fontKey]string{}
)

// BuiltinTTF returns the TTF data of a built-in face, or nil when family is
// not built in.
func BuiltinTTF(family string, weight Weight) []byte {
	return builtin[fontKey{family, weight}]
}

// BuiltinBase64 returns a built-in face as a base64 string for embedding in
// SVG @font-face rules. The result is cached after first computation.
func BuiltinBase64(family string, weight Weight) string {
	key := fontKey{family, weight}
	data, ok := builtin[key]
	if !ok {
		return ""
	}
	base64Mu.Lock()
	defer base64Mu.Unlock()
	if s, ok := base64Fonts[key]; ok {
		return s
	}
	s := base64.StdEncoding.EncodeToString(data)
	base64Fonts[key] = s
	return s
}
