package fonts

import (
	"sync"
	"unicode"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/wordcloud/pkg/core/cloud"
)

// ShapingMeasurer measures text after HarfBuzz shaping, so ligatures and
// contextual forms are accounted for. Width is the run advance; height is
// ascent plus descent of the shaped line.
type ShapingMeasurer struct {
	lib *Library

	mu     sync.Mutex // guards shaper
	shaper shaping.HarfbuzzShaper
}

// NewShapingMeasurer returns a shaping measurer over lib.
func NewShapingMeasurer(lib *Library) *ShapingMeasurer {
	return &ShapingMeasurer{lib: lib}
}

// Measure implements [cloud.Measurer]. On failure it reports zero extents
// so the engine falls back to its estimate.
func (m *ShapingMeasurer) Measure(text string, f cloud.Font) (float64, float64) {
	runes := []rune(text)
	if len(runes) == 0 || f.Size <= 0 {
		return 0, 0
	}
	face, err := m.lib.shapingFace(f.Family, f.Weight)
	if err != nil {
		return 0, 0
	}

	script := detectScript(runes)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: scriptDirection(script),
		Face:      face,
		Size:      fixed.Int26_6(f.Size * 64),
		Script:    script,
		Language:  language.DefaultLanguage(),
	}

	m.mu.Lock()
	out := m.shaper.Shape(input)
	m.mu.Unlock()

	w := fixedToFloat(out.Advance)
	if w < 0 {
		w = -w
	}
	h := fixedToFloat(out.LineBounds.Ascent - out.LineBounds.Descent)
	return w, h
}

func scriptDirection(script language.Script) di.Direction {
	switch script {
	case language.Arabic, language.Hebrew, language.Syriac, language.Thaana:
		return di.DirectionRTL
	default:
		return di.DirectionLTR
	}
}

// detectScript picks the most frequent script among runes, Latin if none.
func detectScript(runes []rune) language.Script {
	counts := make(map[language.Script]int)
	best, bestCount := language.Latin, 0
	for _, r := range runes {
		s := scriptOf(r)
		if s == language.Unknown {
			continue
		}
		counts[s]++
		if counts[s] > bestCount {
			best, bestCount = s, counts[s]
		}
	}
	return best
}

func scriptOf(r rune) language.Script {
	switch {
	case unicode.Is(unicode.Latin, r):
		return language.Latin
	case unicode.Is(unicode.Cyrillic, r):
		return language.Cyrillic
	case unicode.Is(unicode.Greek, r):
		return language.Greek
	case unicode.Is(unicode.Arabic, r):
		return language.Arabic
	case unicode.Is(unicode.Hebrew, r):
		return language.Hebrew
	case unicode.Is(unicode.Han, r):
		return language.Han
	case unicode.Is(unicode.Hiragana, r):
		return language.Hiragana
	case unicode.Is(unicode.Katakana, r):
		return language.Katakana
	case unicode.Is(unicode.Hangul, r):
		return language.Hangul
	case unicode.Is(unicode.Devanagari, r):
		return language.Devanagari
	case unicode.Is(unicode.Thai, r):
		return language.Thai
	}
	return language.Unknown
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
