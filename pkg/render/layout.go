package render

import (
	"fmt"
	"strings"

	"github.com/matzehuels/wordcloud/pkg/core/cloud"
	"github.com/matzehuels/wordcloud/pkg/errors"
)

// Layout is a finished placement on a canvas.
type Layout struct {
	Width      int            `json:"width" bson:"width"`
	Height     int            `json:"height" bson:"height"`
	FontFamily string         `json:"font_family" bson:"font_family"`
	FontWeight string         `json:"font_weight" bson:"font_weight"`
	Words      []cloud.Placed `json:"words" bson:"words"`
}

// NewLayout pairs placements with the canvas they were computed for.
func NewLayout(cfg cloud.Config, words []cloud.Placed) Layout {
	if words == nil {
		words = []cloud.Placed{}
	}
	return Layout{
		Width:      cfg.Width,
		Height:     cfg.Height,
		FontFamily: cfg.FontFamily,
		FontWeight: cfg.FontWeight,
		Words:      words,
	}
}

// Format is an output format.
type Format string

const (
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatPDF  Format = "pdf"
	FormatJSON Format = "json"
)

// Formats lists every file format in a stable order.
var Formats = []Format{FormatSVG, FormatPNG, FormatPDF, FormatJSON}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/json"
	}
}

// ParseFormat validates a single format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want svg, png, pdf or json)", s)
}

// ParseFormats parses a comma-separated list, dropping duplicates.
func ParseFormats(s string) ([]Format, error) {
	var out []Format
	seen := make(map[Format]bool)
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		f, err := ParseFormat(part)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "no output format given")
	}
	return out, nil
}

// Render draws l in format f with the given style.
func Render(l Layout, f Format, s Style) ([]byte, error) {
	switch f {
	case FormatSVG:
		return RenderSVG(l, WithSVGStyle(s)), nil
	case FormatPNG:
		return RenderPNG(l, WithPNGStyle(s))
	case FormatPDF:
		return RenderPDF(l, WithPDFStyle(s))
	case FormatJSON:
		return RenderJSON(l)
	}
	return nil, fmt.Errorf("render: %w", errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", f))
}
