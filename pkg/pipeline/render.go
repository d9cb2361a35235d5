package pipeline

import (
	"fmt"

	"github.com/matzehuels/wordcloud/pkg/buildinfo"
	"github.com/matzehuels/wordcloud/pkg/render"
)

// RenderFromLayout generates output artifacts in the requested formats.
// Artifacts are keyed by format name.
func RenderFromLayout(l render.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	style := opts.Style()
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, name := range opts.Formats {
		format, err := render.ParseFormat(name)
		if err != nil {
			return nil, err
		}

		var data []byte
		switch format {
		case render.FormatSVG:
			svgOpts := []render.SVGOption{render.WithSVGStyle(style)}
			if opts.EmbedFont {
				svgOpts = append(svgOpts, render.WithEmbeddedFont())
			}
			data = render.RenderSVG(l, svgOpts...)
		case render.FormatPNG:
			data, err = render.RenderPNG(l,
				render.WithPNGStyle(style),
				render.WithScale(opts.Scale),
				render.WithFontLibrary(opts.Fonts))
		case render.FormatPDF:
			data, err = render.RenderPDF(l,
				render.WithPDFStyle(style),
				render.WithPDFTitle("Word cloud"),
				render.WithPDFAuthor("wordcloud "+buildinfo.Version))
		default:
			data, err = render.Render(l, format, style)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[name] = data
	}

	return artifacts, nil
}
