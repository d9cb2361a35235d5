// Package render draws word cloud layouts.
//
// # Overview
//
// A [Layout] is the canvas plus the placements produced by the engine in
// pkg/core/cloud. Every sink consumes the same fields of each placement:
// center (x, y), rotation, font size and color, plus the layout's font
// family and weight.
//
//   - [RenderSVG]: vector output, one <text> element per word
//   - [RenderPNG]: raster output drawn with fogleman/gg
//   - [RenderPDF]: single-page PDF drawn with gofpdf, page size = canvas
//   - [RenderJSON]: the layout as JSON, for re-rendering elsewhere
//   - [RenderTerminal]: a colored character preview for the CLI
//
// [Render] dispatches on a [Format].
//
// # Coordinates
//
// The canvas origin is the top-left corner with y growing downward.
// Rotations are radians, positive clockwise on screen, which matches SVG
// rotate() and gg.RotateAbout. Words are drawn centered on (x, y).
//
// # Colors
//
// A word's own color is used when it parses (hex like "#3a7" or "#33aa77",
// or a basic CSS name); otherwise words cycle through the palette. SVG
// output passes unparseable colors through verbatim so any CSS color works
// there.
//
//	svg := render.RenderSVG(l, render.WithBackground("#fff"))
//	png, err := render.RenderPNG(l, render.WithScale(2))
package render
