package cli

import (
	"github.com/spf13/pflag"

	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// optionFlags binds pipeline options to command flags. Only flags the user
// actually sets override the configured values.
type optionFlags struct {
	opts    pipeline.Options
	formats string
}

// addLayoutFlags registers flags for every layout option.
func (f *optionFlags) addLayoutFlags(fs *pflag.FlagSet) {
	fs.IntVar(&f.opts.Width, "width", pipeline.DefaultWidth, "canvas width in pixels")
	fs.IntVar(&f.opts.Height, "height", pipeline.DefaultHeight, "canvas height in pixels")
	fs.StringVar(&f.opts.FontFamily, "font", pipeline.DefaultFontFamily, "font family")
	fs.StringVar(&f.opts.FontWeight, "font-weight", pipeline.DefaultFontWeight, "font weight: normal, bold or a number")
	fs.Float64Var(&f.opts.MinSize, "min-size", pipeline.DefaultMinSize, "font size of the lightest word")
	fs.Float64Var(&f.opts.MaxSize, "max-size", pipeline.DefaultMaxSize, "font size of the heaviest word")
	fs.Float64Var(&f.opts.RotationRange, "rotation", 0, "random rotation bound in radians (0 disables)")
	fs.StringVar(&f.opts.Spiral, "spiral", pipeline.DefaultSpiral, "spiral: archimedean, rectangular")
	fs.StringVar(&f.opts.Order, "order", pipeline.DefaultOrder, "placement order: input, weight")
	fs.Uint64Var(&f.opts.Seed, "seed", pipeline.DefaultSeed, "random seed")
	fs.StringVar(&f.opts.Measurer, "measurer", pipeline.DefaultMeasurer, "text measurer: estimate, basic, opentype, shaping")
	fs.IntVar(&f.opts.CellSize, "cell-size", 0, "occupancy grid cell size in pixels (0 keeps the default)")
	fs.IntVar(&f.opts.MaxAttempts, "max-attempts", 0, "spiral candidates per word (0 keeps the default)")
	fs.Float64Var(&f.opts.SpiralStep, "spiral-step", 0, "archimedean spiral step (0 keeps the default)")
	fs.Float64Var(&f.opts.RectStep, "rect-step", 0, "rectangular spiral step (0 keeps the default)")
	fs.BoolVar(&f.opts.Refresh, "refresh", false, "recompute the layout even when cached")
}

// addRenderFlags registers flags for every render option.
func (f *optionFlags) addRenderFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	fs.StringVar(&f.opts.Background, "background", "", `background color ("none" for transparent)`)
	fs.StringSliceVar(&f.opts.Palette, "palette", nil, "word colors, cycled in placement order")
	fs.Float64Var(&f.opts.Scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	fs.BoolVar(&f.opts.EmbedFont, "embed-font", false, "embed the font in SVG output")
}

// apply overlays the flags the user set onto base.
func (f *optionFlags) apply(fs *pflag.FlagSet, base pipeline.Options) pipeline.Options {
	o := base.Clone()
	set := func(name string, fn func()) {
		if fs.Changed(name) {
			fn()
		}
	}
	set("width", func() { o.Width = f.opts.Width })
	set("height", func() { o.Height = f.opts.Height })
	set("font", func() { o.FontFamily = f.opts.FontFamily })
	set("font-weight", func() { o.FontWeight = f.opts.FontWeight })
	set("min-size", func() { o.MinSize = f.opts.MinSize })
	set("max-size", func() { o.MaxSize = f.opts.MaxSize })
	set("rotation", func() { o.RotationRange = f.opts.RotationRange })
	set("spiral", func() { o.Spiral = f.opts.Spiral })
	set("order", func() { o.Order = f.opts.Order })
	set("seed", func() { o.Seed = f.opts.Seed })
	set("measurer", func() { o.Measurer = f.opts.Measurer })
	set("cell-size", func() { o.CellSize = f.opts.CellSize })
	set("max-attempts", func() { o.MaxAttempts = f.opts.MaxAttempts })
	set("spiral-step", func() { o.SpiralStep = f.opts.SpiralStep })
	set("rect-step", func() { o.RectStep = f.opts.RectStep })
	set("refresh", func() { o.Refresh = f.opts.Refresh })
	set("format", func() { o.Formats = parseFormats(f.formats) })
	set("background", func() { o.Background = f.opts.Background })
	set("palette", func() { o.Palette = append([]string(nil), f.opts.Palette...) })
	set("scale", func() { o.Scale = f.opts.Scale })
	set("embed-font", func() { o.EmbedFont = f.opts.EmbedFont })
	return o
}
