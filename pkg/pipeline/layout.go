package pipeline

import (
	"github.com/matzehuels/wordcloud/pkg/core/cloud"
	"github.com/matzehuels/wordcloud/pkg/fonts"
	"github.com/matzehuels/wordcloud/pkg/render"
)

// =============================================================================
// Layout Generation
// =============================================================================

// NewEngine builds a layout engine from validated options.
// The measurer is resolved from opts.Measurer against opts.Fonts.
func NewEngine(opts Options) (*cloud.Engine, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}
	m, err := fonts.NewMeasurer(opts.Measurer, opts.Fonts)
	if err != nil {
		return nil, err
	}
	return cloud.New(opts.EngineConfig(), engineOptions(opts, m)...), nil
}

func engineOptions(opts Options, m cloud.Measurer) []cloud.Option {
	eo := []cloud.Option{
		cloud.WithMeasurer(m),
		cloud.WithSeed(opts.Seed),
		cloud.WithOrder(cloud.ParseOrder(opts.Order)),
		cloud.WithLogger(opts.Logger),
	}
	if opts.Progress != nil {
		eo = append(eo, cloud.WithProgress(opts.Progress))
	}
	if opts.CellSize > 0 {
		eo = append(eo, cloud.WithCellSize(opts.CellSize))
	}
	if opts.MaxAttempts > 0 {
		eo = append(eo, cloud.WithMaxAttempts(opts.MaxAttempts))
	}
	if opts.SpiralStep > 0 {
		eo = append(eo, cloud.WithSpiralStep(opts.SpiralStep))
	}
	if opts.RectStep > 0 {
		eo = append(eo, cloud.WithRectangularStep(opts.RectStep))
	}
	return eo
}

// GenerateLayout places labels on a fresh engine and returns the layout
// together with the run's placement statistics.
//
// A fresh engine per call keeps the result a pure function of labels and
// options, which is what makes the layout cache sound.
func GenerateLayout(labels []cloud.Label, opts Options) (render.Layout, cloud.Stats, error) {
	e, err := NewEngine(opts)
	if err != nil {
		return render.Layout{}, cloud.Stats{}, err
	}
	words := e.GenerateLayout(labels)
	return render.NewLayout(e.Config(), words), e.Stats(), nil
}
