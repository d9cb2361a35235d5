package fonts

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/matzehuels/wordcloud/pkg/core/cloud"
	"github.com/matzehuels/wordcloud/pkg/errors"
)

// Measurer names accepted by [NewMeasurer].
const (
	MeasurerEstimate = "estimate"
	MeasurerBasic    = "basic"
	MeasurerOpenType = "opentype"
	MeasurerShaping  = "shaping"
)

// MeasurerKinds lists the accepted measurer names.
var MeasurerKinds = []string{MeasurerEstimate, MeasurerBasic, MeasurerOpenType, MeasurerShaping}

// NewMeasurer returns the measurer called kind. An empty kind selects the
// estimate. lib may be nil, in which case [Default] is used.
func NewMeasurer(kind string, lib *Library) (cloud.Measurer, error) {
	if lib == nil {
		lib = Default()
	}
	switch strings.ToLower(kind) {
	case "", MeasurerEstimate:
		return cloud.EstimateMeasurer{}, nil
	case MeasurerBasic:
		return BasicMeasurer{}, nil
	case MeasurerOpenType:
		return &OpenTypeMeasurer{Lib: lib}, nil
	case MeasurerShaping:
		return NewShapingMeasurer(lib), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown measurer %q (want one of %s)", kind, strings.Join(MeasurerKinds, ", "))
}

// OpenTypeMeasurer measures advance widths, including kerning, with
// x/image/font. Height is the face's ascent plus descent.
type OpenTypeMeasurer struct {
	Lib *Library
}

// Measure implements [cloud.Measurer]. On failure it reports zero extents
// so the engine falls back to its estimate.
func (m *OpenTypeMeasurer) Measure(text string, f cloud.Font) (float64, float64) {
	if f.Size <= 0 {
		return 0, 0
	}
	var w, h float64
	err := m.Lib.withFace(f.Family, f.Weight, f.Size, func(face font.Face) {
		w = fixedToFloat(font.MeasureString(face, text))
		met := face.Metrics()
		h = fixedToFloat(met.Ascent + met.Descent)
	})
	if err != nil {
		return 0, 0
	}
	return w, h
}

// BasicMeasurer measures with the 7x13 bitmap face scaled to the requested
// size. Every rune is 7/13 of the size wide.
type BasicMeasurer struct{}

const basicFaceHeight = 13

// Measure implements [cloud.Measurer].
func (BasicMeasurer) Measure(text string, f cloud.Font) (float64, float64) {
	adv := fixedToFloat(font.MeasureString(basicfont.Face7x13, text))
	return adv * f.Size / basicFaceHeight, f.Size
}
