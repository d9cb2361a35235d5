package cloud

import "unicode/utf8"

// MapSize interpolates a font size for weight between minSize and maxSize.
//
// When every label carries the same weight (minWeight == maxWeight) the
// result is maxSize, not the midpoint. Weights outside [minWeight, maxWeight]
// extrapolate without clamping.
func MapSize(weight, minWeight, maxWeight, minSize, maxSize float64) float64 {
	if minWeight == maxWeight {
		return maxSize
	}
	return minSize + (weight-minWeight)/(maxWeight-minWeight)*(maxSize-minSize)
}

// Font describes the face a label is set in.
type Font struct {
	Family string
	Weight string
	Size   float64
}

// Measurer reports the unrotated extent of text set in f.
type Measurer interface {
	Measure(text string, f Font) (width, height float64)
}

// MeasurerFunc adapts a plain function to [Measurer].
type MeasurerFunc func(text string, f Font) (width, height float64)

// Measure calls fn.
func (fn MeasurerFunc) Measure(text string, f Font) (float64, float64) { return fn(text, f) }

// DefaultCharWidth is the average glyph advance as a fraction of the font size.
const DefaultCharWidth = 0.6

// EstimateMeasurer approximates text extent without glyph metrics:
// width = size × CharWidth × characters, height = size.
type EstimateMeasurer struct {
	CharWidth float64 // zero means DefaultCharWidth
}

// Measure implements [Measurer].
func (m EstimateMeasurer) Measure(text string, f Font) (float64, float64) {
	return Estimate(text, f.Size, m.CharWidth)
}

// Estimate returns the crude bounding box for text at size. Characters are
// counted as Unicode code points.
func Estimate(text string, size, charWidth float64) (width, height float64) {
	if charWidth <= 0 {
		charWidth = DefaultCharWidth
	}
	return size * charWidth * float64(utf8.RuneCountInString(text)), size
}
