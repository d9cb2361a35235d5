package cloud

import (
	"iter"
	"math"
)

// SpiralKind selects the candidate path used by the placement search.
type SpiralKind int

const (
	// Archimedean traces a smooth spiral with coupled angle and radius growth.
	Archimedean SpiralKind = iota
	// Rectangular traces an expanding square path.
	Rectangular
)

// Spiral names accepted by [ParseSpiral].
const (
	SpiralArchimedean = "archimedean"
	SpiralRectangular = "rectangular"
)

const (
	// DefaultSpiralStep is the per-step growth of the spiral radius, and the
	// angular step of the archimedean spiral, in radians.
	DefaultSpiralStep = 0.1
	// DefaultRectangularStep is the per-step angle advance of the rectangular spiral.
	DefaultRectangularStep = 2.0
)

// ParseSpiral maps a spiral name to its kind. Names match exactly;
// anything else, including other casings, falls back to [Archimedean].
func ParseSpiral(s string) SpiralKind {
	if s == SpiralRectangular {
		return Rectangular
	}
	return Archimedean
}

// String returns the canonical spiral name.
func (k SpiralKind) String() string {
	if k == Rectangular {
		return SpiralRectangular
	}
	return SpiralArchimedean
}

// Spiral produces candidate (dx, dy) offsets from an anchor. The sequence is
// deterministic and starts at (0, 0), so the first candidate is the anchor
// itself. Reset restarts it.
type Spiral struct {
	kind SpiralKind
	step float64 // radius growth; also the angle step for archimedean
	dt   float64 // angle step for rectangular

	t float64
	a float64
}

// NewSpiral returns a spiral of the given kind. Non-positive steps fall back
// to [DefaultSpiralStep] and [DefaultRectangularStep].
func NewSpiral(kind SpiralKind, step, rectStep float64) *Spiral {
	if step <= 0 {
		step = DefaultSpiralStep
	}
	if rectStep <= 0 {
		rectStep = DefaultRectangularStep
	}
	return &Spiral{kind: kind, step: step, dt: rectStep}
}

// Reset rewinds the spiral to its origin.
func (s *Spiral) Reset() {
	s.t, s.a = 0, 0
}

// Next returns the next offset and advances the spiral.
func (s *Spiral) Next() (dx, dy float64) {
	switch s.kind {
	case Rectangular:
		if int(math.Floor(s.t/s.dt))%2 == 0 {
			dx, dy = sign(math.Cos(s.t))*s.a, sign(math.Sin(s.t))*s.a
		} else {
			dx, dy = sign(math.Sin(s.t))*s.a, sign(math.Cos(s.t))*s.a
		}
		s.a += s.step
		s.t += s.dt
	default:
		dx, dy = s.a*math.Cos(s.t), s.a*math.Sin(s.t)
		s.a += s.step
		s.t += s.step
	}
	return dx, dy
}

// Offsets yields the first n offsets of a fresh copy of the spiral. The
// receiver's own position is left untouched.
func (s *Spiral) Offsets(n int) iter.Seq2[float64, float64] {
	return func(yield func(float64, float64) bool) {
		c := &Spiral{kind: s.kind, step: s.step, dt: s.dt}
		for range n {
			if !yield(c.Next()) {
				return
			}
		}
	}
}

func sign(n float64) float64 {
	if n < 0 {
		return -1
	}
	return 1
}

// MarshalText encodes the kind by name.
func (k SpiralKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText decodes a spiral name, falling back to archimedean.
func (k *SpiralKind) UnmarshalText(b []byte) error {
	*k = ParseSpiral(string(b))
	return nil
}
