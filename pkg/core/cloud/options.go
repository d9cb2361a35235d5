package cloud

import (
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"
)

// DefaultMaxAttempts bounds the spiral search for a single label.
const DefaultMaxAttempts = 1000

// DefaultSeed seeds the rotation source when none is supplied.
const DefaultSeed = uint64(42)

// Order controls the sequence in which labels are placed.
type Order int

const (
	// OrderInput places labels in the order the caller supplied them.
	OrderInput Order = iota
	// OrderWeightDesc places heavier labels first; ties keep input order.
	OrderWeightDesc
)

// Order names accepted by [ParseOrder].
const (
	OrderNameInput  = "input"
	OrderNameWeight = "weight"
)

// ParseOrder maps an order name to its value. Unrecognized names fall back
// to [OrderInput].
func ParseOrder(s string) Order {
	if s == OrderNameWeight {
		return OrderWeightDesc
	}
	return OrderInput
}

// String returns the canonical order name.
func (o Order) String() string {
	if o == OrderWeightDesc {
		return OrderNameWeight
	}
	return OrderNameInput
}

// Option tunes an [Engine].
type Option func(*Engine)

// WithCellSize sets the occupancy cell edge length. Values below 1 are ignored.
func WithCellSize(n int) Option {
	return func(e *Engine) {
		if n >= 1 {
			e.cellSize = n
		}
	}
}

// WithMaxAttempts sets how many spiral candidates are tested per label.
// Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(e *Engine) {
		if n >= 1 {
			e.maxAttempts = n
		}
	}
}

// WithSpiralStep sets the radius growth per step (and the archimedean angle step).
func WithSpiralStep(step float64) Option {
	return func(e *Engine) {
		if step > 0 {
			e.spiralStep = step
		}
	}
}

// WithRectangularStep sets the angle advance per step of the rectangular spiral.
func WithRectangularStep(dt float64) Option {
	return func(e *Engine) {
		if dt > 0 {
			e.rectStep = dt
		}
	}
}

// WithMeasurer replaces the size estimate with real text measurement.
func WithMeasurer(m Measurer) Option {
	return func(e *Engine) {
		if m != nil {
			e.measurer = m
		}
	}
}

// WithRand injects the uniform source used for random rotations.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		if r != nil {
			e.rng = r
		}
	}
}

// WithProgress calls fn after each label is placed or omitted with the
// statistics so far. fn runs on the layout goroutine and must be quick.
func WithProgress(fn func(Stats)) Option {
	return func(e *Engine) { e.progress = fn }
}

// WithSeed seeds a fresh PCG source for random rotations.
func WithSeed(seed uint64) Option {
	return func(e *Engine) { e.rng = newRand(seed) }
}

// WithOrder sets the placement order.
func WithOrder(o Order) Option {
	return func(e *Engine) { e.order = o }
}

// WithLogger sets the logger used for per-run diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}
