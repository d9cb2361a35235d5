package cloud

import (
	"cmp"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"
)

// Config describes the canvas and the size range of a layout.
//
// Width, Height, font and size fields are fixed once an [Engine] is built;
// RotationRange and Spiral can be changed between runs through the setters.
type Config struct {
	Width      int    `json:"width" bson:"width"`
	Height     int    `json:"height" bson:"height"`
	FontFamily string `json:"font_family" bson:"font_family"`
	FontWeight string `json:"font_weight" bson:"font_weight"`

	MinSize float64 `json:"min_size" bson:"min_size"`
	MaxSize float64 `json:"max_size" bson:"max_size"`

	// RotationRange bounds random rotations to [-RotationRange, RotationRange]
	// radians. Zero disables random rotation.
	RotationRange float64    `json:"rotation_range" bson:"rotation_range"`
	Spiral        SpiralKind `json:"spiral" bson:"spiral"`
}

// Engine lays out labels on a fixed canvas.
//
// An Engine owns its occupancy grid and is not safe for concurrent use;
// callers sharing one must serialize GenerateLayout.
type Engine struct {
	cfg  Config
	grid *Grid

	cellSize    int
	maxAttempts int
	spiralStep  float64
	rectStep    float64
	measurer    Measurer
	rng         *rand.Rand
	order       Order
	logger      *log.Logger
	progress    func(Stats)

	stats Stats
}

// New builds an engine for cfg.
func New(cfg Config, opts ...Option) *Engine {
	e := &Engine{
		cfg:         cfg,
		cellSize:    DefaultCellSize,
		maxAttempts: DefaultMaxAttempts,
		spiralStep:  DefaultSpiralStep,
		rectStep:    DefaultRectangularStep,
		measurer:    EstimateMeasurer{},
		order:       OrderInput,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = newRand(DefaultSeed)
	}
	if e.logger == nil {
		e.logger = discardLogger()
	}
	e.ResetGrid()
	return e
}

// NewEngine is the positional form of [New] with no rotation and the
// archimedean spiral.
func NewEngine(width, height int, fontFamily, fontWeight string, minSize, maxSize float64, opts ...Option) *Engine {
	return New(Config{
		Width:      width,
		Height:     height,
		FontFamily: fontFamily,
		FontWeight: fontWeight,
		MinSize:    minSize,
		MaxSize:    maxSize,
	}, opts...)
}

// Config returns the current configuration.
func (e *Engine) Config() Config { return e.cfg }

// Grid exposes the occupancy grid of the last run.
func (e *Engine) Grid() *Grid { return e.grid }

// Stats returns statistics for the last run.
func (e *Engine) Stats() Stats { return e.stats }

// SetRotationRange sets the random rotation bound in radians.
func (e *Engine) SetRotationRange(radians float64) {
	e.cfg.RotationRange = radians
}

// SetSpiral selects the spiral by name; unknown names select archimedean.
func (e *Engine) SetSpiral(kind string) {
	e.cfg.Spiral = ParseSpiral(kind)
}

// ResetGrid replaces the occupancy grid with an empty one sized for the
// current canvas. It always succeeds.
func (e *Engine) ResetGrid() bool {
	e.grid = NewGrid(e.cfg.Width, e.cfg.Height, e.cellSize)
	return true
}

// GenerateLayout places labels and returns the ones that fit. Labels whose
// spiral search runs out of attempts are left out; that is not an error.
//
// With [OrderInput] the result is a subsequence of labels in input order.
func (e *Engine) GenerateLayout(labels []Label) []Placed {
	e.ResetGrid()
	e.stats = Stats{Input: len(labels)}

	placed := make([]Placed, 0, len(labels))
	if len(labels) == 0 {
		return placed
	}

	minW, maxW := math.Inf(1), math.Inf(-1)
	for _, l := range labels {
		minW = min(minW, l.Weight)
		maxW = max(maxW, l.Weight)
	}

	cx, cy := float64(e.cfg.Width)/2, float64(e.cfg.Height)/2
	spiral := NewSpiral(e.cfg.Spiral, e.spiralStep, e.rectStep)

	for _, l := range e.ordered(labels) {
		size := MapSize(l.Weight, minW, maxW, e.cfg.MinSize, e.cfg.MaxSize)
		w, h := e.measure(l.Text, size)
		theta := e.rotation(l)

		spiral.Reset()
		x, y, ok := e.search(spiral, cx, cy, w, h, theta)
		if !ok {
			e.stats.Omitted++
			e.logger.Debug("label omitted", "text", l.Text, "size", size, "attempts", e.maxAttempts)
			e.report()
			continue
		}

		Commit(e.grid, x, y, w, h, theta)
		placed = append(placed, Placed{
			Text:   l.Text,
			Weight: l.Weight,
			X:      x,
			Y:      y,
			Rotate: theta,
			Color:  l.Color,
			Size:   size,
		})
		e.stats.Placed = len(placed)
		e.report()
	}

	e.stats.Placed = len(placed)
	e.stats.Occupied = e.grid.Occupied()
	e.logger.Debug("layout complete",
		"input", e.stats.Input,
		"placed", e.stats.Placed,
		"omitted", e.stats.Omitted,
		"spiral", e.cfg.Spiral)
	return placed
}

// report passes the running statistics to the progress callback, if any.
func (e *Engine) report() {
	if e.progress != nil {
		e.progress(e.stats)
	}
}

// search walks the spiral from (cx, cy) and returns the first free position.
func (e *Engine) search(s *Spiral, cx, cy, w, h, theta float64) (float64, float64, bool) {
	cw, ch := float64(e.cfg.Width), float64(e.cfg.Height)
	for range e.maxAttempts {
		dx, dy := s.Next()
		x, y := cx+dx, cy+dy
		e.stats.Attempts++
		if !Collides(e.grid, cw, ch, x, y, w, h, theta) {
			return x, y, true
		}
	}
	return 0, 0, false
}

func (e *Engine) measure(text string, size float64) (float64, float64) {
	f := Font{Family: e.cfg.FontFamily, Weight: e.cfg.FontWeight, Size: size}
	w, h := e.measurer.Measure(text, f)
	if w <= 0 || h <= 0 || math.IsNaN(w) || math.IsNaN(h) {
		return Estimate(text, size, DefaultCharWidth)
	}
	return w, h
}

func (e *Engine) rotation(l Label) float64 {
	switch {
	case l.Rotate != nil:
		return *l.Rotate
	case e.cfg.RotationRange > 0:
		return (e.rng.Float64()*2 - 1) * e.cfg.RotationRange
	default:
		return 0
	}
}

func (e *Engine) ordered(labels []Label) []Label {
	if e.order != OrderWeightDesc {
		return labels
	}
	sorted := slices.Clone(labels)
	slices.SortStableFunc(sorted, func(a, b Label) int {
		return cmp.Compare(b.Weight, a.Weight)
	})
	return sorted
}
