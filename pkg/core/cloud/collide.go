package cloud

import "math"

// Rect is an axis-aligned rectangle in canvas coordinates (y grows downward).
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Width returns the horizontal span of the rectangle.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical span of the rectangle.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Within reports whether r lies inside [0,w] × [0,h].
func (r Rect) Within(w, h float64) bool {
	return r.MinX >= 0 && r.MinY >= 0 && r.MaxX <= w && r.MaxY <= h
}

// Overlaps reports whether a and b share interior area. Touching edges do not count.
func Overlaps(a, b Rect) bool {
	return a.MinX < b.MaxX && b.MinX < a.MaxX && a.MinY < b.MaxY && b.MinY < a.MaxY
}

// RotatedBounds returns the axis-aligned box enclosing a w × h rectangle
// centered at (x, y) and rotated by theta radians about its center.
func RotatedBounds(x, y, w, h, theta float64) Rect {
	sin, cos := math.Sincos(theta)
	hw, hh := w/2, h/2
	corners := [4][2]float64{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}

	r := Rect{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, c := range corners {
		cx := c[0]*cos - c[1]*sin + x
		cy := c[0]*sin + c[1]*cos + y
		r.MinX = min(r.MinX, cx)
		r.MaxX = max(r.MaxX, cx)
		r.MinY = min(r.MinY, cy)
		r.MaxY = max(r.MaxY, cy)
	}
	return r
}

// Collides reports whether a label box centered at (x, y) would hit an
// occupied cell of g or leave the canvasW × canvasH canvas. Leaving the
// canvas counts as a collision so the search keeps probing instead of
// clipping the label.
func Collides(g *Grid, canvasW, canvasH, x, y, w, h, theta float64) bool {
	r := RotatedBounds(x, y, w, h, theta)
	if g.anyIn(g.CellRange(r)) {
		return true
	}
	return !r.Within(canvasW, canvasH)
}

// Commit marks every cell covered by the label box as occupied.
func Commit(g *Grid, x, y, w, h, theta float64) {
	g.fill(g.CellRange(RotatedBounds(x, y, w, h, theta)))
}

func floorDiv(v float64, cell int) int {
	q := math.Floor(v / float64(cell))
	switch {
	case math.IsNaN(q), q < -1:
		return -1
	case q > math.MaxInt32:
		return math.MaxInt32
	}
	return int(q)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
