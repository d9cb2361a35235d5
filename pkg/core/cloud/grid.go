package cloud

// DefaultCellSize is the edge length of one occupancy cell in canvas units.
const DefaultCellSize = 4

// Grid is a dense occupancy map over a discretized canvas.
//
// Cells are stored column-major in a single slice: cell (i, j) covers the
// canvas area [i*cell, (i+1)*cell) × [j*cell, (j+1)*cell). A cell is set once
// a committed label's rotated bounding box touches it; cells are never cleared
// individually, the whole grid is rebuilt instead.
//
// Grid is not safe for concurrent use.
type Grid struct {
	cells []bool
	cols  int
	rows  int
	cell  int
}

// NewGrid allocates an empty grid for a width × height canvas.
// Non-positive dimensions are treated as zero; cellSize below 1 falls back
// to [DefaultCellSize].
func NewGrid(width, height, cellSize int) *Grid {
	if cellSize < 1 {
		cellSize = DefaultCellSize
	}
	cols := max(width, 0)/cellSize + 1
	rows := max(height, 0)/cellSize + 1
	return &Grid{
		cells: make([]bool, cols*rows),
		cols:  cols,
		rows:  rows,
		cell:  cellSize,
	}
}

// Cols returns the number of cells along the x axis.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the number of cells along the y axis.
func (g *Grid) Rows() int { return g.rows }

// CellSize returns the cell edge length in canvas units.
func (g *Grid) CellSize() int { return g.cell }

// At reports whether cell (i, j) is occupied. Out-of-range cells read as free.
func (g *Grid) At(i, j int) bool {
	if i < 0 || j < 0 || i >= g.cols || j >= g.rows {
		return false
	}
	return g.cells[i*g.rows+j]
}

// Set marks cell (i, j) as occupied. Out-of-range cells are ignored.
func (g *Grid) Set(i, j int) {
	if i < 0 || j < 0 || i >= g.cols || j >= g.rows {
		return
	}
	g.cells[i*g.rows+j] = true
}

// Occupied counts the occupied cells.
func (g *Grid) Occupied() int {
	n := 0
	for _, c := range g.cells {
		if c {
			n++
		}
	}
	return n
}

// CellRange maps r to the inclusive range of cells it covers, clamped to the grid.
func (g *Grid) CellRange(r Rect) (i0, j0, i1, j1 int) {
	i0 = clamp(floorDiv(r.MinX, g.cell), 0, g.cols-1)
	i1 = clamp(floorDiv(r.MaxX, g.cell), 0, g.cols-1)
	j0 = clamp(floorDiv(r.MinY, g.cell), 0, g.rows-1)
	j1 = clamp(floorDiv(r.MaxY, g.cell), 0, g.rows-1)
	return i0, j0, i1, j1
}

// anyIn reports whether any cell of the inclusive range is occupied.
func (g *Grid) anyIn(i0, j0, i1, j1 int) bool {
	for i := i0; i <= i1; i++ {
		col := g.cells[i*g.rows : (i+1)*g.rows]
		for j := j0; j <= j1; j++ {
			if col[j] {
				return true
			}
		}
	}
	return false
}

// fill marks every cell of the inclusive range.
func (g *Grid) fill(i0, j0, i1, j1 int) {
	for i := i0; i <= i1; i++ {
		col := g.cells[i*g.rows : (i+1)*g.rows]
		for j := j0; j <= j1; j++ {
			col[j] = true
		}
	}
}
