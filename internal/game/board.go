package game

// Cell is one square of the board. Color is meaningful only when Filled.
type Cell struct {
	Color  Color
	Filled bool
}

// Board is the fixed-size grid of locked cells, indexed [y][x] with y = 0 at
// the top.
type Board struct {
	width  int
	height int
	rows   [][]Cell
}

// NewBoard creates an empty board. Dimensions must be positive; the session
// validates them before calling.
func NewBoard(width, height int) *Board {
	b := &Board{width: width, height: height, rows: make([][]Cell, height)}
	for y := range b.rows {
		b.rows[y] = make([]Cell, width)
	}
	return b
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.width }

// Height returns the number of rows.
func (b *Board) Height() int { return b.height }

// At returns the cell at (x, y). Coordinates outside the board read as empty.
func (b *Board) At(x, y int) Cell {
	if !b.inside(x, y) {
		return Cell{}
	}
	return b.rows[y][x]
}

// Filled reports whether (x, y) holds a locked cell.
func (b *Board) Filled(x, y int) bool {
	return b.At(x, y).Filled
}

func (b *Board) inside(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// IsValidPlacement reports whether piece, shifted by (dx, dy), lies inside the
// walls and floor without overlapping locked cells. Cells above the top row
// are only checked against the walls so pieces can spawn partly hidden.
func (b *Board) IsValidPlacement(piece *Piece, dx, dy int) bool {
	for _, p := range piece.OccupiedCells() {
		x, y := p.X+dx, p.Y+dy
		if x < 0 || x >= b.width || y >= b.height {
			return false
		}
		if y >= 0 && b.rows[y][x].Filled {
			return false
		}
	}
	return true
}

// Lock writes the piece color into every covered cell. Cells above the top
// row are dropped.
func (b *Board) Lock(piece *Piece) {
	color := piece.Color()
	for _, p := range piece.OccupiedCells() {
		if b.inside(p.X, p.Y) {
			b.rows[p.Y][p.X] = Cell{Color: color, Filled: true}
		}
	}
}

// FullRows returns the indices of completely filled rows, top to bottom.
func (b *Board) FullRows() []int {
	var full []int
	for y, row := range b.rows {
		complete := true
		for _, c := range row {
			if !c.Filled {
				complete = false
				break
			}
		}
		if complete {
			full = append(full, y)
		}
	}
	return full
}

// RemoveRows deletes the given rows and inserts the same number of empty rows
// at the top. Remaining rows keep their relative order. Duplicate and out of
// range indices are ignored.
func (b *Board) RemoveRows(indices []int) {
	remove := make(map[int]bool, len(indices))
	for _, y := range indices {
		if y >= 0 && y < b.height {
			remove[y] = true
		}
	}
	if len(remove) == 0 {
		return
	}

	kept := make([][]Cell, 0, b.height)
	for range remove {
		kept = append(kept, make([]Cell, b.width))
	}
	for y, row := range b.rows {
		if !remove[y] {
			kept = append(kept, row)
		}
	}
	b.rows = kept
}

// Clear empties every cell.
func (b *Board) Clear() {
	for _, row := range b.rows {
		clear(row)
	}
}

// Rows returns a copy of the grid, indexed [y][x].
func (b *Board) Rows() [][]Cell {
	out := make([][]Cell, b.height)
	for y, row := range b.rows {
		out[y] = append([]Cell(nil), row...)
	}
	return out
}
