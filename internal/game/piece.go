// Package game implements the falling-block puzzle rules: pieces, the board,
// scoring and the session state machine. It has no knowledge of terminals,
// keys or clocks; callers feed it elapsed time and logical actions.
package game

import "fmt"

// Point is a cell coordinate on the board. Y grows downwards and may be
// negative for cells above the visible well.
type Point struct {
	X, Y int
}

// Color is a 24-bit RGB color.
type Color struct {
	R, G, B uint8
}

// Kind identifies one of the seven tetrominoes.
type Kind int

const (
	KindI Kind = iota
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
)

// Kinds lists every tetromino in a fixed order.
var Kinds = [...]Kind{KindI, KindO, KindT, KindS, KindZ, KindJ, KindL}

var kindNames = [...]string{"I", "O", "T", "S", "Z", "J", "L"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Spawn orientation of each kind, trimmed to its bounding box.
var kindShapes = [...][][]bool{
	KindI: {
		{true, true, true, true},
	},
	KindO: {
		{true, true},
		{true, true},
	},
	KindT: {
		{false, true, false},
		{true, true, true},
	},
	KindS: {
		{false, true, true},
		{true, true, false},
	},
	KindZ: {
		{true, true, false},
		{false, true, true},
	},
	KindJ: {
		{true, false, false},
		{true, true, true},
	},
	KindL: {
		{false, false, true},
		{true, true, true},
	},
}

var kindColors = [...]Color{
	KindI: {0, 255, 255},
	KindO: {255, 255, 0},
	KindT: {128, 0, 128},
	KindS: {0, 255, 0},
	KindZ: {255, 0, 0},
	KindJ: {0, 0, 255},
	KindL: {255, 165, 0},
}

// Color returns the fixed color of the kind.
func (k Kind) Color() Color {
	return kindColors[k]
}

// Piece is a single tetromino instance: its footprint matrix and the board
// position of the matrix's top-left corner.
type Piece struct {
	Kind   Kind
	Origin Point
	cells  [][]bool
}

// NewPiece creates a piece of the given kind in spawn orientation, centered
// horizontally on a well of the given width at row 0.
func NewPiece(kind Kind, boardWidth int) *Piece {
	cells := copyCells(kindShapes[kind])
	return &Piece{
		Kind:   kind,
		Origin: Point{X: boardWidth/2 - len(cells[0])/2, Y: 0},
		cells:  cells,
	}
}

// Color returns the piece color, derived from its kind.
func (p *Piece) Color() Color {
	return p.Kind.Color()
}

// Cells returns a copy of the footprint matrix, indexed [row][col].
func (p *Piece) Cells() [][]bool {
	return copyCells(p.cells)
}

// RotateClockwise turns the footprint a quarter turn clockwise in place.
// No bounds checking is done.
func (p *Piece) RotateClockwise() {
	rows, cols := len(p.cells), len(p.cells[0])
	rotated := newCells(cols, rows)
	for r := range rows {
		for c := range cols {
			rotated[c][rows-1-r] = p.cells[r][c]
		}
	}
	p.cells = rotated
}

// RotateCounterclockwise turns the footprint a quarter turn counterclockwise
// in place. No bounds checking is done.
func (p *Piece) RotateCounterclockwise() {
	rows, cols := len(p.cells), len(p.cells[0])
	rotated := newCells(cols, rows)
	for r := range rows {
		for c := range cols {
			rotated[cols-1-c][r] = p.cells[r][c]
		}
	}
	p.cells = rotated
}

// OccupiedCells returns the absolute board coordinates covered by the piece,
// in row-major scan order.
func (p *Piece) OccupiedCells() []Point {
	points := make([]Point, 0, 4)
	for r, row := range p.cells {
		for c, filled := range row {
			if filled {
				points = append(points, Point{X: p.Origin.X + c, Y: p.Origin.Y + r})
			}
		}
	}
	return points
}

// Clone returns an independent copy of the piece.
func (p *Piece) Clone() *Piece {
	return &Piece{
		Kind:   p.Kind,
		Origin: p.Origin,
		cells:  copyCells(p.cells),
	}
}

func newCells(rows, cols int) [][]bool {
	cells := make([][]bool, rows)
	for i := range cells {
		cells[i] = make([]bool, cols)
	}
	return cells
}

func copyCells(src [][]bool) [][]bool {
	dst := make([][]bool, len(src))
	for i, row := range src {
		dst[i] = append([]bool(nil), row...)
	}
	return dst
}
