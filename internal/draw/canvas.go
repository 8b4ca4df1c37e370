package draw

import "github.com/lucasb-eyer/go-colorful"

// Cell is one terminal character with an optional foreground color.
type Cell struct {
	Ch    rune
	FG    colorful.Color
	Plain bool // use the terminal's default color
}

var blankCell = Cell{Ch: BlockEmpty, Plain: true}

// Canvas is a fixed-size character buffer. Render only emits cells that
// changed since the previous frame.
type Canvas struct {
	width  int
	height int
	cells  []Cell // Flat slice: [y * width + x]
	prev   []Cell // What the terminal currently shows
	valid  bool   // prev matches the terminal
}

// NewCanvas creates a blank canvas of the given size in terminal cells.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
		prev:   make([]Cell, width*height),
	}
	c.Clear()
	return c
}

// Width returns the canvas width in terminal columns.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in terminal rows.
func (c *Canvas) Height() int { return c.height }

// Clear resets every cell to a blank.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = blankCell
	}
}

// ForceRedraw makes the next Render emit every cell.
func (c *Canvas) ForceRedraw() {
	c.valid = false
}

// Set draws ch in color fg at (x, y). Out of range coordinates are ignored.
func (c *Canvas) Set(x, y int, ch rune, fg colorful.Color) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.cells[y*c.width+x] = Cell{Ch: ch, FG: fg}
}

// SetPlain draws ch in the default color at (x, y).
func (c *Canvas) SetPlain(x, y int, ch rune) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.cells[y*c.width+x] = Cell{Ch: ch, Plain: true}
}

// At returns the cell at (x, y).
func (c *Canvas) At(x, y int) Cell {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return blankCell
	}
	return c.cells[y*c.width+x]
}

// Render writes the changed cells to cw. Coordinates are 1-based on the
// terminal after the writer's offset.
func (c *Canvas) Render(cw *ChunkWriter) {
	cw.ResetStyle()
	plain := true
	var fg colorful.Color
	nextCol, nextRow := -1, -1 // where the cursor sits after the last write

	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			i := y*c.width + x
			cell := c.cells[i]
			if c.valid && cell == c.prev[i] {
				continue
			}

			if x != nextCol || y != nextRow {
				cw.MoveCursor(x+1, y+1)
			}
			switch {
			case cell.Plain && !plain:
				cw.ResetStyle()
				plain = true
			case !cell.Plain && (plain || cell.FG != fg):
				r, g, b := cell.FG.RGB255()
				cw.SetForeground(r, g, b)
				plain = false
				fg = cell.FG
			}
			cw.WriteRune(cell.Ch)
			nextCol, nextRow = x+1, y
		}
	}

	cw.ResetStyle()
	copy(c.prev, c.cells)
	c.valid = true
}
