package draw

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/tetris/internal/game"
)

// Layout, in terminal cells. Board cells are two columns wide so they look
// square in most fonts.
const (
	cellWidth   = 2
	sidePanel   = 16
	panelGap    = 2
	previewBox  = 10 // 4 preview cells plus the border
	previewRows = 6
	maxStats    = 5 // score, level, lines, best, players
)

var controls = []string{
	"←/→   move",
	"↑ x   rotate",
	"z     rotate ccw",
	"↓     soft drop",
	"space hard drop",
	"c     hold",
	"g     ghost",
	"p     pause",
	"r     restart",
	"q     quit",
}

// Renderer draws game snapshots to a terminal, centered in the window.
type Renderer struct {
	cw       *ChunkWriter
	canvas   *Canvas
	sizeFunc TermSizeFunc

	boardW int
	boardH int
	wellX  int
	rightX int

	offCol int
	offRow int
	placed bool
}

// NewRenderer creates a renderer for a boardW x boardH well writing to w.
// A nil sizeFunc uses the size of os.Stdout.
func NewRenderer(w io.Writer, sizeFunc TermSizeFunc, boardW, boardH int) *Renderer {
	if sizeFunc == nil {
		sizeFunc = DefaultTermSizeFunc
	}
	wellX := sidePanel + panelGap
	rightX := wellX + boardW*cellWidth + 2 + panelGap
	width := rightX + sidePanel + 2
	height := max(boardH+2, previewRows+1+len(controls), previewRows+1+3*maxStats)

	return &Renderer{
		cw:       NewChunkWriter(w, 0, 0),
		canvas:   NewCanvas(width, height),
		sizeFunc: sizeFunc,
		boardW:   boardW,
		boardH:   boardH,
		wellX:    wellX,
		rightX:   rightX,
	}
}

// Frame is a snapshot plus what the connection adds around it.
type Frame struct {
	Snapshot game.Snapshot
	Players  int      // players online, hidden when 0
	Best     int      // best score seen, hidden when 0
	Notice   []string // title first, drawn over everything
}

// DrawFrame renders f and flushes it to the writer.
func (r *Renderer) DrawFrame(f Frame) error {
	r.place()

	snap := f.Snapshot
	c := r.canvas
	c.Clear()
	r.drawWell(snap)
	r.drawLeftPanel(f)
	r.drawRightPanel(snap)

	switch {
	case len(f.Notice) > 0:
		r.overlay(Red, f.Notice[0], f.Notice[1:]...)
	case snap.State == game.StatePaused:
		r.overlay(Gray, "PAUSED", "Press P to resume")
	case snap.State == game.StateGameOver:
		r.overlay(Red, "GAME OVER", fmt.Sprintf("Score: %d", snap.Score), "Press R to restart")
	}

	c.Render(r.cw)
	return r.cw.Flush()
}

// place centers the canvas in the terminal. A changed position clears the
// screen and repaints everything.
func (r *Renderer) place() {
	termW, termH, err := r.sizeFunc()
	if err != nil {
		termW, termH = r.canvas.Width(), r.canvas.Height()
	}
	offCol := max(0, (termW-r.canvas.Width())/2)
	offRow := max(0, (termH-r.canvas.Height())/2)

	if r.placed && offCol == r.offCol && offRow == r.offRow {
		return
	}
	r.offCol, r.offRow, r.placed = offCol, offRow, true
	r.cw.SetOffset(offCol, offRow)
	r.cw.WriteString("\033[H\033[2J")
	r.canvas.ForceRedraw()
}

func (r *Renderer) drawWell(snap game.Snapshot) {
	c := r.canvas
	c.Box(r.wellX, 0, r.boardW*cellWidth+2, r.boardH+2, "")

	clearing := make(map[int]bool, len(snap.ClearingRows))
	for _, row := range snap.ClearingRows {
		clearing[row] = true
	}

	for y, row := range snap.Cells {
		for x, cell := range row {
			switch {
			case !cell.Filled:
				r.setCell(x, y, GridDot, DarkGray)
			case clearing[y]:
				fade := FadeToWhite(ToColorful(cell.Color), snap.ClearProgress)
				r.setCell(x, y, ShadeLevel(1-snap.ClearProgress), fade)
			default:
				r.setCell(x, y, BlockFull, ToColorful(cell.Color))
			}
		}
	}

	pieceColor := ToColorful(snap.CurrentColor)
	for _, p := range snap.Ghost {
		r.setCell(p.X, p.Y, BlockLight, Dim(pieceColor, 0.4))
	}
	for _, p := range snap.Current {
		r.setCell(p.X, p.Y, BlockFull, pieceColor)
	}
}

// setCell paints one board cell. Cells above the well are skipped.
func (r *Renderer) setCell(x, y int, ch rune, fg colorful.Color) {
	if x < 0 || x >= r.boardW || y < 0 || y >= r.boardH {
		return
	}
	sx := r.wellX + 1 + x*cellWidth
	sy := 1 + y
	r.canvas.Set(sx, sy, ch, fg)
	if ch == GridDot {
		r.canvas.SetPlain(sx+1, sy, BlockEmpty)
		return
	}
	r.canvas.Set(sx+1, sy, ch, fg)
}

type stat struct {
	label string
	value int
}

func (r *Renderer) drawLeftPanel(f Frame) {
	snap := f.Snapshot
	c := r.canvas
	c.Box(0, 0, previewBox, previewRows, "HOLD")
	if snap.Hold != nil {
		fg := ToColorful(snap.Hold.Color)
		if !snap.CanHold {
			fg = Dim(fg, 0.6)
		}
		r.drawPreview(0, 0, snap.Hold, fg)
	}

	stats := []stat{
		{"SCORE", snap.Score},
		{"LEVEL", snap.Level},
		{"LINES", snap.Lines},
	}
	if f.Best > 0 {
		stats = append(stats, stat{"BEST", f.Best})
	}
	if f.Players > 0 {
		stats = append(stats, stat{"PLAYERS", f.Players})
	}
	y := previewRows + 1
	for _, s := range stats {
		c.TextColor(1, y, s.label, Gray)
		c.Text(1, y+1, fmt.Sprint(s.value))
		y += 3
	}
}

func (r *Renderer) drawRightPanel(snap game.Snapshot) {
	c := r.canvas
	c.Box(r.rightX, 0, previewBox, previewRows, "NEXT")
	if snap.Next != nil {
		r.drawPreview(r.rightX, 0, snap.Next, ToColorful(snap.Next.Color))
	}

	for i, line := range controls {
		c.TextColor(r.rightX, previewRows+1+i, line, Gray)
	}
}

// drawPreview centers a piece shape inside the preview box at (x, y).
func (r *Renderer) drawPreview(x, y int, p *game.Preview, fg colorful.Color) {
	rows := len(p.Cells)
	if rows == 0 {
		return
	}
	cols := len(p.Cells[0])
	innerW := previewBox - 2
	innerH := previewRows - 2
	left := x + 1 + (innerW-cols*cellWidth)/2
	top := y + 1 + (innerH-rows)/2

	for row, line := range p.Cells {
		for col, filled := range line {
			if !filled {
				continue
			}
			r.canvas.Set(left+col*cellWidth, top+row, BlockFull, fg)
			r.canvas.Set(left+col*cellWidth+1, top+row, BlockFull, fg)
		}
	}
}

// overlay draws a framed message over the middle of the well, widened to
// fit the longest line.
func (r *Renderer) overlay(titleColor colorful.Color, title string, lines ...string) {
	wellW := r.boardW*cellWidth + 2
	width := wellW - 2
	for _, line := range append([]string{title}, lines...) {
		width = max(width, utf8.RuneCountInString(line)+4)
	}
	height := len(lines) + 3
	top := max(0, (r.boardH+2-height)/2)
	center := r.wellX + wellW/2
	left := center - width/2

	c := r.canvas
	c.Fill(left, top, width, height, BlockEmpty)
	c.Box(left, top, width, height, "")

	c.TextCenter(center, top+1, title, titleColor)
	for i, line := range lines {
		c.TextCenter(center, top+2+i, line, White)
	}
}
