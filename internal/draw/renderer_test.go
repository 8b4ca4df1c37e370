package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/tetris/internal/game"
)

func fixedSize(w, h int) TermSizeFunc {
	return func() (int, int, error) { return w, h, nil }
}

func emptySnapshot(width, height int) game.Snapshot {
	cells := make([][]game.Cell, height)
	for y := range cells {
		cells[y] = make([]game.Cell, width)
	}
	next := game.NewPiece(game.KindI, width)
	return game.Snapshot{
		Width:   width,
		Height:  height,
		Cells:   cells,
		Next:    &game.Preview{Kind: next.Kind, Cells: next.Cells(), Color: next.Color()},
		CanHold: true,
		Level:   1,
		State:   game.StatePlaying,
	}
}

func TestRendererLayout(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, fixedSize(100, 30), 10, 20)

	w, h := r.canvas.Width(), r.canvas.Height()
	assert.Equal(t, 60, w)
	assert.Equal(t, 22, h)

	snap := emptySnapshot(10, 20)
	snap.Score = 1234
	require.NoError(t, r.DrawFrame(Frame{Snapshot: snap}))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\033[H\033[2J"))
	assert.Contains(t, out, "\033[5;21H", "canvas is centered")
	for _, s := range []string{"HOLD", "NEXT", "SCORE", "1234", "LEVEL", "LINES", "hard drop"} {
		assert.Contains(t, out, s)
	}
	assert.NotContains(t, out, "GAME OVER")

	// Left border of the well, and an empty cell inside it.
	assert.Equal(t, '┌', r.canvas.At(18, 0).Ch)
	assert.Equal(t, GridDot, r.canvas.At(19, 1).Ch)
}

func TestRendererPieces(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, fixedSize(60, 22), 10, 20)

	snap := emptySnapshot(10, 20)
	red := game.KindZ.Color()
	snap.Cells[19][0] = game.Cell{Color: red, Filled: true}
	snap.Current = []game.Point{{X: 4, Y: 0}, {X: 4, Y: -1}}
	snap.CurrentColor = game.KindT.Color()
	snap.Ghost = []game.Point{{X: 4, Y: 18}}
	require.NoError(t, r.DrawFrame(Frame{Snapshot: snap}))

	locked := r.canvas.At(19, 20)
	assert.Equal(t, BlockFull, locked.Ch)
	assert.Equal(t, ToColorful(red), locked.FG)

	current := r.canvas.At(19+8, 1)
	assert.Equal(t, BlockFull, current.Ch)
	assert.Equal(t, ToColorful(game.KindT.Color()), current.FG)
	assert.Equal(t, current, r.canvas.At(19+9, 1), "cells are two columns wide")

	assert.Equal(t, BlockLight, r.canvas.At(19+8, 19).Ch)
	assert.Equal(t, '─', r.canvas.At(19+8, 0).Ch, "cells above the well are not drawn")
}

func TestRendererClearingRowsFade(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, fixedSize(60, 22), 4, 20)

	snap := emptySnapshot(4, 20)
	for x := range 4 {
		snap.Cells[19][x] = game.Cell{Color: game.KindO.Color(), Filled: true}
	}
	snap.State = game.StateLineClearing
	snap.ClearingRows = []int{19}
	snap.ClearProgress = 0.5
	require.NoError(t, r.DrawFrame(Frame{Snapshot: snap}))

	cell := r.canvas.At(19, 20)
	assert.Equal(t, ShadeLevel(0.5), cell.Ch)
	assert.Equal(t, FadeToWhite(ToColorful(game.KindO.Color()), 0.5), cell.FG)
}

func TestRendererHoldDimmedWhenUsed(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, fixedSize(60, 22), 10, 20)

	snap := emptySnapshot(10, 20)
	o := game.NewPiece(game.KindO, 10)
	snap.Hold = &game.Preview{Kind: o.Kind, Cells: o.Cells(), Color: o.Color()}
	snap.CanHold = false
	require.NoError(t, r.DrawFrame(Frame{Snapshot: snap}))

	// A 2x2 piece is centered in the 8x4 preview interior.
	cell := r.canvas.At(3, 2)
	assert.Equal(t, BlockFull, cell.Ch)
	assert.Equal(t, Dim(ToColorful(o.Color()), 0.6), cell.FG)
}

func TestRendererOverlays(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, fixedSize(60, 22), 10, 20)

	snap := emptySnapshot(10, 20)
	snap.State = game.StatePaused
	require.NoError(t, r.DrawFrame(Frame{Snapshot: snap}))
	assert.Contains(t, buf.String(), "PAUSED")

	buf.Reset()
	snap.State = game.StateGameOver
	snap.Score = 4200
	require.NoError(t, r.DrawFrame(Frame{Snapshot: snap}))
	out := buf.String()
	assert.Contains(t, out, "GAME OVER")
	assert.Contains(t, out, "Score: 4200")
	assert.Contains(t, out, "Press R to restart")
}

func TestRendererRepaintsOnResize(t *testing.T) {
	var buf bytes.Buffer
	width := 80
	r := NewRenderer(&buf, func() (int, int, error) { return width, 24, nil }, 10, 20)
	snap := emptySnapshot(10, 20)

	require.NoError(t, r.DrawFrame(Frame{Snapshot: snap}))
	buf.Reset()
	require.NoError(t, r.DrawFrame(Frame{Snapshot: snap}))
	assert.NotContains(t, buf.String(), "\033[2J", "same size draws only changes")
	assert.NotContains(t, buf.String(), "SCORE")

	width = 120
	buf.Reset()
	require.NoError(t, r.DrawFrame(Frame{Snapshot: snap}))
	assert.True(t, strings.HasPrefix(buf.String(), "\033[H\033[2J"))
	assert.Contains(t, buf.String(), "SCORE")
}

func TestRendererFrameExtras(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, fixedSize(60, 22), 10, 20)

	require.NoError(t, r.DrawFrame(Frame{
		Snapshot: emptySnapshot(10, 20),
		Players:  3,
		Best:     900,
		Notice:   []string{"SERVER SHUTTING DOWN", "Please reconnect in a moment."},
	}))

	out := buf.String()
	assert.Contains(t, out, "PLAYERS")
	assert.Contains(t, out, "BEST")
	assert.Contains(t, out, "900")
	assert.Contains(t, out, "SERVER SHUTTING DOWN")
	assert.Contains(t, out, "Please reconnect in a moment.")
}

func TestRendererHidesEmptyExtras(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, fixedSize(60, 22), 10, 20)

	require.NoError(t, r.DrawFrame(Frame{Snapshot: emptySnapshot(10, 20)}))
	assert.NotContains(t, buf.String(), "PLAYERS")
	assert.NotContains(t, buf.String(), "BEST")
}

func TestRendererFitsStatsOnShortWell(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, fixedSize(80, 30), 10, 10)
	assert.Equal(t, 22, r.canvas.Height())

	require.NoError(t, r.DrawFrame(Frame{
		Snapshot: emptySnapshot(10, 10),
		Players:  3,
		Best:     900,
	}))

	assert.Equal(t, 'P', r.canvas.At(1, 19).Ch)
	assert.Equal(t, '3', r.canvas.At(1, 20).Ch)
	assert.Contains(t, buf.String(), "PLAYERS")
}
