package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPieceSpawnPosition(t *testing.T) {
	tests := []struct {
		kind  Kind
		width int
		wantX int
	}{
		{KindI, 10, 3},
		{KindO, 10, 4},
		{KindT, 10, 4},
		{KindL, 10, 4},
		{KindI, 20, 8},
		{KindT, 7, 2},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			p := NewPiece(tt.kind, tt.width)
			assert.Equal(t, Point{X: tt.wantX, Y: 0}, p.Origin)
			assert.Equal(t, tt.kind.Color(), p.Color())
		})
	}
}

func TestEveryKindHasFourCells(t *testing.T) {
	for _, k := range Kinds {
		p := NewPiece(k, 10)
		assert.Len(t, p.OccupiedCells(), 4, "kind %s", k)
		assert.NotEmpty(t, p.Cells())
	}
}

func TestKindColorsAreDistinct(t *testing.T) {
	seen := make(map[Color]Kind)
	for _, k := range Kinds {
		c := k.Color()
		prev, dup := seen[c]
		assert.False(t, dup, "%s shares color %v with %s", k, c, prev)
		seen[c] = k
	}
}

func TestFourClockwiseRotationsRestoreShape(t *testing.T) {
	for _, k := range Kinds {
		t.Run(k.String(), func(t *testing.T) {
			p := NewPiece(k, 10)
			original := p.Cells()
			for range 4 {
				p.RotateClockwise()
			}
			assert.Equal(t, original, p.Cells())
		})
	}
}

func TestCounterclockwiseUndoesClockwise(t *testing.T) {
	for _, k := range Kinds {
		p := NewPiece(k, 10)
		original := p.Cells()
		p.RotateClockwise()
		p.RotateCounterclockwise()
		assert.Equal(t, original, p.Cells(), "kind %s", k)

		p.RotateCounterclockwise()
		p.RotateCounterclockwise()
		p.RotateCounterclockwise()
		p.RotateCounterclockwise()
		assert.Equal(t, original, p.Cells(), "kind %s", k)
	}
}

func TestRotateT(t *testing.T) {
	p := NewPiece(KindT, 10)

	p.RotateClockwise()
	assert.Equal(t, [][]bool{
		{true, false},
		{true, true},
		{true, false},
	}, p.Cells())

	p.RotateClockwise()
	assert.Equal(t, [][]bool{
		{true, true, true},
		{false, true, false},
	}, p.Cells())

	q := NewPiece(KindT, 10)
	q.RotateCounterclockwise()
	assert.Equal(t, [][]bool{
		{false, true},
		{true, true},
		{false, true},
	}, q.Cells())
}

func TestRotateIChangesDimensions(t *testing.T) {
	p := NewPiece(KindI, 10)
	require.Len(t, p.Cells(), 1)

	p.RotateClockwise()
	cells := p.Cells()
	require.Len(t, cells, 4)
	for _, row := range cells {
		assert.Equal(t, []bool{true}, row)
	}
}

func TestOccupiedCellsRowMajor(t *testing.T) {
	p := NewPiece(KindJ, 10)
	p.Origin = Point{X: 2, Y: 5}

	assert.Equal(t, []Point{
		{2, 5},
		{2, 6}, {3, 6}, {4, 6},
	}, p.OccupiedCells())
}

func TestCloneIsIndependent(t *testing.T) {
	p := NewPiece(KindS, 10)
	p.Origin = Point{X: 1, Y: 2}
	before := p.Cells()

	c := p.Clone()
	c.RotateClockwise()
	c.Origin.X = 7
	c.cells[0][0] = !c.cells[0][0]

	assert.Equal(t, before, p.Cells())
	assert.Equal(t, Point{X: 1, Y: 2}, p.Origin)
	assert.Equal(t, p.Kind, c.Kind)
}

func TestCellsReturnsCopy(t *testing.T) {
	p := NewPiece(KindO, 10)
	cells := p.Cells()
	cells[0][0] = false
	assert.Len(t, p.OccupiedCells(), 4)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "I", KindI.String())
	assert.Equal(t, "L", KindL.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
	assert.Equal(t, Color{0, 255, 255}, KindI.Color())
}
