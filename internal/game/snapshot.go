package game

// Snapshot is a read-only copy of everything a renderer needs for one frame.
// It shares no memory with the session.
type Snapshot struct {
	Width  int
	Height int
	Cells  [][]Cell // indexed [y][x]

	Current      []Point // empty when no piece is active
	CurrentColor Color
	Ghost        []Point // empty unless the ghost is visible and no clear is running

	Next *Preview
	Hold *Preview // nil when the hold slot is empty

	CanHold bool
	Score   int
	Level   int
	Lines   int
	State   State

	ClearingRows  []int
	ClearProgress float64 // in [0, 1], only meaningful while clearing
}

// Preview is the shape and color of a piece shown outside the well.
type Preview struct {
	Kind  Kind
	Cells [][]bool
	Color Color
}

func newPreview(p *Piece) *Preview {
	if p == nil {
		return nil
	}
	return &Preview{Kind: p.Kind, Cells: p.Cells(), Color: p.Color()}
}

// Snapshot captures the current session for rendering.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Width:         s.board.Width(),
		Height:        s.board.Height(),
		Cells:         s.board.Rows(),
		Next:          newPreview(s.next),
		Hold:          newPreview(s.hold),
		CanHold:       s.canHold,
		Score:         s.score,
		Level:         s.level,
		Lines:         s.lines,
		State:         s.state,
		ClearingRows:  s.ClearingRows(),
		ClearProgress: s.ClearProgress(),
	}

	if s.current != nil {
		snap.Current = s.current.OccupiedCells()
		snap.CurrentColor = s.current.Color()
		if s.ghostVisible && len(s.clearingRows) == 0 {
			snap.Ghost = s.Ghost().OccupiedCells()
		}
	}
	return snap
}
