package game

import (
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/tetris/internal/config"
)

// Randomizer picks the next piece. *rand.Rand from math/rand/v2 satisfies it.
type Randomizer interface {
	IntN(n int) int
}

// Options configures a Session.
type Options struct {
	Rand   Randomizer  // defaults to a randomly seeded PCG source
	Logger *log.Logger // defaults to discarding everything

	HideGhost bool // start with the ghost piece switched off
}

// Rotation retry offsets, tried in order after a rotation.
var wallKicks = [...]Point{
	{0, 0},
	{-1, 0},
	{1, 0},
	{0, -1},
	{-1, -1},
	{1, -1},
}

// Session is one game: the board, the active, next and held pieces, the
// counters and the state machine. It is driven by Tick and is not safe for
// concurrent use.
type Session struct {
	cfg     config.Config
	scoring Scoring
	rng     Randomizer
	logger  *log.Logger

	board   *Board
	state   State
	current *Piece
	next    *Piece
	hold    *Piece
	canHold bool

	score int
	level int
	lines int

	fallInterval time.Duration
	fallElapsed  time.Duration

	clearingRows []int
	clearElapsed time.Duration

	ghostVisible bool
}

// NewSession validates cfg and starts a game with the first piece spawned.
func NewSession(cfg config.Config, opts Options) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	cfg = cfg.Clone()

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Session{
		cfg:          cfg,
		scoring:      NewScoring(cfg),
		rng:          rng,
		logger:       logger,
		board:        NewBoard(cfg.Grid.Width, cfg.Grid.Height),
		ghostVisible: !opts.HideGhost,
	}
	s.Reset()
	return s, nil
}

// Tick advances the session by one frame: actions are applied in order, then
// elapsed time is applied once.
func (s *Session) Tick(elapsed time.Duration, actions []Action) {
	for _, a := range actions {
		s.HandleAction(a)
	}
	s.Update(elapsed)
}

// HandleAction applies a in the current state. It returns false when the
// state ignores the action.
func (s *Session) HandleAction(a Action) bool {
	if !s.state.accepts(a) {
		return false
	}

	switch a {
	case ActionMoveLeft:
		s.move(-1, 0)
	case ActionMoveRight:
		s.move(1, 0)
	case ActionSoftDrop:
		if s.move(0, 1) {
			s.score += s.scoring.SoftDropBonus()
		}
	case ActionRotate:
		s.rotate(true)
	case ActionRotateCCW:
		s.rotate(false)
	case ActionHardDrop:
		s.hardDrop()
	case ActionHold:
		s.HoldCurrentPiece()
	case ActionToggleGhost:
		s.ghostVisible = !s.ghostVisible
	case ActionPause:
		s.fire(triggerPause)
	case ActionRestart:
		s.Reset()
	default:
		return false
	}
	return true
}

// Update advances the timers of the current state by elapsed.
func (s *Session) Update(elapsed time.Duration) {
	switch s.state {
	case StatePlaying:
		if s.current == nil {
			return
		}
		s.fallElapsed += elapsed
		if s.fallElapsed >= s.fallInterval {
			s.fallElapsed = 0
			if !s.move(0, 1) {
				s.lock()
			}
		}
	case StateLineClearing:
		s.clearElapsed += elapsed
		if s.clearElapsed >= s.cfg.Timing.ClearAnimation {
			s.finishClear()
		}
	}
}

// HoldCurrentPiece sets the active piece aside. With an empty hold slot the
// next piece is spawned; otherwise the held and active kinds are swapped,
// both back in spawn orientation. Holding is then disabled until the next
// spawn. It returns false when holding is disabled.
func (s *Session) HoldCurrentPiece() bool {
	if !s.canHold || s.current == nil {
		return false
	}

	width := s.cfg.Grid.Width
	if s.hold == nil {
		s.hold = NewPiece(s.current.Kind, width)
		s.spawn()
	} else {
		held := s.hold.Kind
		s.hold = NewPiece(s.current.Kind, width)
		s.current = NewPiece(held, width)
		if !s.board.IsValidPlacement(s.current, 0, 0) {
			s.gameOver()
		}
	}
	s.canHold = false
	return true
}

// Reset starts a new game: empty board, zeroed counters, default gravity,
// fresh next piece, empty hold slot and a newly spawned active piece.
func (s *Session) Reset() {
	s.board.Clear()
	s.score = 0
	s.level = 1
	s.lines = 0
	s.fallInterval = s.cfg.Timing.InitialFallInterval
	s.fallElapsed = 0
	s.clearingRows = nil
	s.clearElapsed = 0
	s.current = nil
	s.next = s.randomPiece()
	s.hold = nil
	s.canHold = true
	s.fire(triggerRestart)
	s.spawn()
}

// Ghost returns where the active piece would land if hard dropped. The active
// piece is not modified. It returns nil when there is no active piece.
func (s *Session) Ghost() *Piece {
	if s.current == nil {
		return nil
	}
	ghost := s.current.Clone()
	for s.board.IsValidPlacement(ghost, 0, 1) {
		ghost.Origin.Y++
	}
	return ghost
}

// ClearLines looks for full rows. If any are found it scores them, updates
// lines, level and gravity, and starts the clear animation.
func (s *Session) ClearLines() bool {
	rows := s.board.FullRows()
	if len(rows) == 0 {
		return false
	}
	if !s.fire(triggerLinesFull) {
		return false
	}

	n := len(rows)
	s.score += s.scoring.ForClear(n, s.level)
	s.lines += n
	if level := s.scoring.LevelForLines(s.lines); level > s.level {
		s.level = level
		s.fallInterval = s.scoring.FallInterval(level)
		s.logger.Debug("level up", "level", level, "fall_interval", s.fallInterval)
	}

	s.clearingRows = rows
	s.clearElapsed = 0
	return true
}

func (s *Session) finishClear() {
	s.board.RemoveRows(s.clearingRows)
	s.clearingRows = nil
	s.clearElapsed = 0
	s.fire(triggerCleared)
	s.spawn()
}

// spawn promotes the next piece and draws a new one. It returns false and
// ends the game when the promoted piece does not fit.
func (s *Session) spawn() bool {
	s.current = s.next
	s.next = s.randomPiece()
	s.canHold = true

	if !s.board.IsValidPlacement(s.current, 0, 0) {
		s.gameOver()
		return false
	}
	return true
}

func (s *Session) gameOver() {
	if s.fire(triggerSpawnBlocked) {
		s.logger.Debug("game over", "score", s.score, "level", s.level, "lines", s.lines)
	}
}

func (s *Session) randomPiece() *Piece {
	kind := Kinds[s.rng.IntN(len(Kinds))]
	return NewPiece(kind, s.cfg.Grid.Width)
}

func (s *Session) move(dx, dy int) bool {
	if s.current == nil || !s.board.IsValidPlacement(s.current, dx, dy) {
		return false
	}
	s.current.Origin.X += dx
	s.current.Origin.Y += dy
	return true
}

func (s *Session) rotate(clockwise bool) bool {
	if s.current == nil {
		return false
	}

	saved := s.current.cells
	if clockwise {
		s.current.RotateClockwise()
	} else {
		s.current.RotateCounterclockwise()
	}

	for _, kick := range wallKicks {
		if s.board.IsValidPlacement(s.current, kick.X, kick.Y) {
			s.current.Origin.X += kick.X
			s.current.Origin.Y += kick.Y
			return true
		}
	}

	s.current.cells = saved
	return false
}

func (s *Session) hardDrop() {
	if s.current == nil {
		return
	}
	dropped := 0
	for s.move(0, 1) {
		dropped++
	}
	s.score += s.scoring.HardDropBonus(dropped)
	s.lock()
}

// lock commits the active piece to the board, then either starts a line
// clear or spawns the next piece.
func (s *Session) lock() {
	s.board.Lock(s.current)
	s.current = nil
	if !s.ClearLines() {
		s.spawn()
	}
}

// fire applies t to the state machine. Pairs missing from the transition
// table are rejected and leave the state unchanged.
func (s *Session) fire(t trigger) bool {
	next, ok := transition(s.state, t)
	if !ok {
		s.logger.Debug("transition rejected", "state", s.state, "trigger", t)
		return false
	}
	if next != s.state {
		s.logger.Debug("state change", "from", s.state, "to", next, "trigger", t)
	}
	s.state = next
	return true
}

// State returns the current phase.
func (s *Session) State() State { return s.state }

// Score returns the points earned so far.
func (s *Session) Score() int { return s.score }

// Level returns the current level, starting at 1.
func (s *Session) Level() int { return s.level }

// LinesCleared returns the total number of cleared rows.
func (s *Session) LinesCleared() int { return s.lines }

// FallInterval returns the current gravity period.
func (s *Session) FallInterval() time.Duration { return s.fallInterval }

// CanHold reports whether the hold action is currently enabled.
func (s *Session) CanHold() bool { return s.canHold }

// GhostVisible reports whether the landing projection is shown.
func (s *Session) GhostVisible() bool { return s.ghostVisible }

// Current returns a copy of the active piece, or nil.
func (s *Session) Current() *Piece { return clonePiece(s.current) }

// Next returns a copy of the upcoming piece.
func (s *Session) Next() *Piece { return clonePiece(s.next) }

// Held returns a copy of the held piece, or nil.
func (s *Session) Held() *Piece { return clonePiece(s.hold) }

// ClearingRows returns the rows being animated out, top to bottom.
func (s *Session) ClearingRows() []int {
	return append([]int(nil), s.clearingRows...)
}

// ClearProgress returns how far the clear animation has run, in [0, 1].
// It is 0 outside StateLineClearing.
func (s *Session) ClearProgress() float64 {
	if s.state != StateLineClearing {
		return 0
	}
	total := s.cfg.Timing.ClearAnimation
	if total <= 0 || s.clearElapsed >= total {
		return 1
	}
	return float64(s.clearElapsed) / float64(total)
}

// Config returns a copy of the session's configuration.
func (s *Session) Config() config.Config { return s.cfg.Clone() }

func clonePiece(p *Piece) *Piece {
	if p == nil {
		return nil
	}
	return p.Clone()
}
