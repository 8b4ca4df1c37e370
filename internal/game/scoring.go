package game

import (
	"time"

	"github.com/tomz197/tetris/internal/config"
)

// Scoring maps cleared lines and drops to points, and progress to level and
// gravity speed. It holds no state beyond its configuration.
type Scoring struct {
	scoring config.Scoring
	timing  config.Timing
}

// NewScoring returns the scoring rules of cfg.
func NewScoring(cfg config.Config) Scoring {
	cfg = cfg.Clone()
	return Scoring{scoring: cfg.Scoring, timing: cfg.Timing}
}

// ForClear returns the points for clearing lines rows at once on level.
// Counts outside 1..4 score nothing.
func (s Scoring) ForClear(lines, level int) int {
	if lines < 1 || lines > len(s.scoring.LineScores) {
		return 0
	}
	return s.scoring.LineScores[lines-1] * level
}

// SoftDropBonus returns the points for one successful soft drop step.
func (s Scoring) SoftDropBonus() int {
	return s.scoring.SoftDropBonus
}

// HardDropBonus returns the points for a hard drop over cells rows.
func (s Scoring) HardDropBonus(cells int) int {
	return cells * s.scoring.HardDropBonus
}

// LevelForLines returns the level reached after total cleared lines.
func (s Scoring) LevelForLines(total int) int {
	return total/s.scoring.LinesPerLevel + 1
}

// FallInterval returns the gravity period on level, never below the
// configured minimum.
func (s Scoring) FallInterval(level int) time.Duration {
	interval := s.timing.InitialFallInterval - time.Duration(level-1)*s.timing.FallIntervalDecrement
	return max(interval, s.timing.MinFallInterval)
}
