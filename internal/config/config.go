package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Client rendering
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// Inactivity
const (
	InactivityWarn       = 9 * time.Minute
	InactivityDisconnect = 10 * time.Minute
)

// Server shutdown
const (
	ShutdownDisplay = 5 * time.Second  // Countdown shown to players before disconnecting them
	ShutdownTimeout = 15 * time.Second // Maximum wait for players to leave
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all tunable game parameters. A session copies it at
// construction and never mutates it.
type Config struct {
	Grid    Grid    `yaml:"grid"`
	Timing  Timing  `yaml:"timing"`
	Scoring Scoring `yaml:"scoring"`
}

// Grid is the size of the well in cells.
type Grid struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Timing controls gravity and the line clear animation.
type Timing struct {
	InitialFallInterval   time.Duration `yaml:"initial_fall_interval"`
	MinFallInterval       time.Duration `yaml:"min_fall_interval"`
	FallIntervalDecrement time.Duration `yaml:"fall_interval_decrement"` // per level
	ClearAnimation        time.Duration `yaml:"clear_animation"`
}

// Scoring controls points and level progression.
type Scoring struct {
	LineScores    []int `yaml:"line_scores"` // base points for 1, 2, 3 and 4 lines
	SoftDropBonus int   `yaml:"soft_drop_bonus"`
	HardDropBonus int   `yaml:"hard_drop_bonus"` // per cell dropped
	LinesPerLevel int   `yaml:"lines_per_level"`
}

// Default returns the standard 10x20 configuration.
func Default() Config {
	return Config{
		Grid: Grid{
			Width:  10,
			Height: 20,
		},
		Timing: Timing{
			InitialFallInterval:   1000 * time.Millisecond,
			MinFallInterval:       100 * time.Millisecond,
			FallIntervalDecrement: 100 * time.Millisecond,
			ClearAnimation:        500 * time.Millisecond,
		},
		Scoring: Scoring{
			LineScores:    []int{100, 300, 500, 800},
			SoftDropBonus: 1,
			HardDropBonus: 2,
			LinesPerLevel: 10,
		},
	}
}

// Clone returns a copy that shares no slices with c.
func (c Config) Clone() Config {
	out := c
	out.Scoring.LineScores = append([]int(nil), c.Scoring.LineScores...)
	return out
}

// Validate reports every problem with c. The returned error wraps ErrInvalid.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Grid.Width > 0, "grid width must be positive, got %d", c.Grid.Width)
	check(c.Grid.Height > 0, "grid height must be positive, got %d", c.Grid.Height)

	t := c.Timing
	check(t.InitialFallInterval > 0, "initial fall interval must be positive, got %s", t.InitialFallInterval)
	check(t.MinFallInterval > 0, "min fall interval must be positive, got %s", t.MinFallInterval)
	check(t.MinFallInterval <= t.InitialFallInterval,
		"min fall interval %s exceeds initial %s", t.MinFallInterval, t.InitialFallInterval)
	check(t.FallIntervalDecrement >= 0, "fall interval decrement must not be negative, got %s", t.FallIntervalDecrement)
	check(t.ClearAnimation >= 0, "clear animation must not be negative, got %s", t.ClearAnimation)

	s := c.Scoring
	check(len(s.LineScores) == 4, "line scores need 4 entries, got %d", len(s.LineScores))
	for i, v := range s.LineScores {
		check(v >= 0, "line score %d must not be negative, got %d", i+1, v)
	}
	check(s.SoftDropBonus >= 0, "soft drop bonus must not be negative, got %d", s.SoftDropBonus)
	check(s.HardDropBonus >= 0, "hard drop bonus must not be negative, got %d", s.HardDropBonus)
	check(s.LinesPerLevel > 0, "lines per level must be positive, got %d", s.LinesPerLevel)

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

// Parse overlays YAML data on the defaults and validates the result.
// Fields absent from data keep their default value.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads a YAML config file. An empty path returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}
