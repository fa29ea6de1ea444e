// Package config provides YAML-based game configuration loading and
// difficulty management for blockfall.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blockfall/engine"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// BlockfallConfig contains all configuration for the game.
type BlockfallConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Timing     TimingConfig     `yaml:"timing"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Shapes     []ShapeConfig    `yaml:"shapes"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the playfield.
type BoardConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	CellWidth int `yaml:"cell_width"` // Characters per cell, presentation only
}

// TimingConfig defines gravity.
type TimingConfig struct {
	FallIntervalMs int `yaml:"fall_interval_ms"`
}

// ScoringConfig defines points awarded per lock.
type ScoringConfig struct {
	Table []int `yaml:"table"` // Index = rows cleared at once
}

// ShapeConfig is one piece of the shape set.
type ShapeConfig struct {
	Name  string   `yaml:"name"`
	Color string   `yaml:"color"`
	Cells []string `yaml:"cells"` // 'X' occupied, '.' empty
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a session.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "lines", "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Lines/score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`     // Gravity speed-up at max difficulty
	MinFallIntervalMs int     `yaml:"min_fall_interval_ms"` // Floor for the shortened interval
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string is accepted and
// leaves the config untouched.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// FallInterval returns the configured base gravity interval.
func (c BlockfallConfig) FallInterval() time.Duration {
	return time.Duration(c.Timing.FallIntervalMs) * time.Millisecond
}

// Validate checks the config can build an engine.
func (c BlockfallConfig) Validate() error {
	if c.Board.Width <= 0 || c.Board.Height <= 0 {
		return fmt.Errorf("%w: board must be positive, got %dx%d", ErrInvalid, c.Board.Width, c.Board.Height)
	}
	if c.Board.CellWidth < 1 {
		return fmt.Errorf("%w: cell_width must be at least 1, got %d", ErrInvalid, c.Board.CellWidth)
	}
	if c.Timing.FallIntervalMs <= 0 {
		return fmt.Errorf("%w: fall_interval_ms must be positive, got %d", ErrInvalid, c.Timing.FallIntervalMs)
	}
	if c.Difficulty.InitialLevel < 0 || c.Difficulty.InitialLevel > 1 {
		return fmt.Errorf("%w: initial_level must be in [0, 1], got %g", ErrInvalid, c.Difficulty.InitialLevel)
	}
	switch c.Difficulty.Progression.Type {
	case "", "none", "lines", "score", "time":
	default:
		return fmt.Errorf("%w: unknown progression type %q", ErrInvalid, c.Difficulty.Progression.Type)
	}
	if _, err := c.EngineConfig(); err != nil {
		return err
	}
	return nil
}

// EngineConfig converts the board, shapes and scoring sections into an
// engine configuration.
func (c BlockfallConfig) EngineConfig() (engine.Config, error) {
	if len(c.Shapes) == 0 {
		return engine.Config{}, fmt.Errorf("%w: %w", ErrInvalid, engine.ErrNoShapes)
	}

	shapes := make([]engine.Shape, 0, len(c.Shapes))
	for i, sc := range c.Shapes {
		s, err := sc.Shape()
		if err != nil {
			return engine.Config{}, fmt.Errorf("%w: shapes[%d]: %w", ErrInvalid, i, err)
		}
		if s.Matrix.Width() > c.Board.Width {
			return engine.Config{}, fmt.Errorf("%w: shapes[%d]: %w", ErrInvalid, i, engine.ErrShapeTooWide)
		}
		if s.Matrix.Height() > c.Board.Height {
			return engine.Config{}, fmt.Errorf("%w: shapes[%d]: %w", ErrInvalid, i, engine.ErrShapeTooTall)
		}
		shapes = append(shapes, s)
	}

	var scores engine.ScoreTable
	if len(c.Scoring.Table) > 0 {
		scores = append(engine.ScoreTable(nil), c.Scoring.Table...)
		if err := scores.Validate(); err != nil {
			return engine.Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
	}

	return engine.Config{
		Width:  c.Board.Width,
		Height: c.Board.Height,
		Shapes: shapes,
		Scores: scores,
	}, nil
}

// Shape parses the shape entry.
func (sc ShapeConfig) Shape() (engine.Shape, error) {
	if sc.Name == "" {
		return engine.Shape{}, errors.New("shape has no name")
	}
	color, ok := core.ParseColor(sc.Color)
	if !ok {
		return engine.Shape{}, fmt.Errorf("shape %q: unknown color %q", sc.Name, sc.Color)
	}
	m, err := engine.ParseMatrix(sc.Cells...)
	if err != nil {
		return engine.Shape{}, fmt.Errorf("shape %q: %w", sc.Name, err)
	}
	if len(m.Cells()) == 0 {
		return engine.Shape{}, fmt.Errorf("shape %q: %w", sc.Name, engine.ErrEmptyShape)
	}
	return engine.Shape{Name: sc.Name, Matrix: m, Color: color}, nil
}
