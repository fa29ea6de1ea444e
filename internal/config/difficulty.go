package config

import "time"

// Progress is what a session has achieved so far.
type Progress struct {
	Score int
	Lines int
	Ticks int
}

// DifficultyManager turns session progress into a gravity interval.
// Level runs from the initial level at the start of a session to 1.0 once
// the progression metric reaches MaxAt.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager builds a manager for cfg.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	d := &DifficultyManager{cfg: cfg}
	d.SetInitialLevel(cfg.InitialLevel)
	return d
}

// SetInitialLevel overrides the starting level; it is clamped to [0, 1].
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = unit(level)
}

// SetEnabled switches progression on or off. A disabled manager stays at
// the initial level.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled reports whether the level moves with progress.
func (d *DifficultyManager) IsEnabled() bool {
	if !d.cfg.Enabled {
		return false
	}
	switch d.cfg.Progression.Type {
	case "lines", "score", "time":
		return true
	}
	return false
}

// Level returns the current difficulty in [0, 1].
func (d *DifficultyManager) Level(p Progress) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	var reached int
	switch d.cfg.Progression.Type {
	case "lines":
		reached = p.Lines
	case "score":
		reached = p.Score
	case "time":
		reached = p.Ticks
	}

	goal := max(d.cfg.Progression.MaxAt, 1)
	frac := unit(float64(reached) / float64(goal))
	return d.initialLevel + frac*(1-d.initialLevel)
}

// FallInterval divides base by 1 + level*speed_multiplier. The result never
// drops below min_fall_interval_ms, or below base when base is already
// shorter than that floor.
func (d *DifficultyManager) FallInterval(base time.Duration, p Progress) time.Duration {
	speed := 1 + d.Level(p)*d.cfg.Scaling.SpeedMultiplier
	interval := time.Duration(float64(base) / speed)

	floor := min(time.Duration(d.cfg.Scaling.MinFallIntervalMs)*time.Millisecond, base)
	return max(interval, floor, time.Millisecond)
}

func unit(v float64) float64 {
	return min(max(v, 0), 1)
}
