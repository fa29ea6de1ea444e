package config

import (
	"math"
	"testing"
	"time"
)

func linesDifficulty() DifficultyConfig {
	return DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.0,
		Progression:  ProgressionConfig{Type: "lines", MaxAt: 100},
		Scaling:      ScalingConfig{SpeedMultiplier: 4.0, MinFallIntervalMs: 80},
	}
}

func TestDifficultyLevel(t *testing.T) {
	dm := NewDifficultyManager(linesDifficulty())

	tests := []struct {
		name  string
		p     Progress
		level float64
	}{
		{"start", Progress{}, 0.0},
		{"halfway", Progress{Lines: 50}, 0.5},
		{"max", Progress{Lines: 100}, 1.0},
		{"beyond max clamps", Progress{Lines: 400}, 1.0},
		{"score ignored for lines", Progress{Score: 99999}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dm.Level(tt.p)
			if math.Abs(got-tt.level) > 1e-9 {
				t.Errorf("Level(%+v) = %f, expected %f", tt.p, got, tt.level)
			}
		})
	}
}

func TestDifficultyInitialLevel(t *testing.T) {
	cfg := linesDifficulty()
	cfg.InitialLevel = 0.5
	dm := NewDifficultyManager(cfg)

	if got := dm.Level(Progress{}); got != 0.5 {
		t.Errorf("Level(start) = %f, expected 0.5", got)
	}
	if got := dm.Level(Progress{Lines: 50}); math.Abs(got-0.75) > 1e-9 {
		t.Errorf("Level(50 lines) = %f, expected 0.75", got)
	}

	dm.SetEnabled(false)
	if dm.IsEnabled() {
		t.Error("IsEnabled() = true after SetEnabled(false)")
	}
	if got := dm.Level(Progress{Lines: 100}); got != 0.5 {
		t.Errorf("Level(disabled) = %f, expected initial 0.5", got)
	}
}

func TestDifficultyProgressionTypes(t *testing.T) {
	for _, tt := range []struct {
		typ string
		p   Progress
	}{
		{"score", Progress{Score: 100}},
		{"time", Progress{Ticks: 100}},
		{"lines", Progress{Lines: 100}},
	} {
		cfg := linesDifficulty()
		cfg.Progression.Type = tt.typ
		dm := NewDifficultyManager(cfg)
		if got := dm.Level(tt.p); got != 1.0 {
			t.Errorf("%s: Level(%+v) = %f, expected 1.0", tt.typ, tt.p, got)
		}
	}

	cfg := linesDifficulty()
	cfg.Progression.Type = "none"
	if NewDifficultyManager(cfg).IsEnabled() {
		t.Error("IsEnabled() = true for progression none")
	}
}

func TestFallInterval(t *testing.T) {
	dm := NewDifficultyManager(linesDifficulty())
	base := 500 * time.Millisecond

	if got := dm.FallInterval(base, Progress{}); got != base {
		t.Errorf("FallInterval(start) = %v, expected %v", got, base)
	}
	// Level 0.25 -> speed 2x.
	if got := dm.FallInterval(base, Progress{Lines: 25}); got != 250*time.Millisecond {
		t.Errorf("FallInterval(25 lines) = %v, expected 250ms", got)
	}
	// Level 1 -> speed 5x = 100ms, above the 80ms floor.
	if got := dm.FallInterval(base, Progress{Lines: 100}); got != 100*time.Millisecond {
		t.Errorf("FallInterval(max) = %v, expected 100ms", got)
	}

	fast := linesDifficulty()
	fast.Scaling.SpeedMultiplier = 20
	if got := NewDifficultyManager(fast).FallInterval(base, Progress{Lines: 100}); got != 80*time.Millisecond {
		t.Errorf("FallInterval(floor) = %v, expected 80ms", got)
	}

	// A floor above the base never lengthens the interval.
	if got := dm.FallInterval(50*time.Millisecond, Progress{}); got != 50*time.Millisecond {
		t.Errorf("FallInterval(short base) = %v, expected 50ms", got)
	}
}
