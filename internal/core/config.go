package core

import "time"

// RuntimeConfig is what the platform hands a game on Reset. Seed and
// TickRate fully determine a session together with the inputs; the screen
// size only affects layout.
type RuntimeConfig struct {
	ScreenW  int
	ScreenH  int
	TickRate int   // ticks per second
	Seed     int64 // 0 asks the platform for a time-based seed
}

// DefaultConfig is an 80x24 terminal at 60 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
}

// WithDefaults fills a non-positive tick rate from DefaultConfig.
// A zero screen is left alone: it means headless.
func (c RuntimeConfig) WithDefaults() RuntimeConfig {
	if c.TickRate <= 0 {
		c.TickRate = DefaultConfig().TickRate
	}
	c.ScreenW = max(c.ScreenW, 0)
	c.ScreenH = max(c.ScreenH, 0)
	return c
}

// TickInterval is the wall-clock length of one simulation tick.
func (c RuntimeConfig) TickInterval() time.Duration {
	return time.Second / time.Duration(c.WithDefaults().TickRate)
}

// Headless reports whether no screen is attached.
func (c RuntimeConfig) Headless() bool {
	return c.ScreenW == 0 && c.ScreenH == 0
}

// GameState is the part of a session the platform cares about.
type GameState struct {
	Score    int
	Lines    int // rows cleared this session
	GameOver bool
	Paused   bool
}

// StepResult reports what one tick did.
type StepResult struct {
	State   GameState
	Locked  bool // A piece was locked during this tick
	Cleared int  // Rows cleared by that lock
}
