// Package blockfall adapts the falling-block engine to the platform: it maps
// input frames to engine commands, turns fixed simulation ticks into gravity
// steps, and renders the board into a core.Screen.
package blockfall

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blockfall/engine"
	"github.com/vovakirdan/blockfall/internal/registry"
)

// Mode selects the gravity rule.
type Mode string

const (
	ModeClassic  Mode = "classic"  // Fixed fall interval
	ModeMarathon Mode = "marathon" // Fall interval shortens as lines are cleared
)

// Registry IDs of the two variants.
const (
	IDClassic  = "blockfall"
	IDMarathon = "blockfall_marathon"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// Game implements registry.Game on top of engine.Engine.
type Game struct {
	mode Mode

	// Configuration
	runtime    core.RuntimeConfig
	cfg        config.BlockfallConfig
	fixedCfg   bool // cfg was supplied by the caller; Reset must not reload it
	cfgErr     error
	difficulty *config.DifficultyManager

	eng *engine.Engine
	rng *rand.Rand

	// Gravity
	tick      uint64
	playTicks int // Unpaused ticks; drives time progression
	fallTicks int // Ticks since the last gravity step
	fallEvery int // Ticks per gravity step
	level     float64

	paused   bool
	tooSmall bool

	rec core.Recording
}

// New creates a classic game.
func New() *Game {
	return &Game{mode: ModeClassic}
}

// NewMarathon creates a game whose gravity speeds up with cleared lines.
func NewMarathon() *Game {
	return &Game{mode: ModeMarathon}
}

// NewWithConfig creates a game that uses cfg instead of loading one.
func NewWithConfig(mode Mode, cfg config.BlockfallConfig) *Game {
	return &Game{mode: mode, cfg: cfg, fixedCfg: true}
}

// ModeForID returns the mode registered under id.
func ModeForID(id string) (Mode, error) {
	switch id {
	case IDClassic:
		return ModeClassic, nil
	case IDMarathon:
		return ModeMarathon, nil
	default:
		return "", fmt.Errorf("blockfall: unknown game %q", id)
	}
}

func init() {
	registry.Register(IDClassic, func() registry.Game {
		return New()
	})
	registry.Register(IDMarathon, func() registry.Game {
		return NewMarathon()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeMarathon {
		return IDMarathon
	}
	return IDClassic
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeMarathon {
		return "Blockfall (Marathon)"
	}
	return "Blockfall"
}

// Description summarises how gravity behaves in this mode.
func (g *Game) Description() string {
	if g.mode == ModeMarathon {
		return "gravity speeds up as lines are cleared"
	}
	return "fixed gravity, play until the stack tops out"
}

// ConfigError returns the error that forced Reset onto the default config,
// or that left the recording without its config, or nil.
func (g *Game) ConfigError() error {
	return g.cfgErr
}

// Reset starts a new session. A zero screen size means headless: no layout
// check is made.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	runtime = runtime.WithDefaults()
	g.runtime = runtime
	g.cfgErr = nil

	if !g.fixedCfg {
		cfg, _, err := config.Load(configPath)
		if err != nil {
			g.cfgErr = err
			cfg = config.DefaultBlockfallConfig()
		}
		config.ApplyPreset(&cfg, difficultyPreset)
		g.cfg = cfg
	}

	g.rng = rand.New(rand.NewSource(runtime.Seed))

	ec, err := g.cfg.EngineConfig()
	if err == nil {
		g.eng, err = engine.New(ec, g.rng)
	}
	if err != nil {
		g.cfgErr = err
		g.cfg = config.DefaultBlockfallConfig()
		g.rng = rand.New(rand.NewSource(runtime.Seed))
		g.eng, _ = engine.New(engine.DefaultEngineConfig(), g.rng)
	}

	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	if g.mode == ModeClassic {
		g.difficulty.SetEnabled(false)
		g.difficulty.SetInitialLevel(0)
	}

	g.tick = 0
	g.playTicks = 0
	g.fallTicks = 0
	g.paused = false
	g.updateGravity()
	g.Resize(runtime.ScreenW, runtime.ScreenH)

	cfgYAML, err := config.Marshal(g.cfg)
	if err != nil {
		g.cfgErr = fmt.Errorf("blockfall: recording config: %w", err)
		cfgYAML = nil
	}
	g.rec = core.Recording{
		GameID:   g.ID(),
		Seed:     runtime.Seed,
		TickRate: runtime.TickRate,
		Config:   cfgYAML,
	}
}

// Resize adapts the layout to a new screen without touching the session.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	if g.runtime.Headless() {
		g.tooSmall = false
		return
	}
	l := g.layout()
	g.tooSmall = w < l.minW || h < l.minH
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	// Handle restart
	if input.Has(core.ActionRestart) && g.eng.GameOver() {
		g.Reset(core.RuntimeConfig{
			Seed:     g.rng.Int63(),
			ScreenW:  g.runtime.ScreenW,
			ScreenH:  g.runtime.ScreenH,
			TickRate: g.runtime.TickRate,
		})
		return core.StepResult{State: g.State()}
	}

	if g.tooSmall || g.eng.GameOver() {
		return core.StepResult{State: g.State()}
	}

	g.tick++
	if m := input.Mask(); m != 0 {
		g.rec.Inputs = append(g.rec.Inputs, core.InputEvent{Tick: g.tick, Mask: m})
	}
	g.rec.Ticks = g.tick

	if input.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.playTicks++
	if g.difficulty.IsEnabled() {
		g.updateGravity()
	}

	result := core.StepResult{}
	dropped := false

	if input.Has(core.ActionLeft) {
		g.eng.MoveLeft()
	}
	if input.Has(core.ActionRight) {
		g.eng.MoveRight()
	}
	if input.Has(core.ActionSoftDrop) {
		g.eng.SoftDrop()
	}
	if input.Has(core.ActionRotate) {
		g.eng.Rotate()
	}
	if input.Has(core.ActionHardDrop) {
		_, res := g.eng.HardDrop()
		g.onLock(&result, res)
		dropped = true
	}

	// Gravity
	if dropped {
		g.fallTicks = 0
	} else {
		g.fallTicks++
		if g.fallTicks >= g.fallEvery {
			g.fallTicks = 0
			if res, locked := g.eng.Tick(); locked {
				g.onLock(&result, res)
			}
		}
	}

	g.syncOutcome()
	result.State = g.State()
	return result
}

// onLock folds a lock into the tick result and re-evaluates gravity.
func (g *Game) onLock(result *core.StepResult, res engine.LockResult) {
	result.Locked = true
	result.Cleared += res.Cleared
	if res.Cleared > 0 && g.difficulty.IsEnabled() {
		g.updateGravity()
	}
}

// updateGravity recomputes ticks per gravity step from the current progress.
func (g *Game) updateGravity() {
	p := g.progress()
	g.level = g.difficulty.Level(p)
	interval := g.difficulty.FallInterval(g.cfg.FallInterval(), p)
	g.fallEvery = ticksFor(interval, g.runtime.TickRate)
}

func (g *Game) progress() config.Progress {
	return config.Progress{
		Score: g.eng.Score(),
		Lines: g.eng.Lines(),
		Ticks: g.playTicks,
	}
}

// ticksFor converts an interval into a whole number of ticks, at least one.
func ticksFor(interval time.Duration, tickRate int) int {
	n := int(math.Round(interval.Seconds() * float64(tickRate)))
	return max(n, 1)
}

func (g *Game) syncOutcome() {
	g.rec.Score = g.eng.Score()
	g.rec.Lines = g.eng.Lines()
	g.rec.Pieces = g.eng.Pieces()
	g.rec.Finished = g.eng.GameOver()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.eng == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.eng.Score(),
		Lines:    g.eng.Lines(),
		GameOver: g.eng.GameOver(),
		Paused:   g.paused,
	}
}

// Recording returns a copy of the current session's recording.
func (g *Game) Recording() core.Recording {
	rec := g.rec
	rec.Inputs = append([]core.InputEvent(nil), g.rec.Inputs...)
	rec.Config = append([]byte(nil), g.rec.Config...)
	return rec
}

// Engine exposes the underlying engine for inspection.
func (g *Game) Engine() *engine.Engine {
	return g.eng
}

// FallEvery returns the current number of ticks per gravity step.
func (g *Game) FallEvery() int {
	return g.fallEvery
}
