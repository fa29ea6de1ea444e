// Package registry keeps the set of playable variants. Each variant
// registers a factory from init(), so the commands and the TUI can list and
// build them by id.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/blockfall/internal/core"
)

// Game is what the platform drives. Implementations hold pure simulation
// state; key handling, timing and terminal output live in the platform.
type Game interface {
	// ID is the stable identifier used on the command line and in replays.
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a fresh session with the given seed, tick rate and screen.
	Reset(cfg core.RuntimeConfig)

	// Step runs exactly one simulation tick with the actions held this tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a cleared screen buffer.
	Render(dst *core.Screen)

	// State reports score, lines and the game-over and pause flags.
	State() core.GameState
}

// Resizer is implemented by games that can adapt to a new screen size
// without losing their state. Other games are reset on resize.
type Resizer interface {
	Resize(w, h int)
}

// Recorder is implemented by games that record their inputs for replay.
type Recorder interface {
	// Recording returns a copy of the current session's recording.
	Recording() core.Recording
}

// Describer is implemented by games with a one-line rules summary.
type Describer interface {
	Description() string
}

// GameInfo is the listing entry for a registered variant.
type GameInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory builds a new, not yet reset, game.
type Factory func() Game

type entry struct {
	factory Factory
	info    GameInfo
}

var (
	mu      sync.RWMutex
	entries = map[string]entry{}
)

// Register adds a variant. It panics on an empty or duplicate id, both of
// which are programming errors in an init function.
func Register(id string, f Factory) {
	if strings.TrimSpace(id) == "" {
		panic("registry: empty game id")
	}

	probe := f()
	info := GameInfo{ID: id, Title: probe.Title()}
	if d, ok := probe.(Describer); ok {
		info.Description = d.Description()
	}

	mu.Lock()
	defer mu.Unlock()
	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{factory: f, info: info}
}

// List returns every registered variant ordered by id.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.info)
	}
	slices.SortFunc(out, func(a, b GameInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// Lookup returns the listing entry for id.
func Lookup(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	return e.info, ok
}

// Create builds a new instance of the variant registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}
