// Package tui provides the Bubble Tea front-end for blockfall.
// It handles the terminal UI loop, input mapping, the menu, the replay
// browser and the SSH host.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/core"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickInterval is the wall-clock length of one simulation tick.
func tickInterval(tickRate int) time.Duration {
	return core.RuntimeConfig{TickRate: tickRate}.TickInterval()
}

// tickCmd schedules the next TickMsg one tick from now.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(tickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
