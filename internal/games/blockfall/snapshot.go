package blockfall

import (
	"fmt"
	"strings"
)

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Mode      string
	Score     int
	Lines     int
	Pieces    int
	Piece     string // Kind of the falling piece
	PieceX    int
	PieceY    int
	FallEvery int
	Board     []string // One string per row, '.' empty, '#' filled
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.eng.GameOver():
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	p := g.eng.Current()
	return Snapshot{
		Tick:      g.tick,
		Mode:      string(g.mode),
		Score:     g.eng.Score(),
		Lines:     g.eng.Lines(),
		Pieces:    g.eng.Pieces(),
		Piece:     p.Kind,
		PieceX:    p.X,
		PieceY:    p.Y,
		FallEvery: g.fallEvery,
		Board:     boardRows(g),
		State:     state,
	}
}

func boardRows(g *Game) []string {
	grid := g.eng.Grid()
	rows := make([]string, grid.Height())
	var sb strings.Builder
	for y := range rows {
		sb.Reset()
		for x := 0; x < grid.Width(); x++ {
			if grid.Cell(x, y).Filled {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		rows[y] = sb.String()
	}
	return rows
}

// Equal reports whether two snapshots describe the same state.
func (s Snapshot) Equal(o Snapshot) bool {
	if s.Tick != o.Tick || s.Mode != o.Mode || s.Score != o.Score || s.Lines != o.Lines ||
		s.Pieces != o.Pieces || s.Piece != o.Piece || s.PieceX != o.PieceX || s.PieceY != o.PieceY ||
		s.FallEvery != o.FallEvery || s.State != o.State || len(s.Board) != len(o.Board) {
		return false
	}
	for i := range s.Board {
		if s.Board[i] != o.Board[i] {
			return false
		}
	}
	return true
}

// DebugState returns a string representation of the game state.
func (g *Game) DebugState() string {
	s := g.Snapshot()
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Tick: %d, Score: %d, Lines: %d, Pieces: %d\n", s.Tick, s.Score, s.Lines, s.Pieces))
	b.WriteString(fmt.Sprintf("Piece: %s at (%d, %d), FallEvery: %d\n", s.Piece, s.PieceX, s.PieceY, s.FallEvery))
	b.WriteString(fmt.Sprintf("State: %s\n", s.State))
	b.WriteString(strings.Join(s.Board, "\n"))
	return b.String()
}
