// Package engine implements the falling-block game state: the playfield grid,
// the current piece, move and rotation legality, locking, row clearing and
// scoring. It is UI-agnostic and deterministic for a given random source.
package engine

import (
	"errors"
	"fmt"
)

// Construction errors.
var (
	ErrInvalidSize  = errors.New("engine: grid width and height must be positive")
	ErrNoShapes     = errors.New("engine: shape set is empty")
	ErrEmptyShape   = errors.New("engine: shape has no cells")
	ErrRaggedShape  = errors.New("engine: shape rows differ in length")
	ErrShapeTooWide = errors.New("engine: shape wider than grid")
	ErrShapeTooTall = errors.New("engine: shape taller than grid")
	ErrScoreTable   = errors.New("engine: invalid score table")
	ErrNoRandom     = errors.New("engine: random source is nil")
)

// Source picks piece indices. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Config describes the playfield and piece set of an Engine.
type Config struct {
	Width  int
	Height int
	Shapes []Shape
	Scores ScoreTable // nil means DefaultScoreTable
}

// DefaultEngineConfig returns the classic 10x20 board with the seven tetrominoes.
func DefaultEngineConfig() Config {
	return Config{
		Width:  10,
		Height: 20,
		Shapes: StandardShapes(),
		Scores: DefaultScoreTable(),
	}
}

// LockResult describes the outcome of a lock.
type LockResult struct {
	Cleared  int  // Rows removed
	Points   int  // Score awarded
	GameOver bool // The following spawn collided
}

// Engine owns the grid, the current piece and the session counters.
// It is not safe for concurrent use; a single caller drives it.
type Engine struct {
	grid    *Grid
	shapes  []Shape
	scores  ScoreTable
	rng     Source
	current Piece

	score    int
	lines    int
	pieces   int
	gameOver bool
}

// New validates cfg and returns a running engine with its first piece spawned.
func New(cfg Config, rng Source) (*Engine, error) {
	if rng == nil {
		return nil, ErrNoRandom
	}
	grid, err := NewGrid(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	if len(cfg.Shapes) == 0 {
		return nil, ErrNoShapes
	}
	for _, s := range cfg.Shapes {
		if err := s.validate(cfg.Width, cfg.Height); err != nil {
			return nil, err
		}
	}
	scores := cfg.Scores
	if scores == nil {
		scores = DefaultScoreTable()
	}
	if err := scores.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		grid:   grid,
		shapes: append([]Shape(nil), cfg.Shapes...),
		scores: scores,
		rng:    rng,
	}
	e.current = e.SpawnPiece()
	return e, nil
}

// SpawnPiece picks a shape uniformly at random and returns it at the spawn
// anchor. It does not replace the current piece.
func (e *Engine) SpawnPiece() Piece {
	s := e.shapes[e.rng.Intn(len(e.shapes))]
	return newPiece(s, e.grid.Width())
}

// IsMoveValid reports whether p offset by (dx, dy) touches no blocked cell.
func (e *Engine) IsMoveValid(p Piece, dx, dy int) bool {
	for _, c := range p.Cells() {
		if e.grid.Blocked(c.X+dx, c.Y+dy) {
			return false
		}
	}
	return true
}

// Move shifts the current piece by (dx, dy) if the destination is valid.
func (e *Engine) Move(dx, dy int) bool {
	if e.gameOver || !e.IsMoveValid(e.current, dx, dy) {
		return false
	}
	e.current = e.current.Moved(dx, dy)
	return true
}

// MoveLeft shifts the current piece one column left.
func (e *Engine) MoveLeft() bool { return e.Move(-1, 0) }

// MoveRight shifts the current piece one column right.
func (e *Engine) MoveRight() bool { return e.Move(1, 0) }

// SoftDrop moves the current piece one row down without locking.
func (e *Engine) SoftDrop() bool { return e.Move(0, 1) }

// Rotate turns the current piece a quarter in place. There are no wall
// kicks: a rotation that would collide is discarded.
func (e *Engine) Rotate() bool {
	if e.gameOver {
		return false
	}
	candidate := e.current.Rotated()
	if !e.IsMoveValid(candidate, 0, 0) {
		return false
	}
	e.current = candidate
	return true
}

// DropDistance returns how many rows the current piece can fall.
func (e *Engine) DropDistance() int {
	d := 0
	for e.IsMoveValid(e.current, 0, d+1) {
		d++
	}
	return d
}

// HardDrop moves the current piece down as far as it goes and locks it.
// Returns the rows travelled and the lock outcome.
func (e *Engine) HardDrop() (int, LockResult) {
	if e.gameOver {
		return 0, LockResult{GameOver: true}
	}
	d := e.DropDistance()
	e.current = e.current.Moved(0, d)
	return d, e.Lock()
}

// Lock commits the current piece to the grid, clears full rows, scores them
// and spawns the next piece. The game ends if that piece is blocked where it
// spawns.
func (e *Engine) Lock() LockResult {
	if e.gameOver {
		return LockResult{GameOver: true}
	}

	e.grid.Lock(e.current.Cells(), e.current.Color)
	e.pieces++

	cleared := e.grid.ClearFullRows()
	points := e.scores.Points(cleared)
	e.lines += cleared
	e.score += points

	e.current = e.SpawnPiece()
	if !e.IsMoveValid(e.current, 0, 0) {
		e.gameOver = true
	}

	return LockResult{Cleared: cleared, Points: points, GameOver: e.gameOver}
}

// Tick applies gravity: the piece moves down one row, or locks if it cannot.
// Returns the lock outcome and whether a lock happened.
func (e *Engine) Tick() (LockResult, bool) {
	if e.gameOver {
		return LockResult{GameOver: true}, false
	}
	if e.Move(0, 1) {
		return LockResult{}, false
	}
	return e.Lock(), true
}

// Current returns the falling piece.
func (e *Engine) Current() Piece {
	return e.current
}

// Grid returns the playfield. Callers must treat it as read-only.
func (e *Engine) Grid() *Grid {
	return e.grid
}

// Score returns the accumulated score.
func (e *Engine) Score() int {
	return e.score
}

// Lines returns the total rows cleared.
func (e *Engine) Lines() int {
	return e.lines
}

// Pieces returns how many pieces have been locked.
func (e *Engine) Pieces() int {
	return e.pieces
}

// GameOver reports whether the session has ended.
func (e *Engine) GameOver() bool {
	return e.gameOver
}

// String summarises the session, for logs.
func (e *Engine) String() string {
	return fmt.Sprintf("score=%d lines=%d pieces=%d over=%t", e.score, e.lines, e.pieces, e.gameOver)
}
