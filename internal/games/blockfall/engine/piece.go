package engine

import "github.com/vovakirdan/blockfall/internal/core"

// Piece is the falling piece: a shape matrix anchored at its top-left corner
// (X, Y) in grid coordinates. It is an overlay until locked.
type Piece struct {
	Kind   string
	Matrix Matrix
	Color  core.Color
	X, Y   int
}

// newPiece places a shape at the spawn anchor for a grid of width gridW.
func newPiece(s Shape, gridW int) Piece {
	return Piece{
		Kind:   s.Name,
		Matrix: s.Matrix.Clone(),
		Color:  s.Color,
		X:      gridW/2 - s.Matrix.Width()/2,
		Y:      0,
	}
}

// Cells returns the occupied cells in grid coordinates.
func (p Piece) Cells() []core.Point {
	local := p.Matrix.Cells()
	for i := range local {
		local[i] = local[i].Add(p.X, p.Y)
	}
	return local
}

// Moved returns a copy of the piece offset by (dx, dy).
func (p Piece) Moved(dx, dy int) Piece {
	p.X += dx
	p.Y += dy
	return p
}

// Rotated returns a copy of the piece with its matrix turned a quarter and
// the anchor unchanged.
func (p Piece) Rotated() Piece {
	p.Matrix = p.Matrix.Rotated()
	return p
}
