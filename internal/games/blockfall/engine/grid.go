package engine

import (
	"github.com/vovakirdan/blockfall/internal/core"
)

// Cell is one playfield position: empty, or filled with the color of the
// piece that was locked there.
type Cell struct {
	Filled bool
	Color  core.Color // Valid only when Filled is true
}

// Empty returns an empty cell.
func Empty() Cell {
	return Cell{}
}

// FilledCell returns a filled cell with the given color.
func FilledCell(c core.Color) Cell {
	return Cell{Filled: true, Color: c}
}

// Grid is the playfield. Rows are stored top to bottom, row 0 is the top.
// Dimensions are fixed at construction.
type Grid struct {
	w, h int
	rows [][]Cell
}

// NewGrid creates an empty w x h grid.
func NewGrid(w, h int) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, ErrInvalidSize
	}
	g := &Grid{w: w, h: h, rows: make([][]Cell, h)}
	for y := range g.rows {
		g.rows[y] = make([]Cell, w)
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.w
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.h
}

// InBounds reports whether (x, y) is a playfield cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.w && y >= 0 && y < g.h
}

// Cell returns the cell at (x, y), or an empty cell out of bounds.
func (g *Grid) Cell(x, y int) Cell {
	if !g.InBounds(x, y) {
		return Empty()
	}
	return g.rows[y][x]
}

// Fill marks (x, y) as filled. Out-of-bounds coordinates are ignored.
func (g *Grid) Fill(x, y int, c core.Color) {
	if g.InBounds(x, y) {
		g.rows[y][x] = FilledCell(c)
	}
}

// Blocked reports whether a piece cell may not occupy (x, y).
// Columns outside [0, W) and rows at or below the floor are blocked.
// Rows above the top (y < 0) are only blocked horizontally, so pieces can
// spawn and rotate partly off-screen.
func (g *Grid) Blocked(x, y int) bool {
	if x < 0 || x >= g.w || y >= g.h {
		return true
	}
	if y < 0 {
		return false
	}
	return g.rows[y][x].Filled
}

// Lock writes cells into the grid with the given color.
// Cells above the top row are dropped.
func (g *Grid) Lock(cells []core.Point, c core.Color) {
	for _, p := range cells {
		if p.Y < 0 || p.Y >= g.h {
			continue
		}
		g.Fill(p.X, p.Y, c)
	}
}

// RowFull reports whether every cell of row y is filled.
func (g *Grid) RowFull(y int) bool {
	if y < 0 || y >= g.h {
		return false
	}
	for _, c := range g.rows[y] {
		if !c.Filled {
			return false
		}
	}
	return true
}

// ClearFullRows removes every full row and returns how many were removed.
// Rows above a removed row move down by one and an empty row enters at the
// top. The scan runs bottom to top and re-checks the same index after each
// removal, so rows that shift into place are examined too.
func (g *Grid) ClearFullRows() int {
	cleared := 0
	for y := g.h - 1; y >= 0; {
		if !g.RowFull(y) {
			y--
			continue
		}
		g.removeRow(y)
		cleared++
	}
	return cleared
}

// removeRow deletes row y, shifting rows [0, y) down by one.
func (g *Grid) removeRow(y int) {
	removed := g.rows[y]
	copy(g.rows[1:y+1], g.rows[:y])
	for x := range removed {
		removed[x] = Empty()
	}
	g.rows[0] = removed
}

// Rows returns a copy of the cell matrix, row 0 first.
func (g *Grid) Rows() [][]Cell {
	out := make([][]Cell, g.h)
	for y, row := range g.rows {
		out[y] = append([]Cell(nil), row...)
	}
	return out
}

// FilledCount returns the number of filled cells.
func (g *Grid) FilledCount() int {
	n := 0
	for _, row := range g.rows {
		for _, c := range row {
			if c.Filled {
				n++
			}
		}
	}
	return n
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{w: g.w, h: g.h, rows: g.Rows()}
}
