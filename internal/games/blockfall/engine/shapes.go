package engine

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/blockfall/internal/core"
)

// Matrix is a rectangular occupancy mask, indexed [row][col].
type Matrix [][]bool

// ParseMatrix builds a matrix from rows of text where 'X' or '#' marks an
// occupied cell and '.', ' ' or '_' an empty one.
func ParseMatrix(rows ...string) (Matrix, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyShape
	}
	m := make(Matrix, len(rows))
	width := -1
	for y, row := range rows {
		runes := []rune(row)
		if width == -1 {
			width = len(runes)
		}
		if len(runes) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrRaggedShape, y, len(runes), width)
		}
		m[y] = make([]bool, width)
		for x, r := range runes {
			switch r {
			case 'X', 'x', '#':
				m[y][x] = true
			case '.', ' ', '_':
			default:
				return nil, fmt.Errorf("engine: shape row %d: unexpected %q", y, r)
			}
		}
	}
	if width == 0 {
		return nil, ErrEmptyShape
	}
	return m, nil
}

// MustMatrix is ParseMatrix for literals known to be valid.
func MustMatrix(rows ...string) Matrix {
	m, err := ParseMatrix(rows...)
	if err != nil {
		panic(err)
	}
	return m
}

// Width returns the number of columns.
func (m Matrix) Width() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Height returns the number of rows.
func (m Matrix) Height() int {
	return len(m)
}

// Rotated returns the matrix turned a quarter: transposed, then with its row
// order reversed. A w x h matrix becomes h x w.
func (m Matrix) Rotated() Matrix {
	w, h := m.Width(), m.Height()
	out := make(Matrix, w)
	for i := range out {
		out[i] = make([]bool, h)
		for j := range out[i] {
			out[i][j] = m[j][w-1-i]
		}
	}
	return out
}

// Cells returns the occupied local coordinates, row by row.
func (m Matrix) Cells() []core.Point {
	var cells []core.Point
	for y, row := range m {
		for x, on := range row {
			if on {
				cells = append(cells, core.P(x, y))
			}
		}
	}
	return cells
}

// Equal reports whether two matrices have the same dimensions and cells.
func (m Matrix) Equal(other Matrix) bool {
	if m.Height() != other.Height() || m.Width() != other.Width() {
		return false
	}
	for y := range m {
		for x := range m[y] {
			if m[y][x] != other[y][x] {
				return false
			}
		}
	}
	return true
}

// Clone returns a deep copy.
func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for y, row := range m {
		out[y] = append([]bool(nil), row...)
	}
	return out
}

// String renders the matrix with 'X' and '.'.
func (m Matrix) String() string {
	var sb strings.Builder
	for y, row := range m {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, on := range row {
			if on {
				sb.WriteByte('X')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

// Shape is one entry of the piece set.
type Shape struct {
	Name   string
	Matrix Matrix
	Color  core.Color
}

// validate checks that the shape has at least one cell and fits the grid.
func (s Shape) validate(gridW, gridH int) error {
	if s.Matrix.Height() == 0 || s.Matrix.Width() == 0 {
		return fmt.Errorf("%w: %q", ErrEmptyShape, s.Name)
	}
	for y, row := range s.Matrix {
		if len(row) != s.Matrix.Width() {
			return fmt.Errorf("%w: %q row %d", ErrRaggedShape, s.Name, y)
		}
	}
	if len(s.Matrix.Cells()) == 0 {
		return fmt.Errorf("%w: %q has no occupied cells", ErrEmptyShape, s.Name)
	}
	if s.Matrix.Width() > gridW {
		return fmt.Errorf("%w: %q is %d wide, grid is %d", ErrShapeTooWide, s.Name, s.Matrix.Width(), gridW)
	}
	if s.Matrix.Height() > gridH {
		return fmt.Errorf("%w: %q is %d tall, grid is %d", ErrShapeTooTall, s.Name, s.Matrix.Height(), gridH)
	}
	return nil
}

// StandardShapes returns the seven tetrominoes in I, J, L, O, S, T, Z order.
func StandardShapes() []Shape {
	return []Shape{
		{Name: "I", Color: core.ColorCyan, Matrix: MustMatrix("XXXX")},
		{Name: "J", Color: core.ColorBlue, Matrix: MustMatrix("X..", "XXX")},
		{Name: "L", Color: core.ColorOrange, Matrix: MustMatrix("..X", "XXX")},
		{Name: "O", Color: core.ColorYellow, Matrix: MustMatrix("XX", "XX")},
		{Name: "S", Color: core.ColorGreen, Matrix: MustMatrix(".XX", "XX.")},
		{Name: "T", Color: core.ColorPurple, Matrix: MustMatrix(".X.", "XXX")},
		{Name: "Z", Color: core.ColorRed, Matrix: MustMatrix("XX.", ".XX")},
	}
}
