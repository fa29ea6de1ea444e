package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/core"
)

// gridFromRows builds a grid from text rows; 'X' is filled (gray) and any
// letter from 'a' picks a distinct color so tests can follow rows around.
func gridFromRows(t *testing.T, rows ...string) *Grid {
	t.Helper()
	g, err := NewGrid(len(rows[0]), len(rows))
	require.NoError(t, err)
	for y, row := range rows {
		for x, r := range row {
			switch {
			case r == 'X':
				g.Fill(x, y, core.ColorGray)
			case r >= 'a' && r <= 'j':
				g.Fill(x, y, core.Color(r-'a'+1))
			}
		}
	}
	return g
}

// dump renders a grid in the same notation as gridFromRows, with colored
// cells shown by letter.
func dump(g *Grid) []string {
	out := make([]string, g.Height())
	for y := range out {
		row := make([]rune, g.Width())
		for x := range row {
			c := g.Cell(x, y)
			switch {
			case !c.Filled:
				row[x] = '.'
			case c.Color == core.ColorGray:
				row[x] = 'X'
			default:
				row[x] = rune('a' + int(c.Color) - 1)
			}
		}
		out[y] = string(row)
	}
	return out
}

func TestNewGridRejectsBadSize(t *testing.T) {
	for _, tc := range []struct{ w, h int }{{0, 20}, {10, 0}, {-1, 5}, {4, -4}} {
		_, err := NewGrid(tc.w, tc.h)
		assert.ErrorIs(t, err, ErrInvalidSize, "NewGrid(%d, %d)", tc.w, tc.h)
	}
}

func TestGridBlocked(t *testing.T) {
	g := gridFromRows(t,
		"....",
		"..X.",
		"....",
	)

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"empty cell", 0, 0, false},
		{"filled cell", 2, 1, true},
		{"left of grid", -1, 1, true},
		{"right of grid", 4, 1, true},
		{"below floor", 1, 3, true},
		{"above top is open", 2, -1, false},
		{"above top still bounded left", -1, -3, true},
		{"above top still bounded right", 4, -1, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, g.Blocked(tc.x, tc.y))
		})
	}
}

func TestGridLockDropsCellsAboveTop(t *testing.T) {
	g := gridFromRows(t,
		"...",
		"...",
	)

	g.Lock([]core.Point{core.P(1, -1), core.P(1, 0), core.P(2, 1)}, core.ColorRed)

	assert.Equal(t, 2, g.FilledCount())
	assert.Equal(t, FilledCell(core.ColorRed), g.Cell(1, 0))
	assert.Equal(t, FilledCell(core.ColorRed), g.Cell(2, 1))
}

func TestClearFullRowsSingle(t *testing.T) {
	g := gridFromRows(t,
		"....",
		"a...",
		"bb..",
		"XXXX",
	)

	require.Equal(t, 1, g.ClearFullRows())
	assert.Equal(t, []string{
		"....",
		"....",
		"a...",
		"bb..",
	}, dump(g))
}

func TestClearFullRowsNonAdjacent(t *testing.T) {
	g := gridFromRows(t,
		"a...",
		"XXXX",
		"b.b.",
		"XXXX",
		"c..c",
	)

	require.Equal(t, 2, g.ClearFullRows())
	assert.Equal(t, []string{
		"....",
		"....",
		"a...",
		"b.b.",
		"c..c",
	}, dump(g))
}

func TestClearFullRowsStacked(t *testing.T) {
	// Adjacent full rows shift onto the same index one after another; every
	// one of them must still be removed in a single call.
	g := gridFromRows(t,
		"d...",
		"XXXX",
		"XXXX",
		"XXXX",
		"XXXX",
		".e..",
	)

	require.Equal(t, 4, g.ClearFullRows())
	assert.Equal(t, []string{
		"....",
		"....",
		"....",
		"....",
		"d...",
		".e..",
	}, dump(g))
}

func TestClearFullRowsNone(t *testing.T) {
	g := gridFromRows(t,
		"X.X",
		".XX",
	)
	before := dump(g)

	assert.Equal(t, 0, g.ClearFullRows())
	assert.Equal(t, before, dump(g))
}

func TestClearFullRowsPreservesOrder(t *testing.T) {
	// After compaction no empty row sits below a non-empty one, and the
	// surviving rows keep their relative order.
	g := gridFromRows(t,
		"......",
		"a.....",
		"XXXXXX",
		".b....",
		"XXXXXX",
		"..c...",
		"XXXXXX",
		"...d..",
	)

	require.Equal(t, 3, g.ClearFullRows())

	rows := dump(g)
	seenFilled := false
	for y, row := range rows {
		empty := row == "......"
		if !empty {
			seenFilled = true
		}
		if seenFilled && empty {
			t.Fatalf("empty row %d below a filled row: %v", y, rows)
		}
	}
	assert.Equal(t, []string{"......", "......", "......", "......", "a.....", ".b....", "..c...", "...d.."}, rows)
}

func TestGridCloneIsIndependent(t *testing.T) {
	g := gridFromRows(t, "X.", "..")
	c := g.Clone()
	c.Fill(1, 1, core.ColorRed)

	assert.False(t, g.Cell(1, 1).Filled)
	assert.True(t, c.Cell(1, 1).Filled)
	assert.Equal(t, Empty(), g.Cell(5, 5), "out of bounds reads are empty")
}
