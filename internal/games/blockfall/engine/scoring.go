package engine

import "fmt"

// ScoreTable maps rows cleared by one lock to points awarded.
// Index 0 is the award for no rows and must be 0.
type ScoreTable []int

// DefaultScoreTable awards 100/300/500/800 for 1-4 rows.
func DefaultScoreTable() ScoreTable {
	return ScoreTable{0, 100, 300, 500, 800}
}

// Points returns the award for clearing rows at once. Counts beyond the
// table get the last entry.
func (t ScoreTable) Points(rows int) int {
	if rows <= 0 || len(t) == 0 {
		return 0
	}
	if rows >= len(t) {
		return t[len(t)-1]
	}
	return t[rows]
}

// Validate checks that the table starts at 0 and never decreases.
func (t ScoreTable) Validate() error {
	if len(t) < 2 {
		return fmt.Errorf("%w: need at least two entries", ErrScoreTable)
	}
	if t[0] != 0 {
		return fmt.Errorf("%w: entry 0 must be 0, got %d", ErrScoreTable, t[0])
	}
	for i := 1; i < len(t); i++ {
		if t[i] < t[i-1] {
			return fmt.Errorf("%w: entry %d (%d) below entry %d (%d)", ErrScoreTable, i, t[i], i-1, t[i-1])
		}
	}
	return nil
}
