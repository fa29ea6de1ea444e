package blockfall

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
)

// ErrReplayMismatch is returned by Verify when re-running a recording does
// not end where the recording says it did.
var ErrReplayMismatch = errors.New("blockfall: replay does not reproduce the recorded outcome")

// ErrNoRecordedConfig is returned by Replay for a recording without the
// config it was played with.
var ErrNoRecordedConfig = errors.New("blockfall: recording has no config")

// Replay re-runs a recording headlessly and returns the game in its final state.
func Replay(rec core.Recording) (*Game, error) {
	mode, err := ModeForID(rec.GameID)
	if err != nil {
		return nil, err
	}
	if len(rec.Config) == 0 {
		return nil, ErrNoRecordedConfig
	}
	cfg, err := config.Parse(rec.Config)
	if err != nil {
		return nil, fmt.Errorf("blockfall: recorded config: %w", err)
	}

	g := NewWithConfig(mode, cfg)
	g.Reset(core.RuntimeConfig{Seed: rec.Seed, TickRate: rec.TickRate})

	next := 0
	for t := uint64(1); t <= rec.Ticks; t++ {
		g.Step(rec.FrameAt(t, &next))
	}
	return g, nil
}

// Verify replays rec and checks score, lines, pieces and the game-over flag
// against the recorded outcome.
func Verify(rec core.Recording) (Snapshot, error) {
	g, err := Replay(rec)
	if err != nil {
		return Snapshot{}, err
	}

	snap := g.Snapshot()
	finished := snap.State == StateGameOver
	if snap.Score != rec.Score || snap.Lines != rec.Lines || snap.Pieces != rec.Pieces || finished != rec.Finished {
		return snap, fmt.Errorf("%w: got score=%d lines=%d pieces=%d over=%t, recorded score=%d lines=%d pieces=%d over=%t",
			ErrReplayMismatch,
			snap.Score, snap.Lines, snap.Pieces, finished,
			rec.Score, rec.Lines, rec.Pieces, rec.Finished)
	}
	return snap, nil
}
