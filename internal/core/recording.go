package core

// InputEvent is one recorded tick with at least one gameplay action.
type InputEvent struct {
	Tick uint64     // 1-based simulation tick
	Mask ActionMask // Actions applied on that tick
}

// Recording is everything needed to re-run a session tick for tick:
// the seed, the tick rate, the serialized game config and the inputs.
// Ticks without input are implied.
type Recording struct {
	GameID   string
	Seed     int64
	TickRate int
	Config   []byte // Game-specific config snapshot (YAML)
	Inputs   []InputEvent
	Ticks    uint64 // Simulated ticks in total

	// Outcome at the end of the recording.
	Score    int
	Lines    int
	Pieces   int
	Finished bool // The session ended in game over
}

// FrameAt returns the recorded frame for tick, advancing *next past the
// events already consumed. Inputs must be sorted by tick.
func (r *Recording) FrameAt(tick uint64, next *int) InputFrame {
	for *next < len(r.Inputs) && r.Inputs[*next].Tick < tick {
		*next++
	}
	if *next < len(r.Inputs) && r.Inputs[*next].Tick == tick {
		m := r.Inputs[*next].Mask
		*next++
		return FrameFromMask(m)
	}
	return NewInputFrame()
}
