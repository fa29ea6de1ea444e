package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone     Action = iota
	ActionLeft            // A, Left arrow - shift piece left
	ActionRight           // D, Right arrow - shift piece right
	ActionSoftDrop        // S, Down arrow - move piece down one row
	ActionRotate          // W, Up arrow, X - rotate piece
	ActionHardDrop        // Space - drop piece to the floor and lock it
	ActionPause           // P - pause/unpause game
	ActionRestart         // R - restart game after game over
	ActionBack            // B, Escape - go back to menu
	ActionQuit            // Q, Ctrl+C - exit game/session
)

// gameplayActions are the actions that influence simulation and therefore
// end up in a recording. Order is significant: it defines the bit layout of
// ActionMask and the order in which games apply them within one tick.
var gameplayActions = []Action{
	ActionLeft,
	ActionRight,
	ActionSoftDrop,
	ActionRotate,
	ActionHardDrop,
	ActionPause,
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionSoftDrop:
		return "SoftDrop"
	case ActionRotate:
		return "Rotate"
	case ActionHardDrop:
		return "HardDrop"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// ActionMask is a compact bit set of gameplay actions for one tick.
type ActionMask uint16

// InputFrame represents the input state during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// FrameFromMask rebuilds an input frame from a recorded mask.
func FrameFromMask(m ActionMask) InputFrame {
	f := NewInputFrame()
	for i, a := range gameplayActions {
		if m&(1<<i) != 0 {
			f.Set(a)
		}
	}
	return f
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	for _, on := range f.Actions {
		if on {
			return false
		}
	}
	return true
}

// Mask packs the gameplay actions of this frame into an ActionMask.
// Platform-only actions (restart, back, quit) are not included.
func (f InputFrame) Mask() ActionMask {
	var m ActionMask
	for i, a := range gameplayActions {
		if f.Has(a) {
			m |= 1 << i
		}
	}
	return m
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
