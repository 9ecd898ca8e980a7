package core

// Action represents a semantic game action, abstracted from physical key presses.
// Games see intents such as "move the cursor up" rather than raw keys.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, K, Up arrow - move cursor up
	ActionDown           // S, J, Down arrow - move cursor down
	ActionLeft           // A, Left arrow - move cursor left
	ActionRight          // D, L, Right arrow - move cursor right
	ActionSelect         // Enter, Space - pick up or drop the tile under the cursor
	ActionHint           // H - show a legal move
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R - restart the game
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionSelect:
		return "Select"
	case ActionHint:
		return "Hint"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// Click is a mouse press in screen cell coordinates.
type Click struct {
	X, Y int
}

// InputFrame is the input collected during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
	// Clicks are the mouse presses of this frame in arrival order.
	Clicks []Click
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
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

// AddClick records a mouse press.
func (f *InputFrame) AddClick(x, y int) {
	f.Clicks = append(f.Clicks, Click{X: x, Y: y})
}

// Empty reports whether nothing happened this frame.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0 && len(f.Clicks) == 0
}

// Clear resets all actions and clicks for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Clicks = f.Clicks[:0]
}
