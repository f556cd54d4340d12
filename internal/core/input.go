package core

import "sort"

// Action represents a semantic menu action, abstracted from physical key presses.
// Gameplay movement does not use actions; it reads held keys through the
// per-player binding table so that controls can be rebound at runtime.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow
	ActionDown           // S, Down arrow
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionConfirm        // Enter
	ActionSelect         // Space
	ActionBack           // Escape
	ActionPause          // P
	ActionDelete         // Backspace, Delete
	ActionYes            // Y
	ActionNo             // N
	ActionQuit           // Ctrl+C
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
	case ActionConfirm:
		return "Confirm"
	case ActionSelect:
		return "Select"
	case ActionBack:
		return "Back"
	case ActionPause:
		return "Pause"
	case ActionDelete:
		return "Delete"
	case ActionYes:
		return "Yes"
	case ActionNo:
		return "No"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// PlayerID identifies a local player.
type PlayerID int

const (
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

// String returns "P1" or "P2".
func (p PlayerID) String() string {
	if p == Player2 {
		return "P2"
	}
	return "P1"
}

// InputFrame is the input snapshot for a single simulation tick.
// Actions and Pressed are edge-triggered (this frame only); Held reports
// keys that are currently down.
type InputFrame struct {
	Actions map[Action]bool
	Pressed map[string]bool // key names pressed this frame
	Held    map[string]bool // key names currently held
	Text    []rune          // printable characters typed this frame
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
		Pressed: make(map[string]bool),
		Held:    make(map[string]bool),
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
	return f.Actions[a]
}

// Press records a key press. A pressed key is also held for this frame.
func (f *InputFrame) Press(key string) {
	if f.Pressed == nil {
		f.Pressed = make(map[string]bool)
	}
	f.Pressed[key] = true
	f.Hold(key)
}

// Hold marks a key as held.
func (f *InputFrame) Hold(key string) {
	if f.Held == nil {
		f.Held = make(map[string]bool)
	}
	f.Held[key] = true
}

// IsHeld reports whether key is down.
func (f InputFrame) IsHeld(key string) bool {
	return f.Held[key]
}

// IsPressed reports whether key went down this frame.
func (f InputFrame) IsPressed(key string) bool {
	return f.Pressed[key]
}

// PressedKeys returns the keys pressed this frame in sorted order.
func (f InputFrame) PressedKeys() []string {
	keys := make([]string, 0, len(f.Pressed))
	for k := range f.Pressed {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clear resets all input for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
	clear(f.Pressed)
	clear(f.Held)
	f.Text = f.Text[:0]
}

// Clone creates a deep copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	for k, v := range f.Pressed {
		clone.Pressed[k] = v
	}
	for k, v := range f.Held {
		clone.Held[k] = v
	}
	clone.Text = append([]rune(nil), f.Text...)
	return clone
}
