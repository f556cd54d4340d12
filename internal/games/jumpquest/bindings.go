package jumpquest

import (
	"strings"

	"github.com/vovakirdan/jump-quest/internal/core"
	"github.com/vovakirdan/jump-quest/internal/games/jumpquest/actor"
)

// Control is a rebindable gameplay input.
type Control int

const (
	ControlLeft Control = iota
	ControlRight
	ControlJump
	controlCount
)

func (c Control) String() string {
	switch c {
	case ControlLeft:
		return "Left"
	case ControlRight:
		return "Right"
	case ControlJump:
		return "Jump"
	default:
		return "Unknown"
	}
}

// Bindings maps each player's controls to key names as reported by the
// terminal ("a", "left", " ").
type Bindings struct {
	keys [2][controlCount]string
}

// DefaultBindings returns P1 on a/d/w and P2 on the arrow keys.
func DefaultBindings() Bindings {
	var b Bindings
	b.keys[0] = [controlCount]string{"a", "d", "w"}
	b.keys[1] = [controlCount]string{"left", "right", "up"}
	return b
}

func slot(p core.PlayerID) int {
	if p == core.Player2 {
		return 1
	}
	return 0
}

// Key returns the key bound to c for player p.
func (b Bindings) Key(p core.PlayerID, c Control) string {
	if c < 0 || c >= controlCount {
		return ""
	}
	return b.keys[slot(p)][c]
}

// Bind assigns key to c for player p.
func (b *Bindings) Bind(p core.PlayerID, c Control, key string) {
	if c < 0 || c >= controlCount {
		return
	}
	b.keys[slot(p)][c] = key
}

// Controls samples player p's held controls from the frame.
func (b Bindings) Controls(p core.PlayerID, in core.InputFrame) actor.Controls {
	k := b.keys[slot(p)]
	return actor.Controls{
		Left:  k[ControlLeft] != "" && in.IsHeld(k[ControlLeft]),
		Right: k[ControlRight] != "" && in.IsHeld(k[ControlRight]),
		Jump:  k[ControlJump] != "" && in.IsHeld(k[ControlJump]),
	}
}

// KeyLabel formats a key name for display.
func KeyLabel(key string) string {
	switch key {
	case "":
		return "-"
	case " ":
		return "SPACE"
	case "left":
		return "←"
	case "right":
		return "→"
	case "up":
		return "↑"
	case "down":
		return "↓"
	}
	return strings.ToUpper(key)
}

// capture is a pending rebind waiting for the next key press.
type capture struct {
	player  core.PlayerID
	control Control
}

// capturable reports whether key may be bound to a control.
func capturable(key string) bool {
	switch key {
	case "esc", "enter", "p", "ctrl+c", "q", "backspace", "delete", "tab":
		return false
	}
	return key != ""
}
