package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/jump-quest/internal/core"
)

// DefaultHold is used when the configured hold window is not positive.
const DefaultHold = 150 * time.Millisecond

// KeyMapper translates Bubble Tea key messages to game input.
//
// Terminals report presses and auto-repeats but never releases, so a key
// counts as held until the hold window passes without another event for it.
type KeyMapper struct {
	hold     time.Duration
	lastSeen map[string]time.Time
}

// NewKeyMapper creates a mapper with the given hold window.
func NewKeyMapper(hold time.Duration) *KeyMapper {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &KeyMapper{hold: hold, lastSeen: make(map[string]time.Time)}
}

// MapKey returns the action bound to a key name, or ActionNone.
func MapKey(key string) core.Action {
	switch key {
	case "ctrl+c":
		return core.ActionQuit
	case "w", "up":
		return core.ActionUp
	case "s", "down":
		return core.ActionDown
	case "a", "left":
		return core.ActionLeft
	case "d", "right":
		return core.ActionRight
	case "enter":
		return core.ActionConfirm
	case " ":
		return core.ActionSelect
	case "esc":
		return core.ActionBack
	case "p":
		return core.ActionPause
	case "backspace", "delete":
		return core.ActionDelete
	case "y":
		return core.ActionYes
	case "n":
		return core.ActionNo
	}
	return core.ActionNone
}

// Apply records msg into frame and reports whether it was a quit request.
func (km *KeyMapper) Apply(msg tea.KeyMsg, frame *core.InputFrame, now time.Time) bool {
	key := msg.String()
	action := MapKey(key)
	if action != core.ActionNone {
		frame.Set(action)
	}

	switch msg.Type {
	case tea.KeyRunes:
		if !msg.Alt {
			frame.Text = append(frame.Text, msg.Runes...)
		}
	case tea.KeySpace:
		frame.Text = append(frame.Text, ' ')
	}

	frame.Press(key)
	km.lastSeen[key] = now
	return action == core.ActionQuit
}

// FillHeld marks every key seen within the hold window as held and forgets
// the rest.
func (km *KeyMapper) FillHeld(frame *core.InputFrame, now time.Time) {
	for key, seen := range km.lastSeen {
		if now.Sub(seen) > km.hold {
			delete(km.lastSeen, key)
			continue
		}
		frame.Hold(key)
	}
}

// Release forgets every held key, for example when focus changes.
func (km *KeyMapper) Release() {
	clear(km.lastSeen)
}
