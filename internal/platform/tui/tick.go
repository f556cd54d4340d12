// Package tui runs Jump Quest in a terminal, locally or over SSH.
// It owns the tick loop, key mapping and score recording.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg advances the game by one fixed step.
type TickMsg time.Time

// defaultTickRate matches the 60 Hz step the physics is tuned for.
const defaultTickRate = 60

// tickCmd schedules the next TickMsg at tickRate per second.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = defaultTickRate
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
