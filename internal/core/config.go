package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Dt returns the fixed simulation step in seconds.
func (c RuntimeConfig) Dt() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int    // Current score
	Player   string // Active profile name, empty when none
	Screen   string // Name of the active screen
	GameOver bool   // Whether the game has ended
	Paused   bool   // Whether the game is paused
	Exit     bool   // Player confirmed leaving the game
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}

// EventKind classifies gameplay events reported to the platform.
type EventKind int

const (
	EventLevelComplete EventKind = iota + 1
	EventGameOver
	EventDeath
	EventVersusEnd
	EventScreenChange
)

// String returns a label suitable for metrics and logs.
func (k EventKind) String() string {
	switch k {
	case EventLevelComplete:
		return "level_complete"
	case EventGameOver:
		return "game_over"
	case EventDeath:
		return "death"
	case EventVersusEnd:
		return "versus_end"
	case EventScreenChange:
		return "screen_change"
	default:
		return "unknown"
	}
}

// Event is a notable gameplay occurrence. Only the fields relevant to
// Kind are set.
type Event struct {
	Kind    EventKind
	Player  string
	Mode    string
	Level   int
	Score   int
	Seconds float64
	Screen  string
	Versus  *VersusResult
}

// VersusResult summarizes a finished versus round.
type VersusResult struct {
	P1Kills, P2Kills   int
	P1Points, P2Points int
	Duration           float64
}

// Winner returns Player1 or Player2 by points, or 0 on a draw.
func (r VersusResult) Winner() PlayerID {
	switch {
	case r.P1Points > r.P2Points:
		return Player1
	case r.P2Points > r.P1Points:
		return Player2
	default:
		return 0
	}
}
