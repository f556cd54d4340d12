package core

// Cue identifies a sound effect.
type Cue int

const (
	CueJump Cue = iota
	CueCoin
	CueDeath
	CueEnemyDeath
	CueLevelComplete
	CueMenuSelect
	CueFootstep
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CueJump:
		return "jump"
	case CueCoin:
		return "coin"
	case CueDeath:
		return "death"
	case CueEnemyDeath:
		return "enemy_death"
	case CueLevelComplete:
		return "level_complete"
	case CueMenuSelect:
		return "menu_select"
	case CueFootstep:
		return "footstep"
	default:
		return "unknown"
	}
}

// Audio plays fire-and-forget sound cues.
// Implementations must not block the simulation.
type Audio interface {
	Play(c Cue)
	SetEnabled(enabled bool)
	Enabled() bool
}
