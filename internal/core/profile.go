package core

import (
	"math"
	"time"
)

// Point is a world-space coordinate.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Profile is the persisted snapshot of a player's progress.
type Profile struct {
	CurrentLevel      int       `yaml:"current_level"`
	UnlockedLevels    []bool    `yaml:"unlocked_levels"`
	Lives             int       `yaml:"lives"`
	Score             int       `yaml:"score"`
	CoinsCollected    int       `yaml:"coins_collected"`
	TotalCoins        int       `yaml:"total_coins"`
	TimeRemaining     float64   `yaml:"time_remaining"`
	TimeTaken         float64   `yaml:"time_taken"`
	Timestamp         time.Time `yaml:"timestamp"`
	LastCheckpoint    *Point    `yaml:"last_checkpoint,omitempty"`
	PlayerName        string    `yaml:"player_name"`
	TutorialCompleted bool      `yaml:"tutorial_completed"`
	VersusPlayed      bool      `yaml:"versus_played"`
}

// ProfileLimits bounds the values a loaded profile may carry.
type ProfileLimits struct {
	MaxLevels int
	MaxLives  int
	TimeLimit float64
}

// Validate clamps a profile read from untrusted storage into a playable range.
func (p Profile) Validate(lim ProfileLimits) Profile {
	if p.CurrentLevel < 1 {
		p.CurrentLevel = 1
	}
	if lim.MaxLevels > 0 && p.CurrentLevel > lim.MaxLevels {
		p.CurrentLevel = lim.MaxLevels
	}
	if lim.MaxLevels > 0 {
		unlocked := make([]bool, lim.MaxLevels)
		copy(unlocked, p.UnlockedLevels)
		unlocked[0] = true
		p.UnlockedLevels = unlocked
	}
	if p.Lives < 0 {
		p.Lives = 0
	}
	if lim.MaxLives > 0 && p.Lives > lim.MaxLives {
		p.Lives = lim.MaxLives
	}
	if p.Score < 0 {
		p.Score = 0
	}
	if p.TotalCoins < 0 {
		p.TotalCoins = 0
	}
	if p.CoinsCollected < 0 {
		p.CoinsCollected = 0
	}
	if p.CoinsCollected > p.TotalCoins {
		p.CoinsCollected = p.TotalCoins
	}
	if p.TimeRemaining < 0 || math.IsNaN(p.TimeRemaining) || math.IsInf(p.TimeRemaining, 0) {
		p.TimeRemaining = lim.TimeLimit
	}
	if p.TimeRemaining > lim.TimeLimit {
		p.TimeRemaining = lim.TimeLimit
	}
	if p.TimeTaken < 0 || math.IsNaN(p.TimeTaken) || math.IsInf(p.TimeTaken, 0) {
		p.TimeTaken = 0
	}
	return p
}

// SlotInfo describes a save slot for listing.
type SlotInfo struct {
	Slot    int
	Exists  bool
	Profile Profile // zero unless Exists and readable
	Err     error   // set when the slot exists but cannot be read
}

// ProfileStore persists profiles in numbered slots.
type ProfileStore interface {
	Save(slot int, p Profile) error
	Load(slot int) (Profile, error)
	Exists(slot int) bool
	Delete(slot int) error
	List() []SlotInfo
}
