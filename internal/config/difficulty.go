package config

import (
	"fmt"
	"strings"
)

// Difficulty is a named preset that scales enemy patrol speed.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
	DifficultyInsane Difficulty = "insane"
)

// Difficulties lists presets in cycling order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyInsane}

// ParseDifficulty converts a user string to a preset. Empty means normal.
func ParseDifficulty(s string) (Difficulty, error) {
	if s == "" {
		return DifficultyNormal, nil
	}
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Difficulties {
		if d == known {
			return d, nil
		}
	}
	return DifficultyNormal, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or insane)", s)
}

// Multiplier returns the enemy speed multiplier for the preset.
func (d Difficulty) Multiplier() float64 {
	switch d {
	case DifficultyEasy:
		return 0.75
	case DifficultyHard:
		return 1.25
	case DifficultyInsane:
		return 1.5
	default:
		return 1.0
	}
}

// Next returns the following preset, wrapping from insane to easy.
func (d Difficulty) Next() Difficulty {
	for i, known := range Difficulties {
		if d == known {
			return Difficulties[(i+1)%len(Difficulties)]
		}
	}
	return DifficultyEasy
}

// Label returns the upper-case display name.
func (d Difficulty) Label() string {
	if d == "" {
		return strings.ToUpper(string(DifficultyNormal))
	}
	return strings.ToUpper(string(d))
}
