package core

import (
	"math"
	"testing"
)

func TestProfileValidate(t *testing.T) {
	lim := ProfileLimits{MaxLevels: 5, MaxLives: 99, TimeLimit: 300}

	tests := []struct {
		name  string
		in    Profile
		check func(t *testing.T, p Profile)
	}{
		{
			name: "level zero becomes one",
			in:   Profile{CurrentLevel: 0},
			check: func(t *testing.T, p Profile) {
				if p.CurrentLevel != 1 {
					t.Errorf("CurrentLevel = %d, expected 1", p.CurrentLevel)
				}
			},
		},
		{
			name: "level above max is clamped",
			in:   Profile{CurrentLevel: 9},
			check: func(t *testing.T, p Profile) {
				if p.CurrentLevel != 5 {
					t.Errorf("CurrentLevel = %d, expected 5", p.CurrentLevel)
				}
			},
		},
		{
			name: "lives clamped to max",
			in:   Profile{CurrentLevel: 1, Lives: 500},
			check: func(t *testing.T, p Profile) {
				if p.Lives != 99 {
					t.Errorf("Lives = %d, expected 99", p.Lives)
				}
			},
		},
		{
			name: "coins never exceed total",
			in:   Profile{CurrentLevel: 1, CoinsCollected: 40, TotalCoins: 25},
			check: func(t *testing.T, p Profile) {
				if p.CoinsCollected != 25 {
					t.Errorf("CoinsCollected = %d, expected 25", p.CoinsCollected)
				}
			},
		},
		{
			name: "negative time resets to limit",
			in:   Profile{CurrentLevel: 1, TimeRemaining: -3},
			check: func(t *testing.T, p Profile) {
				if p.TimeRemaining != 300 {
					t.Errorf("TimeRemaining = %v, expected 300", p.TimeRemaining)
				}
			},
		},
		{
			name: "NaN time resets to limit",
			in:   Profile{CurrentLevel: 1, TimeRemaining: math.NaN(), TimeTaken: math.Inf(1)},
			check: func(t *testing.T, p Profile) {
				if p.TimeRemaining != 300 || p.TimeTaken != 0 {
					t.Errorf("TimeRemaining = %v, TimeTaken = %v", p.TimeRemaining, p.TimeTaken)
				}
			},
		},
		{
			name: "unlocked bitmap resized with level one unlocked",
			in:   Profile{CurrentLevel: 1, UnlockedLevels: []bool{false, true, true, true, true, true, true}},
			check: func(t *testing.T, p Profile) {
				if len(p.UnlockedLevels) != 5 || !p.UnlockedLevels[0] || !p.UnlockedLevels[4] {
					t.Errorf("UnlockedLevels = %v", p.UnlockedLevels)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.check(t, tc.in.Validate(lim))
		})
	}
}

func TestVersusResultWinner(t *testing.T) {
	tests := []struct {
		r        VersusResult
		expected PlayerID
	}{
		{VersusResult{P1Points: 400, P2Points: 200}, Player1},
		{VersusResult{P1Points: 200, P2Points: 800}, Player2},
		{VersusResult{P1Points: 200, P2Points: 200}, 0},
	}
	for _, tc := range tests {
		if got := tc.r.Winner(); got != tc.expected {
			t.Errorf("Winner() = %v, expected %v", got, tc.expected)
		}
	}
}
