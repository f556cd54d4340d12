package actor

import (
	"github.com/vovakirdan/jump-quest/internal/core"
	"github.com/vovakirdan/jump-quest/internal/games/jumpquest/physics"
)

// IsStomp reports whether attacker, moving with vertical velocity vy,
// landed on victim. The contact must overlap and satisfy one of two tests:
// the attacker is not rising fast and its feet are no lower than just past
// the victim's center, or it is falling and its feet are within the upper
// part of the victim.
func IsStomp(attacker core.Box, vy float64, victim core.Box, t StompThresholds) bool {
	if !physics.Overlaps(attacker, victim) {
		return false
	}
	feet := attacker.Bottom()
	onTop := vy >= t.MinVelocity && feet <= victim.CenterY()+t.CenterSlack
	fallingOnTop := vy > 0 && feet <= victim.Y+victim.H*t.TopFraction
	return onTop || fallingOnTop
}
