package actor

import (
	"math"

	"github.com/vovakirdan/jump-quest/internal/core"
	"github.com/vovakirdan/jump-quest/internal/games/jumpquest/physics"
)

// Player is a controllable actor.
type Player struct {
	Body
	AnimFrame int

	animTimer float64
	p         PlayerParams
}

// NewPlayer creates a grounded player at rest with its top-left at (x, y).
func NewPlayer(x, y float64, p PlayerParams) *Player {
	return &Player{
		Body: Body{
			X:           x,
			Y:           y,
			W:           p.Width,
			H:           p.Height,
			OnGround:    true,
			FacingRight: true,
		},
		p: p,
	}
}

// Update integrates one step: gravity while airborne, fall clamp, ground
// friction, then position. Grounded is cleared; collisions re-assert it.
func (pl *Player) Update(dt float64) {
	if !pl.OnGround {
		pl.VY += pl.p.Gravity * dt
	}
	pl.clampFall(pl.p.TerminalVelocity)
	if pl.OnGround {
		pl.VX *= pl.p.Friction
	}
	pl.X += pl.VX * dt
	pl.Y += pl.VY * dt
	pl.OnGround = false
}

// Move applies horizontal intent. Left wins when both are held; with
// neither held the current velocity is left to friction.
func (pl *Player) Move(left, right bool) {
	switch {
	case left:
		pl.VX = -pl.p.Speed
		pl.FacingRight = false
	case right:
		pl.VX = pl.p.Speed
		pl.FacingRight = true
	}
}

// Jump launches the player if grounded and reports whether it did.
func (pl *Player) Jump(pressed bool) bool {
	if !pressed || !pl.OnGround {
		return false
	}
	pl.VY = pl.p.JumpForce
	pl.OnGround = false
	return true
}

// Bounce sets the upward velocity after stomping something.
func (pl *Player) Bounce(multiplier float64) {
	pl.VY = pl.p.JumpForce * multiplier
}

// CollidePlatform resolves against one platform and applies the result.
// A landing snaps to the top and grounds the player; any other contact
// corrects the axis with the larger displacement and stops motion on it.
func (pl *Player) CollidePlatform(platform core.Box) physics.Kind {
	r := physics.Resolve(pl.Box(), platform, pl.VY)
	switch r.Kind {
	case physics.None:
		return physics.None
	case physics.Land:
		pl.Y = r.Y
		pl.VY = 0
		pl.OnGround = true
		return r.Kind
	}

	dx := r.X - pl.X
	dy := r.Y - pl.Y
	if math.Abs(dx) > math.Abs(dy) {
		pl.X = r.X
		pl.VX = 0
	} else {
		pl.Y = r.Y
		pl.VY = 0
	}
	return r.Kind
}

// CollidePlatforms resolves against every platform within margin of the
// player's position at the start of the pass.
func (pl *Player) CollidePlatforms(platforms []core.Box, margin float64) {
	start := pl.Box()
	for _, platform := range platforms {
		if physics.Nearby(start, platform, margin) {
			pl.CollidePlatform(platform)
		}
	}
}

// Animate advances the walk cycle while the player runs on the ground.
func (pl *Player) Animate(dt float64) {
	if !pl.OnGround || math.Abs(pl.VX) <= pl.p.AnimMinSpeed || pl.p.AnimFrames <= 0 {
		pl.AnimFrame = 0
		pl.animTimer = 0
		return
	}
	pl.animTimer += dt
	if pl.animTimer >= pl.p.AnimFrameTime {
		pl.animTimer = 0
		pl.AnimFrame = (pl.AnimFrame + 1) % pl.p.AnimFrames
	}
}

// Params returns the player's physics parameters.
func (pl *Player) Params() PlayerParams {
	return pl.p
}
