package actor

import (
	"github.com/vovakirdan/jump-quest/internal/core"
	"github.com/vovakirdan/jump-quest/internal/games/jumpquest/physics"
)

// Outcome is the result of a player touching an enemy.
type Outcome int

const (
	OutcomeNone         Outcome = iota
	OutcomeEnemyKilled          // player stomped the enemy
	OutcomePlayerKilled         // enemy hit the player
)

// Enemy is a patrolling walker that turns at walls and ledges.
type Enemy struct {
	Body
	Alive bool

	p EnemyParams
}

// NewEnemy creates a live enemy walking left.
func NewEnemy(x, y float64, p EnemyParams) *Enemy {
	return &Enemy{
		Body: Body{
			X:        x,
			Y:        y,
			W:        p.Width,
			H:        p.Height,
			VX:       -p.Speed,
			OnGround: true,
		},
		Alive: true,
		p:     p,
	}
}

// Update integrates one step. Dead enemies do not move.
func (e *Enemy) Update(dt float64) {
	if !e.Alive {
		return
	}
	e.X += e.VX * dt
	if !e.OnGround {
		e.VY += e.p.Gravity * dt
	}
	e.clampFall(e.p.TerminalVelocity)
	e.Y += e.VY * dt
	e.OnGround = false
	e.FacingRight = e.VX >= 0
}

// CollidePlatform lands on a platform top only for shallow contact from
// above; any other contact reverses direction and pushes the enemy clear.
func (e *Enemy) CollidePlatform(platform core.Box) {
	if !e.Alive || !physics.Overlaps(e.Box(), platform) {
		return
	}

	top := e.Y + e.H - platform.Y
	left := e.X + e.W - platform.X
	right := platform.Right() - e.X

	if top < min(left, right) && top < e.p.LandThreshold && e.VY >= 0 {
		e.Y = platform.Y - e.H
		e.VY = 0
		e.OnGround = true
		return
	}

	e.VX = -e.VX
	if e.VX > 0 {
		e.X = platform.Right() + e.p.PushOffset
	} else {
		e.X = platform.X - e.W - e.p.PushOffset
	}
}

// CollidePlatforms resolves against every nearby platform.
func (e *Enemy) CollidePlatforms(platforms []core.Box, margin float64) {
	for _, platform := range platforms {
		if physics.Nearby(e.Box(), platform, margin) {
			e.CollidePlatform(platform)
		}
	}
}

// CheckEdge turns a grounded enemy around when nothing supports the point
// just ahead of and below its leading foot.
func (e *Enemy) CheckEdge(platforms []core.Box) {
	if !e.Alive || !e.OnGround {
		return
	}

	probeX := e.X - e.p.EdgeOffset
	if e.VX > 0 {
		probeX = e.X + e.W + e.p.EdgeOffset
	}
	probeY := e.Y + e.H + e.p.EdgeProbeY

	for _, platform := range platforms {
		if platform.ContainsPoint(probeX, probeY) {
			return
		}
	}

	e.VX = -e.VX
	if e.VX > 0 {
		e.X += e.p.EdgeOffset
	} else {
		e.X -= e.p.EdgeOffset
	}
}

// CollideGround keeps the enemy from sinking below groundY.
func (e *Enemy) CollideGround(groundY float64) {
	if !e.Alive {
		return
	}
	if e.Y+e.H >= groundY {
		e.Y = groundY - e.H
		e.VY = 0
		e.OnGround = true
	}
}

// Contact arbitrates a touch from the player. A stomp kills the enemy;
// the caller is responsible for bouncing the player and scoring.
func (e *Enemy) Contact(player core.Box, playerVY float64, t StompThresholds) Outcome {
	if !e.Alive || !physics.Overlaps(player, e.Box()) {
		return OutcomeNone
	}
	if IsStomp(player, playerVY, e.Box(), t) {
		e.Alive = false
		return OutcomeEnemyKilled
	}
	return OutcomePlayerKilled
}

// SnapTo places the enemy on the highest platform spanning its center,
// or on the ground when none does.
func (e *Enemy) SnapTo(platforms []core.Box, groundY float64) {
	cx := e.X + e.W/2
	best := groundY
	for _, p := range platforms {
		if cx >= p.X && cx <= p.Right() && p.Y <= best {
			best = p.Y
		}
	}
	e.Y = best - e.H
	e.VY = 0
	e.OnGround = true
}
