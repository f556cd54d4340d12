// Package versus runs a timed two-player stomp match in the arena.
package versus

import (
	"math"

	"github.com/vovakirdan/jump-quest/internal/config"
	"github.com/vovakirdan/jump-quest/internal/core"
	"github.com/vovakirdan/jump-quest/internal/games/jumpquest/actor"
	"github.com/vovakirdan/jump-quest/internal/games/jumpquest/levels"
	"github.com/vovakirdan/jump-quest/internal/games/jumpquest/session"
)

const (
	defaultBase = 200
	defaultCap  = 10
	maxCap      = 30 // largest doubling exponent a config may ask for
	settleSnap  = 5.0 // max feet-to-top distance that snaps onto a platform
)

// Points returns the award for a kill that brings the scorer's streak to
// streak: 200 for a first kill, doubling per consecutive kill with the
// exponent capped at 10.
func Points(streak int) int {
	return PointsFor(defaultBase, defaultCap, streak)
}

// PointsFor is Points with an explicit base award and exponent cap.
// The cap is clamped to [0, 30] and the result saturates instead of
// wrapping.
func PointsFor(base, capExp, streak int) int {
	if streak <= 0 || base <= 0 {
		return base
	}
	capExp = max(0, min(capExp, maxCap))
	exp := min(streak-1, capExp)
	if base > math.MaxInt>>exp {
		return math.MaxInt
	}
	return base << exp
}

// Rules configures a round.
type Rules struct {
	Duration   float64
	Cooldown   float64
	BasePoints int
	StreakCap  int
	SpawnX     [2]float64
	GroundY    float64
	FallDeathY float64
	Margin     float64
	Bounce     float64
	ViewWidth  float64
}

// RulesFromConfig extracts versus rules from the game configuration.
func RulesFromConfig(cfg config.Config) Rules {
	return Rules{
		Duration:   cfg.Versus.Duration,
		Cooldown:   cfg.Versus.Cooldown,
		BasePoints: cfg.Versus.BasePoints,
		StreakCap:  cfg.Versus.StreakCap,
		SpawnX:     [2]float64{cfg.Versus.Spawn1X, cfg.Versus.Spawn2X},
		GroundY:    cfg.World.GroundY,
		FallDeathY: cfg.World.FallDeathY,
		Margin:     cfg.World.CollisionMargin,
		Bounce:     cfg.Player.BounceMultiplier,
		ViewWidth:  cfg.World.ViewWidth,
	}
}

// Fighter is one contestant.
type Fighter struct {
	*actor.Player
	ID      core.PlayerID
	Kills   int
	Streak  int
	Points  int
	Respawn float64
}

// Active reports whether the fighter has control.
func (f *Fighter) Active() bool {
	return f.Respawn <= 0
}

// Events reports what happened during one step.
type Events struct {
	Cues   []core.Cue
	Scorer core.PlayerID // zero when nobody scored
	Award  int
	Over   bool
}

// Round is one versus match.
type Round struct {
	Arena         levels.Layout
	Fighters      [2]*Fighter
	TimeRemaining float64
	Elapsed       float64
	Camera        session.Camera

	rules  Rules
	params actor.Params
}

// NewRound places both fighters at the arena spawns.
func NewRound(arena levels.Layout, rules Rules, params actor.Params) *Round {
	r := &Round{
		Arena:         arena,
		TimeRemaining: rules.Duration,
		rules:         rules,
		params:        params,
	}
	y := rules.GroundY - params.Player.Height
	for i := range r.Fighters {
		x := rules.SpawnX[i]
		if i < len(arena.Spawns) {
			x = arena.Spawns[i].X
			y = arena.Spawns[i].Y
		}
		r.Fighters[i] = &Fighter{
			Player: actor.NewPlayer(x, y, params.Player),
			ID:     core.PlayerID(i + 1),
		}
	}
	r.follow()
	return r
}

// Fighter returns the contestant for id, or nil.
func (r *Round) Fighter(id core.PlayerID) *Fighter {
	for _, f := range r.Fighters {
		if f.ID == id {
			return f
		}
	}
	return nil
}

// Result summarizes the round so far.
func (r *Round) Result() core.VersusResult {
	return core.VersusResult{
		P1Kills:  r.Fighters[0].Kills,
		P2Kills:  r.Fighters[1].Kills,
		P1Points: r.Fighters[0].Points,
		P2Points: r.Fighters[1].Points,
		Duration: r.Elapsed,
	}
}

// Step advances the round. Respawn timers run on real time dt; physics and
// the round clock use physicsDt.
func (r *Round) Step(p1, p2 actor.Controls, dt, physicsDt float64) Events {
	var ev Events

	r.TimeRemaining -= physicsDt
	r.Elapsed += physicsDt
	if r.TimeRemaining <= 0 {
		r.TimeRemaining = 0
		ev.Over = true
		ev.Cues = append(ev.Cues, core.CueLevelComplete)
		return ev
	}

	for i, f := range r.Fighters {
		if f.Respawn > 0 {
			f.Respawn -= dt
			if f.Respawn <= 0 {
				f.Reset(r.rules.SpawnX[i], r.rules.GroundY-f.H)
			}
		}
	}

	ctls := [2]actor.Controls{p1, p2}
	for i, f := range r.Fighters {
		if !f.Active() {
			f.Update(physicsDt)
			f.CollidePlatforms(r.Arena.Platforms, r.rules.Margin)
			continue
		}
		f.Drive(ctls[i], physicsDt)
		f.CollidePlatforms(r.Arena.Platforms, r.rules.Margin)
		r.settle(f)
		f.Animate(physicsDt)
		if f.Jump(ctls[i].Jump) {
			ev.Cues = append(ev.Cues, core.CueJump)
		}
	}

	a, b := r.Fighters[0], r.Fighters[1]
	if a.Active() && b.Active() {
		switch {
		case actor.IsStomp(a.Box(), a.VY, b.Box(), r.params.Stomp):
			r.score(a, b, &ev)
			a.Bounce(r.rules.Bounce)
		case actor.IsStomp(b.Box(), b.VY, a.Box(), r.params.Stomp):
			r.score(b, a, &ev)
			b.Bounce(r.rules.Bounce)
		}
	}

	for _, f := range r.Fighters {
		f.ClampX(r.Arena.Width)
	}

	for i, f := range r.Fighters {
		if f.Active() && f.Y > r.rules.FallDeathY {
			r.score(r.Fighters[1-i], f, &ev)
		}
	}

	r.follow()
	return ev
}

// score credits scorer for taking out victim.
func (r *Round) score(scorer, victim *Fighter, ev *Events) {
	scorer.Kills++
	scorer.Streak++
	victim.Streak = 0
	award := PointsFor(r.rules.BasePoints, r.rules.StreakCap, scorer.Streak)
	scorer.Points += award
	victim.Respawn = r.rules.Cooldown
	ev.Scorer = scorer.ID
	ev.Award = award
	ev.Cues = append(ev.Cues, core.CueEnemyDeath)
}

// settle snaps a resting fighter onto the platform under its centre, or
// onto the ground when there is none within reach.
func (r *Round) settle(f *Fighter) {
	if !f.OnGround || f.VY != 0 {
		return
	}
	cx := f.X + f.W/2
	for _, p := range r.Arena.Platforms {
		if cx >= p.X && cx <= p.Right() && math.Abs(f.Y+f.H-p.Y) < settleSnap {
			f.Y = p.Y - f.H
			return
		}
	}
	f.Y = r.rules.GroundY - f.H
}

func (r *Round) follow() {
	a, b := r.Fighters[0], r.Fighters[1]
	mid := (a.X + a.W/2 + b.X + b.W/2) / 2
	r.Camera.Follow(mid, r.rules.ViewWidth, r.Arena.Width)
}
