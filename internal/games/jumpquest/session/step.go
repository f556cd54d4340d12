package session

import (
	"math"

	"github.com/vovakirdan/jump-quest/internal/core"
	"github.com/vovakirdan/jump-quest/internal/games/jumpquest/actor"
	"github.com/vovakirdan/jump-quest/internal/games/jumpquest/physics"
)

// Events reports what happened during one step. The caller owns score,
// lives and screen state and applies these.
type Events struct {
	Score      int // points earned this step, excluding the completion bonus
	Cues       []core.Cue
	Deaths     []core.PlayerID
	Kills      int
	Coins      int
	Checkpoint bool
	TimeUp     bool
	Complete   bool
	Bonus      int // completion award, set with Complete
}

func (ev *Events) cue(c core.Cue) {
	ev.Cues = append(ev.Cues, c)
}

func (ev *Events) died(id core.PlayerID) {
	if ev.dead(id) {
		return
	}
	ev.Deaths = append(ev.Deaths, id)
	ev.cue(core.CueDeath)
}

func (ev *Events) dead(id core.PlayerID) bool {
	for _, d := range ev.Deaths {
		if d == id {
			return true
		}
	}
	return false
}

// policy is what differs between solo and co-op arbitration.
type policy struct {
	// haltOnDeath ends the frame at the first death; the caller reloads.
	haltOnDeath bool
	// respawnTimers runs per-player respawn countdowns.
	respawnTimers bool
}

var (
	soloPolicy = policy{haltOnDeath: true}
	coopPolicy = policy{respawnTimers: true}
)

// StepSolo advances a single-player session. dt is real time; physicsDt
// is dt after any slow-motion scaling.
func (s *Session) StepSolo(ctl actor.Controls, dt, physicsDt float64) Events {
	return s.step([]actor.Controls{ctl}, dt, physicsDt, soloPolicy)
}

// StepCoop advances a two-player session with shared progress.
func (s *Session) StepCoop(p1, p2 actor.Controls, dt, physicsDt float64) Events {
	return s.step([]actor.Controls{p1, p2}, dt, physicsDt, coopPolicy)
}

func (s *Session) step(ctls []actor.Controls, dt, physicsDt float64, pol policy) Events {
	var ev Events

	if s.StartFade > 0 {
		s.StartFade -= dt
	}
	s.TimeRemaining -= physicsDt
	if s.TimeRemaining <= 0 {
		s.TimeRemaining = 0
		ev.TimeUp = true
		ev.cue(core.CueDeath)
		return ev
	}

	for i, ps := range s.Players {
		var ctl actor.Controls
		if i < len(ctls) {
			ctl = ctls[i]
		}
		if pol.respawnTimers && ps.Respawn > 0 {
			ps.Respawn -= dt
			if ps.Respawn <= 0 {
				s.relocate(ps)
			}
		}
		s.stepPlayer(ps, ctl, dt, physicsDt, &ev)
	}

	for _, ps := range s.Players {
		ps.ClampX(s.WorldWidth())
	}

	for _, ps := range s.Players {
		if ps.Active() && ps.Y > s.rules.FallDeathY {
			ev.died(ps.ID)
			if pol.haltOnDeath {
				return ev
			}
		}
	}

	if s.stepEnemies(physicsDt, pol, &ev) {
		return ev
	}

	s.collectCoins(&ev)

	if len(ev.Deaths) == 0 && s.Complete() {
		ev.Complete = true
		ev.Bonus = s.CompletionBonus()
		ev.cue(core.CueLevelComplete)
	}

	s.follow()
	return ev
}

// stepPlayer is the per-player frame: a player with control moves,
// integrates, activates checkpoints, resolves platforms and may jump; a
// respawning player only integrates and resolves.
func (s *Session) stepPlayer(ps *PlayerState, ctl actor.Controls, dt, physicsDt float64, ev *Events) {
	if !ps.Active() {
		ps.Update(physicsDt)
		ps.CollidePlatforms(s.Platforms, s.rules.Margin)
		return
	}

	ps.Drive(ctl, physicsDt)
	ps.contact = ps.Box()
	s.activateCheckpoints(ps.contact, ev)
	ps.CollidePlatforms(s.Platforms, s.rules.Margin)
	if ps.Jump(ctl.Jump) {
		ev.cue(core.CueJump)
	}
	ps.Animate(dt)

	if ps.OnGround && math.Abs(ps.VX) > s.rules.FootstepMinSpeed {
		ps.footstep += physicsDt
		if ps.footstep >= s.rules.Footstep {
			ps.footstep = 0
			ev.cue(core.CueFootstep)
		}
	} else {
		ps.footstep = 0
	}
}

func (s *Session) activateCheckpoints(box core.Box, ev *Events) {
	for i := range s.Checkpoints {
		cp := &s.Checkpoints[i]
		if cp.Activated {
			continue
		}
		if physics.Overlaps(box, core.NewBox(cp.X, cp.Y, s.rules.CheckpointW, s.rules.CheckpointH)) {
			cp.Activated = true
			s.LastCheckpoint = &core.Point{X: cp.X, Y: cp.Y}
			ev.Score += s.rules.Scoring.Checkpoint
			ev.Checkpoint = true
			ev.cue(core.CueCoin)
		}
	}
}

// stepEnemies moves every live enemy and arbitrates contact with each
// player that has control. A player death stops the enemy pass; it
// reports true when the frame must end.
func (s *Session) stepEnemies(physicsDt float64, pol policy, ev *Events) bool {
	bounce := make([]bool, len(s.Players))

	for _, e := range s.Enemies {
		if !e.Alive {
			continue
		}
		e.Update(physicsDt)
		e.CollidePlatforms(s.Platforms, s.rules.Margin)
		if e.OnGround {
			e.CheckEdge(s.Platforms)
		}
		e.CollideGround(s.rules.GroundY)

		for i, ps := range s.Players {
			if !ps.Active() || !e.Alive || ev.dead(ps.ID) {
				continue
			}
			switch e.Contact(ps.contact, ps.VY, s.params.Stomp) {
			case actor.OutcomePlayerKilled:
				ev.died(ps.ID)
				if pol.haltOnDeath {
					return true
				}
			case actor.OutcomeEnemyKilled:
				bounce[i] = true
				ev.Score += s.rules.Scoring.Enemy
				ev.Kills++
				ev.cue(core.CueEnemyDeath)
			}
		}
	}

	for i, b := range bounce {
		if b {
			s.Players[i].Bounce(s.rules.Bounce)
		}
	}
	return false
}

func (s *Session) collectCoins(ev *Events) {
	for i := range s.Coins {
		c := &s.Coins[i]
		if c.Collected {
			continue
		}
		box := core.NewBox(c.X, c.Y, s.rules.CoinSize, s.rules.CoinSize)
		for _, ps := range s.Players {
			if ps.Active() && !ev.dead(ps.ID) && physics.Overlaps(ps.Box(), box) {
				c.Collected = true
				s.CoinsCollected++
				ev.Coins++
				ev.Score += s.rules.Scoring.Coin
				ev.cue(core.CueCoin)
				break
			}
		}
	}
}
