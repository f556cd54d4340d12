package jumpquest

import (
	"github.com/vovakirdan/jump-quest/internal/core"
	"github.com/vovakirdan/jump-quest/internal/games/jumpquest/session"
	"github.com/vovakirdan/jump-quest/internal/games/jumpquest/versus"
)

// gameplayState returns the screen for the current mode.
func (g *Game) gameplayState() State {
	if g.coop {
		return StateCoop
	}
	return StatePlaying
}

// loadLevel instantiates level n. It reports false and shows a notice when
// the layout cannot be provided.
func (g *Game) loadLevel(n int, opts session.LoadOptions) bool {
	layout, err := g.provider.Layout(n)
	if err != nil {
		g.showNotice("Error loading level %d: %v", n, err)
		return false
	}
	opts.Coop = g.coop
	g.sess = session.Load(layout, opts, g.rules, g.params)
	g.prog.level = n
	g.round = nil
	return true
}

// startLevel begins level n fresh and fades into play.
func (g *Game) startLevel(n int) {
	if !g.loadLevel(n, session.LoadOptions{}) {
		return
	}
	g.stack.clear()
	g.fadeTo(g.gameplayState())
}

// continueFrom restores a save slot and resumes its level at the stored
// checkpoint, time and coin count.
func (g *Game) continueFrom(slot int) {
	if g.profiles == nil {
		return
	}
	p, err := g.profiles.Load(slot)
	if err != nil {
		g.showNotice("Error loading save: %v", err)
		return
	}
	p = p.Validate(core.ProfileLimits{
		MaxLevels: g.levelCount(),
		MaxLives:  g.cfg.Rules.MaxLives,
		TimeLimit: g.cfg.Rules.TimeLimit,
	})

	g.coop = false
	g.prog = progress{
		player:         p.PlayerName,
		level:          p.CurrentLevel,
		unlocked:       p.UnlockedLevels,
		lives:          max(p.Lives, 1),
		score:          p.Score,
		lastCheckpoint: p.LastCheckpoint,
		tutorialDone:   p.TutorialCompleted,
		versusPlayed:   p.VersusPlayed,
	}

	t, coins := p.TimeRemaining, p.CoinsCollected
	opts := session.LoadOptions{
		UseCheckpoint: p.LastCheckpoint != nil,
		Checkpoint:    p.LastCheckpoint,
		Time:          &t,
		Coins:         &coins,
	}
	if t <= 0 {
		opts.Time = nil
	}
	if !g.loadLevel(p.CurrentLevel, opts) {
		return
	}
	g.levelSel = p.CurrentLevel - 1
	g.stack.clear()
	g.fadeTo(StatePlaying)
}

func (g *Game) startVersus() {
	arena, err := g.provider.Arena()
	if err != nil {
		g.showNotice("Error loading arena: %v", err)
		return
	}
	g.round = versus.NewRound(arena, g.vrules, g.params)
	g.sess = nil
	g.prog.versusPlayed = true
	g.stack.clear()
	g.fadeTo(StateVersus)
}

// physicsDt scales dt by the assist slow-motion factor.
func (g *Game) physicsDt(dt float64) float64 {
	if g.assist {
		return dt * g.cfg.Assist.SlowMotion
	}
	return dt
}

func (g *Game) updatePlaying(in core.InputFrame, dt float64) {
	if in.Has(core.ActionPause) {
		g.stack.clear()
		g.stack.push(g.state)
		g.pauseSel = 0
		g.setState(StatePause)
		return
	}
	if in.Has(core.ActionBack) {
		g.leaveToMenu()
		return
	}
	if g.sess == nil {
		g.setState(StateLevelSelect)
		return
	}

	p1 := g.bindings.Controls(core.Player1, in)
	var ev session.Events
	if g.state == StateCoop {
		ev = g.sess.StepCoop(p1, g.bindings.Controls(core.Player2, in), dt, g.physicsDt(dt))
	} else {
		ev = g.sess.StepSolo(p1, dt, g.physicsDt(dt))
	}

	g.play(ev.Cues...)
	g.prog.score += ev.Score
	g.prog.lastCheckpoint = g.sess.LastCheckpoint

	if ev.TimeUp {
		g.gameOver()
		return
	}
	for _, id := range ev.Deaths {
		if g.die(id) {
			return
		}
	}
	if ev.Complete {
		g.completeLevel(ev.Bonus)
	}
}

// die costs a shared life. It reports true when the screen changed.
func (g *Game) die(id core.PlayerID) bool {
	if g.prog.lives > 0 {
		g.prog.lives--
	}
	g.emit(core.Event{
		Kind:   core.EventDeath,
		Player: g.prog.player,
		Mode:   string(g.mode()),
		Level:  g.prog.level,
	})
	if g.prog.lives == 0 {
		g.gameOver()
		return true
	}
	if g.state == StateCoop {
		g.sess.Respawn(id)
		return false
	}
	g.respawnTimer = g.cfg.Timers.Respawn
	g.fadeTo(StateRespawn)
	return true
}

func (g *Game) gameOver() {
	g.gameOverFade = g.cfg.Timers.GameOverFade
	g.emit(core.Event{
		Kind:   core.EventGameOver,
		Player: g.prog.player,
		Mode:   string(g.mode()),
		Level:  g.prog.level,
		Score:  g.prog.score,
	})
	g.fadeTo(StateGameOver)
}

// completeLevel awards the bonus, unlocks the next level and saves to
// slot 0. A failed save only shows a notice.
func (g *Game) completeLevel(bonus int) {
	g.prog.score += bonus
	next := g.prog.level + 1
	if next <= len(g.prog.unlocked) {
		g.prog.unlocked[next-1] = true
	}

	g.emit(core.Event{
		Kind:    core.EventLevelComplete,
		Player:  g.prog.player,
		Mode:    string(g.mode()),
		Level:   g.prog.level,
		Score:   g.prog.score,
		Seconds: g.rules.TimeLimit - g.sess.TimeRemaining,
	})

	if g.profiles != nil {
		if err := g.profiles.Save(0, g.profile()); err != nil {
			g.showNotice("Error saving game: %v", err)
		}
	}
	g.fadeTo(StateLevelComplete)
}

// profile snapshots progress for a save slot. A completed level is saved
// as the start of the next one when that level exists.
func (g *Game) profile() core.Profile {
	p := core.Profile{
		CurrentLevel:      g.prog.level,
		UnlockedLevels:    append([]bool(nil), g.prog.unlocked...),
		Lives:             g.prog.lives,
		Score:             g.prog.score,
		TimeRemaining:     g.rules.TimeLimit,
		Timestamp:         g.now(),
		PlayerName:        g.prog.player,
		TutorialCompleted: g.prog.tutorialDone,
		VersusPlayed:      g.prog.versusPlayed,
	}
	if g.sess == nil {
		return p
	}
	p.TotalCoins = g.sess.TotalCoins()
	p.CoinsCollected = g.sess.CoinsCollected
	p.TimeRemaining = g.sess.TimeRemaining
	p.TimeTaken = g.rules.TimeLimit - g.sess.TimeRemaining
	if g.sess.LastCheckpoint != nil {
		cp := *g.sess.LastCheckpoint
		p.LastCheckpoint = &cp
	}

	if g.state.Gameplay() && g.sess.Complete() && g.prog.level < g.levelCount() {
		p.CurrentLevel = g.prog.level + 1
		p.CoinsCollected = 0
		p.TotalCoins = 0
		if next, err := g.provider.Layout(p.CurrentLevel); err == nil {
			p.TotalCoins = next.TotalCoins()
		}
		p.TimeRemaining = g.rules.TimeLimit
		p.LastCheckpoint = nil
	}
	return p
}

// Profile returns the progress snapshot that a save would write.
func (g *Game) Profile() core.Profile {
	return g.profile()
}

func (g *Game) updateRespawn(dt float64) {
	g.respawnTimer -= dt
	if g.respawnTimer > 0 {
		return
	}
	g.respawnTimer = 0

	t, coins := g.sess.TimeRemaining, g.sess.CoinsCollected
	ok := g.loadLevel(g.prog.level, session.LoadOptions{
		UseCheckpoint: g.prog.lastCheckpoint != nil,
		Checkpoint:    g.prog.lastCheckpoint,
		Time:          &t,
		Coins:         &coins,
	})
	if !ok {
		g.setState(StateLevelSelect)
		return
	}
	g.setState(StatePlaying)
}

func (g *Game) updateGameOver(in core.InputFrame, dt float64) {
	if g.gameOverFade > 0 {
		g.gameOverFade -= dt
		return
	}
	switch {
	case confirmed(in):
		g.prog.lives = g.cfg.Rules.Lives
		ok := g.loadLevel(g.prog.level, session.LoadOptions{
			UseCheckpoint: g.prog.lastCheckpoint != nil,
			Checkpoint:    g.prog.lastCheckpoint,
		})
		if ok {
			g.setState(g.gameplayState())
		}
	case in.Has(core.ActionBack):
		g.levelSel = g.prog.level - 1
		g.setState(StateLevelSelect)
	}
}

func (g *Game) updateLevelComplete(in core.InputFrame) {
	switch {
	case confirmed(in):
		g.levelSel = g.prog.level - 1
		if g.prog.level < len(g.prog.unlocked) && g.prog.unlocked[g.prog.level] {
			g.levelSel = g.prog.level
		}
		g.setState(StateLevelSelect)
	case in.Has(core.ActionBack):
		g.levelSel = g.prog.level - 1
		g.setState(StateLevelSelect)
	}
}

func (g *Game) updateVersus(in core.InputFrame, dt float64) {
	if in.Has(core.ActionBack) {
		g.leaveToMenu()
		return
	}
	if g.round == nil {
		g.setState(StateMenu)
		return
	}

	ev := g.round.Step(
		g.bindings.Controls(core.Player1, in),
		g.bindings.Controls(core.Player2, in),
		dt, g.physicsDt(dt),
	)
	g.play(ev.Cues...)
	if ev.Over {
		res := g.round.Result()
		g.emit(core.Event{
			Kind:    core.EventVersusEnd,
			Mode:    string(ModeVersus),
			Seconds: res.Duration,
			Versus:  &res,
		})
		g.fadeTo(StateVersusEnd)
	}
}

func (g *Game) updateVersusEnd(in core.InputFrame) {
	if confirmed(in) || in.Has(core.ActionBack) {
		g.round = nil
		g.menuSel = 0
		g.setState(StateMenu)
	}
}
