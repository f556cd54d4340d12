// Package session runs one loaded level: its entities, the per-frame
// simulation for one or two players, and the terminal conditions.
package session

import (
	"github.com/vovakirdan/jump-quest/internal/config"
	"github.com/vovakirdan/jump-quest/internal/core"
	"github.com/vovakirdan/jump-quest/internal/games/jumpquest/actor"
	"github.com/vovakirdan/jump-quest/internal/games/jumpquest/levels"
)

const (
	spawnX           = 50.0  // start x without a checkpoint
	checkpointOffset = 50.0  // start x past the stored checkpoint
	partnerOffset    = 100.0 // second player's distance from the first
)

// Rules are the level-wide constants a session plays by.
type Rules struct {
	GroundY          float64
	FallDeathY       float64
	CompleteX        float64
	Margin           float64
	CoinSize         float64
	CheckpointW      float64
	CheckpointH      float64
	ViewWidth        float64
	TimeLimit        float64
	StartFade        float64
	Respawn          float64
	Footstep         float64
	FootstepMinSpeed float64
	Bounce           float64
	Scoring          config.ScoringConfig
}

// RulesFromConfig extracts session rules from the game configuration.
func RulesFromConfig(cfg config.Config) Rules {
	return Rules{
		GroundY:          cfg.World.GroundY,
		FallDeathY:       cfg.World.FallDeathY,
		CompleteX:        cfg.World.CompleteX,
		Margin:           cfg.World.CollisionMargin,
		CoinSize:         cfg.World.CoinSize,
		CheckpointW:      cfg.World.CheckpointW,
		CheckpointH:      cfg.World.CheckpointH,
		ViewWidth:        cfg.World.ViewWidth,
		TimeLimit:        cfg.Rules.TimeLimit,
		StartFade:        cfg.Timers.LevelStartFade,
		Respawn:          cfg.Timers.Respawn,
		Footstep:         cfg.Timers.Footstep,
		FootstepMinSpeed: cfg.Timers.FootstepMinSpeed,
		Bounce:           cfg.Player.BounceMultiplier,
		Scoring:          cfg.Scoring,
	}
}

// Coin is a collectible.
type Coin struct {
	X, Y      float64
	Collected bool
}

// Checkpoint is a respawn marker, activated on first touch.
type Checkpoint struct {
	X, Y      float64
	Activated bool
}

// PlayerState is a player plus the per-player timers the session keeps.
type PlayerState struct {
	*actor.Player
	ID      core.PlayerID
	Respawn float64 // seconds until control returns; <= 0 means active

	footstep float64
	// contact is the box after integration and before platform
	// resolution; enemy contact is judged against it.
	contact core.Box
}

// Active reports whether the player currently has control.
func (ps *PlayerState) Active() bool {
	return ps.Respawn <= 0
}

// LoadOptions carries state restored from a save or a previous attempt.
type LoadOptions struct {
	UseCheckpoint bool
	Checkpoint    *core.Point
	Time          *float64
	Coins         *int
	Coop          bool
}

// Session is one loaded level.
type Session struct {
	Layout      levels.Layout
	Platforms   []core.Box
	Enemies     []*actor.Enemy
	Coins       []Coin
	Checkpoints []Checkpoint
	Players     []*PlayerState
	Camera      Camera

	TimeRemaining  float64
	CoinsCollected int
	LastCheckpoint *core.Point
	StartFade      float64

	rules  Rules
	params actor.Params
}

// Load instantiates a level. With UseCheckpoint and a stored checkpoint,
// every checkpoint up to it starts activated and the player starts just
// past it. Restored coins mark the first N coins collected.
func Load(layout levels.Layout, opts LoadOptions, rules Rules, params actor.Params) *Session {
	s := &Session{
		Layout:        layout,
		Platforms:     layout.Platforms,
		Enemies:       make([]*actor.Enemy, len(layout.Enemies)),
		Coins:         make([]Coin, len(layout.Coins)),
		Checkpoints:   make([]Checkpoint, len(layout.Checkpoints)),
		TimeRemaining: rules.TimeLimit,
		StartFade:     rules.StartFade,
		rules:         rules,
		params:        params,
	}

	var cp *core.Point
	if opts.UseCheckpoint && opts.Checkpoint != nil {
		c := *opts.Checkpoint
		cp = &c
		s.LastCheckpoint = &c
	}

	for i, p := range layout.Checkpoints {
		s.Checkpoints[i] = Checkpoint{X: p.X, Y: p.Y}
		if cp != nil && p.X <= cp.X {
			s.Checkpoints[i].Activated = true
		}
	}

	for i, p := range layout.Enemies {
		e := actor.NewEnemy(p.X, p.Y, params.Enemy)
		e.SnapTo(s.Platforms, rules.GroundY)
		s.Enemies[i] = e
	}

	for i, p := range layout.Coins {
		s.Coins[i] = Coin{X: p.X, Y: p.Y}
	}
	if opts.Coins != nil {
		n := core.Clamp(*opts.Coins, 0, len(s.Coins))
		for i := range n {
			s.Coins[i].Collected = true
		}
		s.CoinsCollected = n
	}

	if opts.Time != nil {
		s.TimeRemaining = *opts.Time
	}

	x := spawnX
	if cp != nil {
		x = cp.X + checkpointOffset
	}
	y := rules.GroundY - params.Player.Height
	s.Players = append(s.Players, &PlayerState{
		Player: actor.NewPlayer(x, y, params.Player),
		ID:     core.Player1,
	})
	if opts.Coop {
		s.Players = append(s.Players, &PlayerState{
			Player: actor.NewPlayer(x+partnerOffset, y, params.Player),
			ID:     core.Player2,
		})
	}

	s.follow()
	return s
}

// TotalCoins returns the number of coins in the level.
func (s *Session) TotalCoins() int {
	return len(s.Coins)
}

// Coop reports whether two players share the level.
func (s *Session) Coop() bool {
	return len(s.Players) > 1
}

// Player returns the state for id, or nil.
func (s *Session) Player(id core.PlayerID) *PlayerState {
	for _, ps := range s.Players {
		if ps.ID == id {
			return ps
		}
	}
	return nil
}

// WorldWidth returns the horizontal extent players are clamped to.
func (s *Session) WorldWidth() float64 {
	return s.Layout.Width
}

// Complete reports whether every player satisfies the completion
// predicate: past the finish line or all coins collected. A level with no
// coins is complete by the second clause.
func (s *Session) Complete() bool {
	if s.CoinsCollected >= s.TotalCoins() {
		return true
	}
	for _, ps := range s.Players {
		if ps.X <= s.rules.CompleteX {
			return false
		}
	}
	return true
}

// CompletionBonus returns the level-complete award for the time left.
func (s *Session) CompletionBonus() int {
	return s.rules.Scoring.LevelComplete + int(s.TimeRemaining*s.rules.Scoring.TimeBonus)
}

// Respawn starts the co-op respawn timer for id.
func (s *Session) Respawn(id core.PlayerID) {
	if ps := s.Player(id); ps != nil {
		ps.Respawn = s.rules.Respawn
	}
}

// relocate puts a co-op player back at the last checkpoint or the start.
func (s *Session) relocate(ps *PlayerState) {
	offset := 0.0
	if ps.ID == core.Player2 {
		offset = partnerOffset
	}
	if s.LastCheckpoint != nil {
		ps.Reset(s.LastCheckpoint.X+offset, s.LastCheckpoint.Y-ps.H)
		return
	}
	ps.Reset(spawnX+offset, s.rules.GroundY-ps.H)
}

// follow centres the camera on the player, or the midpoint of both.
func (s *Session) follow() {
	var sum float64
	for _, ps := range s.Players {
		sum += ps.X + ps.W/2
	}
	s.Camera.Follow(sum/float64(len(s.Players)), s.rules.ViewWidth, s.WorldWidth())
}
