package jumpquest

import (
	"math"

	"github.com/vovakirdan/jump-quest/internal/core"
)

// ActorSnapshot is one actor's position and motion.
type ActorSnapshot struct {
	ID       int     `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	W        float64 `json:"w"`
	H        float64 `json:"h"`
	VX       float64 `json:"vx"`
	VY       float64 `json:"vy"`
	OnGround bool    `json:"on_ground"`
	Active   bool    `json:"active"`
}

// Snapshot is the observable game state, streamed to spectators.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick       uint64  `json:"tick"`
	Screen     string  `json:"screen"`
	Mode       string  `json:"mode"`
	Player     string  `json:"player,omitempty"`
	Level      int     `json:"level"`
	Score      int     `json:"score"`
	Lives      int     `json:"lives"`
	Time       float64 `json:"time"`
	Coins      int     `json:"coins"`
	TotalCoins int     `json:"total_coins"`
	CameraX    float64 `json:"camera_x"`

	Players []ActorSnapshot `json:"players"`
	Enemies []ActorSnapshot `json:"enemies,omitempty"`

	Versus *core.VersusResult `json:"versus,omitempty"`
}

// Snapshot returns the current observable state.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:   g.tick,
		Screen: g.state.String(),
		Mode:   string(g.mode()),
		Player: g.prog.player,
		Level:  g.prog.level,
		Score:  g.prog.score,
		Lives:  g.prog.lives,
	}

	switch {
	case g.round != nil:
		r := g.round
		snap.Time = r.TimeRemaining
		snap.CameraX = r.Camera.X
		for _, f := range r.Fighters {
			snap.Players = append(snap.Players, ActorSnapshot{
				ID: int(f.ID), X: f.X, Y: f.Y, W: f.W, H: f.H,
				VX: f.VX, VY: f.VY, OnGround: f.OnGround, Active: f.Active(),
			})
		}
		res := r.Result()
		snap.Versus = &res
		snap.Score = max(res.P1Points, res.P2Points)

	case g.sess != nil:
		s := g.sess
		snap.Time = s.TimeRemaining
		snap.Coins = s.CoinsCollected
		snap.TotalCoins = s.TotalCoins()
		snap.CameraX = s.Camera.X
		for _, ps := range s.Players {
			snap.Players = append(snap.Players, ActorSnapshot{
				ID: int(ps.ID), X: ps.X, Y: ps.Y, W: ps.W, H: ps.H,
				VX: ps.VX, VY: ps.VY, OnGround: ps.OnGround, Active: ps.Active(),
			})
		}
		for i, e := range s.Enemies {
			if !e.Alive {
				continue
			}
			snap.Enemies = append(snap.Enemies, ActorSnapshot{
				ID: i, X: e.X, Y: e.Y, W: e.W, H: e.H,
				VX: e.VX, VY: e.VY, OnGround: e.OnGround, Active: true,
			})
		}
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Score)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Level)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Coins)      //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.Time)
	h = h*31 + math.Float64bits(snap.CameraX)

	for _, set := range [][]ActorSnapshot{snap.Players, snap.Enemies} {
		for _, a := range set {
			h = h*31 + uint64(a.ID) //#nosec G115 -- hash computation
			h = h*31 + math.Float64bits(a.X)
			h = h*31 + math.Float64bits(a.Y)
			h = h*31 + math.Float64bits(a.VX)
			h = h*31 + math.Float64bits(a.VY)
		}
	}
	return h
}
