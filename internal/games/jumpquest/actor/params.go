// Package actor integrates player and enemy motion and arbitrates
// contact between them.
package actor

import "github.com/vovakirdan/jump-quest/internal/config"

// PlayerParams configures player physics.
type PlayerParams struct {
	Gravity          float64
	TerminalVelocity float64
	Friction         float64
	Speed            float64
	JumpForce        float64
	Width, Height    float64
	AnimFrameTime    float64
	AnimFrames       int
	AnimMinSpeed     float64
}

// EnemyParams configures enemy physics and patrol.
type EnemyParams struct {
	Gravity          float64
	TerminalVelocity float64
	Speed            float64
	Width, Height    float64
	EdgeOffset       float64 // horizontal probe distance and reversal nudge
	EdgeProbeY       float64 // probe depth below the feet
	PushOffset       float64 // separation after bouncing off a platform side
	LandThreshold    float64 // max top penetration that still counts as landing
}

// StompThresholds configures IsStomp.
type StompThresholds struct {
	MinVelocity float64 // attacker vy must be at least this for the center test
	CenterSlack float64 // allowed distance below the victim's center
	TopFraction float64 // fraction of victim height for the falling test
}

// Params bundles everything actors need.
type Params struct {
	Player PlayerParams
	Enemy  EnemyParams
	Stomp  StompThresholds
}

// ParamsFromConfig derives actor parameters. The difficulty multiplier
// scales enemy patrol speed only.
func ParamsFromConfig(cfg config.Config) Params {
	return Params{
		Player: PlayerParams{
			Gravity:          cfg.Physics.Gravity,
			TerminalVelocity: cfg.Physics.TerminalVelocity,
			Friction:         cfg.Physics.Friction,
			Speed:            cfg.Player.Speed,
			JumpForce:        cfg.Player.JumpForce,
			Width:            cfg.Player.Width,
			Height:           cfg.Player.Height,
			AnimFrameTime:    cfg.Player.AnimFrameTime,
			AnimFrames:       cfg.Player.AnimFrames,
			AnimMinSpeed:     cfg.Player.AnimMinSpeed,
		},
		Enemy: EnemyParams{
			Gravity:          cfg.Physics.EnemyGravity,
			TerminalVelocity: cfg.Physics.TerminalVelocity,
			Speed:            cfg.Enemy.Speed * cfg.Difficulty.Multiplier(),
			Width:            cfg.Enemy.Width,
			Height:           cfg.Enemy.Height,
			EdgeOffset:       cfg.Enemy.EdgeOffset,
			EdgeProbeY:       cfg.Enemy.EdgeProbeY,
			PushOffset:       cfg.Enemy.PushOffset,
			LandThreshold:    cfg.Enemy.LandThreshold,
		},
		Stomp: StompThresholds{
			MinVelocity: cfg.Enemy.Stomp.MinVelocity,
			CenterSlack: cfg.Enemy.Stomp.CenterSlack,
			TopFraction: cfg.Enemy.Stomp.TopFraction,
		},
	}
}

// DefaultParams returns parameters for the built-in configuration.
func DefaultParams() Params {
	return ParamsFromConfig(config.Default())
}
