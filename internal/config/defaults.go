package config

import (
	_ "embed"
)

//go:embed defaults/jumpquest.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Physics: PhysicsConfig{
			Gravity:          800,
			EnemyGravity:     400,
			TerminalVelocity: 500,
			Friction:         0.85,
		},
		Player: PlayerConfig{
			Speed:            200,
			JumpForce:        -400,
			Width:            64,
			Height:           64,
			BounceMultiplier: 0.5,
			AnimFrameTime:    0.08,
			AnimFrames:       4,
			AnimMinSpeed:     5,
		},
		Enemy: EnemyConfig{
			Speed:         50,
			Width:         24,
			Height:        24,
			EdgeOffset:    5,
			EdgeProbeY:    5,
			PushOffset:    1,
			LandThreshold: 20,
			Stomp: StompConfig{
				MinVelocity: -50,
				CenterSlack: 10,
				TopFraction: 0.7,
			},
		},
		World: WorldConfig{
			GroundY:         550,
			Width:           4200,
			CompleteX:       4000,
			FallDeathY:      600,
			ViewWidth:       800,
			ViewHeight:      600,
			CollisionMargin: 100,
			CoinSize:        16,
			CheckpointW:     40,
			CheckpointH:     60,
		},
		Scoring: ScoringConfig{
			Coin:          100,
			Enemy:         200,
			Checkpoint:    50,
			LevelComplete: 1000,
			TimeBonus:     10,
		},
		Rules: RulesConfig{
			Lives:     3,
			MaxLives:  99,
			TimeLimit: 300,
			Levels:    5,
			SaveSlots: 3,
		},
		Timers: TimersConfig{
			Respawn:          1.5,
			GameOverFade:     1.0,
			LevelStartFade:   1.0,
			Transition:       1.0,
			Splash:           2.5,
			Notice:           5.0,
			Footstep:         0.3,
			FootstepMinSpeed: 10,
		},
		Versus: VersusConfig{
			Duration:   600,
			Cooldown:   2.0,
			BasePoints: 200,
			StreakCap:  10,
			Spawn1X:    100,
			Spawn2X:    700,
		},
		Difficulty: DifficultyNormal,
		Assist: AssistConfig{
			Enabled:    false,
			SlowMotion: 0.7,
		},
		Input: InputConfig{
			HoldMillis: 150,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
