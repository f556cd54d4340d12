// Package config provides YAML-based game configuration loading and
// difficulty presets for Jump Quest.
package config

// Config contains every tunable of the simulation and its screens.
// Distances are world units, speeds are units per second, times are seconds.
type Config struct {
	Physics    PhysicsConfig `yaml:"physics"`
	Player     PlayerConfig  `yaml:"player"`
	Enemy      EnemyConfig   `yaml:"enemy"`
	World      WorldConfig   `yaml:"world"`
	Scoring    ScoringConfig `yaml:"scoring"`
	Rules      RulesConfig   `yaml:"rules"`
	Timers     TimersConfig  `yaml:"timers"`
	Versus     VersusConfig  `yaml:"versus"`
	Difficulty Difficulty    `yaml:"difficulty"`
	Assist     AssistConfig  `yaml:"assist"`
	Input      InputConfig   `yaml:"input"`
}

// PhysicsConfig defines shared integration parameters.
type PhysicsConfig struct {
	Gravity          float64 `yaml:"gravity"`
	EnemyGravity     float64 `yaml:"enemy_gravity"`
	TerminalVelocity float64 `yaml:"terminal_velocity"`
	Friction         float64 `yaml:"friction"` // horizontal velocity multiplier per grounded update
}

// PlayerConfig defines player movement and size.
type PlayerConfig struct {
	Speed            float64 `yaml:"speed"`
	JumpForce        float64 `yaml:"jump_force"` // negative is up
	Width            float64 `yaml:"width"`
	Height           float64 `yaml:"height"`
	BounceMultiplier float64 `yaml:"bounce_multiplier"` // fraction of jump force after a stomp
	AnimFrameTime    float64 `yaml:"anim_frame_time"`
	AnimFrames       int     `yaml:"anim_frames"`
	AnimMinSpeed     float64 `yaml:"anim_min_speed"`
}

// EnemyConfig defines patrol behavior and stomp thresholds.
type EnemyConfig struct {
	Speed         float64     `yaml:"speed"`
	Width         float64     `yaml:"width"`
	Height        float64     `yaml:"height"`
	EdgeOffset    float64     `yaml:"edge_offset"`
	EdgeProbeY    float64     `yaml:"edge_probe_y"`
	PushOffset    float64     `yaml:"push_offset"`
	LandThreshold float64     `yaml:"land_threshold"`
	Stomp         StompConfig `yaml:"stomp"`
}

// StompConfig holds the two-part "landed on top" test thresholds.
type StompConfig struct {
	MinVelocity float64 `yaml:"min_velocity"`
	CenterSlack float64 `yaml:"center_slack"`
	TopFraction float64 `yaml:"top_fraction"`
}

// WorldConfig defines level geometry shared by all levels.
type WorldConfig struct {
	GroundY         float64 `yaml:"ground_y"`
	Width           float64 `yaml:"width"`
	CompleteX       float64 `yaml:"complete_x"`
	FallDeathY      float64 `yaml:"fall_death_y"`
	ViewWidth       float64 `yaml:"view_width"`
	ViewHeight      float64 `yaml:"view_height"`
	CollisionMargin float64 `yaml:"collision_margin"`
	CoinSize        float64 `yaml:"coin_size"`
	CheckpointW     float64 `yaml:"checkpoint_width"`
	CheckpointH     float64 `yaml:"checkpoint_height"`
}

// ScoringConfig defines point awards.
type ScoringConfig struct {
	Coin          int     `yaml:"coin"`
	Enemy         int     `yaml:"enemy"`
	Checkpoint    int     `yaml:"checkpoint"`
	LevelComplete int     `yaml:"level_complete"`
	TimeBonus     float64 `yaml:"time_bonus"` // points per remaining second
}

// RulesConfig defines lives, time and level count.
type RulesConfig struct {
	Lives     int     `yaml:"lives"`
	MaxLives  int     `yaml:"max_lives"`
	TimeLimit float64 `yaml:"time_limit"`
	Levels    int     `yaml:"levels"`
	SaveSlots int     `yaml:"save_slots"`
}

// TimersConfig defines screen and feedback timers.
type TimersConfig struct {
	Respawn          float64 `yaml:"respawn"`
	GameOverFade     float64 `yaml:"game_over_fade"`
	LevelStartFade   float64 `yaml:"level_start_fade"`
	Transition       float64 `yaml:"transition"`
	Splash           float64 `yaml:"splash"`
	Notice           float64 `yaml:"notice"`
	Footstep         float64 `yaml:"footstep"`
	FootstepMinSpeed float64 `yaml:"footstep_min_speed"`
}

// VersusConfig defines the competitive round.
type VersusConfig struct {
	Duration   float64 `yaml:"duration"`
	Cooldown   float64 `yaml:"cooldown"`
	BasePoints int     `yaml:"base_points"`
	StreakCap  int     `yaml:"streak_cap"`
	Spawn1X    float64 `yaml:"spawn1_x"`
	Spawn2X    float64 `yaml:"spawn2_x"`
}

// AssistConfig defines the accessibility slow-motion mode.
type AssistConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SlowMotion float64 `yaml:"slow_motion"`
}

// InputConfig defines how terminal key events become held keys.
type InputConfig struct {
	// HoldMillis is how long a key counts as held after its last press or
	// auto-repeat, since terminals do not report key releases.
	HoldMillis int `yaml:"hold_millis"`
}
