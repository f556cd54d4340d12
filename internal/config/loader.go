package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file name looked up in the search path.
const FileName = "jumpquest.yaml"

// Load loads the game configuration. Values missing from a file keep
// their defaults.
// Search order: customPath -> ~/.jumpquest/configs/jumpquest.yaml -> ./configs/jumpquest.yaml -> embedded default
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Default(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Default(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", FileName)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the built-in defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// MaxStreakCap bounds versus.streak_cap so streak awards cannot overflow.
const MaxStreakCap = 30

// Validate rejects values that would break the simulation.
func (c Config) Validate() error {
	switch {
	case c.Physics.Friction <= 0 || c.Physics.Friction > 1:
		return fmt.Errorf("physics.friction must be in (0, 1], got %v", c.Physics.Friction)
	case c.Physics.TerminalVelocity <= 0:
		return fmt.Errorf("physics.terminal_velocity must be positive, got %v", c.Physics.TerminalVelocity)
	case c.Player.JumpForce >= 0:
		return fmt.Errorf("player.jump_force must be negative (up), got %v", c.Player.JumpForce)
	case c.Player.Width <= 0 || c.Player.Height <= 0:
		return fmt.Errorf("player size must be positive")
	case c.World.ViewWidth > c.World.Width:
		return fmt.Errorf("world.view_width %v exceeds world.width %v", c.World.ViewWidth, c.World.Width)
	case c.Rules.Levels <= 0:
		return fmt.Errorf("rules.levels must be positive, got %d", c.Rules.Levels)
	case c.Rules.Lives <= 0:
		return fmt.Errorf("rules.lives must be positive, got %d", c.Rules.Lives)
	case c.Rules.SaveSlots <= 0:
		return fmt.Errorf("rules.save_slots must be positive, got %d", c.Rules.SaveSlots)
	case c.Assist.SlowMotion <= 0 || c.Assist.SlowMotion > 1:
		return fmt.Errorf("assist.slow_motion must be in (0, 1], got %v", c.Assist.SlowMotion)
	case c.Timers.Transition <= 0:
		return fmt.Errorf("timers.transition must be positive, got %v", c.Timers.Transition)
	case c.Versus.Duration <= 0:
		return fmt.Errorf("versus.duration must be positive, got %v", c.Versus.Duration)
	case c.Versus.Cooldown <= 0:
		return fmt.Errorf("versus.cooldown must be positive, got %v", c.Versus.Cooldown)
	case c.Versus.BasePoints <= 0:
		return fmt.Errorf("versus.base_points must be positive, got %d", c.Versus.BasePoints)
	case c.Versus.StreakCap < 0 || c.Versus.StreakCap > MaxStreakCap:
		return fmt.Errorf("versus.streak_cap must be in [0, %d], got %d", MaxStreakCap, c.Versus.StreakCap)
	}
	if _, err := ParseDifficulty(string(c.Difficulty)); err != nil {
		return err
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".jumpquest", "configs", filename)
}
