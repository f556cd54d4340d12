package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) error: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("embedded YAML differs from Default():\n got  %+v\n want %+v", cfg, Default())
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := []byte("physics:\n  gravity: 1000\ndifficulty: hard\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Physics.Gravity != 1000 {
		t.Errorf("Gravity = %v, expected 1000", cfg.Physics.Gravity)
	}
	if cfg.Difficulty != DifficultyHard {
		t.Errorf("Difficulty = %v, expected hard", cfg.Difficulty)
	}
	// Untouched fields keep their defaults.
	if cfg.Physics.TerminalVelocity != 500 {
		t.Errorf("TerminalVelocity = %v, expected 500", cfg.Physics.TerminalVelocity)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of missing file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("physics:\n  friction: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load() with friction > 1 should fail validation")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"positive jump force", func(c *Config) { c.Player.JumpForce = 10 }},
		{"zero lives", func(c *Config) { c.Rules.Lives = 0 }},
		{"view wider than world", func(c *Config) { c.World.ViewWidth = 5000 }},
		{"bad slow motion", func(c *Config) { c.Assist.SlowMotion = 0 }},
		{"unknown difficulty", func(c *Config) { c.Difficulty = "nightmare" }},
		{"negative streak cap", func(c *Config) { c.Versus.StreakCap = -1 }},
		{"streak cap too large", func(c *Config) { c.Versus.StreakCap = MaxStreakCap + 1 }},
		{"zero base points", func(c *Config) { c.Versus.BasePoints = 0 }},
		{"zero transition", func(c *Config) { c.Timers.Transition = 0 }},
		{"negative round duration", func(c *Config) { c.Versus.Duration = -1 }},
		{"zero respawn cooldown", func(c *Config) { c.Versus.Cooldown = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, expected error")
			}
		})
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestDifficulty(t *testing.T) {
	tests := []struct {
		in         string
		expected   Difficulty
		multiplier float64
		next       Difficulty
	}{
		{"easy", DifficultyEasy, 0.75, DifficultyNormal},
		{"", DifficultyNormal, 1.0, DifficultyHard},
		{" HARD ", DifficultyHard, 1.25, DifficultyInsane},
		{"insane", DifficultyInsane, 1.5, DifficultyEasy},
	}

	for _, tc := range tests {
		d, err := ParseDifficulty(tc.in)
		if err != nil {
			t.Fatalf("ParseDifficulty(%q) error: %v", tc.in, err)
		}
		if d != tc.expected {
			t.Errorf("ParseDifficulty(%q) = %v, expected %v", tc.in, d, tc.expected)
		}
		if d.Multiplier() != tc.multiplier {
			t.Errorf("%v.Multiplier() = %v, expected %v", d, d.Multiplier(), tc.multiplier)
		}
		if d.Next() != tc.next {
			t.Errorf("%v.Next() = %v, expected %v", d, d.Next(), tc.next)
		}
	}

	if _, err := ParseDifficulty("nightmare"); err == nil {
		t.Error("ParseDifficulty(nightmare) should fail")
	}
	if DifficultyInsane.Label() != "INSANE" {
		t.Errorf("Label() = %q", DifficultyInsane.Label())
	}
}
