package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/jump-quest/internal/config"
	"github.com/vovakirdan/jump-quest/internal/storage"
)

func TestUserDir(t *testing.T) {
	tests := []struct {
		user     string
		expected string
	}{
		{"", "guest"},
		{"alice", "alice"},
		{"bob_2-x", "bob_2-x"},
		{"../etc", "___etc"},
		{"a b/c", "a_b_c"},
	}
	for _, tt := range tests {
		t.Run(tt.user, func(t *testing.T) {
			if got := userDir(tt.user); got != tt.expected {
				t.Errorf("userDir(%q) = %q, expected %q", tt.user, got, tt.expected)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	tests := []struct {
		in       string
		expected string
	}{
		{"~/scores.db", "/home/tester/scores.db"},
		{"~", "/home/tester"},
		{"/tmp/x", "/tmp/x"},
		{"rel/~x", "rel/~x"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := expandHome(tt.in); got != tt.expected {
				t.Errorf("expandHome(%q) = %q, expected %q", tt.in, got, tt.expected)
			}
		})
	}
}

func TestLoadConfigDifficulty(t *testing.T) {
	flagConfig, flagDifficulty = "", "hard"
	t.Cleanup(func() { flagDifficulty = "" })
	t.Setenv("HOME", t.TempDir())

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Difficulty != config.DifficultyHard {
		t.Errorf("difficulty = %v, expected hard", cfg.Difficulty)
	}

	flagDifficulty = "nightmare"
	if _, err := loadConfig(); err == nil {
		t.Error("unknown difficulty accepted")
	}
}

func TestOpenProfiles(t *testing.T) {
	logger := log.New(&bytes.Buffer{})
	dir := filepath.Join(t.TempDir(), "saves")

	t.Setenv(storage.KeyEnv, "")
	fs, err := openProfiles(dir, 3, logger)
	if err != nil || fs != nil {
		t.Errorf("without key = %v, %v; expected nil, nil", fs, err)
	}
	if profileStore(fs) != nil {
		t.Error("profileStore(nil) is not a nil interface")
	}

	t.Setenv(storage.KeyEnv, "not-base64!")
	if _, err := openProfiles(dir, 3, logger); err == nil {
		t.Error("bad key accepted")
	}

	key, err := storage.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	t.Setenv(storage.KeyEnv, key)
	fs, err = openProfiles(dir, 3, logger)
	if err != nil || fs == nil {
		t.Fatalf("with key = %v, %v; expected a store", fs, err)
	}
	if fs.Slots() != 3 {
		t.Errorf("slots = %d, expected 3", fs.Slots())
	}
}

func TestKeygen(t *testing.T) {
	var out bytes.Buffer
	keygenCmd.SetOut(&out)
	if err := keygenCmd.RunE(keygenCmd, nil); err != nil {
		t.Fatalf("keygen: %v", err)
	}
	if _, err := storage.DecodeKey(strings.TrimSpace(out.String())); err != nil {
		t.Errorf("keygen output does not decode: %v", err)
	}
}
