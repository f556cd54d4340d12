package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/jump-quest/internal/config"
	"github.com/vovakirdan/jump-quest/internal/core"
	"github.com/vovakirdan/jump-quest/internal/games/jumpquest/levels"
	"github.com/vovakirdan/jump-quest/internal/storage"
)

// newLogger builds the command logger at --log-level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// loadConfig loads the game config and applies --difficulty.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		d, err := config.ParseDifficulty(flagDifficulty)
		if err != nil {
			return cfg, err
		}
		cfg.Difficulty = d
	}
	return cfg, nil
}

// loadLevels returns the --levels pack, or the built-in campaign.
func loadLevels() (*levels.Pack, error) {
	if flagLevels == "" {
		return levels.Builtin(), nil
	}
	return levels.NewLoader(expandHome(flagLevels)).Load()
}

// openProfiles opens the encrypted save slots under dir. Without a save
// key it returns nil and saving is disabled.
func openProfiles(dir string, slots int, logger *log.Logger) (*storage.FileStore, error) {
	key, err := storage.KeyFromEnv(storage.KeyEnv)
	if errors.Is(err, storage.ErrMissingKey) {
		logger.Warn("saving disabled: no save key", "env", storage.KeyEnv, "hint", "run jumpquest keygen")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return storage.NewFileStore(dir, key, slots)
}

// profileStore converts a possibly nil *FileStore into the interface
// without producing a typed nil.
func profileStore(fs *storage.FileStore) core.ProfileStore {
	if fs == nil {
		return nil
	}
	return fs
}

// userDir maps an SSH user name to a safe directory name.
func userDir(user string) string {
	if user == "" {
		return "guest"
	}
	var b strings.Builder
	for _, r := range user {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
