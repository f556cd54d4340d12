// jumpquest is a 2D platformer for the terminal: a five-level campaign
// played solo or co-op, plus a versus arena.
//
// Usage:
//
//	jumpquest play                 - Start at the title screen
//	jumpquest play --level 3       - Jump straight into a level
//	jumpquest levels               - List levels
//	jumpquest levels preview <n>   - Render a level to PNG
//	jumpquest scores               - Show high scores
//	jumpquest saves                - List save slots
//	jumpquest serve                - Host games over SSH and spectators over HTTP
//	jumpquest keygen               - Print a new save key
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--db <path>           - Set database path (default: ~/.jumpquest/scores.db)
//	--config <path>       - Custom config YAML
//	--difficulty <name>   - easy, normal, hard or insane
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/jump-quest/internal/storage"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLevels     string
	flagSaves      string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "jumpquest",
	Short: "Jump Quest - a platformer for your terminal",
	Long: `Jump Quest is a side-scrolling platformer played in the terminal.
Run, jump and stomp through five levels alone or with a friend on the
same keyboard, or fight each other in the versus arena.

Available commands:
  play     - Play the game
  levels   - List, preview and export levels
  scores   - View high scores and versus results
  saves    - Manage save slots
  serve    - Host games over SSH and a spectator server over HTTP
  keygen   - Generate a save encryption key

Examples:
  jumpquest play
  jumpquest play --level 2 --mode coop
  jumpquest levels preview 1 --out level1.png
  jumpquest serve --ssh :2222 --http :8080`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadDotEnv()
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.jumpquest/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, insane")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Level pack file or directory (default: built-in campaign)")
	rootCmd.PersistentFlags().StringVar(&flagSaves, "saves", "~/.jumpquest/saves", "Save slot directory")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(savesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(keygenCmd)
}

// loadDotEnv reads .env from the working directory when present, so the
// save key can live next to the binary. Existing variables win.
func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("cannot load .env: %w", err)
}

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Print a new save encryption key",
	Long: `Print a random 32-byte key, base64 encoded, for encrypting save slots.

Store it in the ` + storage.KeyEnv + ` environment variable or in a .env file:
  echo "` + storage.KeyEnv + `=$(jumpquest keygen)" >> .env`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		key, err := storage.GenerateKey()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), key)
		return nil
	},
}
