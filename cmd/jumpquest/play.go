package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/jump-quest/internal/audio"
	"github.com/vovakirdan/jump-quest/internal/core"
	"github.com/vovakirdan/jump-quest/internal/games/jumpquest"
	"github.com/vovakirdan/jump-quest/internal/platform/tui"
	"github.com/vovakirdan/jump-quest/internal/platform/web"
	"github.com/vovakirdan/jump-quest/internal/registry"
	"github.com/vovakirdan/jump-quest/internal/storage"
	"github.com/vovakirdan/jump-quest/internal/telemetry"
)

var (
	flagLevel    int
	flagMode     string
	flagSlot     int
	flagAssist   bool
	flagMute     bool
	flagVolume   float64
	flagSpectate string
	flagLogFile  string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Jump Quest",
	Long: `Start Jump Quest in this terminal.

Without flags the game opens on the title screen. --level and --mode skip
the menus, --slot continues a saved game.

Controls:
  Player 1     A/D move, W jump
  Player 2     Left/Right move, Up jump
  Menus        Arrows or WASD, Enter/Space select, Esc back
  P            Pause
  Ctrl+S       Screenshot to ~/.jumpquest/screenshots
  Ctrl+C       Quit immediately

Examples:
  jumpquest play
  jumpquest play --level 3
  jumpquest play --mode versus
  jumpquest play --slot 1
  jumpquest play --difficulty hard --assist
  jumpquest play --spectate :8080`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Start directly at this level (1-based)")
	playCmd.Flags().StringVar(&flagMode, "mode", "", "Mode for --level: solo, coop or versus")
	playCmd.Flags().IntVar(&flagSlot, "slot", 0, "Continue from this save slot (1-based)")
	playCmd.Flags().BoolVar(&flagAssist, "assist", false, "Start with slow-motion assist enabled")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Start with sound off")
	playCmd.Flags().Float64Var(&flagVolume, "volume", 0.6, "Master volume 0..1")
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Also serve spectators over HTTP on this address")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "~/.jumpquest/jumpquest.log", "Log file while playing")
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// playLogger writes to a file, since the game owns the terminal.
func playLogger() (*log.Logger, io.Closer) {
	path := expandHome(flagLogFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600); err == nil {
			logger, lerr := newLogger(f, "jumpquest")
			if lerr != nil {
				fail("%v", lerr)
			}
			return logger, f
		}
	}
	logger, err := newLogger(io.Discard, "jumpquest")
	if err != nil {
		fail("%v", err)
	}
	return logger, io.NopCloser(nil)
}

// openAudio opens the speaker, falling back to silence without a device.
func openAudio(logger *log.Logger) (core.Audio, func()) {
	spk := audio.NewSpeaker(flagVolume)
	var sink core.Audio = spk
	closeFn := spk.Close
	if err := spk.Init(); err != nil {
		logger.Warn("no audio device, playing silently", "err", err)
		sink, closeFn = audio.NewSilent(), func() {}
	}
	if flagMute {
		sink.SetEnabled(false)
	}
	return audio.Observe(sink, telemetry.RecordCue), closeFn
}

func runPlay(cmd *cobra.Command, _ []string) {
	mode, err := jumpquest.ParseMode(flagMode)
	if err != nil {
		fail("%v", err)
	}
	if flagMode != "" && mode != jumpquest.ModeVersus && flagLevel == 0 {
		flagLevel = 1
	}

	logger, logCloser := playLogger()
	defer logCloser.Close()

	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}
	if flagAssist {
		cfg.Assist.Enabled = true
	}

	pack, err := loadLevels()
	if err != nil {
		fail("%v", err)
	}

	profiles, err := openProfiles(expandHome(flagSaves), cfg.Rules.SaveSlots, logger)
	if err != nil {
		fail("cannot open save slots: %v", err)
	}
	if flagSlot != 0 {
		if profiles == nil {
			fail("--slot needs a save key in %s", storage.KeyEnv)
		}
		if flagSlot < 1 || flagSlot > profiles.Slots() {
			fail("--slot must be between 1 and %d", profiles.Slots())
		}
	}

	sink, closeAudio := openAudio(logger)
	defer closeAudio()

	jumpquest.SetDefaults(jumpquest.Options{
		Config:     cfg,
		Levels:     pack,
		Profiles:   profileStore(profiles),
		Audio:      sink,
		StartLevel: flagLevel,
		StartMode:  mode,
		Continue:   flagSlot > 0,
		Slot:       flagSlot - 1,
	})
	game, err := registry.Create(jumpquest.GameID)
	if err != nil {
		fail("cannot create game: %v (registered: %s)", err, strings.Join(registry.IDs(), ", "))
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "err", err)
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	tcfg := tui.Config{
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Hold:   time.Duration(cfg.Input.HoldMillis) * time.Millisecond,
		Logger: logger,
	}
	if store != nil {
		tcfg.Recorder = store
	}

	if flagSpectate != "" {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		hub := web.NewHub(web.HubConfig{Logger: logger})
		tcfg.Publisher = hub.Publisher(fmt.Sprintf("local-%d", time.Now().Unix()))
		rcfg := web.RouterConfig{Hub: hub, Logger: logger}
		if store != nil {
			rcfg.Scores = store
		}
		go func() {
			if err := web.Serve(ctx, flagSpectate, rcfg); err != nil {
				logger.Error("spectator server stopped", "err", err)
			}
		}()
	}

	if err := tui.Run(game, tcfg); err != nil {
		fail("running game: %v", err)
	}
}
