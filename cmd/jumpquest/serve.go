package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/jump-quest/internal/audio"
	"github.com/vovakirdan/jump-quest/internal/games/jumpquest"
	"github.com/vovakirdan/jump-quest/internal/platform/tui"
	"github.com/vovakirdan/jump-quest/internal/platform/web"
	"github.com/vovakirdan/jump-quest/internal/registry"
	"github.com/vovakirdan/jump-quest/internal/storage"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
	flagOrigins     string
	flagPublishHz   float64
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host Jump Quest over SSH and spectators over HTTP",
	Long: `Start an SSH server where every connection plays its own game, and
optionally an HTTP server with scores, metrics and a live websocket stream
of running games.

Each SSH user gets separate save slots under <saves>/ssh/<user>.
All users share one leaderboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.jumpquest/host_key

HTTP endpoints (with --http):
  /healthz, /metrics, /api/scores, /api/versus, /api/levels,
  /api/sessions, /ws/spectate?session=<id>

Examples:
  jumpquest serve                        # SSH on :23234
  jumpquest serve --ssh :2222 --http :8080
  jumpquest serve --ssh "" --http :8080  # spectator server only

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (empty disables)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP server address (empty disables)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagOrigins, "origins", "http://localhost:*,http://127.0.0.1:*", "Comma-separated origins allowed for CORS and websockets")
	serveCmd.Flags().Float64Var(&flagPublishHz, "publish-hz", 10, "Spectator snapshots per second per game")
}

func runServe(cmd *cobra.Command, _ []string) {
	logger, err := newLogger(os.Stderr, "jumpquest-serve")
	if err != nil {
		fail("%v", err)
	}
	if flagSSHAddr == "" && flagHTTPAddr == "" {
		fail("nothing to serve: set --ssh or --http")
	}

	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}
	pack, err := loadLevels()
	if err != nil {
		fail("%v", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	var origins []string
	for _, o := range strings.Split(flagOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	var hub *web.Hub
	if flagHTTPAddr != "" {
		hub = web.NewHub(web.HubConfig{
			PublishHz: flagPublishHz,
			Origins:   origins,
			Logger:    logger.WithPrefix("jumpquest-hub"),
		})
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	errc := make(chan error, 2)
	running := 0
	start := func(fn func() error) {
		running++
		go func() { errc <- fn() }()
	}

	if flagSSHAddr != "" {
		savesRoot := filepath.Join(expandHome(flagSaves), "ssh")
		newGame := func(user string) (registry.Game, error) {
			profiles, err := openProfiles(filepath.Join(savesRoot, userDir(user)), cfg.Rules.SaveSlots, logger)
			if err != nil {
				return nil, err
			}
			return jumpquest.New(jumpquest.Options{
				Config:   cfg,
				Levels:   pack,
				Profiles: profileStore(profiles),
				Audio:    audio.NewSilent(),
			}), nil
		}

		server, err := tui.NewSSHServer(tui.SSHServerConfig{
			Address:     flagSSHAddr,
			HostKeyPath: flagHostKey,
			IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
			NewGame:     newGame,
			Recorder:    store,
			Hub:         hub,
			Hold:        time.Duration(cfg.Input.HoldMillis) * time.Millisecond,
			Logger:      logger.WithPrefix("jumpquest-ssh"),
		})
		if err != nil {
			fail("creating SSH server: %v", err)
		}
		logger.Info("Connect with: ssh localhost -p " + strings.TrimPrefix(flagSSHAddr, ":"))
		start(func() error { return server.Serve(ctx) })
	}

	if flagHTTPAddr != "" {
		rcfg := web.RouterConfig{
			Scores:      store,
			Hub:         hub,
			CORSOrigins: origins,
			Logger:      logger.WithPrefix("jumpquest-http"),
		}
		start(func() error { return web.Serve(ctx, flagHTTPAddr, rcfg) })
	}

	// The first server to fail stops the other.
	var firstErr error
	for range running {
		if err := <-errc; err != nil && !errors.Is(err, context.Canceled) {
			if firstErr == nil {
				firstErr = err
			}
			cancel()
		}
	}
	if firstErr != nil {
		fail("%v", firstErr)
	}
	logger.Info("stopped")
}
