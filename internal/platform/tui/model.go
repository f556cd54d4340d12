package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/jump-quest/internal/core"
	"github.com/vovakirdan/jump-quest/internal/games/jumpquest"
	"github.com/vovakirdan/jump-quest/internal/platform/web"
	"github.com/vovakirdan/jump-quest/internal/registry"
	"github.com/vovakirdan/jump-quest/internal/storage"
	"github.com/vovakirdan/jump-quest/internal/telemetry"
)

// Recorder persists game events. storage.Store implements it.
type Recorder interface {
	Record(e core.Event) error
}

type snapshotter interface {
	Snapshot() jumpquest.Snapshot
}

// Config wires a Model to the rest of the platform. Every field but
// Runtime is optional.
type Config struct {
	Runtime   core.RuntimeConfig
	Hold      time.Duration      // key hold window
	Recorder  Recorder           // score database
	Publisher *web.Publisher     // spectator stream
	Logger    *log.Logger
	Renderer  *lipgloss.Renderer // nil uses the process terminal
	// ScreenshotDir receives ctrl+s captures; empty uses ~/.jumpquest/screenshots.
	ScreenshotDir string
}

// Model is the Bubble Tea model running one game.
type Model struct {
	game     registry.Game
	screen   *core.Screen
	painter  *Painter
	cfg      Config
	keys     *KeyMapper
	frame    *core.InputFrame
	state    core.GameState
	quitting bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg Config) Model {
	if cfg.Runtime.TickRate <= 0 {
		cfg.Runtime.TickRate = 60
	}
	if cfg.Runtime.Seed == 0 {
		cfg.Runtime.Seed = time.Now().UnixNano()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	frame := core.NewInputFrame()
	return Model{
		game:    game,
		screen:  core.NewScreen(cfg.Runtime.ScreenW, cfg.Runtime.ScreenH),
		painter: NewPainter(cfg.Renderer),
		cfg:     cfg,
		keys:    NewKeyMapper(cfg.Hold),
		frame:   &frame,
	}
}

// Init resets the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.cfg.Runtime)
	return tickCmd(m.cfg.Runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The simulation is in world units, so only the view changes.
		m.cfg.Runtime.ScreenW = msg.Width
		m.cfg.Runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case tea.FocusMsg, tea.BlurMsg:
		m.keys.Release()
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if err := m.saveScreenshot(); err != nil {
			m.cfg.Logger.Warn("screenshot failed", "err", err)
		}
		return m, nil
	}
	if m.keys.Apply(msg, m.frame, time.Now()) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.keys.FillHeld(m.frame, now)

	start := time.Now()
	result := m.game.Step(*m.frame)
	telemetry.RecordTick(time.Since(start))
	m.state = result.State
	m.frame.Clear()

	for _, e := range result.Events {
		m.record(e)
	}
	if s, ok := m.game.(snapshotter); ok && m.cfg.Publisher != nil {
		m.cfg.Publisher.Publish(s.Snapshot())
	}

	if m.state.Exit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, tickCmd(m.cfg.Runtime.TickRate)
}

func (m Model) record(e core.Event) {
	telemetry.RecordEvent(e)
	if e.Kind != core.EventScreenChange {
		m.cfg.Logger.Debug("game event", "kind", e.Kind, "mode", e.Mode, "level", e.Level, "score", e.Score)
	}
	if m.cfg.Recorder == nil {
		return
	}
	if err := m.cfg.Recorder.Record(e); err != nil && !errors.Is(err, storage.ErrNotRecorded) {
		m.cfg.Logger.Warn("could not record event", "kind", e.Kind, "err", err)
	}
}

// State returns the game state as of the last tick.
func (m Model) State() core.GameState {
	return m.state
}

func (m Model) saveScreenshot() error {
	m.game.Render(m.screen)

	dir := m.cfg.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		dir = filepath.Join(home, ".jumpquest", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	return os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	start := time.Now()
	m.game.Render(m.screen)
	out := m.painter.Paint(m.screen)
	telemetry.RecordRender(time.Since(start))
	return out
}

// Run plays game in the local terminal until it exits.
func Run(game registry.Game, cfg Config) error {
	done := telemetry.SessionStarted("local")
	defer done()
	defer cfg.Publisher.Close()

	p := tea.NewProgram(
		NewModel(game, cfg),
		tea.WithAltScreen(),
		tea.WithReportFocus(),
	)
	_, err := p.Run()
	return err
}
