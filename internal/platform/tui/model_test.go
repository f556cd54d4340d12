package tui

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/jump-quest/internal/core"
	"github.com/vovakirdan/jump-quest/internal/games/jumpquest"
	"github.com/vovakirdan/jump-quest/internal/platform/web"
	"github.com/vovakirdan/jump-quest/internal/storage"
)

type fakeGame struct {
	resets int
	steps  []core.InputFrame
	events []core.Event
	state  core.GameState
}

func (g *fakeGame) ID() string                   { return "fake" }
func (g *fakeGame) Title() string                { return "Fake" }
func (g *fakeGame) Reset(core.RuntimeConfig)     { g.resets++ }
func (g *fakeGame) State() core.GameState        { return g.state }
func (g *fakeGame) Snapshot() jumpquest.Snapshot { return jumpquest.Snapshot{Tick: uint64(len(g.steps))} }

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.steps = append(g.steps, in.Clone())
	res := core.StepResult{State: g.state, Events: g.events}
	g.events = nil
	return res
}

func (g *fakeGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "fake game")
}

type fakeRecorder struct {
	events []core.Event
	err    error
}

func (r *fakeRecorder) Record(e core.Event) error {
	r.events = append(r.events, e)
	return r.err
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return nm, cmd
}

func newTestModel(g *fakeGame, cfg Config) Model {
	cfg.Runtime = core.DefaultConfig()
	return NewModel(g, cfg)
}

func TestKeysReachNextStep(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g, Config{Hold: time.Second})
	m.Init()

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, runeKey('a'))
	m, cmd := update(t, m, TickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick returned no follow-up command")
	}

	if len(g.steps) != 1 {
		t.Fatalf("steps = %d, expected 1", len(g.steps))
	}
	in := g.steps[0]
	if !in.Has(core.ActionConfirm) || !in.Has(core.ActionLeft) {
		t.Errorf("actions = %v, expected Confirm and Left", in.Actions)
	}
	if !in.IsHeld("a") {
		t.Error("a not held on the step")
	}

	m, _ = update(t, m, TickMsg(time.Now()))
	if g.steps[1].Has(core.ActionConfirm) {
		t.Error("Confirm repeated on the following step")
	}
	if !g.steps[1].IsHeld("a") {
		t.Error("a released inside the hold window")
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestModel(&fakeGame{}, Config{})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c did not quit")
	}
	if m.View() != "" {
		t.Error("view not empty after quit")
	}
}

func TestExitStateQuits(t *testing.T) {
	g := &fakeGame{state: core.GameState{Exit: true}}
	m := newTestModel(g, Config{})
	_, cmd := update(t, m, TickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("exit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("exit state did not quit")
	}
}

func TestResizeKeepsGame(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g, Config{})
	m.Init()
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	if g.resets != 1 {
		t.Errorf("resets = %d, expected 1", g.resets)
	}
	if m.screen.Width() != 120 || m.screen.Height() != 40 {
		t.Errorf("screen = %dx%d, expected 120x40", m.screen.Width(), m.screen.Height())
	}
}

func TestEventsAreRecorded(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"saved", nil},
		{"not recorded", storage.ErrNotRecorded},
		{"store failure", errors.New("disk full")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &fakeRecorder{err: tt.err}
			g := &fakeGame{events: []core.Event{
				{Kind: core.EventLevelComplete, Mode: "solo", Level: 1, Score: 1500},
				{Kind: core.EventScreenChange, Screen: "level_complete"},
			}}
			m := newTestModel(g, Config{Recorder: rec})
			update(t, m, TickMsg(time.Now()))

			if len(rec.events) != 2 {
				t.Fatalf("recorded %d events, expected 2", len(rec.events))
			}
			if rec.events[0].Score != 1500 {
				t.Errorf("score = %d, expected 1500", rec.events[0].Score)
			}
		})
	}
}

func TestSnapshotsArePublished(t *testing.T) {
	hub := web.NewHub(web.HubConfig{PublishHz: 1000})
	g := &fakeGame{}
	m := newTestModel(g, Config{Publisher: hub.Publisher("local-1")})
	update(t, m, TickMsg(time.Now()))

	if got := hub.Sessions(); len(got) != 1 || got[0] != "local-1" {
		t.Errorf("sessions = %v, expected [local-1]", got)
	}
}

func TestScreenshot(t *testing.T) {
	dir := t.TempDir()
	m := newTestModel(&fakeGame{}, Config{ScreenshotDir: dir})
	update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("files = %d, expected 1", len(entries))
	}
	data, err := os.ReadFile(dir + "/" + entries[0].Name())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "fake game") {
		t.Error("screenshot missing the rendered text")
	}
}

func TestViewRendersGame(t *testing.T) {
	m := newTestModel(&fakeGame{}, Config{})
	if !strings.Contains(m.View(), "fake game") {
		t.Error("view missing the rendered text")
	}
}
