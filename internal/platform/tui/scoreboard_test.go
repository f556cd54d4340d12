package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/jump-quest/internal/core"
	"github.com/vovakirdan/jump-quest/internal/storage"
)

type stubScores struct {
	modes []string
	err   error
}

func (s *stubScores) TopScores(mode string, limit int) ([]storage.ScoreEntry, error) {
	s.modes = append(s.modes, mode)
	return []storage.ScoreEntry{
		{Player: "Ann", Mode: "solo", Level: 3, Score: 4200, CreatedAt: time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC)},
	}, s.err
}

func (s *stubScores) RecentVersusMatches(limit int) ([]storage.VersusMatch, error) {
	return []storage.VersusMatch{
		{Result: core.VersusResult{P1Points: 400, P2Points: 200, P1Kills: 2, P2Kills: 1}, Winner: core.Player1},
	}, s.err
}

func TestScoreboardTabs(t *testing.T) {
	src := &stubScores{}
	m := NewScoreboardModel(src, 100, 30)

	if !strings.Contains(m.View(), "Ann") {
		t.Error("first tab missing the score row")
	}

	tab := tea.KeyMsg{Type: tea.KeyTab}
	for range 2 {
		next, _ := m.Update(tab)
		m = next.(ScoreboardModel)
	}
	if got, expected := strings.Join(src.modes, ","), ",solo,coop"; got != expected {
		t.Errorf("queried modes = %q, expected %q", got, expected)
	}

	next, _ := m.Update(tab)
	m = next.(ScoreboardModel)
	if !scoreTabs[m.tab].versus {
		t.Fatalf("tab = %d, expected the versus tab", m.tab)
	}
	if len(m.rows) != 1 || m.rows[0][0] != "P1" || m.rows[0][3] != "2-1" {
		t.Errorf("versus rows = %v, expected P1 winning 2-1", m.rows)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	if m.tab != 2 {
		t.Errorf("tab = %d, expected 2", m.tab)
	}
}

func TestScoreboardLoadError(t *testing.T) {
	m := NewScoreboardModel(&stubScores{err: errors.New("locked")}, 100, 30)
	if !strings.Contains(m.View(), "Could not load scores") {
		t.Error("view missing the load error")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 100, 30)
	if !strings.Contains(m.View(), "No scores recorded yet") {
		t.Error("view missing the empty message")
	}
}

func TestScoreboardBackQuits(t *testing.T) {
	m := NewScoreboardModel(nil, 100, 30)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc did not quit")
	}
}
