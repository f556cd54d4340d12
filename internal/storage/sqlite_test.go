package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/jump-quest/internal/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	entries := []ScoreEntry{
		{Player: "ana", Mode: "solo", Level: 1, Score: 100, Seconds: 80, Completed: true},
		{Player: "ana", Mode: "solo", Level: 2, Score: 50},
		{Player: "bo", Mode: "solo", Level: 1, Score: 200, Seconds: 60, Completed: true},
		{Player: "bo", Mode: "coop", Level: 1, Score: 500, Seconds: 70, Completed: true},
	}
	for _, e := range entries {
		if _, err := store.SaveScore(e); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("solo", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("len(TopScores(solo)) = %d, expected 3", len(scores))
	}
	expected := []int{200, 100, 50}
	for i, want := range expected {
		if scores[i].Score != want {
			t.Errorf("scores[%d] = %d, expected %d", i, scores[i].Score, want)
		}
	}
	if scores[0].Player != "bo" || !scores[0].Completed || scores[0].Seconds != 60 {
		t.Errorf("scores[0] = %+v", scores[0])
	}
	if scores[2].Completed {
		t.Error("game over run should not be marked completed")
	}

	all, err := store.TopScores("", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(all) != 4 || all[0].Mode != "coop" {
		t.Errorf("TopScores(\"\") = %d entries, top mode %q, expected 4 and coop", len(all), all[0].Mode)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		store.SaveScore(ScoreEntry{Mode: "solo", Level: 1, Score: (i + 1) * 100})
	}

	scores, err := store.TopScores("solo", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("len(scores) = %d, expected 3", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("solo")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("HighScore() = %d, expected 0", high)
	}

	store.SaveScore(ScoreEntry{Mode: "solo", Score: 100})
	store.SaveScore(ScoreEntry{Mode: "solo", Score: 300})
	store.SaveScore(ScoreEntry{Mode: "coop", Score: 900})

	high, err = store.HighScore("solo")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("HighScore(solo) = %d, expected 300", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore(ScoreEntry{Mode: "solo", Score: 100})
	store.SaveScore(ScoreEntry{Mode: "coop", Score: 300})

	if err := store.ClearScores("solo"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	solo, _ := store.TopScores("solo", 10)
	if len(solo) != 0 {
		t.Errorf("len(solo) = %d, expected 0", len(solo))
	}
	coop, _ := store.TopScores("coop", 10)
	if len(coop) != 1 {
		t.Errorf("len(coop) = %d, expected 1", len(coop))
	}
}

func TestStorePlayerScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore(ScoreEntry{Player: "ana", Mode: "solo", Level: 1, Score: 10})
	store.SaveScore(ScoreEntry{Player: "bo", Mode: "solo", Level: 1, Score: 20})
	store.SaveScore(ScoreEntry{Player: "ana", Mode: "solo", Level: 2, Score: 30})

	scores, err := store.PlayerScores("ana", 0)
	if err != nil {
		t.Fatalf("PlayerScores() failed: %v", err)
	}
	if len(scores) != 2 || scores[0].Level != 2 {
		t.Errorf("PlayerScores(ana) = %v, expected 2 entries newest first", scores)
	}
}

func TestStoreVersusMatches(t *testing.T) {
	store := openTestStore(t)

	results := []core.VersusResult{
		{P1Kills: 3, P2Kills: 1, P1Points: 1400, P2Points: 200, Duration: 600},
		{P1Kills: 1, P2Kills: 2, P1Points: 200, P2Points: 600, Duration: 600},
		{P1Kills: 1, P2Kills: 1, P1Points: 200, P2Points: 200, Duration: 120.5},
	}
	for _, r := range results {
		if _, err := store.SaveVersusMatch(r); err != nil {
			t.Fatalf("SaveVersusMatch() failed: %v", err)
		}
	}

	matches, err := store.RecentVersusMatches(10)
	if err != nil {
		t.Fatalf("RecentVersusMatches() failed: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("len(matches) = %d, expected 3", len(matches))
	}
	if matches[0].Result != results[2] || matches[0].Winner != 0 {
		t.Errorf("newest match = %+v, expected %+v draw", matches[0], results[2])
	}
	if matches[2].Winner != core.Player1 {
		t.Errorf("oldest winner = %v, expected P1", matches[2].Winner)
	}

	p1, p2, draws, err := store.VersusRecord()
	if err != nil {
		t.Fatalf("VersusRecord() failed: %v", err)
	}
	if p1 != 1 || p2 != 1 || draws != 1 {
		t.Errorf("VersusRecord() = %d, %d, %d, expected 1, 1, 1", p1, p2, draws)
	}
}

func TestStoreLevelStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore(ScoreEntry{Mode: "solo", Level: 1, Score: 1500, Seconds: 90, Completed: true})
	store.SaveScore(ScoreEntry{Mode: "solo", Level: 1, Score: 1800, Seconds: 60, Completed: true})
	store.SaveScore(ScoreEntry{Mode: "solo", Level: 1, Score: 9000})
	store.SaveScore(ScoreEntry{Mode: "coop", Level: 3, Score: 2000, Seconds: 100, Completed: true})

	stats, err := store.AllLevelStats()
	if err != nil {
		t.Fatalf("AllLevelStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("len(stats) = %d, expected 2", len(stats))
	}

	l1 := stats[0]
	if l1.Level != 1 || l1.Completions != 2 || l1.BestScore != 1800 {
		t.Errorf("level 1 stats = %+v", l1)
	}
	if l1.BestSeconds != 60 || l1.AvgSeconds != 75 {
		t.Errorf("level 1 seconds best %v avg %v, expected 60 and 75", l1.BestSeconds, l1.AvgSeconds)
	}
	if stats[1].Level != 3 {
		t.Errorf("stats[1].Level = %d, expected 3", stats[1].Level)
	}
}

func TestStoreRecord(t *testing.T) {
	store := openTestStore(t)

	tests := []struct {
		name    string
		event   core.Event
		wantErr error
	}{
		{"complete", core.Event{Kind: core.EventLevelComplete, Player: "ana", Mode: "solo", Level: 1, Score: 1500, Seconds: 42}, nil},
		{"game over", core.Event{Kind: core.EventGameOver, Player: "ana", Mode: "solo", Level: 2, Score: 300}, nil},
		{"versus", core.Event{Kind: core.EventVersusEnd, Versus: &core.VersusResult{P1Points: 200}}, nil},
		{"versus without result", core.Event{Kind: core.EventVersusEnd}, ErrNotRecorded},
		{"death", core.Event{Kind: core.EventDeath}, ErrNotRecorded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := store.Record(tt.event); !errors.Is(err, tt.wantErr) {
				t.Errorf("Record() = %v, expected %v", err, tt.wantErr)
			}
		})
	}

	scores, _ := store.TopScores("", 10)
	if len(scores) != 2 {
		t.Errorf("len(scores) = %d, expected 2", len(scores))
	}
	matches, _ := store.RecentVersusMatches(10)
	if len(matches) != 1 {
		t.Errorf("len(matches) = %d, expected 1", len(matches))
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
