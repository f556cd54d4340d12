package levels

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/jump-quest/internal/games/jumpquest/levels/formats"
)

func TestBuiltinCampaign(t *testing.T) {
	p := Builtin()
	if p.Count() != 5 {
		t.Fatalf("Count() = %d, expected 5", p.Count())
	}

	tests := []struct {
		index       int
		difficulty  string
		coins       int
		checkpoints int
	}{
		{1, "EASY", 11, 3},
		{2, "MEDIUM", 15, 3},
		{3, "HARD", 16, 3},
		{4, "EXPERT", 17, 3},
		{5, "INSANE", 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.difficulty, func(t *testing.T) {
			l, err := p.Layout(tt.index)
			if err != nil {
				t.Fatalf("Layout(%d) error: %v", tt.index, err)
			}
			if l.Difficulty != tt.difficulty {
				t.Errorf("Difficulty = %q, expected %q", l.Difficulty, tt.difficulty)
			}
			if l.TotalCoins() != tt.coins {
				t.Errorf("TotalCoins() = %d, expected %d", l.TotalCoins(), tt.coins)
			}
			if len(l.Checkpoints) != tt.checkpoints {
				t.Errorf("checkpoints = %d, expected %d", len(l.Checkpoints), tt.checkpoints)
			}
			if l.Width != 4200 {
				t.Errorf("Width = %v, expected 4200", l.Width)
			}
			ground := l.Platforms[0]
			if ground.Y != 550 || ground.W != 4200 {
				t.Errorf("ground = %+v, expected y=550 w=4200", ground)
			}
			for _, cp := range l.Checkpoints {
				if cp.Y != 490 {
					t.Errorf("checkpoint y = %v, expected 490", cp.Y)
				}
			}
		})
	}
}

func TestBuiltinLevelOneCheckpoints(t *testing.T) {
	l, err := Builtin().Layout(1)
	if err != nil {
		t.Fatal(err)
	}
	expected := []float64{500, 1200, 2000}
	for i, x := range expected {
		if l.Checkpoints[i].X != x {
			t.Errorf("checkpoint %d x = %v, expected %v", i, l.Checkpoints[i].X, x)
		}
	}
}

func TestBuiltinArena(t *testing.T) {
	a, err := Builtin().Arena()
	if err != nil {
		t.Fatal(err)
	}
	if a.Width != 800 {
		t.Errorf("Width = %v, expected 800", a.Width)
	}
	if len(a.Platforms) != 10 {
		t.Errorf("platforms = %d, expected 10", len(a.Platforms))
	}
	if len(a.Spawns) != 2 || a.Spawns[0].X != 100 || a.Spawns[1].X != 636 {
		t.Errorf("Spawns = %+v, expected x=100 and x=636", a.Spawns)
	}
	if len(a.Enemies) != 0 || len(a.Coins) != 0 {
		t.Error("arena should have no enemies or coins")
	}
}

func TestLayoutOutOfRange(t *testing.T) {
	p := Builtin()
	for _, idx := range []int{0, -1, 6} {
		if _, err := p.Layout(idx); !errors.Is(err, ErrUnknownLevel) {
			t.Errorf("Layout(%d) error = %v, expected ErrUnknownLevel", idx, err)
		}
	}
}

func TestValidate(t *testing.T) {
	good, _ := Builtin().Layout(1)

	noWidth := good
	noWidth.Width = 0
	if noWidth.Validate() == nil {
		t.Error("zero width should fail")
	}

	noPlatforms := good
	noPlatforms.Platforms = nil
	if noPlatforms.Validate() == nil {
		t.Error("missing platforms should fail")
	}

	if good.ValidateArena() == nil {
		t.Error("a campaign level has no spawns and should fail as an arena")
	}
}

func TestLoaderDirectory(t *testing.T) {
	dir := t.TempDir()

	level := `id = "b-second"
name = "Second"
width = 1000.0
enemies = []
coins = []
checkpoints = []

[[platforms]]
x = 0.0
y = 550.0
w = 1000.0
h = 50.0
`
	first := `id: a-first
name: First
width: 900
platforms:
  - {x: 0, y: 550, w: 900, h: 50}
coins:
  - {x: 300, y: 500}
`
	if err := os.WriteFile(filepath.Join(dir, "second.toml"), []byte(level), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "first.yaml"), []byte(first), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := NewLoader(dir).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if p.Count() != 2 {
		t.Fatalf("Count() = %d, expected 2", p.Count())
	}
	l1, _ := p.Layout(1)
	if l1.ID != "a-first" || l1.TotalCoins() != 1 {
		t.Errorf("Layout(1) = %s with %d coins, expected a-first with 1", l1.ID, l1.TotalCoins())
	}

	// No arena file: the built-in arena is used.
	a, err := p.Arena()
	if err != nil || a.Width != 800 {
		t.Errorf("Arena() = %v, %v, expected built-in arena", a.Width, err)
	}
}

func TestLoaderRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	bad := "id: broken\nwidth: 100\nplatforms: []\n"
	if err := os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewLoader(dir).Load(); err == nil {
		t.Error("expected error for a level without platforms")
	}
}

func TestExportReload(t *testing.T) {
	for _, f := range []formats.Format{formats.FormatTOML, formats.FormatYAML} {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Export(&buf, Builtin(), f); err != nil {
				t.Fatalf("Export() error: %v", err)
			}
			path := filepath.Join(t.TempDir(), "pack."+string(f))
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				t.Fatal(err)
			}

			p, err := LoadPackFile(path)
			if err != nil {
				t.Fatalf("LoadPackFile() error: %v", err)
			}
			if p.Count() != 5 {
				t.Errorf("Count() = %d, expected 5", p.Count())
			}
			l4, _ := p.Layout(4)
			orig, _ := Builtin().Layout(4)
			if len(l4.Platforms) != len(orig.Platforms) || l4.Platforms[5] != orig.Platforms[5] {
				t.Errorf("level 4 platforms differ after reload")
			}
			a, _ := p.Arena()
			if len(a.Spawns) != 2 {
				t.Errorf("arena spawns = %d, expected 2", len(a.Spawns))
			}
		})
	}
}
