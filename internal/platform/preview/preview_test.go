package preview

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/jump-quest/internal/config"
	"github.com/vovakirdan/jump-quest/internal/core"
	"github.com/vovakirdan/jump-quest/internal/games/jumpquest/levels"
)

func TestRenderSize(t *testing.T) {
	world := config.Default().World
	l, err := levels.Builtin().Layout(1)
	if err != nil {
		t.Fatalf("Layout(1): %v", err)
	}

	img, err := Render(l, world, Options{Scale: 0.1})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != int(l.Width*0.1) {
		t.Errorf("width = %d, expected %d", b.Dx(), int(l.Width*0.1))
	}
	if b.Dy() != int(world.ViewHeight*0.1) {
		t.Errorf("height = %d, expected %d", b.Dy(), int(world.ViewHeight*0.1))
	}
}

func TestRenderDrawsPlatforms(t *testing.T) {
	world := config.Default().World
	l := levels.Layout{
		ID:        "test",
		Width:     400,
		Platforms: []core.Box{core.NewBox(100, 200, 100, 20)},
	}

	for _, cb := range []bool{false, true} {
		img, err := Render(l, world, Options{Scale: 1, Colorblind: cb})
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		pal := standardPalette
		if cb {
			pal = colorblindPalette
		}
		if got, expected := colorAt(img.At(150, 210)), colorAt(pal.platform); got != expected {
			t.Errorf("colorblind=%v platform pixel = %v, expected %v", cb, got, expected)
		}
		if got, expected := colorAt(img.At(10, 10)), colorAt(pal.sky); got != expected {
			t.Errorf("colorblind=%v sky pixel = %v, expected %v", cb, got, expected)
		}
	}
}

func TestRenderRejectsEmptyLayout(t *testing.T) {
	if _, err := Render(levels.Layout{}, config.Default().World, DefaultOptions); err == nil {
		t.Error("Render succeeded, expected error")
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "level1.png")
	l, _ := levels.Builtin().Layout(1)

	if err := SavePNG(path, l, config.Default().World, DefaultOptions); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("decode: %v", err)
	}
}

type rgba struct{ r, g, b, a uint32 }

func colorAt(c interface{ RGBA() (r, g, b, a uint32) }) rgba {
	r, g, b, a := c.RGBA()
	return rgba{r >> 8, g >> 8, b >> 8, a >> 8}
}
