// Package preview draws level layouts to PNG images.
package preview

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"

	"github.com/vovakirdan/jump-quest/internal/config"
	"github.com/vovakirdan/jump-quest/internal/games/jumpquest/levels"
)

// Options controls the output image.
type Options struct {
	// Scale converts world units to pixels.
	Scale float64
	// Colorblind swaps the red and green tones for blue and orange.
	Colorblind bool
}

// DefaultOptions renders at a quarter of world size.
var DefaultOptions = Options{Scale: 0.25}

var errEmptyLayout = errors.New("preview: layout has no width")

type palette struct {
	sky, ground, platform, coin, enemy, checkpoint, finish, spawn color.Color
}

var (
	standardPalette = palette{
		sky:        color.RGBA{18, 22, 40, 255},
		ground:     color.RGBA{60, 44, 30, 255},
		platform:   color.RGBA{110, 170, 90, 255},
		coin:       color.RGBA{250, 210, 60, 255},
		enemy:      color.RGBA{220, 60, 60, 255},
		checkpoint: color.RGBA{90, 180, 240, 255},
		finish:     color.White,
		spawn:      color.RGBA{200, 120, 240, 255},
	}
	colorblindPalette = palette{
		sky:        color.RGBA{18, 22, 40, 255},
		ground:     color.RGBA{60, 44, 30, 255},
		platform:   color.RGBA{70, 120, 220, 255},
		coin:       color.RGBA{250, 210, 60, 255},
		enemy:      color.RGBA{240, 150, 40, 255},
		checkpoint: color.RGBA{170, 200, 255, 255},
		finish:     color.White,
		spawn:      color.RGBA{250, 250, 160, 255},
	}
)

// Render draws l using world geometry from cfg.
func Render(l levels.Layout, cfg config.WorldConfig, opts Options) (image.Image, error) {
	if l.Width <= 0 {
		return nil, errEmptyLayout
	}
	if opts.Scale <= 0 {
		opts.Scale = DefaultOptions.Scale
	}
	pal := standardPalette
	if opts.Colorblind {
		pal = colorblindPalette
	}

	s := opts.Scale
	height := cfg.ViewHeight
	if height <= 0 {
		height = cfg.FallDeathY
	}
	w := max(1, int(l.Width*s))
	h := max(1, int(height*s))
	dc := gg.NewContext(w, h)

	dc.SetColor(pal.sky)
	dc.DrawRectangle(0, 0, float64(w), float64(h))
	dc.Fill()

	dc.SetColor(pal.ground)
	dc.DrawRectangle(0, cfg.GroundY*s, float64(w), float64(h)-cfg.GroundY*s)
	dc.Fill()

	dc.SetColor(pal.platform)
	for _, p := range l.Platforms {
		dc.DrawRectangle(p.X*s, p.Y*s, p.W*s, p.H*s)
	}
	dc.Fill()

	dc.SetColor(pal.checkpoint)
	for _, cp := range l.Checkpoints {
		dc.DrawRectangle(cp.X*s, cp.Y*s, cfg.CheckpointW*s, cfg.CheckpointH*s)
		dc.Fill()
	}

	r := max(1, cfg.CoinSize*s/2)
	dc.SetColor(pal.coin)
	for _, c := range l.Coins {
		dc.DrawCircle(c.X*s+r, c.Y*s+r, r)
		dc.Fill()
	}

	dc.SetColor(pal.enemy)
	for _, e := range l.Enemies {
		dc.DrawRegularPolygon(3, e.X*s, e.Y*s, max(2, 12*s), 0)
		dc.Fill()
	}

	dc.SetColor(pal.spawn)
	for _, sp := range l.Spawns {
		dc.DrawCircle(sp.X*s, sp.Y*s, max(2, 8*s))
		dc.Stroke()
	}

	if cfg.CompleteX > 0 && cfg.CompleteX < l.Width {
		dc.SetColor(pal.finish)
		dc.SetLineWidth(max(1, 4*s))
		dc.DrawLine(cfg.CompleteX*s, 0, cfg.CompleteX*s, cfg.GroundY*s)
		dc.Stroke()
	}

	return dc.Image(), nil
}

// Encode renders l and writes it to w as PNG.
func Encode(w io.Writer, l levels.Layout, cfg config.WorldConfig, opts Options) error {
	img, err := Render(l, cfg, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// SavePNG renders l to path, creating parent directories.
func SavePNG(path string, l levels.Layout, cfg config.WorldConfig, opts Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, l, cfg, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
