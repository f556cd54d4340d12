// Package levels provides Jump Quest level layouts: the built-in campaign,
// the versus arena and packs loaded from disk.
// This package depends on core but core does not depend on levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/vovakirdan/jump-quest/internal/core"
	"github.com/vovakirdan/jump-quest/internal/games/jumpquest/levels/formats"
)

// ErrUnknownLevel is returned for an index outside the pack.
var ErrUnknownLevel = errors.New("levels: unknown level")

// ArenaID identifies the versus arena inside a directory of level files.
const ArenaID = "arena"

//go:embed data/*.yaml
var builtinFS embed.FS

// Layout is an immutable level description. Sessions copy what they
// mutate; the slices here are never written after loading.
type Layout struct {
	ID          string
	Name        string
	Difficulty  string
	Width       float64
	Platforms   []core.Box
	Enemies     []core.Point
	Coins       []core.Point
	Checkpoints []core.Point
	Spawns      []core.Point
	FilePath    string
}

// TotalCoins returns the number of coins placed in the level.
func (l Layout) TotalCoins() int {
	return len(l.Coins)
}

// Validate checks the structural rules every playable layout obeys.
func (l Layout) Validate() error {
	if l.Width <= 0 {
		return fmt.Errorf("levels: %s: width must be positive", l.label())
	}
	if len(l.Platforms) == 0 {
		return fmt.Errorf("levels: %s: no platforms", l.label())
	}
	for i, p := range l.Platforms {
		if p.W <= 0 || p.H <= 0 {
			return fmt.Errorf("levels: %s: platform %d has empty size", l.label(), i)
		}
	}
	return nil
}

// ValidateArena adds the versus requirement of two spawn points.
func (l Layout) ValidateArena() error {
	if err := l.Validate(); err != nil {
		return err
	}
	if len(l.Spawns) < 2 {
		return fmt.Errorf("levels: %s: arena needs two spawns, has %d", l.label(), len(l.Spawns))
	}
	return nil
}

func (l Layout) label() string {
	if l.ID != "" {
		return l.ID
	}
	return l.Name
}

// Provider supplies layouts by 1-based index plus the versus arena.
type Provider interface {
	Layout(index int) (Layout, error)
	Count() int
	Arena() (Layout, error)
}

// Pack is an ordered set of layouts and an optional arena.
type Pack struct {
	Name   string
	Levels []Layout
	arena  *Layout
}

// NewPack builds a pack. A nil arena falls back to the built-in one.
func NewPack(name string, levels []Layout, arena *Layout) *Pack {
	return &Pack{Name: name, Levels: levels, arena: arena}
}

// Layout returns level index (1-based).
func (p *Pack) Layout(index int) (Layout, error) {
	if index < 1 || index > len(p.Levels) {
		return Layout{}, fmt.Errorf("%w: %d of %d", ErrUnknownLevel, index, len(p.Levels))
	}
	return p.Levels[index-1], nil
}

// Count returns the number of campaign levels.
func (p *Pack) Count() int {
	return len(p.Levels)
}

// Arena returns the versus arena.
func (p *Pack) Arena() (Layout, error) {
	if p.arena != nil {
		return *p.arena, nil
	}
	return *builtin().arena, nil
}

var builtin = sync.OnceValue(func() *Pack {
	p, err := loadBuiltin()
	if err != nil {
		panic(err)
	}
	return p
})

// Builtin returns the embedded five-level campaign and arena.
func Builtin() *Pack {
	return builtin()
}

func loadBuiltin() (*Pack, error) {
	pack := &Pack{Name: "Jump Quest"}
	for i := 1; ; i++ {
		data, err := builtinFS.ReadFile(fmt.Sprintf("data/level%d.yaml", i))
		if err != nil {
			break
		}
		fl, err := formats.ParseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("levels: builtin level %d: %w", i, err)
		}
		l := fromFormat(fl, "")
		if err := l.Validate(); err != nil {
			return nil, err
		}
		pack.Levels = append(pack.Levels, l)
	}

	data, err := builtinFS.ReadFile("data/arena.yaml")
	if err != nil {
		return nil, fmt.Errorf("levels: builtin arena: %w", err)
	}
	fl, err := formats.ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("levels: builtin arena: %w", err)
	}
	arena := fromFormat(fl, "")
	if err := arena.ValidateArena(); err != nil {
		return nil, err
	}
	pack.arena = &arena
	return pack, nil
}

func fromFormat(fl formats.Level, path string) Layout {
	l := Layout{
		ID:          fl.ID,
		Name:        fl.Name,
		Difficulty:  fl.Difficulty,
		Width:       fl.Width,
		Platforms:   make([]core.Box, len(fl.Platforms)),
		Enemies:     points(fl.Enemies),
		Coins:       points(fl.Coins),
		Checkpoints: points(fl.Checkpoints),
		Spawns:      points(fl.Spawns),
		FilePath:    path,
	}
	for i, r := range fl.Platforms {
		l.Platforms[i] = core.NewBox(r.X, r.Y, r.W, r.H)
	}
	return l
}

func toFormat(l Layout) formats.Level {
	fl := formats.Level{
		ID:          l.ID,
		Name:        l.Name,
		Difficulty:  l.Difficulty,
		Width:       l.Width,
		Platforms:   make([]formats.Rect, len(l.Platforms)),
		Enemies:     formatPoints(l.Enemies),
		Coins:       formatPoints(l.Coins),
		Checkpoints: formatPoints(l.Checkpoints),
		Spawns:      formatPoints(l.Spawns),
	}
	for i, b := range l.Platforms {
		fl.Platforms[i] = formats.Rect{X: b.X, Y: b.Y, W: b.W, H: b.H}
	}
	return fl
}

func points(ps []formats.Point) []core.Point {
	out := make([]core.Point, len(ps))
	for i, p := range ps {
		out[i] = core.Point{X: p.X, Y: p.Y}
	}
	return out
}

func formatPoints(ps []core.Point) []formats.Point {
	out := make([]formats.Point, len(ps))
	for i, p := range ps {
		out[i] = formats.Point{X: p.X, Y: p.Y}
	}
	return out
}
