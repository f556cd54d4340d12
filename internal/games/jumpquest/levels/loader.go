package levels

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/jump-quest/internal/games/jumpquest/levels/formats"
)

// Loader loads custom levels from a pack file or a directory of level files.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// Load reads Root. A file is decoded as a whole pack; a directory is
// scanned for single-level files, ordered by ID, with the file whose ID
// is "arena" used as the versus arena.
func (l *Loader) Load() (*Pack, error) {
	info, err := os.Stat(l.Root)
	if err != nil {
		return nil, fmt.Errorf("levels: cannot open %s: %w", l.Root, err)
	}
	if info.IsDir() {
		return l.loadDir()
	}
	return LoadPackFile(l.Root)
}

func (l *Loader) loadDir() (*Pack, error) {
	var layouts []Layout
	var arena *Layout

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(filepath.Ext(path)) {
			return nil
		}

		layout, err := LoadFile(path)
		if err != nil {
			return err
		}
		if layout.ID == ArenaID {
			if err := layout.ValidateArena(); err != nil {
				return err
			}
			arena = &layout
			return nil
		}
		layouts = append(layouts, layout)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking directory %s: %w", l.Root, err)
	}
	if len(layouts) == 0 {
		return nil, fmt.Errorf("levels: no level files in %s", l.Root)
	}

	sort.Slice(layouts, func(i, j int) bool {
		return layouts[i].ID < layouts[j].ID
	})

	return NewPack(filepath.Base(l.Root), layouts, arena), nil
}

// LoadFile loads and validates a single level file.
func LoadFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("reading file %s: %w", path, err)
	}
	f, err := formats.FormatForExtension(filepath.Ext(path))
	if err != nil {
		return Layout{}, err
	}
	fl, err := formats.ParseLevel(data, f)
	if err != nil {
		return Layout{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	layout := fromFormat(fl, path)
	if layout.ID == "" {
		layout.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := layout.Validate(); err != nil {
		return Layout{}, err
	}
	return layout, nil
}

// LoadPackFile loads a pack file holding several levels.
func LoadPackFile(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: reading file %s: %w", path, err)
	}
	f, err := formats.FormatForExtension(filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("levels: %w", err)
	}
	fp, err := formats.ParsePack(data, f)
	if err != nil {
		return nil, fmt.Errorf("levels: parsing file %s: %w", path, err)
	}
	if len(fp.Levels) == 0 {
		return nil, fmt.Errorf("levels: %s has no levels", path)
	}

	layouts := make([]Layout, len(fp.Levels))
	for i, fl := range fp.Levels {
		layouts[i] = fromFormat(fl, path)
		if layouts[i].ID == "" {
			layouts[i].ID = fmt.Sprintf("level-%d", i+1)
		}
		if err := layouts[i].Validate(); err != nil {
			return nil, err
		}
	}

	var arena *Layout
	if fp.Arena != nil {
		a := fromFormat(*fp.Arena, path)
		if err := a.ValidateArena(); err != nil {
			return nil, err
		}
		arena = &a
	}

	name := fp.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return NewPack(name, layouts, arena), nil
}

// Export writes p as a pack file in format f.
func Export(w io.Writer, p *Pack, f formats.Format) error {
	fp := formats.Pack{
		Name:   p.Name,
		Levels: make([]formats.Level, len(p.Levels)),
	}
	for i, l := range p.Levels {
		fp.Levels[i] = toFormat(l)
	}
	arena, err := p.Arena()
	if err != nil {
		return err
	}
	fa := toFormat(arena)
	fp.Arena = &fa
	return formats.EncodePack(w, fp, f)
}

func isSupportedExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
