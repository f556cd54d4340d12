// Package formats provides pluggable level file format parsers.
package formats

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Rect is an axis-aligned platform in world units.
type Rect struct {
	X float64 `yaml:"x" toml:"x"`
	Y float64 `yaml:"y" toml:"y"`
	W float64 `yaml:"w" toml:"w"`
	H float64 `yaml:"h" toml:"h"`
}

// Point is a spawn position in world units.
type Point struct {
	X float64 `yaml:"x" toml:"x"`
	Y float64 `yaml:"y" toml:"y"`
}

// Level is the on-disk shape shared by every format.
type Level struct {
	ID          string  `yaml:"id" toml:"id"`
	Name        string  `yaml:"name" toml:"name"`
	Difficulty  string  `yaml:"difficulty,omitempty" toml:"difficulty,omitempty"`
	Width       float64 `yaml:"width" toml:"width"`
	Platforms   []Rect  `yaml:"platforms" toml:"platforms"`
	Enemies     []Point `yaml:"enemies" toml:"enemies"`
	Coins       []Point `yaml:"coins" toml:"coins"`
	Checkpoints []Point `yaml:"checkpoints" toml:"checkpoints"`
	Spawns      []Point `yaml:"spawns,omitempty" toml:"spawns,omitempty"`
}

// Pack is a bundle of ordered levels plus an optional versus arena.
type Pack struct {
	Name   string  `yaml:"name,omitempty" toml:"name,omitempty"`
	Levels []Level `yaml:"levels" toml:"levels"`
	Arena  *Level  `yaml:"arena,omitempty" toml:"arena,omitempty"`
}

// Format names a supported encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrUnsupported is returned for unknown extensions or format names.
var ErrUnsupported = errors.New("unsupported level format")

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".toml"}
}

// FormatForExtension maps a file extension (with dot) to its format.
func FormatForExtension(ext string) (Format, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupported, ext)
}

// ParseFormat maps a user-supplied format name.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatTOML:
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupported, name)
}

// ParseLevel decodes a single level in the given format.
func ParseLevel(data []byte, f Format) (Level, error) {
	switch f {
	case FormatYAML:
		return ParseYAML(data)
	case FormatTOML:
		return ParseTOML(data)
	}
	return Level{}, fmt.Errorf("%w: %s", ErrUnsupported, f)
}

// ParsePack decodes a level pack in the given format.
func ParsePack(data []byte, f Format) (Pack, error) {
	switch f {
	case FormatYAML:
		return ParseYAMLPack(data)
	case FormatTOML:
		return ParseTOMLPack(data)
	}
	return Pack{}, fmt.Errorf("%w: %s", ErrUnsupported, f)
}

// EncodePack writes a pack in the given format.
func EncodePack(w io.Writer, p Pack, f Format) error {
	switch f {
	case FormatYAML:
		return EncodeYAML(w, p)
	case FormatTOML:
		return EncodeTOML(w, p)
	}
	return fmt.Errorf("%w: %s", ErrUnsupported, f)
}
