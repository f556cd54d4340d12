package formats

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var l Level
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return l, nil
}

// ParseYAMLPack parses a YAML level pack.
func ParseYAMLPack(data []byte) (Pack, error) {
	var p Pack
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Pack{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return p, nil
}

// EncodeYAML writes p as YAML.
func EncodeYAML(w io.Writer, p Pack) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}
