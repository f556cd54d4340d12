package formats

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
)

// ParseTOML parses a TOML level file. Unknown keys are an error.
func ParseTOML(data []byte) (Level, error) {
	var l Level
	md, err := toml.Decode(string(data), &l)
	if err != nil {
		return Level{}, fmt.Errorf("toml decode: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return Level{}, err
	}
	return l, nil
}

// ParseTOMLPack parses a TOML level pack.
func ParseTOMLPack(data []byte) (Pack, error) {
	var p Pack
	md, err := toml.Decode(string(data), &p)
	if err != nil {
		return Pack{}, fmt.Errorf("toml decode: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return Pack{}, err
	}
	return p, nil
}

// EncodeTOML writes p as TOML.
func EncodeTOML(w io.Writer, p Pack) error {
	if err := toml.NewEncoder(w).Encode(p); err != nil {
		return fmt.Errorf("toml encode: %w", err)
	}
	return nil
}

func checkUndecoded(md toml.MetaData) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	return fmt.Errorf("toml: unknown keys: %s", strings.Join(names, ", "))
}
