package formats

import (
	"errors"
	"testing"
)

func TestFormatForExtension(t *testing.T) {
	tests := []struct {
		ext     string
		want    Format
		wantErr bool
	}{
		{".yaml", FormatYAML, false},
		{".YML", FormatYAML, false},
		{".toml", FormatTOML, false},
		{".json", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			got, err := FormatForExtension(tt.ext)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatForExtension(%q) error = %v, wantErr %v", tt.ext, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrUnsupported) {
				t.Errorf("error = %v, expected ErrUnsupported", err)
			}
			if got != tt.want {
				t.Errorf("FormatForExtension(%q) = %q, expected %q", tt.ext, got, tt.want)
			}
		})
	}
}

func TestParseTOMLLevel(t *testing.T) {
	data := `id = "t"
name = "Tiny"
width = 600.0

[[platforms]]
x = 0.0
y = 550.0
w = 600.0
h = 50.0

[[coins]]
x = 100.0
y = 500.0
`
	l, err := ParseTOML([]byte(data))
	if err != nil {
		t.Fatalf("ParseTOML() error: %v", err)
	}
	if l.Name != "Tiny" || len(l.Platforms) != 1 || len(l.Coins) != 1 {
		t.Errorf("ParseTOML() = %+v", l)
	}
	if l.Platforms[0].W != 600 {
		t.Errorf("platform width = %v, expected 600", l.Platforms[0].W)
	}
}

func TestParseTOMLUnknownKey(t *testing.T) {
	data := "id = \"t\"\nwidht = 600.0\n"
	if _, err := ParseTOML([]byte(data)); err == nil {
		t.Error("expected error for misspelled key")
	}
}

func TestParseYAMLInvalid(t *testing.T) {
	if _, err := ParseYAML([]byte("platforms: [unclosed")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat(" TOML "); err != nil || f != FormatTOML {
		t.Errorf("ParseFormat(TOML) = %q, %v", f, err)
	}
	if f, err := ParseFormat("yml"); err != nil || f != FormatYAML {
		t.Errorf("ParseFormat(yml) = %q, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
}
