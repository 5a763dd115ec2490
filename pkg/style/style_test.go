package style

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/awohns/copyviz/pkg/errors"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.toml")
	content := `
box_size = 16

[colors]
allele_derived = "#cc2222"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if s.BoxSize != 16 {
		t.Errorf("BoxSize = %d, want 16", s.BoxSize)
	}
	// Untouched keys keep their defaults.
	if s.MidPadding != Default().MidPadding {
		t.Errorf("MidPadding = %d, want default %d", s.MidPadding, Default().MidPadding)
	}
	if got := s.Colors.AlleleDerived; got.R != 0xcc || got.G != 0x22 || got.B != 0x22 {
		t.Errorf("AlleleDerived = %v, want #cc2222", got)
	}
	if s.Colors.AlleleAncestral != Default().Colors.AlleleAncestral {
		t.Errorf("AlleleAncestral changed unexpectedly")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantCode errors.Code
	}{
		{
			name:     "bad color",
			content:  "[colors]\nbackground = \"bright mauve\"\n",
			wantCode: errors.ErrCodeInvalidStyle,
		},
		{
			name:     "zero box size",
			content:  "box_size = 0\n",
			wantCode: errors.ErrCodeInvalidStyle,
		},
		{
			name:     "negative padding",
			content:  "mid_padding = -4\n",
			wantCode: errors.ErrCodeInvalidStyle,
		},
		{
			name:     "broken toml",
			content:  "box_size = [\n",
			wantCode: errors.ErrCodeInvalidStyle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "style.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("Load() = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load() = %v, want FILE_NOT_FOUND", err)
	}
}

func TestColorRoundTrip(t *testing.T) {
	c := rgb(0x12, 0xb4, 0xff)
	text, err := c.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	if string(text) != "#12b4ff" {
		t.Errorf("MarshalText = %q, want #12b4ff", text)
	}

	var back Color
	if err := back.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if back != c {
		t.Errorf("round trip changed color: %v != %v", back, c)
	}
}
