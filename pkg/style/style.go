// Package style holds the render style for copying-path frames: cell
// geometry, paddings, and the color scheme, loadable from a TOML file.
//
// The defaults reproduce the classic look: 8px cells, white
// background, blue/red allele cells, black/green copy markers, and a
// separator gap of two cells between the intensity and haplotype
// panels. A style file overrides only the keys it sets:
//
//	box_size = 16
//
//	[colors]
//	allele_derived = "#cc2222"
//	copy_derived   = "#22aa44"
package style

import (
	"fmt"
	"image/color"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/awohns/copyviz/pkg/errors"
)

// Style describes frame geometry and colors. Construct with
// [Default] or [Load]; the zero value is not usable.
type Style struct {
	// BoxSize is the pixel size of one (row, site) cell.
	BoxSize int `toml:"box_size"`

	// Paddings around the panels, in pixels. MidPadding separates
	// the intensity panel from the haplotype panel.
	TopPadding    int `toml:"top_padding"`
	LeftPadding   int `toml:"left_padding"`
	BottomPadding int `toml:"bottom_padding"`
	RightPadding  int `toml:"right_padding"`
	MidPadding    int `toml:"mid_padding"`

	// GIFDelay is the per-frame delay for animated GIF output, in
	// hundredths of a second.
	GIFDelay int `toml:"gif_delay"`

	Colors ColorScheme `toml:"colors"`
}

// ColorScheme names every color a frame uses. Values are "#RRGGBB"
// hex strings in TOML and parsed colors in memory.
type ColorScheme struct {
	Background      Color `toml:"background"`
	Outline         Color `toml:"outline"`
	AlleleAncestral Color `toml:"allele_ancestral"`
	AlleleDerived   Color `toml:"allele_derived"`
	CopyAncestral   Color `toml:"copy_ancestral"`
	CopyDerived     Color `toml:"copy_derived"`
}

// Color wraps an RGBA color with TOML hex-string decoding.
type Color struct {
	color.RGBA
}

// UnmarshalText decodes "#RRGGBB" into the color.
func (c *Color) UnmarshalText(text []byte) error {
	s := string(text)
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return errors.New(errors.ErrCodeInvalidStyle, "color %q is not #RRGGBB", s)
	}
	c.RGBA = color.RGBA{R: r, G: g, B: b, A: 255}
	return nil
}

// MarshalText encodes the color as "#RRGGBB".
func (c Color) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)), nil
}

func rgb(r, g, b uint8) Color {
	return Color{color.RGBA{R: r, G: g, B: b, A: 255}}
}

// Default returns the built-in style: 8px cells, padding of one cell
// on every side, two cells between the panels, and the classic
// blue/red haplotype palette with black/green copy markers.
func Default() Style {
	const box = 8
	return Style{
		BoxSize:       box,
		TopPadding:    box,
		LeftPadding:   box,
		BottomPadding: box,
		RightPadding:  box,
		MidPadding:    2 * box,
		GIFDelay:      50,
		Colors: ColorScheme{
			Background:      rgb(255, 255, 255),
			Outline:         rgb(0, 0, 0),
			AlleleAncestral: rgb(0, 0, 255),
			AlleleDerived:   rgb(255, 0, 0),
			CopyAncestral:   rgb(0, 0, 0),
			CopyDerived:     rgb(0, 128, 0),
		},
	}
}

// Load reads a TOML style file over the defaults, so a file may set
// only the keys it cares about.
func Load(path string) (Style, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Style{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "style file %s", path)
		}
		return Style{}, errors.Wrap(errors.ErrCodeInvalidStyle, err, "read style file %s", path)
	}

	s := Default()
	if err := toml.Unmarshal(data, &s); err != nil {
		return Style{}, errors.Wrap(errors.ErrCodeInvalidStyle, err, "parse style file %s", path)
	}
	if err := s.Validate(); err != nil {
		return Style{}, err
	}
	return s, nil
}

// Validate checks geometry bounds.
func (s Style) Validate() error {
	if s.BoxSize <= 0 {
		return errors.New(errors.ErrCodeInvalidStyle, "box_size must be positive, got %d", s.BoxSize)
	}
	if s.TopPadding < 0 || s.LeftPadding < 0 || s.BottomPadding < 0 || s.RightPadding < 0 || s.MidPadding < 0 {
		return errors.New(errors.ErrCodeInvalidStyle, "paddings must be non-negative")
	}
	if s.GIFDelay <= 0 {
		return errors.New(errors.ErrCodeInvalidStyle, "gif_delay must be positive, got %d", s.GIFDelay)
	}
	return nil
}
