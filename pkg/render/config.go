package render

import (
	"fmt"
	"image/color"
	"strings"

	apperrors "github.com/hadley31/chess-image-generator/pkg/errors"
	"github.com/hadley31/chess-image-generator/pkg/render/styles"
)

// Default configuration values.
const (
	DefaultSize      = 480
	DefaultLight     = "#f0d9b5"
	DefaultDark      = "#b58863"
	DefaultHighlight = "#f6f669"
)

// Config holds the immutable parameters of a board render.
//
// The zero value of every field selects its default, so Config{} renders a
// 480px merida board, white at the bottom, with coordinate labels. Boolean
// options are phrased so that the zero value is the default behavior:
// Flipped is off and labels are shown unless NoLabels is set.
type Config struct {
	// Size is the board edge length in pixels. Sizes that are not a
	// multiple of 8 are legal; cells then land on sub-pixel boundaries.
	Size int

	// Light and Dark are the square fill colors as hex strings.
	Light string
	Dark  string

	// Highlight is the fill used for squares marked with the default
	// highlight (an empty-string entry in the HighlightMap).
	Highlight string

	// Style names the piece sprite set. See package styles.
	Style string

	// Flipped rotates the board 180 degrees so black's home rank is at
	// the bottom.
	Flipped bool

	// NoLabels disables the rank and file coordinate labels.
	NoLabels bool

	// LabelLight is the color of labels sitting on light squares; it
	// defaults to the dark square color so labels always contrast.
	// LabelDark is the counterpart for dark squares, defaulting to the
	// light square color.
	LabelLight string
	LabelDark  string
}

// withDefaults returns a copy of c with unset fields filled in.
// Label colors default to the opposite square color.
func (c Config) withDefaults() Config {
	if c.Size == 0 {
		c.Size = DefaultSize
	}
	if c.Light == "" {
		c.Light = DefaultLight
	}
	if c.Dark == "" {
		c.Dark = DefaultDark
	}
	if c.Highlight == "" {
		c.Highlight = DefaultHighlight
	}
	if c.Style == "" {
		c.Style = styles.Default
	}
	if c.LabelLight == "" {
		c.LabelLight = c.Dark
	}
	if c.LabelDark == "" {
		c.LabelDark = c.Light
	}
	return c
}

// Validate checks a defaulted config. Unknown styles fail here, at
// configuration time, rather than at the first piece draw.
func (c Config) Validate() error {
	if c.Size <= 0 {
		return apperrors.New(apperrors.ErrCodeInvalidSize, "board size %d", c.Size)
	}
	if !styles.Valid(c.Style) {
		return apperrors.New(apperrors.ErrCodeAssetNotFound, "unknown style %q", c.Style)
	}
	for _, v := range []struct{ name, value string }{
		{"light", c.Light},
		{"dark", c.Dark},
		{"highlight", c.Highlight},
		{"label-light", c.LabelLight},
		{"label-dark", c.LabelDark},
	} {
		if _, err := ParseColor(v.value); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInvalidColor, err, "%s color", v.name)
		}
	}
	return nil
}

// HighlightMap maps square names ("e4") to highlight colors. An empty
// string marks the square for the configured default highlight color; a
// non-empty value is used verbatim as the fill. Squares absent from the
// map are not highlighted, and entries for non-existent squares are
// ignored because they are never looked up.
type HighlightMap map[string]string

// Resolve returns the highlight color for square, falling back to def
// for squares marked without an explicit color. The second return is
// false when the square is not highlighted.
func (m HighlightMap) Resolve(square, def string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m[square]
	if !ok {
		return "", false
	}
	if v == "" {
		return def, true
	}
	return v, true
}

// ParseColor parses a hex color of the form #rgb, #rrggbb, or #rrggbbaa.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if hex == s {
		return color.RGBA{}, fmt.Errorf("color %q: missing # prefix", s)
	}

	var r, g, b, a uint8 = 0, 0, 0, 255
	var err error
	switch len(hex) {
	case 3:
		_, err = fmt.Sscanf(hex, "%1x%1x%1x", &r, &g, &b)
		r, g, b = r*17, g*17, b*17
	case 6:
		_, err = fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b)
	case 8:
		_, err = fmt.Sscanf(hex, "%02x%02x%02x%02x", &r, &g, &b, &a)
	default:
		return color.RGBA{}, fmt.Errorf("color %q: want 3, 6, or 8 hex digits", s)
	}
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: a}, nil
}
