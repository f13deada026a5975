package render

import (
	"strings"

	apperrors "github.com/hadley31/chess-image-generator/pkg/errors"
)

// ParseHighlights parses a highlight list of the form
// "e4,d5:#ff0000": comma-separated squares, each optionally carrying an
// explicit color after a colon. Squares without a color use the default
// highlight color.
func ParseHighlights(s string) (HighlightMap, error) {
	if s == "" {
		return nil, nil
	}
	m := make(HighlightMap)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		square, color, found := strings.Cut(part, ":")
		if square == "" {
			return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "highlight entry %q", part)
		}
		if found {
			m[square] = color
		} else {
			m[square] = ""
		}
	}
	return m, nil
}
