// Package fonts provides the embedded font used for board coordinate labels.
//
// The font is embedded directly into the binary using go:embed,
// making it available without external dependencies.
package fonts

import (
	_ "embed"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

// DejaVu Sans Bold, distributed under the DejaVu Fonts License.

//go:embed DejaVuSans-Bold.ttf
var labelTTF []byte

var (
	labelFont     *truetype.Font
	labelFontErr  error
	labelFontOnce sync.Once
)

// Label returns the parsed label font.
// The font is parsed once on first access.
func Label() (*truetype.Font, error) {
	labelFontOnce.Do(func() {
		labelFont, labelFontErr = truetype.Parse(labelTTF)
	})
	return labelFont, labelFontErr
}

// LabelFace returns a font.Face for the label font at the given size in pixels.
func LabelFace(size float64) (font.Face, error) {
	f, err := Label()
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{Size: size}), nil
}
