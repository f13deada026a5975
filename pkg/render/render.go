// Package render turns a chess position plus a render configuration into
// a board image.
//
// The core is a stateless function of (position, config, highlights); the
// Renderer type wraps it with the load-then-generate lifecycle of the
// public API. Rasterization is delegated to github.com/fogleman/gg and
// sprite assets to the styles subpackage.
package render

import (
	"bytes"
	"math"

	"github.com/corentings/chess/v2"
	"github.com/fogleman/gg"

	"github.com/hadley31/chess-image-generator/pkg/board"
	apperrors "github.com/hadley31/chess-image-generator/pkg/errors"
	"github.com/hadley31/chess-image-generator/pkg/fonts"
	"github.com/hadley31/chess-image-generator/pkg/render/styles"
)

// fileLetters maps a zero-based file index to its letter.
var fileLetters = [8]string{"a", "b", "c", "d", "e", "f", "g", "h"}

// Encode renders the position and returns the encoded PNG bytes.
// The output is a pure function of position, config, and highlights.
func Encode(pos *board.Position, cfg Config, highlights HighlightMap) ([]byte, error) {
	dc, err := draw(pos, cfg, highlights)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "encode PNG")
	}
	return buf.Bytes(), nil
}

// draw runs the 64-cell composition loop on a fresh canvas. The canvas is
// only returned on success, so a half-drawn image never escapes.
func draw(pos *board.Position, cfg Config, highlights HighlightMap) (*gg.Context, error) {
	if pos == nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "nil position")
	}
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	light, _ := ParseColor(cfg.Light)
	dark, _ := ParseColor(cfg.Dark)
	labelLight, _ := ParseColor(cfg.LabelLight)
	labelDark, _ := ParseColor(cfg.LabelDark)

	cell := float64(cfg.Size) / 8
	fontSize := float64(cfg.Size) / 80
	pad := fontSize / 2

	dc := gg.NewContext(cfg.Size, cfg.Size)

	// Base fill: the whole canvas takes the light color, then dark
	// squares are painted over it. Light squares are never redrawn.
	dc.SetColor(light)
	dc.Clear()

	var ascent float64
	if !cfg.NoLabels {
		face, err := fonts.LabelFace(fontSize)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeAssetNotFound, err, "label font")
		}
		dc.SetFontFace(face)
		ascent = float64(face.Metrics().Ascent) / 64
	}

	// Fixed i-then-j order: later draws must layer over earlier ones at
	// the same coordinates (fill, then labels, then highlight, then piece).
	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			file, rank := logicalSquare(i, j, cfg.Flipped)
			x := float64(j) * cell
			y := float64(7-i) * cell

			// Parity is computed on grid indices, before the
			// orientation transform, so flipping does not move
			// the dark cells.
			if (i+j)%2 == 0 {
				dc.SetColor(dark)
				dc.DrawRectangle(x, y, cell, cell)
				dc.Fill()
			}

			if !cfg.NoLabels {
				if j == 0 {
					// Rank label at the cell's top-left, baseline a
					// consistent ascent below the top edge.
					if i%2 == 0 {
						dc.SetColor(labelDark)
					} else {
						dc.SetColor(labelLight)
					}
					dc.DrawString(rankLabel(rank), x+pad, y+pad+ascent)
				}
				if i == 0 {
					// File label right- and bottom-aligned in the cell.
					if j%2 == 0 {
						dc.SetColor(labelDark)
					} else {
						dc.SetColor(labelLight)
					}
					s := fileLetters[file]
					w, _ := dc.MeasureString(s)
					dc.DrawString(s, x+cell-w-pad, y+cell-pad)
				}
			}

			sq := board.Square(file, rank)

			if value, ok := highlights.Resolve(sq.String(), cfg.Highlight); ok {
				c, err := ParseColor(value)
				if err != nil {
					return nil, apperrors.Wrap(apperrors.ErrCodeInvalidColor, err, "highlight %s", sq)
				}
				dc.SetColor(c)
				dc.DrawRectangle(x, y, cell, cell)
				dc.Fill()
			}

			piece := pos.Piece(sq)
			if piece == chess.NoPiece {
				continue
			}
			sprite, err := styles.Sprite(cfg.Style, piece, int(math.Round(cell)))
			if err != nil {
				return nil, err
			}
			dc.DrawImage(sprite, int(math.Round(x)), int(math.Round(y)))
		}
	}

	return dc, nil
}

// logicalSquare maps draw-loop grid indices to a zero-based (file, rank).
// Unflipped, draw row i holds rank i+1 and column j holds file j; the
// y-axis inversion in the pixel placement (y = (7-i)*cell) then puts rank 1
// at the bottom of the canvas. Flipping rotates the board 180 degrees.
func logicalSquare(i, j int, flipped bool) (file, rank int) {
	if flipped {
		return 7 - j, 7 - i
	}
	return j, i
}

// rankLabel formats a zero-based rank as its display number.
func rankLabel(rank int) string {
	return string(rune('1' + rank))
}
