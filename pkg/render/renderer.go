package render

import (
	"os"

	"github.com/hadley31/chess-image-generator/pkg/board"
	apperrors "github.com/hadley31/chess-image-generator/pkg/errors"
)

// Renderer is the stateful wrapper around the render pipeline: load a
// position, optionally mark squares, then generate the image. A single
// Renderer is not safe for concurrent use; the position and highlight
// map would race.
type Renderer struct {
	cfg        Config
	highlights HighlightMap
	pos        *board.Position
}

// New creates a Renderer with the given configuration. The config is
// defaulted and validated once here and is immutable afterwards, so an
// unknown style or bad color fails fast instead of at first draw.
func New(cfg Config) (*Renderer, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Renderer{cfg: cfg}, nil
}

// Config returns the renderer's defaulted configuration.
func (r *Renderer) Config() Config {
	return r.cfg
}

// LoadFEN loads a position from FEN notation. On failure the previous
// position, if any, is kept untouched.
func (r *Renderer) LoadFEN(text string) error {
	pos, err := board.FromFEN(text)
	if err != nil {
		return err
	}
	r.pos = pos
	return nil
}

// LoadPGN loads the final position of a PGN game. On failure the
// previous position, if any, is kept untouched.
func (r *Renderer) LoadPGN(text string) error {
	pos, err := board.FromPGN(text)
	if err != nil {
		return err
	}
	r.pos = pos
	return nil
}

// LoadGrid loads a raw 8x8 placement grid, replacing any prior position.
func (r *Renderer) LoadGrid(grid board.Grid) {
	r.pos = board.FromGrid(grid)
}

// SetHighlightedSquares replaces the highlight map used by subsequent
// renders. Pass nil to clear all highlights.
func (r *Renderer) SetHighlightedSquares(m HighlightMap) {
	r.highlights = m
}

// Ready reports whether a position has been successfully loaded.
func (r *Renderer) Ready() bool {
	return r.pos != nil
}

// Position returns the loaded position, or nil before the first load.
func (r *Renderer) Position() *board.Position {
	return r.pos
}

// GenerateBuffer renders the loaded position and returns the PNG bytes.
// Calling it before any successful load is a NOT_READY error.
func (r *Renderer) GenerateBuffer() ([]byte, error) {
	if !r.Ready() {
		return nil, apperrors.New(apperrors.ErrCodeNotReady, "no position loaded")
	}
	return Encode(r.pos, r.cfg, r.highlights)
}

// GeneratePNG renders the loaded position and writes the PNG to path.
func (r *Renderer) GeneratePNG(path string) error {
	buf, err := r.GenerateBuffer()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, buf, 0644); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeIO, err, "write %s", path)
	}
	return nil
}
