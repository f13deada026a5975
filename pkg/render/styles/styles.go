// Package styles provides the bundled piece sprite sets.
//
// Each style is a directory of one PNG per (side, piece kind) pair,
// embedded into the binary and addressed through a fixed filename table
// (wK.png, bQ.png, ...). Decoded sprites are cached once per piece, and
// scaled variants once per (piece, cell size), so a board render hits
// the decoder at most once per distinct piece type.
package styles

import (
	"bytes"
	"embed"
	"image"
	"image/png"
	"sync"

	"github.com/corentings/chess/v2"
	"github.com/disintegration/imaging"

	apperrors "github.com/hadley31/chess-image-generator/pkg/errors"
)

//go:embed assets
var assets embed.FS

// Style names for the bundled sprite sets.
const (
	Merida   = "merida"
	Alpha    = "alpha"
	Cheq     = "cheq"
	CBurnett = "cburnett"
	Leipzig  = "leipzig"
)

// Names lists the bundled styles in display order.
var Names = []string{Merida, Alpha, Cheq, CBurnett, Leipzig}

// Default is the style used when none is configured.
const Default = Merida

// Valid reports whether name is a bundled style.
func Valid(name string) bool {
	for _, n := range Names {
		if n == name {
			return true
		}
	}
	return false
}

// sideLetters and kindLetters form the sprite filename table:
// assets/<style>/<side><kind>.png
var sideLetters = map[chess.Color]string{
	chess.White: "w",
	chess.Black: "b",
}

var kindLetters = map[chess.PieceType]string{
	chess.King:   "K",
	chess.Queen:  "Q",
	chess.Rook:   "R",
	chess.Bishop: "B",
	chess.Knight: "N",
	chess.Pawn:   "P",
}

type spriteKey struct {
	style string
	piece chess.Piece
}

type scaledKey struct {
	style string
	piece chess.Piece
	size  int
}

// Registry resolves and caches piece sprites.
// It is safe for concurrent use.
type Registry struct {
	mu      sync.Mutex
	decoded map[spriteKey]image.Image
	scaled  map[scaledKey]image.Image
}

// NewRegistry creates an empty sprite registry.
func NewRegistry() *Registry {
	return &Registry{
		decoded: make(map[spriteKey]image.Image),
		scaled:  make(map[scaledKey]image.Image),
	}
}

// shared is the process-wide registry used by the renderer.
var shared = NewRegistry()

// Sprite returns the sprite for piece in the given style, scaled to
// size x size pixels, from the shared registry.
func Sprite(style string, piece chess.Piece, size int) (image.Image, error) {
	return shared.Sprite(style, piece, size)
}

// Sprite returns the sprite for piece in the given style, scaled to
// size x size pixels. Unknown styles and missing sprite files are
// ASSET_NOT_FOUND errors: a board render must fail rather than skip pieces.
func (r *Registry) Sprite(style string, piece chess.Piece, size int) (image.Image, error) {
	if size <= 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidSize, "sprite size %d", size)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	sk := scaledKey{style: style, piece: piece, size: size}
	if img, ok := r.scaled[sk]; ok {
		return img, nil
	}

	src, err := r.decode(style, piece)
	if err != nil {
		return nil, err
	}

	img := imaging.Resize(src, size, size, imaging.Lanczos)
	r.scaled[sk] = img
	return img, nil
}

// decode loads and decodes the raw sprite once per (style, piece).
// Caller must hold r.mu.
func (r *Registry) decode(style string, piece chess.Piece) (image.Image, error) {
	dk := spriteKey{style: style, piece: piece}
	if img, ok := r.decoded[dk]; ok {
		return img, nil
	}

	path, err := spritePath(style, piece)
	if err != nil {
		return nil, err
	}

	data, err := assets.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeAssetNotFound, err, "sprite %s", path)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeAssetNotFound, err, "decode sprite %s", path)
	}

	r.decoded[dk] = img
	return img, nil
}

// spritePath resolves the embedded asset path for (style, piece).
func spritePath(style string, piece chess.Piece) (string, error) {
	if !Valid(style) {
		return "", apperrors.New(apperrors.ErrCodeAssetNotFound, "unknown style %q", style)
	}
	side, ok := sideLetters[piece.Color()]
	if !ok {
		return "", apperrors.New(apperrors.ErrCodeAssetNotFound, "no sprite for piece %v", piece)
	}
	kind, ok := kindLetters[piece.Type()]
	if !ok {
		return "", apperrors.New(apperrors.ErrCodeAssetNotFound, "no sprite for piece %v", piece)
	}
	return "assets/" + style + "/" + side + kind + ".png", nil
}
