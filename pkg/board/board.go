// Package board loads chess positions for rendering.
//
// Parsing and validation of PGN and FEN are delegated entirely to the
// chess library; this package only adapts its position model into the
// per-square queries the renderer needs, and provides a raw grid loader
// that places pieces without any legality checks.
package board

import (
	"strings"
	"unicode"

	"github.com/corentings/chess/v2"

	apperrors "github.com/hadley31/chess-image-generator/pkg/errors"
)

// Grid is a raw 8x8 placement: row 0 is rank 8, row 7 is rank 1,
// column 0 is file a. Each cell holds a single piece letter
// ("K", "q", ...) or an empty string for an empty square.
type Grid [8][8]string

// Position is a loaded board position. The zero value is not usable;
// obtain one through FromFEN, FromPGN, or FromGrid.
type Position struct {
	board *chess.Board
}

// pieceTypes maps upper-cased piece letters to piece kinds. The letter's
// original case decides the side: uppercase is white, lowercase is black.
var pieceTypes = map[rune]chess.PieceType{
	'K': chess.King,
	'Q': chess.Queen,
	'R': chess.Rook,
	'B': chess.Bishop,
	'N': chess.Knight,
	'P': chess.Pawn,
}

// FromFEN parses a FEN string into a Position.
// Returns an INVALID_NOTATION error if the chess library rejects the input.
func FromFEN(text string) (*Position, error) {
	opt, err := chess.FEN(text)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidNotation, err, "parse FEN %q", text)
	}
	game := chess.NewGame(opt)
	return &Position{board: game.Position().Board()}, nil
}

// FromPGN parses a PGN game and returns the position after its final move.
// Returns an INVALID_NOTATION error if the chess library rejects the input.
func FromPGN(text string) (*Position, error) {
	opt, err := chess.PGN(strings.NewReader(text))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidNotation, err, "parse PGN")
	}
	game := chess.NewGame(opt)
	return &Position{board: game.Position().Board()}, nil
}

// FromGrid places pieces from a raw grid. Any previous position is
// irrelevant: the whole board is rebuilt from scratch. Unrecognized or
// whitespace cells are left empty. No legality check is performed; this
// is a placement primitive, not a rules check.
func FromGrid(grid Grid) *Position {
	pieces := make(map[chess.Square]chess.Piece)
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			piece, ok := parsePiece(grid[row][col])
			if !ok {
				continue
			}
			// row 0 is rank 8, so rank = 8 - row (1-based)
			pieces[Square(col, 7-row)] = piece
		}
	}
	return &Position{board: chess.NewBoard(pieces)}
}

// parsePiece converts a grid cell into a piece. The literal case of the
// letter decides the side; lookup is case-normalized.
func parsePiece(cell string) (chess.Piece, bool) {
	cell = strings.TrimSpace(cell)
	runes := []rune(cell)
	if len(runes) != 1 {
		return chess.NoPiece, false
	}
	r := runes[0]
	kind, ok := pieceTypes[unicode.ToUpper(r)]
	if !ok {
		return chess.NoPiece, false
	}
	side := chess.Black
	if unicode.IsUpper(r) {
		side = chess.White
	}
	return chess.NewPiece(kind, side), true
}

// Square returns the square at the given zero-based file (0 = a) and
// rank (0 = rank 1).
func Square(file, rank int) chess.Square {
	return chess.Square(file + 8*rank)
}

// Piece returns the piece on the given square, or chess.NoPiece.
func (p *Position) Piece(sq chess.Square) chess.Piece {
	return p.board.Piece(sq)
}

// String returns the board part of the FEN for this position.
// Used as a stable identity for cache keys.
func (p *Position) String() string {
	return p.board.String()
}
