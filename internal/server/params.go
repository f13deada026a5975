package server

import (
	"net/url"
	"strconv"

	"github.com/hadley31/chess-image-generator/pkg/board"
	apperrors "github.com/hadley31/chess-image-generator/pkg/errors"
	"github.com/hadley31/chess-image-generator/pkg/render"
)

// boardRequest is a fully resolved render request.
type boardRequest struct {
	pos        *board.Position
	cfg        render.Config
	highlights render.HighlightMap
}

// parseBoardRequest resolves query parameters against the configured
// defaults. Exactly one of fen or pgn must be present.
func parseBoardRequest(q url.Values, defaults render.Config) (*boardRequest, error) {
	fen := q.Get("fen")
	pgn := q.Get("pgn")

	var pos *board.Position
	var err error
	switch {
	case fen != "" && pgn != "":
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "fen and pgn are mutually exclusive")
	case fen != "":
		pos, err = board.FromFEN(fen)
	case pgn != "":
		pos, err = board.FromPGN(pgn)
	default:
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "missing fen or pgn parameter")
	}
	if err != nil {
		return nil, err
	}

	cfg := defaults
	if v := q.Get("size"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidSize, err, "size %q", v)
		}
		cfg.Size = size
	}
	if v := q.Get("style"); v != "" {
		cfg.Style = v
	}
	if v := q.Get("light"); v != "" {
		cfg.Light = v
	}
	if v := q.Get("dark"); v != "" {
		cfg.Dark = v
	}
	if v := q.Get("highlight_color"); v != "" {
		cfg.Highlight = v
	}
	if v := q.Get("flipped"); v != "" {
		flipped, err := strconv.ParseBool(v)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "flipped %q", v)
		}
		cfg.Flipped = flipped
	}
	if v := q.Get("labels"); v != "" {
		labels, err := strconv.ParseBool(v)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "labels %q", v)
		}
		cfg.NoLabels = !labels
	}

	highlights, err := render.ParseHighlights(q.Get("highlight"))
	if err != nil {
		return nil, err
	}

	return &boardRequest{pos: pos, cfg: cfg, highlights: highlights}, nil
}
