package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/hadley31/chess-image-generator/pkg/board"
	apperrors "github.com/hadley31/chess-image-generator/pkg/errors"
)

// testSize gives a 50px cell for easy pixel math.
const testSize = 400

var (
	lightFill = color.RGBA{R: 0xf0, G: 0xd9, B: 0xb5, A: 0xff}
	darkFill  = color.RGBA{R: 0xb5, G: 0x88, B: 0x63, A: 0xff}
)

// decode renders the position and decodes the PNG back into an image.
func decode(t *testing.T, pos *board.Position, cfg Config, highlights HighlightMap) image.Image {
	t.Helper()
	buf, err := Encode(pos, cfg, highlights)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	return img
}

// cellCenter returns the pixel at the center of draw cell (i, j).
func cellCenter(img image.Image, i, j int) color.RGBA {
	cell := testSize / 8
	x := j*cell + cell/2
	y := (7-i)*cell + cell/2
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func TestEncodeDeterministic(t *testing.T) {
	pos, err := board.FromFEN("8/8/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("FromFEN() error: %v", err)
	}
	cfg := Config{Size: testSize}

	a, err := Encode(pos, cfg, nil)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	b, err := Encode(pos, cfg, nil)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("repeated renders of the same position differ")
	}
}

func TestSquareParity(t *testing.T) {
	// Empty board, no labels: every cell center must be exactly its
	// parity fill. Dark when (i+j) is even.
	img := decode(t, board.FromGrid(board.Grid{}), Config{Size: testSize, NoLabels: true}, nil)

	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			want := lightFill
			if (i+j)%2 == 0 {
				want = darkFill
			}
			if got := cellCenter(img, i, j); got != want {
				t.Fatalf("cell (%d,%d) center = %v, want %v", i, j, got, want)
			}
		}
	}
}

func TestSquareColorInvariantUnderFlip(t *testing.T) {
	// a1 is a dark square in both orientations. Unflipped it is drawn at
	// cell (0,0); flipped at cell (7,7).
	empty := board.FromGrid(board.Grid{})

	plain := decode(t, empty, Config{Size: testSize, NoLabels: true}, nil)
	if got := cellCenter(plain, 0, 0); got != darkFill {
		t.Errorf("a1 unflipped = %v, want dark", got)
	}

	flipped := decode(t, empty, Config{Size: testSize, NoLabels: true, Flipped: true}, nil)
	if got := cellCenter(flipped, 7, 7); got != darkFill {
		t.Errorf("a1 flipped = %v, want dark", got)
	}
}

func TestKingOnE1Scenario(t *testing.T) {
	pos, err := board.FromFEN("8/8/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("FromFEN() error: %v", err)
	}
	img := decode(t, pos, Config{Size: testSize, NoLabels: true}, nil)

	// e1 maps to draw cell (0,4): bottom row, fifth column.
	got := cellCenter(img, 0, 4)
	if got == lightFill || got == darkFill {
		t.Errorf("e1 center = %v, expected a composited sprite pixel", got)
	}

	// All other cell centers show their bare square fill.
	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			if i == 0 && j == 4 {
				continue
			}
			want := lightFill
			if (i+j)%2 == 0 {
				want = darkFill
			}
			if got := cellCenter(img, i, j); got != want {
				t.Fatalf("cell (%d,%d) = %v, want bare fill %v", i, j, got, want)
			}
		}
	}
}

func TestKingOnE1Flipped(t *testing.T) {
	pos, err := board.FromFEN("8/8/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("FromFEN() error: %v", err)
	}
	img := decode(t, pos, Config{Size: testSize, NoLabels: true, Flipped: true}, nil)

	// Flipped, e1 lands on draw cell (7,3): top row, mirrored column.
	got := cellCenter(img, 7, 3)
	if got == lightFill || got == darkFill {
		t.Errorf("flipped e1 center = %v, expected a composited sprite pixel", got)
	}

	// Its unflipped cell is bare.
	if got := cellCenter(img, 0, 4); got != darkFill {
		t.Errorf("cell (0,4) = %v, want bare dark fill", got)
	}
}

func TestHighlightFill(t *testing.T) {
	red := color.RGBA{R: 0xff, A: 0xff}
	img := decode(t, board.FromGrid(board.Grid{}), Config{Size: testSize, NoLabels: true},
		HighlightMap{"e4": "#ff0000"})

	// e4 = file e, rank 4 = draw cell (3,4).
	if got := cellCenter(img, 3, 4); got != red {
		t.Errorf("e4 center = %v, want %v", got, red)
	}
	// Neighbors keep their fills.
	if got := cellCenter(img, 3, 3); got != darkFill {
		t.Errorf("d4 center = %v, want dark fill", got)
	}
}

func TestHighlightDefaultColor(t *testing.T) {
	def, _ := ParseColor(DefaultHighlight)
	img := decode(t, board.FromGrid(board.Grid{}), Config{Size: testSize, NoLabels: true},
		HighlightMap{"e4": ""})

	if got := cellCenter(img, 3, 4); got != def {
		t.Errorf("e4 center = %v, want default highlight %v", got, def)
	}
}

func TestHighlightUnknownSquareIgnored(t *testing.T) {
	plain, err := Encode(board.FromGrid(board.Grid{}), Config{Size: testSize}, nil)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	marked, err := Encode(board.FromGrid(board.Grid{}), Config{Size: testSize},
		HighlightMap{"z9": "#ff0000", "e0": ""})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if !bytes.Equal(plain, marked) {
		t.Error("entries for non-existent squares should not affect the render")
	}
}

func TestHighlightBadColor(t *testing.T) {
	_, err := Encode(board.FromGrid(board.Grid{}), Config{Size: testSize},
		HighlightMap{"e4": "red"})
	if !apperrors.Is(err, apperrors.ErrCodeInvalidColor) {
		t.Errorf("error = %v, want INVALID_COLOR", err)
	}
}

func TestStartingPositionGrid(t *testing.T) {
	grid := board.Grid{
		{"r", "n", "b", "q", "k", "b", "n", "r"},
		{"p", "p", "p", "p", "p", "p", "p", "p"},
		{"", "", "", "", "", "", "", ""},
		{"", "", "", "", "", "", "", ""},
		{"", "", "", "", "", "", "", ""},
		{"", "", "", "", "", "", "", ""},
		{"P", "P", "P", "P", "P", "P", "P", "P"},
		{"R", "N", "B", "Q", "K", "B", "N", "R"},
	}
	img := decode(t, board.FromGrid(grid), Config{Size: testSize, NoLabels: true}, nil)

	// Ranks 1, 2, 7, and 8 (draw rows 0, 1, 6, 7) all carry sprites.
	for _, i := range []int{0, 1, 6, 7} {
		for j := 0; j < 8; j++ {
			got := cellCenter(img, i, j)
			if got == lightFill || got == darkFill {
				t.Fatalf("cell (%d,%d) = %v, expected a sprite pixel", i, j, got)
			}
		}
	}
	// Middle ranks are bare.
	for _, i := range []int{2, 3, 4, 5} {
		for j := 0; j < 8; j++ {
			want := lightFill
			if (i+j)%2 == 0 {
				want = darkFill
			}
			if got := cellCenter(img, i, j); got != want {
				t.Fatalf("cell (%d,%d) = %v, want bare fill %v", i, j, got, want)
			}
		}
	}
}

func TestLabelsChangeOutput(t *testing.T) {
	empty := board.FromGrid(board.Grid{})
	with, err := Encode(empty, Config{Size: testSize}, nil)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	without, err := Encode(empty, Config{Size: testSize, NoLabels: true}, nil)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if bytes.Equal(with, without) {
		t.Error("coordinate labels should alter the rendered image")
	}
}

func TestOddSizeRenders(t *testing.T) {
	// 401 is not divisible by 8; cells land on sub-pixel boundaries but
	// the render must still succeed at the requested dimensions.
	img := decode(t, board.FromGrid(board.Grid{}), Config{Size: 401}, nil)
	if b := img.Bounds(); b.Dx() != 401 || b.Dy() != 401 {
		t.Errorf("bounds = %v, want 401x401", b)
	}
}

func TestLogicalSquare(t *testing.T) {
	tests := []struct {
		name       string
		i, j       int
		flipped    bool
		file, rank int
	}{
		{"a1 unflipped", 0, 0, false, 0, 0},
		{"h8 unflipped", 7, 7, false, 7, 7},
		{"e1 unflipped", 0, 4, false, 4, 0},
		{"a1 flipped", 7, 7, true, 0, 0},
		{"h8 flipped", 0, 0, true, 7, 7},
		{"e1 flipped", 7, 3, true, 4, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, rank := logicalSquare(tt.i, tt.j, tt.flipped)
			if file != tt.file || rank != tt.rank {
				t.Errorf("logicalSquare(%d, %d, %v) = (%d, %d), want (%d, %d)",
					tt.i, tt.j, tt.flipped, file, rank, tt.file, tt.rank)
			}
		})
	}
}
