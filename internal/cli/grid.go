package cli

import (
	"fmt"
	"strings"

	"github.com/hadley31/chess-image-generator/pkg/board"
)

// parseGrid parses a textual 8x8 board into a board.Grid. The first
// line is the top of the board (rank 8), like a printed diagram. Each
// line holds eight cells, either as a run of eight characters
// ("rnbqkbnr") or whitespace-separated fields. "." and "-" mark empty
// squares. Blank lines and lines starting with "#" are skipped.
func parseGrid(text string) (board.Grid, error) {
	var grid board.Grid

	var rows []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rows = append(rows, line)
	}
	if len(rows) != 8 {
		return grid, fmt.Errorf("grid has %d rows, want 8", len(rows))
	}

	for i, row := range rows {
		cells := strings.Fields(row)
		if len(cells) == 1 && len([]rune(cells[0])) == 8 {
			runes := []rune(cells[0])
			cells = make([]string, 8)
			for k, r := range runes {
				cells[k] = string(r)
			}
		}
		if len(cells) != 8 {
			return grid, fmt.Errorf("grid row %d has %d cells, want 8", i+1, len(cells))
		}
		for j, cell := range cells {
			if cell == "." || cell == "-" {
				cell = ""
			}
			grid[i][j] = cell
		}
	}
	return grid, nil
}
