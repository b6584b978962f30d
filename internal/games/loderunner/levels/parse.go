package levels

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/tui-loderunner/internal/games/loderunner/engine"
)

// ParseMap converts a square ASCII map into a board layout.
// The first row is the top of the board. Legend: '☼' border, '#' brick,
// 'H' ladder, '~' pipe, '$' gold, 'E' enemy, '@' hero spawn, ' ' or '.' empty.
func ParseMap(rows []string) (engine.Layout, error) {
	rows = trimBlankEdges(rows)
	size := len(rows)
	if size == 0 {
		return engine.Layout{}, fmt.Errorf("empty map")
	}

	layout := engine.Layout{Size: size}
	for r, row := range rows {
		if n := utf8.RuneCountInString(row); n != size {
			return engine.Layout{}, fmt.Errorf("row %d has %d cells, want %d (map must be square)", r+1, n, size)
		}

		y := size - 1 - r
		x := 0
		for _, ch := range row {
			p := engine.Pt(x, y)
			switch ch {
			case engine.GlyphEmpty, '.':
			case engine.GlyphBorder:
				layout.Borders = append(layout.Borders, p)
			case engine.GlyphBrick:
				layout.Bricks = append(layout.Bricks, p)
			case engine.GlyphLadder:
				layout.Ladders = append(layout.Ladders, p)
			case engine.GlyphPipe:
				layout.Pipes = append(layout.Pipes, p)
			case engine.GlyphGold:
				layout.Gold = append(layout.Gold, p)
			case engine.GlyphEnemy:
				layout.Enemies = append(layout.Enemies, p)
			case engine.GlyphSpawn:
				layout.Spawns = append(layout.Spawns, p)
			default:
				return engine.Layout{}, fmt.Errorf("row %d col %d: unknown glyph %q", r+1, x+1, ch)
			}
			x++
		}
	}

	return layout, nil
}

// SplitMap splits a multi-line map string into rows.
func SplitMap(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}

func trimBlankEdges(rows []string) []string {
	for len(rows) > 0 && strings.TrimSpace(rows[0]) == "" {
		rows = rows[1:]
	}
	for len(rows) > 0 && strings.TrimSpace(rows[len(rows)-1]) == "" {
		rows = rows[:len(rows)-1]
	}
	return rows
}
