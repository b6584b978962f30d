package engine

import "strings"

// Glyphs used by RenderASCII and understood by the level parser.
const (
	GlyphEmpty         = ' '
	GlyphBorder        = '☼'
	GlyphBrick         = '#'
	GlyphDrilledBrick  = '*'
	GlyphLadder        = 'H'
	GlyphPipe          = '~'
	GlyphGold          = '$'
	GlyphEnemy         = 'E'
	GlyphEnemyWithGold = '€'
	GlyphSpawn         = '@' // level files only
	GlyphHeroRight     = '►'
	GlyphHeroLeft      = '◄'
	GlyphHeroDead      = 'Ѡ'
	GlyphOtherRight    = ')'
	GlyphOtherLeft     = '('
	GlyphOtherDead     = 'x'
)

// Glyph returns the character for an item as seen by viewer.
func Glyph(it Item, viewer PlayerID) rune {
	switch it.Sprite {
	case SpriteBorder:
		return GlyphBorder
	case SpriteBrick:
		return GlyphBrick
	case SpriteDrilledBrick:
		return GlyphDrilledBrick
	case SpriteLadder:
		return GlyphLadder
	case SpritePipe:
		return GlyphPipe
	case SpriteGold:
		return GlyphGold
	case SpriteEnemy:
		return GlyphEnemy
	case SpriteEnemyWithGold:
		return GlyphEnemyWithGold
	case SpriteDeadHero:
		if it.Player == viewer {
			return GlyphHeroDead
		}
		return GlyphOtherDead
	case SpriteHero:
		own := it.Player == viewer
		switch {
		case own && it.Facing == DirLeft:
			return GlyphHeroLeft
		case own:
			return GlyphHeroRight
		case it.Facing == DirLeft:
			return GlyphOtherLeft
		default:
			return GlyphOtherRight
		}
	}
	return GlyphEmpty
}

// Cells lays a snapshot out as rows of runes, top row first.
// Agents are drawn over gold, gold over terrain.
func Cells(s Snapshot, viewer PlayerID) [][]rune {
	rows := make([][]rune, s.Size)
	for i := range rows {
		rows[i] = []rune(strings.Repeat(string(GlyphEmpty), s.Size))
	}

	// Items are ordered agents, gold, terrain; paint back to front.
	for i := len(s.Items) - 1; i >= 0; i-- {
		it := s.Items[i]
		if it.X < 0 || it.Y < 0 || it.X >= s.Size || it.Y >= s.Size {
			continue
		}
		rows[s.Size-1-it.Y][it.X] = Glyph(it, viewer)
	}
	return rows
}

// RenderASCII renders a snapshot as text, one line per row, top row first.
// This is used for debugging, tests and the headless simulator.
func RenderASCII(s Snapshot, viewer PlayerID) string {
	var sb strings.Builder
	for i, row := range Cells(s, viewer) {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(row))
	}
	return sb.String()
}
