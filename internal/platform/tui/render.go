package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-loderunner/internal/core"
	"github.com/vovakirdan/tui-loderunner/internal/games/loderunner/engine"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:         lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:      lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:         lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:        lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorBrightCyan:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
	core.ColorOrange:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// glyphColors colors board glyphs.
var glyphColors = map[rune]core.Color{
	engine.GlyphBorder:        core.ColorGray,
	engine.GlyphBrick:         core.ColorOrange,
	engine.GlyphDrilledBrick:  core.ColorRed,
	engine.GlyphLadder:        core.ColorWhite,
	engine.GlyphPipe:          core.ColorBlue,
	engine.GlyphGold:          core.ColorBrightYellow,
	engine.GlyphEnemy:         core.ColorMagenta,
	engine.GlyphEnemyWithGold: core.ColorMagenta,
	engine.GlyphHeroRight:     core.ColorBrightCyan,
	engine.GlyphHeroLeft:      core.ColorBrightCyan,
	engine.GlyphHeroDead:      core.ColorRed,
	engine.GlyphOtherRight:    core.ColorGreen,
	engine.GlyphOtherLeft:     core.ColorGreen,
	engine.GlyphOtherDead:     core.ColorRed,
}

// GlyphColor returns the color a board glyph is drawn in.
func GlyphColor(r rune) core.Color {
	return glyphColors[r]
}

// DrawBoard draws the part of a snapshot that fits into area, following the
// viewer's hero when the board is larger than the area.
func DrawBoard(s *core.Screen, snap engine.Snapshot, viewer engine.PlayerID, area core.Rect) {
	rows := engine.Cells(snap, viewer)

	fx, fy := snap.Size/2, snap.Size/2
	for _, it := range snap.Items {
		if it.Player == viewer && (it.Sprite == engine.SpriteHero || it.Sprite == engine.SpriteDeadHero) {
			fx, fy = it.X, snap.Size-1-it.Y
			break
		}
	}

	view := core.Viewport(snap.Size, area.W, area.H, fx, fy)
	for dy := 0; dy < view.H; dy++ {
		row := rows[view.Y+dy]
		for dx := 0; dx < view.W; dx++ {
			r := row[view.X+dx]
			s.SetColored(area.X+dx, area.Y+dy, r, GlyphColor(r))
		}
	}
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
