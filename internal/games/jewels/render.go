package jewels

import (
	"math"

	platformcore "github.com/vovakirdan/tui-jewels/internal/core"
	"github.com/vovakirdan/tui-jewels/internal/games/jewels/core"
)

const (
	cellW     = 4 // terminal columns per board cell
	cellH     = 2 // terminal rows per board cell
	hudHeight = 3
)

type glyph struct {
	r     rune
	color platformcore.Color
}

var gemGlyphs = [core.MaxColors + 1]glyph{
	{'?', platformcore.ColorGray},
	{'◆', platformcore.ColorBrightRed},
	{'●', platformcore.ColorBrightGreen},
	{'▲', platformcore.ColorBrightYellow},
	{'■', platformcore.ColorBrightBlue},
	{'★', platformcore.ColorBrightMagenta},
	{'♥', platformcore.ColorBrightCyan},
}

// glyphFor returns the character and colour for a token.
func glyphFor(kind core.Kind, typ core.EntityType) glyph {
	switch kind {
	case core.KindBomb:
		return glyph{'✹', platformcore.ColorOrange}
	case core.KindHorizontalRocket:
		return glyph{'↔', platformcore.ColorWhite}
	case core.KindVerticalRocket:
		return glyph{'↕', platformcore.ColorWhite}
	case core.KindRainbowBomb:
		return glyph{'✦', platformcore.ColorBrightWhite}
	}
	if typ.IsGem() {
		return gemGlyphs[typ]
	}
	return gemGlyphs[0]
}

// layoutSize returns the screen space the game needs.
func (g *Game) layoutSize() (w, h int) {
	return g.board.Width()*cellW + 2, hudHeight + g.board.Height()*cellH + 2
}

// frame returns the board's outer box on screen.
func (g *Game) frame() platformcore.Rect {
	w, h := g.layoutSize()
	return platformcore.NewRect((g.screenW-w)/2, hudHeight, w, h-hudHeight)
}

// inner returns the area inside the board's box.
func (g *Game) inner() platformcore.Rect {
	f := g.frame()
	return platformcore.NewRect(f.X+1, f.Y+1, f.W-2, f.H-2)
}

// cellAt maps a screen position to a board cell.
func (g *Game) cellAt(p platformcore.Point) (core.Coord, bool) {
	in := g.inner()
	if !in.Contains(p.X, p.Y) {
		return core.Coord{}, false
	}
	return core.C((p.X-in.X)/cellW, (p.Y-in.Y)/cellH), true
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	g.renderHUD(dst)
	dst.DrawBox(g.frame(), platformcore.ColorGray)
	g.renderTokens(dst)
	g.renderMarkers(dst)
	g.renderSparkles(dst)
	g.renderOverlays(dst)
}

func (g *Game) renderTooSmall(dst *platformcore.Screen) {
	w, h := g.layoutSize()
	y := g.screenH / 2
	dst.DrawTextCentered(y-1, "Window too small", platformcore.ColorYellow)
	dst.DrawTextCentered(y, g.printer.Sprintf("Need %dx%d, have %dx%d", w, h, g.screenW, g.screenH), platformcore.ColorDefault)
	dst.DrawTextCentered(y+1, "Please resize terminal", platformcore.ColorGray)
}

// renderHUD draws the title, scores and move counter above the board.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	f := g.frame()

	title := "J E W E L S"
	dst.DrawTextColor(f.X+(f.W-len(title))/2, 0, title, platformcore.ColorBrightMagenta)

	score := g.printer.Sprintf("Score %d", int(g.shownScore))
	dst.DrawTextColor(f.X, 1, score, platformcore.ColorBrightWhite)

	best := g.printer.Sprintf("Best %d", g.hiScore)
	dst.DrawTextColor(f.Right()-len(best), 1, best, platformcore.ColorYellow)

	movesColor := platformcore.ColorWhite
	if g.board.Moves() <= 3 {
		movesColor = platformcore.ColorBrightRed
	}
	moves := g.printer.Sprintf("Moves %d", g.board.Moves())
	dst.DrawTextColor(f.X, 2, moves, movesColor)

	level := g.printer.Sprintf("Level %d", g.difficulty)
	dst.DrawTextColor(f.Right()-len(level), 2, level, platformcore.ColorGray)

	if m := g.board.Multiplier(); m > 1 {
		mult := g.printer.Sprintf("x%d", m)
		dst.DrawTextColor(f.X+(f.W-len(mult))/2, 2, mult, platformcore.ColorBrightYellow)
	}
}

// renderTokens draws every entity at its sprite position, so falling and
// swapping tokens move smoothly between cells.
func (g *Game) renderTokens(dst *platformcore.Screen) {
	in := g.inner()
	for _, e := range g.board.Entities() {
		sp := e.Sprite()
		if sp.Y < 0 {
			continue
		}
		x := in.X + int(math.Round(sp.X*cellW/core.CellSize))
		y := in.Y + int(sp.Y*cellH/core.CellSize)

		gl := glyphFor(e.Kind(), e.Type())
		switch {
		case e.Kind() == core.KindRainbowBomb && e.Destroyed():
			if g.tick%4 < 2 {
				gl.color = platformcore.ColorBrightMagenta
			}
			if e.Charge() > 0.5 {
				gl.r = '✺'
			}
		case e.Destroyed() && e.Inset() > core.CellSize/4:
			gl = glyph{'·', platformcore.ColorGray}
		case e.Destroyed():
			gl.r = '✧'
		}

		for dy := range cellH {
			for dx := 1; dx < cellW-1; dx++ {
				if in.Contains(x+dx, y+dy) {
					dst.SetColor(x+dx, y+dy, gl.r, gl.color)
				}
			}
		}
	}
}

// renderMarkers brackets the cursor and the selection.
func (g *Game) renderMarkers(dst *platformcore.Screen) {
	if g.board.State() == core.StateGameOver {
		return
	}
	draw := func(c core.Coord, left, right rune, color platformcore.Color) {
		in := g.inner()
		x, y := in.X+c.X*cellW, in.Y+c.Y*cellH
		for dy := range cellH {
			dst.SetColor(x, y+dy, left, color)
			dst.SetColor(x+cellW-1, y+dy, right, color)
		}
	}

	draw(g.cursor, '[', ']', platformcore.ColorBrightWhite)
	if g.hasSel {
		draw(g.selected, '<', '>', platformcore.ColorBrightYellow)
	}
}

func (g *Game) renderSparkles(dst *platformcore.Screen) {
	in := g.inner()
	for _, s := range g.sparkles.items {
		x := in.X + int(s.x*cellW)
		y := in.Y + int(s.y*cellH)
		if !in.Contains(x, y) {
			continue
		}
		color, ok := g.sparkleColors[s.visual]
		if !ok {
			color = platformcore.ColorWhite
		}
		dst.SetColor(x, y, s.glyph(), color)
	}
}

// renderOverlays draws pause and game over panels over the board.
func (g *Game) renderOverlays(dst *platformcore.Screen) {
	switch {
	case g.paused:
		g.drawOverlay(dst, platformcore.ColorBrightYellow, "PAUSED", "Press P to resume")
	case g.board.State() == core.StateGameOver:
		final := g.printer.Sprintf("Final score %d", g.board.Score())
		g.drawOverlay(dst, platformcore.ColorBrightRed, "GAME OVER", final, "Press R for a new board")
	}
}

// drawOverlay draws a boxed message centred on the board.
func (g *Game) drawOverlay(dst *platformcore.Screen, color platformcore.Color, lines ...string) {
	width := 0
	for _, line := range lines {
		width = max(width, len([]rune(line)))
	}
	box := g.frame().Centered(width+4, len(lines)+2)
	dst.FillRect(box, ' ', platformcore.ColorDefault)
	dst.DrawBox(box, color)
	for i, line := range lines {
		x := box.X + (box.W-len([]rune(line)))/2
		dst.DrawTextColor(x, box.Y+1+i, line, color)
	}
}
