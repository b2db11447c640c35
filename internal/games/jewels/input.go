package jewels

import (
	platformcore "github.com/vovakirdan/tui-jewels/internal/core"
	"github.com/vovakirdan/tui-jewels/internal/games/jewels/core"
)

// handleInput applies cursor movement and selection for one tick.
func (g *Game) handleInput(in platformcore.InputFrame) {
	switch {
	case in.Has(platformcore.ActionUp):
		g.moveCursor(0, -1)
	case in.Has(platformcore.ActionDown):
		g.moveCursor(0, 1)
	case in.Has(platformcore.ActionLeft):
		g.moveCursor(-1, 0)
	case in.Has(platformcore.ActionRight):
		g.moveCursor(1, 0)
	}

	if in.Has(platformcore.ActionCancel) && g.hasSel {
		g.hasSel = false
		g.board.PlaySound(core.SoundDeselect)
	}

	if in.Click != nil {
		if c, ok := g.cellAt(*in.Click); ok {
			g.cursor = c
			g.selectCell(c)
		}
	}
	if in.Has(platformcore.ActionSelect) {
		g.selectCell(g.cursor)
	}
}

func (g *Game) moveCursor(dx, dy int) {
	g.cursor.X = platformcore.Clamp(g.cursor.X+dx, 0, g.board.Width()-1)
	g.cursor.Y = platformcore.Clamp(g.cursor.Y+dy, 0, g.board.Height()-1)
}

// selectCell runs the selection rules for a cell. Input only lands while
// the board is idle.
//
//   - the selected cell again: deselect
//   - nothing selected and a power-up: fire it
//   - nothing selected: select
//   - a cell not next to the selection: move the selection there
//   - a neighbour of the selection: swap
func (g *Game) selectCell(c core.Coord) {
	if g.board.State() != core.StateIdle {
		return
	}

	switch {
	case g.hasSel && g.selected == c:
		g.hasSel = false
		g.board.PlaySound(core.SoundDeselect)
	case !g.hasSel:
		if e := g.board.EntityAt(c.X, c.Y); e != nil && e.Kind() != core.KindGem {
			g.board.TryInvokePowerUp(c)
			return
		}
		g.selected, g.hasSel = c, true
		g.board.PlaySound(core.SoundSelect)
	case !g.selected.Adjacent(c):
		g.selected = c
		g.board.PlaySound(core.SoundSelect)
	default:
		if g.board.TrySwap(g.selected, c) {
			g.board.PlaySound(core.SoundSwap)
		}
		g.hasSel = false
	}
}

// Selection returns the selected cell, if any.
func (g *Game) Selection() (core.Coord, bool) {
	return g.selected, g.hasSel
}

// Cursor returns the keyboard cursor cell.
func (g *Game) Cursor() core.Coord { return g.cursor }
