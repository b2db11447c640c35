package jewels

import "github.com/vovakirdan/tui-jewels/internal/games/jewels/core"

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Tick       uint64
	Difficulty int
	State      string
	Cursor     core.Coord
	Selected   *core.Coord
	Multiplier uint
	Board      core.SaveState
	Sparkles   int
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:       g.tick,
		Difficulty: g.difficulty,
		State:      g.board.State().String(),
		Cursor:     g.cursor,
		Multiplier: g.board.Multiplier(),
		Board:      g.board.Capture(),
		Sparkles:   g.sparkles.Len(),
	}
	if g.hasSel {
		sel := g.selected
		s.Selected = &sel
	}
	return s
}
