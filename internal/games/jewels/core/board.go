package core

import (
	"math/rand/v2"
	"slices"
	"time"

	"github.com/charmbracelet/log"
)

// Params configures a board.
type Params struct {
	Width  int  // columns
	Height int  // rows
	Colors int  // gem colours in play, 2..MaxColors
	Moves  uint // moves granted by Reset

	// Logger receives engine diagnostics, including those from the first
	// fill. Nil uses the default logger with a "jewels" prefix.
	Logger *log.Logger
}

// DefaultParams returns the standard 10x8 board with four colours.
func DefaultParams() Params {
	return Params{
		Width:  10,
		Height: 8,
		Colors: 4,
		Moves:  10,
	}
}

// Board owns the grid, every entity and the score state. It is driven by
// one Update call per frame and is not safe for concurrent use.
type Board struct {
	width        int
	height       int
	colorCount   int
	initialMoves uint

	grid     *Grid
	entities []*Entity
	byID     map[EntityID]*Entity
	nextID   EntityID
	seen     map[EntityID]bool // destroyed entities already reported to effects

	moves      uint
	score      uint
	multiplier uint
	state      State
	swap       swapState

	now            time.Time
	lastMatchAt    time.Time
	lastActivityAt time.Time

	rng       IntNSource
	logger    *log.Logger
	sound     SoundPlayer
	effects   EffectSpawner
	icons     IconResolver
	active    bool
	sfx       bool
	lastSound map[SoundID]time.Time
}

// NewBoard creates a board and fills it. rng drives every random choice,
// so a seeded source gives a reproducible game; nil seeds from the clock.
func NewBoard(p Params, rng IntNSource) *Board {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	def := DefaultParams()
	if p.Width <= 0 {
		p.Width = def.Width
	}
	if p.Height <= 0 {
		p.Height = def.Height
	}
	if p.Moves == 0 {
		p.Moves = def.Moves
	}
	if p.Logger == nil {
		p.Logger = log.Default().WithPrefix("jewels")
	}

	b := &Board{
		width:        p.Width,
		height:       p.Height,
		initialMoves: p.Moves,
		grid:         newGrid(p.Width, p.Height),
		rng:          rng,
		logger:       p.Logger,
		icons:        DefaultIconIDs(),
		active:       true,
		sfx:          true,
		lastSound:    make(map[SoundID]time.Time),
	}
	b.SetColorCount(p.Colors)
	b.Reset()
	return b
}

// SetLogger replaces the board's logger.
func (b *Board) SetLogger(l *log.Logger) {
	if l != nil {
		b.logger = l
	}
}

// SetSoundPlayer installs the sound hook. nil disables sound.
func (b *Board) SetSoundPlayer(p SoundPlayer) { b.sound = p }

// SetEffectSpawner installs the particle hook. nil disables effects.
func (b *Board) SetEffectSpawner(s EffectSpawner) { b.effects = s }

// SetIconResolver replaces the icon table.
func (b *Board) SetIconResolver(r IconResolver) {
	if r != nil {
		b.icons = r
	}
}

// SetActive marks whether the board is on screen. Inactive boards are silent.
func (b *Board) SetActive(active bool) { b.active = active }

// SetSoundEnabled toggles sound effects.
func (b *Board) SetSoundEnabled(enabled bool) { b.sfx = enabled }

// SetColorCount changes the palette size, clamped to 2..MaxColors. Call
// Reset afterwards; the current board keeps its colours.
func (b *Board) SetColorCount(n int) {
	b.colorCount = min(max(n, 2), MaxColors)
}

// Reset clears the board and deals a fresh one.
func (b *Board) Reset() {
	b.clearEntities()
	b.swap = swapState{}
	b.moves = b.initialMoves
	b.score = 0
	b.multiplier = 1
	b.lastMatchAt = time.Time{}
	b.lastActivityAt = time.Time{}
	b.state = StateIdle
	b.fill()
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.width }

// Height returns the number of rows.
func (b *Board) Height() int { return b.height }

// ColorCount returns the number of gem colours in play.
func (b *Board) ColorCount() int { return b.colorCount }

// Score returns the current score.
func (b *Board) Score() uint { return b.score }

// Moves returns the remaining moves.
func (b *Board) Moves() uint { return b.moves }

// Multiplier returns the cascade multiplier, at least 1.
func (b *Board) Multiplier() uint { return b.multiplier }

// State returns the board state.
func (b *Board) State() State { return b.state }

// Entities returns a copy of the entity list, including tokens that are
// still animating out.
func (b *Board) Entities() []*Entity {
	return slices.Clone(b.entities)
}

// IconID resolves the host icon for an entity.
func (b *Board) IconID(e *Entity) uint32 {
	return b.icons.IconID(e.kind, e.typ)
}

// Update advances the simulation by one tick. now is the tick's wall or
// virtual time; all timing windows are measured against it.
func (b *Board) Update(now time.Time, dt time.Duration) {
	if b.state == StateGameOver {
		return
	}
	b.now = now

	if now.Sub(b.lastMatchAt) > decayWindowMs*time.Millisecond {
		b.multiplier = 1
	}

	if b.state != StateSwapping {
		b.spawnTopRow()
		b.refreshGrid()

		if b.grid.hasEmpty() {
			b.state = StateFalling
			b.lastActivityAt = now
		} else {
			if now.Sub(b.lastActivityAt) < settleWindowMs*time.Millisecond {
				if b.processMatches() > 0 {
					b.lastMatchAt = now
				}
			}

			b.state = StateIdle
			if b.hasFalling() {
				b.state = StateFalling
			}
			if b.state == StateIdle && b.moves == 0 && now.Sub(b.lastActivityAt) > settleWindowMs*time.Millisecond {
				b.state = StateGameOver
				b.logger.Info("game over", "score", b.score)
			}
		}
	}

	switch b.state {
	case StateFalling:
		b.stepPhysics(dt.Seconds())
		b.lastActivityAt = now
	case StateSwapping:
		b.stepSwap()
		b.lastActivityAt = now
	}

	b.animate()
}

// animate advances every entity's animation and reports newly destroyed
// tokens to the effect hook.
func (b *Board) animate() {
	for _, e := range b.entities {
		e.animate(b)
		if !e.destroyed || b.seen[e.id] {
			continue
		}
		b.seen[e.id] = true
		n := 25 + b.rng.IntN(25)
		if b.effects != nil {
			b.effects.SpawnEffects(n, e.cell, b.IconID(e))
		}
	}
}

// PlaySound forwards to the sound hook when the board is active and sound
// is enabled, at most once per id every 500ms of board time.
func (b *Board) PlaySound(id SoundID) {
	if b.sound == nil || !b.active || !b.sfx {
		return
	}
	if last, ok := b.lastSound[id]; ok && b.now.Sub(last) < soundWindowMs*time.Millisecond {
		return
	}
	b.lastSound[id] = b.now
	b.sound.PlaySound(id)
}

func (b *Board) addEntity(kind Kind, color EntityType, at Coord, place bool) *Entity {
	b.nextID++
	e := newEntity(b.nextID, kind, color, at)
	b.entities = append(b.entities, e)
	b.byID[e.id] = e
	if place {
		b.grid.set(at, e.id)
	}
	return e
}

func (b *Board) removeEntity(e *Entity) {
	b.entities = slices.DeleteFunc(b.entities, func(o *Entity) bool { return o == e })
	delete(b.byID, e.id)
	delete(b.seen, e.id)
}

func (b *Board) lookup(id EntityID) *Entity {
	if id == 0 {
		return nil
	}
	return b.byID[id]
}

func (b *Board) clearEntities() {
	b.entities = nil
	b.byID = make(map[EntityID]*Entity)
	b.seen = make(map[EntityID]bool)
	b.grid.reset()
}
