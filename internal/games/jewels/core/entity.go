package core

// EntityID identifies an entity for the lifetime of a board. Zero is never
// assigned and marks an empty grid cell.
type EntityID uint32

// Entity is a single token on the board. The kind tag selects the destroy
// side effect and the icon; everything else is shared state.
type Entity struct {
	id   EntityID
	kind Kind
	typ  EntityType

	cell     Coord // logical cell
	sprite   Vec2  // continuous position, top-left corner
	override *Vec2 // swap animation target
	velocity Vec2

	destroyed bool
	alive     bool
	falling   bool
	invoked   bool

	size   int // cosmetic inset, grows then shrinks
	frames int // rainbow charge frames
}

func newEntity(id EntityID, kind Kind, color EntityType, cell Coord) *Entity {
	e := &Entity{
		id:     id,
		kind:   kind,
		cell:   cell,
		sprite: cellOrigin(cell),
		alive:  true,
	}
	switch kind {
	case KindGem:
		e.typ = color
		e.size = growGem
	case KindHorizontalRocket:
		e.typ = TypeHorizontalRocket
		e.size = growPowerUp
	case KindVerticalRocket:
		e.typ = TypeVerticalRocket
		e.size = growPowerUp
	case KindBomb:
		e.typ = TypeBomb
		e.size = growPowerUp
	case KindRainbowBomb:
		e.typ = TypeRainbowBomb
		e.size = growPowerUp
	}
	return e
}

// ID returns the entity's board-unique id.
func (e *Entity) ID() EntityID { return e.id }

// Kind returns the variant tag.
func (e *Entity) Kind() Kind { return e.kind }

// Type returns the match key.
func (e *Entity) Type() EntityType { return e.typ }

// Cell returns the logical cell the entity occupies or is falling through.
func (e *Entity) Cell() Coord { return e.cell }

// Sprite returns the continuous top-left position in sprite units.
func (e *Entity) Sprite() Vec2 { return e.sprite }

// Destroyed reports whether the entity has been cleared and is animating out.
func (e *Entity) Destroyed() bool { return e.destroyed }

// Alive reports whether the destroy animation is still running (or never started).
func (e *Entity) Alive() bool { return e.alive }

// Falling reports whether the entity moved under gravity on the last physics step.
func (e *Entity) Falling() bool { return e.falling }

// Swapping reports whether a swap animation is pulling the entity toward a target.
func (e *Entity) Swapping() bool { return e.override != nil }

// Inset returns the cosmetic padding in sprite units: large while a gem
// pops in or a token shrinks out, small when at rest.
func (e *Entity) Inset() int { return e.size }

// Charge returns the rainbow bomb's charge progress in [0,1]; zero for
// other kinds.
func (e *Entity) Charge() float64 {
	if e.kind != KindRainbowBomb {
		return 0
	}
	return float64(e.frames) / rainbowCharge
}

// markDestroyed starts the destroy animation. Repeated calls are no-ops.
func (e *Entity) markDestroyed() {
	if e.destroyed {
		return
	}
	e.destroyed = true
	e.override = nil
	e.falling = false
	e.velocity = Vec2{}
	e.size = shrinkStart
}

func (e *Entity) stopFalling() {
	if !e.falling && e.velocity.Y == 0 {
		return
	}
	e.velocity = Vec2{}
	e.falling = false
}

// stepSwap moves the sprite toward the swap target and clears the target
// once close enough.
func (e *Entity) stepSwap() {
	if e.override == nil {
		return
	}
	target := *e.override
	e.sprite = e.sprite.Lerp(target, swapLerp)
	if e.sprite.Dist(target) < swapSnap {
		e.sprite = target
		e.override = nil
	}
}

// animate advances the alive or destroyed animation by one tick.
func (e *Entity) animate(b *Board) {
	if !e.alive {
		return
	}
	if e.destroyed {
		e.alive = !e.animateDestroyed(b)
		return
	}

	switch e.kind {
	case KindGem:
		if e.size > shrinkStart {
			e.size--
		}
	default:
		if e.size < shrinkStart {
			e.size++
		}
	}
}

// animateDestroyed runs one destroyed tick and reports whether the
// animation has finished. Power-up effects fire on the first tick only.
func (e *Entity) animateDestroyed(b *Board) bool {
	first := !e.invoked
	e.invoked = true

	switch e.kind {
	case KindBomb:
		if first {
			b.clearArea(e.cell)
			b.PlaySound(SoundExplosion)
		}
	case KindHorizontalRocket:
		if first {
			b.clearRow(e.cell)
			b.PlaySound(SoundExplosion)
		}
	case KindVerticalRocket:
		if first {
			b.clearColumn(e.cell)
			b.PlaySound(SoundExplosion)
		}
	case KindRainbowBomb:
		if first {
			b.PlaySound(SoundCharge)
			b.clearDominant()
			b.PlaySound(SoundExplosion)
		}
		e.frames++
		return e.frames >= rainbowCharge
	}

	e.size++
	return e.size > shrinkEnd
}
