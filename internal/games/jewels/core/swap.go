package core

// swapState tracks a player swap in progress.
type swapState struct {
	source, target         *Entity
	sourceHome, targetHome Vec2
	reverting              bool
}

// TrySwap starts swapping the tokens at a and c. It fails without side
// effects unless both cells hold settled tokens of different types. The
// caller decides adjacency.
func (b *Board) TrySwap(a, c Coord) bool {
	if b.state == StateSwapping || b.state == StateGameOver {
		return false
	}

	src, dst := b.EntityAt(a.X, a.Y), b.EntityAt(c.X, c.Y)
	if src == nil || dst == nil || src == dst {
		return false
	}
	if src.falling || dst.falling || src.typ == dst.typ {
		return false
	}

	b.swap = swapState{
		source:     src,
		target:     dst,
		sourceHome: src.sprite,
		targetHome: dst.sprite,
	}
	src.override = &b.swap.targetHome
	dst.override = &b.swap.sourceHome
	b.state = StateSwapping
	return true
}

// stepSwap animates the active swap and, once both tokens arrive, either
// commits it (a match formed at a destination) or sends them back.
func (b *Board) stepSwap() {
	s := &b.swap
	if s.source == nil || s.target == nil {
		b.endSwap()
		return
	}

	if s.source.override != nil || s.target.override != nil {
		s.source.stepSwap()
		s.target.stepSwap()
		return
	}

	if s.reverting {
		b.endSwap()
		return
	}

	// A power-up cleared one side mid-flight: put the survivor back.
	if s.source.destroyed || s.target.destroyed {
		s.source.sprite = cellOrigin(s.source.cell)
		s.target.sprite = cellOrigin(s.target.cell)
		b.endSwap()
		return
	}

	src, dst := s.source, s.target
	from, to := src.cell, dst.cell
	b.grid.set(to, src.id)
	b.grid.set(from, dst.id)

	atTarget := b.ClassifyAt(to.X, to.Y)
	atSource := b.ClassifyAt(from.X, from.Y)
	if atTarget.Type != MatchNone || atSource.Type != MatchNone {
		src.cell, dst.cell = to, from
		b.consumeMove()
		b.endSwap()
		b.resolve(atTarget)
		b.resolve(atSource)
		return
	}

	b.grid.set(from, src.id)
	b.grid.set(to, dst.id)
	s.reverting = true
	src.override = &s.sourceHome
	dst.override = &s.targetHome
}

func (b *Board) endSwap() {
	b.swap = swapState{}
	b.state = StateIdle
}

// TryInvokePowerUp destroys the power-up at c, which fires its effect on
// the next tick, and consumes one move.
func (b *Board) TryInvokePowerUp(c Coord) bool {
	if b.state == StateGameOver {
		return false
	}
	e := b.EntityAt(c.X, c.Y)
	if e == nil || !e.typ.IsPowerUp() {
		return false
	}
	e.markDestroyed()
	b.consumeMove()
	return true
}

func (b *Board) consumeMove() {
	if b.moves > 0 {
		b.moves--
	}
}
