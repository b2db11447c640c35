package core

const (
	maxFillRetries    = 100
	maxSpawnAttempts  = 16
	spawnZoneOverhang = CellSize * 0.2
)

// randomType picks a gem colour uniformly from 1..colorCount.
func (b *Board) randomType() EntityType {
	return EntityType(b.rng.IntN(b.colorCount) + 1)
}

// fill populates an empty board so that no two neighbours share a colour
// to the left or above. A board that cannot be completed is retried from
// scratch; after maxFillRetries the last attempt is kept with holes.
func (b *Board) fill() {
	for attempt := 1; ; attempt++ {
		missing := b.fillOnce()
		if missing == 0 {
			return
		}
		if attempt >= maxFillRetries {
			b.logger.Warn("giving up on board fill", "attempts", attempt, "empty", missing)
			return
		}
		b.logger.Debug("board fill incomplete, retrying", "attempt", attempt, "empty", missing)
		b.clearEntities()
	}
}

// fillOnce places one gem per cell and returns how many cells stayed empty.
func (b *Board) fillOnce() int {
	missing := 0
	for y := range b.height {
		for x := range b.width {
			t := b.initialTypeAt(x, y)
			if t == TypeNone {
				missing++
				continue
			}
			b.addEntity(KindGem, t, C(x, y), true)
		}
	}
	return missing
}

// initialTypeAt draws colours until one differs from the left and upper
// neighbours. Returns TypeNone when the attempt budget runs out.
func (b *Board) initialTypeAt(x, y int) EntityType {
	budget := 2 * b.width * b.height
	for range budget {
		t := b.randomType()
		if t != b.TypeAt(x-1, y) && t != b.TypeAt(x, y-1) {
			return t
		}
	}
	return TypeNone
}

// spawnTopRow drops a new gem above every column whose entry zone is free.
// The zone is checked against sprite bounds, so a token still falling
// through the top row blocks a spawn above it.
func (b *Board) spawnTopRow() {
	for x := range b.width {
		if b.entryBlocked(x) {
			continue
		}
		b.addEntity(KindGem, b.spawnTypeFor(x), C(x, -1), false)
		b.PlaySound(SoundSpawn)
	}
}

func (b *Board) entryBlocked(x int) bool {
	zone := Vec2{X: float64(x * CellSize), Y: -CellSize}
	for _, e := range b.entities {
		if overlaps(e.sprite, CellSize, CellSize, zone, CellSize, CellSize+spawnZoneOverhang) {
			return true
		}
	}
	return false
}

// spawnTypeFor prefers a colour that will not complete a line where the
// gem is expected to land. Falls back to any colour.
func (b *Board) spawnTypeFor(x int) EntityType {
	land := -1
	for y := 0; y < b.height && b.grid.at(C(x, y)) == 0; y++ {
		land = y
	}

	t := b.randomType()
	if land < 0 {
		return t
	}
	for range maxSpawnAttempts {
		if !b.completesLine(t, x, land) {
			return t
		}
		t = b.randomType()
	}
	return t
}

func (b *Board) completesLine(t EntityType, x, y int) bool {
	same := func(dx, dy int) bool { return b.TypeAt(x+dx, y+dy) == t }
	return (same(0, 1) && same(0, 2)) ||
		(same(-1, 0) && same(-2, 0)) ||
		(same(1, 0) && same(2, 0)) ||
		(same(-1, 0) && same(1, 0))
}

// overlaps reports whether two axis-aligned boxes share any interior area.
func overlaps(a Vec2, aw, ah float64, c Vec2, cw, ch float64) bool {
	if a.X >= c.X+cw || c.X >= a.X+aw {
		return false
	}
	if a.Y >= c.Y+ch || c.Y >= a.Y+ah {
		return false
	}
	return true
}
