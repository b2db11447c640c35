package core

// Match is the result of classifying one token type across the board.
type Match struct {
	Type     MatchType
	Origin   Coord     // cell where a spawned power-up goes
	Entities []*Entity // union of every template hit, unique, in discovery order
}

// shape is a template of relative offsets that must all hold the same type.
type shape struct {
	match   MatchType
	offsets []Coord
}

// shapes are tested at every cell, in this order.
var shapes = []shape{
	{MatchRainbow, []Coord{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}}},
	{MatchRainbow, []Coord{{0, 0}, {0, 1}, {0, 2}, {0, 3}, {0, 4}}},
	{MatchTee, []Coord{{0, 0}, {-1, 0}, {1, 0}, {0, 1}, {0, 2}}},
	{MatchTee, []Coord{{0, 0}, {0, 1}, {0, 2}, {-1, 2}, {1, 2}}},
	{MatchBomb, []Coord{{0, 0}, {1, 0}, {0, 1}, {1, 1}}},
	{MatchVerticalRocket, []Coord{{0, 0}, {1, 0}, {2, 0}, {3, 0}}},
	{MatchHorizontalRocket, []Coord{{0, 0}, {0, 1}, {0, 2}, {0, 3}}},
	{MatchDefault, []Coord{{0, 0}, {1, 0}, {2, 0}}},
	{MatchDefault, []Coord{{0, 0}, {0, 1}, {0, 2}}},
}

// Classify scans the whole board for shapes of type t. The origin is the
// cell of the highest ranked hit (first in row-major order on ties), while
// Entities collects every hit of that type, including disjoint clusters.
func (b *Board) Classify(t EntityType) Match {
	return b.classify(t, nil)
}

// ClassifyAt classifies the type found at (x, y), pinning the origin to
// that cell.
func (b *Board) ClassifyAt(x, y int) Match {
	origin := C(x, y)
	return b.classify(b.TypeAt(x, y), &origin)
}

func (b *Board) classify(t EntityType, origin *Coord) Match {
	best := Match{Type: MatchNone}
	if t == TypeNone {
		return best
	}

	seen := make(map[EntityID]bool)
	for y := range b.height {
		for x := range b.width {
			at := C(x, y)
			for _, s := range shapes {
				hit, ok := b.shapeAt(t, at, s.offsets)
				if !ok {
					continue
				}
				for _, e := range hit {
					if !seen[e.id] {
						seen[e.id] = true
						best.Entities = append(best.Entities, e)
					}
				}
				if s.match > best.Type {
					best.Type = s.match
					best.Origin = at
					if origin != nil {
						best.Origin = *origin
					}
				}
			}
		}
	}
	return best
}

func (b *Board) shapeAt(t EntityType, at Coord, offsets []Coord) ([]*Entity, bool) {
	hit := make([]*Entity, 0, len(offsets))
	for _, off := range offsets {
		c := at.Add(off)
		e := b.EntityAt(c.X, c.Y)
		if e == nil || e.typ != t {
			return nil, false
		}
		hit = append(hit, e)
	}
	return hit, true
}

// processMatches resolves every type 1..15 in auto mode. Each match scores
// multiplier × size, then the multiplier grows by the number of types that
// matched. Returns the points gained.
func (b *Board) processMatches() uint {
	var gained uint
	resolved := 0
	for t := EntityType(1); t <= maxTypeCode; t++ {
		m := b.Classify(t)
		if m.Type == MatchNone {
			continue
		}
		b.resolve(m)
		gained += b.multiplier * uint(len(m.Entities))
		resolved++
	}
	b.score += gained
	b.multiplier += uint(resolved)
	return gained
}

// resolve destroys a match and spawns the power-up it earns.
func (b *Board) resolve(m Match) {
	if m.Type == MatchNone {
		return
	}
	b.PlaySound(SoundMatch)
	for _, e := range m.Entities {
		e.markDestroyed()
	}

	kind, ok := m.Type.PowerUp()
	if m.Type == MatchDefault && len(m.Entities) >= 5 {
		kind, ok = KindBomb, true
	}
	if ok {
		b.addPowerUp(kind, m.Origin)
	}
}

// addPowerUp replaces the origin cell with a fresh power-up and grants two moves.
func (b *Board) addPowerUp(kind Kind, at Coord) {
	b.ClearCell(at)
	b.moves += 2
	b.addEntity(kind, TypeNone, at, true)
	b.PlaySound(SoundPowerUp)
}
