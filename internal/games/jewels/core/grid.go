package core

import (
	"cmp"
	"slices"
)

// Grid is the logical cell lookup: a flat row-major array of entity ids.
// It holds no ownership; ids resolve through the board's entity index and
// a removed entity simply resolves to nil.
type Grid struct {
	width  int
	height int
	cells  []EntityID
}

func newGrid(width, height int) *Grid {
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]EntityID, width*height),
	}
}

// InBounds reports whether c lies on the board.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

func (g *Grid) index(c Coord) int {
	return c.Y*g.width + c.X
}

func (g *Grid) at(c Coord) EntityID {
	if !g.InBounds(c) {
		return 0
	}
	return g.cells[g.index(c)]
}

func (g *Grid) set(c Coord, id EntityID) {
	if !g.InBounds(c) {
		return
	}
	g.cells[g.index(c)] = id
}

func (g *Grid) reset() {
	clear(g.cells)
}

func (g *Grid) hasEmpty() bool {
	return slices.Contains(g.cells, 0)
}

// emptyBelow reports whether the cell one row below c is on the board and empty.
func (g *Grid) emptyBelow(c Coord) bool {
	below := C(c.X, c.Y+1)
	return g.InBounds(below) && g.at(below) == 0
}

// refreshGrid rebuilds the grid from the entity list. Entities are placed in
// ascending type order; when two land on the same cell the earlier one is
// evicted from the board, so power-ups win over gems.
func (b *Board) refreshGrid() {
	b.grid.reset()

	ordered := slices.Clone(b.entities)
	slices.SortStableFunc(ordered, func(a, c *Entity) int {
		return cmp.Compare(a.typ, c.typ)
	})

	for _, e := range ordered {
		if e.destroyed || e.falling || e.cell.Y < 0 || !b.grid.InBounds(e.cell) {
			continue
		}
		if prev := b.lookup(b.grid.at(e.cell)); prev != nil {
			b.logger.Debug("grid conflict", "cell", e.cell, "evicted", prev.typ, "kept", e.typ)
			b.removeEntity(prev)
		}
		b.grid.set(e.cell, e.id)
	}
}

// EntityAt returns the non-destroyed entity placed at (x, y), or nil.
func (b *Board) EntityAt(x, y int) *Entity {
	e := b.lookup(b.grid.at(C(x, y)))
	if e == nil || e.destroyed {
		return nil
	}
	return e
}

// TypeAt returns the type at (x, y); TypeNone when out of bounds, empty or destroyed.
func (b *Board) TypeAt(x, y int) EntityType {
	if e := b.EntityAt(x, y); e != nil {
		return e.typ
	}
	return TypeNone
}

// ClearCell destroys the occupant of c and empties the cell. Out-of-bounds
// coordinates are ignored.
func (b *Board) ClearCell(c Coord) {
	if !b.grid.InBounds(c) {
		return
	}
	if e := b.lookup(b.grid.at(c)); e != nil {
		e.markDestroyed()
	}
	b.grid.set(c, 0)
}

// clearArea clears the 3x3 neighbourhood around c, except c itself.
func (b *Board) clearArea(c Coord) {
	for y := c.Y - 1; y <= c.Y+1; y++ {
		for x := c.X - 1; x <= c.X+1; x++ {
			if x == c.X && y == c.Y {
				continue
			}
			b.ClearCell(C(x, y))
		}
	}
}

func (b *Board) clearRow(c Coord) {
	for x := range b.width {
		if x != c.X {
			b.ClearCell(C(x, c.Y))
		}
	}
}

func (b *Board) clearColumn(c Coord) {
	for y := range b.height {
		if y != c.Y {
			b.ClearCell(C(c.X, y))
		}
	}
}

// clearDominant clears every gem of the dominant colour and every other power-up.
func (b *Board) clearDominant() {
	dominant := b.DominantGemType()
	for y := range b.height {
		for x := range b.width {
			e := b.EntityAt(x, y)
			if e == nil {
				continue
			}
			if (dominant != TypeNone && e.typ == dominant) || e.typ.IsPowerUp() {
				b.ClearCell(C(x, y))
			}
		}
	}
}

// DominantGemType returns the most common gem colour among live tokens.
// Ties go to the colour seen first in entity order.
func (b *Board) DominantGemType() EntityType {
	var counts [MaxColors + 1]int
	order := make([]EntityType, 0, MaxColors)
	for _, e := range b.entities {
		if e.destroyed || !e.typ.IsGem() {
			continue
		}
		if counts[e.typ] == 0 {
			order = append(order, e.typ)
		}
		counts[e.typ]++
	}

	best, bestN := TypeNone, 0
	for _, t := range order {
		if counts[t] > bestN {
			best, bestN = t, counts[t]
		}
	}
	return best
}
