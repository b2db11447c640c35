package core

import (
	"cmp"
	"math"
	"slices"
)

// stepPhysics advances gravity for every entity, bottom row first.
// Tokens that are animating out keep falling. Entities whose destroy
// animation has finished are removed here and score one point per
// multiplier.
func (b *Board) stepPhysics(dt float64) {
	speed := math.Min(maxMultiplier, 1+float64(b.multiplier)/multiplierStep)

	ordered := slices.Clone(b.entities)
	slices.SortStableFunc(ordered, func(a, c *Entity) int {
		return cmp.Compare(c.cell.Y, a.cell.Y)
	})

	for _, e := range ordered {
		if !e.alive {
			b.removeEntity(e)
			b.score += b.multiplier
			continue
		}
		b.fall(e, dt, speed)
	}
}

// fall moves one entity under gravity and snaps it to the floor or to a
// supported cell when close enough.
func (b *Board) fall(e *Entity, dt, speed float64) {
	e.velocity.Y = math.Max(-fallSpeed, math.Min(fallSpeed, e.velocity.Y+fallSpeed*dt*speed))

	next := Vec2{
		X: e.sprite.X + e.velocity.X*dt*speed,
		Y: e.sprite.Y + e.velocity.Y*dt*speed,
	}
	if next.Y-e.sprite.Y > maxDropPerTick {
		next.Y = e.sprite.Y + maxDropPerTick
	}

	floor := float64((b.height - 1) * CellSize)
	if next.Y > floor {
		e.sprite = Vec2{X: next.X, Y: floor}
		e.cell = C(int(next.X)/CellSize, b.height-1)
		e.stopFalling()
		return
	}

	cell := C(int(next.X)/CellSize, int(next.Y)/CellSize)
	if !b.grid.emptyBelow(cell) && next.Dist(cellOrigin(cell)) < snapTolerance {
		e.sprite = cellOrigin(cell)
		e.cell = cell
		e.stopFalling()
		return
	}

	e.sprite = next
	e.cell = cell
	e.falling = true
}

func (b *Board) hasFalling() bool {
	return slices.ContainsFunc(b.entities, func(e *Entity) bool {
		return e.falling && !e.destroyed
	})
}
