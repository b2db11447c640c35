package jewels

import (
	"math"
	"math/rand/v2"
	"slices"
	"time"

	platformcore "github.com/vovakirdan/tui-jewels/internal/core"
	"github.com/vovakirdan/tui-jewels/internal/games/jewels/core"
)

const (
	sparkleMinLife  = 500 * time.Millisecond
	sparkleLifeSpan = 1000 * time.Millisecond
	sparklesPerCall = 8 // engine particle counts are sized for pixels, not cells
)

// sparkle is one short-lived particle, positioned in cell units.
type sparkle struct {
	x, y   float64
	vx, vy float64
	age    time.Duration
	ttl    time.Duration
	visual uint32
}

// sparkleField collects the particles the board asks for. It implements
// core.EffectSpawner.
type sparkleField struct {
	rng   *rand.Rand
	limit int
	items []sparkle
}

var _ core.EffectSpawner = (*sparkleField)(nil)

func newSparkleField(rng *rand.Rand, limit int) *sparkleField {
	return &sparkleField{rng: rng, limit: limit}
}

// SpawnEffects adds a burst centred on a cell. Bursts stop at the cap.
func (f *sparkleField) SpawnEffects(count int, cell core.Coord, visualID uint32) {
	n := max(1, count/sparklesPerCall)
	for range n {
		if len(f.items) >= f.limit {
			return
		}
		angle := f.rng.Float64() * 2 * math.Pi
		speed := 0.5 + f.rng.Float64()*1.5
		f.items = append(f.items, sparkle{
			x:      float64(cell.X) + 0.5,
			y:      float64(cell.Y) + 0.5,
			vx:     math.Cos(angle) * speed,
			vy:     math.Sin(angle) * speed,
			ttl:    sparkleMinLife + time.Duration(f.rng.Int64N(int64(sparkleLifeSpan))),
			visual: visualID,
		})
	}
}

func (f *sparkleField) step(dt time.Duration) {
	sec := dt.Seconds()
	for i := range f.items {
		s := &f.items[i]
		s.age += dt
		s.x += s.vx * sec
		s.y += s.vy * sec
	}
	f.items = slices.DeleteFunc(f.items, func(s sparkle) bool { return s.age >= s.ttl })
}

func (f *sparkleField) clear() { f.items = f.items[:0] }

// Len returns the number of live sparkles.
func (f *sparkleField) Len() int { return len(f.items) }

// glyph fades through three glyphs over the sparkle's life.
func (s sparkle) glyph() rune {
	switch left := float64(s.ttl-s.age) / float64(s.ttl); {
	case left > 0.66:
		return '*'
	case left > 0.33:
		return '+'
	default:
		return '.'
	}
}

// visualColors maps icon ids back to the colour of the token they stand for.
func visualColors(icons core.IconResolver) map[uint32]platformcore.Color {
	if icons == nil {
		icons = core.DefaultIconIDs()
	}
	colors := make(map[uint32]platformcore.Color)
	for c := core.EntityType(1); c <= core.MaxColors; c++ {
		colors[icons.IconID(core.KindGem, c)] = glyphFor(core.KindGem, c).color
	}
	for _, k := range []core.Kind{core.KindBomb, core.KindHorizontalRocket, core.KindVerticalRocket, core.KindRainbowBomb} {
		colors[icons.IconID(k, 0)] = glyphFor(k, 0).color
	}
	return colors
}
