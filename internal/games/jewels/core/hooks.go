package core

// SoundID identifies a sound effect understood by the host's player.
type SoundID int

// Sound effect ids.
const (
	SoundSelect    SoundID = 5
	SoundSwap      SoundID = 10
	SoundDeselect  SoundID = 15
	SoundMatch     SoundID = 20
	SoundSpawn     SoundID = 30
	SoundPowerUp   SoundID = 60
	SoundCharge    SoundID = 70
	SoundExplosion SoundID = 78
)

// SoundPlayer plays sound effects. The board rate-limits calls per id.
type SoundPlayer interface {
	PlaySound(id SoundID)
}

// EffectSpawner receives a particle burst request when a token is first
// seen destroyed. It is purely cosmetic.
type EffectSpawner interface {
	SpawnEffects(count int, cell Coord, visualID uint32)
}

// IconResolver maps a token to the host's icon id.
type IconResolver interface {
	IconID(kind Kind, color EntityType) uint32
}

// IntNSource is the random source used for colour picks and effect sizes.
// *rand.Rand from math/rand/v2 satisfies it.
type IntNSource interface {
	IntN(n int) int
}

// IconIDs is a table-driven IconResolver.
type IconIDs struct {
	Gems             [MaxColors]uint32
	Bomb             uint32
	HorizontalRocket uint32
	VerticalRocket   uint32
	RainbowBomb      uint32
	Fallback         uint32
}

// DefaultIconIDs returns the stock icon table.
func DefaultIconIDs() IconIDs {
	return IconIDs{
		Gems:             [MaxColors]uint32{21275, 21281, 21283, 21284, 21289, 21293},
		Bomb:             60728,
		HorizontalRocket: 60727,
		VerticalRocket:   60726,
		RainbowBomb:      60722,
		Fallback:         14,
	}
}

// IconID implements IconResolver.
func (ids IconIDs) IconID(kind Kind, color EntityType) uint32 {
	switch kind {
	case KindGem:
		if color.IsGem() {
			return ids.Gems[color-1]
		}
		return ids.Fallback
	case KindBomb:
		return ids.Bomb
	case KindHorizontalRocket:
		return ids.HorizontalRocket
	case KindVerticalRocket:
		return ids.VerticalRocket
	case KindRainbowBomb:
		return ids.RainbowBomb
	default:
		return ids.Fallback
	}
}
