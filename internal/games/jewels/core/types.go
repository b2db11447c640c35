// Package core implements the match-3 board simulation: the logical grid,
// tokens and their destroy side effects, match detection, falling physics,
// swap resolution and the per-tick state machine.
//
// The package has no terminal or platform dependencies. Everything it needs
// from the outside world (randomness, sound, particles, icons, logging) is
// injected by the host.
package core

import (
	"fmt"
	"math"
)

// CellSize is the side of one cell in sprite units.
const CellSize = 64

// Physics and animation tuning.
const (
	fallSpeed      = 1500.0       // fall acceleration (units/s²) and terminal velocity (units/s)
	maxDropPerTick = CellSize / 4 // largest vertical step in a single tick
	snapTolerance  = 16.0         // distance under which a token rests on its cell
	swapLerp       = 0.1          // fraction of the remaining distance covered per swap tick
	swapSnap       = 1.0          // swap animation ends within this distance

	shrinkStart    = 4
	shrinkEnd      = 30
	growGem        = 30
	growPowerUp    = -8
	rainbowCharge  = 60
	maxMultiplier  = 2.0
	multiplierStep = 10.0
)

// Timing windows, in milliseconds.
const (
	settleWindowMs = 500
	decayWindowMs  = 2000
	soundWindowMs  = 500
)

// Coord is a logical cell position on the board.
type Coord struct {
	X, Y int
}

// C is a shorthand constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// Add returns the coordinate offset by d.
func (c Coord) Add(d Coord) Coord {
	return Coord{X: c.X + d.X, Y: c.Y + d.Y}
}

// Adjacent reports whether o is one orthogonal step away from c.
func (c Coord) Adjacent(o Coord) bool {
	dx, dy := c.X-o.X, c.Y-o.Y
	return dx*dx+dy*dy == 1
}

// String returns a readable representation.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Vec2 is a position or velocity in sprite units.
type Vec2 struct {
	X, Y float64
}

// Dist returns the Euclidean distance between two points.
func (v Vec2) Dist(o Vec2) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// Lerp moves v toward o by fraction t.
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{X: v.X + (o.X-v.X)*t, Y: v.Y + (o.Y-v.Y)*t}
}

// cellOrigin returns the sprite position of a cell's top-left corner.
func cellOrigin(c Coord) Vec2 {
	return Vec2{X: float64(c.X * CellSize), Y: float64(c.Y * CellSize)}
}

// EntityType is the match key of a token: a gem colour or a power-up code.
type EntityType uint8

// Token types. Values 1..MaxColors are gem colours; codes >= TypeBomb are
// power-ups.
const (
	TypeNone             EntityType = 0
	TypeBomb             EntityType = 10
	TypeHorizontalRocket EntityType = 11
	TypeVerticalRocket   EntityType = 12
	TypeRainbowBomb      EntityType = 13

	// MaxColors is the largest supported palette.
	MaxColors = 6

	// maxTypeCode bounds the match sweep in ProcessMatches.
	maxTypeCode = 15
)

// IsPowerUp reports whether the type is a power-up code.
func (t EntityType) IsPowerUp() bool {
	return t >= TypeBomb
}

// IsGem reports whether the type is a valid gem colour.
func (t EntityType) IsGem() bool {
	return t >= 1 && t <= MaxColors
}

// Kind tags the token variant. The numeric values are the persisted kind codes.
type Kind uint8

const (
	KindGem Kind = iota
	KindHorizontalRocket
	KindVerticalRocket
	KindBomb
	KindRainbowBomb
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindGem:
		return "Gem"
	case KindHorizontalRocket:
		return "HorizontalRocket"
	case KindVerticalRocket:
		return "VerticalRocket"
	case KindBomb:
		return "Bomb"
	case KindRainbowBomb:
		return "RainbowBomb"
	default:
		return "Unknown"
	}
}

// valid reports whether k is one of the known kinds.
func (k Kind) valid() bool {
	return k <= KindRainbowBomb
}

// MatchType classifies a matched shape. Order matters: a larger value beats
// a smaller one when several shapes hit the same cells.
type MatchType int

const (
	MatchNone MatchType = iota
	MatchDefault
	MatchVerticalRocket
	MatchHorizontalRocket
	MatchBomb
	MatchTee
	MatchRainbow
)

// String returns the match name.
func (m MatchType) String() string {
	switch m {
	case MatchNone:
		return "None"
	case MatchDefault:
		return "Default"
	case MatchVerticalRocket:
		return "VerticalRocket"
	case MatchHorizontalRocket:
		return "HorizontalRocket"
	case MatchBomb:
		return "Bomb"
	case MatchTee:
		return "Tee"
	case MatchRainbow:
		return "Rainbow"
	default:
		return "Unknown"
	}
}

// PowerUp returns the kind spawned by this match, if any. Default matches
// spawn a bomb only when large enough, which is decided by the caller.
func (m MatchType) PowerUp() (Kind, bool) {
	switch m {
	case MatchVerticalRocket:
		return KindVerticalRocket, true
	case MatchHorizontalRocket:
		return KindHorizontalRocket, true
	case MatchBomb, MatchTee:
		return KindBomb, true
	case MatchRainbow:
		return KindRainbowBomb, true
	default:
		return 0, false
	}
}

// State is the board's coarse state.
type State int

const (
	StateIdle State = iota
	StateFalling
	StateSwapping
	StateGameOver
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateFalling:
		return "Falling"
	case StateSwapping:
		return "Swapping"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}
