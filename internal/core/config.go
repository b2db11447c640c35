package core

import "time"

// DefaultTickRate is the simulation rate used when none is configured.
const DefaultTickRate = 60

// RuntimeConfig is what the platform hands a game on Reset: the screen it
// draws into and the seed and rate that make a run reproducible.
type RuntimeConfig struct {
	ScreenW  int   // columns
	ScreenH  int   // rows available to the game
	TickRate int   // ticks per second, DefaultTickRate when <= 0
	Seed     int64 // 0 asks the platform for a time-based seed
}

// DefaultConfig returns an 80x24 screen at the default tick rate.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: DefaultTickRate,
	}
}

// TickDuration is the length of one simulation tick.
func (c RuntimeConfig) TickDuration() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = DefaultTickRate
	}
	return time.Second / time.Duration(rate)
}

// GameState is the status a game reports to the platform after each step.
type GameState struct {
	Score    int
	Moves    int // remaining moves, 0 for games without a move budget
	GameOver bool
	Paused   bool // explicitly paused or unable to run, e.g. screen too small
}

// StepResult is returned by Game.Step.
type StepResult struct {
	State GameState
}
