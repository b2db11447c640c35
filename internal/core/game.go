package core

// Game is the interface the platform drives. Games contain pure logic with
// no Bubble Tea dependency; the platform handles input mapping, timing and
// display.
type Game interface {
	// ID returns a unique identifier, used for score storage and save slots.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or resets the game state.
	// Called once at start and again when restarting after game over.
	Reset(cfg RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in InputFrame) StepResult

	// Render draws the current game state into the provided screen buffer.
	Render(dst *Screen)

	// State returns the current game state (score, game over, paused).
	State() GameState
}

// Suspender is implemented by games that can be saved mid-play and resumed
// later.
type Suspender interface {
	// Suspend returns an opaque save blob. ok is false when there is
	// nothing worth keeping, for example after game over.
	Suspend() (blob string, ok bool)

	// Resume restores a blob produced by Suspend.
	Resume(blob string) error
}

// Resizer is implemented by games that can follow a terminal resize
// without restarting.
type Resizer interface {
	Resize(width, height int)
}
