// Package jewels hosts the match-3 board engine as a platform game: it owns
// the cursor and selection, drives the board from a virtual clock and draws
// the result into a character screen.
package jewels

import (
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vovakirdan/tui-jewels/internal/config"
	platformcore "github.com/vovakirdan/tui-jewels/internal/core"
	"github.com/vovakirdan/tui-jewels/internal/games/jewels/core"
)

// ID is the game identifier used for scores and save slots.
const ID = "jewels"

// epoch anchors the virtual clock. Any fixed instant works; the board only
// compares times against each other.
var epoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// Options configures a Game.
type Options struct {
	Width        int
	Height       int
	Moves        uint
	Difficulty   int // 1..4
	SoundEnabled bool
	Sound        core.SoundPlayer // nil for silence
	Icons        core.IconResolver
	Sparkles     bool
	MaxSparkles  int
	Logger       *log.Logger
}

// OptionsFromConfig maps a loaded configuration onto game options.
func OptionsFromConfig(cfg config.JewelsConfig) Options {
	icons := core.DefaultIconIDs()
	copy(icons.Gems[:], cfg.Icons.Gems)
	icons.Bomb = cfg.Icons.Bomb
	icons.HorizontalRocket = cfg.Icons.HorizontalRocket
	icons.VerticalRocket = cfg.Icons.VerticalRocket
	icons.RainbowBomb = cfg.Icons.RainbowBomb
	icons.Fallback = cfg.Icons.Fallback

	return Options{
		Width:        cfg.Board.Width,
		Height:       cfg.Board.Height,
		Moves:        cfg.Board.Moves,
		Difficulty:   cfg.Difficulty,
		SoundEnabled: cfg.Sound.Enabled,
		Icons:        icons,
		Sparkles:     cfg.Effects.Enabled,
		MaxSparkles:  cfg.Effects.MaxParticles,
	}
}

// Game implements platformcore.Game for the jewels board.
type Game struct {
	opts  Options
	board *core.Board
	rng   *rand.Rand // cosmetic randomness, kept apart from the board's source

	// Virtual clock
	tick uint64
	dt   time.Duration

	// Screen dimensions
	screenW int
	screenH int

	difficulty int
	cursor     core.Coord
	selected   core.Coord
	hasSel     bool

	shownScore float64
	hiScore    int
	paused     bool
	tooSmall   bool

	sparkles      *sparkleField
	sparkleColors map[uint32]platformcore.Color
	printer       *message.Printer
}

// New creates a jewels game. Call Reset before stepping it.
func New(opts Options) *Game {
	if opts.Difficulty < 1 || opts.Difficulty > 4 {
		opts.Difficulty = 2
	}
	if opts.Logger == nil {
		opts.Logger = log.Default().WithPrefix(ID)
	}
	return &Game{
		opts:       opts,
		difficulty: opts.Difficulty,
		printer:    message.NewPrinter(language.English),
	}
}

// ID returns the game identifier.
func (g *Game) ID() string { return ID }

// Title returns the display name.
func (g *Game) Title() string { return "Jewels" }

// Reset deals a new board seeded from cfg.Seed.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	seed := uint64(cfg.Seed)
	g.rng = rand.New(rand.NewPCG(seed, 0x9e3779b97f4a7c15))
	g.tick = 0
	g.dt = cfg.TickDuration()
	g.paused = false

	g.board = core.NewBoard(core.Params{
		Width:  g.opts.Width,
		Height: g.opts.Height,
		Colors: 2 + g.difficulty,
		Moves:  g.opts.Moves,
		Logger: g.opts.Logger,
	}, rand.New(rand.NewPCG(seed, 0)))
	g.board.SetSoundPlayer(g.opts.Sound)
	g.board.SetSoundEnabled(g.opts.SoundEnabled)
	if g.opts.Icons != nil {
		g.board.SetIconResolver(g.opts.Icons)
	}

	g.sparkles = newSparkleField(g.rng, g.opts.MaxSparkles)
	g.sparkleColors = visualColors(g.opts.Icons)
	if g.opts.Sparkles {
		g.board.SetEffectSpawner(g.sparkles)
	}

	g.restart()
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// restart clears per-board UI state after the board is dealt or loaded.
func (g *Game) restart() {
	g.cursor = core.C(g.board.Width()/2, g.board.Height()/2)
	g.hasSel = false
	g.shownScore = float64(g.board.Score())
	g.sparkles.clear()
}

// Resize follows a terminal resize without touching the board.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	if g.board == nil {
		return
	}
	w, h := g.layoutSize()
	g.tooSmall = g.screenW < w || g.screenH < h
	g.board.SetActive(!g.tooSmall && !g.paused)
}

// SetHiScore seeds the best score shown in the HUD.
func (g *Game) SetHiScore(score int) {
	g.hiScore = max(g.hiScore, score)
}

// SetSoundEnabled toggles sound effects.
func (g *Game) SetSoundEnabled(enabled bool) {
	g.opts.SoundEnabled = enabled
	if g.board != nil {
		g.board.SetSoundEnabled(enabled)
	}
}

// Board exposes the engine for hosts and tests.
func (g *Game) Board() *core.Board { return g.board }

// Difficulty returns the current difficulty level, 1..4.
func (g *Game) Difficulty() int { return g.difficulty }

// Now returns the virtual time of the current tick.
func (g *Game) Now() time.Time {
	return epoch.Add(time.Duration(g.tick) * g.dt)
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	if in.Has(platformcore.ActionPause) && !g.tooSmall {
		g.paused = !g.paused
		g.board.SetActive(!g.paused)
	}
	if g.paused || g.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	switch {
	case in.Has(platformcore.ActionRestart):
		g.board.Reset()
		g.restart()
	case in.Has(platformcore.ActionDifficulty):
		g.cycleDifficulty()
	default:
		g.handleInput(in)
	}

	g.tick++
	g.board.Update(g.Now(), g.dt)
	g.sparkles.step(g.dt)
	g.rollScore()

	return platformcore.StepResult{State: g.State()}
}

// cycleDifficulty moves to the next colour count and deals a new board.
func (g *Game) cycleDifficulty() {
	g.difficulty = config.NextDifficulty(g.difficulty)
	g.board.SetColorCount(2 + g.difficulty)
	g.board.Reset()
	g.restart()
	g.opts.Logger.Debug("difficulty changed", "level", g.difficulty, "colors", g.board.ColorCount())
}

// rollScore moves the displayed score toward the board score.
func (g *Game) rollScore() {
	target := float64(g.board.Score())
	if g.shownScore >= target {
		g.shownScore = target
	} else {
		g.shownScore = min(target, g.shownScore+max(1, (target-g.shownScore)*g.dt.Seconds()*10))
	}
	g.hiScore = max(g.hiScore, int(g.board.Score()))
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	return platformcore.GameState{
		Score:    int(g.board.Score()),
		Moves:    int(g.board.Moves()),
		GameOver: g.board.State() == core.StateGameOver,
		Paused:   g.paused || g.tooSmall,
	}
}

// Suspend serializes the board. A finished game has nothing to keep.
func (g *Game) Suspend() (string, bool) {
	if g.board.State() == core.StateGameOver {
		return "", false
	}
	blob, err := g.board.Serialize()
	if err != nil {
		g.opts.Logger.Error("failed to suspend board", "err", err)
		return "", false
	}
	return blob, true
}

// Resume loads a board saved by Suspend. On error the current board stays.
func (g *Game) Resume(blob string) error {
	if err := g.board.Deserialize(blob); err != nil {
		return err
	}
	g.restart()
	return nil
}
