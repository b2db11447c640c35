package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-jewels/internal/audio"
	"github.com/vovakirdan/tui-jewels/internal/core"
	"github.com/vovakirdan/tui-jewels/internal/games/jewels"
	"github.com/vovakirdan/tui-jewels/internal/platform/tui"
	"github.com/vovakirdan/tui-jewels/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagSound      bool
	flagSlot       string
	flagFresh      bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a board",
	Long: `Start playing. Quitting mid-game saves the board to a slot and the
next run resumes it.

Controls:
  Arrows/hjkl/wasd - Move cursor
  Space/Enter      - Select gem, then an adjacent gem to swap
  Mouse click      - Select gem
  Esc/X            - Deselect
  Tab              - Next difficulty (restarts)
  P                - Pause
  R                - Restart
  ?                - Full help
  Q/Ctrl+C         - Save and quit

Difficulty options:
  easy   - 3 colours, 15 moves
  normal - 4 colours
  hard   - 6 colours, 8 moves

Examples:
  jewels play
  jewels play --difficulty easy
  jewels play --slot morning --fresh
  jewels play --config ./my-jewels.yaml --sound=false`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().BoolVar(&flagSound, "sound", true, "Play sound effects (when enabled in config)")
	playCmd.Flags().StringVar(&flagSlot, "slot", "default", "Save slot name")
	playCmd.Flags().BoolVar(&flagFresh, "fresh", false, "Start a new board instead of resuming the slot")
}

func runPlay(_ *cobra.Command, _ []string) {
	jcfg, err := loadConfig(flagConfig, flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := fileLogger()
	defer closeLog()

	opts := jewels.OptionsFromConfig(jcfg)
	opts.SoundEnabled = opts.SoundEnabled && flagSound
	opts.Logger = logger.WithPrefix("jewels")

	if opts.SoundEnabled {
		player := audio.NewPlayer(jcfg.Sound.Volume, logger.WithPrefix("audio"))
		//nolint:errcheck // A player without a device stays silent
		player.Start()
		defer player.Close()
		opts.Sound = player
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(jewels.New(opts), cfg, tui.Session{
		Store:  store,
		Slot:   flagSlot,
		Fresh:  flagFresh,
		Logger: logger,
	})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
