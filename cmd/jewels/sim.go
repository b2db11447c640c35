package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	platformcore "github.com/vovakirdan/tui-jewels/internal/core"
	"github.com/vovakirdan/tui-jewels/internal/games/jewels"
	"github.com/vovakirdan/tui-jewels/internal/games/jewels/core"
)

var (
	flagSimTicks  int
	flagSimAuto   bool
	flagSimJSON   bool
	flagSimRender bool
	flagSimConfig string
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a board without a terminal",
	Long: `Run a board headless for a number of ticks and print its final state.
With --auto a bot swaps random neighbours whenever the board is idle.
The same --seed always produces the same output.

Examples:
  jewels sim --seed 42 --ticks 600
  jewels sim --seed 7 --auto --ticks 3600 --json
  jewels sim --seed 7 --render`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 600, "Number of ticks to simulate")
	simCmd.Flags().BoolVar(&flagSimAuto, "auto", false, "Swap random neighbours while idle")
	simCmd.Flags().BoolVar(&flagSimJSON, "json", false, "Print the snapshot as JSON instead of YAML")
	simCmd.Flags().BoolVar(&flagSimRender, "render", false, "Print the final screen instead of the snapshot")
	simCmd.Flags().StringVar(&flagSimConfig, "config", "", "Path to custom config YAML")
}

func runSim(cmd *cobra.Command, _ []string) {
	jcfg, err := loadConfig(flagSimConfig, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := jewels.OptionsFromConfig(jcfg)
	opts.SoundEnabled = false
	opts.Logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "sim", Level: log.WarnLevel})

	cfg := platformcore.RuntimeConfig{ScreenW: 120, ScreenH: 40, TickRate: flagFPS, Seed: flagSeed}
	game := jewels.New(opts)
	game.Reset(cfg)

	bot := rand.New(rand.NewPCG(uint64(flagSeed), 1))
	swaps := 0
	for range flagSimTicks {
		if game.State().GameOver {
			break
		}
		if flagSimAuto && autoSwap(game.Board(), bot) {
			swaps++
		}
		game.Step(platformcore.NewInputFrame())
	}

	out := cmd.OutOrStdout()
	if flagSimRender {
		screen := platformcore.NewScreen(cfg.ScreenW, cfg.ScreenH)
		game.Render(screen)
		fmt.Fprintln(out, screen.String())
		return
	}
	if err := writeSnapshot(out, game.Snapshot(), flagSimJSON); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	opts.Logger.Info("simulation finished", "swaps", swaps)
}

// autoSwap tries one random adjacent swap on an idle board.
func autoSwap(b *core.Board, rng *rand.Rand) bool {
	if b.State() != core.StateIdle {
		return false
	}
	a := core.C(rng.IntN(b.Width()), rng.IntN(b.Height()))
	c := a
	if rng.IntN(2) == 0 {
		c.X++
	} else {
		c.Y++
	}
	if c.X >= b.Width() || c.Y >= b.Height() {
		return false
	}
	return b.TrySwap(a, c)
}

func writeSnapshot(w io.Writer, s jewels.Snapshot, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(s)
}
