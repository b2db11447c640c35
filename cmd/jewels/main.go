// jewels is a match-3 puzzle game for the terminal.
//
// Usage:
//
//	jewels play              - Play a board, resuming the last saved one
//	jewels scores            - Show high scores
//	jewels saves             - List or delete suspended boards
//	jewels sim               - Run a headless board and print its state
//	jewels serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.jewels/jewels.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "jewels",
	Short: "Jewels - swap gems in your terminal",
	Long: `Jewels is a match-3 puzzle game. Swap neighbouring gems to line up
three or more of a colour, chain cascades for a higher multiplier and
build power-ups that clear rows, columns or every gem of a colour.

Available commands:
  play     - Play a board
  scores   - View high scores
  saves    - Manage suspended boards
  sim      - Run a board without a terminal
  serve    - Start SSH server for remote play

Examples:
  jewels play
  jewels play --difficulty hard --fresh
  jewels scores --tui
  jewels serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.jewels/jewels.db", "Path to scores and saves database")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(savesCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
}
