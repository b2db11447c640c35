package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vovakirdan/tui-jewels/internal/games/jewels"
	"github.com/vovakirdan/tui-jewels/internal/storage"
)

var savesCmd = &cobra.Command{
	Use:   "saves [delete <slot>]",
	Short: "List or delete suspended boards",
	Long: `Boards are saved to a slot when you quit mid-game. Use this command
to see which slots hold a board or to throw one away.

Examples:
  jewels saves
  jewels saves delete morning`,
	Args: cobra.MaximumNArgs(2),
	Run:  runSaves,
}

func runSaves(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) > 0 {
		if args[0] != "delete" || len(args) != 2 {
			fmt.Fprintln(os.Stderr, "Usage: jewels saves delete <slot>")
			os.Exit(1)
		}
		deleteSave(store, args[1])
		return
	}

	saves, err := store.ListSaves(jewels.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing saves: %v\n", err)
		os.Exit(1)
	}
	if len(saves) == 0 {
		fmt.Println("No suspended boards.")
		return
	}

	p := message.NewPrinter(language.English)
	p.Printf("  %-16s  %-6s  %-10s  %s\n", "Slot", "Moves", "Score", "Saved")
	p.Printf("  %-16s  %-6s  %-10s  %s\n", "----", "-----", "-----", "-----")
	for _, s := range saves {
		p.Printf("  %-16s  %-6d  %-10d  %s\n", s.Slot, s.Moves, s.Score, s.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
}

func deleteSave(store *storage.Store, slot string) {
	if _, err := store.LoadGame(slot, jewels.ID); errors.Is(err, storage.ErrNoSave) {
		fmt.Fprintf(os.Stderr, "No board saved in slot %q\n", slot)
		os.Exit(1)
	}
	if err := store.DeleteGame(slot, jewels.ID); err != nil {
		fmt.Fprintf(os.Stderr, "Error deleting save: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Deleted slot %q\n", slot)
}
