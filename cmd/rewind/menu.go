package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rewind/internal/game"
	"github.com/vovakirdan/tui-rewind/internal/platform/tui"
	"github.com/vovakirdan/tui-rewind/internal/registry"
	"github.com/vovakirdan/tui-rewind/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start Rewind with a mode picker menu",
	Long: `Start Rewind in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode.
After a run ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select mode
  Tab          - Scoreboard
  Q            - Quit

Examples:
  rewind menu
  rewind menu --fps 30
  rewind menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	configureGames()
	sound, closeSound := openSound()
	cfg := runtimeConfig()

	// Menu loop
	for {
		// Show menu and get selection
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		// Check if user quit
		if menuResult.Quit {
			break
		}

		// Check if user wants scoreboard
		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		if menuResult.GameID == "" {
			break
		}

		// Campaign start level
		if menuResult.GameID == "rewind" {
			selection, selErr := tui.RunLevelSelector(cfg)
			if selErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
				continue
			}
			// User pressed back or quit
			if selection == nil {
				continue
			}
			game.SetStartLevel(selection.Level)
		}

		// Create game instance
		g, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		// Update seed for each game
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		// Run the game
		if err := tui.Run(g, store, cfg, tui.Options{Sound: sound}); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}

		// Loop back to menu
	}

	// Cleanup
	closeSound()
	if store != nil {
		store.Close()
	}
}
