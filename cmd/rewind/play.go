package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rewind/internal/game"
	"github.com/vovakirdan/tui-rewind/internal/platform/tui"
	"github.com/vovakirdan/tui-rewind/internal/registry"
	"github.com/vovakirdan/tui-rewind/internal/storage"
)

var (
	flagLevel string
	flagQuick bool
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game mode",
	Long: `Start playing the given mode, the campaign when none is named.

Controls:
  WASD/Arrows    - Move (hold)
  Shift+move     - Roll in that direction
  Space          - Roll
  Mouse/F        - Aim and fire (hold for automatic guns)
  R              - Reload, restart after game over
  Q/Tab          - Rewind to the marker
  E              - Interact
  Enter          - Next dialogue line
  G              - Next gun
  P/Esc          - Pause
  ?              - Toggle key help
  Ctrl+C         - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  rewind play
  rewind play --quick
  rewind play --level warehouse
  rewind play rewind_arena --difficulty hard
  rewind play --levels ./my-levels --config ./my-rewind.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLevel, "level", "", "Campaign level ID to start from")
	playCmd.Flags().BoolVar(&flagQuick, "quick", false, "Skip the level picker and start at the first level")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := "rewind"
	if len(args) > 0 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'rewind list' to see available modes.")
		os.Exit(1)
	}

	configureGames()
	cfg := runtimeConfig()

	// Show the campaign level picker unless a level was given
	level := flagLevel
	if gameID == "rewind" && level == "" && !flagQuick {
		selection, selErr := tui.RunLevelSelector(cfg)
		if selErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
			os.Exit(1)
		}
		// User pressed back or quit
		if selection == nil {
			return
		}
		level = selection.Level
	}
	game.SetStartLevel(level)

	// Create game instance
	g, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	sound, closeSound := openSound()

	// Run the game
	runErr := tui.Run(g, store, cfg, tui.Options{Sound: sound})

	closeSound()
	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
