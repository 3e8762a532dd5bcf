// rewind is a top-down terminal action game with a rewind mechanic.
//
// Usage:
//
//	rewind list              - List available game modes
//	rewind play [mode]       - Play a mode (default: the campaign)
//	rewind menu              - Start menu to pick a mode interactively
//	rewind serve             - Start SSH server for remote play
//	rewind scores [mode]     - Show best runs
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible arena waves
//	--db <path>           - Set database path (default: ~/.rewind/scores.db)
//	--config <path>       - Custom game config YAML
//	--levels <dir>        - Directory of level YAML files
//	--difficulty <preset> - easy, normal, hard, fixed
//	--log <path>          - Log file (default: ~/.rewind/rewind.log)
//	--debug               - Debug logging and strict assertions
//	--mute                - Disable sound
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-rewind/internal/audio"
	"github.com/vovakirdan/tui-rewind/internal/core"
	"github.com/vovakirdan/tui-rewind/internal/diag"
	"github.com/vovakirdan/tui-rewind/internal/game"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagLevelDir   string
	flagDifficulty string
	flagLogPath    string
	flagDebug      bool
	flagMute       bool
	flagVolume     float64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rewind",
	Short: "Rewind - a top-down shooter where you can undo your mistakes",
	Long: `Rewind is a terminal action game. Dodge-roll through fire, drop a
rewind marker and snap back to it when a fight goes wrong.

Available commands:
  list     - Show all game modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  scores   - View best runs

Examples:
  rewind play
  rewind play rewind_arena --difficulty hard
  rewind play --level warehouse
  rewind menu
  rewind serve --ssh :2222
  rewind scores rewind_arena`,
	PersistentPreRunE: setupLogging,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
}

// logCloser closes the log file opened by setupLogging.
var logCloser io.Closer

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.rewind/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagLevelDir, "levels", "", "Directory of level YAML files")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogPath, "log", "~/.rewind/rewind.log", "Path to log file")
	pf.BoolVar(&flagDebug, "debug", false, "Debug logging; failed assertions panic")
	pf.BoolVar(&flagMute, "mute", false, "Disable sound")
	pf.Float64Var(&flagVolume, "volume", 0.5, "Sound volume from 0 to 1")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// setupLogging sends logs to a file so they do not tear the TUI.
func setupLogging(_ *cobra.Command, _ []string) error {
	closer, err := diag.Setup(flagLogPath, flagDebug)
	if err != nil {
		// Keep going with stderr logging
		log.Warn("could not open log file", "path", flagLogPath, "error", err)
		return nil
	}
	logCloser = closer
	return nil
}

// configureGames hands the shared flags to the game package.
func configureGames() {
	game.SetConfigPath(flagConfig)
	game.SetLevelDir(flagLevelDir)
	game.SetDifficultyPreset(flagDifficulty)
}

// runtimeConfig builds the runtime config from the terminal size.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openSound opens the speaker unless muted. The returned func releases it.
func openSound() (audio.Player, func()) {
	return audio.Open(flagMute, flagVolume)
}
