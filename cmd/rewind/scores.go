package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rewind/internal/registry"
	"github.com/vovakirdan/tui-rewind/internal/storage"
)

var (
	flagRecent int
	flagRun    string
	flagClear  bool
)

var errNoRun = errors.New("no such run")

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show best runs for a mode",
	Long: `Display the top 10 runs for the given mode. Without a mode, show a
summary of every mode and the most recent runs.

Examples:
  rewind scores
  rewind scores rewind
  rewind scores rewind_arena --clear
  rewind scores --run 6f1c2d3e-...`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 10, "Number of recent runs in the summary")
	scoresCmd.Flags().StringVar(&flagRun, "run", "", "Show a single run by its id")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every run of the given mode")
}

func runScores(cmd *cobra.Command, args []string) {
	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagRun != "" {
		if err := printRun(out, store, flagRun); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if len(args) == 0 {
		if flagClear {
			fmt.Fprintln(os.Stderr, "Error: --clear needs a mode")
			os.Exit(1)
		}
		if err := printSummary(out, store, flagRecent); err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
			os.Exit(1)
		}
		return
	}

	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'rewind list' to see available modes.")
		os.Exit(1)
	}

	if flagClear {
		if err := clearRuns(out, store, gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Get game title
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	if err := printBest(out, store, gameID, game.Title()); err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}
}

// printBest prints the top runs of one mode followed by its totals.
func printBest(w io.Writer, store *storage.Store, gameID, title string) error {
	runs, err := store.TopRuns(gameID, 10)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Best Runs - %s\n\n", title)

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Play 'rewind play %s' to set the first record!\n", gameID)
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-6s  %-16s  %-7s  %s\n", "Rank", "Kills", "Level", "Time", "Date")
	fmt.Fprintf(w, "  %-4s  %-6s  %-16s  %-7s  %s\n", "----", "-----", "-----", "----", "----")
	for i, r := range runs {
		fmt.Fprintf(w, "  %-4d  %-6d  %-16s  %-7s  %s\n",
			i+1, r.Score, reached(r), clock(r.Duration), r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Best: %d  |  Runs: %d  |  Clears: %d  |  Average: %.1f\n",
		stats.HighScore, stats.GamesCount, stats.Clears, stats.AvgScore)
	return nil
}

// printSummary prints per-mode totals and the latest runs.
func printSummary(w io.Writer, store *storage.Store, recentLimit int) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Modes")
	fmt.Fprintln(w)
	if len(all) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		return nil
	}
	fmt.Fprintf(w, "  %-14s  %-5s  %-6s  %-5s  %s\n", "Mode", "Runs", "Clears", "Best", "Last played")
	for _, info := range registry.List() {
		st, ok := all[info.ID]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "  %-14s  %-5d  %-6d  %-5d  %s\n",
			info.ID, st.GamesCount, st.Clears, st.HighScore, st.LastPlayed.Format("2006-01-02 15:04"))
	}

	recent, err := store.RecentRuns(recentLimit)
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Recent runs")
	fmt.Fprintln(w)
	for _, r := range recent {
		fmt.Fprintf(w, "  %s  %-14s  %-6d  %-7s  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.GameID, r.Score, clock(r.Duration), r.RunID)
	}
	return nil
}

// printRun prints every recorded field of one run.
func printRun(w io.Writer, store *storage.Store, runID string) error {
	r, err := store.RunByID(runID)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("%w: %s", errNoRun, runID)
	}
	fmt.Fprintf(w, "Run     %s\n", r.RunID)
	fmt.Fprintf(w, "Mode    %s\n", r.GameID)
	fmt.Fprintf(w, "Kills   %d\n", r.Score)
	fmt.Fprintf(w, "Reached %s\n", reached(*r))
	fmt.Fprintf(w, "Time    %s\n", clock(r.Duration))
	fmt.Fprintf(w, "Date    %s\n", r.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}

// clearRuns deletes the runs of gameID and reports how many went.
func clearRuns(w io.Writer, store *storage.Store, gameID string) error {
	n, err := store.ClearRuns(gameID)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Cleared %d runs of %s\n", n, gameID)
	return nil
}

// reached names how far a run got.
func reached(r storage.Run) string {
	if r.Cleared {
		return "cleared"
	}
	return r.Level
}

// clock formats a duration as m:ss.
func clock(d time.Duration) string {
	s := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
