package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/berrymatch/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresRecent bool
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <mode>",
	Short: "Show the best runs of a mode",
	Long: `Display the best runs of the given mode with their moves, best chain,
best combo and the seed to replay them.

Examples:
  berrymatch scores standard
  berrymatch scores blitz --limit 20
  berrymatch scores timed --recent
  berrymatch scores endless --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the latest runs instead of the best")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every score of the mode")
}

func runScores(cmd *cobra.Command, args []string) {
	mode, ok := resolveMode(args[0])
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", args[0])
		fmt.Fprintln(os.Stderr, "Run 'berrymatch list' to see the modes.")
		os.Exit(1)
	}
	gameID := mode.GameID()
	logger := newLogger(false)

	store, err := storage.Open(settings.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		logger.Info("scores cleared", "game", gameID)
		return
	}

	var runs []storage.Run
	if flagScoresRecent {
		runs, err = store.RecentRuns(gameID, flagScoresLimit)
	} else {
		runs, err = store.TopRuns(gameID, flagScoresLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	title := "Best Runs"
	if flagScoresRecent {
		title = "Recent Runs"
	}
	fmt.Printf("%s - %s\n", title, mode.Title())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'berrymatch play %s' to set the first high score!\n", mode)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %-5s  %-6s  %-20s  %s\n",
		"Rank", "Score", "Moves", "Chain", "Combo", "Time", "Seed", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %-5s  %-6s  %-20s  %s\n",
		"----", "-----", "-----", "-----", "-----", "----", "----", "----")

	for i, r := range runs {
		fmt.Printf("  %-4d  %-8d  %-5d  %-5d  %-5d  %-6s  %-20d  %s\n",
			i+1, r.Score, r.Moves, r.BestChain, r.BestCombo,
			formatDuration(r.Duration), r.Seed, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil && stats.GamesCount > 0 {
		fmt.Printf("Best: %d  |  Games: %d  |  Average: %.0f\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore)
	}
}

// formatDuration prints a run length as m:ss.
func formatDuration(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
