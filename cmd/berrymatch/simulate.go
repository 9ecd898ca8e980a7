package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/berrymatch/internal/config"
	"github.com/vovakirdan/berrymatch/internal/games/match3"
)

var (
	flagSimMode  string
	flagSimTurns int
	flagSimBoard bool
	flagSimQuiet bool
)

// defaultSimTurns caps bot runs in modes without a move limit.
const defaultSimTurns = 100

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Let the hint bot play a seeded game",
	Long: `Play a game headless: the bot always takes the first hint move and every
move is printed with its waves, points and hype. The same seed and rules
always print the same game.

Examples:
  berrymatch simulate --seed 42
  berrymatch simulate --mode blitz --seed 7 --board
  berrymatch simulate --mode endless --turns 500 --quiet
  berrymatch simulate --rules ./my-rules.yaml --seed 1`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&flagSimMode, "mode", string(match3.ModeStandard), "Mode to play")
	simulateCmd.Flags().IntVar(&flagSimTurns, "turns", 0, "Maximum number of moves (0 = mode limit, 100 without one)")
	simulateCmd.Flags().BoolVar(&flagSimBoard, "board", false, "Print the board before and after")
	simulateCmd.Flags().BoolVar(&flagSimQuiet, "quiet", false, "Only print the summary")
}

func runSimulate(cmd *cobra.Command, _ []string) {
	mode, ok := resolveMode(flagSimMode)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", flagSimMode)
		os.Exit(1)
	}
	logger := newLogger(false)

	rules, err := config.LoadMatch3(settings.Rules)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading rules: %v\n", err)
		os.Exit(1)
	}

	seed := settings.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	session, err := match3.NewSeededSession(rules, mode, seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating session: %v\n", err)
		os.Exit(1)
	}

	limit := flagSimTurns
	if limit <= 0 && rules.Mode(string(mode)).Moves <= 0 {
		limit = defaultSimTurns
	}

	fmt.Printf("%s - seed %d\n\n", mode.Title(), seed)
	if flagSimBoard {
		fmt.Println(session.Grid())
	}

	turns, err := match3.Autoplay(session, limit, func(n int, t match3.Turn) {
		if !flagSimQuiet {
			printTurn(n, t)
		}
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error playing move %d: %v\n", turns+1, err)
		os.Exit(1)
	}

	if flagSimBoard {
		fmt.Println(session.Grid())
	}

	stats := session.Stats()
	fmt.Printf("Final score: %d after %d moves (best chain %d, best combo %d, reshuffles %d)\n",
		session.Score(), turns, stats.BestChain, stats.BestCombo, stats.Reshuffles)
	logger.Debug("simulation done", "mode", mode, "seed", seed, "score", session.Score(), "turns", turns)
}

// printTurn prints one settled move and its waves.
func printTurn(n int, t match3.Turn) {
	res := t.Resolution
	fmt.Printf("#%-3d %s  +%d  combo %d  streak %d\n",
		n, t.Swap.Move, res.ScoreDelta, t.ComboAfter, t.Streak)
	for _, w := range res.Waves {
		double := ""
		if w.Double {
			double = "  double"
		}
		fmt.Printf("     wave %d: %2d tiles  %d x %s = %d%s\n",
			w.Depth+1, len(w.Cleared), w.Base, w.Multiplier.String(), w.Points, double)
	}
	if ev, ok := t.Hype(); ok {
		fmt.Printf("     hype: %s (%s, intensity %d)\n", ev.Label, ev.Kind, ev.Intensity)
	}
	if res.Reshuffled {
		fmt.Println("     no moves left, board reshuffled")
	}
}
