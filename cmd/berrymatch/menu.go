package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/berrymatch/internal/platform/tui"
	"github.com/vovakirdan/berrymatch/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start Berry Match with a mode picker menu",
	Long: `Start Berry Match in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to pick a mode.
Leave a game with Esc to return to the menu; Q quits.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play the highlighted mode
  Tab          - Scoreboard
  Q            - Quit

Examples:
  berrymatch menu
  berrymatch menu --fps 30
  berrymatch menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger := newLogger(true)
	store := openStore()
	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			break
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		// A fixed seed replays the same board every time
		if settings.Seed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		back, err := tui.Run(game, store, cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		if !back {
			break
		}
	}

	if store != nil {
		store.Close()
	}
}
