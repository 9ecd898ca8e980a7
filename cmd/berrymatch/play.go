package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/berrymatch/internal/core"
	"github.com/vovakirdan/berrymatch/internal/games/match3"
	"github.com/vovakirdan/berrymatch/internal/platform/tui"
	"github.com/vovakirdan/berrymatch/internal/registry"
	"github.com/vovakirdan/berrymatch/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the given mode (standard when omitted).

Modes:
  standard  - 30 moves
  timed     - 2 minutes, unlimited moves
  blitz     - 15 moves
  endless   - no limits

Controls:
  Arrows/WASD  - Move the cursor
  Enter/Space  - Pick up a berry, then swap it with a neighbour
  Mouse        - Click two neighbouring berries to swap them
  H            - Show a hint
  P            - Pause
  R            - Restart
  Ctrl+S       - Save a screenshot
  Esc/Q        - Quit

Examples:
  berrymatch play
  berrymatch play blitz
  berrymatch play timed --seed 42
  berrymatch play --rules ./my-rules.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

// terminalSize returns the size of the controlling terminal, or 80x24.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

// runtimeConfig builds the game runtime settings for the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := terminalSize()
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: settings.FPS,
		Seed:     settings.Seed,
	}
}

// openStore opens the scores database, or returns nil with a warning.
func openStore() *storage.Store {
	store, err := storage.Open(settings.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

func runPlay(cmd *cobra.Command, args []string) {
	mode := match3.ModeStandard
	if len(args) == 1 {
		m, ok := resolveMode(args[0])
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", args[0])
			fmt.Fprintln(os.Stderr, "Run 'berrymatch list' to see the modes.")
			os.Exit(1)
		}
		mode = m
	}

	logger := newLogger(true)

	game, err := registry.Create(mode.GameID())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Continue without storage - the game still works
	store := openStore()

	_, runErr := tui.Run(game, store, runtimeConfig(), logger)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
