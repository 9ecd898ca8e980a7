package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/berrymatch/internal/games/match3"
	"github.com/vovakirdan/berrymatch/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the play modes",
	Long:  `Shows every play mode with its game id and a short description.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	fmt.Println("Play modes:")
	fmt.Println()

	// Calculate column widths
	maxModeLen, maxIDLen := 4, 2 // "Mode", "ID" headers
	for _, m := range match3.Modes {
		maxModeLen = max(maxModeLen, len(m))
		maxIDLen = max(maxIDLen, len(m.GameID()))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxModeLen, "Mode", maxIDLen, "ID", "Description")
	fmt.Printf("  %-*s  %-*s  %s\n", maxModeLen, "----", maxIDLen, "--", "-----------")

	for _, m := range match3.Modes {
		info, ok := registry.Info(m.GameID())
		if !ok {
			continue
		}
		fmt.Printf("  %-*s  %-*s  %s\n", maxModeLen, m, maxIDLen, info.ID, info.Description)
	}

	fmt.Println()
	fmt.Println("Run 'berrymatch play <mode>' to play.")
}
