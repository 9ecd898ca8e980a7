package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/berrymatch/internal/platform/tui"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Berry Match SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with the mode menu.
Runs are stored per server (all players share the same leaderboard).

Host key handling:
  - Uses --host-key (default ~/.berrymatch/ssh_host_key)
  - The key is generated on first start when the file does not exist

Examples:
  berrymatch serve                         # Listen on 0.0.0.0:2222
  berrymatch serve --port 2300             # Listen on port 2300
  berrymatch serve --host 127.0.0.1        # Local connections only
  berrymatch serve --host-key ./host_key   # Use specific host key

Users can connect with:
  ssh localhost -p 2222`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().String("host", "0.0.0.0", "SSH listen host")
	serveCmd.Flags().Int("port", 2222, "SSH listen port")
	serveCmd.Flags().String("host-key", "~/.berrymatch/ssh_host_key", "Path to host key file")
	serveCmd.Flags().Duration("idle-timeout", 30*time.Minute, "Idle timeout before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	logger := newLogger(false).WithPrefix("berrymatch-ssh")
	cfg := tui.SSHServerConfigFrom(settings)

	server, err := tui.NewSSHServer(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting Berry Match SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %d\n", settings.SSH.Port)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
