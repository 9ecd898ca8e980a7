// berrymatch is a match-3 puzzle for the terminal.
//
// Usage:
//
//	berrymatch list              - List the play modes
//	berrymatch play [mode]       - Play a mode (default: standard)
//	berrymatch menu              - Pick modes from an interactive menu
//	berrymatch serve             - Start the SSH server for remote play
//	berrymatch scores <mode>     - Show the best runs of a mode
//	berrymatch simulate          - Let the hint bot play a seeded game
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible boards
//	--db <path>          - Set database path (default: ~/.berrymatch/scores.db)
//	--rules <path>       - Use a custom rules file
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Log file of the interactive commands
//
// Every flag can also come from BERRYMATCH_* environment variables or
// ~/.berrymatch/settings.yaml.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/berrymatch/internal/config"
	"github.com/vovakirdan/berrymatch/internal/games/match3"
	"github.com/vovakirdan/berrymatch/internal/logging"
)

var (
	settings config.Settings
	logFile  *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "berrymatch",
	Short: "Berry Match - a match-3 puzzle in your terminal",
	Long: `Berry Match is a match-3 puzzle for the terminal. Swap neighbouring berries
to line up three or more, chain cascades and keep your combo alive.

Available commands:
  list      - Show the play modes
  play      - Play a mode directly
  menu      - Interactive mode picker
  serve     - Start SSH server for remote play
  scores    - View the best runs
  simulate  - Watch the hint bot play a seeded game

Examples:
  berrymatch play
  berrymatch play blitz --seed 42
  berrymatch menu
  berrymatch serve --port 2222
  berrymatch scores timed
  berrymatch simulate --seed 7`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.Int("fps", 60, "Tick rate (frames per second)")
	pf.Int64("seed", 0, "RNG seed (0 = random based on time)")
	pf.String("db", "~/"+config.AppDir+"/scores.db", "Path to scores database")
	pf.String("rules", "", "Path to a custom rules YAML")
	pf.String("log-level", "info", "Log level: debug, info, warn, error")
	pf.String("log-file", "~/"+config.AppDir+"/berrymatch.log", "Log file of the interactive commands")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
}

// loadSettings resolves flags, environment and the settings file before any command runs.
func loadSettings(cmd *cobra.Command, _ []string) error {
	s, err := config.LoadSettings(config.NewViper(), cmd.Flags())
	if err != nil {
		return err
	}
	settings = s
	match3.SetConfigPath(s.Rules)
	return nil
}

// newLogger builds the process logger and hands it to the games. Interactive commands
// log to the log file so the alt screen stays clean; the others log to stderr.
func newLogger(interactive bool) *log.Logger {
	logger := logging.New(os.Stderr, "berrymatch", settings.LogLevel)
	if interactive {
		f, err := logging.OpenFile(settings.LogFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			logger = logging.Discard()
		} else {
			logFile = f
			logger = logging.New(f, "berrymatch", settings.LogLevel)
		}
	}
	match3.SetLogger(logger)
	return logger
}

// resolveMode accepts a mode name ("blitz") or a game id ("match3_blitz").
func resolveMode(arg string) (match3.Mode, bool) {
	if m, ok := match3.ModeByGameID(arg); ok {
		return m, true
	}
	for _, m := range match3.Modes {
		if string(m) == arg {
			return m, true
		}
	}
	return "", false
}
