package match3

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/berrymatch/internal/config"
	"github.com/vovakirdan/berrymatch/internal/logging"
	"github.com/vovakirdan/berrymatch/internal/registry"
)

// Mode is a named set of move and time limits.
type Mode string

const (
	ModeStandard Mode = config.ModeStandard
	ModeTimed    Mode = config.ModeTimed
	ModeBlitz    Mode = config.ModeBlitz
	ModeEndless  Mode = config.ModeEndless
)

// Modes lists the play modes in menu order.
var Modes = []Mode{ModeStandard, ModeTimed, ModeBlitz, ModeEndless}

// GameID returns the registry id of a mode. Scores are kept per id.
func (m Mode) GameID() string {
	if m == ModeStandard {
		return "match3"
	}
	return "match3_" + string(m)
}

// Title returns the display name.
func (m Mode) Title() string {
	switch m {
	case ModeTimed:
		return "Berry Match (Time Attack)"
	case ModeBlitz:
		return "Berry Match (Blitz)"
	case ModeEndless:
		return "Berry Match (Endless)"
	default:
		return "Berry Match"
	}
}

// Description returns the menu blurb.
func (m Mode) Description() string {
	switch m {
	case ModeTimed:
		return "2 minutes on the clock, unlimited moves"
	case ModeBlitz:
		return "15 moves, fast & dirty"
	case ModeEndless:
		return "No limits, just vibes"
	default:
		return "30 moves, score as high as you can"
	}
}

// ModeByGameID maps a registry id back to its mode.
func ModeByGameID(id string) (Mode, bool) {
	for _, m := range Modes {
		if m.GameID() == id {
			return m, true
		}
	}
	return "", false
}

// Package-level settings shared by every game instance.
var (
	configPath string
	logger     = logging.Discard()
)

// SetConfigPath sets a custom rules file path. Empty means the default search order.
func SetConfigPath(path string) {
	configPath = path
}

// SetLogger sets the logger handed to new engines.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = logging.Discard()
	}
	logger = l
}

func init() {
	for _, m := range Modes {
		registry.Register(m.GameID(), func() registry.Game {
			return New(m)
		})
	}
}
