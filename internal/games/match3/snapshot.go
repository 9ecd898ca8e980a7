package match3

import (
	"time"

	m3 "github.com/vovakirdan/berrymatch/internal/games/match3/core"
)

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Mode      string
	Board     [][]m3.TileType
	Score     int
	Combo     int
	Streak    int
	MovesLeft int
	TimeLeft  time.Duration
	Cursor    m3.Coord
	Phase     string
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.State().GameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	moves, _ := g.session.MovesLeft()
	left, _ := g.session.TimeLeft()
	return Snapshot{
		Tick:      g.tick,
		Mode:      string(g.mode),
		Board:     g.session.Grid().Types(),
		Score:     g.session.Score(),
		Combo:     g.session.Combo(),
		Streak:    g.session.Streak(),
		MovesLeft: moves,
		TimeLeft:  left,
		Cursor:    g.cursor,
		Phase:     g.anim.phase.String(),
		State:     state,
	}
}
