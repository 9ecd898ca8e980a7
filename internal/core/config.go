package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Ticks converts a duration in milliseconds to a whole number of ticks, at least one.
func (c RuntimeConfig) Ticks(ms int) int {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	n := (ms*rate + 999) / 1000
	if n < 1 {
		n = 1
	}
	return n
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	// Cues name the things that happened this tick ("swap", "pop", "hype", ...)
	// for platform layers that want to react, such as a terminal bell.
	Cues []string
}
