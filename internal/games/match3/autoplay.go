package match3

import (
	"math/rand"

	"github.com/vovakirdan/berrymatch/internal/config"
	"github.com/vovakirdan/berrymatch/internal/games/match3/core"
)

// NewSeededSession builds an engine from a rules file and starts a session of mode on a
// board generated from seed.
func NewSeededSession(rules config.Match3Config, mode Mode, seed int64) (*Session, error) {
	eng, err := core.New(BoardFromConfig(rules.Board), RulesFromConfig(rules), rand.New(rand.NewSource(seed)),
		core.WithLogger(logger.With("game", mode.GameID())))
	if err != nil {
		return nil, err
	}
	return NewSession(eng, SessionConfigFrom(rules, mode)), nil
}

// Autoplay plays the first hint move over and over until the session ends, the board
// has no move left or limit turns were played. A limit <= 0 means no cap, which never
// stops on its own in endless mode. Each settled turn is passed to fn.
// Returns the number of turns played.
func Autoplay(s *Session, limit int, fn func(n int, t Turn)) (int, error) {
	n := 0
	for !s.Over() && (limit <= 0 || n < limit) {
		mv, ok := s.Hint()
		if !ok {
			break
		}
		turn, err := s.Swap(mv.From, mv.To)
		if err != nil {
			return n, err
		}
		n++
		if fn != nil {
			fn(n, turn)
		}
	}
	return n, nil
}
