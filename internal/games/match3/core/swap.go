package core

import "fmt"

// SwapResult is the outcome of a swap attempt.
type SwapResult struct {
	Move     Move
	Accepted bool
	// Grid is the swapped grid when accepted, otherwise the untouched input grid.
	Grid Grid
	// Matches are the wave-0 groups the swap created.
	Matches []MatchGroup
}

// AttemptSwap validates a player swap. Coordinates outside the grid, non-adjacent cells
// or empty cells give an error wrapping ErrInvalidInput. A legal swap that creates no
// match is rejected without error; the caller plays it back as a failed swap.
func (e *Engine) AttemptSwap(g Grid, from, to Coord) (SwapResult, error) {
	res := SwapResult{Move: Move{From: from, To: to}, Grid: g}

	if !g.InBounds(from) || !g.InBounds(to) {
		return res, fmt.Errorf("swap %s: out of bounds: %w", res.Move, ErrInvalidInput)
	}
	if !from.Adjacent(to) {
		return res, fmt.Errorf("swap %s: cells not adjacent: %w", res.Move, ErrInvalidInput)
	}
	if g.At(from).IsEmpty() || g.At(to).IsEmpty() {
		return res, fmt.Errorf("swap %s: empty cell: %w", res.Move, ErrInvalidInput)
	}

	swapped := g.Swap(from, to)
	groups := FindMatches(swapped)
	if len(groups) == 0 {
		e.log.Debug("swap rejected", "move", res.Move)
		return res, nil
	}

	res.Accepted = true
	res.Grid = swapped
	res.Matches = groups
	return res, nil
}
