package core

import (
	"github.com/shopspring/decimal"
)

// MaxWaves caps the cascade length of one move. A random source that keeps refilling
// matches would otherwise never settle; past the cap the board is reshuffled.
const MaxWaves = 256

// ResolveInput carries the cross-move state the caller owns.
type ResolveInput struct {
	// Combo entering the move. Values below 1 are treated as 1.
	Combo int
	// Streak of consecutive accepted swaps, this one included.
	Streak int
}

// WaveResult is one pass of the cascade loop.
type WaveResult struct {
	// Depth is 0 for the wave the swap triggered, 1 for the first cascade, and so on.
	Depth   int
	Groups  []MatchGroup
	Cleared []Coord

	Base       int
	Multiplier decimal.Decimal
	Points     int
	// Combo is the running combo this wave was scored with.
	Combo int
	// Double is the move-level flag: set from the depth-0 wave on when it cleared 2+ groups.
	Double bool
	// Hype is the event this wave emitted. Only the first qualifying wave of a move emits.
	Hype *HypeEvent

	// Before is the grid the wave was found on, Popped the same grid with the cleared
	// cells emptied, and After the grid once gravity and refill ran.
	Before Grid
	Popped Grid
	After  Grid
	Falls  []Fall
}

// Resolution is the full outcome of resolving one move.
type Resolution struct {
	Final      Grid
	Waves      []WaveResult
	FinalCombo int
	ScoreDelta int
	Reshuffled bool
}

// Hype returns the event emitted during the move, if any.
func (r Resolution) Hype() (HypeEvent, bool) {
	for _, w := range r.Waves {
		if w.Hype != nil {
			return *w.Hype, true
		}
	}
	return HypeEvent{}, false
}

// Depth returns the number of waves the move produced.
func (r Resolution) Depth() int {
	return len(r.Waves)
}

// Resolver drives the cascade loop one wave at a time so a presenter can pace it.
// Scanning finds matches; a wave pops them and collapses the board; a scan that finds
// nothing leaves the resolver stable.
type Resolver struct {
	e *Engine

	grid      Grid
	depth     int
	combo     int
	streak    int
	double    bool
	hypeShown bool
	stable    bool
	reshuffle bool
	score     int
	waves     []WaveResult
}

// NewResolver starts resolving g, usually the grid of an accepted swap.
// g must have the engine's shape and no empty cells.
func (e *Engine) NewResolver(g Grid, in ResolveInput) (*Resolver, error) {
	if err := e.checkGrid(g); err != nil {
		return nil, err
	}
	e.tiles.Reserve(g.MaxID())

	combo := in.Combo
	if combo < 1 {
		combo = 1
	}
	return &Resolver{
		e:      e,
		grid:   g,
		combo:  combo,
		streak: in.Streak,
	}, nil
}

// Step runs one wave. It returns false once the board is stable; by then a board left
// without legal moves has already been reshuffled.
func (r *Resolver) Step() (WaveResult, bool) {
	if r.stable {
		return WaveResult{}, false
	}
	if r.depth >= MaxWaves {
		r.e.log.Error("cascade did not settle, reshuffling", "waves", r.depth)
		r.grid = r.e.Reshuffle(r.grid)
		r.reshuffle = true
		r.stable = true
		return WaveResult{}, false
	}

	groups := FindMatches(r.grid)
	if len(groups) == 0 {
		r.settle()
		return WaveResult{}, false
	}

	if r.depth == 0 && len(groups) >= 2 {
		r.double = true
	}

	rules := r.e.rules
	score := rules.Score.WaveScore(groups, r.depth, r.combo)
	wave := WaveResult{
		Depth:      r.depth,
		Groups:     groups,
		Cleared:    UniqueCells(groups),
		Base:       score.Base,
		Multiplier: score.Multiplier,
		Points:     score.Points,
		Combo:      r.combo,
		Double:     r.double,
		Before:     r.grid,
	}

	ev, ok := rules.Hype.Select(HypeInput{
		Streak:     r.streak,
		Depth:      r.depth,
		GroupCount: len(groups),
		HadDouble:  r.double,
		GroupSizes: GroupSizes(groups),
	})
	if ok && !r.hypeShown {
		r.hypeShown = true
		wave.Hype = &ev
	}

	popped := r.grid.Clone()
	for _, c := range wave.Cleared {
		popped.Clear(c)
	}
	after, falls := r.e.Collapse(popped)
	wave.Popped = popped
	wave.After = after
	wave.Falls = falls

	r.e.log.Debug("wave resolved",
		"depth", wave.Depth,
		"groups", len(groups),
		"cleared", len(wave.Cleared),
		"points", wave.Points,
		"multiplier", wave.Multiplier.String(),
		"combo", wave.Combo,
	)

	r.grid = after
	r.depth++
	r.combo++
	r.score += wave.Points
	r.waves = append(r.waves, wave)
	return wave, true
}

func (r *Resolver) settle() {
	r.stable = true
	if !HasValidMove(r.grid) {
		r.e.log.Info("no legal moves left, reshuffling")
		r.grid = r.e.Reshuffle(r.grid)
		r.reshuffle = true
	}
}

// Done reports whether the board is stable.
func (r *Resolver) Done() bool {
	return r.stable
}

// Grid returns the current board.
func (r *Resolver) Grid() Grid {
	return r.grid
}

// Combo returns the running combo.
func (r *Resolver) Combo() int {
	return r.combo
}

// Result returns the resolution so far. It is final once Done reports true.
func (r *Resolver) Result() Resolution {
	return Resolution{
		Final:      r.grid,
		Waves:      r.waves,
		FinalCombo: r.combo,
		ScoreDelta: r.score,
		Reshuffled: r.reshuffle,
	}
}

// Resolve runs the cascade loop on g to completion. A grid that already contains matches
// is resolved like the grid of an accepted swap.
func (e *Engine) Resolve(g Grid, in ResolveInput) (Resolution, error) {
	r, err := e.NewResolver(g, in)
	if err != nil {
		return Resolution{}, err
	}
	for {
		if _, ok := r.Step(); !ok {
			break
		}
	}
	return r.Result(), nil
}
