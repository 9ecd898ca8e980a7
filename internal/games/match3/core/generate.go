package core

const (
	// MaxGenerateAttempts bounds the search for a match-free board with a legal move.
	MaxGenerateAttempts = 100
	// MaxReshuffleAttempts bounds the permutations tried before Reshuffle regenerates.
	MaxReshuffleAttempts = 100
)

// GenerateReport describes how a board was produced.
type GenerateReport struct {
	Attempts int
	// Fallback is set when the attempt budget ran out. The board is still match-free:
	// the last match-free candidate, or the two-type pattern when no candidate was,
	// permuted toward a legal move when a permutation has one.
	Fallback bool
	Err      error
	// Stuck is set when the fallback board has no legal move either.
	Stuck bool
}

// Generate returns a board with no matches and at least one legal move.
// See GenerateWithReport for the exhaustion fallback.
func (e *Engine) Generate() Grid {
	g, _ := e.GenerateWithReport()
	return g
}

// GenerateWithReport is Generate plus a report of the attempts spent.
// A candidate is accepted only when it has no matches and a legal move. When
// MaxGenerateAttempts candidates all fail, the report carries ErrGenerationExhausted.
func (e *Engine) GenerateWithReport() (Grid, GenerateReport) {
	var clean Grid
	haveClean := false
	for attempt := 1; attempt <= MaxGenerateAttempts; attempt++ {
		g := e.buildMatchFree()
		if HasMatches(g) {
			continue
		}
		if HasValidMove(g) {
			if attempt > 1 {
				e.log.Debug("board generated", "attempts", attempt)
			}
			return g, GenerateReport{Attempts: attempt}
		}
		clean, haveClean = g, true
	}

	if !haveClean {
		clean = e.patternBoard()
	}
	report := GenerateReport{
		Attempts: MaxGenerateAttempts,
		Fallback: true,
		Err:      ErrGenerationExhausted,
	}
	if g, ok := e.permute(clean); ok {
		clean = g
	} else {
		report.Stuck = true
	}

	e.log.Warn("board generation exhausted, using fallback board",
		"attempts", MaxGenerateAttempts,
		"rows", e.cfg.Rows,
		"cols", e.cfg.Cols,
		"types", e.cfg.TileTypes,
		"stuck", report.Stuck,
	)
	return clean, report
}

// patternBoard lays types 0 and 1 out in 2x2 blocks. No run longer than two fits in it.
// It draws no randomness.
func (e *Engine) patternBoard() Grid {
	g := NewGrid(e.cfg.Rows, e.cfg.Cols)
	for r := 0; r < e.cfg.Rows; r++ {
		for c := 0; c < e.cfg.Cols; c++ {
			g.Set(C(r, c), e.tiles.New(TileType((r/2+c/2)%2)))
		}
	}
	return g
}

// buildMatchFree fills the board row-major, never placing a tile that would complete a run
// with the two tiles to its left or the two above. With too few types to avoid both, the
// tile is drawn unrestricted.
func (e *Engine) buildMatchFree() Grid {
	g := NewGrid(e.cfg.Rows, e.cfg.Cols)
	allowed := make([]TileType, 0, e.cfg.TileTypes)

	for r := 0; r < e.cfg.Rows; r++ {
		for c := 0; c < e.cfg.Cols; c++ {
			left, up := Empty, Empty
			if c >= 2 {
				if t := g.TypeAt(C(r, c-1)); t == g.TypeAt(C(r, c-2)) {
					left = t
				}
			}
			if r >= 2 {
				if t := g.TypeAt(C(r-1, c)); t == g.TypeAt(C(r-2, c)) {
					up = t
				}
			}

			allowed = allowed[:0]
			for t := TileType(0); int(t) < e.cfg.TileTypes; t++ {
				if t != left && t != up {
					allowed = append(allowed, t)
				}
			}

			var t TileType
			if len(allowed) == 0 {
				t = e.tiles.RandomType()
			} else {
				t = allowed[e.rng.Intn(len(allowed))]
			}
			g.Set(C(r, c), e.tiles.New(t))
		}
	}
	return g
}

// Reshuffle permutes the tiles of g until the board has no matches and a legal move.
// Tile identities travel with their tiles. Empty cells are filled first. After
// MaxReshuffleAttempts failed permutations a fresh board is generated instead, which does
// not preserve the tile multiset.
func (e *Engine) Reshuffle(g Grid) Grid {
	src := g.Clone()
	for r := 0; r < src.Rows; r++ {
		for c := 0; c < src.Cols; c++ {
			if src.At(C(r, c)).IsEmpty() {
				src.Set(C(r, c), e.tiles.Random())
			}
		}
	}

	if out, ok := e.permute(src); ok {
		return out
	}

	e.log.Warn("reshuffle exhausted, regenerating board", "attempts", MaxReshuffleAttempts)
	return e.Generate()
}

// permute tries up to MaxReshuffleAttempts random permutations of the full grid src and
// returns the first one with no matches and a legal move.
func (e *Engine) permute(src Grid) (Grid, bool) {
	tiles := make([]Tile, len(src.cells))
	copy(tiles, src.cells)

	for attempt := 1; attempt <= MaxReshuffleAttempts; attempt++ {
		for i := len(tiles) - 1; i > 0; i-- {
			j := e.rng.Intn(i + 1)
			tiles[i], tiles[j] = tiles[j], tiles[i]
		}
		out := src.Clone()
		copy(out.cells, tiles)
		if !HasMatches(out) && HasValidMove(out) {
			e.log.Debug("board reshuffled", "attempts", attempt)
			return out, true
		}
	}
	return Grid{}, false
}
