package core

// Fall records one tile's movement during a collapse. Tiles spawned by refill start above
// the board, so From.Row is negative for them.
type Fall struct {
	ID   TileID
	From Coord
	To   Coord
	// Spawned is set for tiles created by refill.
	Spawned bool
}

// Distance returns how many rows the tile fell.
func (f Fall) Distance() int {
	return f.To.Row - f.From.Row
}

// Gravity compacts every column toward the bottom, keeping the relative order of the
// surviving tiles. It draws no randomness. Only tiles that moved are reported.
func Gravity(g Grid) (Grid, []Fall) {
	out := NewGrid(g.Rows, g.Cols)
	var falls []Fall
	for c := 0; c < g.Cols; c++ {
		dst := g.Rows - 1
		for r := g.Rows - 1; r >= 0; r-- {
			t := g.At(C(r, c))
			if t.IsEmpty() {
				continue
			}
			out.Set(C(dst, c), t)
			if dst != r {
				falls = append(falls, Fall{ID: t.ID, From: C(r, c), To: C(dst, c)})
			}
			dst--
		}
	}
	return out, falls
}

// refill fills the empty cells with fresh random tiles, column by column and top to bottom
// within a column. A column with n vacated cells drops its new tiles in from n rows above.
func (e *Engine) refill(g Grid) (Grid, []Fall) {
	out := g.Clone()
	var falls []Fall
	for c := 0; c < g.Cols; c++ {
		vacant := 0
		for r := 0; r < g.Rows && g.At(C(r, c)).IsEmpty(); r++ {
			vacant++
		}
		for r := 0; r < vacant; r++ {
			t := e.tiles.Random()
			out.Set(C(r, c), t)
			falls = append(falls, Fall{ID: t.ID, From: C(r-vacant, c), To: C(r, c), Spawned: true})
		}
	}
	return out, falls
}

// Collapse applies gravity and then refills the vacated cells.
func (e *Engine) Collapse(g Grid) (Grid, []Fall) {
	settled, falls := Gravity(g)
	filled, spawned := e.refill(settled)
	return filled, append(falls, spawned...)
}
