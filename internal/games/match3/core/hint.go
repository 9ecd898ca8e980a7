package core

// forward lists the two swap directions tried from each cell: right, then down.
var forward = [2]Coord{{Row: 0, Col: 1}, {Row: 1, Col: 0}}

// FindHint returns the first swap, scanning cells row-major and trying right before down,
// that produces a match. It reports false when the board has no legal move.
func FindHint(g Grid) (Move, bool) {
	var found Move
	ok := false
	scanMoves(g, func(m Move) bool {
		found, ok = m, true
		return false
	})
	return found, ok
}

// ValidMoves lists every legal swap in FindHint order.
func ValidMoves(g Grid) []Move {
	var moves []Move
	scanMoves(g, func(m Move) bool {
		moves = append(moves, m)
		return true
	})
	return moves
}

// HasValidMove reports whether any swap on g produces a match.
func HasValidMove(g Grid) bool {
	_, ok := FindHint(g)
	return ok
}

// scanMoves calls fn for each legal swap until fn returns false.
func scanMoves(g Grid, fn func(Move) bool) {
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			from := C(r, c)
			if g.At(from).IsEmpty() {
				continue
			}
			for _, d := range forward {
				to := from.Add(d.Row, d.Col)
				if !g.InBounds(to) || g.At(to).IsEmpty() {
					continue
				}
				if HasMatches(g.Swap(from, to)) {
					if !fn(Move{From: from, To: to}) {
						return
					}
				}
			}
		}
	}
}
