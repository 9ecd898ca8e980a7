package core

// Axis is the direction of a match run.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// MinRun is the shortest run of equal tiles that counts as a match.
const MinRun = 3

// MatchGroup is a maximal run of at least MinRun equal tiles along one axis.
type MatchGroup struct {
	Type  TileType
	Axis  Axis
	Cells []Coord
}

// Size returns the number of cells in the run.
func (m MatchGroup) Size() int {
	return len(m.Cells)
}

// FindMatches returns every maximal run on the grid: horizontal runs row by row from the
// left, then vertical runs column by column from the top. Empty cells never match.
// A cell shared by a horizontal and a vertical run appears in both groups.
func FindMatches(g Grid) []MatchGroup {
	var groups []MatchGroup

	for r := 0; r < g.Rows; r++ {
		c := 0
		for c < g.Cols {
			t := g.TypeAt(C(r, c))
			end := c + 1
			for end < g.Cols && g.TypeAt(C(r, end)) == t {
				end++
			}
			if t != Empty && end-c >= MinRun {
				cells := make([]Coord, 0, end-c)
				for i := c; i < end; i++ {
					cells = append(cells, C(r, i))
				}
				groups = append(groups, MatchGroup{Type: t, Axis: Horizontal, Cells: cells})
			}
			c = end
		}
	}

	for c := 0; c < g.Cols; c++ {
		r := 0
		for r < g.Rows {
			t := g.TypeAt(C(r, c))
			end := r + 1
			for end < g.Rows && g.TypeAt(C(end, c)) == t {
				end++
			}
			if t != Empty && end-r >= MinRun {
				cells := make([]Coord, 0, end-r)
				for i := r; i < end; i++ {
					cells = append(cells, C(i, c))
				}
				groups = append(groups, MatchGroup{Type: t, Axis: Vertical, Cells: cells})
			}
			r = end
		}
	}

	return groups
}

// HasMatches reports whether the grid contains at least one run.
func HasMatches(g Grid) bool {
	for r := 0; r < g.Rows; r++ {
		for c := 0; c+MinRun <= g.Cols; c++ {
			if runAt(g, C(r, c), 0, 1) {
				return true
			}
		}
	}
	for c := 0; c < g.Cols; c++ {
		for r := 0; r+MinRun <= g.Rows; r++ {
			if runAt(g, C(r, c), 1, 0) {
				return true
			}
		}
	}
	return false
}

func runAt(g Grid, start Coord, dr, dc int) bool {
	t := g.TypeAt(start)
	if t == Empty {
		return false
	}
	for i := 1; i < MinRun; i++ {
		if g.TypeAt(start.Add(dr*i, dc*i)) != t {
			return false
		}
	}
	return true
}

// UniqueCells flattens the groups into a list of distinct coordinates in first-seen order.
func UniqueCells(groups []MatchGroup) []Coord {
	seen := make(map[Coord]bool)
	var cells []Coord
	for _, grp := range groups {
		for _, c := range grp.Cells {
			if seen[c] {
				continue
			}
			seen[c] = true
			cells = append(cells, c)
		}
	}
	return cells
}

// LargestGroup returns the size of the biggest group, or 0 when there are none.
func LargestGroup(groups []MatchGroup) int {
	largest := 0
	for _, grp := range groups {
		if grp.Size() > largest {
			largest = grp.Size()
		}
	}
	return largest
}

// GroupSizes returns the size of each group in order.
func GroupSizes(groups []MatchGroup) []int {
	sizes := make([]int, len(groups))
	for i, grp := range groups {
		sizes[i] = grp.Size()
	}
	return sizes
}
