package core

import (
	"fmt"
	"strings"
)

// Grid is a rectangular board of tiles stored row-major.
// Grids are values: every engine operation returns a new grid and never mutates its input.
type Grid struct {
	Rows  int
	Cols  int
	cells []Tile
}

// NewGrid creates a grid with every cell empty.
func NewGrid(rows, cols int) Grid {
	cells := make([]Tile, rows*cols)
	for i := range cells {
		cells[i] = NoTile
	}
	return Grid{Rows: rows, Cols: cols, cells: cells}
}

// ParseGrid builds a grid from one string per row. Letters 'A'..'Z' are tile types 0..25
// and '.' is an empty cell. Tiles get ids 1..n in row-major order.
func ParseGrid(rows ...string) (Grid, error) {
	if len(rows) == 0 {
		return Grid{}, fmt.Errorf("parse grid: no rows: %w", ErrInvalidInput)
	}
	cols := len(rows[0])
	if cols == 0 {
		return Grid{}, fmt.Errorf("parse grid: empty row: %w", ErrInvalidInput)
	}
	g := NewGrid(len(rows), cols)
	var id TileID
	for r, line := range rows {
		if len(line) != cols {
			return Grid{}, fmt.Errorf("parse grid: row %d has %d cells, want %d: %w", r, len(line), cols, ErrInvalidInput)
		}
		for c := 0; c < cols; c++ {
			ch := line[c]
			switch {
			case ch == '.':
				continue
			case ch >= 'A' && ch <= 'Z':
				id++
				g.Set(C(r, c), Tile{Type: TileType(ch - 'A'), ID: id})
			default:
				return Grid{}, fmt.Errorf("parse grid: bad cell %q at %s: %w", ch, C(r, c), ErrInvalidInput)
			}
		}
	}
	return g, nil
}

// MustParseGrid is ParseGrid for fixtures; it panics on malformed input.
func MustParseGrid(rows ...string) Grid {
	g, err := ParseGrid(rows...)
	if err != nil {
		panic(err)
	}
	return g
}

// InBounds reports whether c addresses a cell of the grid.
func (g Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.Rows && c.Col >= 0 && c.Col < g.Cols
}

// At returns the tile at c, or NoTile when c is outside the grid.
func (g Grid) At(c Coord) Tile {
	if !g.InBounds(c) {
		return NoTile
	}
	return g.cells[c.Row*g.Cols+c.Col]
}

// TypeAt returns the tile type at c, or Empty when c is outside the grid.
func (g Grid) TypeAt(c Coord) TileType {
	return g.At(c).Type
}

// Set stores t at c. It writes in place; callers working on a shared grid Clone first.
func (g *Grid) Set(c Coord, t Tile) {
	if !g.InBounds(c) {
		return
	}
	g.cells[c.Row*g.Cols+c.Col] = t
}

// Clear empties the cell at c in place.
func (g *Grid) Clear(c Coord) {
	g.Set(c, NoTile)
}

// Clone returns an independent copy of the grid.
func (g Grid) Clone() Grid {
	cells := make([]Tile, len(g.cells))
	copy(cells, g.cells)
	return Grid{Rows: g.Rows, Cols: g.Cols, cells: cells}
}

// Swap returns a copy of the grid with the tiles at a and b exchanged.
func (g Grid) Swap(a, b Coord) Grid {
	out := g.Clone()
	ta, tb := g.At(a), g.At(b)
	out.Set(a, tb)
	out.Set(b, ta)
	return out
}

// HasEmpty reports whether any cell is vacant.
func (g Grid) HasEmpty() bool {
	for _, t := range g.cells {
		if t.IsEmpty() {
			return true
		}
	}
	return false
}

// Equal reports whether both grids hold the same tiles, identities included.
func (g Grid) Equal(o Grid) bool {
	if g.Rows != o.Rows || g.Cols != o.Cols || len(g.cells) != len(o.cells) {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// SameTypes reports whether both grids have the same tile type in every cell.
func (g Grid) SameTypes(o Grid) bool {
	if g.Rows != o.Rows || g.Cols != o.Cols || len(g.cells) != len(o.cells) {
		return false
	}
	for i := range g.cells {
		if g.cells[i].Type != o.cells[i].Type {
			return false
		}
	}
	return true
}

// Types returns the tile types as a fresh [row][col] matrix.
func (g Grid) Types() [][]TileType {
	out := make([][]TileType, g.Rows)
	for r := 0; r < g.Rows; r++ {
		out[r] = make([]TileType, g.Cols)
		for c := 0; c < g.Cols; c++ {
			out[r][c] = g.cells[r*g.Cols+c].Type
		}
	}
	return out
}

// TypeCounts returns how many tiles of each type the grid holds. Empty cells are not counted.
func (g Grid) TypeCounts() map[TileType]int {
	counts := make(map[TileType]int)
	for _, t := range g.cells {
		if !t.IsEmpty() {
			counts[t.Type]++
		}
	}
	return counts
}

// MaxID returns the largest tile id on the grid.
func (g Grid) MaxID() TileID {
	var max TileID
	for _, t := range g.cells {
		if t.ID > max {
			max = t.ID
		}
	}
	return max
}

// String renders the grid in the ParseGrid format, one row per line.
func (g Grid) String() string {
	var sb strings.Builder
	for r := 0; r < g.Rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < g.Cols; c++ {
			t := g.cells[r*g.Cols+c].Type
			if t == Empty {
				sb.WriteByte('.')
			} else {
				sb.WriteByte(byte('A' + t))
			}
		}
	}
	return sb.String()
}
