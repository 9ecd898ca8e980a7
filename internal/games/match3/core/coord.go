package core

import "fmt"

// Coord addresses a grid cell. Row 0 is the top row, Col 0 the leftmost column.
type Coord struct {
	Row int
	Col int
}

// C is a convenience constructor for Coord.
func C(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Add returns a new Coord offset by (dr, dc).
func (c Coord) Add(dr, dc int) Coord {
	return Coord{Row: c.Row + dr, Col: c.Col + dc}
}

// Manhattan returns the Manhattan distance to another coordinate.
func (c Coord) Manhattan(other Coord) int {
	dr := c.Row - other.Row
	dc := c.Col - other.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

// Adjacent reports whether two cells share an edge.
func (c Coord) Adjacent(other Coord) bool {
	return c.Manhattan(other) == 1
}

// Move is a player swap of two adjacent cells.
type Move struct {
	From Coord
	To   Coord
}

// String returns a string representation of the move.
func (m Move) String() string {
	return fmt.Sprintf("%s<->%s", m.From, m.To)
}
