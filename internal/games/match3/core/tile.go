// Package core implements the match-3 engine: board generation, match detection,
// swap validation, cascade resolution, scoring and hype selection.
//
// Everything here is pure game logic. The package holds no timers, draws nothing and
// keeps no state between calls other than the injected random source and the tile id
// counter, so the same seed and the same moves always produce the same boards.
package core

// TileType identifies what a tile is. Two tiles match when their types are equal.
type TileType int

// Empty marks a vacant cell.
const Empty TileType = -1

// TileID is a tile's identity. It follows the physical tile while it falls or gets
// shuffled so a presenter can animate it. Game logic never reads it.
type TileID uint64

// Tile is the content of one grid cell.
type Tile struct {
	Type TileType
	ID   TileID
}

// NoTile is the content of an empty cell.
var NoTile = Tile{Type: Empty}

// IsEmpty reports whether the cell holding this tile is vacant.
func (t Tile) IsEmpty() bool {
	return t.Type == Empty
}

// Rand is the random source the engine draws from.
// *math/rand.Rand satisfies it; tests inject scripted sequences.
type Rand interface {
	Intn(n int) int
}

// TileFactory creates tiles with fresh identities.
// IDs start at 1 so the zero TileID never names a real tile.
type TileFactory struct {
	rng   Rand
	types int
	next  TileID
}

// NewTileFactory creates a factory drawing types in [0, types) from rng.
func NewTileFactory(rng Rand, types int) *TileFactory {
	return &TileFactory{rng: rng, types: types}
}

// New creates a tile of the given type.
func (f *TileFactory) New(t TileType) Tile {
	f.next++
	return Tile{Type: t, ID: f.next}
}

// RandomType draws a uniformly random tile type.
func (f *TileFactory) RandomType() TileType {
	return TileType(f.rng.Intn(f.types))
}

// Random creates a tile of a uniformly random type.
func (f *TileFactory) Random() Tile {
	return f.New(f.RandomType())
}

// Reserve makes sure ids handed out later are greater than id.
// Used when a grid built elsewhere enters the engine.
func (f *TileFactory) Reserve(id TileID) {
	if id > f.next {
		f.next = id
	}
}

// Issued returns the last id handed out.
func (f *TileFactory) Issued() TileID {
	return f.next
}
