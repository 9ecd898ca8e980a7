package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorPink
	ColorPurple
)

// Attr is a set of text attributes for a screen cell.
type Attr uint8

const (
	AttrBold Attr = 1 << iota
	AttrReverse
	AttrBlink
)

// Has reports whether every attribute in other is set.
func (a Attr) Has(other Attr) bool {
	return a&other == other
}
