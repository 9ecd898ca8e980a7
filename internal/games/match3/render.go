package match3

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/berrymatch/internal/core"
	m3 "github.com/vovakirdan/berrymatch/internal/games/match3/core"
)

const (
	cellWidth  = 4 // glyph slot of 3 columns plus a gap
	cellHeight = 2 // glyph row plus a spacer row
	hudHeight  = 3
)

// berry is how one tile type is drawn.
type berry struct {
	glyph rune
	color core.Color
}

var berries = []berry{
	{'●', core.ColorRed},
	{'◆', core.ColorOrange},
	{'▲', core.ColorYellow},
	{'■', core.ColorGreen},
	{'★', core.ColorBlue},
	{'♥', core.ColorPurple},
	{'✿', core.ColorPink},
}

func berryFor(t m3.TileType) berry {
	if t < 0 {
		return berry{' ', core.ColorDefault}
	}
	b := berries[int(t)%len(berries)]
	if int(t) >= len(berries) {
		b.color = core.ColorBrightWhite
	}
	return b
}

// hypeColors are indexed by intensity.
var hypeColors = []core.Color{
	core.ColorWhite,
	core.ColorCyan,
	core.ColorYellow,
	core.ColorOrange,
	core.ColorBrightMagenta,
	core.ColorBrightRed,
}

// layout holds screen positions of the board.
type layout struct {
	boardX, boardY int
	boardW, boardH int
}

func (g *Game) layout() layout {
	rows, cols := g.rules.Board.Rows, g.rules.Board.Cols
	l := layout{
		boardW: cols*cellWidth + 3,
		boardH: rows*cellHeight + 1,
		boardY: hudHeight + 1,
	}
	l.boardX = (g.screenW - l.boardW) / 2
	return l
}

// slot returns the screen position of the first column of a cell's glyph slot.
func (l layout) slot(row, col int) (int, int) {
	return l.boardX + 2 + col*cellWidth, l.boardY + 1 + row*cellHeight
}

// cellAt maps a screen position to the board cell whose glyph slot contains it.
func (g *Game) cellAt(x, y int) (m3.Coord, bool) {
	l := g.layout()
	ox, oy := l.slot(0, 0)
	dx, dy := x-ox, y-oy
	if dx < 0 || dy < 0 || dx%cellWidth == cellWidth-1 || dy%cellHeight != 0 {
		return m3.Coord{}, false
	}
	c := m3.C(dy/cellHeight, dx/cellWidth)
	if !g.display.InBounds(c) {
		return m3.Coord{}, false
	}
	return c, true
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	l := g.layout()
	g.renderHUD(dst, l)
	g.renderBoard(dst, l)
	g.renderFooter(dst, l)
	g.renderOverlays(dst, l)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws title, score, limits, combo and the hype banner.
func (g *Game) renderHUD(dst *core.Screen, l layout) {
	dst.DrawTextCenteredColored(0, g.Title(), core.ColorBrightMagenta)

	left := l.boardX
	right := l.boardX + l.boardW

	dst.DrawTextStyled(left, 1, fmt.Sprintf("Score: %d", g.session.Score()), core.ColorBrightWhite, core.AttrBold)

	var limit string
	if moves, ok := g.session.MovesLeft(); ok {
		limit = fmt.Sprintf("Moves: %d", moves)
	} else if remaining, ok := g.session.TimeLeft(); ok {
		limit = "Time: " + formatClock(remaining)
	} else {
		limit = "Moves: ∞"
	}
	dst.DrawText(right-len([]rune(limit)), 1, limit)

	if combo := g.session.Combo(); combo > 0 {
		mult := g.scoring.ComboMultiplier(combo)
		comboStr := fmt.Sprintf("Combo x%d (%sx)", combo, mult.String())
		color := core.ColorCyan
		if w := g.session.ComboWindow(); w > 0 && w < time.Second {
			color = core.ColorGray
		}
		dst.DrawTextColored(left, 2, comboStr, color)
	}
	if streak := g.session.Streak(); streak > 1 {
		s := fmt.Sprintf("Streak %d", streak)
		dst.DrawTextColored(right-len(s), 2, s, core.ColorOrange)
	}

	if g.hype != nil {
		ev := g.hype
		color := hypeColors[core.Clamp(ev.Intensity, 0, len(hypeColors)-1)]
		attr := core.Attr(0)
		if ev.Intensity >= 3 {
			attr = core.AttrBold
		}
		label := ev.Label
		if ev.Intensity >= 4 {
			label = "*** " + label + " ***"
		}
		x := l.boardX + (l.boardW-len([]rune(label)))/2
		dst.DrawTextStyled(x, hudHeight, label, color, attr)
	}
}

// boardShake returns the horizontal jolt of the whole board while a strong hype shows.
func (g *Game) boardShake() int {
	if g.hype == nil || g.hype.Intensity < 2 {
		return 0
	}
	elapsed := g.ticks.hype - g.hypeTicks
	if elapsed >= g.ticks.shake {
		return 0
	}
	if elapsed%2 == 0 {
		return 1
	}
	return -1
}

// renderBoard draws the frame and every tile at its animated position.
func (g *Game) renderBoard(dst *core.Screen, l layout) {
	shake := g.boardShake()
	frame := core.NewRect(l.boardX+shake, l.boardY, l.boardW, l.boardH)
	frameColor := core.ColorGreen
	if g.session.Over() {
		frameColor = core.ColorGray
	}
	dst.DrawBoxColored(frame, frameColor)

	grid := g.display
	for r := 0; r < grid.Rows; r++ {
		for c := 0; c < grid.Cols; c++ {
			g.renderTile(dst, l, shake, m3.C(r, c))
		}
	}

	if g.selected == nil && g.anim.phase == PhaseIdle && !g.session.Over() {
		x, y := l.slot(g.cursor.Row, g.cursor.Col)
		dst.SetColored(x+shake, y, '[', core.ColorBrightWhite)
		dst.SetColored(x+shake+2, y, ']', core.ColorBrightWhite)
	}
}

func (g *Game) renderTile(dst *core.Screen, l layout, shake int, c m3.Coord) {
	tile := g.display.At(c)
	if tile.IsEmpty() {
		return
	}

	b := berryFor(tile.Type)
	state := g.present.state(tile.ID)

	row, col := float64(c.Row), float64(c.Col)
	if dr, dc, ok := g.swapOffset(c); ok {
		row += dr
		col += dc
	}
	row = g.dropRow(tile.ID, c.Row) + (row - float64(c.Row))

	if row < 0 {
		return // still above the board
	}

	ox, oy := l.slot(0, 0)
	x := ox + int(math.Round(col*cellWidth)) + shake
	y := oy + int(math.Round(row*cellHeight))
	if state == TileShaking {
		x += g.shakeOffset()
	}

	cell := core.Cell{Rune: b.glyph, Color: b.color}
	switch state {
	case TilePopping:
		if g.anim.progress() < 0.5 {
			cell = core.Cell{Rune: '✸', Color: core.ColorBrightWhite, Attr: core.AttrBold}
		} else {
			cell = core.Cell{Rune: '·', Color: b.color}
		}
	case TileSelected:
		cell.Attr = core.AttrReverse | core.AttrBold
		dst.SetColored(x, y, '(', core.ColorBrightYellow)
		dst.SetColored(x+2, y, ')', core.ColorBrightYellow)
	case TileEntering:
		cell.Attr = core.AttrBold
	}

	if g.hint != nil && (c == g.hint.From || c == g.hint.To) {
		cell.Attr |= core.AttrBlink
		dst.SetColored(x, y, '›', core.ColorBrightYellow)
		dst.SetColored(x+2, y, '‹', core.ColorBrightYellow)
	}

	// Keep in-flight tiles off the frame.
	if y > l.boardY && y < l.boardY+l.boardH-1 {
		dst.SetCell(x+1, y, cell)
	}
}

// renderFooter shows the points of the latest wave and the controls.
func (g *Game) renderFooter(dst *core.Screen, l layout) {
	y := l.boardY + l.boardH
	if w := g.lastWave; w != nil {
		s := fmt.Sprintf("+%d  (%d x %s)", w.Points, w.Base, w.Multiplier.String())
		if w.Depth > 0 {
			s += fmt.Sprintf("  cascade %d", w.Depth+1)
		}
		dst.DrawTextColored(l.boardX, y, s, core.ColorBrightGreen)
	}
	dst.DrawTextCenteredColored(y+1, g.Controls(), core.ColorGray)
}

// renderOverlays draws pause and game over boxes.
func (g *Game) renderOverlays(dst *core.Screen, l layout) {
	centerX := l.boardX + l.boardW/2
	centerY := l.boardY + l.boardH/2

	if g.paused {
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}

	if g.State().GameOver {
		stats := g.session.Stats()
		title := "GAME OVER"
		if _, timed := g.session.TimeLeft(); timed {
			title = "TIME'S UP"
		}
		g.drawOverlay(dst, centerX, centerY,
			title,
			fmt.Sprintf("Score: %d", g.session.Score()),
			fmt.Sprintf("Best chain: %d  Best combo: %d", stats.BestChain, stats.BestCombo),
			"Press R to restart",
		)
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = core.Max(maxLen, len([]rune(line)))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBoxColored(box, core.ColorBrightWhite)
	for i, line := range lines {
		x := centerX - len([]rune(line))/2
		dst.DrawText(x, box.Y+1+i, line)
	}
}

// formatClock renders a duration as m:ss, rounding up so 0:00 means time is out.
func formatClock(d time.Duration) string {
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
