package match3

import (
	"github.com/vovakirdan/berrymatch/internal/games/match3/core"
)

// Phase is the animation beat the board is in.
type Phase int

const (
	PhaseIdle  Phase = iota
	PhaseSwap        // two tiles trade places
	PhaseShake       // a rejected swap wobbles back
	PhasePop         // matched tiles burst
	PhaseDrop        // survivors fall and new berries enter
)

func (p Phase) String() string {
	switch p {
	case PhaseSwap:
		return "swap"
	case PhaseShake:
		return "shake"
	case PhasePop:
		return "pop"
	case PhaseDrop:
		return "drop"
	default:
		return "idle"
	}
}

// TileState is how a single tile is presented.
type TileState int

const (
	TileIdle TileState = iota
	TileSelected
	TilePopping
	TileDropping
	TileEntering
	TileShaking
)

func (s TileState) String() string {
	switch s {
	case TileSelected:
		return "selected"
	case TilePopping:
		return "popping"
	case TileDropping:
		return "dropping"
	case TileEntering:
		return "entering"
	case TileShaking:
		return "shaking"
	default:
		return "idle"
	}
}

// animation is the beat in progress.
type animation struct {
	phase    Phase
	ticks    int
	duration int

	move     core.Move // swap and shake
	accepted bool

	wave  core.WaveResult // pop and drop
	falls map[core.TileID]core.Fall
}

// progress returns 0..1 through the current beat.
func (a animation) progress() float64 {
	if a.duration <= 0 {
		return 1
	}
	p := float64(a.ticks) / float64(a.duration)
	if p > 1 {
		p = 1
	}
	return p
}

// presentation tracks per-tile visual state keyed by tile identity, so a tile keeps its
// state while it moves.
type presentation map[core.TileID]TileState

func (p presentation) set(g core.Grid, state TileState, cells ...core.Coord) {
	for _, c := range cells {
		if t := g.At(c); !t.IsEmpty() {
			p[t.ID] = state
		}
	}
}

func (p presentation) state(id core.TileID) TileState {
	return p[id]
}

func (p presentation) reset() {
	for id := range p {
		delete(p, id)
	}
}

// startSwap begins the swap beat. The board shown is still the pre-swap board.
func (g *Game) startSwap(move core.Move, accepted bool) {
	g.anim = animation{
		phase:    PhaseSwap,
		duration: g.ticks.swap,
		move:     move,
		accepted: accepted,
	}
	g.cue("swap")
}

// startShake wobbles the two tiles of a rejected swap.
func (g *Game) startShake(move core.Move) {
	g.anim = animation{
		phase:    PhaseShake,
		duration: g.ticks.shake,
		move:     move,
	}
	g.present.set(g.display, TileShaking, move.From, move.To)
	g.cue("invalid")
}

// startPop shows a wave's matches bursting on the board they were found on.
func (g *Game) startPop(w core.WaveResult) {
	g.display = w.Before
	g.present.reset()
	g.present.set(w.Before, TilePopping, w.Cleared...)
	g.anim = animation{
		phase:    PhasePop,
		duration: g.ticks.pop,
		wave:     w,
	}
	g.lastWave = &w
	g.cue("pop")
	if w.Hype != nil {
		g.showHype(*w.Hype)
	}
}

// startDrop shows the collapsed and refilled board with falling tiles in flight.
func (g *Game) startDrop(w core.WaveResult) {
	g.display = w.After
	g.present.reset()
	falls := make(map[core.TileID]core.Fall, len(w.Falls))
	for _, f := range w.Falls {
		falls[f.ID] = f
		if f.Spawned {
			g.present[f.ID] = TileEntering
		} else {
			g.present[f.ID] = TileDropping
		}
	}
	g.anim = animation{
		phase:    PhaseDrop,
		duration: g.ticks.drop,
		wave:     w,
		falls:    falls,
	}
}

// updateAnimation advances the current beat and chains into the next one.
func (g *Game) updateAnimation() {
	if g.anim.phase == PhaseIdle {
		return
	}
	g.anim.ticks++
	if g.anim.ticks < g.anim.duration {
		return
	}

	switch g.anim.phase {
	case PhaseSwap:
		if !g.anim.accepted {
			g.startShake(g.anim.move)
			return
		}
		g.display = g.session.Grid()
		g.nextWave()
	case PhaseShake:
		g.present.reset()
		g.anim = animation{}
	case PhasePop:
		g.startDrop(g.anim.wave)
	case PhaseDrop:
		g.nextWave()
	default:
		g.anim = animation{}
	}
}

// nextWave plays the next cascade wave or, once the board is stable, settles the move.
func (g *Game) nextWave() {
	if w, ok := g.session.Step(); ok {
		g.startPop(w)
		return
	}

	turn, _ := g.session.Settle()
	g.anim = animation{}
	g.present.reset()
	g.display = g.session.Grid()

	if _, ok := turn.Resolution.Hype(); !ok && turn.Milestone != nil {
		g.showHype(*turn.Milestone)
	}
	if turn.Resolution.Reshuffled {
		g.cue("reshuffle")
	}

	logger.Debug("move settled",
		"game", g.ID(),
		"move", turn.Swap.Move.String(),
		"waves", turn.Resolution.Depth(),
		"points", turn.Resolution.ScoreDelta,
		"combo", turn.ComboAfter,
		"streak", turn.Streak,
	)
}

// swapOffset returns the offset in cells of a tile during the swap beat.
func (g *Game) swapOffset(c core.Coord) (dr, dc float64, moving bool) {
	if g.anim.phase != PhaseSwap {
		return 0, 0, false
	}
	m := g.anim.move
	t := easeOutQuad(g.anim.progress())
	switch c {
	case m.From:
		return float64(m.To.Row-m.From.Row) * t, float64(m.To.Col-m.From.Col) * t, true
	case m.To:
		return float64(m.From.Row-m.To.Row) * t, float64(m.From.Col-m.To.Col) * t, true
	}
	return 0, 0, false
}

// dropRow returns the row, possibly fractional or above the board, a tile is drawn at
// during the drop beat.
func (g *Game) dropRow(id core.TileID, row int) float64 {
	if g.anim.phase != PhaseDrop {
		return float64(row)
	}
	f, ok := g.anim.falls[id]
	if !ok {
		return float64(row)
	}
	t := easeOutQuad(g.anim.progress())
	return float64(f.From.Row) + float64(f.To.Row-f.From.Row)*t
}

// shakeOffset returns the horizontal wobble of shaking tiles, in screen columns.
func (g *Game) shakeOffset() int {
	if g.anim.phase != PhaseShake {
		return 0
	}
	return [...]int{0, 1, 0, -1}[g.anim.ticks%4]
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}
