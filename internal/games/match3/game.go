// Package match3 implements Berry Match, a match-3 puzzle, on top of the core engine.
// The session holds the rules that span moves; the game adds input, pacing and drawing.
package match3

import (
	"time"

	"github.com/vovakirdan/berrymatch/internal/config"
	"github.com/vovakirdan/berrymatch/internal/core"
	m3 "github.com/vovakirdan/berrymatch/internal/games/match3/core"
)

// beatTicks are the animation durations converted to ticks.
type beatTicks struct {
	swap, pop, drop, shake, hype, hintIdle int
}

// Game implements registry.Game for one Berry Match mode.
type Game struct {
	mode    Mode
	rules   config.Match3Config
	scoring m3.ScoreRules
	seed    int64
	session *Session
	tick    uint64
	tickDur time.Duration
	ticks   beatTicks

	// Screen dimensions
	screenW  int
	screenH  int
	tooSmall bool
	paused   bool

	cursor    m3.Coord
	selected  *m3.Coord
	hint      *m3.Move
	idleTicks int

	display  m3.Grid
	present  presentation
	anim     animation
	lastWave *m3.WaveResult

	hype      *m3.HypeEvent
	hypeTicks int

	overCued bool
	cues     []string
}

// New creates a game for the given mode.
func New(mode Mode) *Game {
	return &Game{
		mode:    mode,
		present: make(presentation),
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.mode.GameID()
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.mode.Title()
}

// Description returns the menu blurb.
func (g *Game) Description() string {
	return g.mode.Description()
}

// Mode returns the play mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// Reset loads the rules and starts a fresh session.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	rules, err := config.LoadMatch3(configPath)
	if err != nil {
		logger.Error("cannot load rules, using defaults", "path", configPath, "err", err)
		rules = config.DefaultMatch3Config()
	}
	g.rules = rules
	g.seed = cfg.Seed

	session, err := NewSeededSession(rules, g.mode, cfg.Seed)
	if err != nil {
		// Validated configs always build an engine; this only guards hand-made ones.
		logger.Error("cannot build engine, using defaults", "err", err)
		g.rules = config.DefaultMatch3Config()
		session, _ = NewSeededSession(g.rules, g.mode, cfg.Seed)
	}
	g.session = session
	g.scoring = session.eng.Rules().Score

	rate := cfg.TickRate
	if rate <= 0 {
		rate = 60
	}
	g.tickDur = time.Second / time.Duration(rate)
	t := g.rules.Timing
	g.ticks = beatTicks{
		swap:     cfg.Ticks(t.SwapMS),
		pop:      cfg.Ticks(t.PopMS),
		drop:     cfg.Ticks(t.DropMS),
		shake:    cfg.Ticks(t.ShakeMS),
		hype:     cfg.Ticks(t.HypeMS),
		hintIdle: cfg.Ticks(t.HintIdleMS),
	}

	g.tick = 0
	g.paused = false
	g.cursor = m3.C(g.rules.Board.Rows/2, g.rules.Board.Cols/2)
	g.selected = nil
	g.hint = nil
	g.idleTicks = 0
	g.display = g.session.Grid()
	g.present = make(presentation)
	g.anim = animation{}
	g.lastWave = nil
	g.hype = nil
	g.hypeTicks = 0
	g.overCued = false
	g.cues = nil

	logger.Info("game started", "game", g.ID(), "seed", cfg.Seed,
		"board", g.display.Rows, "types", g.rules.Board.TileTypes)

	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize adapts the layout to a new terminal size without restarting.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	l := g.layout()
	minW := core.Max(l.boardW+2, 40)
	minH := l.boardY + l.boardH + 2
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.cues = nil

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.session.Over() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.session.Elapse(g.tickDur)
	g.updateHype()

	if g.anim.phase != PhaseIdle {
		g.updateAnimation()
	} else if !g.session.Over() {
		g.handleInput(in)
	}

	if g.session.Over() && g.anim.phase == PhaseIdle && !g.overCued {
		g.overCued = true
		g.selected = nil
		g.hint = nil
		g.cue("gameover")
		stats := g.session.Stats()
		logger.Info("game over", "game", g.ID(), "score", g.session.Score(),
			"moves", stats.Moves, "best_chain", stats.BestChain, "best_combo", stats.BestCombo)
	}

	return core.StepResult{State: g.State(), Cues: g.cues}
}

// handleInput moves the cursor, selects tiles and asks for hints while the board is idle.
func (g *Game) handleInput(in core.InputFrame) {
	if in.Empty() {
		g.idleTicks++
		if g.hint == nil && g.idleTicks >= g.ticks.hintIdle {
			g.showHint()
		}
		return
	}
	g.idleTicks = 0
	if !in.Has(core.ActionHint) {
		g.hint = nil
	}

	rows, cols := g.display.Rows, g.display.Cols
	switch {
	case in.Has(core.ActionUp):
		g.cursor.Row = core.Clamp(g.cursor.Row-1, 0, rows-1)
	case in.Has(core.ActionDown):
		g.cursor.Row = core.Clamp(g.cursor.Row+1, 0, rows-1)
	case in.Has(core.ActionLeft):
		g.cursor.Col = core.Clamp(g.cursor.Col-1, 0, cols-1)
	case in.Has(core.ActionRight):
		g.cursor.Col = core.Clamp(g.cursor.Col+1, 0, cols-1)
	}

	if in.Has(core.ActionHint) {
		g.showHint()
	}

	if in.Has(core.ActionSelect) {
		g.selectCell(g.cursor)
	}

	for _, click := range in.Clicks {
		if g.anim.phase != PhaseIdle {
			break
		}
		if c, ok := g.cellAt(click.X, click.Y); ok {
			g.cursor = c
			g.selectCell(c)
		}
	}
}

// selectCell picks up a tile, drops the selection, or swaps with the selected tile.
// Picking a non-adjacent tile moves the selection there.
func (g *Game) selectCell(c m3.Coord) {
	if g.selected == nil {
		g.selected = &c
		g.present.set(g.display, TileSelected, c)
		g.cue("select")
		return
	}

	from := *g.selected
	g.present.reset()
	g.selected = nil
	if from == c {
		return
	}
	if !from.Adjacent(c) {
		g.selected = &c
		g.present.set(g.display, TileSelected, c)
		g.cue("select")
		return
	}

	res, err := g.session.Begin(from, c)
	if err != nil {
		logger.Debug("swap refused", "game", g.ID(), "from", from.String(), "to", c.String(), "err", err)
		return
	}
	g.hint = nil
	g.startSwap(res.Move, res.Accepted)
}

// showHint marks a legal move.
func (g *Game) showHint() {
	if mv, ok := g.session.Hint(); ok {
		g.hint = &mv
		g.cue("hint")
	}
}

// showHype displays a hype event for the configured time, replacing any older one.
func (g *Game) showHype(ev m3.HypeEvent) {
	g.hype = &ev
	g.hypeTicks = g.ticks.hype
	g.cue("hype")
}

func (g *Game) updateHype() {
	if g.hype == nil {
		return
	}
	g.hypeTicks--
	if g.hypeTicks <= 0 {
		g.hype = nil
		g.hypeTicks = 0
	}
}

func (g *Game) cue(name string) {
	g.cues = append(g.cues, name)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.session.Score(),
		GameOver: g.session.Over() && g.anim.phase == PhaseIdle,
		Paused:   g.paused || g.tooSmall,
	}
}

// Summary describes a run for the run history.
type Summary struct {
	GameID   string
	Score    int
	Seed     int64
	Duration time.Duration
	Stats    Stats
}

// Summary returns the record of the current run.
func (g *Game) Summary() Summary {
	return Summary{
		GameID:   g.ID(),
		Score:    g.session.Score(),
		Seed:     g.seed,
		Duration: g.session.Elapsed(),
		Stats:    g.session.Stats(),
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows: Move | Enter: Select | H: Hint | P: Pause | R: Restart | Q: Quit"
}
