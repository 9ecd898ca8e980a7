package match3

import (
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/vovakirdan/berrymatch/internal/config"
	"github.com/vovakirdan/berrymatch/internal/core"
	m3 "github.com/vovakirdan/berrymatch/internal/games/match3/core"
	"github.com/vovakirdan/berrymatch/internal/registry"
)

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42}
}

// newGame starts a game isolated from any rules file on the machine. rules, when set,
// is written to a temporary rules file.
func newGame(t *testing.T, mode Mode, rules string) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	if rules != "" {
		path := filepath.Join(t.TempDir(), "rules.yaml")
		if err := os.WriteFile(path, []byte(rules), 0o644); err != nil {
			t.Fatal(err)
		}
		SetConfigPath(path)
		t.Cleanup(func() { SetConfigPath("") })
	}
	g := New(mode)
	g.Reset(testConfig())
	return g
}

func click(g *Game, c m3.Coord) core.InputFrame {
	x, y := g.layout().slot(c.Row, c.Col)
	in := core.NewInputFrame()
	in.AddClick(x+1, y)
	return in
}

func press(a core.Action) core.InputFrame {
	in := core.NewInputFrame()
	in.Set(a)
	return in
}

// runUntilIdle steps with empty input until the board is idle and returns the cues seen.
func runUntilIdle(t *testing.T, g *Game) []string {
	t.Helper()
	var cues []string
	for i := 0; i < 10000; i++ {
		res := g.Step(core.NewInputFrame())
		cues = append(cues, res.Cues...)
		if g.anim.phase == PhaseIdle {
			return cues
		}
	}
	t.Fatal("animation never finished")
	return nil
}

// swapByClicks clicks two cells and plays the move out.
func swapByClicks(t *testing.T, g *Game, mv m3.Move) []string {
	t.Helper()
	var cues []string
	cues = append(cues, g.Step(click(g, mv.From)).Cues...)
	cues = append(cues, g.Step(click(g, mv.To)).Cues...)
	if g.anim.phase != PhaseSwap {
		t.Fatalf("phase after second click = %s, want swap", g.anim.phase)
	}
	return append(cues, runUntilIdle(t, g)...)
}

func playHint(t *testing.T, g *Game) []string {
	t.Helper()
	mv, ok := g.session.Hint()
	if !ok {
		t.Fatal("no hint on stable board")
	}
	return swapByClicks(t, g, mv)
}

func TestModesRegistered(t *testing.T) {
	for _, m := range Modes {
		id := m.GameID()
		if !registry.Exists(id) {
			t.Errorf("mode %s not registered as %s", m, id)
			continue
		}
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%s) failed: %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("Create(%s).ID() = %s", id, g.ID())
		}
		info, ok := registry.Info(id)
		if !ok || info.Description == "" || info.Title == "" {
			t.Errorf("Info(%s) = %+v, %v", id, info, ok)
		}
		back, ok := ModeByGameID(id)
		if !ok || back != m {
			t.Errorf("ModeByGameID(%s) = %s, %v", id, back, ok)
		}
	}
	if ModeStandard.GameID() != "match3" {
		t.Errorf("standard id = %s, want match3", ModeStandard.GameID())
	}
}

func TestGameResetDeterministic(t *testing.T) {
	a := newGame(t, ModeStandard, "")
	b := newGame(t, ModeStandard, "")

	if !reflect.DeepEqual(a.Snapshot(), b.Snapshot()) {
		t.Error("same seed gave different starting snapshots")
	}
	if m3.HasMatches(a.session.Grid()) {
		t.Errorf("starting board has matches:\n%s", a.session.Grid())
	}
	snap := a.Snapshot()
	if snap.MovesLeft != 30 || snap.State != StatePlaying || snap.Phase != "idle" {
		t.Errorf("starting snapshot = %+v", snap)
	}
}

func TestGameHintMovePlaysOut(t *testing.T) {
	g := newGame(t, ModeStandard, "")
	cues := playHint(t, g)

	for _, want := range []string{"select", "swap", "pop"} {
		if !slices.Contains(cues, want) {
			t.Errorf("cues %v missing %q", cues, want)
		}
	}
	snap := g.Snapshot()
	if snap.Score < 30 || snap.Streak != 1 || snap.MovesLeft != 29 || snap.Combo < 2 {
		t.Errorf("snapshot after one move = %+v", snap)
	}
	if !g.display.Equal(g.session.Grid()) {
		t.Error("displayed board differs from the session board once idle")
	}
	if g.lastWave == nil || g.lastWave.Points <= 0 {
		t.Error("last wave not recorded")
	}
}

func TestGameSameInputsSameRun(t *testing.T) {
	a := newGame(t, ModeStandard, "")
	b := newGame(t, ModeStandard, "")

	for i := 0; i < 4; i++ {
		playHint(t, a)
		playHint(t, b)
	}
	if !reflect.DeepEqual(a.Snapshot(), b.Snapshot()) {
		t.Errorf("runs diverged:\n%+v\n%+v", a.Snapshot(), b.Snapshot())
	}
}

func TestGameRejectedSwapShakes(t *testing.T) {
	g := newGame(t, ModeStandard, "")
	before := g.session.Grid()
	bad := rejectedMove(t, before)

	g.Step(click(g, bad.From))
	g.Step(click(g, bad.To))
	if g.anim.phase != PhaseSwap {
		t.Fatalf("phase = %s, want swap", g.anim.phase)
	}

	sawShake := false
	var cues []string
	for i := 0; i < 1000 && (g.anim.phase != PhaseIdle || !sawShake); i++ {
		cues = append(cues, g.Step(core.NewInputFrame()).Cues...)
		if g.anim.phase == PhaseShake {
			sawShake = true
			id := before.At(bad.From).ID
			if g.present.state(id) != TileShaking {
				t.Errorf("tile %d state = %s, want shaking", id, g.present.state(id))
			}
		}
	}
	if !sawShake || !slices.Contains(cues, "invalid") {
		t.Errorf("no shake played, cues %v", cues)
	}
	if !g.session.Grid().Equal(before) {
		t.Error("rejected swap changed the board")
	}
	if snap := g.Snapshot(); snap.MovesLeft != 30 || snap.Combo != 0 || snap.Score != 0 {
		t.Errorf("snapshot after rejected swap = %+v", snap)
	}
}

func TestGameSelectNonAdjacentMovesSelection(t *testing.T) {
	g := newGame(t, ModeStandard, "")
	g.Step(click(g, m3.C(0, 0)))
	g.Step(click(g, m3.C(3, 3)))

	if g.anim.phase != PhaseIdle {
		t.Fatalf("phase = %s, non-adjacent pick must not swap", g.anim.phase)
	}
	if g.selected == nil || *g.selected != m3.C(3, 3) {
		t.Errorf("selected = %v, want (3,3)", g.selected)
	}

	// picking the same tile again drops the selection
	g.Step(click(g, m3.C(3, 3)))
	if g.selected != nil {
		t.Errorf("selected = %v, want none", *g.selected)
	}
}

func TestGameKeyboardSelect(t *testing.T) {
	g := newGame(t, ModeStandard, "")
	mv, _ := g.session.Hint()

	// walk the cursor to the hint's first cell
	for g.cursor.Row > mv.From.Row {
		g.Step(press(core.ActionUp))
	}
	for g.cursor.Row < mv.From.Row {
		g.Step(press(core.ActionDown))
	}
	for g.cursor.Col > mv.From.Col {
		g.Step(press(core.ActionLeft))
	}
	for g.cursor.Col < mv.From.Col {
		g.Step(press(core.ActionRight))
	}
	g.Step(press(core.ActionSelect))

	if mv.To.Col > mv.From.Col {
		g.Step(press(core.ActionRight))
	} else {
		g.Step(press(core.ActionDown))
	}
	g.Step(press(core.ActionSelect))
	if g.anim.phase != PhaseSwap {
		t.Fatalf("phase = %s, want swap", g.anim.phase)
	}
	runUntilIdle(t, g)
	if g.session.Score() < 30 {
		t.Errorf("score = %d after keyboard move", g.session.Score())
	}
}

func TestGameCursorClamps(t *testing.T) {
	g := newGame(t, ModeStandard, "")
	for i := 0; i < 20; i++ {
		g.Step(press(core.ActionUp))
		g.Step(press(core.ActionLeft))
	}
	if g.cursor != m3.C(0, 0) {
		t.Errorf("cursor = %v, want (0,0)", g.cursor)
	}
	for i := 0; i < 20; i++ {
		g.Step(press(core.ActionDown))
		g.Step(press(core.ActionRight))
	}
	if g.cursor != m3.C(7, 7) {
		t.Errorf("cursor = %v, want (7,7)", g.cursor)
	}
}

func TestGameBlitzEnds(t *testing.T) {
	g := newGame(t, ModeBlitz, "modes:\n  blitz: { moves: 1 }\n")
	cues := playHint(t, g)

	if !g.State().GameOver {
		t.Fatal("blitz game should be over after its only move")
	}
	if !slices.Contains(cues, "gameover") {
		t.Errorf("cues %v missing gameover", cues)
	}
	sum := g.Summary()
	if sum.GameID != "match3_blitz" || sum.Stats.Moves != 1 || sum.Seed != 42 || sum.Score != g.State().Score {
		t.Errorf("summary = %+v", sum)
	}

	// further input is ignored
	before := g.Snapshot()
	g.Step(click(g, m3.C(0, 0)))
	if g.selected != nil || g.Snapshot().Score != before.Score {
		t.Error("input accepted after game over")
	}
}

func TestGameTimedEnds(t *testing.T) {
	g := newGame(t, ModeTimed, "modes:\n  timed: { time_limit_secs: 1 }\n")
	for i := 0; i < 70; i++ {
		g.Step(core.NewInputFrame())
	}
	if !g.State().GameOver {
		t.Errorf("timed game still running, time left %v", g.Snapshot().TimeLeft)
	}
}

func TestGamePauseStopsClock(t *testing.T) {
	g := newGame(t, ModeTimed, "")
	g.Step(press(core.ActionPause))
	left := g.Snapshot().TimeLeft
	for i := 0; i < 100; i++ {
		g.Step(core.NewInputFrame())
	}
	snap := g.Snapshot()
	if snap.TimeLeft != left || snap.State != StatePaused || !g.State().Paused {
		t.Errorf("paused snapshot = %+v", snap)
	}
	g.Step(press(core.ActionPause))
	if g.State().Paused {
		t.Error("second pause should resume")
	}
}

func TestGameHintAfterIdle(t *testing.T) {
	g := newGame(t, ModeStandard, "timing: { hint_idle_ms: 100 }\n")

	var cues []string
	for i := 0; i < 6; i++ {
		cues = append(cues, g.Step(core.NewInputFrame()).Cues...)
	}
	if g.hint == nil || !slices.Contains(cues, "hint") {
		t.Fatal("hint not shown after idling")
	}
	want, _ := g.session.Hint()
	if *g.hint != want {
		t.Errorf("hint = %v, want %v", *g.hint, want)
	}

	g.Step(press(core.ActionDown))
	if g.hint != nil {
		t.Error("input should clear the hint")
	}
	g.Step(press(core.ActionHint))
	if g.hint == nil {
		t.Error("H should show a hint at once")
	}
}

func TestGameRender(t *testing.T) {
	g := newGame(t, ModeStandard, "")
	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Berry Match", "Score: 0", "Moves: 30", "Enter: Select"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}

	// every tile shows its berry glyph
	l := g.layout()
	grid := g.session.Grid()
	for r := 0; r < grid.Rows; r++ {
		for c := 0; c < grid.Cols; c++ {
			x, y := l.slot(r, c)
			want := berryFor(grid.TypeAt(m3.C(r, c))).glyph
			if got := screen.Get(x+1, y); got != want {
				t.Errorf("cell (%d,%d) shows %q, want %q", r, c, got, want)
			}
		}
	}
}

func TestGameRenderGameOver(t *testing.T) {
	g := newGame(t, ModeBlitz, "modes:\n  blitz: { moves: 1 }\n")
	playHint(t, g)
	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Errorf("game over overlay missing:\n%s", screen.String())
	}
}

func TestGameTooSmall(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	g := New(ModeStandard)
	cfg := testConfig()
	cfg.ScreenW, cfg.ScreenH = 30, 10
	g.Reset(cfg)

	if !g.State().Paused || g.Snapshot().State != StatePausedSmall {
		t.Error("small window should pause the game")
	}
	screen := core.NewScreen(30, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Errorf("render = %q", screen.String())
	}

	before := g.session.Grid()
	g.Resize(80, 24)
	if g.State().Paused {
		t.Error("resize should unpause")
	}
	if !g.session.Grid().Equal(before) {
		t.Error("resize must keep the board")
	}
}

func TestCellAt(t *testing.T) {
	g := newGame(t, ModeStandard, "")
	l := g.layout()
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			x, y := l.slot(r, c)
			for dx := 0; dx < 3; dx++ {
				got, ok := g.cellAt(x+dx, y)
				if !ok || got != m3.C(r, c) {
					t.Fatalf("cellAt(%d,%d) = %v, %v, want (%d,%d)", x+dx, y, got, ok, r, c)
				}
			}
		}
	}

	x, y := l.slot(0, 0)
	for _, p := range [][2]int{{x + 3, y}, {x, y + 1}, {x - 1, y}, {x, y - 1}, {x + 8*cellWidth, y}} {
		if c, ok := g.cellAt(p[0], p[1]); ok {
			t.Errorf("cellAt(%d,%d) = %v, want no cell", p[0], p[1], c)
		}
	}
}

func TestRulesFromConfig(t *testing.T) {
	got := RulesFromConfig(config.DefaultMatch3Config())
	want := m3.DefaultRules()

	if !reflect.DeepEqual(got.Hype, want.Hype) {
		t.Errorf("hype rules = %+v, want %+v", got.Hype, want.Hype)
	}

	gs, ws := got.Score, want.Score
	if gs.PerTile != ws.PerTile || gs.Bonus4 != ws.Bonus4 || gs.Bonus5Plus != ws.Bonus5Plus {
		t.Errorf("points = %d/%d/%d", gs.PerTile, gs.Bonus4, gs.Bonus5Plus)
	}
	if !gs.MultiGroup.Equal(ws.MultiGroup) {
		t.Errorf("multi group = %s", gs.MultiGroup)
	}
	if len(gs.Cascade) != len(ws.Cascade) || len(gs.Combo) != len(ws.Combo) {
		t.Fatalf("table sizes = %d/%d", len(gs.Cascade), len(gs.Combo))
	}
	for i := range ws.Cascade {
		if !gs.Cascade[i].Equal(ws.Cascade[i]) {
			t.Errorf("cascade[%d] = %s, want %s", i, gs.Cascade[i], ws.Cascade[i])
		}
	}
	for i := range ws.Combo {
		if gs.Combo[i].MinCombo != ws.Combo[i].MinCombo || !gs.Combo[i].Multiplier.Equal(ws.Combo[i].Multiplier) {
			t.Errorf("combo[%d] = %+v, want %+v", i, gs.Combo[i], ws.Combo[i])
		}
	}

	if b := BoardFromConfig(config.DefaultMatch3Config().Board); b != m3.DefaultBoardConfig() {
		t.Errorf("board = %+v", b)
	}
}
