package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/berrymatch/internal/games/match3/core"
)

// singleRunBoard has one swap, (0,2)<->(0,3), that makes exactly one run of A.
func singleRunBoard() core.Grid {
	rows := stripes()
	rows[0] = "AAFADEFG"
	return core.MustParseGrid(rows...)
}

// doubleBoard has one swap, (2,3)<->(3,3), that makes a horizontal and a vertical run of A
// sharing the cell (3,3).
func doubleBoard() core.Grid {
	rows := plant(stripes(), 'A',
		core.C(2, 3),
		core.C(3, 1), core.C(3, 2),
		core.C(4, 3), core.C(5, 3),
	)
	return core.MustParseGrid(rows...)
}

func TestFixturesAreStable(t *testing.T) {
	for name, g := range map[string]core.Grid{
		"single": singleRunBoard(),
		"double": doubleBoard(),
	} {
		if core.HasMatches(g) {
			t.Errorf("%s fixture already has matches:\n%s", name, g)
		}
	}
}

func TestAttemptSwapInvalidInput(t *testing.T) {
	e := newEngine(t, 1)
	g := singleRunBoard()

	testCases := []struct {
		name     string
		from, to core.Coord
	}{
		{"out of bounds", core.C(0, 7), core.C(0, 8)},
		{"negative", core.C(-1, 0), core.C(0, 0)},
		{"diagonal", core.C(0, 0), core.C(1, 1)},
		{"far", core.C(0, 0), core.C(0, 2)},
		{"same cell", core.C(2, 2), core.C(2, 2)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := e.AttemptSwap(g, tc.from, tc.to)
			if !errors.Is(err, core.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
			if res.Accepted {
				t.Error("invalid swap was accepted")
			}
			if !res.Grid.Equal(g) {
				t.Error("invalid swap changed the grid")
			}
		})
	}
}

func TestAttemptSwapRejectedIsIdempotent(t *testing.T) {
	e := newEngine(t, 1)
	g := singleRunBoard()
	before := g.Clone()

	// (7,0)<->(7,1) swaps D and E on the bottom row; nothing lines up.
	res, err := e.AttemptSwap(g, core.C(7, 0), core.C(7, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Accepted {
		t.Fatal("expected rejection")
	}
	if !res.Grid.Equal(before) || !g.Equal(before) {
		t.Error("rejected swap changed the grid")
	}
	if len(res.Matches) != 0 {
		t.Errorf("rejected swap reported %d matches", len(res.Matches))
	}
}

func TestSingleRunScoresThirty(t *testing.T) {
	e := newEngine(t, 42)
	g := singleRunBoard()

	swap, err := e.AttemptSwap(g, core.C(0, 2), core.C(0, 3))
	if err != nil {
		t.Fatalf("AttemptSwap failed: %v", err)
	}
	if !swap.Accepted || len(swap.Matches) != 1 {
		t.Fatalf("expected accepted swap with one group, got %+v", swap.Matches)
	}

	res, err := e.Resolve(swap.Grid, core.ResolveInput{Combo: 1, Streak: 1})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(res.Waves) == 0 {
		t.Fatal("expected at least one wave")
	}

	w := res.Waves[0]
	if w.Depth != 0 || w.Base != 30 || w.Points != 30 {
		t.Errorf("expected depth 0 base 30 points 30, got depth %d base %d points %d", w.Depth, w.Base, w.Points)
	}
	if !w.Multiplier.Equal(decimalOne) {
		t.Errorf("expected multiplier 1, got %s", w.Multiplier)
	}
	if w.Double {
		t.Error("single run flagged as double")
	}
	if w.Hype != nil {
		t.Errorf("single run with streak 1 should not emit, got %+v", *w.Hype)
	}
	if len(w.Cleared) != 3 {
		t.Errorf("expected 3 cleared cells, got %d", len(w.Cleared))
	}

	total := 0
	for _, wave := range res.Waves {
		total += wave.Points
	}
	if res.ScoreDelta != total {
		t.Errorf("score delta %d != sum of waves %d", res.ScoreDelta, total)
	}
	if res.FinalCombo != 1+len(res.Waves) {
		t.Errorf("expected final combo %d, got %d", 1+len(res.Waves), res.FinalCombo)
	}
	assertStable(t, res.Final)
}

// threeWaveRefill scripts the refills after the doubleBoard swap: the first two refills
// rebuild AAA across the top row, the third settles the board.
var threeWaveRefill = []int{
	0, 0, 0, 5, 6, // wave 0: (0,1) (0,2) (0,3)=A, (1,3)=F, (2,3)=G
	0, 0, 0, // wave 1: AAA again
	4, 5, 6, // wave 2: E F G
}

func TestDoubleEmitsChainAndLocksOut(t *testing.T) {
	testCases := []struct {
		name      string
		streak    int
		kind      core.HypeKind
		label     string
		intensity int
	}{
		{"no streak tier", 1, core.HypeChain, "Triple!", 3},
		{"streak ties chain", 4, core.HypeChain, "Triple!", 3},
		{"streak beats chain", 9, core.HypeStreak, "BAZILLIONAIRE!", 5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e, err := core.New(core.DefaultBoardConfig(), core.DefaultRules(), &scriptedRand{vals: threeWaveRefill})
			if err != nil {
				t.Fatalf("core.New failed: %v", err)
			}

			swap, err := e.AttemptSwap(doubleBoard(), core.C(2, 3), core.C(3, 3))
			if err != nil {
				t.Fatalf("AttemptSwap failed: %v", err)
			}
			if !swap.Accepted || len(swap.Matches) != 2 {
				t.Fatalf("expected a double, got %d groups", len(swap.Matches))
			}

			res, err := e.Resolve(swap.Grid, core.ResolveInput{Combo: 4, Streak: tc.streak})
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}
			if len(res.Waves) != 3 {
				t.Fatalf("expected 3 waves, got %d", len(res.Waves))
			}
			if res.FinalCombo != 4+3 {
				t.Errorf("expected final combo 7, got %d", res.FinalCombo)
			}

			w := res.Waves[0]
			if !w.Double {
				t.Error("expected double flag on wave 0")
			}
			if len(w.Cleared) != 5 {
				t.Errorf("expected 5 cleared cells, got %d", len(w.Cleared))
			}
			if w.Hype == nil {
				t.Fatal("expected a hype event on wave 0")
			}
			if w.Hype.Kind != tc.kind || w.Hype.Label != tc.label || w.Hype.Intensity != tc.intensity {
				t.Errorf("expected %s %q at %d, got %+v", tc.kind, tc.label, tc.intensity, *w.Hype)
			}

			for _, later := range res.Waves[1:] {
				if later.Hype != nil {
					t.Errorf("wave %d emitted %+v after the lockout", later.Depth, *later.Hype)
				}
				if !later.Double {
					t.Errorf("wave %d lost the double flag", later.Depth)
				}
			}

			// base 60 x cascade 1 x combo(4) 3 x two groups 1.5, then
			// 30 x 1.5 x combo(5) 5 and 30 x 2 x combo(6) 5
			wantPoints := []int{270, 225, 300}
			for i, want := range wantPoints {
				if got := res.Waves[i].Points; got != want {
					t.Errorf("wave %d: expected %d points, got %d", i, want, got)
				}
			}
			if res.ScoreDelta != 795 {
				t.Errorf("expected score delta 795, got %d", res.ScoreDelta)
			}

			if ev, ok := res.Hype(); !ok || ev.Label != tc.label {
				t.Errorf("Resolution.Hype returned %+v, %v", ev, ok)
			}
			if res.Reshuffled {
				t.Error("settled board should not need a reshuffle")
			}
			assertStable(t, res.Final)
		})
	}
}

func TestResolveDeterministic(t *testing.T) {
	run := func() core.Resolution {
		e := newEngine(t, 2024)
		swap, err := e.AttemptSwap(doubleBoard(), core.C(2, 3), core.C(3, 3))
		if err != nil {
			t.Fatalf("AttemptSwap failed: %v", err)
		}
		res, err := e.Resolve(swap.Grid, core.ResolveInput{Combo: 1, Streak: 3})
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		return res
	}

	a, b := run(), run()
	if !a.Final.Equal(b.Final) {
		t.Error("final grids differ")
	}
	if a.ScoreDelta != b.ScoreDelta || len(a.Waves) != len(b.Waves) || a.FinalCombo != b.FinalCombo {
		t.Errorf("resolutions differ: %d/%d/%d vs %d/%d/%d",
			a.ScoreDelta, len(a.Waves), a.FinalCombo, b.ScoreDelta, len(b.Waves), b.FinalCombo)
	}
}

func TestResolverStepMatchesResolve(t *testing.T) {
	e1 := newEngine(t, 55)
	e2 := newEngine(t, 55)
	g := singleRunBoard().Swap(core.C(0, 2), core.C(0, 3))

	full, err := e1.Resolve(g, core.ResolveInput{Combo: 2, Streak: 2})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	r, err := e2.NewResolver(g, core.ResolveInput{Combo: 2, Streak: 2})
	if err != nil {
		t.Fatalf("NewResolver failed: %v", err)
	}
	steps := 0
	for {
		w, ok := r.Step()
		if !ok {
			break
		}
		if w.Depth != steps {
			t.Errorf("expected depth %d, got %d", steps, w.Depth)
		}
		steps++
	}
	if !r.Done() {
		t.Error("resolver should be done")
	}
	if steps != len(full.Waves) {
		t.Errorf("stepped %d waves, Resolve ran %d", steps, len(full.Waves))
	}
	if !r.Result().Final.Equal(full.Final) {
		t.Error("stepped and full resolution disagree")
	}
	if _, ok := r.Step(); ok {
		t.Error("Step after Done should report false")
	}
}

func TestResolveRejectsMalformedGrid(t *testing.T) {
	e := newEngine(t, 1)

	holey := core.MustParseGrid(plant(stripes(), '.', core.C(4, 4))...)
	if _, err := e.Resolve(holey, core.ResolveInput{Combo: 1}); !errors.Is(err, core.ErrInvalidInput) {
		t.Errorf("empty cell: expected ErrInvalidInput, got %v", err)
	}

	small := core.MustParseGrid("ABC", "BCA", "CAB")
	if _, err := e.Resolve(small, core.ResolveInput{Combo: 1}); !errors.Is(err, core.ErrInvalidInput) {
		t.Errorf("wrong shape: expected ErrInvalidInput, got %v", err)
	}
}

func TestResolveStableGridIsNoop(t *testing.T) {
	e := newEngine(t, 8)
	g := e.Generate()
	res, err := e.Resolve(g, core.ResolveInput{Combo: 0})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(res.Waves) != 0 || res.ScoreDelta != 0 {
		t.Errorf("expected no waves, got %d", len(res.Waves))
	}
	if res.FinalCombo != 1 {
		t.Errorf("combo below 1 should clamp to 1, got %d", res.FinalCombo)
	}
	if !res.Final.Equal(g) || res.Reshuffled {
		t.Error("stable grid should come back unchanged")
	}
}

func TestResolveCapsEndlessCascade(t *testing.T) {
	// Refill always draws type 0, so the top row rebuilds AAA forever.
	cfg := core.BoardConfig{Rows: 3, Cols: 3, TileTypes: 3}
	e, err := core.New(cfg, core.DefaultRules(), &scriptedRand{vals: []int{0}})
	if err != nil {
		t.Fatalf("core.New failed: %v", err)
	}
	g := core.MustParseGrid("AAA", "BCB", "CBC")

	res, err := e.Resolve(g, core.ResolveInput{Combo: 1})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(res.Waves) != core.MaxWaves {
		t.Errorf("expected %d waves, got %d", core.MaxWaves, len(res.Waves))
	}
	if !res.Reshuffled {
		t.Error("expected the capped cascade to reshuffle")
	}
	if res.Final.HasEmpty() {
		t.Error("final grid has empty cells")
	}
}
