package core_test

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/berrymatch/internal/games/match3/core"
)

// scriptedRand replays a fixed sequence, wrapping around.
type scriptedRand struct {
	vals []int
	i    int
}

func (s *scriptedRand) Intn(n int) int {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v % n
}

func newEngine(t *testing.T, seed int64) *core.Engine {
	t.Helper()
	e, err := core.New(core.DefaultBoardConfig(), core.DefaultRules(), rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("core.New failed: %v", err)
	}
	return e
}

// stripes returns an 8x8 match-free board: even rows cycle BCDE, odd rows cycle DEBC.
func stripes() []string {
	rows := make([]string, 8)
	for r := range rows {
		if r%2 == 0 {
			rows[r] = "BCDEBCDE"
		} else {
			rows[r] = "DEBCDEBC"
		}
	}
	return rows
}

// plant overwrites single cells of a row fixture.
func plant(rows []string, letter byte, cells ...core.Coord) []string {
	out := make([]string, len(rows))
	copy(out, rows)
	for _, c := range cells {
		b := []byte(out[c.Row])
		b[c.Col] = letter
		out[c.Row] = string(b)
	}
	return out
}

func assertStable(t *testing.T, g core.Grid) {
	t.Helper()
	if g.HasEmpty() {
		t.Errorf("grid has empty cells:\n%s", g)
	}
	if core.HasMatches(g) {
		t.Errorf("grid has matches:\n%s", g)
	}
	if !core.HasValidMove(g) {
		t.Errorf("grid has no legal move:\n%s", g)
	}
}
