package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/berrymatch/internal/storage"
)

func TestScoreboardLoadsRuns(t *testing.T) {
	store := openStore(t)
	store.SaveRun(storage.Run{GameID: "match3", Score: 300, Moves: 30, BestChain: 2, BestCombo: 3})
	store.SaveRun(storage.Run{GameID: "match3", Score: 900, Moves: 30, BestChain: 5, BestCombo: 7})
	store.SaveRun(storage.Run{GameID: "match3_timed", Score: 50})

	m := NewScoreboardModel(store, 100, 30)
	if len(m.runs) != 2 {
		t.Fatalf("expected 2 standard runs, got %d", len(m.runs))
	}
	if m.runs[0].Score != 900 {
		t.Errorf("best run first, got %d", m.runs[0].Score)
	}
	if m.stats == nil || m.stats.GamesCount != 2 || m.stats.HighScore != 900 {
		t.Errorf("stats = %+v", m.stats)
	}

	rows := m.table.Rows()
	if len(rows) != 2 || len(rows[0]) != 6 {
		t.Fatalf("unexpected rows %v", rows)
	}
	if rows[0][1] != "900" || rows[0][3] != "x5" {
		t.Errorf("row = %v", rows[0])
	}
	if !strings.Contains(m.statsLine(), "2 games") {
		t.Errorf("statsLine = %q", m.statsLine())
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.games[m.gameCursor].ID != "match3_timed" || len(m.runs) != 1 {
		t.Errorf("tab should show time attack runs, got %s with %d", m.games[m.gameCursor].ID, len(m.runs))
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	if m.games[m.gameCursor].ID != "match3_endless" {
		t.Errorf("shift+tab should wrap around, got %s", m.games[m.gameCursor].ID)
	}
}

func TestScoreboardNarrowDropsDetails(t *testing.T) {
	store := openStore(t)
	store.SaveRun(storage.Run{GameID: "match3", Score: 10})

	m := NewScoreboardModel(store, 50, 24)
	if m.showSidebar {
		t.Error("narrow scoreboard should not show the sidebar")
	}
	if rows := m.table.Rows(); len(rows) != 1 || len(rows[0]) != 3 {
		t.Errorf("unexpected rows %v", rows)
	}
}

func TestScoreboardEmpty(t *testing.T) {
	m := NewScoreboardModel(nil, 100, 30)
	if len(m.runs) != 0 || m.statsLine() != "" {
		t.Error("scoreboard without a store should be empty")
	}
	if !strings.Contains(m.View(), "No runs recorded yet.") {
		t.Error("empty scoreboard should say so")
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := NewScoreboardModel(nil, 100, 30)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("esc should go back")
	}

	next, _ = m.Update(runeKey('q'))
	if !next.(ScoreboardModel).IsQuitting() {
		t.Error("q should quit")
	}
}

func TestShortTitle(t *testing.T) {
	tests := map[string]string{
		"Berry Match":               "Standard",
		"Berry Match (Time Attack)": "Time Attack",
		"Berry Match (Blitz)":       "Blitz",
	}
	for in, want := range tests {
		if got := shortTitle(in); got != want {
			t.Errorf("shortTitle(%q) = %q, expected %q", in, got, want)
		}
	}
}
