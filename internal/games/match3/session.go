package match3

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/berrymatch/internal/config"
	"github.com/vovakirdan/berrymatch/internal/games/match3/core"
)

var (
	// ErrGameOver is returned for swaps attempted after the session ended.
	ErrGameOver = errors.New("match3: game over")
	// ErrBusy is returned for swaps attempted while a cascade is still being played out.
	ErrBusy = errors.New("match3: move in progress")
)

// SessionConfig holds the limits and windows of one session.
type SessionConfig struct {
	Mode        config.ModeConfig
	ComboWindow time.Duration
	Milestones  []int
}

// SessionConfigFrom builds the session settings of a mode from a rules file.
func SessionConfigFrom(cfg config.Match3Config, mode Mode) SessionConfig {
	return SessionConfig{
		Mode:        cfg.Mode(string(mode)),
		ComboWindow: time.Duration(cfg.Timing.ComboWindowMS) * time.Millisecond,
		Milestones:  append([]int(nil), cfg.Milestones...),
	}
}

// Turn reports everything one swap attempt changed.
type Turn struct {
	Swap       core.SwapResult
	Resolution core.Resolution

	ComboBefore int
	ComboAfter  int
	Streak      int

	// Milestone is set when the move carried the score past one or more milestones;
	// only the highest is reported.
	Milestone *core.HypeEvent
	GameOver  bool
}

// Hype returns the event to show for the turn: the move's own hype first, then a milestone.
func (t Turn) Hype() (core.HypeEvent, bool) {
	if ev, ok := t.Resolution.Hype(); ok {
		return ev, true
	}
	if t.Milestone != nil {
		return *t.Milestone, true
	}
	return core.HypeEvent{}, false
}

// Stats are the per-run records kept for the run history.
type Stats struct {
	Moves      int
	Rejected   int
	BestChain  int // most waves produced by a single move
	BestCombo  int
	Reshuffles int
}

// Session owns the cross-move state of one game: score, combo window, streak, limits
// and milestones. It is pure logic driven by explicit time; the game layer feeds it
// elapsed time and swap requests.
type Session struct {
	eng *core.Engine
	cfg SessionConfig

	grid   core.Grid
	score  int
	combo  int
	window time.Duration
	streak int

	movesLeft int
	timeLeft  time.Duration
	elapsed   time.Duration
	milestone int // index of the next milestone to reach
	over      bool
	stats     Stats

	pending *pendingMove
}

type pendingMove struct {
	res  *core.Resolver
	turn Turn
}

// NewSession generates a board with eng and starts a session on it.
func NewSession(eng *core.Engine, cfg SessionConfig) *Session {
	grid, report := eng.GenerateWithReport()
	if report.Err != nil {
		logger.Warn("board generation fell back", "attempts", report.Attempts, "err", report.Err)
	}
	return NewSessionWithGrid(eng, cfg, grid)
}

// NewSessionWithGrid starts a session on a prepared board.
func NewSessionWithGrid(eng *core.Engine, cfg SessionConfig, grid core.Grid) *Session {
	eng.Tiles().Reserve(grid.MaxID())
	return &Session{
		eng:       eng,
		cfg:       cfg,
		grid:      grid,
		movesLeft: cfg.Mode.Moves,
		timeLeft:  time.Duration(cfg.Mode.TimeLimitSecs) * time.Second,
	}
}

// Grid returns the current board. While a move is in progress it is the board after the
// last played wave.
func (s *Session) Grid() core.Grid { return s.grid }

// Score returns the running score.
func (s *Session) Score() int { return s.score }

// Combo returns the combo count; 0 means no combo.
func (s *Session) Combo() int { return s.combo }

// ComboWindow returns how long the combo stays alive without a new match.
func (s *Session) ComboWindow() time.Duration { return s.window }

// Streak returns the number of consecutive accepted swaps.
func (s *Session) Streak() int { return s.streak }

// MovesLeft returns the remaining moves and whether the mode limits moves at all.
func (s *Session) MovesLeft() (int, bool) {
	return s.movesLeft, s.cfg.Mode.Moves > 0
}

// TimeLeft returns the remaining time and whether the mode is timed.
func (s *Session) TimeLeft() (time.Duration, bool) {
	return s.timeLeft, s.cfg.Mode.TimeLimitSecs > 0
}

// Elapsed returns the play time fed to the session so far.
func (s *Session) Elapsed() time.Duration { return s.elapsed }

// Over reports whether the session ended.
func (s *Session) Over() bool { return s.over }

// Busy reports whether a move is being resolved.
func (s *Session) Busy() bool { return s.pending != nil }

// Stats returns the run records.
func (s *Session) Stats() Stats { return s.stats }

// Hint returns a legal move on the current board, unless a move is in progress.
func (s *Session) Hint() (core.Move, bool) {
	if s.pending != nil || s.over {
		return core.Move{}, false
	}
	return core.FindHint(s.grid)
}

// Elapse advances the clocks. The combo window only runs while the board is stable;
// a timed game whose clock runs out mid-move ends when the move settles.
func (s *Session) Elapse(d time.Duration) {
	if s.over || d <= 0 {
		return
	}
	s.elapsed += d

	if s.cfg.Mode.TimeLimitSecs > 0 {
		s.timeLeft -= d
		if s.timeLeft <= 0 {
			s.timeLeft = 0
			if s.pending == nil {
				s.over = true
			}
		}
	}

	if s.pending == nil && s.window > 0 {
		s.window -= d
		if s.window <= 0 {
			s.window = 0
			s.combo = 0
		}
	}
}

// Begin attempts a swap. A rejected swap resets the combo and the streak and leaves the
// board alone. An accepted one spends a move and starts a cascade that Step plays out
// and Settle finishes.
func (s *Session) Begin(from, to core.Coord) (core.SwapResult, error) {
	if s.over {
		return core.SwapResult{}, ErrGameOver
	}
	if s.pending != nil {
		return core.SwapResult{}, ErrBusy
	}

	res, err := s.eng.AttemptSwap(s.grid, from, to)
	if err != nil {
		return res, err
	}

	if !res.Accepted {
		s.combo = 0
		s.window = 0
		s.streak = 0
		s.stats.Rejected++
		return res, nil
	}

	before := s.combo
	if s.window > 0 {
		s.combo++
	} else {
		s.combo = 1
	}
	s.window = 0
	s.streak++
	s.stats.Moves++
	if s.cfg.Mode.Moves > 0 {
		s.movesLeft--
	}

	r, err := s.eng.NewResolver(res.Grid, core.ResolveInput{Combo: s.combo, Streak: s.streak})
	if err != nil {
		return res, fmt.Errorf("match3: cannot resolve swap %s: %w", res.Move, err)
	}
	s.grid = res.Grid
	s.pending = &pendingMove{
		res: r,
		turn: Turn{
			Swap:        res,
			ComboBefore: before,
			Streak:      s.streak,
		},
	}
	return res, nil
}

// Step plays the next wave of the move in progress and credits its points. It returns
// false once the board is stable or when no move is in progress.
func (s *Session) Step() (core.WaveResult, bool) {
	if s.pending == nil {
		return core.WaveResult{}, false
	}
	w, ok := s.pending.res.Step()
	if !ok {
		return core.WaveResult{}, false
	}
	s.score += w.Points
	s.combo = s.pending.res.Combo()
	s.grid = w.After
	return w, true
}

// Settle finishes the move in progress, playing any waves left, restarts the combo
// window and checks milestones and limits. It returns false when no move was in progress.
func (s *Session) Settle() (Turn, bool) {
	if s.pending == nil {
		return Turn{}, false
	}
	for {
		if _, ok := s.Step(); !ok {
			break
		}
	}

	p := s.pending
	s.pending = nil

	result := p.res.Result()
	s.grid = result.Final
	s.combo = result.FinalCombo
	s.window = s.cfg.ComboWindow
	if s.window <= 0 {
		s.combo = 0
	}

	if n := result.Depth(); n > s.stats.BestChain {
		s.stats.BestChain = n
	}
	if result.FinalCombo > s.stats.BestCombo {
		s.stats.BestCombo = result.FinalCombo
	}
	if result.Reshuffled {
		s.stats.Reshuffles++
	}

	turn := p.turn
	turn.Resolution = result
	turn.ComboAfter = s.combo
	turn.Milestone = s.reachMilestone()

	if s.cfg.Mode.Moves > 0 && s.movesLeft <= 0 {
		s.over = true
	}
	if s.cfg.Mode.TimeLimitSecs > 0 && s.timeLeft <= 0 {
		s.over = true
	}
	turn.GameOver = s.over
	return turn, true
}

// Swap runs a whole move at once: Begin, every wave, Settle.
func (s *Session) Swap(from, to core.Coord) (Turn, error) {
	before := s.combo
	res, err := s.Begin(from, to)
	if err != nil {
		return Turn{}, err
	}
	if !res.Accepted {
		return Turn{Swap: res, ComboBefore: before, GameOver: s.over}, nil
	}
	turn, _ := s.Settle()
	return turn, nil
}

// End stops the session, for instance when the player gives up.
func (s *Session) End() {
	if s.pending != nil {
		s.Settle()
	}
	s.over = true
}

func (s *Session) reachMilestone() *core.HypeEvent {
	hit := 0
	for s.milestone < len(s.cfg.Milestones) && s.score >= s.cfg.Milestones[s.milestone] {
		hit = s.cfg.Milestones[s.milestone]
		s.milestone++
	}
	if hit == 0 {
		return nil
	}
	return &core.HypeEvent{
		Kind:      core.HypeMilestone,
		Label:     MilestoneLabel(hit),
		Intensity: 1,
	}
}

// MilestoneLabel formats a milestone: 500 becomes "500!", 25000 becomes "25K!".
func MilestoneLabel(points int) string {
	switch {
	case points >= 1000 && points%1000 == 0:
		return fmt.Sprintf("%dK!", points/1000)
	case points >= 1000:
		return fmt.Sprintf("%.1fK!", float64(points)/1000)
	default:
		return fmt.Sprintf("%d!", points)
	}
}
