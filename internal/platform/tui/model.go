package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/berrymatch/internal/config"
	"github.com/vovakirdan/berrymatch/internal/core"
	"github.com/vovakirdan/berrymatch/internal/games/match3"
	"github.com/vovakirdan/berrymatch/internal/logging"
	"github.com/vovakirdan/berrymatch/internal/registry"
	"github.com/vovakirdan/berrymatch/internal/storage"
)

// resizer is implemented by games that can follow a terminal resize without a restart.
type resizer interface {
	Resize(w, h int)
}

// summarizer is implemented by games that keep a full run record.
type summarizer interface {
	Summary() match3.Summary
}

// RunFromSummary converts a finished game into a run history record.
func RunFromSummary(s match3.Summary) storage.Run {
	return storage.Run{
		GameID:    s.GameID,
		Score:     s.Score,
		Moves:     s.Stats.Moves,
		BestChain: s.Stats.BestChain,
		BestCombo: s.Stats.BestCombo,
		Seed:      s.Seed,
		Duration:  s.Duration,
	}
}

// saveResult stores the outcome of a finished game: a full run when the game keeps one,
// a bare score otherwise.
func saveResult(store *storage.Store, game registry.Game, state core.GameState) error {
	if s, ok := game.(summarizer); ok {
		_, err := store.SaveRun(RunFromSummary(s.Summary()))
		return err
	}
	_, err := store.SaveScore(game.ID(), state.Score)
	return err
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	back       bool
	runSaved   bool // Whether the run has been saved for the current game over
}

// NewModel creates a new Bubble Tea model for the given game.
// A nil logger discards everything.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if logger == nil {
		logger = logging.Discard()
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logger,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		m.back = true
		return m, tea.Quit
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}

	// Games without a layout pass restart with the new dimensions
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) {
		m.restart()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	if len(result.Cues) > 0 {
		m.logger.Debug("cues", "game", m.game.ID(), "cues", result.Cues)
	}

	// Save the run on game over (once)
	if m.gameState.GameOver && !m.runSaved {
		m.runSaved = true
		if m.store != nil && m.gameState.Score > 0 {
			if err := saveResult(m.store, m.game, m.gameState); err != nil {
				m.logger.Error("cannot save run", "game", m.game.ID(), "err", err)
			}
		}
	}

	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// restart starts a new game with a fresh seed.
func (m *Model) restart() {
	m.config.Seed = time.Now().UnixNano()
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.runSaved = false
	m.inputFrame.Clear()
}

// saveScreenshot saves the current screen to ~/.berrymatch/screenshots.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := config.HomePath("screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "dir", dir, "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "path", path, "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.back {
		return ""
	}

	m.game.Render(m.screen)

	return RenderScreen(m.screen)
}

// Quitting reports whether the player asked to leave the program.
func (m Model) Quitting() bool {
	return m.quitting
}

// Run starts the Bubble Tea program for a single game.
// Returns true when the player pressed back rather than quit.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) (back bool, err error) {
	model := NewModel(game, store, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if m, ok := final.(Model); ok {
		return m.back, nil
	}
	return false, nil
}
