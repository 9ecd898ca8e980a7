package core

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// BoardConfig sets the board shape and the number of tile types.
type BoardConfig struct {
	Rows      int
	Cols      int
	TileTypes int
}

// DefaultBoardConfig returns the classic 8x8 board with 7 tile types.
func DefaultBoardConfig() BoardConfig {
	return BoardConfig{Rows: 8, Cols: 8, TileTypes: 7}
}

// Validate checks that every dimension is positive and that there are at least two tile
// types, the fewest a match-free board can be built from.
func (c BoardConfig) Validate() error {
	if c.Rows <= 0 || c.Cols <= 0 {
		return fmt.Errorf("board %dx%d: %w", c.Rows, c.Cols, ErrInvalidInput)
	}
	if c.TileTypes < 2 {
		return fmt.Errorf("board tile types %d: %w", c.TileTypes, ErrInvalidInput)
	}
	return nil
}

// Rules bundles the tunable scoring and hype tables.
type Rules struct {
	Score ScoreRules
	Hype  HypeRules
}

// DefaultRules returns the stock scoring and hype tables.
func DefaultRules() Rules {
	return Rules{
		Score: DefaultScoreRules(),
		Hype:  DefaultHypeRules(),
	}
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for wave traces and fallback warnings.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// Engine generates and resolves boards of one configuration.
// It is not safe for concurrent use; each game session owns its engine.
type Engine struct {
	cfg   BoardConfig
	rules Rules
	rng   Rand
	tiles *TileFactory
	log   *log.Logger
}

// New creates an engine. rng is the only source of randomness the engine uses.
func New(cfg BoardConfig, rules Rules, rng Rand, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("nil random source: %w", ErrInvalidInput)
	}

	e := &Engine{
		cfg:   cfg,
		rules: rules,
		rng:   rng,
		tiles: NewTileFactory(rng, cfg.TileTypes),
		log:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}

	if cfg.TileTypes <= 3 {
		e.log.Warn("few tile types, boards will cascade heavily", "types", cfg.TileTypes)
	}
	return e, nil
}

// Config returns the board configuration.
func (e *Engine) Config() BoardConfig {
	return e.cfg
}

// Rules returns the scoring and hype tables.
func (e *Engine) Rules() Rules {
	return e.rules
}

// Tiles returns the engine's tile factory.
func (e *Engine) Tiles() *TileFactory {
	return e.tiles
}

// checkGrid verifies g has the engine's shape and no vacant cells.
func (e *Engine) checkGrid(g Grid) error {
	if g.Rows != e.cfg.Rows || g.Cols != e.cfg.Cols || len(g.cells) != g.Rows*g.Cols {
		return fmt.Errorf("grid %dx%d, engine wants %dx%d: %w", g.Rows, g.Cols, e.cfg.Rows, e.cfg.Cols, ErrInvalidInput)
	}
	if g.HasEmpty() {
		return fmt.Errorf("grid has empty cells: %w", ErrInvalidInput)
	}
	return nil
}
