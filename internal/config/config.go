// Package config provides YAML-based rules loading and process settings
// for the match-3 game.
package config

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Match3Config contains every tunable of the match-3 rules.
type Match3Config struct {
	Board      BoardConfig           `yaml:"board"`
	Scoring    ScoringConfig         `yaml:"scoring"`
	Hype       HypeConfig            `yaml:"hype"`
	Timing     TimingConfig          `yaml:"timing"`
	Milestones []int                 `yaml:"milestones"`
	Modes      map[string]ModeConfig `yaml:"modes"`
}

// BoardConfig defines the board shape.
type BoardConfig struct {
	Rows      int `yaml:"rows"`
	Cols      int `yaml:"cols"`
	TileTypes int `yaml:"tile_types"`
}

// ScoringConfig defines points and multipliers. Multipliers are decimals so
// values like 1.5 stay exact.
type ScoringConfig struct {
	PerTile    int               `yaml:"per_tile"`
	Bonus4     int               `yaml:"bonus_4"`
	Bonus5Plus int               `yaml:"bonus_5_plus"`
	Cascade    []decimal.Decimal `yaml:"cascade"`
	Combo      []ComboTierConfig `yaml:"combo"`
	MultiGroup decimal.Decimal   `yaml:"multi_group"`
}

// ComboTierConfig applies Multiplier from combo Min upward.
type ComboTierConfig struct {
	Min        int             `yaml:"min"`
	Multiplier decimal.Decimal `yaml:"multiplier"`
}

// HypeConfig holds one tier table per hype signal.
type HypeConfig struct {
	Chain    []HypeTierConfig `yaml:"chain"`
	BigMatch []HypeTierConfig `yaml:"big_match"`
	Streak   []HypeTierConfig `yaml:"streak"`
}

// HypeTierConfig fires Label at Intensity once the signal reaches Min.
type HypeTierConfig struct {
	Min       int    `yaml:"min"`
	Label     string `yaml:"label"`
	Intensity int    `yaml:"intensity"`
}

// TimingConfig defines animation and window durations in milliseconds.
type TimingConfig struct {
	SwapMS        int `yaml:"swap_ms"`
	PopMS         int `yaml:"pop_ms"`
	DropMS        int `yaml:"drop_ms"`
	ShakeMS       int `yaml:"shake_ms"`
	HypeMS        int `yaml:"hype_ms"`
	ComboWindowMS int `yaml:"combo_window_ms"`
	HintIdleMS    int `yaml:"hint_idle_ms"`
}

// ModeConfig limits a play mode. Zero means unlimited.
type ModeConfig struct {
	Moves         int `yaml:"moves"`
	TimeLimitSecs int `yaml:"time_limit_secs"`
}

// Mode names as they appear in the modes table.
const (
	ModeStandard = "standard"
	ModeTimed    = "timed"
	ModeBlitz    = "blitz"
	ModeEndless  = "endless"
)

// ErrInvalidConfig reports a rules file that parses but cannot be played.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks the rules for values the engine cannot work with.
func (c Match3Config) Validate() error {
	if c.Board.Rows <= 0 || c.Board.Cols <= 0 || c.Board.TileTypes < 2 {
		return fmt.Errorf("board %dx%d with %d types: %w", c.Board.Rows, c.Board.Cols, c.Board.TileTypes, ErrInvalidConfig)
	}
	if c.Scoring.PerTile < 0 || c.Scoring.Bonus4 < 0 || c.Scoring.Bonus5Plus < 0 {
		return fmt.Errorf("negative points: %w", ErrInvalidConfig)
	}
	if len(c.Scoring.Cascade) == 0 {
		return fmt.Errorf("empty cascade table: %w", ErrInvalidConfig)
	}
	for i, m := range c.Scoring.Cascade {
		if m.IsNegative() {
			return fmt.Errorf("cascade[%d] is negative: %w", i, ErrInvalidConfig)
		}
		if i > 0 && m.LessThan(c.Scoring.Cascade[i-1]) {
			return fmt.Errorf("cascade[%d]=%s below cascade[%d]=%s: %w", i, m, i-1, c.Scoring.Cascade[i-1], ErrInvalidConfig)
		}
	}
	for i, tier := range c.Scoring.Combo {
		if i > 0 && tier.Min <= c.Scoring.Combo[i-1].Min {
			return fmt.Errorf("combo thresholds not ascending at %d: %w", tier.Min, ErrInvalidConfig)
		}
	}
	for name, tiers := range map[string][]HypeTierConfig{
		"chain":     c.Hype.Chain,
		"big_match": c.Hype.BigMatch,
		"streak":    c.Hype.Streak,
	} {
		if err := validateTiers(name, tiers); err != nil {
			return err
		}
	}
	for i, m := range c.Milestones {
		if m <= 0 || (i > 0 && m <= c.Milestones[i-1]) {
			return fmt.Errorf("milestones not ascending at %d: %w", m, ErrInvalidConfig)
		}
	}
	t := c.Timing
	if t.SwapMS < 0 || t.PopMS < 0 || t.DropMS < 0 || t.ShakeMS < 0 || t.HypeMS < 0 || t.ComboWindowMS < 0 || t.HintIdleMS < 0 {
		return fmt.Errorf("negative duration: %w", ErrInvalidConfig)
	}
	for name, m := range c.Modes {
		if m.Moves < 0 || m.TimeLimitSecs < 0 {
			return fmt.Errorf("mode %s has negative limits: %w", name, ErrInvalidConfig)
		}
	}
	return nil
}

func validateTiers(name string, tiers []HypeTierConfig) error {
	for i, tier := range tiers {
		if tier.Intensity < 1 || tier.Intensity > 5 {
			return fmt.Errorf("hype %s tier %q intensity %d outside 1..5: %w", name, tier.Label, tier.Intensity, ErrInvalidConfig)
		}
		if i > 0 && tier.Min <= tiers[i-1].Min {
			return fmt.Errorf("hype %s thresholds not ascending at %d: %w", name, tier.Min, ErrInvalidConfig)
		}
	}
	return nil
}

// Mode returns the limits of a named mode, or an unlimited mode when it is not listed.
func (c Match3Config) Mode(name string) ModeConfig {
	return c.Modes[name]
}
