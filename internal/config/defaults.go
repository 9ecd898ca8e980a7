package config

import (
	_ "embed"

	"github.com/shopspring/decimal"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

// DefaultMatch3Config returns the hard-coded rules, identical to the embedded YAML.
func DefaultMatch3Config() Match3Config {
	d := decimal.RequireFromString
	return Match3Config{
		Board: BoardConfig{
			Rows:      8,
			Cols:      8,
			TileTypes: 7,
		},
		Scoring: ScoringConfig{
			PerTile:    10,
			Bonus4:     20,
			Bonus5Plus: 50,
			Cascade:    []decimal.Decimal{d("1"), d("1.5"), d("2"), d("3"), d("4")},
			Combo: []ComboTierConfig{
				{Min: 2, Multiplier: d("1.5")},
				{Min: 3, Multiplier: d("2")},
				{Min: 4, Multiplier: d("3")},
				{Min: 5, Multiplier: d("5")},
			},
			MultiGroup: d("1.5"),
		},
		Hype: HypeConfig{
			Chain: []HypeTierConfig{
				{Min: 2, Label: "Another One!", Intensity: 2},
				{Min: 3, Label: "Triple!", Intensity: 3},
				{Min: 4, Label: "Quadruple!", Intensity: 4},
				{Min: 5, Label: "Quintuple!", Intensity: 5},
			},
			BigMatch: []HypeTierConfig{
				{Min: 4, Label: "Big Squeeze!", Intensity: 2},
				{Min: 5, Label: "Berry Bomb!", Intensity: 3},
			},
			Streak: []HypeTierConfig{
				{Min: 2, Label: "Heating", Intensity: 1},
				{Min: 3, Label: "On Fire", Intensity: 2},
				{Min: 4, Label: "Bazingaberry!", Intensity: 3},
				{Min: 6, Label: "Mega Bazingaberry!", Intensity: 4},
				{Min: 9, Label: "BAZILLIONAIRE!", Intensity: 5},
			},
		},
		Timing: TimingConfig{
			SwapMS:        200,
			PopMS:         280,
			DropMS:        350,
			ShakeMS:       300,
			HypeMS:        1200,
			ComboWindowMS: 3000,
			HintIdleMS:    5000,
		},
		Milestones: []int{500, 1000, 2000, 5000, 10000, 25000, 50000},
		Modes: map[string]ModeConfig{
			ModeStandard: {Moves: 30},
			ModeTimed:    {TimeLimitSecs: 120},
			ModeBlitz:    {Moves: 15},
			ModeEndless:  {},
		},
	}
}
