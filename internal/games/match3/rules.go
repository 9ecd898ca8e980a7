package match3

import (
	"github.com/vovakirdan/berrymatch/internal/config"
	"github.com/vovakirdan/berrymatch/internal/games/match3/core"
)

// BoardFromConfig converts the board section of a rules file.
func BoardFromConfig(c config.BoardConfig) core.BoardConfig {
	return core.BoardConfig{
		Rows:      c.Rows,
		Cols:      c.Cols,
		TileTypes: c.TileTypes,
	}
}

// RulesFromConfig converts the scoring and hype sections of a rules file.
func RulesFromConfig(c config.Match3Config) core.Rules {
	s := c.Scoring
	score := core.ScoreRules{
		PerTile:    s.PerTile,
		Bonus4:     s.Bonus4,
		Bonus5Plus: s.Bonus5Plus,
		Cascade:    append(s.Cascade[:0:0], s.Cascade...),
		MultiGroup: s.MultiGroup,
	}
	for _, t := range s.Combo {
		score.Combo = append(score.Combo, core.ComboTier{MinCombo: t.Min, Multiplier: t.Multiplier})
	}

	return core.Rules{
		Score: score,
		Hype: core.HypeRules{
			Chain:    hypeTiers(c.Hype.Chain),
			BigMatch: hypeTiers(c.Hype.BigMatch),
			Streak:   hypeTiers(c.Hype.Streak),
		},
	}
}

func hypeTiers(in []config.HypeTierConfig) []core.HypeTier {
	out := make([]core.HypeTier, 0, len(in))
	for _, t := range in {
		out = append(out, core.HypeTier{Min: t.Min, Label: t.Label, Intensity: t.Intensity})
	}
	return out
}
