package core

import "github.com/shopspring/decimal"

// ComboTier applies Multiplier once the combo count reaches MinCombo.
type ComboTier struct {
	MinCombo   int
	Multiplier decimal.Decimal
}

// ScoreRules holds the point values and multiplier tables.
type ScoreRules struct {
	PerTile    int
	Bonus4     int
	Bonus5Plus int

	// Cascade is indexed by wave depth; depths past the end use the last entry.
	Cascade []decimal.Decimal
	// Combo is a step function over the move combo; below the lowest tier the factor is 1.
	Combo []ComboTier
	// MultiGroup applies when a single wave clears two or more groups.
	MultiGroup decimal.Decimal
}

// DefaultScoreRules returns the stock tables.
func DefaultScoreRules() ScoreRules {
	return ScoreRules{
		PerTile:    10,
		Bonus4:     20,
		Bonus5Plus: 50,
		Cascade: []decimal.Decimal{
			decimal.NewFromInt(1),
			decimal.RequireFromString("1.5"),
			decimal.NewFromInt(2),
			decimal.NewFromInt(3),
			decimal.NewFromInt(4),
		},
		Combo: []ComboTier{
			{MinCombo: 2, Multiplier: decimal.RequireFromString("1.5")},
			{MinCombo: 3, Multiplier: decimal.NewFromInt(2)},
			{MinCombo: 4, Multiplier: decimal.NewFromInt(3)},
			{MinCombo: 5, Multiplier: decimal.NewFromInt(5)},
		},
		MultiGroup: decimal.RequireFromString("1.5"),
	}
}

// SizeBonus returns the extra points for a group of the given size.
func (s ScoreRules) SizeBonus(size int) int {
	switch {
	case size >= 5:
		return s.Bonus5Plus
	case size == 4:
		return s.Bonus4
	default:
		return 0
	}
}

// BasePoints sums size*PerTile plus the size bonus over all groups.
func (s ScoreRules) BasePoints(groups []MatchGroup) int {
	base := 0
	for _, grp := range groups {
		base += grp.Size()*s.PerTile + s.SizeBonus(grp.Size())
	}
	return base
}

var one = decimal.NewFromInt(1)

// CascadeMultiplier returns the factor for a wave at the given depth.
func (s ScoreRules) CascadeMultiplier(depth int) decimal.Decimal {
	if len(s.Cascade) == 0 {
		return one
	}
	if depth < 0 {
		depth = 0
	}
	if depth >= len(s.Cascade) {
		depth = len(s.Cascade) - 1
	}
	return s.Cascade[depth]
}

// ComboMultiplier returns the factor of the highest tier whose MinCombo is at most combo.
func (s ScoreRules) ComboMultiplier(combo int) decimal.Decimal {
	mult := one
	best := -1
	for _, tier := range s.Combo {
		if tier.MinCombo <= combo && tier.MinCombo > best {
			best = tier.MinCombo
			mult = tier.Multiplier
		}
	}
	return mult
}

// MultiGroupMultiplier returns MultiGroup when groups >= 2, otherwise 1.
func (s ScoreRules) MultiGroupMultiplier(groups int) decimal.Decimal {
	if groups >= 2 && !s.MultiGroup.IsZero() {
		return s.MultiGroup
	}
	return one
}

// Multiplier is the product of the cascade, combo and multi-group factors.
func (s ScoreRules) Multiplier(depth, combo, groups int) decimal.Decimal {
	return s.CascadeMultiplier(depth).
		Mul(s.ComboMultiplier(combo)).
		Mul(s.MultiGroupMultiplier(groups))
}

// WaveScore is the scoring breakdown of one wave.
type WaveScore struct {
	Base       int
	Multiplier decimal.Decimal
	Points     int
}

// WaveScore scores one wave: floor(base * multiplier).
func (s ScoreRules) WaveScore(groups []MatchGroup, depth, combo int) WaveScore {
	base := s.BasePoints(groups)
	mult := s.Multiplier(depth, combo, len(groups))
	points := decimal.NewFromInt(int64(base)).Mul(mult).Floor().IntPart()
	return WaveScore{Base: base, Multiplier: mult, Points: int(points)}
}
