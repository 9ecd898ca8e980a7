package core

// HypeKind names the signal behind a hype event.
type HypeKind int

const (
	HypeChain HypeKind = iota + 1
	HypeBigMatch
	HypeStreak
	HypeMilestone
)

func (k HypeKind) String() string {
	switch k {
	case HypeChain:
		return "chain"
	case HypeBigMatch:
		return "big_match"
	case HypeStreak:
		return "streak"
	case HypeMilestone:
		return "milestone"
	default:
		return "unknown"
	}
}

// HypeEvent is a celebratory message with an intensity from 1 to 5.
type HypeEvent struct {
	Kind      HypeKind
	Label     string
	Intensity int
}

// HypeTier fires Label at Intensity once a signal reaches Min.
type HypeTier struct {
	Min       int
	Label     string
	Intensity int
}

// HypeRules holds one tier table per signal.
type HypeRules struct {
	Chain    []HypeTier
	BigMatch []HypeTier
	Streak   []HypeTier
}

// DefaultHypeRules returns the stock tier tables.
func DefaultHypeRules() HypeRules {
	return HypeRules{
		Chain: []HypeTier{
			{Min: 2, Label: "Another One!", Intensity: 2},
			{Min: 3, Label: "Triple!", Intensity: 3},
			{Min: 4, Label: "Quadruple!", Intensity: 4},
			{Min: 5, Label: "Quintuple!", Intensity: 5},
		},
		BigMatch: []HypeTier{
			{Min: 4, Label: "Big Squeeze!", Intensity: 2},
			{Min: 5, Label: "Berry Bomb!", Intensity: 3},
		},
		Streak: []HypeTier{
			{Min: 2, Label: "Heating", Intensity: 1},
			{Min: 3, Label: "On Fire", Intensity: 2},
			{Min: 4, Label: "Bazingaberry!", Intensity: 3},
			{Min: 6, Label: "Mega Bazingaberry!", Intensity: 4},
			{Min: 9, Label: "BAZILLIONAIRE!", Intensity: 5},
		},
	}
}

// HypeInput describes the wave being celebrated.
type HypeInput struct {
	// Streak counts consecutive accepted swaps, the current one included.
	Streak int
	// Depth is the wave depth, 0 for the swap-triggered wave.
	Depth int
	// GroupCount is the number of groups in this wave.
	GroupCount int
	// HadDouble is set once any earlier wave of the move cleared two or more groups at depth 0.
	HadDouble bool
	// GroupSizes lists the size of every group in this wave.
	GroupSizes []int
}

// ChainLevel converts a wave into the chain signal. A double at depth 0 lifts the level
// by one and keeps one extra level for the rest of the move.
func ChainLevel(in HypeInput) int {
	level := in.Depth + 1
	if in.HadDouble || (in.Depth == 0 && in.GroupCount >= 2) {
		level += 2
	}
	return level
}

// pickTier returns the tier with the highest Min not above value.
func pickTier(tiers []HypeTier, value int) (HypeTier, bool) {
	var best HypeTier
	found := false
	for _, t := range tiers {
		if t.Min <= value && (!found || t.Min > best.Min) {
			best = t
			found = true
		}
	}
	return best, found
}

// Select picks at most one hype event for a wave. Candidates are the chain tier, the
// big-match tier when the chain signal is below its lowest tier, and the streak tier at
// depth 0. The most intense candidate wins; ties go to the earlier of chain, big match,
// streak.
func (h HypeRules) Select(in HypeInput) (HypeEvent, bool) {
	var best HypeEvent
	found := false
	consider := func(kind HypeKind, t HypeTier) {
		if !found || t.Intensity > best.Intensity {
			best = HypeEvent{Kind: kind, Label: t.Label, Intensity: t.Intensity}
			found = true
		}
	}

	chain, ok := pickTier(h.Chain, ChainLevel(in))
	if ok {
		consider(HypeChain, chain)
	} else {
		largest := 0
		for _, size := range in.GroupSizes {
			if size > largest {
				largest = size
			}
		}
		if t, ok := pickTier(h.BigMatch, largest); ok {
			consider(HypeBigMatch, t)
		}
	}

	if in.Depth == 0 {
		if t, ok := pickTier(h.Streak, in.Streak); ok {
			consider(HypeStreak, t)
		}
	}

	return best, found
}
