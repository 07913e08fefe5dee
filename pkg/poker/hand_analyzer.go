package poker

import (
	"sort"

	"casino-server/pkg/deck"
)

// group is the cards of a hand that share a rank
type group struct {
	rank  int
	count int
}

// HandAnalyzer classifies a five-card hand
type HandAnalyzer struct {
	// groups is ordered by size, then by rank, largest first
	groups   []group
	flush    bool
	straight int
	category Hand
}

// NewHandAnalyzer will return a new HandAnalyzer instance
// Callers are expected to pass five distinct cards, see Evaluate()
func NewHandAnalyzer(cards []deck.Card) *HandAnalyzer {
	counts := make(map[int]int, len(cards))
	suits := make(map[deck.Suit]bool, len(deck.Suits))
	for _, c := range cards {
		counts[c.Rank]++
		suits[c.Suit] = true
	}

	h := &HandAnalyzer{
		groups: make([]group, 0, len(counts)),
		flush:  len(cards) == HandSize && len(suits) == 1,
	}

	for rank, count := range counts {
		h.groups = append(h.groups, group{rank: rank, count: count})
	}

	sort.Slice(h.groups, func(i, j int) bool {
		if h.groups[i].count != h.groups[j].count {
			return h.groups[i].count > h.groups[j].count
		}

		return h.groups[i].rank > h.groups[j].rank
	})

	if len(h.groups) == HandSize {
		h.straight = straightHigh(h.groups)
	}

	h.category = h.classify()
	return h
}

// straightHigh returns the top rank of five distinct ranks in a row, or 0
// The ace plays low in a wheel (A-2-3-4-5), which is a five-high straight.
func straightHigh(groups []group) int {
	high, low := groups[0].rank, groups[len(groups)-1].rank
	if high-low == HandSize-1 {
		return high
	}

	if high == deck.Ace && groups[1].rank == 5 && low == 2 {
		return 5
	}

	return 0
}

func (h *HandAnalyzer) classify() Hand {
	if len(h.groups) == 0 {
		return HighCard
	}

	largest := h.groups[0].count
	second := 0
	if len(h.groups) > 1 {
		second = h.groups[1].count
	}

	switch {
	case h.flush && h.straight == deck.Ace:
		return RoyalFlush
	case h.flush && h.straight > 0:
		return StraightFlush
	case largest == 4:
		return FourOfAKind
	case largest == 3 && second == 2:
		return FullHouse
	case h.flush:
		return Flush
	case h.straight > 0:
		return Straight
	case largest == 3:
		return ThreeOfAKind
	case largest == 2 && second == 2:
		return TwoPair
	case largest == 2:
		return OnePair
	}

	return HighCard
}

// Category returns the hand category the cards make
func (h *HandAnalyzer) Category() Hand {
	return h.category
}

// TieBreakers returns the ranks that order two hands of the same category
// Straights compare on their top card, everything else on its rank groups, largest first.
func (h *HandAnalyzer) TieBreakers() []int {
	if h.straight > 0 {
		return []int{h.straight}
	}

	ranks := make([]int, len(h.groups))
	for i, g := range h.groups {
		ranks[i] = g.rank
	}

	return ranks
}
