package poker

import (
	"errors"
	"fmt"

	"casino-server/pkg/deck"
)

// HandSize is the number of cards that make up a poker hand
const HandSize = 5

// ErrHandSize is returned when a hand does not have exactly five cards
var ErrHandSize = errors.New("a poker hand must have exactly five cards")

// ErrDuplicateCard is returned when the same card appears twice in a hand
var ErrDuplicateCard = errors.New("a poker hand cannot contain the same card twice")

// Hand is a poker hand category, i.e., royal flush
type Hand int

// Constants for hand
const (
	HighCard Hand = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns the string representation of a hand
func (h Hand) String() string {
	switch h {
	case HighCard:
		return "High card"
	case OnePair:
		return "Pair"
	case TwoPair:
		return "Two pair"
	case ThreeOfAKind:
		return "Three of a kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full house"
	case FourOfAKind:
		return "Four of a kind"
	case StraightFlush:
		return "Straight flush"
	case RoyalFlush:
		return "Royal flush"
	default:
		panic(fmt.Sprintf("unknown hand: %d", h))
	}
}

// Value is the ordinal strength of the category, HighCard is 1 and RoyalFlush is 10
func (h Hand) Value() int {
	return int(h) + 1
}

// MarshalJSON encodes the hand as its display name
func (h Hand) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", h.String())), nil
}

// Result is the evaluation of a five-card hand
type Result struct {
	Hand        Hand  `json:"hand"`
	Value       int   `json:"value"`
	TieBreakers []int `json:"tieBreakers"`
}

func (r Result) String() string {
	return r.Hand.String()
}

// Evaluate classifies exactly five cards and computes the tie-breakers that order
// hands within the same category
func Evaluate(cards []deck.Card) (Result, error) {
	if len(cards) != HandSize {
		return Result{}, ErrHandSize
	}

	seen := make(map[deck.Card]bool, HandSize)
	for _, c := range cards {
		if !c.IsValid() {
			return Result{}, fmt.Errorf("invalid card in hand: %+v", c)
		}

		if seen[c] {
			return Result{}, ErrDuplicateCard
		}

		seen[c] = true
	}

	h := NewHandAnalyzer(cards)
	return Result{
		Hand:        h.Category(),
		Value:       h.Category().Value(),
		TieBreakers: h.TieBreakers(),
	}, nil
}

// MustEvaluate is like Evaluate, but panics on an invalid hand
func MustEvaluate(cards []deck.Card) Result {
	r, err := Evaluate(cards)
	if err != nil {
		panic(err)
	}

	return r
}

// Compare returns 1 if a beats b, -1 if b beats a, and 0 on a push
func Compare(a, b Result) int {
	if a.Value != b.Value {
		if a.Value > b.Value {
			return 1
		}

		return -1
	}

	for i := 0; i < len(a.TieBreakers) && i < len(b.TieBreakers); i++ {
		if a.TieBreakers[i] > b.TieBreakers[i] {
			return 1
		} else if a.TieBreakers[i] < b.TieBreakers[i] {
			return -1
		}
	}

	return 0
}
