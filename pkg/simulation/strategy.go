package simulation

import (
	"sort"

	"casino-server/pkg/deck"
	"casino-server/pkg/playable"
	"casino-server/pkg/playable/blackjack"
	"casino-server/pkg/playable/dice"
	"casino-server/pkg/playable/fivecarddraw"
	"casino-server/pkg/playable/fortuneapple"
	"casino-server/pkg/playable/slots"
	"casino-server/pkg/poker"
)

// appleCashOutLevel is the level the fortune apple strategy walks away at
const appleCashOutLevel = 3

// Strategy plays one fixed line for a game
type Strategy interface {
	// Options returns the additional data used to start round i
	Options(i int) playable.AdditionalData

	// Next returns the action to take, nil when the strategy has nothing to do
	Next(game playable.Playable) *playable.PayloadIn
}

// Strategies returns the strategy for every game key
func Strategies() map[string]Strategy {
	return map[string]Strategy{
		blackjack.Key:                 blackjackStrategy{},
		fivecarddraw.KeyJacksOrBetter: jacksOrBetterStrategy{},
		fivecarddraw.KeyVersusDealer:  versusDealerStrategy{},
		dice.Key:                      diceStrategy{},
		slots.Key:                     noActions{},
		fortuneapple.Key:              appleStrategy{},
	}
}

type noActions struct{}

func (noActions) Options(int) playable.AdditionalData        { return playable.AdditionalData{} }
func (noActions) Next(playable.Playable) *playable.PayloadIn { return nil }

// blackjackStrategy hits below 17
type blackjackStrategy struct{ noActions }

func (blackjackStrategy) Next(game playable.Playable) *playable.PayloadIn {
	r := game.(*blackjack.Game).Round()
	if blackjack.Score(r.Player) < 17 {
		return &playable.PayloadIn{Action: "hit"}
	}

	return &playable.PayloadIn{Action: "stand"}
}

// diceStrategy alternates between high and low
type diceStrategy struct{ noActions }

func (diceStrategy) Options(i int) playable.AdditionalData {
	if i%2 == 0 {
		return playable.AdditionalData{"betType": string(dice.BetHigh)}
	}

	return playable.AdditionalData{"betType": string(dice.BetLow)}
}

// appleStrategy always picks the first apple and cashes out at appleCashOutLevel
type appleStrategy struct{ noActions }

func (appleStrategy) Next(game playable.Playable) *playable.PayloadIn {
	r := game.(*fortuneapple.Game).Round()
	if r.Level >= appleCashOutLevel {
		return &playable.PayloadIn{Action: "cash-out"}
	}

	return &playable.PayloadIn{
		Action:         "pick",
		AdditionalData: playable.AdditionalData{"apple": 0},
	}
}

// jacksOrBetterStrategy holds made hands, otherwise any jack or better
type jacksOrBetterStrategy struct{ noActions }

func (jacksOrBetterStrategy) Next(game playable.Playable) *playable.PayloadIn {
	hand := game.(*fivecarddraw.Game).Round().Player
	result := poker.MustEvaluate(hand[:])

	var holds []int
	switch {
	case result.Hand >= poker.Straight:
		holds = []int{0, 1, 2, 3, 4}
	case result.Hand >= poker.OnePair:
		holds = pairedPositions(hand)
	default:
		for i, c := range hand {
			if c.Rank >= deck.Jack {
				holds = append(holds, i)
			}
		}
	}

	return drawAction(holds)
}

// versusDealerStrategy holds pairs, otherwise the highest card
type versusDealerStrategy struct{ noActions }

func (versusDealerStrategy) Next(game playable.Playable) *playable.PayloadIn {
	hand := game.(*fivecarddraw.Game).Round().Player
	holds := pairedPositions(hand)

	if len(holds) == 0 {
		best := 0
		for i, c := range hand {
			if c.Rank > hand[best].Rank {
				best = i
			}
		}
		holds = []int{best}
	}

	return drawAction(holds)
}

// pairedPositions returns the positions of cards that share their rank with another card
func pairedPositions(hand [poker.HandSize]deck.Card) []int {
	counts := make(map[int]int)
	for _, c := range hand {
		counts[c.Rank]++
	}

	positions := make([]int, 0)
	for i, c := range hand {
		if counts[c.Rank] > 1 {
			positions = append(positions, i)
		}
	}

	sort.Ints(positions)
	return positions
}

func drawAction(holds []int) *playable.PayloadIn {
	return &playable.PayloadIn{
		Action:         "draw",
		AdditionalData: playable.AdditionalData{"holds": holds},
	}
}
