package fivecarddraw

import (
	"fmt"
	"sort"

	"casino-server/internal/rng"
	"casino-server/pkg/deck"
	"casino-server/pkg/playable"
	"casino-server/pkg/poker"
)

// Variant is how the hand is paid
type Variant string

// Variant constants
const (
	// VariantJacksOrBetter pays the player's final hand from the pay table
	VariantJacksOrBetter Variant = "jacks-or-better"
	// VariantVersusDealer plays the player's final hand against the dealer's
	VariantVersusDealer Variant = "versus-dealer"
)

// Phase is the phase of a draw round
type Phase string

// Phase constants
const (
	PhaseBetting  Phase = "betting"
	PhaseDraw     Phase = "draw"
	PhaseShowdown Phase = "showdown"
)

// Winner is who won a versus-dealer round
type Winner string

// Winner constants
const (
	WinnerNone   Winner = ""
	WinnerPlayer Winner = "player"
	WinnerDealer Winner = "dealer"
	WinnerPush   Winner = "push"
)

const (
	triggerDeal     = "deal"
	triggerDraw     = "draw"
	triggerNewRound = "new round"
)

var phases = playable.PhaseTable[Phase]{
	PhaseBetting:  {triggerDeal: PhaseDraw},
	PhaseDraw:     {triggerDraw: PhaseShowdown},
	PhaseShowdown: {triggerNewRound: PhaseBetting},
}

// Round is a snapshot of one round of five-card draw
// Every transition returns a new Round and leaves the receiver untouched
type Round struct {
	Variant Variant
	Bet     int
	Player  [poker.HandSize]deck.Card
	Dealer  [poker.HandSize]deck.Card
	Phase   Phase

	PlayerResult poker.Result
	DealerResult poker.Result
	Winner       Winner
	// Payout is the gross amount returned to the player, stake included
	Payout int

	deck deck.Deck
}

// NewRound returns a round waiting for a bet
func NewRound(variant Variant) Round {
	return Round{
		Variant: variant,
		Phase:   PhaseBetting,
		deck:    deck.New(),
	}
}

// IsVersus returns true when the player plays against the dealer
func (r Round) IsVersus() bool {
	return r.Variant == VariantVersusDealer
}

// CardsLeft returns the number of cards left in the round's deck
func (r Round) CardsLeft() int {
	return r.deck.CardsLeft()
}

// PlaceBet validates the bet, shuffles a fresh deck with g, and deals five cards
// to the player, then five to the dealer when playing versus the dealer
func (r Round) PlaceBet(bet, available int, g rng.Generator) (Round, error) {
	if r.Phase != PhaseBetting {
		return r, fmt.Errorf("%w: a bet has already been placed", playable.ErrInvalidAction)
	}

	if err := playable.ValidateBet(bet, available); err != nil {
		return r, err
	}

	return r.deal(bet, r.deck.Shuffle(g))
}

func (r Round) deal(bet int, d deck.Deck) (Round, error) {
	phase, err := phases.Fire(r.Phase, triggerDeal)
	if err != nil {
		return r, err
	}

	next := Round{
		Variant: r.Variant,
		Bet:     bet,
		Phase:   phase,
		deck:    d,
	}

	cards, err := next.deck.DrawN(poker.HandSize)
	if err != nil {
		return r, err
	}
	copy(next.Player[:], cards)

	if next.IsVersus() {
		if cards, err = next.deck.DrawN(poker.HandSize); err != nil {
			return r, err
		}
		copy(next.Dealer[:], cards)
	}

	next.PlayerResult = poker.MustEvaluate(next.Player[:])
	return next, nil
}

// Draw replaces every card not held and settles the round
// holds[i] == true keeps the card at position i. Only one draw is allowed per round.
func (r Round) Draw(holds [poker.HandSize]bool) (Round, error) {
	phase, err := phases.Fire(r.Phase, triggerDraw)
	if err != nil {
		return r, err
	}

	replace := 0
	for _, hold := range holds {
		if !hold {
			replace++
		}
	}

	if !r.deck.CanDraw(replace) {
		return r, deck.ErrEmptyDeck
	}

	next := r
	next.Phase = phase
	for i, hold := range holds {
		if hold {
			continue
		}

		if next.Player[i], err = next.deck.Draw(); err != nil {
			return r, err
		}
	}

	next.PlayerResult = poker.MustEvaluate(next.Player[:])

	if next.IsVersus() {
		next.Dealer = next.dealerDraw()
		next.DealerResult = poker.MustEvaluate(next.Dealer[:])
		next.Winner = decideWinner(next.PlayerResult, next.DealerResult)
		next.Payout = versusPayout(next.Bet, next.Winner)
	} else {
		next.Payout = next.Bet * Multiplier(next.PlayerResult)
	}

	return next, nil
}

// dealerDraw replaces the dealer's three lowest cards when the hand is weaker than a pair
// The dealer stops drawing if the deck runs out.
func (r *Round) dealerDraw() [poker.HandSize]deck.Card {
	hand := r.Dealer
	if poker.MustEvaluate(hand[:]).Hand >= poker.OnePair {
		return hand
	}

	idx := []int{0, 1, 2, 3, 4}
	sort.SliceStable(idx, func(i, j int) bool {
		return hand[idx[i]].Rank < hand[idx[j]].Rank
	})

	for _, i := range idx[:3] {
		card, err := r.deck.Draw()
		if err != nil {
			break
		}

		hand[i] = card
	}

	return hand
}

// Next clears a settled round and waits for a new bet
func (r Round) Next() (Round, error) {
	phase, err := phases.Fire(r.Phase, triggerNewRound)
	if err != nil {
		return r, err
	}

	next := NewRound(r.Variant)
	next.Phase = phase
	return next, nil
}

// IsOver returns true once the round has been settled
func (r Round) IsOver() bool {
	return r.Phase == PhaseShowdown
}

// VisibleDealer returns the dealer's hand, hidden until the showdown
func (r Round) VisibleDealer() []playable.CardView {
	if !r.IsVersus() {
		return nil
	}

	if r.Phase == PhaseShowdown {
		return playable.ShowCards(r.Dealer[:])
	}

	return playable.ShowCards(r.Dealer[:], 0, 1, 2, 3, 4)
}

func decideWinner(player, dealer poker.Result) Winner {
	switch poker.Compare(player, dealer) {
	case 1:
		return WinnerPlayer
	case -1:
		return WinnerDealer
	default:
		return WinnerPush
	}
}

func versusPayout(bet int, winner Winner) int {
	switch winner {
	case WinnerPlayer:
		return bet * 2
	case WinnerPush:
		return bet
	default:
		return 0
	}
}
