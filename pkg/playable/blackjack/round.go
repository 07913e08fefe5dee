package blackjack

import (
	"fmt"

	"casino-server/internal/rng"
	"casino-server/pkg/deck"
	"casino-server/pkg/playable"
)

// Phase is the phase of a blackjack round
type Phase string

// Phase constants
const (
	PhaseBetting    Phase = "betting"
	PhasePlayerTurn Phase = "player-turn"
	PhaseDealerTurn Phase = "dealer-turn"
	PhaseGameOver   Phase = "game-over"
)

// Winner is who won the round
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
	triggerNatural  = "natural"
	triggerHit      = "hit"
	triggerBust     = "bust"
	triggerStand    = "stand"
	triggerSettle   = "settle"
	triggerNewRound = "new round"
)

var phases = playable.PhaseTable[Phase]{
	PhaseBetting:    {triggerDeal: PhasePlayerTurn},
	PhasePlayerTurn: {triggerHit: PhasePlayerTurn, triggerBust: PhaseGameOver, triggerNatural: PhaseGameOver, triggerStand: PhaseDealerTurn},
	PhaseDealerTurn: {triggerSettle: PhaseGameOver},
	PhaseGameOver:   {triggerNewRound: PhaseBetting},
}

// Round is a snapshot of one round of blackjack
// Every transition returns a new Round and leaves the receiver untouched
type Round struct {
	Bet     int
	Player  deck.Hand
	Dealer  deck.Hand
	Phase   Phase
	Winner  Winner
	Natural bool
	// Payout is the gross amount returned to the player, stake included
	Payout int

	deck deck.Deck
}

// NewRound returns a round waiting for a bet
func NewRound() Round {
	return Round{
		Phase: PhaseBetting,
		deck:  deck.New(),
	}
}

// CardsLeft returns the number of cards left in the round's deck
func (r Round) CardsLeft() int {
	return r.deck.CardsLeft()
}

// PlaceBet validates the bet, shuffles a fresh deck with g, and deals two cards each
// to the player and the dealer, alternating and starting with the player.
// A natural blackjack ends the round immediately.
func (r Round) PlaceBet(bet, available int, g rng.Generator) (Round, error) {
	if r.Phase != PhaseBetting {
		return r, fmt.Errorf("%w: a bet has already been placed", playable.ErrInvalidAction)
	}

	if err := playable.ValidateBet(bet, available); err != nil {
		return r, err
	}

	return r.deal(bet, r.deck.Shuffle(g))
}

// deal starts the round from the provided deck
func (r Round) deal(bet int, d deck.Deck) (Round, error) {
	phase, err := phases.Fire(r.Phase, triggerDeal)
	if err != nil {
		return r, err
	}

	next := Round{
		Bet:   bet,
		Phase: phase,
		deck:  d,
	}

	cards, err := next.deck.DrawN(4)
	if err != nil {
		return r, err
	}

	next.Player = deck.Hand{cards[0], cards[1]}
	next.Dealer = deck.Hand{cards[2], cards[3]}

	if IsNatural(next.Player) {
		if next.Phase, err = phases.Fire(next.Phase, triggerNatural); err != nil {
			return r, err
		}

		next.Natural = true
		next.Winner = WinnerPlayer
		next.Payout = payout(bet, WinnerPlayer, true)
	}

	return next, nil
}

// Hit draws a card for the player. Going over 21 ends the round.
// If the deck is empty, ErrEmptyDeck is returned and the round is unchanged.
func (r Round) Hit() (Round, error) {
	phase, err := phases.Fire(r.Phase, triggerHit)
	if err != nil {
		return r, err
	}

	next := r
	card, err := next.deck.Draw()
	if err != nil {
		return r, err
	}

	next.Phase = phase
	next.Player = r.Player.AddCard(card)

	if IsBust(next.Player) {
		if next.Phase, err = phases.Fire(next.Phase, triggerBust); err != nil {
			return r, err
		}

		next.Winner = WinnerDealer
		next.Payout = 0
	}

	return next, nil
}

// Stand ends the player's turn. The dealer draws while under 17 and cards remain,
// then the round is settled.
func (r Round) Stand() (Round, error) {
	phase, err := phases.Fire(r.Phase, triggerStand)
	if err != nil {
		return r, err
	}

	next := r
	next.Phase = phase

	for Score(next.Dealer) < dealerStandsOn {
		card, err := next.deck.Draw()
		if err != nil {
			// an exhausted deck stops the dealer
			break
		}

		next.Dealer = next.Dealer.AddCard(card)
	}

	if next.Phase, err = phases.Fire(next.Phase, triggerSettle); err != nil {
		return r, err
	}

	next.Winner = decideWinner(Score(next.Player), Score(next.Dealer))
	next.Payout = payout(next.Bet, next.Winner, false)

	return next, nil
}

// Next clears a finished round and waits for a new bet
func (r Round) Next() (Round, error) {
	phase, err := phases.Fire(r.Phase, triggerNewRound)
	if err != nil {
		return r, err
	}

	next := NewRound()
	next.Phase = phase
	return next, nil
}

// IsOver returns true once the round has been resolved
func (r Round) IsOver() bool {
	return r.Phase == PhaseGameOver
}

// VisibleDealer returns the dealer's cards with the hole card hidden during the player's turn
func (r Round) VisibleDealer() []playable.CardView {
	if r.Phase == PhasePlayerTurn {
		return playable.ShowCards(r.Dealer, 1)
	}

	return playable.ShowCards(r.Dealer)
}

func decideWinner(player, dealer int) Winner {
	switch {
	case player > BlackjackScore:
		return WinnerDealer
	case dealer > BlackjackScore:
		return WinnerPlayer
	case player > dealer:
		return WinnerPlayer
	case dealer > player:
		return WinnerDealer
	default:
		return WinnerPush
	}
}

// payout returns the gross credit for the round
// A natural pays 3:2 (2.5x gross), floored to whole credits
func payout(bet int, winner Winner, natural bool) int {
	switch winner {
	case WinnerPlayer:
		if natural {
			return bet * 5 / 2
		}

		return bet * 2
	case WinnerPush:
		return bet
	default:
		return 0
	}
}
