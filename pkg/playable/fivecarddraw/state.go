package fivecarddraw

import (
	"casino-server/pkg/playable"
	"casino-server/pkg/poker"
)

// GameState is the current state of the round
type GameState struct {
	Variant      Variant             `json:"variant"`
	Phase        Phase               `json:"phase"`
	Bet          int                 `json:"bet"`
	Player       []playable.CardView `json:"player"`
	PlayerHand   string              `json:"playerHand"`
	Dealer       []playable.CardView `json:"dealer,omitempty"`
	DealerHand   string              `json:"dealerHand,omitempty"`
	Winner       Winner              `json:"winner,omitempty"`
	Payout       int                 `json:"payout"`
	PayTable     []PayTableEntry     `json:"payTable,omitempty"`
	Actions      []Action            `json:"actions"`
	PlayerResult *poker.Result       `json:"playerResult,omitempty"`
	DealerResult *poker.Result       `json:"dealerResult,omitempty"`
}

func (g *Game) getGameState() *GameState {
	r := g.round
	state := &GameState{
		Variant:    r.Variant,
		Phase:      r.Phase,
		Bet:        r.Bet,
		Player:     playable.ShowCards(r.Player[:]),
		PlayerHand: r.PlayerResult.String(),
		Dealer:     r.VisibleDealer(),
		Winner:     r.Winner,
		Payout:     r.Payout,
		Actions:    g.getActions(),
	}

	if !r.IsVersus() {
		state.PayTable = PayTable()
	}

	if r.IsOver() {
		pr := r.PlayerResult
		state.PlayerResult = &pr

		if r.IsVersus() {
			dr := r.DealerResult
			state.DealerResult = &dr
			state.DealerHand = dr.String()
		}
	}

	return state
}
