package blackjack

import "casino-server/pkg/playable"

// HandState is a hand as the player sees it
type HandState struct {
	Cards []playable.CardView `json:"cards"`
	// Score only counts the visible cards
	Score int  `json:"score"`
	Soft  bool `json:"soft"`
}

// GameState is the current state of the round
type GameState struct {
	Phase     Phase     `json:"phase"`
	Bet       int       `json:"bet"`
	Player    HandState `json:"player"`
	Dealer    HandState `json:"dealer"`
	Winner    Winner    `json:"winner,omitempty"`
	Natural   bool      `json:"natural"`
	Payout    int       `json:"payout"`
	CardsLeft int       `json:"cardsLeft"`
	Actions   []Action  `json:"actions"`
}

func (g *Game) getGameState() *GameState {
	r := g.round

	dealer := HandState{Cards: r.VisibleDealer()}
	if r.Phase == PhasePlayerTurn {
		up := r.Dealer[:1]
		dealer.Score = Score(up)
		dealer.Soft = IsSoft(up)
	} else {
		dealer.Score = Score(r.Dealer)
		dealer.Soft = IsSoft(r.Dealer)
	}

	return &GameState{
		Phase: r.Phase,
		Bet:   r.Bet,
		Player: HandState{
			Cards: playable.ShowCards(r.Player),
			Score: Score(r.Player),
			Soft:  IsSoft(r.Player),
		},
		Dealer:    dealer,
		Winner:    r.Winner,
		Natural:   r.Natural,
		Payout:    r.Payout,
		CardsLeft: r.CardsLeft(),
		Actions:   g.getActions(),
	}
}
