package playable

import "casino-server/pkg/deck"

// CardView is a card as the player sees it. Hidden cards carry no rank or suit.
type CardView struct {
	Rank   int       `json:"rank,omitempty"`
	Suit   deck.Suit `json:"suit,omitempty"`
	Hidden bool      `json:"hidden"`
}

// ShowCards returns views of the cards. Cards at the given positions are hidden.
func ShowCards(cards []deck.Card, hidden ...int) []CardView {
	hide := make(map[int]bool, len(hidden))
	for _, i := range hidden {
		hide[i] = true
	}

	views := make([]CardView, len(cards))
	for i, c := range cards {
		if hide[i] {
			views[i] = CardView{Hidden: true}
			continue
		}

		views[i] = CardView{Rank: c.Rank, Suit: c.Suit}
	}

	return views
}
