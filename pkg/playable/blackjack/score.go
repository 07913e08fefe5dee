package blackjack

import "casino-server/pkg/deck"

// BlackjackScore is the best possible score
const BlackjackScore = 21

// dealerStandsOn is the score at which the dealer stops drawing
const dealerStandsOn = 17

// Score returns the blackjack value of the cards
// Aces count as 11 and drop to 1, one at a time, while the total is over 21
func Score(cards []deck.Card) int {
	total := 0
	aces := 0
	for _, c := range cards {
		switch {
		case c.Rank == deck.Ace:
			aces++
			total += 11
		case c.Rank >= 10:
			total += 10
		default:
			total += c.Rank
		}
	}

	for total > BlackjackScore && aces > 0 {
		total -= 10
		aces--
	}

	return total
}

// IsSoft returns true if an ace is still being counted as 11
func IsSoft(cards []deck.Card) bool {
	hard := 0
	hasAce := false
	for _, c := range cards {
		if c.Rank == deck.Ace {
			hasAce = true
		}

		if c.Rank >= 10 && c.Rank != deck.Ace {
			hard += 10
		} else {
			hard += c.AceLowRank()
		}
	}

	return hasAce && hard+10 <= BlackjackScore
}

// IsNatural returns true for a two-card 21
func IsNatural(cards []deck.Card) bool {
	return len(cards) == 2 && Score(cards) == BlackjackScore
}

// IsBust returns true if the cards are over 21
func IsBust(cards []deck.Card) bool {
	return Score(cards) > BlackjackScore
}
