package tui

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"casino-server/pkg/deck"
	"casino-server/pkg/playable"
	"casino-server/pkg/playable/blackjack"
	"casino-server/pkg/playable/fivecarddraw"
)

func cardsString(cards []playable.CardView) string {
	labels := make([]string, len(cards))
	for i, c := range cards {
		if c.Hidden {
			labels[i] = "??"
			continue
		}

		labels[i] = deck.Card{Rank: c.Rank, Suit: c.Suit}.String()
	}

	return strings.Join(labels, " ")
}

func handLine(label string, cards []playable.CardView, value string) string {
	return pterm.Sprintfln("%s  %s  %s", pterm.LightCyan(label), cardsString(cards), pterm.Gray(value))
}

// renderBlackjack returns the table and whether the round is over
func renderBlackjack(state *blackjack.GameState) (string, bool) {
	score := func(h blackjack.HandState) string {
		if h.Soft {
			return fmt.Sprintf("soft %d", h.Score)
		}
		return fmt.Sprintf("%d", h.Score)
	}

	body := handLine("Dealer", state.Dealer.Cards, score(state.Dealer)) +
		handLine("Player", state.Player.Cards, score(state.Player)) +
		pterm.Sprintfln("Bet %d", state.Bet)

	over := state.Phase == blackjack.PhaseGameOver
	if over {
		body += result(string(state.Winner), state.Payout)
	}

	return pterm.DefaultBox.WithTitle("Blackjack").WithTitleTopCenter().Sprint(strings.TrimRight(body, "\n")), over
}

// renderDraw returns the table and whether the round is over
func renderDraw(state *fivecarddraw.GameState) (string, bool) {
	body := handLine("Player", state.Player, state.PlayerHand)
	if len(state.Dealer) > 0 {
		body = handLine("Dealer", state.Dealer, state.DealerHand) + body
	}
	body += pterm.Sprintfln("Bet %d", state.Bet)

	over := state.Phase == fivecarddraw.PhaseShowdown
	if over {
		body += result(string(state.Winner), state.Payout)
	}

	title := "Jacks or Better"
	if state.Variant == fivecarddraw.VariantVersusDealer {
		title = "Five Card Draw"
	}

	return pterm.DefaultBox.WithTitle(title).WithTitleTopCenter().Sprint(strings.TrimRight(body, "\n")), over
}

func result(winner string, payout int) string {
	if payout > 0 {
		return pterm.Sprintfln("%s  pays %d", pterm.LightGreen(winner), payout)
	}

	if winner == "" {
		winner = "no win"
	}

	return pterm.Sprintfln("%s", pterm.LightRed(winner))
}
