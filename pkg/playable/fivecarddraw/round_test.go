package fivecarddraw

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"casino-server/internal/rng"
	"casino-server/pkg/deck"
	"casino-server/pkg/playable"
	"casino-server/pkg/poker"
)

func dealStacked(t *testing.T, variant Variant, bet int, cards string) Round {
	t.Helper()
	r, err := NewRound(variant).deal(bet, deck.Stack(deck.CardsFromString(cards)...))
	assert.NoError(t, err)
	return r
}

var holdAll = [5]bool{true, true, true, true, true}

func TestRound_PlaceBet(t *testing.T) {
	a := assert.New(t)

	r, err := NewRound(VariantJacksOrBetter).PlaceBet(10, 10, rng.NewSeeded(3))
	a.NoError(err)
	a.Equal(PhaseDraw, r.Phase)
	a.Equal(47, r.CardsLeft())

	r, err = NewRound(VariantVersusDealer).PlaceBet(10, 10, rng.NewSeeded(3))
	a.NoError(err)
	a.Equal(42, r.CardsLeft())

	seen := make(map[deck.Card]bool)
	for _, c := range append(r.Player[:], r.Dealer[:]...) {
		seen[c] = true
	}
	a.Len(seen, 10, "no card is dealt twice")

	_, err = r.PlaceBet(10, 10, rng.NewSeeded(3))
	a.ErrorIs(err, playable.ErrInvalidAction)
}

func TestRound_PlaceBet_Invalid(t *testing.T) {
	a := assert.New(t)
	r := NewRound(VariantJacksOrBetter)

	next, err := r.PlaceBet(11, 10, rng.NewSeeded(3))
	a.ErrorIs(err, playable.ErrInsufficientCredits)
	a.Equal(r, next)

	_, err = r.PlaceBet(0, 10, rng.NewSeeded(3))
	a.ErrorIs(err, playable.ErrInvalidBet)
}

func TestRound_Draw_HoldKeepsCards(t *testing.T) {
	a := assert.New(t)
	r := dealStacked(t, VariantJacksOrBetter, 10, "11c,11d,3h,7s,9c,11h,2d,4s")

	next, err := r.Draw([5]bool{true, true})
	a.NoError(err)
	a.Equal("11c,11d,11h,2d,4s", deck.CardsToString(next.Player[:]))
	a.Equal(poker.ThreeOfAKind, next.PlayerResult.Hand)
	a.Equal(PhaseShowdown, next.Phase)
	a.Equal(30, next.Payout)

	// the original snapshot is untouched
	a.Equal("11c,11d,3h,7s,9c", deck.CardsToString(r.Player[:]))
	a.Equal(PhaseDraw, r.Phase)

	_, err = next.Draw(holdAll)
	a.ErrorIs(err, playable.ErrInvalidAction, "only one draw per round")
}

func TestRound_Draw_ReplaceAll(t *testing.T) {
	a := assert.New(t)
	r := dealStacked(t, VariantJacksOrBetter, 10, "2c,5d,9h,13s,7c,10h,11h,12h,13h,14h")

	next, err := r.Draw([5]bool{})
	a.NoError(err)
	a.Equal(poker.RoyalFlush, next.PlayerResult.Hand)
	a.Equal(2500, next.Payout)
	a.Equal(42, next.CardsLeft())
}

func TestRound_JacksOrBetterPayouts(t *testing.T) {
	a := assert.New(t)

	r, _ := dealStacked(t, VariantJacksOrBetter, 10, "10c,10d,3h,7s,9c").Draw(holdAll)
	a.Equal(0, r.Payout, "tens do not pay")

	r, _ = dealStacked(t, VariantJacksOrBetter, 10, "12c,12d,3h,7s,9c").Draw(holdAll)
	a.Equal(10, r.Payout, "queens return the bet")

	r, _ = dealStacked(t, VariantJacksOrBetter, 2, "2h,2d,5c,5s,5h").Draw(holdAll)
	a.Equal(18, r.Payout)

	r, _ = dealStacked(t, VariantJacksOrBetter, 1, "14d,2d,3d,4d,5d").Draw(holdAll)
	a.Equal(50, r.Payout)
}

func TestRound_Versus(t *testing.T) {
	a := assert.New(t)

	// dealer has nothing and replaces its three lowest cards
	r := dealStacked(t, VariantVersusDealer, 10, "13c,13d,3h,7s,9c,2c,5d,8h,10s,12c,4h,6h,2h,3d,4d,6s")
	r, err := r.Draw([5]bool{true, true})
	a.NoError(err)
	a.Equal("13c,13d,4h,6h,2h", deck.CardsToString(r.Player[:]))
	a.Equal("3d,4d,6s,10s,12c", deck.CardsToString(r.Dealer[:]))
	a.Equal(WinnerPlayer, r.Winner)
	a.Equal(20, r.Payout)

	// dealer keeps a pair
	r, _ = dealStacked(t, VariantVersusDealer, 10, "13c,13d,3h,7s,9c,2c,2d,8h,10s,12c").Draw(holdAll)
	a.Equal("2c,2d,8h,10s,12c", deck.CardsToString(r.Dealer[:]))
	a.Equal(WinnerPlayer, r.Winner)

	// push
	r, _ = dealStacked(t, VariantVersusDealer, 10, "4c,4d,9h,13s,7c,4h,4s,9c,13c,7d").Draw(holdAll)
	a.Equal(WinnerPush, r.Winner)
	a.Equal(10, r.Payout)

	// dealer wins
	r, _ = dealStacked(t, VariantVersusDealer, 10, "4c,4d,9h,13s,7c,5h,5s,9c,13c,7d").Draw(holdAll)
	a.Equal(WinnerDealer, r.Winner)
	a.Equal(0, r.Payout)
}

func TestRound_VisibleDealer(t *testing.T) {
	a := assert.New(t)
	r := dealStacked(t, VariantVersusDealer, 10, "4c,4d,9h,13s,7c,4h,4s,9c,13c,7d")

	for _, v := range r.VisibleDealer() {
		a.True(v.Hidden)
	}

	r, _ = r.Draw(holdAll)
	for _, v := range r.VisibleDealer() {
		a.False(v.Hidden)
	}

	a.Nil(NewRound(VariantJacksOrBetter).VisibleDealer())
}

func TestRound_Next(t *testing.T) {
	a := assert.New(t)
	r := dealStacked(t, VariantVersusDealer, 10, "4c,4d,9h,13s,7c")

	_, err := r.Next()
	a.ErrorIs(err, playable.ErrInvalidAction)

	r, _ = r.Draw(holdAll)
	r, err = r.Next()
	a.NoError(err)
	a.Equal(PhaseBetting, r.Phase)
	a.Equal(VariantVersusDealer, r.Variant)
	a.Equal(0, r.Bet)
}

func TestPayTable(t *testing.T) {
	a := assert.New(t)
	table := PayTable()
	a.Len(table, 9)
	a.Equal(PayTableEntry{Hand: poker.RoyalFlush, Multiplier: 250}, table[0])
	a.Equal(PayTableEntry{Hand: poker.OnePair, Multiplier: 1}, table[8])

	a.Equal(1, Multiplier(poker.MustEvaluate(deck.CardsFromString("11c,11d,3h,7s,9c"))))
	a.Equal(0, Multiplier(poker.MustEvaluate(deck.CardsFromString("2c,5d,9h,13s,7c"))))
}
