package dice

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"casino-server/internal/rng"
	"casino-server/pkg/playable"
)

func TestRoll(t *testing.T) {
	a := assert.New(t)
	opts := Options{Dice: 3, Sides: 6, BetType: BetLow}

	// each die shows the generator value plus one
	r, err := Roll(10, opts, &rng.Sequence{Values: []int{2, 2, 2}})
	a.NoError(err)
	a.Equal([]int{3, 3, 3}, r.Rolls)
	a.Equal(9, r.Total)
	a.True(r.Win)
	a.Equal(10, r.Payout)
	a.Equal(20, r.Gross())

	r, err = Roll(10, opts, &rng.Sequence{Values: []int{4, 4, 3}})
	a.NoError(err)
	a.Equal(14, r.Total)
	a.False(r.Win)
	a.Equal(0, r.Payout)
	a.Equal(0, r.Gross())
}

func TestRoll_Threshold(t *testing.T) {
	a := assert.New(t)

	// 5 + 6 = 11 is high
	r, _ := Roll(5, Options{Dice: 2, Sides: 6, BetType: BetHigh}, &rng.Sequence{Values: []int{4, 5}})
	a.Equal(11, r.Total)
	a.True(r.Win)

	// 4 + 6 = 10 is low
	r, _ = Roll(5, Options{Dice: 2, Sides: 6, BetType: BetHigh}, &rng.Sequence{Values: []int{3, 5}})
	a.Equal(10, r.Total)
	a.False(r.Win)
}

func TestRoll_Errors(t *testing.T) {
	a := assert.New(t)
	g := rng.NewSeeded(1)

	_, err := Roll(10, DefaultOptions(), g)
	a.ErrorIs(err, ErrMissingBetType)

	_, err = Roll(0, Options{Dice: 2, Sides: 6, BetType: BetHigh}, g)
	a.ErrorIs(err, playable.ErrInvalidBet)

	_, err = Roll(10, Options{Dice: 0, Sides: 6, BetType: BetHigh}, g)
	a.EqualError(err, "at least one die is required")

	_, err = Roll(10, Options{Dice: 2, Sides: 1, BetType: BetHigh}, g)
	a.EqualError(err, "dice must have at least two sides")

	_, err = Roll(10, Options{Dice: 2, Sides: 6, BetType: "middle"}, g)
	a.EqualError(err, "unknown bet type: middle")
}

func TestRoll_Range(t *testing.T) {
	a := assert.New(t)
	g := rng.NewSeeded(5)
	for i := 0; i < 500; i++ {
		r, err := Roll(1, Options{Dice: 4, Sides: 8, BetType: BetHigh}, g)
		a.NoError(err)
		a.GreaterOrEqual(r.Total, 4)
		a.LessOrEqual(r.Total, 32)
	}
}

func TestBetTypeFromString(t *testing.T) {
	a := assert.New(t)

	bt, err := BetTypeFromString(" High ")
	a.NoError(err)
	a.Equal(BetHigh, bt)

	_, err = BetTypeFromString("")
	a.ErrorIs(err, ErrMissingBetType)

	_, err = BetTypeFromString("odd")
	a.Error(err)
}

func TestNewGame(t *testing.T) {
	a := assert.New(t)

	_, err := NewGame(logrus.StandardLogger(), rng.NewSeeded(1), 10, 5, Options{Dice: 2, Sides: 6, BetType: BetLow})
	a.ErrorIs(err, playable.ErrInsufficientCredits)

	game, err := NewGame(logrus.StandardLogger(), &rng.Sequence{Values: []int{0, 0}}, 10, 50, Options{Dice: 2, Sides: 6, BetType: BetLow})
	a.NoError(err)

	details, over := game.GetEndOfGameDetails()
	a.True(over)
	a.Equal(20, details.Payout)
	a.Equal(playable.OutcomeWin, details.Outcome)

	msgs := <-game.LogChan()
	a.Equal("Player bets 10 on low and rolls 2, winning 10", msgs[0].Message)

	_, _, err = game.Action(&playable.PayloadIn{Action: "roll"})
	a.ErrorIs(err, playable.ErrInvalidAction)
}
