package fortuneapple

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"casino-server/internal/rng"
	"casino-server/pkg/playable"
)

// alwaysThird hides the rotten apple in position 3 on every level
func alwaysThird() rng.Generator {
	return &rng.Sequence{Values: []int{3}}
}

func TestNewRound(t *testing.T) {
	a := assert.New(t)
	g := alwaysThird()

	_, err := NewRound(10, 100, 0, g)
	a.EqualError(err, "levels must be between 1 and 8")

	_, err = NewRound(10, 100, 9, g)
	a.Error(err)

	_, err = NewRound(10, 5, 3, g)
	a.ErrorIs(err, playable.ErrInsufficientCredits)

	_, err = NewRound(0, 5, 3, g)
	a.ErrorIs(err, playable.ErrInvalidBet)

	r, err := NewRound(10, 100, 3, g)
	a.NoError(err)
	a.Equal(PhasePicking, r.Phase)
	a.Equal(100, r.Multiplier())
	a.Equal(130, r.NextMultiplier())
	a.Equal(10, r.CashOutValue())

	_, ok := r.Rotten()
	a.False(ok, "the rotten apple stays hidden while picking")
}

func TestRound_PickAndCashOut(t *testing.T) {
	a := assert.New(t)
	g := alwaysThird()
	r, _ := NewRound(10, 100, 3, g)

	next, err := r.Pick(0, g)
	a.NoError(err)
	a.Equal(1, next.Level)
	a.Equal(130, next.Multiplier())
	a.Equal([]int{0}, next.Picks)
	a.Equal(0, r.Level, "the original snapshot is untouched")
	a.Empty(r.Picks)

	next, err = next.CashOut()
	a.NoError(err)
	a.Equal(PhaseCashedOut, next.Phase)
	a.Equal(13, next.Payout)
	a.True(next.IsOver())

	rotten, ok := next.Rotten()
	a.True(ok)
	a.Equal(3, rotten)

	_, err = next.Pick(1, g)
	a.ErrorIs(err, playable.ErrInvalidAction)

	_, err = next.CashOut()
	a.ErrorIs(err, playable.ErrInvalidAction)
}

func TestRound_Rotten(t *testing.T) {
	a := assert.New(t)
	g := alwaysThird()
	r, _ := NewRound(10, 100, 3, g)

	r, _ = r.Pick(1, g)
	r, err := r.Pick(3, g)
	a.NoError(err)
	a.Equal(PhaseRotten, r.Phase)
	a.Equal(0, r.Payout)
	a.Equal(1, r.Level)
}

func TestRound_TopOfLadder(t *testing.T) {
	a := assert.New(t)
	g := alwaysThird()
	r, _ := NewRound(10, 100, 2, g)

	r, _ = r.Pick(0, g)
	r, err := r.Pick(2, g)
	a.NoError(err)
	a.Equal(PhaseCashedOut, r.Phase, "clearing the last level cashes out")
	a.Equal(17, r.Payout)
	a.Equal(0, r.NextMultiplier())
}

func TestRound_CashOutImmediately(t *testing.T) {
	a := assert.New(t)
	r, _ := NewRound(25, 100, 3, alwaysThird())

	r, err := r.CashOut()
	a.NoError(err)
	a.Equal(25, r.Payout)
}

func TestRound_InvalidPick(t *testing.T) {
	a := assert.New(t)
	g := alwaysThird()
	r, _ := NewRound(10, 100, 3, g)

	_, err := r.Pick(4, g)
	a.EqualError(err, "pick an apple between 0 and 3")

	_, err = r.Pick(-1, g)
	a.Error(err)
}

func TestRound_FullLadder(t *testing.T) {
	a := assert.New(t)
	g := alwaysThird()
	r, _ := NewRound(100, 100, MaxLevels, g)

	for i := 0; i < MaxLevels; i++ {
		var err error
		r, err = r.Pick(0, g)
		a.NoError(err)
	}

	a.Equal(PhaseCashedOut, r.Phase)
	a.Equal(940, r.Payout)
}
