package gamefactory

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"casino-server/internal/config"
	"casino-server/internal/rng"
	"casino-server/pkg/playable"
	"casino-server/pkg/playable/blackjack"
	"casino-server/pkg/playable/dice"
	"casino-server/pkg/playable/fivecarddraw"
	"casino-server/pkg/playable/fortuneapple"
	"casino-server/pkg/playable/slots"
)

func TestGet(t *testing.T) {
	a := assert.New(t)

	factory, err := Get("blackjack")
	a.NoError(err)
	a.IsType(blackjackFactory{}, factory)

	factory, err = Get("baccarat")
	a.Nil(factory)
	a.EqualError(err, "no game with name: baccarat")
	a.ErrorIs(err, ErrUnknownGame)
	a.True(playable.IsUserError(err))
}

func TestRegistry_Keys(t *testing.T) {
	keys := NewRegistry(DefaultSettings()).Keys()
	assert.Equal(t, []string{"blackjack", "dice", "fortune-apple", "poker", "slots", "versus-poker"}, keys)
}

func TestRegistry_CreateGame(t *testing.T) {
	a := assert.New(t)
	r := NewRegistry(DefaultSettings())
	g := &rng.Sequence{Values: []int{0}}

	tests := []struct {
		key  string
		data playable.AdditionalData
		typ  interface{}
	}{
		{"blackjack", nil, &blackjack.Game{}},
		{"poker", nil, &fivecarddraw.Game{}},
		{"versus-poker", nil, &fivecarddraw.Game{}},
		{"dice", playable.AdditionalData{"betType": "low"}, &dice.Game{}},
		{"slots", nil, &slots.Game{}},
		{"fortune-apple", nil, &fortuneapple.Game{}},
	}

	for _, test := range tests {
		factory, err := r.Get(test.key)
		if !a.NoError(err, test.key) {
			continue
		}

		game, err := factory.CreateGame(logrus.StandardLogger(), g, 10, 100, test.data)
		a.NoError(err, test.key)
		a.IsType(test.typ, game, test.key)
	}
}

func TestBlackjackFactory_Details(t *testing.T) {
	a := assert.New(t)
	f := blackjackFactory{options: blackjack.Options{MinBet: 5, MaxBet: 50}}

	name, stake, err := f.Details(10, nil)
	a.NoError(err)
	a.Equal("Blackjack", name)
	a.Equal(10, stake)

	_, _, err = f.Details(51, nil)
	a.EqualError(err, "bet must be between 5 and 50")

	_, _, err = f.Details(0, nil)
	a.ErrorIs(err, playable.ErrInvalidBet)
}

func TestDiceFactory_Details(t *testing.T) {
	a := assert.New(t)

	name, stake, err := diceFactory{}.Details(10, playable.AdditionalData{"betType": "High"})
	a.NoError(err)
	a.Equal("Dice (high)", name)
	a.Equal(10, stake)

	_, _, err = diceFactory{}.Details(10, playable.AdditionalData{})
	a.ErrorIs(err, dice.ErrMissingBetType)

	_, _, err = diceFactory{}.Details(10, playable.AdditionalData{"betType": "high", "sides": float64(1)})
	a.Error(err)

	_, _, err = diceFactory{}.Details(10, playable.AdditionalData{"betType": "high", "dice": 2.5})
	a.EqualError(err, "dice must be a whole number")
	a.True(playable.IsUserError(err))

	opts, err := getDiceOptions(playable.AdditionalData{"betType": "low", "dice": float64(3), "sides": float64(8)})
	a.NoError(err)
	a.Equal(dice.Options{Dice: 3, Sides: 8, BetType: dice.BetLow}, opts)
}

func TestSlotsFactory_Details(t *testing.T) {
	a := assert.New(t)

	_, stake, err := slotsFactory{spinCost: 25}.Details(0, nil)
	a.NoError(err)
	a.Equal(25, stake)

	_, stake, err = slotsFactory{spinCost: 25}.Details(40, nil)
	a.NoError(err)
	a.Equal(40, stake)

	_, _, err = slotsFactory{}.Details(0, nil)
	a.ErrorIs(err, playable.ErrInvalidBet)
}

func TestFortuneAppleFactory_Details(t *testing.T) {
	a := assert.New(t)
	f := fortuneAppleFactory{levels: 3}

	levels, err := f.getLevels(nil)
	a.NoError(err)
	a.Equal(3, levels)

	levels, err = f.getLevels(playable.AdditionalData{"levels": float64(5)})
	a.NoError(err)
	a.Equal(5, levels)

	levels, _ = fortuneAppleFactory{}.getLevels(nil)
	a.Equal(fortuneapple.DefaultLevels, levels)

	_, _, err = f.Details(10, playable.AdditionalData{"levels": 4.5})
	a.EqualError(err, "levels must be a whole number")

	_, _, err = f.Details(10, playable.AdditionalData{"levels": float64(fortuneapple.MaxLevels + 1)})
	a.True(playable.IsUserError(err))

	name, stake, err := f.Details(10, nil)
	a.NoError(err)
	a.Equal("Fortune Apple", name)
	a.Equal(10, stake)
}

func TestSettingsFromConfig(t *testing.T) {
	a := assert.New(t)

	cfg := config.DefaultConfig()
	cfg.Games.MinBet = 5
	cfg.Games.MaxBet = 50
	cfg.Games.SlotsSpinCost = 2
	cfg.Games.AppleLevels = 4

	s := SettingsFromConfig(cfg)
	a.Equal(blackjack.Options{MinBet: 5, MaxBet: 50}, s.Blackjack)
	a.Equal(2, s.SlotsSpinCost)
	a.Equal(4, s.AppleLevels)
	a.NotNil(s.Fortunes)
}
