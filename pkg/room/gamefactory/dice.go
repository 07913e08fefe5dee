package gamefactory

import (
	"github.com/sirupsen/logrus"

	"casino-server/internal/rng"
	"casino-server/pkg/playable"
	"casino-server/pkg/playable/dice"
)

type diceFactory struct{}

func (d diceFactory) CreateGame(logger logrus.FieldLogger, g rng.Generator, bet, available int, additionalData playable.AdditionalData) (playable.Playable, error) {
	opts, err := getDiceOptions(additionalData)
	if err != nil {
		return nil, err
	}

	return dice.NewGame(logger, g, bet, available, opts)
}

func (d diceFactory) Details(bet int, additionalData playable.AdditionalData) (string, int, error) {
	if err := requireBet(bet); err != nil {
		return "", 0, err
	}

	opts, err := getDiceOptions(additionalData)
	if err != nil {
		return "", 0, err
	}

	return "Dice (" + string(opts.BetType) + ")", bet, nil
}

func getDiceOptions(data playable.AdditionalData) (dice.Options, error) {
	opts := dice.DefaultOptions()

	betType, _ := data.GetString("betType")
	bt, err := dice.BetTypeFromString(betType)
	if err != nil {
		return dice.Options{}, err
	}
	opts.BetType = bt

	if n, ok, err := optionalInt(data, "dice"); err != nil {
		return dice.Options{}, err
	} else if ok {
		opts.Dice = n
	}

	if n, ok, err := optionalInt(data, "sides"); err != nil {
		return dice.Options{}, err
	} else if ok {
		opts.Sides = n
	}

	return opts, opts.Validate()
}
