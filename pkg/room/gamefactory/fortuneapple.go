package gamefactory

import (
	"github.com/sirupsen/logrus"

	"casino-server/internal/rng"
	"casino-server/pkg/playable"
	"casino-server/pkg/playable/fortuneapple"
)

type fortuneAppleFactory struct {
	levels int
	teller fortuneapple.FortuneTeller
}

func (f fortuneAppleFactory) CreateGame(logger logrus.FieldLogger, g rng.Generator, bet, available int, additionalData playable.AdditionalData) (playable.Playable, error) {
	levels, err := f.getLevels(additionalData)
	if err != nil {
		return nil, err
	}

	return fortuneapple.NewGame(logger, g, f.teller, bet, available, levels)
}

func (f fortuneAppleFactory) Details(bet int, additionalData playable.AdditionalData) (string, int, error) {
	if err := requireBet(bet); err != nil {
		return "", 0, err
	}

	levels, err := f.getLevels(additionalData)
	if err != nil {
		return "", 0, err
	}

	if levels < 1 || levels > fortuneapple.MaxLevels {
		return "", 0, playable.NewUserError("levels must be between 1 and %d", fortuneapple.MaxLevels)
	}

	return "Fortune Apple", bet, nil
}

func (f fortuneAppleFactory) getLevels(data playable.AdditionalData) (int, error) {
	if levels, ok, err := optionalInt(data, "levels"); ok || err != nil {
		return levels, err
	}

	if f.levels > 0 {
		return f.levels, nil
	}

	return fortuneapple.DefaultLevels, nil
}
