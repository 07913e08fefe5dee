package gamefactory

import (
	"github.com/sirupsen/logrus"

	"casino-server/internal/rng"
	"casino-server/pkg/playable"
	"casino-server/pkg/playable/fivecarddraw"
)

type fiveCardDrawFactory struct {
	variant fivecarddraw.Variant
}

func (f fiveCardDrawFactory) CreateGame(logger logrus.FieldLogger, g rng.Generator, bet, available int, _ playable.AdditionalData) (playable.Playable, error) {
	return fivecarddraw.NewGame(logger, g, f.variant, bet, available)
}

func (f fiveCardDrawFactory) Details(bet int, _ playable.AdditionalData) (string, int, error) {
	if err := requireBet(bet); err != nil {
		return "", 0, err
	}

	if f.variant == fivecarddraw.VariantVersusDealer {
		return "Five Card Draw vs. Dealer", bet, nil
	}

	return "Jacks or Better", bet, nil
}
