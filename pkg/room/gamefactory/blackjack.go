package gamefactory

import (
	"github.com/sirupsen/logrus"

	"casino-server/internal/rng"
	"casino-server/pkg/playable"
	"casino-server/pkg/playable/blackjack"
)

type blackjackFactory struct {
	options blackjack.Options
}

func (b blackjackFactory) CreateGame(logger logrus.FieldLogger, g rng.Generator, bet, available int, _ playable.AdditionalData) (playable.Playable, error) {
	return blackjack.NewGame(logger, g, bet, available, b.options)
}

func (b blackjackFactory) Details(bet int, _ playable.AdditionalData) (string, int, error) {
	if err := requireBet(bet); err != nil {
		return "", 0, err
	}

	if bet < b.options.MinBet || bet > b.options.MaxBet {
		return "", 0, playable.NewUserError("bet must be between %d and %d", b.options.MinBet, b.options.MaxBet)
	}

	return "Blackjack", bet, nil
}
