package gamefactory

import (
	"github.com/sirupsen/logrus"

	"casino-server/internal/rng"
	"casino-server/pkg/playable"
	"casino-server/pkg/playable/slots"
)

type slotsFactory struct {
	spinCost int
}

func (s slotsFactory) CreateGame(logger logrus.FieldLogger, g rng.Generator, bet, available int, _ playable.AdditionalData) (playable.Playable, error) {
	return slots.NewGame(logger, g, bet, available)
}

func (s slotsFactory) Details(bet int, _ playable.AdditionalData) (string, int, error) {
	if bet == 0 {
		bet = s.spinCost
	}

	if err := requireBet(bet); err != nil {
		return "", 0, err
	}

	return "Slot Machine", bet, nil
}
