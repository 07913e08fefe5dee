package fivecarddraw

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"casino-server/internal/rng"
	"casino-server/pkg/playable"
)

// game keys
const (
	KeyJacksOrBetter = "poker"
	KeyVersusDealer  = "versus-poker"
)

// Game is a single round of five-card draw bound to a player's stake
type Game struct {
	round   Round
	logChan chan []*playable.LogMessage
	logger  logrus.FieldLogger
}

// NewGame places the bet and deals the opening hand
func NewGame(logger logrus.FieldLogger, g rng.Generator, variant Variant, bet, available int) (*Game, error) {
	if variant != VariantJacksOrBetter && variant != VariantVersusDealer {
		return nil, fmt.Errorf("unknown variant: %s", variant)
	}

	round, err := NewRound(variant).PlaceBet(bet, available, g)
	if err != nil {
		return nil, err
	}

	game := &Game{
		round:   round,
		logChan: make(chan []*playable.LogMessage, 256),
		logger:  logger,
	}

	logger.WithField("deck", round.deck.HashCode()).Debug("deck shuffled")
	game.sendLogs(playable.CardLogMessage(round.Player[:], "Player bets %d and is dealt %s", bet, round.PlayerResult))
	return game, nil
}

// Name returns the name of the game
func (g *Game) Name() string {
	if g.round.IsVersus() {
		return "Five Card Draw vs. Dealer"
	}

	return "Jacks or Better"
}

// Key returns a unique key
func (g *Game) Key() string {
	if g.round.IsVersus() {
		return KeyVersusDealer
	}

	return KeyJacksOrBetter
}

// Round returns the current snapshot of the round
func (g *Game) Round() Round {
	return g.round
}

// Action performs with a message
func (g *Game) Action(message *playable.PayloadIn) (playerResponse *playable.Response, updateState bool, err error) {
	if _, err := ActionFromString(message.Action); err != nil {
		return nil, false, err
	}

	holds, err := holdsFromData(message.AdditionalData)
	if err != nil {
		return nil, false, err
	}

	next, err := g.round.Draw(holds)
	if err != nil {
		return nil, false, err
	}

	g.round = next
	g.logDraw(holds)

	return playable.OK(message.Context), true, nil
}

func (g *Game) logDraw(holds [5]bool) {
	r := g.round

	held := 0
	for _, h := range holds {
		if h {
			held++
		}
	}

	g.logger.WithFields(logrus.Fields{
		"variant": r.Variant,
		"held":    held,
		"hand":    r.PlayerResult.String(),
		"payout":  r.Payout,
	}).Debug("draw")

	msgs := []*playable.LogMessage{
		playable.CardLogMessage(r.Player[:], "Player holds %d and draws %d: %s", held, 5-held, r.PlayerResult),
	}

	if r.IsVersus() {
		msgs = append(msgs, playable.CardLogMessage(r.Dealer[:], "Dealer shows %s", r.DealerResult))
	}

	if r.Payout > 0 {
		msgs = append(msgs, playable.SimpleLogMessage("Player is paid %d", r.Payout))
	} else {
		msgs = append(msgs, playable.SimpleLogMessage("Player loses %d", r.Bet))
	}

	g.sendLogs(msgs...)
}

func (g *Game) sendLogs(messages ...*playable.LogMessage) {
	playable.SendLogs(g.logChan, messages...)
}

// GetPlayerState returns the current state of the game
func (g *Game) GetPlayerState() (*playable.Response, error) {
	return &playable.Response{
		Key:   "game",
		Value: g.Key(),
		Data:  g.getGameState(),
	}, nil
}

// GetEndOfGameDetails returns the details after a game is over
// If the game is still in progress, nil will be returned and the second param will be false
func (g *Game) GetEndOfGameDetails() (gameOverDetails *playable.GameOverDetails, isGameOver bool) {
	if !g.round.IsOver() {
		return nil, false
	}

	return &playable.GameOverDetails{
		Bet:     g.round.Bet,
		Payout:  g.round.Payout,
		Outcome: playable.OutcomeFor(g.round.Bet, g.round.Payout),
		Log:     g.getGameState(),
	}, true
}

// LogChan should return a channel that a game will send log messages to
func (g *Game) LogChan() <-chan []*playable.LogMessage {
	return g.logChan
}
