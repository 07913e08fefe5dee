package blackjack

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"casino-server/internal/rng"
	"casino-server/pkg/playable"
)

// Key is the game key used to start blackjack
const Key = "blackjack"

// Options are the table limits for blackjack
type Options struct {
	MinBet int `json:"minBet" yaml:"minBet"`
	MaxBet int `json:"maxBet" yaml:"maxBet"`
}

// DefaultOptions returns the default table limits
func DefaultOptions() Options {
	return Options{
		MinBet: 1,
		MaxBet: 1000,
	}
}

// Game is a single round of blackjack bound to a player's stake
type Game struct {
	options Options
	round   Round
	logChan chan []*playable.LogMessage
	logger  logrus.FieldLogger
}

// NewGame places the bet and deals the opening hands
func NewGame(logger logrus.FieldLogger, g rng.Generator, bet, available int, options Options) (*Game, error) {
	if options.MinBet <= 0 {
		return nil, errors.New("minimum bet must be > 0")
	}

	if options.MaxBet < options.MinBet {
		return nil, errors.New("maximum bet must be >= the minimum bet")
	}

	if bet > 0 && (bet < options.MinBet || bet > options.MaxBet) {
		return nil, playable.NewUserError("bet must be between %d and %d", options.MinBet, options.MaxBet)
	}

	round, err := NewRound().PlaceBet(bet, available, g)
	if err != nil {
		return nil, err
	}

	game := &Game{
		options: options,
		round:   round,
		logChan: make(chan []*playable.LogMessage, 256),
		logger:  logger,
	}

	logger.WithField("deck", round.deck.HashCode()).Debug("deck shuffled")
	game.sendLogs(playable.CardLogMessage(round.Player, "Player bets %d and is dealt %d", bet, Score(round.Player)))
	if round.Natural {
		game.sendLogs(playable.SimpleLogMessage("Blackjack! Player is paid %d", round.Payout))
	}

	return game, nil
}

// Name returns the name of the game
func (g *Game) Name() string {
	return "Blackjack"
}

// Key returns a unique key
func (g *Game) Key() string {
	return Key
}

// Round returns the current snapshot of the round
func (g *Game) Round() Round {
	return g.round
}

// Action performs with a message
func (g *Game) Action(message *playable.PayloadIn) (playerResponse *playable.Response, updateState bool, err error) {
	action, err := ActionFromString(message.Action)
	if err != nil {
		return nil, false, err
	}

	var next Round
	switch action {
	case ActionHit:
		next, err = g.round.Hit()
	case ActionStand:
		next, err = g.round.Stand()
	}

	if err != nil {
		return nil, false, err
	}

	g.round = next
	g.logAction(action)

	return playable.OK(message.Context), true, nil
}

func (g *Game) logAction(action Action) {
	r := g.round
	g.logger.WithFields(logrus.Fields{
		"action": action.String(),
		"phase":  r.Phase,
		"score":  Score(r.Player),
	}).Debug("blackjack action")

	switch action {
	case ActionHit:
		card, _ := r.Player.LastCard()
		msg := playable.SimpleLogMessage("Player hits and draws %s for %d", card.String(), Score(r.Player))
		if IsBust(r.Player) {
			msg.Message += ", bust"
		}
		g.sendLogs(msg)
	case ActionStand:
		g.sendLogs(
			playable.SimpleLogMessage("Player stands on %d", Score(r.Player)),
			playable.CardLogMessage(r.Dealer, "Dealer finishes with %d", Score(r.Dealer)),
			playable.SimpleLogMessage("%s", g.summary()),
		)
	}
}

func (g *Game) summary() string {
	switch g.round.Winner {
	case WinnerPlayer:
		return fmt.Sprintf("Player wins %d", g.round.Payout)
	case WinnerDealer:
		return "Dealer wins"
	case WinnerPush:
		return "Push, the bet is returned"
	}

	return ""
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
