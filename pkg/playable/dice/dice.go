package dice

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"casino-server/internal/rng"
	"casino-server/pkg/playable"
)

// Key is the game key used to start dice
const Key = "dice"

// HighThreshold is the lowest total that counts as high
const HighThreshold = 11

// ErrMissingBetType is returned when neither high nor low was chosen
var ErrMissingBetType = playable.UserError("choose high or low")

// BetType is the side of the threshold the player is betting on
type BetType string

// BetType constants
const (
	BetHigh BetType = "high"
	BetLow  BetType = "low"
)

// BetTypeFromString parses a bet type
func BetTypeFromString(s string) (BetType, error) {
	switch BetType(strings.ToLower(strings.TrimSpace(s))) {
	case BetHigh:
		return BetHigh, nil
	case BetLow:
		return BetLow, nil
	case "":
		return "", ErrMissingBetType
	}

	return "", playable.NewUserError("unknown bet type: %s", s)
}

// Options configure a roll
type Options struct {
	Dice    int     `json:"dice"`
	Sides   int     `json:"sides"`
	BetType BetType `json:"betType"`
}

// DefaultOptions returns two six-sided dice with no bet type chosen
func DefaultOptions() Options {
	return Options{
		Dice:  2,
		Sides: 6,
	}
}

// Validate checks the dice configuration and bet type
func (o Options) Validate() error {
	if o.Dice < 1 {
		return playable.UserError("at least one die is required")
	}

	if o.Sides < 2 {
		return playable.UserError("dice must have at least two sides")
	}

	if o.BetType == "" {
		return ErrMissingBetType
	}

	if o.BetType != BetHigh && o.BetType != BetLow {
		return playable.NewUserError("unknown bet type: %s", o.BetType)
	}

	return nil
}

// Result is the outcome of a roll
type Result struct {
	Bet     int     `json:"bet"`
	BetType BetType `json:"betType"`
	Rolls   []int   `json:"rolls"`
	Total   int     `json:"total"`
	Win     bool    `json:"win"`
	// Payout is the even-money winnings, the stake is returned on top of it
	Payout int `json:"payout"`
}

// Gross is the total credited back to the player, stake included
func (r Result) Gross() int {
	if !r.Win {
		return 0
	}

	return r.Bet + r.Payout
}

// Roll throws the dice and settles the bet
func Roll(bet int, opts Options, g rng.Generator) (Result, error) {
	if bet <= 0 {
		return Result{}, playable.ErrInvalidBet
	}

	if err := opts.Validate(); err != nil {
		return Result{}, err
	}

	rolls := make([]int, opts.Dice)
	total := 0
	for i := range rolls {
		rolls[i] = g.Intn(opts.Sides) + 1
		total += rolls[i]
	}

	isHigh := total >= HighThreshold
	win := (opts.BetType == BetHigh) == isHigh

	result := Result{
		Bet:     bet,
		BetType: opts.BetType,
		Rolls:   rolls,
		Total:   total,
		Win:     win,
	}

	if win {
		result.Payout = bet
	}

	return result, nil
}

// Game is a single roll bound to a player's stake. The dice are thrown as soon as the bet is placed.
type Game struct {
	result  Result
	logChan chan []*playable.LogMessage
}

// NewGame validates the bet and rolls the dice
func NewGame(logger logrus.FieldLogger, g rng.Generator, bet, available int, opts Options) (*Game, error) {
	if err := playable.ValidateBet(bet, available); err != nil {
		return nil, err
	}

	result, err := Roll(bet, opts, g)
	if err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"rolls": result.Rolls,
		"total": result.Total,
		"win":   result.Win,
	}).Debug("dice rolled")

	game := &Game{
		result:  result,
		logChan: make(chan []*playable.LogMessage, 1),
	}

	msg := fmt.Sprintf("Player bets %d on %s and rolls %d", bet, opts.BetType, result.Total)
	if result.Win {
		msg += fmt.Sprintf(", winning %d", result.Payout)
	}
	playable.SendLogs(game.logChan, playable.SimpleLogMessage("%s", msg))

	return game, nil
}

// Name returns the name of the game
func (g *Game) Name() string {
	return "Dice"
}

// Result returns the roll
func (g *Game) Result() Result {
	return g.result
}

// Action always fails, a roll has no further actions
func (g *Game) Action(message *playable.PayloadIn) (*playable.Response, bool, error) {
	return nil, false, fmt.Errorf("%w: the dice have already been rolled", playable.ErrInvalidAction)
}

// GetPlayerState returns the roll
func (g *Game) GetPlayerState() (*playable.Response, error) {
	return &playable.Response{
		Key:   "game",
		Value: Key,
		Data:  g.result,
	}, nil
}

// GetEndOfGameDetails returns the settled roll
func (g *Game) GetEndOfGameDetails() (*playable.GameOverDetails, bool) {
	gross := g.result.Gross()
	return &playable.GameOverDetails{
		Bet:     g.result.Bet,
		Payout:  gross,
		Outcome: playable.OutcomeFor(g.result.Bet, gross),
		Log:     g.result,
	}, true
}

// LogChan should return a channel that a game will send log messages to
func (g *Game) LogChan() <-chan []*playable.LogMessage {
	return g.logChan
}
