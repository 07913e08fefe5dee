package slots

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"casino-server/internal/rng"
	"casino-server/pkg/playable"
)

// Key is the game key used to spin the slot machine
const Key = "slots"

// DefaultSpinCost is the bet used when none is provided
const DefaultSpinCost = 10

// Reels is the number of reels on the machine
const Reels = 3

// Symbol is a symbol on a reel
type Symbol string

// Symbol constants, cheapest first
const (
	Cherry  Symbol = "cherry"
	Bell    Symbol = "bell"
	Clover  Symbol = "clover"
	Diamond Symbol = "diamond"
	Star    Symbol = "star"
	Seven   Symbol = "seven"
)

// Symbols is every symbol on a reel
var Symbols = []Symbol{Cherry, Bell, Clover, Diamond, Star, Seven}

// payTable is what a line of three pays per DefaultSpinCost staked
var payTable = map[Symbol]int{
	Cherry:  10,
	Bell:    20,
	Clover:  50,
	Diamond: 100,
	Star:    200,
	Seven:   500,
}

// Result is the outcome of a spin
type Result struct {
	Bet  int           `json:"bet"`
	Line [Reels]Symbol `json:"line"`
	Win  bool          `json:"win"`
	// Payout is what the line pays, the stake is not returned
	Payout int `json:"payout"`
}

// Spin stops each reel on a uniformly chosen symbol
func Spin(bet int, g rng.Generator) (Result, error) {
	if bet <= 0 {
		return Result{}, playable.ErrInvalidBet
	}

	result := Result{Bet: bet}
	for i := range result.Line {
		result.Line[i] = Symbols[g.Intn(len(Symbols))]
	}

	result.Payout = LinePays(result.Line, bet)
	result.Win = result.Payout > 0

	return result, nil
}

// LinePays returns what the line pays for the bet
// Only three of a kind pays. The table scales with the bet and is floored to whole credits.
func LinePays(line [Reels]Symbol, bet int) int {
	for _, s := range line[1:] {
		if s != line[0] {
			return 0
		}
	}

	return payTable[line[0]] * bet / DefaultSpinCost
}

// Game is a single spin bound to a player's stake
type Game struct {
	result  Result
	logChan chan []*playable.LogMessage
}

// NewGame validates the bet and spins the reels
func NewGame(logger logrus.FieldLogger, g rng.Generator, bet, available int) (*Game, error) {
	if err := playable.ValidateBet(bet, available); err != nil {
		return nil, err
	}

	result, err := Spin(bet, g)
	if err != nil {
		return nil, err
	}

	logger.WithField("line", result.Line).Debug("slots spun")

	game := &Game{
		result:  result,
		logChan: make(chan []*playable.LogMessage, 1),
	}

	names := make([]string, Reels)
	for i, s := range result.Line {
		names[i] = string(s)
	}

	msg := fmt.Sprintf("Player spins %s", strings.Join(names, " | "))
	if result.Win {
		msg += fmt.Sprintf(" and wins %d", result.Payout)
	}
	playable.SendLogs(game.logChan, playable.SimpleLogMessage("%s", msg))

	return game, nil
}

// Name returns the name of the game
func (g *Game) Name() string {
	return "Slot Machine"
}

// Result returns the spin
func (g *Game) Result() Result {
	return g.result
}

// Action always fails, a spin has no further actions
func (g *Game) Action(message *playable.PayloadIn) (*playable.Response, bool, error) {
	return nil, false, fmt.Errorf("%w: the reels have already stopped", playable.ErrInvalidAction)
}

// GetPlayerState returns the spin
func (g *Game) GetPlayerState() (*playable.Response, error) {
	return &playable.Response{
		Key:   "game",
		Value: Key,
		Data:  g.result,
	}, nil
}

// GetEndOfGameDetails returns the settled spin
func (g *Game) GetEndOfGameDetails() (*playable.GameOverDetails, bool) {
	return &playable.GameOverDetails{
		Bet:     g.result.Bet,
		Payout:  g.result.Payout,
		Outcome: playable.OutcomeFor(g.result.Bet, g.result.Payout),
		Log:     g.result,
	}, true
}

// LogChan should return a channel that a game will send log messages to
func (g *Game) LogChan() <-chan []*playable.LogMessage {
	return g.logChan
}
