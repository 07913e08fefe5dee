package fortuneapple

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"casino-server/internal/rng"
	"casino-server/pkg/playable"
)

// Key is the game key used to start the apple ladder
const Key = "fortune-apple"

// DefaultLevels is the height of the ladder when none is configured
const DefaultLevels = 8

// Action is an action the player can take while climbing
type Action int

// Action constants
const (
	ActionPick Action = iota
	ActionCashOut
)

// MarshalJSON encodes the JSON
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}{
		ID:   int(a),
		Name: a.String(),
	})
}

func (a Action) String() string {
	switch a {
	case ActionPick:
		return "pick"
	case ActionCashOut:
		return "cash-out"
	}

	panic(fmt.Sprintf("invalid action: %d", a))
}

// ActionFromString returns an action from its name or its integer id
func ActionFromString(action string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(action)) {
	case "pick":
		return ActionPick, nil
	case "cash-out", "cashout":
		return ActionCashOut, nil
	}

	actionInt, err := strconv.Atoi(action)
	if err == nil && actionInt >= 0 && actionInt <= int(ActionCashOut) {
		return Action(actionInt), nil
	}

	return -1, playable.NewUserError("invalid action: %s", action)
}

// GameState is the current state of the climb
type GameState struct {
	Phase          Phase    `json:"phase"`
	Bet            int      `json:"bet"`
	Level          int      `json:"level"`
	Levels         int      `json:"levels"`
	Apples         int      `json:"apples"`
	Picks          []int    `json:"picks"`
	Multiplier     int      `json:"multiplier"`
	NextMultiplier int      `json:"nextMultiplier"`
	CashOutValue   int      `json:"cashOutValue"`
	Payout         int      `json:"payout"`
	Rotten         *int     `json:"rotten,omitempty"`
	Fortune        string   `json:"fortune,omitempty"`
	Actions        []Action `json:"actions"`
}

// Game is a climb up the apple ladder bound to a player's stake
type Game struct {
	round   Round
	rng     rng.Generator
	teller  FortuneTeller
	fortune string
	logChan chan []*playable.LogMessage
	logger  logrus.FieldLogger
}

// NewGame places the bet and sets up the first level
// If teller is nil, DefaultFortunes is used.
func NewGame(logger logrus.FieldLogger, g rng.Generator, teller FortuneTeller, bet, available, levels int) (*Game, error) {
	round, err := NewRound(bet, available, levels, g)
	if err != nil {
		return nil, err
	}

	if teller == nil {
		teller = DefaultFortunes
	}

	game := &Game{
		round:   round,
		rng:     g,
		teller:  teller,
		logChan: make(chan []*playable.LogMessage, 256),
		logger:  logger,
	}

	game.sendLogs(playable.SimpleLogMessage("Player bets %d and starts climbing %d levels", bet, levels))
	return game, nil
}

// Name returns the name of the game
func (g *Game) Name() string {
	return "Fortune Apple"
}

// Round returns the current snapshot of the climb
func (g *Game) Round() Round {
	return g.round
}

// Action performs with a message
func (g *Game) Action(message *playable.PayloadIn) (*playable.Response, bool, error) {
	action, err := ActionFromString(message.Action)
	if err != nil {
		return nil, false, err
	}

	var next Round
	switch action {
	case ActionPick:
		apple, ok := message.AdditionalData.GetInt("apple")
		if !ok {
			return nil, false, playable.UserError("choose an apple")
		}

		next, err = g.round.Pick(apple, g.rng)
	case ActionCashOut:
		next, err = g.round.CashOut()
	}

	if err != nil {
		return nil, false, err
	}

	g.round = next
	g.logger.WithFields(logrus.Fields{
		"action": action.String(),
		"level":  next.Level,
		"phase":  next.Phase,
	}).Debug("apple action")

	switch next.Phase {
	case PhaseRotten:
		g.fortune = g.teller.Fortune(g.rng)
		g.sendLogs(playable.SimpleLogMessage("Player bites a rotten apple on level %d", next.Level+1))
	case PhaseCashedOut:
		g.fortune = g.teller.Fortune(g.rng)
		g.sendLogs(playable.SimpleLogMessage("Player cashes out %d after %d levels", next.Payout, next.Level))
	default:
		g.sendLogs(playable.SimpleLogMessage("Player clears level %d", next.Level))
	}

	return playable.OK(message.Context), true, nil
}

func (g *Game) sendLogs(messages ...*playable.LogMessage) {
	playable.SendLogs(g.logChan, messages...)
}

func (g *Game) getGameState() *GameState {
	r := g.round
	state := &GameState{
		Phase:          r.Phase,
		Bet:            r.Bet,
		Level:          r.Level,
		Levels:         r.Levels,
		Apples:         ApplesPerLevel,
		Picks:          r.Picks,
		Multiplier:     r.Multiplier(),
		NextMultiplier: r.NextMultiplier(),
		CashOutValue:   r.CashOutValue(),
		Payout:         r.Payout,
		Fortune:        g.fortune,
	}

	if rotten, ok := r.Rotten(); ok {
		state.Rotten = &rotten
	} else {
		state.Actions = []Action{ActionPick, ActionCashOut}
	}

	return state
}

// GetPlayerState returns the current state of the game
func (g *Game) GetPlayerState() (*playable.Response, error) {
	return &playable.Response{
		Key:   "game",
		Value: Key,
		Data:  g.getGameState(),
	}, nil
}

// GetEndOfGameDetails returns the details after a game is over
// If the game is still in progress, nil will be returned and the second param will be false
func (g *Game) GetEndOfGameDetails() (*playable.GameOverDetails, bool) {
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
