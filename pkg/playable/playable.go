package playable

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"casino-server/pkg/deck"
)

// Playable is a single-player casino game bound to one round's stake
type Playable interface {
	// Action performs with a message
	// If playerResponse is not null, that's the response sent directly to the client
	// If updateState is true, it will trigger a state update for all connected clients
	Action(message *PayloadIn) (playerResponse *Response, updateState bool, err error)

	// GetPlayerState returns the current state of the game as the player may see it
	GetPlayerState() (*Response, error)

	// GetEndOfGameDetails returns the details after a round is over
	// If the round is still in progress, nil will be returned and the second param will be false
	GetEndOfGameDetails() (gameOverDetails *GameOverDetails, isGameOver bool)

	// Name returns the name of the game
	Name() string

	// LogChan should return a channel that a game will send log messages to
	LogChan() <-chan []*LogMessage
}

// LogMessage is the format a game should send log messages in
type LogMessage struct {
	UUID    string      `json:"uuid"`
	Cards   []deck.Card `json:"cards,omitempty"`
	Message string      `json:"message"`
	Time    time.Time   `json:"time"`
}

// Response is a message sent to the client
type Response struct {
	Key     string      `json:"key"`
	Value   string      `json:"value"`
	Data    interface{} `json:"data"`
	Context string      `json:"context"`
}

// OK returns a generic success response
func OK(ctx ...string) *Response {
	res := &Response{
		Key:   "status",
		Value: "OK",
	}

	if len(ctx) == 1 {
		res.Context = ctx[0]
	}

	return res
}

// PayloadIn is the format we expect from the JS client
type PayloadIn struct {
	Action string `json:"action"`
	// Subject is the game key the action is meant for
	Subject        string         `json:"subject"`
	AdditionalData AdditionalData `json:"additionalData"`
	// Context will be passed back on any outgoing message
	Context string `json:"context"`
}

// Outcome is how a round resolved for the player
type Outcome string

// outcome constants
const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
	OutcomePush Outcome = "push"
)

// GameOverDetails provides details on how the round ended
// Payout is the gross amount credited back to the player, stake included
type GameOverDetails struct {
	Bet     int         `json:"bet"`
	Payout  int         `json:"payout"`
	Outcome Outcome     `json:"outcome"`
	Log     interface{} `json:"log"`
}

// Net returns the player's profit (or loss when negative) for the round
func (g GameOverDetails) Net() int {
	return g.Payout - g.Bet
}

// OutcomeFor derives the outcome from the stake and the gross payout
func OutcomeFor(bet, payout int) Outcome {
	switch {
	case payout > bet:
		return OutcomeWin
	case payout == bet:
		return OutcomePush
	default:
		return OutcomeLoss
	}
}

// AdditionalData provides additional data in a payload
type AdditionalData map[string]interface{}

// GetString returns a string for the given key
func (a AdditionalData) GetString(key string) (string, bool) {
	s, ok := a[key].(string)
	return s, ok
}

// GetInt returns an integer value for the given key
// Fractional numbers are not integers and return false.
func (a AdditionalData) GetInt(key string) (int, bool) {
	switch val := a[key].(type) {
	case float64:
		return wholeNumber(val)
	case int:
		return val, true
	}

	return 0, false
}

func wholeNumber(f float64) (int, bool) {
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}

	return int(f), true
}

// GetBool returns a boolean value for the given key
func (a AdditionalData) GetBool(key string) (bool, bool) {
	boolVal, ok := a[key].(bool)
	if !ok {
		return false, false
	}

	return boolVal, true
}

// GetIntSlice returns a slice of integers
func (a AdditionalData) GetIntSlice(key string) ([]int, bool) {
	switch slice := a[key].(type) {
	case []int:
		return slice, true
	case []float64:
		ints := make([]int, len(slice))
		for i, val := range slice {
			n, ok := wholeNumber(val)
			if !ok {
				return nil, false
			}

			ints[i] = n
		}
		return ints, true
	case []interface{}:
		ints := make([]int, len(slice))
		for i, val := range slice {
			floatVal, ok := val.(float64)
			if !ok {
				return nil, false
			}

			n, ok := wholeNumber(floatVal)
			if !ok {
				return nil, false
			}

			ints[i] = n
		}
		return ints, true
	}

	return nil, false
}

// GetBet returns the bet stored under "bet"
// Missing, fractional, and non-positive bets return ErrInvalidBet
func (a AdditionalData) GetBet() (int, error) {
	switch val := a["bet"].(type) {
	case int:
		if val > 0 {
			return val, nil
		}
	case float64:
		if val > 0 && val == math.Trunc(val) && val <= math.MaxInt32 {
			return int(val), nil
		}
	}

	return 0, ErrInvalidBet
}

// SimpleLogMessage returns a new LogMessage
func SimpleLogMessage(format string, a ...interface{}) *LogMessage {
	return &LogMessage{
		UUID:    uuid.New().String(),
		Message: fmt.Sprintf(format, a...),
		Time:    time.Now(),
	}
}

// SimpleLogMessageSlice returns a single log message
func SimpleLogMessageSlice(format string, a ...interface{}) []*LogMessage {
	return []*LogMessage{SimpleLogMessage(format, a...)}
}

// CardLogMessage returns a log message that shows the cards involved
func CardLogMessage(cards []deck.Card, format string, a ...interface{}) *LogMessage {
	lm := SimpleLogMessage(format, a...)
	lm.Cards = append([]deck.Card{}, cards...)
	return lm
}

// SendLogs queues messages on ch without blocking. Messages are dropped if nobody is draining it.
func SendLogs(ch chan []*LogMessage, messages ...*LogMessage) {
	if len(messages) == 0 {
		return
	}

	select {
	case ch <- messages:
	default:
	}
}
