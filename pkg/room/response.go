package room

import (
	"casino-server/pkg/playable"
)

// ErrNoRound is returned when an action arrives for a game with no round in progress
var ErrNoRound = playable.UserError("no round in progress, place a bet first")

// ErrRoundInProgress is returned when a bet is placed while the previous round is still being played
var ErrRoundInProgress = playable.UserError("finish the current round before placing another bet")

func newErrorResponse(ctx string, err error) *playable.Response {
	msg := err.Error()
	if !playable.IsUserError(err) {
		msg = "something went wrong"
	}

	return &playable.Response{
		Key:     "error",
		Value:   msg,
		Context: ctx,
	}
}

// RoundSettled is sent to subscribers once a round has been paid out
type RoundSettled struct {
	RoundID string                    `json:"roundId"`
	Game    string                    `json:"game"`
	Details *playable.GameOverDetails `json:"details"`
	Balance int                       `json:"balance"`
}

// LogResponse carries the log messages a round produced
type LogResponse struct {
	Game     string                 `json:"game"`
	Messages []*playable.LogMessage `json:"messages"`
}
