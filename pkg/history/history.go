package history

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"casino-server/pkg/playable"
)

// ErrDuplicateRound is returned when a round is recorded twice
var ErrDuplicateRound = errors.New("round already recorded")

// Entry is a settled round
type Entry struct {
	ID       int64            `json:"id,string"`
	PlayerID string           `json:"playerId"`
	Game     string           `json:"game"`
	Bet      int              `json:"bet"`
	Payout   int              `json:"payout"`
	Outcome  playable.Outcome `json:"outcome"`
	Summary  json.RawMessage  `json:"summary,omitempty"`
	Created  time.Time        `json:"created"`
}

// NewEntry builds an entry from the end-of-game details
func NewEntry(id int64, playerID, game string, details *playable.GameOverDetails) (*Entry, error) {
	summary, err := json.Marshal(details.Log)
	if err != nil {
		return nil, err
	}

	return &Entry{
		ID:       id,
		PlayerID: playerID,
		Game:     game,
		Bet:      details.Bet,
		Payout:   details.Payout,
		Outcome:  details.Outcome,
		Summary:  summary,
		Created:  time.Now().UTC(),
	}, nil
}

// Store records settled rounds
type Store interface {
	Record(ctx context.Context, e *Entry) error

	// List returns a player's rounds, newest first, skipping the first start rows
	List(ctx context.Context, playerID string, start int64, rows int) ([]*Entry, error)
}
