package history

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"casino-server/pkg/db"
)

const pqDuplicateKeyErrorCode pq.ErrorCode = "23505"

const roundColumns = `
rounds.id,
rounds.player_id,
rounds.game,
rounds.bet,
rounds.payout,
rounds.outcome,
rounds.summary,
rounds.created`

// Postgres stores the history in the `rounds` table
type Postgres struct {
	db *sql.DB
}

// NewPostgres returns a store using an open database handle
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func getEntryByRow(row db.Scanner) (*Entry, error) {
	var e Entry
	var summary []byte
	if err := row.Scan(&e.ID, &e.PlayerID, &e.Game, &e.Bet, &e.Payout, &e.Outcome, &summary, &e.Created); err != nil {
		return nil, err
	}

	e.Summary = summary
	return &e, nil
}

// Record inserts the entry
func (p *Postgres) Record(ctx context.Context, e *Entry) error {
	const query = `
INSERT INTO rounds (id, player_id, game, bet, payout, outcome, summary, created)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	summary := []byte(e.Summary)
	if len(summary) == 0 {
		summary = []byte("{}")
	}

	_, err := p.db.ExecContext(ctx, query, e.ID, e.PlayerID, e.Game, e.Bet, e.Payout, e.Outcome, summary, e.Created)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqDuplicateKeyErrorCode {
			return ErrDuplicateRound
		}

		return err
	}

	return nil
}

// List returns the player's rounds ordered by ID descending
func (p *Postgres) List(ctx context.Context, playerID string, start int64, rows int) ([]*Entry, error) {
	const query = `
SELECT ` + roundColumns + `
FROM rounds
WHERE player_id = $1
ORDER BY id DESC
OFFSET $2
LIMIT $3`

	res, err := p.db.QueryContext(ctx, query, playerID, start, rows)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	entries := make([]*Entry, 0)
	for res.Next() {
		e, err := getEntryByRow(res)
		if err != nil {
			return nil, err
		}

		entries = append(entries, e)
	}

	return entries, res.Err()
}
