package room

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/sirupsen/logrus"

	"casino-server/internal/rng"
	"casino-server/pkg/events"
	"casino-server/pkg/history"
	"casino-server/pkg/playable"
	"casino-server/pkg/room/gamefactory"
	"casino-server/pkg/wallet"
)

// round is a game bound to the stake that was debited for it
type round struct {
	id      snowflake.ID
	key     string
	game    playable.Playable
	bet     int
	settled bool
}

func (r *round) isOver() bool {
	_, isOver := r.game.GetEndOfGameDetails()
	return isOver
}

// Room holds a single player's rounds, one per game key
// Every method is safe for concurrent use.
type Room struct {
	playerID  string
	logger    logrus.FieldLogger
	rng       rng.Generator
	games     gamefactory.Registry
	history   history.Store
	publisher events.Publisher
	ids       *snowflake.Node
	timeout   time.Duration

	// mu is held for a whole action, wallet calls included
	mu          sync.Mutex
	rounds      map[string]*round
	clients     map[*Client]bool
	logMessages []*playable.LogMessage
	closed      bool

	// activity is never held across I/O so the pit boss can inspect a busy room
	activity    sync.Mutex
	wallet      wallet.Wallet
	lastUsed    time.Time
	subscribers int
}

func newRoom(p *PitBoss, playerID string, w wallet.Wallet) *Room {
	return &Room{
		playerID:  playerID,
		logger:    p.logger.WithField("player", playerID),
		rng:       p.newRNG(),
		games:     p.games,
		history:   p.history,
		publisher: p.publisher,
		ids:       p.ids,
		timeout:   p.publishTimeout,
		wallet:    w,
		rounds:    make(map[string]*round),
		clients:   make(map[*Client]bool),
		lastUsed:  time.Now(),
	}
}

// PlayerID returns the owner of the room
func (r *Room) PlayerID() string {
	return r.playerID
}

// setWallet swaps in a wallet holding the player's latest credentials
func (r *Room) setWallet(w wallet.Wallet) {
	r.activity.Lock()
	defer r.activity.Unlock()

	if w != nil {
		r.wallet = w
	}
	r.lastUsed = time.Now()
}

// touch marks the room as used and returns the wallet to use
func (r *Room) touch() wallet.Wallet {
	r.activity.Lock()
	defer r.activity.Unlock()

	r.lastUsed = time.Now()
	return r.wallet
}

func (r *Room) setSubscribers(n int) {
	r.activity.Lock()
	defer r.activity.Unlock()

	r.subscribers = n
	r.lastUsed = time.Now()
}

// idle returns when the room was last used and how many clients are subscribed
func (r *Room) idle() (time.Time, int) {
	r.activity.Lock()
	defer r.activity.Unlock()

	return r.lastUsed, r.subscribers
}

// Balance returns the player's current balance
func (r *Room) Balance(ctx context.Context) (int, error) {
	return r.touch().Balance(ctx)
}

// Start takes the bet and starts a round of the game
// The stake is refunded if the round cannot be created after the debit.
func (r *Room) Start(ctx context.Context, key string, bet int, additionalData playable.AdditionalData) (*playable.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w := r.touch()

	if current, ok := r.rounds[key]; ok && !current.settled {
		if !current.isOver() {
			return nil, ErrRoundInProgress
		}

		if err := r.settle(ctx, current); err != nil {
			return nil, err
		}
	}

	factory, err := r.games.Get(key)
	if err != nil {
		return nil, err
	}

	name, stake, err := factory.Details(bet, additionalData)
	if err != nil {
		return nil, err
	}

	available, err := w.Balance(ctx)
	if err != nil {
		return nil, err
	}

	if err := playable.ValidateBet(stake, available); err != nil {
		return nil, err
	}

	id := r.ids.Generate()
	log := r.logger.WithFields(logrus.Fields{
		"game":  key,
		"round": id.String(),
		"bet":   stake,
	})

	if err := w.Adjust(ctx, -stake, wallet.Memo{
		Kind:        wallet.KindBet,
		Game:        key,
		RoundID:     id.String(),
		Description: fmt.Sprintf("%s bet", name),
	}); err != nil {
		return nil, err
	}

	game, err := factory.CreateGame(log, r.rng, stake, available, additionalData)
	if err != nil {
		r.refund(ctx, w, key, id, stake, log)
		return nil, err
	}

	log.Info("round started")

	current := &round{
		id:   id,
		key:  key,
		game: game,
		bet:  stake,
	}
	r.rounds[key] = current

	return r.afterAction(ctx, current, nil, true)
}

func (r *Room) refund(ctx context.Context, w wallet.Wallet, key string, id snowflake.ID, stake int, log logrus.FieldLogger) {
	err := w.Adjust(ctx, stake, wallet.Memo{
		Kind:        wallet.KindRefund,
		Game:        key,
		RoundID:     id.String(),
		Description: "round could not be started",
	})

	if err != nil {
		log.WithError(err).Error("could not refund bet")
		return
	}

	log.Warn("bet refunded")
}

// Action forwards the payload to the game's active round
func (r *Room) Action(ctx context.Context, key string, message *playable.PayloadIn) (*playable.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touch()

	current, ok := r.rounds[key]
	if !ok || current.isOver() {
		if ok && !current.settled {
			if err := r.settle(ctx, current); err != nil {
				return nil, err
			}
		}

		return nil, ErrNoRound
	}

	res, updateState, err := current.game.Action(message)
	if err != nil {
		return nil, err
	}

	if res != nil {
		res.Context = message.Context
	}

	return r.afterAction(ctx, current, res, updateState)
}

// afterAction drains logs, settles a finished round, and pushes the new state
// Note: the room lock must be held
func (r *Room) afterAction(ctx context.Context, current *round, res *playable.Response, updateState bool) (*playable.Response, error) {
	r.drainLogs(current.key, current.game)

	if current.isOver() {
		if err := r.settle(ctx, current); err != nil {
			return nil, err
		}
		updateState = true
	}

	state, err := current.game.GetPlayerState()
	if err != nil {
		return nil, err
	}

	if updateState {
		r.broadcast(state)
	}

	if res != nil {
		return res, nil
	}

	// subscribers share the broadcast value, the caller gets its own
	reply := *state
	return &reply, nil
}

// settle credits the payout of a finished round
// A round is settled at most once. If the credit fails, the next call retries it.
// Note: the room lock must be held
func (r *Room) settle(ctx context.Context, current *round) error {
	if current.settled {
		return nil
	}

	details, isOver := current.game.GetEndOfGameDetails()
	if !isOver {
		return nil
	}

	log := r.logger.WithFields(logrus.Fields{
		"game":    current.key,
		"round":   current.id.String(),
		"bet":     details.Bet,
		"payout":  details.Payout,
		"outcome": details.Outcome,
	})

	w := r.touch()
	if details.Payout > 0 {
		if err := w.Adjust(ctx, details.Payout, wallet.Memo{
			Kind:        wallet.KindWin,
			Game:        current.key,
			RoundID:     current.id.String(),
			Description: fmt.Sprintf("%s payout", current.game.Name()),
		}); err != nil {
			log.WithError(err).Error("could not credit payout")
			return err
		}
	}

	current.settled = true
	log.Info("round settled")

	entry, err := history.NewEntry(current.id.Int64(), r.playerID, current.key, details)
	if err != nil {
		log.WithError(err).Error("could not build history entry")
	} else if err := r.history.Record(ctx, entry); err != nil && !errors.Is(err, history.ErrDuplicateRound) {
		log.WithError(err).Error("could not record round")
	}

	balance, err := w.Balance(ctx)
	if err != nil {
		log.WithError(err).Warn("could not read balance after settlement")
	}

	r.publish(ctx, log, events.RoundSettled{
		RoundID:  current.id.Int64(),
		PlayerID: r.playerID,
		Game:     current.key,
		Bet:      details.Bet,
		Payout:   details.Payout,
		Outcome:  details.Outcome,
		Balance:  balance,
	})

	r.broadcast(&playable.Response{
		Key:   "roundSettled",
		Value: current.key,
		Data: RoundSettled{
			RoundID: current.id.String(),
			Game:    current.key,
			Details: details,
			Balance: balance,
		},
	})

	return nil
}

// publish sends the event without holding the room for longer than the publish timeout
func (r *Room) publish(ctx context.Context, log logrus.FieldLogger, e events.RoundSettled) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.publisher.Publish(ctx, e); err != nil {
		log.WithError(err).Warn("could not publish round")
	}
}

// State returns the player's view of the latest round of the game
func (r *Room) State(key string) (*playable.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.rounds[key]
	if !ok {
		if _, err := r.games.Get(key); err != nil {
			return nil, err
		}

		return nil, ErrNoRound
	}

	return current.game.GetPlayerState()
}

// InProgress returns the keys of the games with an unfinished round
func (r *Room) InProgress() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]string, 0)
	for key, current := range r.rounds {
		if !current.isOver() {
			keys = append(keys, key)
		}
	}

	return keys
}

// Subscribe registers a client for state pushes
// The client immediately receives the state of every round in the room.
func (r *Room) Subscribe(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.clients[c] = true
	r.setSubscribers(len(r.clients))

	for _, current := range r.rounds {
		state, err := current.game.GetPlayerState()
		if err != nil {
			r.logger.WithError(err).Error("could not get player state")
			continue
		}

		c.Send(state)
	}
}

// Unsubscribe removes the client
func (r *Room) Unsubscribe(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.clients, c)
	r.setSubscribers(len(r.clients))
}

// ReceivedMessage handles a websocket payload, the subject is the game key
// Errors are sent back to the client rather than returned.
func (r *Room) ReceivedMessage(ctx context.Context, c *Client, msg *playable.PayloadIn) {
	var res *playable.Response
	var err error

	switch msg.Action {
	case "bet":
		var bet int
		if _, ok := msg.AdditionalData["bet"]; ok {
			bet, err = msg.AdditionalData.GetBet()
		}

		if err == nil {
			res, err = r.Start(ctx, msg.Subject, bet, msg.AdditionalData)
		}
	case "state":
		res, err = r.State(msg.Subject)
	default:
		res, err = r.Action(ctx, msg.Subject, msg)
	}

	if err != nil {
		if !playable.IsUserError(err) {
			r.logger.WithError(err).WithField("action", msg.Action).Error("could not perform action")
		}

		c.Send(newErrorResponse(msg.Context, err))
		return
	}

	if res != nil {
		res.Context = msg.Context
		c.Send(res)
	}
}

// broadcast pushes a message to every subscriber
// Note: the room lock must be held
func (r *Room) broadcast(msg interface{}) {
	for c := range r.clients {
		if !c.Send(msg) {
			r.logger.WithField("client", c.String()).Warn("client buffer full, dropping message")
		}
	}
}

// close disconnects every subscriber. Unfinished rounds are forfeited.
func (r *Room) close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true

	for key, current := range r.rounds {
		if !current.isOver() {
			r.logger.WithFields(logrus.Fields{
				"game":  key,
				"round": current.id.String(),
				"bet":   current.bet,
			}).Warn("closing room with a round in progress, stake forfeited")
		}
	}

	for c := range r.clients {
		c.close("room closed")
	}
	r.clients = make(map[*Client]bool)
	r.setSubscribers(0)
}
